package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestDownloadShoppingCartHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name         string
		list         string
		err          error
		expectedCode int
	}{
		{name: "list", list: "flour (g) - 300\nmilk (ml) - 200", expectedCode: http.StatusOK},
		{name: "empty cart", list: "", expectedCode: http.StatusOK},
		{name: "storage failure", err: errors.New("db down"), expectedCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockShoppingListDownloader(ctrl)
			mockSvc.EXPECT().Download(gomock.Any(), int64(7)).Return(tt.list, tt.err)

			rr := httptest.NewRecorder()
			NewDownloadShoppingCartHandler(mockSvc)(rr, withUser(httptest.NewRequest(http.MethodGet, "/", nil), 7))

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.err != nil {
				return
			}
			assert.Equal(t, "text/plain; charset=utf-8", rr.Header().Get("Content-Type"))
			assert.Equal(t, `attachment; filename="shopping_list.txt"`, rr.Header().Get("Content-Disposition"))
			assert.Equal(t, tt.list, rr.Body.String())
		})
	}
}
