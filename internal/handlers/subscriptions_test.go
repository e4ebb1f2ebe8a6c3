package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/foodgram/internal/models"
	"github.com/sbilibin2017/foodgram/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipesLimit(t *testing.T) {
	for query, expected := range map[string]int{
		"":                  0,
		"?recipes_limit=3":  3,
		"?recipes_limit=x":  0,
		"?recipes_limit=-2": 0,
	} {
		assert.Equal(t, expected, recipesLimit(httptest.NewRequest(http.MethodGet, "/"+query, nil)), query)
	}
}

func TestListSubscriptionsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockSubscriber(ctrl)
	mockSvc.EXPECT().List(gomock.Any(), int64(1), 6, 0, 2).Return([]models.Subscription{
		{
			User:         models.User{ID: 2, Username: "chef", IsSubscribed: true},
			Recipes:      []models.RecipeShort{{ID: 4}, {ID: 3}},
			RecipesCount: 5,
		},
	}, 1, nil)

	rr := httptest.NewRecorder()
	NewListSubscriptionsHandler(mockSvc, 6)(rr, withUser(httptest.NewRequest(http.MethodGet, "/api/users/subscriptions/?recipes_limit=2", nil), 1))

	require.Equal(t, http.StatusOK, rr.Code)

	var page struct {
		Count   int              `json:"count"`
		Results []map[string]any `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Count)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "chef", page.Results[0]["username"])
	assert.Equal(t, true, page.Results[0]["is_subscribed"])
	assert.Equal(t, float64(5), page.Results[0]["recipes_count"])
	assert.Len(t, page.Results[0]["recipes"], 2)
}

func TestSubscribeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name         string
		err          error
		expectedCode int
	}{
		{name: "subscribed", expectedCode: http.StatusCreated},
		{name: "self", err: services.ErrSelfSubscription, expectedCode: http.StatusBadRequest},
		{name: "duplicate", err: services.ErrAlreadySubscribed, expectedCode: http.StatusBadRequest},
		{name: "missing author", err: services.ErrUserNotFound, expectedCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockSubscriber(ctrl)
			call := mockSvc.EXPECT().Subscribe(gomock.Any(), int64(1), int64(2), 0)
			if tt.err != nil {
				call.Return(nil, tt.err)
			} else {
				call.Return(&models.Subscription{User: models.User{ID: 2, IsSubscribed: true}}, nil)
			}

			rr := httptest.NewRecorder()
			NewSubscribeHandler(mockSvc)(rr, withUser(withID(httptest.NewRequest(http.MethodPost, "/", nil), "2"), 1))

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}

func TestUnsubscribeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name         string
		err          error
		expectedCode int
	}{
		{name: "unsubscribed", expectedCode: http.StatusNoContent},
		{name: "self", err: services.ErrSelfUnsubscription, expectedCode: http.StatusBadRequest},
		{name: "not subscribed", err: services.ErrNotSubscribed, expectedCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockSubscriber(ctrl)
			mockSvc.EXPECT().Unsubscribe(gomock.Any(), int64(1), int64(2)).Return(tt.err)

			rr := httptest.NewRecorder()
			NewUnsubscribeHandler(mockSvc)(rr, withUser(withID(httptest.NewRequest(http.MethodDelete, "/", nil), "2"), 1))

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}
