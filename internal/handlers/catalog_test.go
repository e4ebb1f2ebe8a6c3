package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/foodgram/internal/models"
	"github.com/sbilibin2017/foodgram/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestListTagsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockTagReader(ctrl)
	mockSvc.EXPECT().ListTags(gomock.Any()).
		Return([]models.Tag{{ID: 1, Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"}}, nil)
	mockSvc.EXPECT().ListTags(gomock.Any()).Return(nil, nil)
	mockSvc.EXPECT().ListTags(gomock.Any()).Return(nil, errors.New("redis down"))

	rr := httptest.NewRecorder()
	NewListTagsHandler(mockSvc)(rr, httptest.NewRequest(http.MethodGet, "/api/tags/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Breakfast","color":"#E26C2D","slug":"breakfast"}]`, rr.Body.String())

	rr = httptest.NewRecorder()
	NewListTagsHandler(mockSvc)(rr, httptest.NewRequest(http.MethodGet, "/api/tags/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = httptest.NewRecorder()
	NewListTagsHandler(mockSvc)(rr, httptest.NewRequest(http.MethodGet, "/api/tags/", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestGetTagHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockTagReader(ctrl)
	mockSvc.EXPECT().GetTag(gomock.Any(), int64(1)).Return(&models.Tag{ID: 1, Slug: "breakfast"}, nil)
	mockSvc.EXPECT().GetTag(gomock.Any(), int64(2)).Return(nil, services.ErrTagNotFound)

	rr := httptest.NewRecorder()
	NewGetTagHandler(mockSvc)(rr, withID(httptest.NewRequest(http.MethodGet, "/", nil), "1"))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	NewGetTagHandler(mockSvc)(rr, withID(httptest.NewRequest(http.MethodGet, "/", nil), "2"))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListIngredientsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockIngredientReader(ctrl)
	mockSvc.EXPECT().SearchIngredients(gomock.Any(), "fl").
		Return([]models.Ingredient{{ID: 3, Name: "flour", MeasurementUnit: "g"}}, nil)
	mockSvc.EXPECT().SearchIngredients(gomock.Any(), "").Return(nil, nil)

	rr := httptest.NewRecorder()
	NewListIngredientsHandler(mockSvc)(rr, httptest.NewRequest(http.MethodGet, "/api/ingredients/?name=fl", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"id":3,"name":"flour","measurement_unit":"g"}]`, rr.Body.String())

	rr = httptest.NewRecorder()
	NewListIngredientsHandler(mockSvc)(rr, httptest.NewRequest(http.MethodGet, "/api/ingredients/", nil))
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestGetIngredientHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockIngredientReader(ctrl)
	mockSvc.EXPECT().GetIngredient(gomock.Any(), int64(9)).Return(nil, services.ErrIngredientNotFound)

	rr := httptest.NewRecorder()
	NewGetIngredientHandler(mockSvc)(rr, withID(httptest.NewRequest(http.MethodGet, "/", nil), "9"))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"errors":"ingredient not found"}`, rr.Body.String())
}
