package handlers

import (
	"bytes"
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

func TestParseRecipeQuery(t *testing.T) {
	author := int64(3)

	tests := []struct {
		name     string
		query    string
		expected models.RecipeQuery
		errField string
	}{
		{name: "empty", query: ""},
		{
			name:     "all filters",
			query:    "?author=3&tags=breakfast&tags=lunch&is_favorited=1&is_in_shopping_cart=true",
			expected: models.RecipeQuery{AuthorID: &author, Tags: []string{"breakfast", "lunch"}, IsFavorited: true, IsInShoppingCart: true},
		},
		{
			name:     "false flags",
			query:    "?is_favorited=0&is_in_shopping_cart=false",
			expected: models.RecipeQuery{},
		},
		{name: "bad author", query: "?author=bob", errField: "author"},
		{name: "bad flag", query: "?is_favorited=yes", errField: "is_favorited"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := parseRecipeQuery(httptest.NewRequest(http.MethodGet, "/api/recipes/"+tt.query, nil))
			if tt.errField != "" {
				var verr *services.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Contains(t, verr.Fields, tt.errField)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, q)
		})
	}
}

func TestListRecipesHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("filters and pagination reach the service", func(t *testing.T) {
		mockSvc := NewMockRecipeReader(ctrl)
		mockSvc.EXPECT().List(gomock.Any(), int64(2), models.RecipeQuery{
			Tags:        []string{"lunch"},
			IsFavorited: true,
			Limit:       6,
			Offset:      0,
		}).Return([]models.Recipe{{ID: 10, Name: "Soup"}}, 7, nil)

		r := withUser(httptest.NewRequest(http.MethodGet, "/api/recipes/?tags=lunch&is_favorited=1", nil), 2)
		rr := httptest.NewRecorder()
		NewListRecipesHandler(mockSvc, 6)(rr, r)

		require.Equal(t, http.StatusOK, rr.Code)

		var page models.Page[models.Recipe]
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
		assert.Equal(t, 7, page.Count)
		require.NotNil(t, page.Next)
		assert.Equal(t, "http://example.com/api/recipes/?is_favorited=1&page=2&tags=lunch", *page.Next)
		assert.Nil(t, page.Previous)
		require.Len(t, page.Results, 1)
		assert.Equal(t, "Soup", page.Results[0].Name)
	})

	t.Run("invalid filter", func(t *testing.T) {
		mockSvc := NewMockRecipeReader(ctrl)

		rr := httptest.NewRecorder()
		NewListRecipesHandler(mockSvc, 6)(rr, httptest.NewRequest(http.MethodGet, "/api/recipes/?author=x", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"author":"select a valid choice"}`, rr.Body.String())
	})
}

func TestGetRecipeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockRecipeReader(ctrl)
	mockSvc.EXPECT().Get(gomock.Any(), int64(0), int64(1)).
		Return(&models.Recipe{ID: 1, Name: "Soup", Tags: []models.Tag{}, Ingredients: []models.RecipeIngredient{}}, nil)
	mockSvc.EXPECT().Get(gomock.Any(), int64(0), int64(2)).Return(nil, services.ErrRecipeNotFound)

	rr := httptest.NewRecorder()
	NewGetRecipeHandler(mockSvc)(rr, withID(httptest.NewRequest(http.MethodGet, "/", nil), "1"))
	assert.Equal(t, http.StatusOK, rr.Code)
	var recipe models.Recipe
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &recipe))
	assert.Equal(t, "Soup", recipe.Name)

	rr = httptest.NewRecorder()
	NewGetRecipeHandler(mockSvc)(rr, withID(httptest.NewRequest(http.MethodGet, "/", nil), "2"))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateRecipeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	req := models.RecipeWriteRequest{
		Ingredients: []models.IngredientAmount{{ID: 1, Amount: 10}},
		Tags:        []int64{1},
		Image:       "data:image/png;base64,AAAA",
		Name:        "Soup",
		Text:        "Boil",
		CookingTime: 5,
	}
	body, _ := json.Marshal(req)

	tests := []struct {
		name         string
		mockSetup    func(m *MockRecipeWriter)
		expectedCode int
	}{
		{
			name: "created",
			mockSetup: func(m *MockRecipeWriter) {
				m.EXPECT().Create(gomock.Any(), int64(3), req).Return(&models.Recipe{ID: 1}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "validation",
			mockSetup: func(m *MockRecipeWriter) {
				m.EXPECT().Create(gomock.Any(), int64(3), req).
					Return(nil, &services.ValidationError{Fields: map[string]string{"ingredients": "ingredients must not repeat"}})
			},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockRecipeWriter(ctrl)
			tt.mockSetup(mockSvc)

			rr := httptest.NewRecorder()
			NewCreateRecipeHandler(mockSvc)(rr, withUser(httptest.NewRequest(http.MethodPost, "/api/recipes/", bytes.NewReader(body)), 3))

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}

func TestUpdateRecipeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	body := `{"name":"Stew","text":"Simmer","cooking_time":30,"tags":[1],"ingredients":[{"id":1,"amount":2}]}`

	tests := []struct {
		name         string
		mockSetup    func(m *MockRecipeWriter)
		expectedCode int
	}{
		{
			name: "author",
			mockSetup: func(m *MockRecipeWriter) {
				m.EXPECT().Update(gomock.Any(), int64(3), int64(8), gomock.Any()).Return(&models.Recipe{ID: 8, Name: "Stew"}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "not the author",
			mockSetup: func(m *MockRecipeWriter) {
				m.EXPECT().Update(gomock.Any(), int64(3), int64(8), gomock.Any()).Return(nil, services.ErrForbidden)
			},
			expectedCode: http.StatusForbidden,
		},
		{
			name: "missing recipe",
			mockSetup: func(m *MockRecipeWriter) {
				m.EXPECT().Update(gomock.Any(), int64(3), int64(8), gomock.Any()).Return(nil, services.ErrRecipeNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockRecipeWriter(ctrl)
			tt.mockSetup(mockSvc)

			r := httptest.NewRequest(http.MethodPatch, "/", bytes.NewBufferString(body))
			r = withUser(withID(r, "8"), 3)
			rr := httptest.NewRecorder()
			NewUpdateRecipeHandler(mockSvc)(rr, r)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}

func TestDeleteRecipeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockRecipeWriter(ctrl)
	mockSvc.EXPECT().Delete(gomock.Any(), int64(3), int64(8)).Return(nil)
	mockSvc.EXPECT().Delete(gomock.Any(), int64(4), int64(8)).Return(services.ErrForbidden)

	rr := httptest.NewRecorder()
	NewDeleteRecipeHandler(mockSvc)(rr, withUser(withID(httptest.NewRequest(http.MethodDelete, "/", nil), "8"), 3))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = httptest.NewRecorder()
	NewDeleteRecipeHandler(mockSvc)(rr, withUser(withID(httptest.NewRequest(http.MethodDelete, "/", nil), "8"), 4))
	assert.Equal(t, http.StatusForbidden, rr.Code)
}
