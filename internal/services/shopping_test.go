package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/foodgram/internal/models"
	"github.com/sbilibin2017/foodgram/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestAggregateShoppingList(t *testing.T) {
	tests := []struct {
		name  string
		items []models.ShoppingListItem
		want  []models.ShoppingListItem
	}{
		{
			name:  "empty",
			items: nil,
			want:  []models.ShoppingListItem{},
		},
		{
			name: "sums same name and unit",
			items: []models.ShoppingListItem{
				{Name: "flour", MeasurementUnit: "g", Amount: 200},
				{Name: "eggs", MeasurementUnit: "pcs", Amount: 3},
				{Name: "flour", MeasurementUnit: "g", Amount: 500},
			},
			want: []models.ShoppingListItem{
				{Name: "eggs", MeasurementUnit: "pcs", Amount: 3},
				{Name: "flour", MeasurementUnit: "g", Amount: 700},
			},
		},
		{
			name: "different units stay apart",
			items: []models.ShoppingListItem{
				{Name: "sugar", MeasurementUnit: "kg", Amount: 1},
				{Name: "sugar", MeasurementUnit: "g", Amount: 50},
				{Name: "sugar", MeasurementUnit: "kg", Amount: 2},
			},
			want: []models.ShoppingListItem{
				{Name: "sugar", MeasurementUnit: "g", Amount: 50},
				{Name: "sugar", MeasurementUnit: "kg", Amount: 3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.AggregateShoppingList(tt.items))
		})
	}
}

func TestFormatShoppingList(t *testing.T) {
	assert.Equal(t, "", services.FormatShoppingList(nil))
	assert.Equal(t, "eggs (pcs) - 3\nflour (g) - 700", services.FormatShoppingList([]models.ShoppingListItem{
		{Name: "eggs", MeasurementUnit: "pcs", Amount: 3},
		{Name: "flour", MeasurementUnit: "g", Amount: 700},
	}))
}

func TestShoppingListService_Download(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockItems := services.NewMockShoppingItemReader(ctrl)
	svc := services.NewShoppingListService(mockItems)
	ctx := context.Background()

	mockItems.EXPECT().GetItems(gomock.Any(), int64(1)).Return([]models.ShoppingListItem{
		{Name: "salt", MeasurementUnit: "g", Amount: 5},
		{Name: "milk", MeasurementUnit: "ml", Amount: 200},
		{Name: "salt", MeasurementUnit: "g", Amount: 10},
	}, nil)
	text, err := svc.Download(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, "milk (ml) - 200\nsalt (g) - 15", text)

	mockItems.EXPECT().GetItems(gomock.Any(), int64(2)).Return(nil, nil)
	text, err = svc.Download(ctx, 2)
	assert.NoError(t, err)
	assert.Empty(t, text)

	mockItems.EXPECT().GetItems(gomock.Any(), int64(3)).Return(nil, errors.New("db down"))
	_, err = svc.Download(ctx, 3)
	assert.EqualError(t, err, "db down")
}
