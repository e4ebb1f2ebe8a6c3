package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sbilibin2017/foodgram/internal/logger"
	"github.com/sbilibin2017/foodgram/internal/models"
)

//go:generate mockgen -source=shopping.go -destination=shopping_mock.go -package=services

// ShoppingItemReader returns the raw ingredient lines of a user's cart.
type ShoppingItemReader interface {
	GetItems(ctx context.Context, userID int64) ([]models.ShoppingListItem, error)
}

// ShoppingListService renders the aggregated shopping list of a cart.
type ShoppingListService struct {
	items ShoppingItemReader
}

func NewShoppingListService(items ShoppingItemReader) *ShoppingListService {
	return &ShoppingListService{items: items}
}

// Download returns the shopping list text for userID. An empty cart gives
// an empty string.
func (s *ShoppingListService) Download(ctx context.Context, userID int64) (string, error) {
	items, err := s.items.GetItems(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to load shopping list", "user_id", userID, "error", err)
		return "", err
	}
	return FormatShoppingList(AggregateShoppingList(items)), nil
}

// AggregateShoppingList sums amounts per (name, unit) and orders the result
// by name, then unit.
func AggregateShoppingList(items []models.ShoppingListItem) []models.ShoppingListItem {
	type key struct{ name, unit string }

	sums := make(map[key]int64)
	for _, item := range items {
		sums[key{item.Name, item.MeasurementUnit}] += item.Amount
	}

	result := make([]models.ShoppingListItem, 0, len(sums))
	for k, amount := range sums {
		result = append(result, models.ShoppingListItem{Name: k.name, MeasurementUnit: k.unit, Amount: amount})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].MeasurementUnit < result[j].MeasurementUnit
	})
	return result
}

// FormatShoppingList renders one "<name> (<unit>) - <amount>" line per item.
func FormatShoppingList(items []models.ShoppingListItem) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%s (%s) - %d", item.Name, item.MeasurementUnit, item.Amount)
	}
	return strings.Join(lines, "\n")
}
