package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/foodgram/internal/middlewares"
)

//go:generate mockgen -source=shopping.go -destination=shopping_mock.go -package=handlers

// ShoppingListDownloader renders the caller's shopping list.
type ShoppingListDownloader interface {
	Download(ctx context.Context, userID int64) (string, error)
}

// NewDownloadShoppingCartHandler returns an HTTP handler serving the shopping
// list as a text attachment.
// @Summary Download shopping list
// @Description One line per ingredient and unit: "<name> (<unit>) - <total>".
// @Tags recipes
// @Produce plain
// @Success 200 {string} string "shopping_list.txt"
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /recipes/download_shopping_cart/ [get]
// @Security TokenAuth
func NewDownloadShoppingCartHandler(svc ShoppingListDownloader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.Download(r.Context(), middlewares.GetUserIDFromContext(r.Context()))
		if err != nil {
			writeError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="shopping_list.txt"`)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(list))
	}
}
