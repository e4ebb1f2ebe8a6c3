package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/sbilibin2017/foodgram/internal/middlewares"
	"github.com/sbilibin2017/foodgram/internal/models"
)

//go:generate mockgen -source=subscriptions.go -destination=subscriptions_mock.go -package=handlers

// Subscriber manages the caller's subscriptions to authors.
type Subscriber interface {
	Subscribe(ctx context.Context, userID, authorID int64, recipesLimit int) (*models.Subscription, error)
	Unsubscribe(ctx context.Context, userID, authorID int64) error
	List(ctx context.Context, userID int64, limit, offset, recipesLimit int) ([]models.Subscription, int, error)
}

// recipesLimit reads recipes_limit. A missing or invalid value means no limit.
func recipesLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("recipes_limit"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

// NewListSubscriptionsHandler returns an HTTP handler listing authors the caller follows.
// @Summary List subscriptions
// @Tags users
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param recipes_limit query int false "Recipes shown per author"
// @Success 200 {object} models.Page[models.Subscription]
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse "Invalid page"
// @Router /users/subscriptions/ [get]
// @Security TokenAuth
func NewListSubscriptionsHandler(svc Subscriber, pageSize int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := parsePagination(r, pageSize)
		if err != nil {
			writeError(w, r, err)
			return
		}

		subs, count, err := svc.List(r.Context(), middlewares.GetUserIDFromContext(r.Context()), p.limit, p.offset(), recipesLimit(r))
		if err != nil {
			writeError(w, r, err)
			return
		}
		if err := p.check(count); err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, newPage(r, p, subs, count))
	}
}

// NewSubscribeHandler returns an HTTP handler following an author.
// @Summary Subscribe
// @Tags users
// @Produce json
// @Param id path int true "Author ID"
// @Param recipes_limit query int false "Recipes shown"
// @Success 201 {object} models.Subscription
// @Failure 400 {object} models.ErrorResponse "Self or duplicate subscription"
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/subscribe/ [post]
// @Security TokenAuth
func NewSubscribeHandler(svc Subscriber) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		sub, err := svc.Subscribe(r.Context(), middlewares.GetUserIDFromContext(r.Context()), id, recipesLimit(r))
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, sub)
	}
}

// NewUnsubscribeHandler returns an HTTP handler unfollowing an author.
// @Summary Unsubscribe
// @Tags users
// @Param id path int true "Author ID"
// @Success 204
// @Failure 400 {object} models.ErrorResponse "Self or missing subscription"
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/subscribe/ [delete]
// @Security TokenAuth
func NewUnsubscribeHandler(svc Subscriber) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		if err := svc.Unsubscribe(r.Context(), middlewares.GetUserIDFromContext(r.Context()), id); err != nil {
			writeError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
