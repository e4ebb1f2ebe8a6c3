package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/foodgram/internal/jwt"
	"github.com/sbilibin2017/foodgram/internal/middlewares"
)

func withUser(r *http.Request, userID int64) *http.Request {
	return r.WithContext(middlewares.WithClaims(r.Context(), &jwt.Claims{UserID: userID}))
}

func withID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
