package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/sbilibin2017/foodgram/internal/middlewares"
	"github.com/sbilibin2017/foodgram/internal/models"
)

//go:generate mockgen -source=token.go -destination=token_mock.go -package=handlers

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, req models.LoginRequest) (string, error)
}

// Logouter revokes an issued token.
type Logouter interface {
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary Obtain token
// @Description Authenticate by email and password and return a token
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body models.LoginRequest true "Login Request"
// @Success 200 {object} models.LoginResponse "Token returned"
// @Failure 400 {object} models.ErrorResponse "Invalid credentials or request body"
// @Router /auth/token/login/ [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		token, err := svc.Login(r.Context(), req)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, models.LoginResponse{AuthToken: token})
	}
}

// NewLogoutHandler returns an HTTP handler revoking the presented token.
// @Summary Revoke token
// @Tags auth
// @Success 204
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/token/logout/ [post]
// @Security TokenAuth
func NewLogoutHandler(svc Logouter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.GetClaimsFromContext(r.Context())
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		expiresAt := time.Now()
		if claims.ExpiresAt != nil {
			expiresAt = claims.ExpiresAt.Time
		}

		if err := svc.Logout(r.Context(), claims.ID, expiresAt); err != nil {
			writeError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
