package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/foodgram/internal/middlewares"
	"github.com/sbilibin2017/foodgram/internal/models"
)

//go:generate mockgen -source=users.go -destination=users_mock.go -package=handlers

// Registerer creates accounts.
type Registerer interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.UserDB, error)
}

// PasswordSetter changes the caller's password.
type PasswordSetter interface {
	SetPassword(ctx context.Context, userID int64, req models.SetPasswordRequest) error
}

// UserReader returns user profiles as seen by the viewer.
type UserReader interface {
	Get(ctx context.Context, viewerID, id int64) (*models.User, error)
	List(ctx context.Context, viewerID int64, limit, offset int) ([]models.User, int, error)
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new account. Email and username must be unique.
// @Tags users
// @Accept json
// @Produce json
// @Param registerRequest body models.RegisterRequest true "User registration request"
// @Success 201 {object} models.RegisterResponse "User successfully registered"
// @Failure 400 {object} map[string]string "Field errors"
// @Router /users/ [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		user, err := svc.Register(r.Context(), req)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, models.RegisterResponse{
			Email:     user.Email,
			ID:        user.ID,
			Username:  user.Username,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		})
	}
}

// NewListUsersHandler returns an HTTP handler listing users page by page.
// @Summary List users
// @Tags users
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} models.Page[models.User]
// @Failure 404 {object} models.ErrorResponse "Invalid page"
// @Router /users/ [get]
func NewListUsersHandler(svc UserReader, pageSize int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := parsePagination(r, pageSize)
		if err != nil {
			writeError(w, r, err)
			return
		}

		users, count, err := svc.List(r.Context(), middlewares.GetUserIDFromContext(r.Context()), p.limit, p.offset())
		if err != nil {
			writeError(w, r, err)
			return
		}
		if err := p.check(count); err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, newPage(r, p, users, count))
	}
}

// NewGetUserHandler returns an HTTP handler for a single user profile.
// @Summary Get user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/ [get]
func NewGetUserHandler(svc UserReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		user, err := svc.Get(r.Context(), middlewares.GetUserIDFromContext(r.Context()), id)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

// NewMeHandler returns an HTTP handler for the caller's own profile.
// @Summary Current user
// @Tags users
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Router /users/me/ [get]
// @Security TokenAuth
func NewMeHandler(svc UserReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middlewares.GetUserIDFromContext(r.Context())

		user, err := svc.Get(r.Context(), userID, userID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

// NewSetPasswordHandler returns an HTTP handler changing the caller's password.
// @Summary Change password
// @Tags users
// @Accept json
// @Param setPasswordRequest body models.SetPasswordRequest true "Current and new password"
// @Success 204
// @Failure 400 {object} map[string]string "Field errors"
// @Failure 401 {object} models.ErrorResponse
// @Router /users/set_password/ [post]
// @Security TokenAuth
func NewSetPasswordHandler(svc PasswordSetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.SetPasswordRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		if err := svc.SetPassword(r.Context(), middlewares.GetUserIDFromContext(r.Context()), req); err != nil {
			writeError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
