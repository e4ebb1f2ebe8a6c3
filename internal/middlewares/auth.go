package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/foodgram/internal/jwt"
	"github.com/sbilibin2017/foodgram/internal/logger"
	"github.com/sbilibin2017/foodgram/internal/models"
)

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=middlewares

// Tokener defines the minimal interface needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// RevocationChecker tells whether a token was revoked by logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type claimsKey struct{}

// AuthMiddleware identifies the caller from the Authorization header.
// Requests without the header continue anonymously; a malformed, invalid or
// revoked token is rejected with 401.
func AuthMiddleware(tokener Tokener, revoked RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if errors.Is(err, jwt.ErrMissingHeader) {
				next.ServeHTTP(w, r)
				return
			}
			if err != nil {
				logger.Log.Infow("authorization failed", "err", err)
				writeUnauthorized(w, "invalid authorization header")
				return
			}

			claims, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				logger.Log.Infow("authorization failed", "err", err)
				writeUnauthorized(w, "invalid token")
				return
			}

			isRevoked, err := revoked.IsRevoked(ctx, claims.ID)
			if err != nil {
				logger.Log.Errorw("failed to check token revocation", "token_id", claims.ID, "err", err)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(models.ErrorResponse{Errors: "internal server error"})
				return
			}
			if isRevoked {
				logger.Log.Infow("revoked token used", "token_id", claims.ID, "user_id", claims.UserID)
				writeUnauthorized(w, "invalid token")
				return
			}

			ctx = WithClaims(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserIDFromContext(r.Context()) == 0 {
			writeUnauthorized(w, "authentication credentials were not provided")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AuthorOrReadOnly lets safe methods through for everyone and requires an
// authenticated caller otherwise. Whether the caller is the author is decided
// by the service that loads the object.
func AuthorOrReadOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isSafeMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}
		RequireAuth(next).ServeHTTP(w, r)
	})
}

// WithClaims returns a copy of ctx carrying the caller's claims.
func WithClaims(ctx context.Context, claims *jwt.Claims) context.Context {
	if claims != nil {
		setLoggedUserID(ctx, claims.UserID)
	}
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaimsFromContext returns the claims of the authenticated caller or nil.
func GetClaimsFromContext(ctx context.Context) *jwt.Claims {
	claims, _ := ctx.Value(claimsKey{}).(*jwt.Claims)
	return claims
}

// GetUserIDFromContext returns the id of the authenticated caller, or 0 for
// anonymous requests.
func GetUserIDFromContext(ctx context.Context) int64 {
	if claims := GetClaimsFromContext(ctx); claims != nil {
		return claims.UserID
	}
	return 0
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Token")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(models.ErrorResponse{Errors: msg})
}
