package middlewares

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// requestInfo is shared by the middlewares of one request so the response
// line can name the caller identified further down the chain.
type requestInfo struct {
	id     string
	userID int64
}

type requestInfoKey struct{}

// LoggingMiddleware tags every request with an id and logs one line when it
// arrives and one when the response is written. A valid UUID in the incoming
// X-Request-ID header is kept, anything else is replaced.
func LoggingMiddleware(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			info := &requestInfo{id: r.Header.Get("X-Request-ID")}
			if _, err := uuid.Parse(info.id); err != nil {
				info.id = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", info.id)

			log.Infow("request",
				"request_id", info.id,
				"method", r.Method,
				"uri", r.RequestURI,
				"remote_addr", r.RemoteAddr,
			)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), requestInfoKey{}, info)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log.Infow("response",
				"request_id", info.id,
				"user_id", info.userID,
				"status", status,
				"response_size", strconv.Itoa(ww.BytesWritten())+"B",
				"duration", time.Since(start),
			)
		})
	}
}

// GetRequestIDFromContext returns the id assigned by LoggingMiddleware, or ""
// outside of it.
func GetRequestIDFromContext(ctx context.Context) string {
	if info, ok := ctx.Value(requestInfoKey{}).(*requestInfo); ok {
		return info.id
	}
	return ""
}

func setLoggedUserID(ctx context.Context, userID int64) {
	if info, ok := ctx.Value(requestInfoKey{}).(*requestInfo); ok {
		info.userID = userID
	}
}
