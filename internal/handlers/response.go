package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/foodgram/internal/logger"
	"github.com/sbilibin2017/foodgram/internal/middlewares"
	"github.com/sbilibin2017/foodgram/internal/models"
	"github.com/sbilibin2017/foodgram/internal/services"
)

var (
	errMalformedBody = errors.New("malformed request body")
	errInvalidPage   = errors.New("invalid page")
	errNotFound      = errors.New("not found")
	errBodyTooLarge  = errors.New("request body too large")
)

// maxBodyBytes bounds JSON request bodies, base64 images included.
const maxBodyBytes = 10 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError translates err into a response. Unknown errors are logged and
// reported as 500 without details.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, verr.Fields)
	case services.IsConflict(err),
		errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, errMalformedBody),
		errors.Is(err, errBodyTooLarge):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Errors: err.Error()})
	case errors.Is(err, services.ErrNotAuthenticated):
		w.Header().Set("WWW-Authenticate", "Token")
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Errors: err.Error()})
	case errors.Is(err, services.ErrForbidden):
		writeJSON(w, http.StatusForbidden, models.ErrorResponse{Errors: err.Error()})
	case services.IsNotFound(err), errors.Is(err, errInvalidPage), errors.Is(err, errNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Errors: err.Error()})
	default:
		logger.Log.Errorw("internal server error",
			"request_id", middlewares.GetRequestIDFromContext(r.Context()),
			"user_id", middlewares.GetUserIDFromContext(r.Context()),
			"method", r.Method,
			"uri", r.RequestURI,
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Errors: "internal server error"})
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errBodyTooLarge
		}
		return errMalformedBody
	}
	return nil
}

// pathID reads the numeric {id} URL parameter. Non-numeric ids do not
// match any resource.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errNotFound
	}
	return id, nil
}
