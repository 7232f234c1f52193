// Package response centralizes JSON writing and the mapping from domain
// errors to HTTP status codes. Handlers return domain errors; nothing else
// decides status codes.
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rezkam/taskpad/internal/domain"
)

// internalErrorJSON is pre-marshaled so a failure can always be reported,
// even when encoding the intended payload fails.
const internalErrorJSON = `{"message":"internal server error"}`

// messageBody is the envelope for status and error messages, matching the
// client contract.
type messageBody struct {
	Message string `json:"message"`
}

// JSON writes v with the given status. An encoding failure downgrades the
// response to a 500 with a JSON error body.
func JSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		if _, err := w.Write([]byte(internalErrorJSON)); err != nil {
			slog.Error("failed to write error response", "error", err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// Message writes a {"message": ...} body with the given status.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, messageBody{Message: msg})
}

// Error translates a domain error into a status code and message body.
// Unknown errors are logged and reported as a generic 500 so internals never
// leak to clients.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		Message(w, http.StatusBadRequest, fmt.Sprintf("%s %s", vErr.Field, vErr.Issue))
		return
	}

	switch {
	case errors.Is(err, domain.ErrNoFieldsToUpdate):
		Message(w, http.StatusBadRequest, "no fields to update")
	case errors.Is(err, domain.ErrStatusNotConfigured):
		Message(w, http.StatusBadRequest, "no 'Not Started' status configured for this user")
	case errors.Is(err, domain.ErrUserExists):
		Message(w, http.StatusConflict, "username or email already exists")
	case errors.Is(err, domain.ErrDuplicateName):
		Message(w, http.StatusConflict, "name already exists")
	case errors.Is(err, domain.ErrDuplicateTitle):
		Message(w, http.StatusConflict, "task title already exists")
	case errors.Is(err, domain.ErrUserNotFound):
		Message(w, http.StatusNotFound, "user not found")
	case errors.Is(err, domain.ErrNotFound):
		Message(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrWrongPassword):
		Message(w, http.StatusUnauthorized, "incorrect password")
	case errors.Is(err, domain.ErrUnauthorized):
		Message(w, http.StatusUnauthorized, "invalid or expired token")
	case errors.Is(err, domain.ErrMissingToken):
		Message(w, http.StatusForbidden, "a token is required for authentication")
	case errors.Is(err, domain.ErrRateLimited):
		Message(w, http.StatusTooManyRequests, "too many login attempts, please try again later")
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		Message(w, http.StatusInternalServerError, "internal server error")
	}
}
