package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rezkam/taskpad/internal/domain"
	mw "github.com/rezkam/taskpad/internal/infrastructure/http/middleware"
	"github.com/rezkam/taskpad/internal/infrastructure/http/response"
)

// decodeJSON parses the request body into dst, rejecting unknown syntax but
// not unknown fields; the client sends supersets freely.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &domain.ValidationError{Field: "body", Issue: "is not valid JSON"}
	}
	return nil
}

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Field: "id", Issue: "must be a positive integer"}
	}
	return id, nil
}

// userID extracts the authenticated user set by the auth middleware. Routes
// are registered behind the middleware, so a miss is a programming error and
// reported as such.
func userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := mw.UserID(r.Context())
	if !ok {
		response.Error(w, r, fmt.Errorf("no authenticated user in context"))
		return 0, false
	}
	return id, true
}
