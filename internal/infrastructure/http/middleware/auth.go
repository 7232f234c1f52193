package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rezkam/taskpad/internal/application/auth"
	"github.com/rezkam/taskpad/internal/domain"
	"github.com/rezkam/taskpad/internal/infrastructure/http/response"
)

type contextKey string

const userIDKey contextKey = "userID"

// Auth is HTTP middleware for bearer token authentication.
type Auth struct {
	authenticator *auth.Authenticator
}

// NewAuth creates a new auth middleware.
func NewAuth(authenticator *auth.Authenticator) *Auth {
	return &Auth{authenticator: authenticator}
}

// Validate is a chi middleware that verifies the Authorization bearer token
// and stores the authenticated user ID in the request context. A request
// with no token at all gets 403; a malformed, mis-signed, or expired token
// gets 401.
func (a *Auth) Validate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			slog.WarnContext(r.Context(), "authentication failed: missing Authorization header",
				"path", r.URL.Path,
				"method", r.Method)
			response.Error(w, r, domain.ErrMissingToken)
			return
		}

		token, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			slog.WarnContext(r.Context(), "authentication failed: invalid Authorization header format",
				"path", r.URL.Path,
				"method", r.Method)
			response.Error(w, r, domain.ErrUnauthorized)
			return
		}

		userID, err := a.authenticator.VerifyToken(token)
		if err != nil {
			slog.WarnContext(r.Context(), "authentication failed: invalid or expired token",
				"path", r.URL.Path,
				"method", r.Method)
			response.Error(w, r, domain.ErrUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID extracts the authenticated user ID stored by Validate.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}
