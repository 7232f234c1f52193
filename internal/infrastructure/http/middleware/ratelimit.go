package middleware

import (
	"log/slog"
	"net"
	"net/http"

	"github.com/rezkam/taskpad/internal/application/auth"
	"github.com/rezkam/taskpad/internal/domain"
	"github.com/rezkam/taskpad/internal/infrastructure/http/response"
)

// LoginRateLimit rejects requests once the source address has spent its
// login attempt budget. Mount it on the login route only; combined with
// chi's RealIP middleware the address reflects X-Forwarded-For when present.
func LoginRateLimit(limiter *auth.LoginLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			addr := r.RemoteAddr
			if host, _, err := net.SplitHostPort(addr); err == nil {
				addr = host
			}

			if !limiter.Allow(addr) {
				slog.WarnContext(r.Context(), "login rate limit exceeded", "addr", addr)
				response.Error(w, r, domain.ErrRateLimited)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
