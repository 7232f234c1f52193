package middleware

import (
	"net/http"
)

// MaxBodyBytes limits request body size, multipart uploads included. The
// limit is enforced during the actual read, so chunked encoding and spoofed
// Content-Length headers cannot bypass it; an oversized body surfaces to the
// handler as a read error.
func MaxBodyBytes(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				_, _ = w.Write([]byte(`{"message":"request body exceeds size limit"}`))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
