// Package http assembles the router and the net/http server around the
// handler layer.
package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	mw "github.com/rezkam/taskpad/internal/infrastructure/http/middleware"
	"github.com/rezkam/taskpad/internal/storage"
)

// Default configuration values for the HTTP server.
const (
	DefaultPort              = "8080"
	DefaultReadTimeout       = 15 * time.Second
	DefaultWriteTimeout      = 15 * time.Second
	DefaultIdleTimeout       = 60 * time.Second
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultMaxHeaderBytes    = 1 << 20  // 1MB
	DefaultMaxBodyBytes      = 10 << 20 // 10MB, image uploads included
)

// ServerConfig holds configuration for the HTTP server and router.
type ServerConfig struct {
	Host              string // empty means all interfaces
	Port              string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	MaxHeaderBytes    int
	MaxBodyBytes      int64
	Instrument        bool // wrap the router in otelhttp when telemetry is on
}

// applyDefaults sets default values for any unset (zero) fields.
func (cfg *ServerConfig) applyDefaults() {
	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.ReadHeaderTimeout <= 0 {
		cfg.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}
	if cfg.MaxHeaderBytes <= 0 {
		cfg.MaxHeaderBytes = DefaultMaxHeaderBytes
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
}

// APIServer wraps the HTTP server with the router and all HTTP concerns.
type APIServer struct {
	server *http.Server
}

// NewAPIServer creates the HTTP server. apiRoutes is the handler layer's
// router, mounted under /auth to match the client contract; uploaded images
// are served read-only under /uploads.
func NewAPIServer(apiRoutes chi.Router, blobs storage.BlobStore, cfg ServerConfig) *APIServer {
	cfg.applyDefaults()

	router := setupRouter(apiRoutes, blobs, cfg)

	var handler http.Handler = router
	if cfg.Instrument {
		handler = otelhttp.NewHandler(router, "taskpad-http")
	}

	return &APIServer{
		server: &http.Server{
			Addr:              cfg.Host + ":" + cfg.Port,
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			MaxHeaderBytes:    cfg.MaxHeaderBytes,
		},
	}
}

// setupRouter creates and configures the chi router with all middleware and
// routes.
func setupRouter(apiRoutes chi.Router, blobs storage.BlobStore, cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(mw.MaxBodyBytes(cfg.MaxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			slog.ErrorContext(r.Context(), "failed to write health check response", "error", err)
		}
	})

	r.Get("/uploads/{name}", serveUpload(blobs))

	r.Mount("/auth", apiRoutes)

	return r
}

// serveUpload streams a stored image. Going through the BlobStore keeps the
// route working for every backend, local filesystem or GCS alike.
func serveUpload(blobs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		blob, err := blobs.Open(r.Context(), name)
		if err != nil {
			if errors.Is(err, storage.ErrBlobNotFound) {
				http.NotFound(w, r)
				return
			}
			slog.ErrorContext(r.Context(), "failed to open upload", "name", name, "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		defer func() {
			if err := blob.Close(); err != nil {
				slog.ErrorContext(r.Context(), "failed to close upload", "name", name, "error", err)
			}
		}()

		if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		if _, err := io.Copy(w, blob); err != nil {
			slog.ErrorContext(r.Context(), "failed to stream upload", "name", name, "error", err)
		}
	}
}

// Start starts the HTTP server.
func (s *APIServer) Start() error {
	slog.Info("starting HTTP server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server. The provided context
// bounds how long outstanding requests may take.
func (s *APIServer) Shutdown(ctx context.Context) error {
	slog.Info("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
