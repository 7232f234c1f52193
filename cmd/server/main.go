package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rezkam/taskpad/internal/application/auth"
	"github.com/rezkam/taskpad/internal/application/task"
	"github.com/rezkam/taskpad/internal/application/taxonomy"
	"github.com/rezkam/taskpad/internal/config"
	httpserver "github.com/rezkam/taskpad/internal/infrastructure/http"
	"github.com/rezkam/taskpad/internal/infrastructure/http/handler"
	"github.com/rezkam/taskpad/internal/infrastructure/persistence/postgres"
	"github.com/rezkam/taskpad/internal/storage"
	"github.com/rezkam/taskpad/internal/storage/fs"
	"github.com/rezkam/taskpad/internal/storage/gcs"
	"github.com/rezkam/taskpad/pkg/observability"
)

func main() {
	if err := run(); err != nil {
		// slog may not be initialized yet if config loading fails
		fmt.Fprintf(os.Stderr, "failed to run: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Root context for all normal operations, cancelled on SIGTERM/SIGINT.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Observability: logger, tracer, meter. Endpoint and headers come from
	// the standard OTEL_* env vars.
	lp, logger, err := observability.InitLogger(ctx, cfg.Observability.ServiceName, cfg.Observability.OTelEnabled)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer shutdownProvider(lp.Shutdown, "logger provider")
	slog.SetDefault(logger)

	tp, err := observability.InitTracerProvider(ctx, cfg.Observability.ServiceName, cfg.Observability.OTelEnabled)
	if err != nil {
		return fmt.Errorf("failed to init tracer provider: %w", err)
	}
	defer shutdownProvider(tp.Shutdown, "tracer provider")

	mp, err := observability.InitMeterProvider(ctx, cfg.Observability.ServiceName, cfg.Observability.OTelEnabled)
	if err != nil {
		return fmt.Errorf("failed to init meter provider: %w", err)
	}
	defer shutdownProvider(mp.Shutdown, "meter provider")

	slog.InfoContext(ctx, "starting taskpad", "env", cfg.Env)

	// Storage.
	store, err := postgres.NewStoreWithConfig(ctx, postgres.DBConfig{
		DSN:             cfg.Database.PostgresURL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	})
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}()
	slog.InfoContext(ctx, "storage initialized", "url", maskPassword(cfg.Database.PostgresURL))

	blobs, err := newBlobStore(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to create blob store: %w", err)
	}

	// Services.
	authenticator := auth.NewAuthenticator(store, auth.Config{
		JWTSecret: []byte(cfg.Auth.JWTSecret),
		TokenTTL:  cfg.Auth.TokenTTL,
	})
	limiter := auth.NewLoginLimiter(cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow)
	taxonomySvc := taxonomy.NewService(store)
	taskSvc := task.NewService(store)

	// HTTP server.
	h := handler.New(authenticator, taxonomySvc, taskSvc, blobs, limiter)
	server := httpserver.NewAPIServer(h.Routes(), blobs, httpserver.ServerConfig{
		Host:              cfg.Server.Host,
		Port:              cfg.Server.Port,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
		MaxBodyBytes:      cfg.Server.MaxBodyBytes,
		Instrument:        cfg.Observability.OTelEnabled,
	})

	errResult := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errResult <- fmt.Errorf("failed to serve HTTP: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.InfoContext(ctx, "shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down HTTP server: %w", err)
		}
		return nil
	case err := <-errResult:
		return err
	}
}

// newBlobStore selects the image backend from configuration.
func newBlobStore(ctx context.Context, cfg config.StorageConfig) (storage.BlobStore, error) {
	switch cfg.Type {
	case config.StorageTypeFS:
		return fs.NewStore(cfg.UploadDir)
	case config.StorageTypeGCS:
		return gcs.NewStore(ctx, cfg.GCSBucket)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}

// shutdownProvider flushes an observability provider with a timeout so an
// unreachable collector cannot hang process exit.
func shutdownProvider(shutdown func(context.Context) error, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to shutdown "+name, "error", err)
	}
}

// maskPassword redacts the password portion of a connection URL for logging.
func maskPassword(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil {
		return "[REDACTED]"
	}
	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), "xxxxxx")
		}
	}
	return u.String()
}
