// Package main is the entry point for the service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jsamuelsen/quote-lab/internal/adapters/flags"
	"github.com/jsamuelsen/quote-lab/internal/adapters/http"
	"github.com/jsamuelsen/quote-lab/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-lab/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-lab/internal/adapters/storage"
	"github.com/jsamuelsen/quote-lab/internal/app"
	"github.com/jsamuelsen/quote-lab/internal/auth"
	"github.com/jsamuelsen/quote-lab/internal/platform/config"
	"github.com/jsamuelsen/quote-lab/internal/platform/logging"
	"github.com/jsamuelsen/quote-lab/internal/platform/metrics"
	"github.com/jsamuelsen/quote-lab/internal/platform/telemetry"
	"github.com/jsamuelsen/quote-lab/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		if err := hashPassword(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(2)
		}

		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// hashPassword prints a bcrypt hash for auth.superuser.password_hash.
func hashPassword(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s hash-password <password>", os.Args[0])
	}

	hash, err := auth.HashPassword(args[0])
	if err != nil {
		return err
	}

	fmt.Println(hash)

	return nil
}

func run() error {
	ctx := context.Background()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("database", cfg.Database.Driver),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
		Insecure:     cfg.Telemetry.Insecure,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Open the store and run migrations
	store, err := storage.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.Error("store close error", slog.Any("error", closeErr))
		}
	}()

	// 6. Create health registry
	healthRegistry := ports.NewHealthRegistry()
	if err := healthRegistry.Register(store); err != nil {
		return fmt.Errorf("registering store health check: %w", err)
	}

	// 7. Metrics and flags
	recorder, err := metrics.NewRecorder(nil)
	if err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}

	featureFlags := flags.FromConfig(cfg.API)

	// 8. Create services (application layer)
	authorService := app.NewAuthorService(app.AuthorServiceConfig{
		Authors: store.Authors(),
		Metrics: recorder,
		Logger:  logger,
	})

	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		Quotes:  store.Quotes(),
		Authors: store.Authors(),
		Flags:   featureFlags,
		Metrics: recorder,
		Logger:  logger,
	})

	// 9. Login gate
	tokens := auth.NewTokenManager(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer, cfg.Auth.JWT.TTL)

	superuser, err := newSuperuser(&cfg.Auth, logger)
	if err != nil {
		return err
	}

	// 10. Create HTTP server
	server := http.New(&cfg.Server, logger)

	// 11. Setup router with all middleware and routes
	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:        logger,
		ServiceName:   cfg.Telemetry.ServiceName,
		Gate:          middleware.NewAuthGate(&cfg.Auth, tokens),
		HealthHandler: handlers.NewHealthHandler(healthRegistry, handlers.NewBuildInfo(Version, Commit, BuildTime), nil),
		AuthHandler: handlers.NewAuthHandler(superuser, tokens, handlers.SessionConfig{
			CookieName: cfg.Auth.Session.CookieName,
			Secure:     cfg.Auth.Session.Secure,
		}),
		AuthorHandler: handlers.NewAuthorHandler(authorService),
		QuoteHandler:  handlers.NewQuoteHandler(quoteService, featureFlags),
		Timeout:       cfg.API.RequestTimeout,
	})

	// 12. Bind and serve in the background
	serverErr, err := server.Start()
	if err != nil {
		return err
	}

	// 13. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// newSuperuser returns nil when no password hash is configured, which
// disables password login.
func newSuperuser(cfg *config.AuthConfig, logger *slog.Logger) (*auth.Superuser, error) {
	if cfg.Superuser.PasswordHash == "" {
		logger.Warn("superuser password hash not set, password login disabled")
		return nil, nil //nolint:nilnil // nil superuser disables login
	}

	superuser, err := auth.NewSuperuser(cfg.Superuser.Username, cfg.Superuser.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("configuring superuser: %w", err)
	}

	return superuser, nil
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	// Listen for OS signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-serverErr:
		if !ok {
			return nil
		}

		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	// Stop accepting new requests, drain in-flight
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
