// Package app wires configuration, storage, services and transport into
// a running HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/adumedia/website-backend/internal/adapter/postgres"
	"github.com/adumedia/website-backend/internal/adapter/postgres/article"
	"github.com/adumedia/website-backend/internal/adapter/postgres/edition"
	"github.com/adumedia/website-backend/internal/adapter/postgres/project"
	"github.com/adumedia/website-backend/internal/auth"
	"github.com/adumedia/website-backend/internal/config"
	authsvc "github.com/adumedia/website-backend/internal/service/auth"
	"github.com/adumedia/website-backend/internal/service/content"
	"github.com/adumedia/website-backend/internal/transport/middleware"
	"github.com/adumedia/website-backend/internal/transport/rest"
)

// loginRatePerMinute bounds password attempts per IP.
const loginRatePerMinute = 10

// Run is the application entry point. It blocks until ctx is cancelled,
// then shuts the server down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.Int("port", cfg.Server.Port),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.Migrate {
		logger.Info("applying database migrations")
		if err := postgres.Migrate(pool); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
	}

	// Repositories.
	editionRepo := edition.New(pool)
	articleRepo := article.New(pool)
	projectRepo := project.New(pool)

	// Services.
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := authsvc.New(tokens, cfg.Auth.AdminPassword, cfg.Webhook.Secret)
	contentService := content.New(editionRepo, articleRepo, projectRepo)

	// Transport.
	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	router := rest.NewRouter(rest.RouterDeps{
		Public:       rest.NewPublicHandler(contentService, cfg.Assets.PublicURL, cfg.Site.BaseURL, logger),
		Admin:        rest.NewAdminHandler(authService, contentService, cfg.Assets.PublicURL, logger),
		Webhook:      rest.NewWebhookHandler(authService, logger),
		Health:       rest.NewHealthHandler(pool, BuildVersion()),
		SPA:          rest.NewSPAHandler(cfg.Site.FrontendDir),
		RequireAdmin: middleware.RequireAdmin(authService),
		LoginLimit:   limiter.Limit(loginRatePerMinute),
	})

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(router)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("stopped")
	return nil
}
