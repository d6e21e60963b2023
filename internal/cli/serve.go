package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kiddoland/backend/internal/client"
	"github.com/kiddoland/backend/internal/config"
	"github.com/kiddoland/backend/internal/handler"
	"github.com/kiddoland/backend/internal/logging"
	"github.com/kiddoland/backend/internal/ratelimit"
	"github.com/kiddoland/backend/internal/service"
)

const shutdownTimeout = 10 * time.Second

func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "serve",
		Short:        "Run the HTTP API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(cfg.Log)

	if err := cfg.Validate(); err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return err
	}

	router, err := buildRouter(ctx, cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return <-errCh
}

func buildRouter(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	users, source, err := service.LoadUsers(cfg.Auth)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("source", source).Int("count", len(users)).Msg("auth users loaded")
	if source == "demo" {
		logger.Warn().Msg("using built-in demo users; set KIDDOLAND_AUTH_USERS or KIDDOLAND_AUTH_USERS_FILE in production")
	}

	var external service.IDTokenVerifier
	if cfg.OIDC.Enabled() {
		verifier, err := service.NewOIDCVerifier(ctx, cfg.OIDC)
		if err != nil {
			return nil, err
		}
		external = verifier
		logger.Info().Str("issuer", cfg.OIDC.IssuerURL).Msg("external identity provider enabled")
	}

	authSvc, err := service.NewAuthService(service.NewUserStore(users), cfg.Auth, external, logger)
	if err != nil {
		return nil, err
	}

	model, err := newCompleter(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, err
	}

	var limiter *ratelimit.Limiter
	if cfg.RateLimit.Enabled() {
		limiter = ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	return handler.NewRouter(handler.RouterDeps{
		Auth:    authSvc,
		Story:   service.NewStoryService(model, logger),
		Limiter: limiter,
		CORS:    cfg.CORS,
		Logger:  logger,
	}), nil
}

func newCompleter(ctx context.Context, cfg config.LLMConfig, logger zerolog.Logger) (service.Completer, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		c, err := client.NewGeminiClient(ctx, cfg.Gemini, logger)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("provider", cfg.Provider).Str("model", c.Model()).Msg("inference client ready")
		return c, nil
	default:
		c, err := client.NewHuggingFaceClient(cfg.HuggingFace, logger)
		if err != nil {
			return nil, err
		}
		// 토큰은 남기지 않는다.
		logger.Info().
			Str("provider", cfg.Provider).
			Str("model", c.Model()).
			Str("url", cfg.HuggingFace.APIURL).
			Dur("timeout", cfg.HuggingFace.Timeout).
			Int("max_retries", cfg.HuggingFace.MaxRetries).
			Msg("inference client ready")
		return c, nil
	}
}
