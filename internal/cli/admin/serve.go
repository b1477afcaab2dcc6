package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/media-confidence/aifaq/internal/api/handlers"
	"github.com/media-confidence/aifaq/internal/api/middleware"
	"github.com/media-confidence/aifaq/internal/cli"
	"github.com/media-confidence/aifaq/internal/database"
	"github.com/media-confidence/aifaq/internal/jobs"
	"github.com/media-confidence/aifaq/internal/openai"
	"github.com/media-confidence/aifaq/internal/ratelimit"
	"github.com/media-confidence/aifaq/internal/repository"
	"github.com/media-confidence/aifaq/internal/server"
	"github.com/media-confidence/aifaq/internal/service"
	"github.com/media-confidence/aifaq/internal/telemetry"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long:  "Start the FAQ site, the chat API and the admin API on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "", "Port to listen on (overrides AIFAQ_PORT)")
	cmd.Flags().Bool("no-migrate", false, "Skip automatic database migrations on startup")
	cli.BindEnv(cmd, "port", "AIFAQ_PORT")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e, err := loadEnv(os.Stdout)
	if err != nil {
		return err
	}
	cfg, logger := e.cfg, e.logger
	ctx = logger.WithContext(ctx)

	shutdownTelemetry, err := telemetry.Init(telemetry.Config{
		DSN:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		TracesSampleRate: cfg.TracesSampleRate(),
	})
	if err != nil {
		logger.Warn().Err(err).Msg("telemetry init failed, continuing without tracing")
	} else {
		defer shutdownTelemetry()
	}

	if port, _ := cmd.Flags().GetString("port"); port != "" {
		cfg.Port = port
	}

	pool, err := e.openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	if noMigrate, _ := cmd.Flags().GetBool("no-migrate"); !noMigrate {
		if err := database.Migrate(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	faqRepo := repository.NewFAQRepository(pool)
	domainRepo := repository.NewDomainRepository(pool)
	keywordRepo := repository.NewKeywordRepository(pool)
	chatLogRepo := repository.NewChatLogRepository(pool)
	txRunner := repository.NewTxRunner(pool)

	catalogSvc := service.NewCatalogService(domainRepo, keywordRepo)
	if err := catalogSvc.Refresh(ctx); err != nil {
		logger.Warn().Err(err).Msg("catalog load failed, using built-in defaults")
	}
	stopCatalogWorker := func() {}
	if cfg.CatalogRefreshInterval > 0 {
		catalogWorker := jobs.NewWorker("catalog-refresh", catalogSvc, cfg.CatalogRefreshInterval)
		go catalogWorker.Start(ctx)
		stopCatalogWorker = catalogWorker.Stop
	}

	faqSvc := service.NewFAQService(faqRepo, domainRepo, keywordRepo, txRunner)
	chatLogSvc := service.NewChatLogService(chatLogRepo)

	var responder handlers.ChatResponder
	if cfg.HasOpenAI() {
		relay, err := openai.NewChatClient(openai.Config{
			APIKey:    cfg.OpenAIAPIKey,
			BaseURL:   cfg.OpenAIBaseURL,
			Model:     cfg.ChatModel,
			MaxTokens: cfg.ChatMaxTokens,
			Timeout:   cfg.RelayTimeout,
		})
		if err != nil {
			return fmt.Errorf("failed to create chat client: %w", err)
		}

		opts := []service.ChatOption{service.WithMaxMessages(cfg.ChatMaxMessages)}
		if cfg.ChatLogEnabled {
			opts = append(opts, service.WithChatLogs(chatLogRepo))
		}
		responder = service.NewChatService(relay, catalogSvc, service.NewMatchResolver(faqRepo), opts...)
		logger.Info().Str("model", cfg.ChatModel).Msg("chat relay configured")
	} else {
		logger.Warn().Msg("AIFAQ_OPENAI_API_KEY not set, chat requests will fail")
	}

	var chatLimiter middleware.Allower
	if cfg.HasRateLimit() {
		counter, err := ratelimit.NewRedisCounter(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, chat rate limiting disabled")
		} else {
			defer counter.Close()
			chatLimiter = ratelimit.NewLimiter(counter, cfg.ChatRateLimit, time.Minute)
			logger.Info().Int("per_minute", cfg.ChatRateLimit).Msg("chat rate limiting enabled")
		}
	}

	pageHandler, err := handlers.NewPageHandler(faqSvc, catalogSvc)
	if err != nil {
		return fmt.Errorf("failed to load page templates: %w", err)
	}

	router := server.NewRouter(server.RouterConfig{
		Logger:        logger,
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
		ChatLimiter:   chatLimiter,
		FAQHandler:    handlers.NewFAQHandler(faqSvc),
		AdminHandler:  handlers.NewAdminHandler(faqSvc, chatLogSvc),
		ChatHandler:   handlers.NewChatHandler(responder),
		PageHandler:   pageHandler,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			stopCatalogWorker()
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}
	logger.Info().Msg("shutting down")

	stopCatalogWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info().Msg("server exited")
	return nil
}
