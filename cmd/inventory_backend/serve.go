package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/b2b_inventory_app/internal/adapters/notify"
	"github.com/SscSPs/b2b_inventory_app/internal/adapters/rates"
	portsrepo "github.com/SscSPs/b2b_inventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/b2b_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/b2b_inventory_app/internal/core/services"
	"github.com/SscSPs/b2b_inventory_app/internal/handlers"
	"github.com/SscSPs/b2b_inventory_app/internal/middleware"
	"github.com/SscSPs/b2b_inventory_app/internal/platform/config"
	"github.com/SscSPs/b2b_inventory_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/b2b_inventory_app/internal/utils"
	"github.com/SscSPs/b2b_inventory_app/pkg/database"
	"github.com/SscSPs/b2b_inventory_app/pkg/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const (
	shutdownTimeout = 15 * time.Second
	hubBuffer       = 64
)

var skipMigrations bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, slog.Default())
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply migrations on startup")
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if !skipMigrations {
		logger.Info("Running database migrations...")
		if err := runMigrations(cfg, false); err != nil {
			return err
		}
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("initialize database pool: %w", err)
	}
	defer database.ClosePgxPool(dbPool)

	registry := metrics.NewRegistry()
	serverMetrics := metrics.NewServerMetrics(registry)
	domainMetrics := metrics.NewDomainMetrics(registry)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, "", logger)
	defer posthogClient.Close()

	hub := notify.NewHub(hubBuffer)
	notifier := notify.Multi{hub}
	if len(cfg.KafkaBrokers) > 0 {
		publisher := notify.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		defer func() {
			if cerr := publisher.Close(); cerr != nil {
				logger.Error("Failed to close kafka publisher", slog.String("error", cerr.Error()))
			}
		}()
		notifier = append(notifier, publisher)
		logger.Info("Publishing events to kafka", slog.String("topic", cfg.KafkaTopic))
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos, services.ContainerDeps{
		RateSource:     newRateSource(cfg, repos.ExchangeRateRepo),
		RateSourceName: cfg.RateSource,
		Notifier:       notifier,
		Metrics:        domainMetrics,
	})

	if err := handlers.RegisterValidators(); err != nil {
		return fmt.Errorf("register validators: %w", err)
	}
	apiLimiter, err := middleware.NewMemoryLimiter(cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("invalid RATE_LIMIT %q: %w", cfg.RateLimit, err)
	}
	loginLimiter, err := middleware.NewMemoryLimiter(cfg.LoginRateLimit)
	if err != nil {
		return fmt.Errorf("invalid LOGIN_RATE_LIMIT %q: %w", cfg.LoginRateLimit, err)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.Use(middleware.Metrics(serverMetrics), middleware.PosthogMiddleware(posthogClient))
	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("set trusted proxies: %w", err)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, handlers.RouteDeps{
		Events:         hub,
		MetricsHandler: metrics.HandlerFor(registry),
		APILimiter:     apiLimiter,
		LoginLimiter:   loginLimiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	// Shutdown waits for active handlers, and notification streams only return once their channel closes.
	hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// newRateSource picks the configured source and puts an expiring LRU in front of it.
func newRateSource(cfg *config.Config, stored portsrepo.ExchangeRateReader) portssvc.RateSource {
	var source portssvc.RateSource
	switch cfg.RateSource {
	case config.RateSourceNBP:
		source = rates.NewNBPRateSource(cfg.NBPBaseURL, cfg.RateHTTPTimeout)
	default:
		source = rates.NewDatabaseRateSource(stored)
	}
	return rates.NewCachedRateSource(source, cfg.RateCacheSize, cfg.RateCacheTTL)
}
