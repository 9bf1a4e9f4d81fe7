// widgetapi serves per-location stock availability for a single Shopify
// store. Designed for Cloud Run deployment with stateless operation.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"instock-widget/internal/compat"
	"instock-widget/internal/config"
	"instock-widget/internal/handler"
	"instock-widget/internal/logging"
	"instock-widget/internal/middleware"
	"instock-widget/internal/shopify"
)

var (
	configFile  = kingpin.Flag("config", "Path to YAML config file.").Short('c').String()
	port        = kingpin.Flag("port", "Listen port, overrides config.").Int()
	environment = kingpin.Flag("environment", "development or production, overrides config.").String()
	logLevel    = kingpin.Flag("log-level", "Log level, overrides config.").String()
	storeDomain = kingpin.Flag("store", "myshopify domain to serve, overrides config.").String()
)

func main() {
	kingpin.Version(handler.ServiceVersion)
	kingpin.HelpFlag.Short('h')
	kingpin.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Local development reads credentials from .env; absence is normal.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg, err := config.Load(ctx, *configFile, config.Overrides{
		Port:        *port,
		Environment: *environment,
		LogLevel:    *logLevel,
		StoreDomain: *storeDomain,
	})
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.String("environment", cfg.Environment),
		zap.String("store", cfg.Store.Domain),
		zap.String("api_version", cfg.Store.APIVersion),
		zap.Int("port", cfg.Port),
	)

	provider, err := shopify.New(shopify.Config{
		StoreDomain: cfg.Store.Domain,
		APIVersion:  cfg.Store.APIVersion,
		AccessToken: cfg.Store.AccessToken,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating provider: %w", err)
	}

	h := handler.New(provider, cfg.Store.Domain, logger)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	// Recovery must be outermost to catch panics from the other middleware.
	// The compatibility gate runs innermost so rejected embeds still get
	// request ids, logs, and rate limiting.
	httpHandler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logging(logger),
		middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		compat.Middleware(logger),
	)(mux)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      httpHandler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Channel for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Channel for server errors
	serverErr := make(chan error, 1)

	go func() {
		logger.Info("server starting", zap.String("addr", server.Addr))
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-shutdown:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))

		// Give outstanding requests time to complete
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			// Force close if graceful shutdown fails
			server.Close()
			return fmt.Errorf("shutdown error: %w", err)
		}
	}

	logger.Info("server stopped")
	return nil
}
