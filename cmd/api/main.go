package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cafe-site/internal/auth"
	"cafe-site/internal/config"
	"cafe-site/internal/database"
	"cafe-site/internal/events"
	"cafe-site/internal/handler"
	"cafe-site/internal/media"
	"cafe-site/internal/metrics"
	"cafe-site/internal/promotion"
	"cafe-site/internal/repository"
	"cafe-site/internal/router"
	"cafe-site/internal/service"

	"github.com/rs/zerolog"
)

// listenBackoff is the pause after a failed read from the change feed.
const listenBackoff = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting cafe-site API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	m := metrics.New()

	// Initialize repositories
	menuRepo := repository.NewMenuRepository(pool, logger)
	categoryRepo := repository.NewCategoryRepository(pool, logger)
	promotionRepo := repository.NewPromotionRepository(pool, logger)
	galleryRepo := repository.NewGalleryRepository(pool, logger)
	settingsRepo := repository.NewSettingsRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	// Load the promotion snapshot before serving any prices
	snapshot := promotion.NewSnapshot(promotionRepo, logger)
	snapshot.OnRefresh(m.SnapshotRefreshed)
	if err := snapshot.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to load promotions: %w", err)
	}
	go snapshot.Run(ctx, cfg.Promotion.RefreshInterval)

	publisher, err := startChangeFeed(ctx, cfg.Kafka, snapshot, logger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	store, mediaDir, err := newMediaStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize media store: %w", err)
	}

	// Initialize services
	menuService := service.NewMenuService(menuRepo, categoryRepo, snapshot, logger)
	categoryService := service.NewCategoryService(categoryRepo, menuRepo, logger)
	promotionService := service.NewPromotionService(promotionRepo, menuRepo, snapshot, publisher, logger)
	galleryService := service.NewGalleryService(galleryRepo, store, cfg.Media.MaxUploadBytes, logger)
	settingsService := service.NewSettingsService(settingsRepo, logger)
	orderService := service.NewOrderService(orderRepo, menuRepo, snapshot, logger)

	sessions := auth.NewSessions(cfg.Admin.Password, cfg.Admin.SessionSecret, cfg.Admin.SessionTTL, cfg.Admin.SecureCookie)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Menu:      handler.NewMenuHandler(menuService, logger),
		Category:  handler.NewCategoryHandler(categoryService, logger),
		Promotion: handler.NewPromotionHandler(promotionService, logger),
		Gallery:   handler.NewGalleryHandler(galleryService, cfg.Media.MaxUploadBytes, logger),
		Settings:  handler.NewSettingsHandler(settingsService, logger),
		Order:     handler.NewOrderHandler(orderService, m, logger),
		Auth:      handler.NewAuthHandler(sessions, logger),
	}

	// Initialize router
	mux := router.New(handlers, router.Options{
		CORSOrigin: cfg.Server.CORSOrigin,
		MediaDir:   mediaDir,
		Sessions:   sessions,
		Metrics:    m,
	}, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Stop background refreshes and the change feed listener
		cancel()

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newMediaStore builds the configured gallery store. The returned directory is
// non-empty only for the local backend, whose files the server itself serves.
func newMediaStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (media.Store, string, error) {
	if cfg.Media.Backend == config.MediaBackendS3 {
		store, err := media.NewS3Store(ctx, media.S3Options{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Prefix:    cfg.S3.Prefix,
			PublicURL: cfg.S3.PublicURL,
		}, logger)
		return store, "", err
	}

	store, err := media.NewLocalStore(cfg.Media.Dir, logger)
	if err != nil {
		return nil, "", err
	}
	logger.Info().Str("dir", cfg.Media.Dir).Msg("using local file system for gallery media")
	return store, cfg.Media.Dir, nil
}

// startChangeFeed connects the promotion snapshot to the kafka change feed
// when one is configured. Without brokers each instance relies on its
// periodic refresh and a no-op publisher is returned.
func startChangeFeed(ctx context.Context, cfg config.KafkaConfig, snapshot *promotion.Snapshot, logger zerolog.Logger) (events.Publisher, error) {
	if !cfg.Enabled() {
		logger.Info().Msg("promotion change feed disabled, relying on periodic refresh")
		return events.NewNoopPublisher(), nil
	}

	groupID := cfg.GroupID
	if groupID == "" {
		host, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("failed to derive kafka group id: %w", err)
		}
		groupID = "cafe-site-" + host
	}

	reader := events.NewReader(cfg.Brokers, cfg.Topic, groupID)
	go func() {
		events.Listen(ctx, reader, listenBackoff, logger, func(evt events.Event) {
			if evt.Type == events.PromotionChanged {
				snapshot.Notify()
			}
		})
		if err := reader.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close kafka reader")
		}
	}()

	logger.Info().
		Strs("brokers", cfg.Brokers).
		Str("topic", cfg.Topic).
		Str("group_id", groupID).
		Msg("promotion change feed enabled")

	return events.NewKafkaPublisher(events.NewWriter(cfg.Brokers, cfg.Topic), logger), nil
}
