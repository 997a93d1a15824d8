package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shoe-store/internal/cache"
	"shoe-store/internal/config"
	"shoe-store/internal/database"
	"shoe-store/internal/fixture"
	"shoe-store/internal/handler"
	"shoe-store/internal/model"
	"shoe-store/internal/repository"
	"shoe-store/internal/router"
	"shoe-store/internal/service"
	"shoe-store/internal/view"

	"github.com/rs/zerolog"
)

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
	logger.Info().Str("store", cfg.Store.Name).Msg("starting shoe-store server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	// Initialize repository
	shoeRepo := repository.NewShoeRepository(pool, logger)

	// Initialize listing cache
	listings := cache.NewNoop[[]model.Shoe]()
	if cfg.Cache.Enabled {
		client, err := cache.NewClient(ctx, cfg.Cache, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize cache: %w", err)
		}
		defer client.Close()
		listings = cache.NewRedis[[]model.Shoe](client, "listing", cfg.Cache.TTLDuration(), logger)
	} else {
		logger.Info().Msg("listing cache disabled")
	}

	// Initialize service
	shoeService := service.NewShoeService(shoeRepo, listings, time.Now, logger)

	if cfg.Seed.File != "" {
		if err := seedCatalog(ctx, cfg, shoeService, logger); err != nil {
			return fmt.Errorf("failed to seed catalogue: %w", err)
		}
	}

	// Initialize HTTP handlers
	renderer, err := view.NewHTMLRenderer()
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	pageHandler := handler.NewPageHandler(shoeService, renderer, cfg.Store.Name, logger)
	shoeHandler := handler.NewShoeHandler(shoeService, logger)

	// Initialize router
	mux := router.New(pageHandler, shoeHandler, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
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

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// seedCatalog imports the fixture named by SEED_FILE, trying S3 first when
// it is enabled.
func seedCatalog(ctx context.Context, cfg *config.Config, svc service.ShoeService, logger zerolog.Logger) error {
	fileLoader := fixture.NewFileLoader(logger)

	var s3Loader fixture.Loader
	if cfg.S3.Enabled {
		l, err := fixture.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = l
		}
	} else {
		logger.Info().Msg("using local file system for catalogue fixtures (S3 disabled)")
	}

	loader := fixture.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, logger)

	shoes, err := loader.Load(ctx, cfg.Seed.File)
	if err != nil {
		return err
	}

	n, err := svc.Import(ctx, shoes)
	if err != nil {
		return err
	}

	logger.Info().Int("count", n).Str("file", cfg.Seed.File).Msg("catalogue seeded")
	return nil
}
