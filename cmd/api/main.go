package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handler"
	"storefront/internal/mailer"
	"storefront/internal/payment"
	"storefront/internal/readmodel"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"
	"storefront/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting storefront API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Repositories and the denormalizing reader
	userRepo := repository.NewUserRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)
	detailRepo := repository.NewProductDetailRepository(pool, logger)
	configRepo := repository.NewConfigurationRepository(pool, logger)
	catalogRepo := repository.NewCatalogRepository(pool, logger)
	varRepo := repository.NewVariationRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	blogRepo := repository.NewBlogRepository(pool, logger)
	couponRepo := repository.NewCouponRepository(pool, logger)
	reader := readmodel.NewReader(pool, logger)

	// Media store: S3 when enabled, local disk otherwise
	var store storage.ObjectStore
	if cfg.S3.Enabled {
		store, err = storage.NewS3Store(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.BaseURL, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 store: %w", err)
		}
	} else {
		store = storage.NewLocalStore(cfg.S3.LocalDir, logger)
		logger.Info().Str("dir", cfg.S3.LocalDir).Msg("using local file system for media (S3 disabled)")
	}

	payments := payment.NewHTTPClient(cfg.Payment.URL, cfg.Payment.APIKey, cfg.Payment.Timeout, logger)
	mail := mailer.NewSMTPMailer(cfg.SMTP, logger)

	// Services
	authService := service.NewAuthService(userRepo, mail, cfg.Auth, logger)
	userService := service.NewUserService(userRepo, store, logger)
	cartService := service.NewCartService(cartRepo, detailRepo, varRepo, reader, logger)
	productService := service.NewProductService(productRepo, detailRepo, configRepo, catalogRepo, varRepo, reader, store, logger)
	catalogService := service.NewCatalogService(catalogRepo, store, logger)
	variationService := service.NewVariationService(varRepo, catalogRepo, logger)
	orderService := service.NewOrderService(orderRepo, detailRepo, payments, reader, logger)
	blogService := service.NewBlogService(blogRepo, logger)
	couponService := service.NewCouponService(couponRepo, logger)

	// HTTP handlers
	handlers := router.Handlers{
		Auth:      handler.NewAuthHandler(authService, cfg.Auth.RefreshTTL, logger),
		User:      handler.NewUserHandler(userService, cartService, logger),
		Product:   handler.NewProductHandler(productService, logger),
		Catalog:   handler.NewCatalogHandler(catalogService, logger),
		Variation: handler.NewVariationHandler(variationService, logger),
		Order:     handler.NewOrderHandler(orderService, logger),
		Blog:      handler.NewBlogHandler(blogService, logger),
		Coupon:    handler.NewCouponHandler(couponService, logger),
	}

	mux := router.New(handlers, authService, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
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
