package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ameen-storefront/config"
	httpHandler "ameen-storefront/internal/adapter/http/handler"
	pgStorage "ameen-storefront/internal/adapter/storage/postgres"
	redisStorage "ameen-storefront/internal/adapter/storage/redis"
	"ameen-storefront/internal/core/ports"
	"ameen-storefront/internal/service"
	"ameen-storefront/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("base_currency", cfg.Ledger.BaseCurrency).
		Msg("Starting Ameen Storefront")

	ctx := context.Background()

	// Apply schema migrations before opening the pool
	if err := pgStorage.Migrate(cfg.Database.DSN()); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply migrations")
	}
	log.Info().Msg("Database migrations applied")

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// Initialize repositories
	walletRepo := pgStorage.NewWalletRepo(pool)
	paymentRepo := pgStorage.NewPaymentRepo(pool)
	withdrawalRepo := pgStorage.NewWithdrawalRepo(pool)
	productRepo := pgStorage.NewProductRepo(pool)
	purchaseRepo := pgStorage.NewPurchaseRepo(pool)
	notificationRepo := pgStorage.NewNotificationRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	summaryCache := redisStorage.NewSummaryCache(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize business services
	notificationSvc := service.NewNotificationService(notificationRepo, log)
	ledgerSvc := service.NewLedgerService(
		walletRepo,
		paymentRepo,
		withdrawalRepo,
		service.NewStaticRates(),
		notificationSvc,
		summaryCache,
		transactor,
		cfg.Ledger.SummaryTTL,
		log,
	)
	catalogSvc := service.NewCatalogService(productRepo, purchaseRepo, ledgerSvc, log)
	assistantSvc := service.NewAssistantService(ledgerSvc, log)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		CatalogSvc:      catalogSvc,
		LedgerSvc:       ledgerSvc,
		AssistantSvc:    assistantSvc,
		NotificationSvc: notificationSvc,
		RateLimitStore:  rateLimitStore,
		HealthCheckers:  []ports.HealthChecker{pgHealth, redisHealth},
		Logger:          log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
