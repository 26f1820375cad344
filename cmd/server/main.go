package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mfcastro/contas/internal/adapter/command"
	httpAdapter "github.com/mfcastro/contas/internal/adapter/http"
	"github.com/mfcastro/contas/internal/adapter/http/handler"
	postgresRepo "github.com/mfcastro/contas/internal/adapter/repository/postgres"
	redisRepo "github.com/mfcastro/contas/internal/adapter/repository/redis"
	"github.com/mfcastro/contas/internal/infrastructure/config"
	"github.com/mfcastro/contas/internal/infrastructure/logger"
	"github.com/mfcastro/contas/internal/infrastructure/metrics"
	"github.com/mfcastro/contas/internal/infrastructure/postgres"
	"github.com/mfcastro/contas/internal/infrastructure/redis"
	"github.com/mfcastro/contas/internal/usecase"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	appLogger.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	itemRepo := postgresRepo.NewItemRepository(pool)
	paymentRepo := postgresRepo.NewPaymentRepository(pool)
	productRepo := postgresRepo.NewProductRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	retrier := postgresRepo.NewRetrier(appLogger)
	idGen := postgresRepo.NewULIDGenerator()
	locks := usecase.NewKeyedLocks()

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, itemRepo, paymentRepo, locks, cache, cfg.CacheTTL, retrier, idGen)
	itemUC := usecase.NewItemUseCase(txManager, accountRepo, itemRepo, locks, cache, cfg.CacheTTL, retrier, idGen)
	paymentUC := usecase.NewPaymentUseCase(txManager, accountRepo, paymentRepo, locks, cache, cfg.CacheTTL, retrier, idGen)
	productUC := usecase.NewProductUseCase(productRepo, idGen)

	appMetrics := metrics.New()

	// Command surface shares the use cases with the REST handlers.
	dispatcher := command.NewDispatcher(accountUC, itemUC, paymentUC, productUC, appLogger, appMetrics)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler: handler.NewAccountHandler(accountUC),
		ItemHandler:    handler.NewItemHandler(itemUC),
		PaymentHandler: handler.NewPaymentHandler(paymentUC),
		ProductHandler: handler.NewProductHandler(productUC),
		CommandHandler: handler.NewCommandHandler(dispatcher),
		HealthHandler:  handler.NewHealthHandler(pool, redisClient),
		Logger:         appLogger,
		Metrics:        appMetrics,
	})

	// Create server
	server := &http.Server{
		Addr:         listenAddr(cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}

func listenAddr(port string) string {
	return fmt.Sprintf(":%s", port)
}
