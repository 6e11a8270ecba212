package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Flasky06/unify-pos/internal/api"
	"github.com/Flasky06/unify-pos/internal/core/service"
	mongodb "github.com/Flasky06/unify-pos/internal/infrastructure/db/mongo"
	redisdb "github.com/Flasky06/unify-pos/internal/infrastructure/db/redis"
	"github.com/Flasky06/unify-pos/internal/infrastructure/queue"
	"github.com/Flasky06/unify-pos/internal/pkg/config"
	"github.com/Flasky06/unify-pos/pkg/logger"
)

// @title           Unify POS API
// @version         1.0
// @description     Point-of-sale and retail management API: carts, checkout, shops, stock, and subscriptions.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "unify-pos",
		Pretty:  cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	shopRepo := mongodb.NewShopRepository(db)
	stockRepo := mongodb.NewStockRepository(db)
	saleRepo := mongodb.NewSaleRepository(db)
	movementRepo := mongodb.NewMovementRepository(db)
	paymentRepo := mongodb.NewPaymentMethodRepository(db)
	planRepo := mongodb.NewPlanRepository(db)
	subRepo := mongodb.NewSubscriptionRepository(db)

	for _, ensure := range []func(context.Context) error{
		userRepo.EnsureIndexes,
		stockRepo.EnsureIndexes,
		saleRepo.EnsureIndexes,
		movementRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}
	}

	sessionStore := redisdb.NewSessionStore(rdb)
	cartStore := redisdb.NewCartStore(rdb)
	dedup := redisdb.NewDedupChecker(rdb)

	// --- Services ---
	authService := service.NewAuthService(userRepo, sessionStore, cfg.JWTSecret, cfg.SessionTTL, log)
	movementService := service.NewMovementService(movementRepo, dedup, log)

	dispatcher := queue.NewDispatcher(cfg.Workers, movementService, log)
	dispatcher.Start(ctx)

	posService := service.NewPosService(cartStore, stockRepo, saleRepo, paymentRepo, dispatcher, log)
	inventoryService := service.NewInventoryService(shopRepo, stockRepo, log)
	billingService := service.NewBillingService(paymentRepo, planRepo, subRepo, log)

	e := api.NewRouter(api.Deps{
		JWTSecret: cfg.JWTSecret,
		Sessions:  sessionStore,
		Auth:      authService,
		Pos:       posService,
		Shops:     inventoryService,
		Stocks:    inventoryService,
		Billing:   billingService,
		Mongo:     db,
		Redis:     rdb,
		Log:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
