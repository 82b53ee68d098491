package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/handloomhouse/storefront-backend/api/controllers"
	"github.com/handloomhouse/storefront-backend/api/routes"
	addresssvc "github.com/handloomhouse/storefront-backend/internal/address"
	authsvc "github.com/handloomhouse/storefront-backend/internal/auth"
	cartsvc "github.com/handloomhouse/storefront-backend/internal/cart"
	"github.com/handloomhouse/storefront-backend/internal/catalog"
	checkoutsvc "github.com/handloomhouse/storefront-backend/internal/checkout"
	ordersvc "github.com/handloomhouse/storefront-backend/internal/orders"
	wishlistsvc "github.com/handloomhouse/storefront-backend/internal/wishlist"
	"github.com/handloomhouse/storefront-backend/pkg/config"
	"github.com/handloomhouse/storefront-backend/pkg/db"
	"github.com/handloomhouse/storefront-backend/pkg/kvstore"
	"github.com/handloomhouse/storefront-backend/pkg/logger"
	"github.com/handloomhouse/storefront-backend/pkg/metrics"
	"github.com/handloomhouse/storefront-backend/pkg/pricing"
	"github.com/handloomhouse/storefront-backend/pkg/redis"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := context.Background()

	var (
		store    kvstore.TxStore
		pinger   controllers.Pinger
		closeFns []func() error
	)
	if cfg.Storage.UseRedis() {
		redisClient, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		closeFns = append(closeFns, redisClient.Close)
		store = kvstore.NewRedisStore(redisClient.Universal())
		pinger = redisClient
	} else {
		dbClient, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap database", err)
			os.Exit(1)
		}
		closeFns = append(closeFns, dbClient.Close)

		gormStore := kvstore.NewGormStore(dbClient.DB())
		if cfg.DB.AutoMigrate {
			if err := gormStore.AutoMigrate(ctx); err != nil {
				logg.Error(ctx, "failed to migrate kv schema", err)
				os.Exit(1)
			}
		}
		store = gormStore
		pinger = dbClient
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)
	shopMetrics := metrics.NewStorefrontMetrics(prometheus.DefaultRegisterer)

	catalogService := catalog.NewService()

	cartService, err := cartsvc.NewService(cartsvc.ServiceParams{
		Repo:    cartsvc.NewRepo(store),
		Catalog: catalogService,
		Pricing: pricing.NewPolicy(cfg.Pricing),
		Logger:  logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create cart service", err)
		os.Exit(1)
	}

	orderService, err := ordersvc.NewService(ordersvc.ServiceParams{
		Store:    store,
		Repo:     ordersvc.NewRepo(store),
		CartRepo: cartsvc.NewRepo(store),
		Logger:   logg,
		Metrics:  shopMetrics,
	})
	if err != nil {
		logg.Error(ctx, "failed to create orders service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{
		Cart:    cartService,
		Orders:  orderService,
		Logger:  logg,
		Metrics: shopMetrics,
	})
	if err != nil {
		logg.Error(ctx, "failed to create checkout service", err)
		os.Exit(1)
	}

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		Repo:     authsvc.NewRepo(store),
		JWT:      cfg.JWT,
		Password: cfg.Password,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create auth service", err)
		os.Exit(1)
	}

	wishlistService, err := wishlistsvc.NewService(wishlistsvc.ServiceParams{
		Store:   store,
		Catalog: catalogService,
		Logger:  logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create wishlist service", err)
		os.Exit(1)
	}

	addressService, err := addresssvc.NewService(store)
	if err != nil {
		logg.Error(ctx, "failed to create address service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	runCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(runCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, pinger, httpMetrics, routes.Services{
			Catalog:  catalogService,
			Cart:     cartService,
			Checkout: checkoutService,
			Orders:   orderService,
			Auth:     authService,
			Wishlist: wishlistService,
			Address:  addressService,
		}),
	}

	stopCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(runCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(runCtx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(runCtx, "error during shutdown", err)
		}
	}

	var closeErr error
	for _, closeFn := range closeFns {
		closeErr = multierr.Append(closeErr, closeFn())
	}
	if closeErr != nil {
		logg.Error(runCtx, "error closing storage", closeErr)
	}
}
