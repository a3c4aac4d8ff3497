package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/sustainsports/storefront-backend/api/routes"
	"github.com/sustainsports/storefront-backend/internal/cart"
	checkoutsvc "github.com/sustainsports/storefront-backend/internal/checkout"
	"github.com/sustainsports/storefront-backend/internal/identity"
	"github.com/sustainsports/storefront-backend/internal/orders"
	"github.com/sustainsports/storefront-backend/internal/products"
	"github.com/sustainsports/storefront-backend/internal/reviews"
	"github.com/sustainsports/storefront-backend/pkg/config"
	"github.com/sustainsports/storefront-backend/pkg/kv"
	"github.com/sustainsports/storefront-backend/pkg/logger"
	"github.com/sustainsports/storefront-backend/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	store, err := kv.Open(context.Background(), cfg)
	if err != nil {
		logg.Error(context.Background(), "failed to open storage", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logg.Error(context.Background(), "error closing storage", err)
		}
	}()

	keys := kv.NewKeys(cfg.Storage.KeyPrefix)
	catalog := products.NewCatalog()

	identitySvc, err := identity.NewService(store, keys, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create identity service", err)
		os.Exit(1)
	}
	cartSvc, err := cart.NewService(store, keys)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}
	ordersSvc, err := orders.NewService(store, keys, cfg.Checkout)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}
	checkoutSvc, err := checkoutsvc.NewService(identitySvc, cartSvc, ordersSvc)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}
	reviewsSvc, err := reviews.NewService(store, keys, catalog)
	if err != nil {
		logg.Error(context.Background(), "failed to create reviews service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"storage": cfg.Storage.Driver,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:   cfg,
			Logger:   logg,
			Store:    store,
			Metrics:  metrics.NewRequestMetrics(registry),
			Gatherer: registry,
			Catalog:  catalog,
			Identity: identitySvc,
			Cart:     cartSvc,
			Orders:   ordersSvc,
			Checkout: checkoutSvc,
			Reviews:  reviewsSvc,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
