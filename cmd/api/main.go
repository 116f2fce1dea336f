package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/ramyastore/ramyastore-backend/api/routes"
	cartsvc "github.com/ramyastore/ramyastore-backend/internal/cart"
	"github.com/ramyastore/ramyastore-backend/internal/coupons"
	"github.com/ramyastore/ramyastore-backend/internal/orders"
	"github.com/ramyastore/ramyastore-backend/internal/payments"
	"github.com/ramyastore/ramyastore-backend/internal/payments/gateway"
	"github.com/ramyastore/ramyastore-backend/internal/sellerreports"
	"github.com/ramyastore/ramyastore-backend/internal/settlement"
	"github.com/ramyastore/ramyastore-backend/internal/transactions"
	"github.com/ramyastore/ramyastore-backend/internal/users"
	"github.com/ramyastore/ramyastore-backend/pkg/config"
	"github.com/ramyastore/ramyastore-backend/pkg/db"
	"github.com/ramyastore/ramyastore-backend/pkg/logger"
	"github.com/ramyastore/ramyastore-backend/pkg/metrics"
	"github.com/ramyastore/ramyastore-backend/pkg/migrate"
	"github.com/ramyastore/ramyastore-backend/pkg/redis"
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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	settlementMetrics := metrics.NewSettlementMetrics(promRegistry)

	ordersRepo := orders.NewRepository(dbClient.DB())
	ordersService, err := orders.NewService(ordersRepo, dbClient)
	requireService(logg, "orders", err)

	cartRepo := cartsvc.NewRepository(dbClient.DB())
	cartService, err := cartsvc.NewService(cartRepo)
	requireService(logg, "cart", err)

	couponService, err := coupons.NewService(coupons.NewRepository(dbClient.DB()), cartRepo, dbClient)
	requireService(logg, "coupons", err)

	transactionsService, err := transactions.NewService(transactions.NewRepository(dbClient.DB()))
	requireService(logg, "transactions", err)

	reportsService, err := sellerreports.NewService(sellerreports.NewRepository(dbClient.DB()))
	requireService(logg, "seller reports", err)

	gateways := make([]gateway.Gateway, 0, 2)
	if cfg.Razorpay.KeyID != "" {
		gw, err := gateway.NewRazorpay(cfg.Razorpay, cfg.Gateway)
		requireService(logg, "razorpay gateway", err)
		gateways = append(gateways, gw)
	}
	if cfg.Stripe.APIKey != "" {
		gw, err := gateway.NewStripe(cfg.Stripe, cfg.Gateway)
		requireService(logg, "stripe gateway", err)
		gateways = append(gateways, gw)
	}
	gatewayRegistry, err := gateway.NewRegistry(gateways...)
	requireService(logg, "gateway registry", err)

	settlementService, err := settlement.NewService(
		dbClient,
		payments.NewRepository(dbClient.DB()),
		ordersService,
		ordersRepo,
		reportsService,
		transactionsService,
		cartRepo,
		users.NewRepository(dbClient.DB()),
		gatewayRegistry,
		settlementMetrics,
	)
	requireService(logg, "settlement", err)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			promRegistry,
			cartService,
			couponService,
			ordersService,
			settlementService,
			transactionsService,
			reportsService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func requireService(logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+name+" service", err)
	os.Exit(1)
}
