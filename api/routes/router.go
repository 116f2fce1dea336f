package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ramyastore/ramyastore-backend/api/controllers"
	"github.com/ramyastore/ramyastore-backend/api/middleware"
	cartsvc "github.com/ramyastore/ramyastore-backend/internal/cart"
	"github.com/ramyastore/ramyastore-backend/internal/coupons"
	"github.com/ramyastore/ramyastore-backend/internal/orders"
	"github.com/ramyastore/ramyastore-backend/internal/sellerreports"
	"github.com/ramyastore/ramyastore-backend/internal/settlement"
	"github.com/ramyastore/ramyastore-backend/internal/transactions"
	"github.com/ramyastore/ramyastore-backend/pkg/config"
	"github.com/ramyastore/ramyastore-backend/pkg/db"
	"github.com/ramyastore/ramyastore-backend/pkg/logger"
	"github.com/ramyastore/ramyastore-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	cartService cartsvc.Service,
	couponService coupons.Service,
	ordersService orders.Service,
	settlementService settlement.Service,
	transactionsService transactions.Service,
	reportsService sellerreports.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Post("/coupons/apply", controllers.CouponApply(couponService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(ordersService, logg))
			r.Get("/{orderId}", controllers.OrderDetail(ordersService, logg))
			r.Post("/{orderId}/cancel", controllers.CancelOrder(settlementService, logg))
		})

		r.Post("/checkout", controllers.Checkout(settlementService, logg))
		r.Post("/payments/confirm", controllers.ConfirmPayment(settlementService, logg))

		r.Route("/seller", func(r chi.Router) {
			r.Use(middleware.RequireRole("seller", logg))
			r.Get("/transactions", controllers.SellerTransactions(transactionsService, logg))
			r.Get("/report", controllers.SellerReport(reportsService, logg))
			r.Patch("/orders/{orderId}/status", controllers.SellerUpdateOrderStatus(ordersService, logg))
		})
	})

	return r
}
