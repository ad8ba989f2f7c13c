package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/veermani/kitchen-backend/api/controllers"
	"github.com/veermani/kitchen-backend/api/middleware"
	"github.com/veermani/kitchen-backend/internal/auth"
	"github.com/veermani/kitchen-backend/internal/bulkorders"
	"github.com/veermani/kitchen-backend/internal/cart"
	"github.com/veermani/kitchen-backend/internal/catalog"
	checkoutsvc "github.com/veermani/kitchen-backend/internal/checkout"
	"github.com/veermani/kitchen-backend/internal/invoice"
	"github.com/veermani/kitchen-backend/internal/orders"
	"github.com/veermani/kitchen-backend/internal/payments"
	possvc "github.com/veermani/kitchen-backend/internal/pos"
	"github.com/veermani/kitchen-backend/pkg/auth/session"
	"github.com/veermani/kitchen-backend/pkg/config"
	"github.com/veermani/kitchen-backend/pkg/enums"
	"github.com/veermani/kitchen-backend/pkg/logger"
	"github.com/veermani/kitchen-backend/pkg/metrics"
	"github.com/veermani/kitchen-backend/pkg/redis"
)

// Services bundles the wired domain services the router exposes.
type Services struct {
	Auth       auth.Service
	Catalog    catalog.Service
	Cart       cart.Service
	PosCart    cart.Service
	Checkout   checkoutsvc.Service
	Pos        possvc.Service
	Orders     orders.Service
	Payments   payments.Service
	BulkOrders bulkorders.Service
	Invoice    *invoice.Formatter
}

// Deps carries the infrastructure the middleware stack needs.
type Deps struct {
	DB       controllers.Pinger
	Redis    *redis.Client
	PubSub   controllers.Pinger
	Sessions session.AccessSessionChecker
	HTTPObs  *metrics.HTTPMetrics
}

func NewRouter(cfg *config.Config, logg *logger.Logger, svcs Services, deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPObs),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewRateLimitPolicy(
		"login",
		cfg.RateLimit.LoginWindow,
		cfg.RateLimit.LoginIPLimit,
		cfg.RateLimit.LoginEmailLimit,
	)
	checkoutPolicy := middleware.NewRateLimitPolicy(
		"checkout",
		cfg.RateLimit.CheckoutWindow,
		cfg.RateLimit.CheckoutIPLimit,
		0,
	)
	bulkOrderPolicy := middleware.NewRateLimitPolicy(
		"bulk_order",
		cfg.RateLimit.BulkOrderWindow,
		cfg.RateLimit.BulkOrderLimit,
		0,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, controllers.ReadinessDeps(deps.DB, deps.Redis, deps.PubSub)))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.RateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(svcs.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(svcs.Auth, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.ProductsList(svcs.Catalog, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(svcs.Cart, logg))
			r.Post("/items", controllers.CartAddItem(svcs.Cart, logg))
			r.Patch("/items", controllers.CartUpdateQuantity(svcs.Cart, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(svcs.Cart, logg))
			r.Post("/packing", controllers.CartSetPacking(svcs.Cart, logg))
			r.Delete("/", controllers.CartClear(svcs.Cart, logg))
		})

		r.With(middleware.RateLimit(checkoutPolicy, deps.Redis, logg)).Post("/checkout", controllers.Checkout(svcs.Checkout, logg))
		r.With(middleware.RateLimit(bulkOrderPolicy, deps.Redis, logg)).Post("/bulk-orders", controllers.BulkOrderCreate(svcs.BulkOrders, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminProductsList(svcs.Catalog, logg))

			// Catalog edits are owner actions; staff accounts only run
			// the counter.
			adminOnly := middleware.RequireRole(string(enums.UserRoleAdmin), logg)
			r.With(adminOnly).Post("/", controllers.AdminProductCreate(svcs.Catalog, logg))
			r.With(adminOnly).Patch("/{productId}", controllers.AdminProductUpdate(svcs.Catalog, logg))
			r.With(adminOnly).Post("/{productId}/availability", controllers.AdminProductAvailability(svcs.Catalog, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrdersList(svcs.Orders, logg))
			r.Get("/pending-payment", controllers.AdminOrdersPendingPayment(svcs.Orders, logg))
			r.Get("/{orderNumber}", controllers.AdminOrderDetail(svcs.Orders, logg))
			r.Get("/{orderNumber}/invoice-link", controllers.AdminOrderInvoiceLink(svcs.Orders, svcs.Invoice, logg))
			r.Post("/{orderNumber}/transition", controllers.AdminOrderTransition(svcs.Orders, logg))
			r.Post("/{orderNumber}/mark-paid", controllers.AdminOrderMarkPaid(svcs.Orders, logg))
		})

		r.Route("/pos", func(r chi.Router) {
			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.PosCartFetch(svcs.PosCart, logg))
				r.Post("/items", controllers.PosCartAddItem(svcs.PosCart, logg))
				r.Patch("/items", controllers.PosCartUpdateQuantity(svcs.PosCart, logg))
				r.Delete("/items/{productId}", controllers.PosCartRemoveItem(svcs.PosCart, logg))
				r.Delete("/", controllers.PosCartClear(svcs.PosCart, logg))
			})
			r.Post("/finalize", controllers.PosFinalize(svcs.Pos, logg))
		})

		r.Route("/payments", func(r chi.Router) {
			r.Get("/", controllers.PaymentsRecent(svcs.Payments, logg))
			r.Post("/", controllers.PaymentRecord(svcs.Payments, logg))
		})

		r.Route("/bulk-orders", func(r chi.Router) {
			r.Get("/", controllers.AdminBulkOrdersList(svcs.BulkOrders, logg))
			r.Post("/{inquiryId}/status", controllers.AdminBulkOrderSetStatus(svcs.BulkOrders, logg))
		})
	})

	return r
}
