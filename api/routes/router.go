package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sustainsports/storefront-backend/api/controllers"
	"github.com/sustainsports/storefront-backend/api/middleware"
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

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Store    kv.Store
	Metrics  *metrics.RequestMetrics
	Gatherer prometheus.Gatherer

	Catalog  products.Catalog
	Identity identity.Service
	Cart     cart.Service
	Orders   orders.Service
	Checkout checkoutsvc.Service
	Reviews  reviews.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Store))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", controllers.AuthRegister(deps.Identity, logg))
			r.Post("/login", controllers.AuthLogin(deps.Identity, cfg.JWT, logg))
			r.Post("/logout", controllers.AuthLogout(deps.Identity, deps.Cart, logg))
			r.Post("/verify-email", controllers.AuthVerifyEmail(deps.Identity, logg))
			r.Post("/forgot-password", controllers.AuthForgotPassword(deps.Identity, logg))
			r.Post("/reset-password", controllers.AuthResetPassword(deps.Identity, logg))
			r.Get("/me", controllers.AuthMe(deps.Identity, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.Catalog, logg))
			r.Get("/{productId}", controllers.ProductDetail(deps.Catalog, logg))
			r.Get("/{productId}/reviews", controllers.ReviewList(deps.Reviews, logg))
			r.With(middleware.Auth(cfg.JWT, logg)).
				Post("/{productId}/reviews", controllers.ReviewCreate(deps.Reviews, deps.Identity, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.CategoryList(deps.Catalog, logg))
			r.Get("/{categoryId}/products", controllers.CategoryProducts(deps.Catalog, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(deps.Cart, logg))
			r.Delete("/", controllers.CartClear(deps.Cart, logg))
			r.Post("/items", controllers.CartAddItem(deps.Cart, deps.Catalog, logg))
			r.Patch("/items/{productId}", controllers.CartUpdateItem(deps.Cart, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.Cart, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Patch("/account/profile", controllers.AccountUpdateProfile(deps.Identity, logg))
			r.Post("/account/password", controllers.AccountChangePassword(deps.Identity, logg))

			r.Post("/checkout", controllers.Checkout(deps.Checkout, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrderList(deps.Orders, logg))
				r.Get("/{orderId}", controllers.OrderDetail(deps.Orders, logg))
			})
		})
	})

	return r
}
