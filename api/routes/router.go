package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/handloomhouse/storefront-backend/api/controllers"
	"github.com/handloomhouse/storefront-backend/api/middleware"
	addresssvc "github.com/handloomhouse/storefront-backend/internal/address"
	authsvc "github.com/handloomhouse/storefront-backend/internal/auth"
	cartsvc "github.com/handloomhouse/storefront-backend/internal/cart"
	"github.com/handloomhouse/storefront-backend/internal/catalog"
	checkoutsvc "github.com/handloomhouse/storefront-backend/internal/checkout"
	ordersvc "github.com/handloomhouse/storefront-backend/internal/orders"
	wishlistsvc "github.com/handloomhouse/storefront-backend/internal/wishlist"
	"github.com/handloomhouse/storefront-backend/pkg/config"
	"github.com/handloomhouse/storefront-backend/pkg/logger"
	"github.com/handloomhouse/storefront-backend/pkg/metrics"
)

// Services bundles everything the router exposes over HTTP.
type Services struct {
	Catalog  catalog.Service
	Cart     cartsvc.Service
	Checkout checkoutsvc.Service
	Orders   ordersvc.Service
	Auth     authsvc.Service
	Wishlist wishlistsvc.Service
	Address  addresssvc.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	storePinger controllers.Pinger,
	httpMetrics *metrics.HTTPMetrics,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, storePinger))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(svcs.Catalog, logg))
			r.Get("/{productId}", controllers.GetProduct(svcs.Catalog, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(svcs.Cart, logg))
			r.Delete("/", controllers.ClearCart(svcs.Cart, logg))
			r.Post("/items", controllers.AddCartItem(svcs.Cart, logg))
			r.Put("/items/{productId}", controllers.SetCartItemQuantity(svcs.Cart, logg))
			r.Delete("/items/{productId}", controllers.RemoveCartItem(svcs.Cart, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", controllers.StartCheckout(svcs.Checkout, logg))
			r.Route("/{draftId}", func(r chi.Router) {
				r.Get("/", controllers.GetCheckout(svcs.Checkout, logg))
				r.Post("/address", controllers.SubmitCheckoutAddress(svcs.Checkout, logg))
				r.Post("/payment", controllers.SubmitCheckoutPayment(svcs.Checkout, logg))
				r.Post("/back", controllers.CheckoutBack(svcs.Checkout, logg))
				r.Post("/coupon", controllers.ApplyCheckoutCoupon(svcs.Checkout, logg))
				r.Delete("/coupon", controllers.RemoveCheckoutCoupon(svcs.Checkout, logg))
				r.Post("/place", controllers.PlaceOrder(svcs.Checkout, logg))
			})
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", controllers.Signup(svcs.Auth, logg))
			r.Post("/login", controllers.Login(svcs.Auth, logg))
			r.Post("/logout", controllers.Logout(svcs.Auth, logg))
			r.Get("/me", controllers.Me(svcs.Auth, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.ListMyOrders(svcs.Orders, logg))
				r.Get("/{orderId}", controllers.GetOrder(svcs.Orders, logg))
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", controllers.ListWishlist(svcs.Wishlist, logg))
				r.Post("/", controllers.AddWishlistItem(svcs.Wishlist, logg))
				r.Delete("/{productId}", controllers.RemoveWishlistItem(svcs.Wishlist, logg))
			})

			r.Route("/addresses", func(r chi.Router) {
				r.Get("/", controllers.ListAddresses(svcs.Address, logg))
				r.Post("/", controllers.AddAddress(svcs.Address, logg))
				r.Put("/{addressId}", controllers.UpdateAddress(svcs.Address, logg))
				r.Delete("/{addressId}", controllers.DeleteAddress(svcs.Address, logg))
			})
		})
	})

	return r
}
