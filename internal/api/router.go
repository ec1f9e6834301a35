package api

import (
	"net/http"

	_ "github.com/aaravmahajanofficial/storefront-console/docs"
	"github.com/aaravmahajanofficial/storefront-console/internal/api/handlers"
	"github.com/aaravmahajanofficial/storefront-console/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-console/internal/backend"
	"github.com/aaravmahajanofficial/storefront-console/internal/config"
	"github.com/aaravmahajanofficial/storefront-console/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	service "github.com/aaravmahajanofficial/storefront-console/internal/services"
	"github.com/aaravmahajanofficial/storefront-console/internal/sessions"
	"github.com/go-playground/validator/v10"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Deps is everything the HTTP surface is built from.
type Deps struct {
	Registry  *sessions.Registry
	Codec     *middleware.SessionCodec
	Limiter   *middleware.IPRateLimiter
	Validator *validator.Validate
	Media     backend.MediaAPI
	Catalog   service.CatalogService
	Orders    service.OrderService
	Refunds   service.RefundService
	Addresses service.AddressService
	Admin     service.AdminService
	Health    http.Handler
}

// NewRouter registers every route and returns the fully wrapped handler:
// cors, tracing, logging and metrics around the mux.
func NewRouter(d Deps, corsCfg config.CORS, serviceName string) http.Handler {

	authHandler := handlers.NewAuthHandler(d.Validator, d.Registry, d.Codec)
	cartHandler := handlers.NewCartHandler(d.Validator)
	checkoutHandler := handlers.NewCheckoutHandler()
	notificationHandler := handlers.NewNotificationHandler()
	productHandler := handlers.NewProductHandler(d.Catalog, d.Validator)
	orderHandler := handlers.NewOrderHandler(d.Orders)
	refundHandler := handlers.NewRefundHandler(d.Refunds, d.Validator)
	addressHandler := handlers.NewAddressHandler(d.Addresses, d.Validator)
	adminHandler := handlers.NewAdminHandler(d.Admin, d.Validator)
	mediaHandler := handlers.NewMediaHandler(d.Media)

	session := d.Registry.Middleware(d.Codec)

	// public routes still need the session: the user and cookie jar live there
	public := func(h http.HandlerFunc) http.Handler {
		return d.Limiter.Middleware(session(h))
	}
	authed := func(h http.HandlerFunc) http.Handler {
		return public(middleware.RequireAuth(h).ServeHTTP)
	}
	staff := func(h http.HandlerFunc) http.Handler {
		return public(middleware.RequireStaff(h).ServeHTTP)
	}
	sales := func(h http.HandlerFunc) http.Handler {
		return public(middleware.RequireRole(models.RoleSales)(h).ServeHTTP)
	}
	inventory := func(h http.HandlerFunc) http.Handler {
		return public(middleware.RequireRole(models.RoleInventory)(h).ServeHTTP)
	}

	routerMux := http.NewServeMux()

	routerMux.Handle("GET /api/v1/auth/session", public(authHandler.Session()))
	routerMux.Handle("POST /api/v1/auth/login", public(authHandler.Login()))
	routerMux.Handle("POST /api/v1/auth/logout", public(authHandler.Logout()))
	routerMux.Handle("POST /api/v1/auth/register", public(authHandler.Register()))

	routerMux.Handle("GET /api/v1/products", public(productHandler.ListProducts()))
	routerMux.Handle("GET /api/v1/products/{id}", public(productHandler.GetProduct()))
	routerMux.Handle("GET /api/v1/categories", public(productHandler.ListCategories()))
	routerMux.Handle("POST /api/v1/products/{id}/rating", authed(productHandler.RateProduct()))
	routerMux.Handle("POST /api/v1/products/{id}/comments", authed(productHandler.CommentProduct()))

	routerMux.Handle("GET /api/v1/cart", authed(cartHandler.GetCart()))
	routerMux.Handle("DELETE /api/v1/cart", authed(cartHandler.ClearCart()))
	routerMux.Handle("POST /api/v1/cart/items", authed(cartHandler.AddItem()))
	routerMux.Handle("PATCH /api/v1/cart/items/{id}", authed(cartHandler.UpdateItem()))
	routerMux.Handle("DELETE /api/v1/cart/items/{id}", authed(cartHandler.RemoveItem()))

	routerMux.Handle("GET /api/v1/checkout", authed(checkoutHandler.GetState()))
	routerMux.Handle("POST /api/v1/checkout/address", authed(checkoutHandler.SubmitAddress()))
	routerMux.Handle("POST /api/v1/checkout/back", authed(checkoutHandler.Back()))
	routerMux.Handle("POST /api/v1/checkout/submit", authed(checkoutHandler.Submit()))

	routerMux.Handle("GET /api/v1/orders", authed(orderHandler.ListOrders()))
	routerMux.Handle("GET /api/v1/orders/{id}", authed(orderHandler.GetOrder()))
	routerMux.Handle("POST /api/v1/orders/{id}/cancel", authed(orderHandler.CancelOrder()))

	routerMux.Handle("GET /api/v1/refunds", authed(refundHandler.MyRefunds()))
	routerMux.Handle("POST /api/v1/refunds", authed(refundHandler.CreateRefund()))
	routerMux.Handle("DELETE /api/v1/refunds/{id}", authed(refundHandler.CancelRefund()))

	routerMux.Handle("GET /api/v1/addresses", authed(addressHandler.ListAddresses()))
	routerMux.Handle("POST /api/v1/addresses", authed(addressHandler.CreateAddress()))
	routerMux.Handle("PATCH /api/v1/addresses/{id}", authed(addressHandler.UpdateAddress()))
	routerMux.Handle("DELETE /api/v1/addresses/{id}", authed(addressHandler.DeleteAddress()))
	routerMux.Handle("POST /api/v1/addresses/{id}/main", authed(addressHandler.SetMainAddress()))

	routerMux.Handle("GET /api/v1/notifications", public(notificationHandler.ListNotifications()))

	routerMux.Handle("POST /api/v1/admin/products/{id}/price", sales(adminHandler.UpdatePrice()))
	routerMux.Handle("POST /api/v1/admin/products/{id}/discount", sales(adminHandler.ApplyDiscount()))
	routerMux.Handle("POST /api/v1/admin/products/{id}/stock", inventory(adminHandler.UpdateStock()))
	routerMux.Handle("POST /api/v1/admin/products/{id}/visibility", staff(adminHandler.SetVisibility()))
	routerMux.Handle("GET /api/v1/admin/deliveries", inventory(adminHandler.ListDeliveries()))
	routerMux.Handle("POST /api/v1/admin/orders/{id}/status", inventory(adminHandler.AdvanceOrder()))
	routerMux.Handle("GET /api/v1/admin/refunds/pending", sales(refundHandler.PendingRefunds()))
	routerMux.Handle("POST /api/v1/admin/refunds/{id}/approve", sales(refundHandler.ApproveRefund()))
	routerMux.Handle("POST /api/v1/admin/refunds/{id}/reject", sales(refundHandler.RejectRefund()))

	routerMux.Handle("GET /api/media/{path...}", mediaHandler.ServeMedia())

	routerMux.Handle("GET /metrics", metrics.Handler())
	if d.Health != nil {
		routerMux.Handle("GET /health", d.Health)
	}
	routerMux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Middleware chaining, innermost first. metrics sits next to the mux so it
	// sees the matched pattern.
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, serviceName)
	handler = cors.New(cors.Options{
		AllowedOrigins:   corsCfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
		AllowCredentials: true,
	}).Handler(handler)

	return handler
}
