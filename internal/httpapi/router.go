package httpapi

import (
	"net/http"
	"time"

	"foodmarket-be/internal/auth"
	"foodmarket-be/internal/logger"
	"foodmarket-be/internal/middleware"
	"foodmarket-be/internal/telemetry"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const requestTimeout = 15 * time.Second

type RouterConfig struct {
	ServiceName string
	CORSOrigin  string
	AdminKey    string
	ImageDir    string
	Tokens      middleware.TokenParser
	Limiter     *middleware.RateLimiter
}

// NewRouter mounts every route. Shopping routes are public, the rest are
// grouped by role behind their guards. The limiter runs after Authenticate in
// the role groups so signed-in callers are counted per user; public routes
// are counted per IP.
func NewRouter(cfg RouterConfig, h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(
		middleware.Recover,
		chimw.RealIP,
		logger.RequestIDMiddleware,
		logger.LoggingMiddleware,
		middleware.CORS(cfg.CORSOrigin),
		telemetry.Middleware(cfg.ServiceName),
		chimw.Timeout(requestTimeout),
	)

	var limit []func(http.Handler) http.Handler
	if cfg.Limiter != nil {
		limit = append(limit, cfg.Limiter.Middleware)
	}

	r.Get("/health", h.Health)
	if cfg.ImageDir != "" {
		r.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(cfg.ImageDir))))
	}

	authenticate := middleware.Authenticate(cfg.Tokens)

	r.Route("/admin", func(r chi.Router) {
		r.Use(limit...)
		r.Use(middleware.AdminKey(cfg.AdminKey))
		r.Post("/vendor", h.CreateVendor)
		r.Get("/vendors", h.ListVendors)
		r.Get("/vendor/{id}", h.GetVendor)
	})

	r.Route("/vendor", func(r chi.Router) {
		r.With(limit...).Post("/login", h.VendorLogin)

		r.Group(func(r chi.Router) {
			r.Use(authenticate, middleware.RequireRole(auth.RoleVendor))
			r.Use(limit...)
			r.Get("/profile", h.VendorProfile)
			r.Patch("/profile", h.UpdateVendorProfile)
			r.Patch("/coverimage", h.UpdateVendorCoverImage)
			r.Patch("/service", h.ToggleVendorService)
			r.Post("/food", h.AddFood)
			r.Get("/foods", h.ListVendorFoods)
			r.Get("/orders", h.VendorOrders)
			r.Get("/order/{id}", h.VendorOrder)
			r.Put("/order/{id}/process", h.ProcessOrder)
		})
	})

	r.Route("/customer", func(r chi.Router) {
		r.With(limit...).Post("/signup", h.CustomerSignUp)
		r.With(limit...).Post("/login", h.CustomerLogin)

		r.Group(func(r chi.Router) {
			r.Use(authenticate, middleware.RequireRole(auth.RoleCustomer))
			r.Use(limit...)
			r.Patch("/verify", h.CustomerVerify)
			r.Get("/otp", h.RequestOTP)
			r.Get("/profile", h.CustomerProfile)
			r.Patch("/profile", h.EditCustomerProfile)

			r.Post("/cart", h.AddToCart)
			r.Get("/cart", h.GetCart)
			r.Delete("/cart", h.ClearCart)
			r.Delete("/cart/{foodId}", h.RemoveFromCart)

			r.Post("/create-order", h.CreateOrder)
			r.Get("/orders", h.CustomerOrders)
			r.Get("/order/{id}", h.CustomerOrder)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(limit...)
		r.Get("/top-restaurants/{pincode}", h.TopRestaurants)
		r.Get("/foods-in-30-min/{pincode}", h.FoodsIn30Min)
		r.Get("/search/{pincode}", h.SearchFoods)
		r.Get("/restaurant/{id}", h.RestaurantByID)
		r.Get("/{pincode}", h.Availability)
	})

	return r
}
