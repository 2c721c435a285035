package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"naija-events/internal/middleware"
)

// RouterConfig carries everything the HTTP routes depend on
type RouterConfig struct {
	Log            *zap.Logger
	Sessions       *middleware.SessionManager
	LoginLimiter   *middleware.LoginRateLimiter
	AllowedOrigins []string
	RequestTimeout time.Duration

	Health    *HealthHandler
	Public    *PublicHandler
	Auth      *AuthHandler
	Orders    *OrderHandler
	Organizer *OrganizerEventHandler
	Dashboard *DashboardHandler
	CheckIn   *CheckInHandler
}

// NewRouter builds the API routes
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recoverer(cfg.Log))
	r.Use(middleware.SecurityHeadersMiddleware)
	r.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig(cfg.AllowedOrigins)))
	r.Use(cfg.Sessions.Identity)
	r.Use(middleware.CSRFProtection)
	r.Use(middleware.RequestLogger(cfg.Log))
	if cfg.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
	}

	r.NotFound(middleware.NotFoundHandler().ServeHTTP)
	r.MethodNotAllowed(middleware.MethodNotAllowedHandler().ServeHTTP)

	r.Get("/health", cfg.Health.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/meta", func(r chi.Router) {
			r.Get("/categories", cfg.Public.Categories)
			r.Get("/pricing-plans", cfg.Public.PricingPlans)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", cfg.Public.ListEvents)
			r.Get("/{id}", cfg.Public.GetEvent)
			r.Post("/{id}/quote", cfg.Public.Quote)
			r.Post("/{id}/checkout", cfg.Public.Checkout)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", cfg.Auth.Signup)
			r.With(middleware.LoginRateLimit(cfg.LoginLimiter)).Post("/login", cfg.Auth.Login)
			r.Post("/logout", cfg.Auth.Logout)
			r.With(middleware.RequireUser).Get("/me", cfg.Auth.Me)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)

			r.Get("/orders/{id}", cfg.Orders.GetOrder)
			r.Get("/orders/{id}/tickets.pdf", cfg.Orders.DownloadTickets)
			r.Get("/dashboard", cfg.Dashboard.Dashboard)

			r.Route("/organizer/events", func(r chi.Router) {
				r.Post("/", cfg.Organizer.CreateEvent)
				r.Post("/validate", cfg.Organizer.ValidateStep)
				r.Post("/{id}/checkin", cfg.CheckIn.Scan)
				r.Get("/{id}/checkin/stats", cfg.CheckIn.Stats)
			})
		})
	})

	return r
}
