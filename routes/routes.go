package routes

import (
	"net/http"
	"strings"
	"time"

	"bookable/config"
	accountRepo "bookable/database/repository/account"
	"bookable/handlers"
	"bookable/middleware"
	"bookable/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Limiters carries the three independent rate-limiter instances: one per
// public surface, so abuse on one cannot starve another.
type Limiters struct {
	API     *ratelimit.Limiter
	Auth    *ratelimit.Limiter
	Booking *ratelimit.Limiter
}

// Handlers bundles the route handlers and their shared dependencies.
type Handlers struct {
	Public   *handlers.PublicHandler
	Auth     *handlers.AuthHandler
	Owner    *handlers.OwnerHandler
	Accounts accountRepo.AccountRepository
}

// corsConfig allows the configured origins plus, in production, any
// subdomain of the base domain (each account's booking page lives on its
// own subdomain). Preflight responses are cacheable for 24 hours.
func corsConfig() cors.Config {
	allowed := config.AppConfig.AllowedOrigins
	baseDomain := config.AppConfig.BaseDomain

	return cors.Config{
		AllowOriginFunc: func(origin string) bool {
			for _, o := range allowed {
				if origin == o {
					return true
				}
			}
			if config.IsProduction() && baseDomain != "" {
				return strings.HasSuffix(origin, "."+baseDomain) ||
					origin == "https://"+baseDomain
			}
			return false
		},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:        24 * time.Hour,
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Bookable"})
	})
}

// RegisterPublicRoutes registers the unauthenticated booking-page endpoints.
// Every route passes the booking limiter before touching business logic.
func RegisterPublicRoutes(r *gin.Engine, h *Handlers, limiters *Limiters) {
	public := r.Group("/api/public/:account")
	public.Use(middleware.RateLimitMiddleware(limiters.Booking))
	{
		public.GET("/hours", h.Public.GetBusinessHours)
		public.GET("/services", h.Public.ListServices)
		public.GET("/availability", h.Public.CheckAvailability)
		public.POST("/bookings", h.Public.CreateBooking)
	}
}

// RegisterAuthRoutes registers owner registration and login behind the
// auth-attempt limiter.
func RegisterAuthRoutes(r *gin.Engine, h *Handlers, limiters *Limiters) {
	auth := r.Group("/api/owner")
	auth.Use(middleware.RateLimitMiddleware(limiters.Auth))
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}
}

// RegisterOwnerRoutes registers the authenticated dashboard endpoints.
func RegisterOwnerRoutes(r *gin.Engine, h *Handlers, limiters *Limiters) {
	owner := r.Group("/api/owner")
	owner.Use(middleware.RateLimitMiddleware(limiters.API))
	owner.Use(middleware.JWTAuthMiddleware(h.Accounts))
	{
		owner.GET("/appointments", h.Owner.ListAppointments)
		owner.PATCH("/appointments/:id/status", h.Owner.UpdateAppointmentStatus)
		owner.GET("/services", h.Owner.ListServices)
		owner.POST("/services", h.Owner.CreateService)
		owner.PUT("/services/:id", h.Owner.UpdateService)
		owner.GET("/page", h.Owner.GetBookingPage)
		owner.PUT("/page", h.Owner.UpdateBookingPage)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, h *Handlers, limiters *Limiters) {
	r.Use(cors.New(corsConfig()))

	RegisterHealthRoute(r)
	RegisterPublicRoutes(r, h, limiters)
	RegisterAuthRoutes(r, h, limiters)
	RegisterOwnerRoutes(r, h, limiters)
}
