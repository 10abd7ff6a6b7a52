package injector

import (
	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/hotel-audit-core/internal/app/deliveries"
	"github.com/safatanc/hotel-audit-core/internal/app/middlewares"
	"github.com/safatanc/hotel-audit-core/internal/app/services"
)

// Application represents the main application container for hotel-audit-core
type Application struct {
	HealthHandler       *deliveries.HealthHandler
	AuthHandler         *deliveries.AuthHandler
	UserHandler         *deliveries.UserHandler
	PropertyHandler     *deliveries.PropertyHandler
	AuditHandler        *deliveries.AuditHandler
	AIHandler           *deliveries.AIHandler
	ReportHandler       *deliveries.ReportHandler
	MaintenanceHandler  *deliveries.MaintenanceHandler
	AuthMiddleware      *middlewares.AuthMiddleware
	RateLimitMiddleware *middlewares.RateLimitMiddleware
	MaintenanceService  *services.MaintenanceService
}

// protectedPrefixes are the /api groups that need a bearer token
var protectedPrefixes = []string{"/users", "/properties", "/audits", "/ai", "/reports", "/maintenance"}

// RegisterRoutes registers all application routes using a Fiber router
func (app *Application) RegisterRoutes(router fiber.Router) {
	app.HealthHandler.RegisterRoutes(router)

	api := router.Group("/api")

	// Auth endpoints with stricter rate limit
	authGroup := api.Group("/auth", app.RateLimitMiddleware.LimitByIP(middlewares.AuthLimit))
	app.AuthHandler.RegisterRoutes(authGroup)

	app.AIHandler.RegisterPublicRoutes(api)

	// Protected API endpoints with user-based rate limit. Middleware has to
	// be registered before the routes it guards.
	for _, prefix := range protectedPrefixes {
		api.Use(prefix,
			app.AuthMiddleware.Authenticate,
			app.RateLimitMiddleware.LimitByUser(middlewares.AuthenticatedAPILimit),
		)
	}

	app.UserHandler.RegisterRoutes(api)
	app.PropertyHandler.RegisterRoutes(api)
	app.AuditHandler.RegisterRoutes(api)
	app.AIHandler.RegisterRoutes(api)
	app.ReportHandler.RegisterRoutes(api)
	app.MaintenanceHandler.RegisterRoutes(api)
}
