//go:build wireinject
// +build wireinject

package injector

import (
	"github.com/google/wire"
	"github.com/safatanc/hotel-audit-core/internal/app/deliveries"
	"github.com/safatanc/hotel-audit-core/internal/app/middlewares"
	"github.com/safatanc/hotel-audit-core/internal/app/services"
	"github.com/safatanc/hotel-audit-core/internal/infrastructures"
)

// Infrastructure providers
var infrastructureSet = wire.NewSet(
	infrastructures.NewDatabase,
	infrastructures.NewRedisClient,
	infrastructures.NewRedisLocker,
	infrastructures.NewValidator,
	infrastructures.NewGeminiConfig,
	infrastructures.NewGeminiClient,
	infrastructures.NewAuthConfig,
	wire.Bind(new(middlewares.RateLimiter), new(*middlewares.RedisRateLimiter)),
	middlewares.NewRedisRateLimiter,
)

// Service providers
var serviceSet = wire.NewSet(
	services.NewUserService,
	services.NewPropertyService,
	services.NewAuditQueryBuilder,
	services.NewAuditService,
	services.NewAuditItemService,
	services.NewReportService,
	services.NewMaintenanceService,
	services.NewAIService,
	services.NewAuthService,
	services.NewExportService,
)

// Middleware providers
var middlewareSet = wire.NewSet(
	middlewares.NewAuthMiddleware,
	middlewares.NewRateLimitMiddleware,
)

// Handler providers
var handlerSet = wire.NewSet(
	deliveries.NewHealthHandler,
	deliveries.NewAuthHandler,
	deliveries.NewUserHandler,
	deliveries.NewPropertyHandler,
	deliveries.NewAuditHandler,
	deliveries.NewAIHandler,
	deliveries.NewReportHandler,
	deliveries.NewMaintenanceHandler,
	wire.Struct(new(Application), "*"),
)

// InitializeApplication initializes the application with all its dependencies
func InitializeApplication() (*Application, error) {
	wire.Build(
		infrastructureSet,
		serviceSet,
		middlewareSet,
		handlerSet,
	)
	return &Application{}, nil
}
