package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/hotel-audit-core/internal/app/middlewares"
	"github.com/safatanc/hotel-audit-core/internal/app/models"
	"github.com/safatanc/hotel-audit-core/internal/app/pkg"
	"github.com/safatanc/hotel-audit-core/internal/app/services"
	"github.com/safatanc/hotel-audit-core/internal/infrastructures"
)

type MaintenanceHandler struct {
	maintenanceService *services.MaintenanceService
	authMiddleware     *middlewares.AuthMiddleware
}

func NewMaintenanceHandler(maintenanceService *services.MaintenanceService, authMiddleware *middlewares.AuthMiddleware) *MaintenanceHandler {
	return &MaintenanceHandler{
		maintenanceService: maintenanceService,
		authMiddleware:     authMiddleware,
	}
}

func (h *MaintenanceHandler) RegisterRoutes(router fiber.Router) {
	maintenanceGroup := router.Group("/maintenance", h.authMiddleware.RequireRoles(models.UserRoleAdmin))

	maintenanceGroup.Post("/cleanup", h.CleanupOldData)
	maintenanceGroup.Post("/reschedule", h.UpdateAuditSchedules)
}

// CleanupOldData takes ?days=, defaulting to the configured retention
func (h *MaintenanceHandler) CleanupOldData(c *fiber.Ctx) error {
	defaultDays := services.DefaultRetentionDays
	if infrastructures.Config != nil && infrastructures.Config.AUDIT_RETENTION_DAYS > 0 {
		defaultDays = infrastructures.Config.AUDIT_RETENTION_DAYS
	}

	days, err := queryInt(c, "days", defaultDays)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	result, err := h.maintenanceService.CleanupOldData(c.UserContext(), days)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, result)
}

func (h *MaintenanceHandler) UpdateAuditSchedules(c *fiber.Ctx) error {
	result, err := h.maintenanceService.UpdatePropertyAuditSchedules(c.UserContext())
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, result)
}
