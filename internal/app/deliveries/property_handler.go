package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/hotel-audit-core/internal/app/middlewares"
	"github.com/safatanc/hotel-audit-core/internal/app/models"
	"github.com/safatanc/hotel-audit-core/internal/app/pkg"
	"github.com/safatanc/hotel-audit-core/internal/app/services"
	"github.com/safatanc/hotel-audit-core/internal/infrastructures"
)

type PropertyHandler struct {
	propertyService *services.PropertyService
	authMiddleware  *middlewares.AuthMiddleware
	validator       *infrastructures.Validator
}

func NewPropertyHandler(propertyService *services.PropertyService, authMiddleware *middlewares.AuthMiddleware, validator *infrastructures.Validator) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
		authMiddleware:  authMiddleware,
		validator:       validator,
	}
}

func (h *PropertyHandler) RegisterRoutes(router fiber.Router) {
	propertyGroup := router.Group("/properties")

	propertyGroup.Get("/", h.GetProperties)
	propertyGroup.Get("/latest-audits", h.GetPropertiesWithLatestAudit)
	propertyGroup.Get("/needing-audit", h.GetPropertiesNeedingAudit)
	propertyGroup.Get("/regions/performance", h.GetRegionPerformance)
	propertyGroup.Get("/regions/:region", h.GetPropertiesByRegion)
	propertyGroup.Get("/:id", h.GetProperty)

	propertyGroup.Post("/", h.authMiddleware.RequireRoles(models.UserRoleAdmin), h.CreateProperty)
	propertyGroup.Post("/:id/status", h.authMiddleware.RequireRoles(models.UserRoleAdmin, models.UserRoleReviewer), h.UpdatePropertyStatus)
}

func (h *PropertyHandler) CreateProperty(c *fiber.Ctx) error {
	var req models.PropertyCreateRequest
	if err := parseBody(c, &req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	property, err := h.propertyService.CreateProperty(c.UserContext(), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.CreatedResponse(c, property)
}

func (h *PropertyHandler) GetProperties(c *fiber.Ctx) error {
	properties, err := h.propertyService.GetAllProperties(c.UserContext())
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, properties)
}

func (h *PropertyHandler) GetProperty(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	property, err := h.propertyService.GetProperty(c.UserContext(), id)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, property)
}

func (h *PropertyHandler) GetPropertiesWithLatestAudit(c *fiber.Ctx) error {
	properties, err := h.propertyService.GetPropertiesWithLatestAudit(c.UserContext())
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, properties)
}

func (h *PropertyHandler) GetPropertiesNeedingAudit(c *fiber.Ctx) error {
	properties, err := h.propertyService.GetPropertiesNeedingAudit(c.UserContext())
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, properties)
}

func (h *PropertyHandler) GetPropertiesByRegion(c *fiber.Ctx) error {
	properties, err := h.propertyService.GetPropertiesByRegion(c.UserContext(), c.Params("region"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, properties)
}

func (h *PropertyHandler) GetRegionPerformance(c *fiber.Ctx) error {
	rows, err := h.propertyService.GetPropertyPerformanceByRegion(c.UserContext())
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, rows)
}

func (h *PropertyHandler) UpdatePropertyStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	var req models.PropertyStatusRequest
	if err := parseBody(c, &req); err != nil {
		return pkg.ErrorResponse(c, err)
	}
	if err := h.validator.Validate(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	property, err := h.propertyService.UpdatePropertyStatus(c.UserContext(), id, *req.Score)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, property)
}
