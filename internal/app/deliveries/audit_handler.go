package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/hotel-audit-core/internal/app/middlewares"
	"github.com/safatanc/hotel-audit-core/internal/app/models"
	"github.com/safatanc/hotel-audit-core/internal/app/pkg"
	"github.com/safatanc/hotel-audit-core/internal/app/services"
)

type AuditHandler struct {
	auditService     *services.AuditService
	auditItemService *services.AuditItemService
	authMiddleware   *middlewares.AuthMiddleware
}

func NewAuditHandler(auditService *services.AuditService, auditItemService *services.AuditItemService, authMiddleware *middlewares.AuthMiddleware) *AuditHandler {
	return &AuditHandler{
		auditService:     auditService,
		auditItemService: auditItemService,
		authMiddleware:   authMiddleware,
	}
}

func (h *AuditHandler) RegisterRoutes(router fiber.Router) {
	auditGroup := router.Group("/audits")

	// Static paths first so they are not taken for an :id
	auditGroup.Get("/", h.FilterAudits)
	auditGroup.Get("/statistics", h.GetAuditStatistics)
	auditGroup.Get("/trend", h.GetMonthlyTrend)
	auditGroup.Get("/ai-analysis", h.GetAuditsWithAIAnalysis)
	auditGroup.Get("/auditor/:auditor_id", h.GetAuditsByAuditor)
	auditGroup.Get("/status/:status", h.GetAuditsByStatus)
	auditGroup.Patch("/items/:item_id", h.UpdateAuditItem)

	auditGroup.Post("/", h.authMiddleware.RequireRoles(models.UserRoleAdmin), h.CreateAudit)
	auditGroup.Get("/:id", h.GetAudit)
	auditGroup.Patch("/:id", h.UpdateAudit)
	auditGroup.Post("/:id/scores", h.UpdateAuditScores)
	auditGroup.Post("/:id/review", h.authMiddleware.RequireRoles(models.UserRoleAdmin, models.UserRoleReviewer), h.AssignReviewer)
	auditGroup.Get("/:id/items", h.GetAuditItems)
	auditGroup.Post("/:id/items", h.CreateAuditItem)
	auditGroup.Post("/:id/items/bulk", h.CreateAuditItems)
}

// FilterAudits lists audits through the query builder. Supported query
// parameters: property_ids, auditor_ids, status, compliance_zones (comma
// separated), date_from, date_to, score_min, score_max, page, limit.
func (h *AuditHandler) FilterAudits(c *fiber.Ctx) error {
	filter, err := parseAuditFilter(c)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	page, err := queryInt(c, "page", 1)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	limit, err := queryInt(c, "limit", 20)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	audits, err := h.auditService.FilterAudits(c.UserContext(), filter, &models.PaginationRequest{
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, audits)
}

func (h *AuditHandler) CreateAudit(c *fiber.Ctx) error {
	var req models.AuditCreateRequest
	if err := parseBody(c, &req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	audit, err := h.auditService.CreateAudit(c.UserContext(), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.CreatedResponse(c, audit)
}

func (h *AuditHandler) GetAudit(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	audit, err := h.auditService.GetAudit(c.UserContext(), id)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, audit)
}

func (h *AuditHandler) GetAuditsByStatus(c *fiber.Ctx) error {
	audits, err := h.auditService.GetAuditsByStatus(c.UserContext(), models.AuditStatus(c.Params("status")))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, audits)
}

// GetAuditsByAuditor accepts an optional comma separated ?status= list
func (h *AuditHandler) GetAuditsByAuditor(c *fiber.Ctx) error {
	auditorID, err := paramID(c, "auditor_id")
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	var statuses []models.AuditStatus
	for _, raw := range pkg.SplitList(c.Query("status")) {
		statuses = append(statuses, models.AuditStatus(raw))
	}

	audits, err := h.auditService.GetAuditsByAuditor(c.UserContext(), auditorID, statuses)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, audits)
}

func (h *AuditHandler) UpdateAudit(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	var patch models.AuditPatch
	if err := parseBody(c, &patch); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	audit, err := h.auditService.UpdateAudit(c.UserContext(), id, &patch)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, audit)
}

func (h *AuditHandler) UpdateAuditScores(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	var req models.AuditScoresRequest
	if err := parseBody(c, &req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	audit, err := h.auditService.UpdateAuditScores(c.UserContext(), id, &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, audit)
}

func (h *AuditHandler) AssignReviewer(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	var req models.AuditReviewRequest
	if err := parseBody(c, &req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	audit, err := h.auditService.AssignReviewer(c.UserContext(), id, &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, audit)
}

func (h *AuditHandler) GetAuditsWithAIAnalysis(c *fiber.Ctx) error {
	audits, err := h.auditService.GetAuditsWithAIAnalysis(c.UserContext())
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, audits)
}

func (h *AuditHandler) GetAuditStatistics(c *fiber.Ctx) error {
	stats, err := h.auditService.GetAuditStatistics(c.UserContext())
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, stats)
}

func (h *AuditHandler) GetMonthlyTrend(c *fiber.Ctx) error {
	months, err := queryInt(c, "months", 12)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	trend, err := h.auditService.GetMonthlyAuditTrend(c.UserContext(), months)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, trend)
}

func (h *AuditHandler) GetAuditItems(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	items, err := h.auditItemService.GetAuditItems(c.UserContext(), id)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, items)
}

func (h *AuditHandler) CreateAuditItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	var req models.AuditItemCreateRequest
	if err := parseBody(c, &req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	item, err := h.auditItemService.CreateAuditItem(c.UserContext(), id, &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.CreatedResponse(c, item)
}

func (h *AuditHandler) CreateAuditItems(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	var req models.AuditItemBulkCreateRequest
	if err := parseBody(c, &req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	items, err := h.auditItemService.CreateAuditItems(c.UserContext(), id, &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.CreatedResponse(c, items)
}

func (h *AuditHandler) UpdateAuditItem(c *fiber.Ctx) error {
	id, err := paramID(c, "item_id")
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	var patch models.AuditItemPatch
	if err := parseBody(c, &patch); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	item, err := h.auditItemService.UpdateAuditItem(c.UserContext(), id, &patch)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, item)
}
