package deliveries

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/hotel-audit-core/internal/app/pkg"
	"github.com/safatanc/hotel-audit-core/internal/app/services"
)

type ReportHandler struct {
	reportService    *services.ReportService
	auditItemService *services.AuditItemService
	userService      *services.UserService
	exportService    *services.ExportService
}

func NewReportHandler(reportService *services.ReportService, auditItemService *services.AuditItemService, userService *services.UserService, exportService *services.ExportService) *ReportHandler {
	return &ReportHandler{
		reportService:    reportService,
		auditItemService: auditItemService,
		userService:      userService,
		exportService:    exportService,
	}
}

func (h *ReportHandler) RegisterRoutes(router fiber.Router) {
	reportGroup := router.Group("/reports")

	reportGroup.Get("/dashboard", h.GetDashboard)
	reportGroup.Get("/property-trend", h.GetPropertyTrend)
	reportGroup.Get("/auditor-performance", h.GetAuditorPerformance)
	reportGroup.Get("/category-performance", h.GetCategoryPerformance)
	reportGroup.Get("/item-performance", h.GetItemPerformance)
	reportGroup.Get("/low-score-items", h.GetLowScoreItems)
	reportGroup.Get("/requiring-attention", h.GetRequiringAttention)
	reportGroup.Get("/ai-accuracy", h.GetAIAccuracy)
	reportGroup.Get("/seasonal", h.GetSeasonal)
	reportGroup.Get("/improvement", h.GetImprovement)
	reportGroup.Get("/risk-assessment", h.GetRiskAssessment)
	reportGroup.Get("/risk-assessment/export", h.ExportRiskAssessment)
	reportGroup.Get("/user-statistics", h.GetUserStatistics)
}

func (h *ReportHandler) GetDashboard(c *fiber.Ctx) error {
	dashboard, err := h.reportService.GetComplianceDashboard(c.UserContext())
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse(c, dashboard)
}

func (h *ReportHandler) GetPropertyTrend(c *fiber.Ctx) error {
	rows, err := h.reportService.GetPropertyComplianceTrend(c.UserContext())
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse(c, rows)
}

func (h *ReportHandler) GetAuditorPerformance(c *fiber.Ctx) error {
	rows, err := h.reportService.GetAuditorPerformance(c.UserContext())
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse(c, rows)
}

func (h *ReportHandler) GetCategoryPerformance(c *fiber.Ctx) error {
	rows, err := h.reportService.GetCategoryPerformance(c.UserContext())
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse(c, rows)
}

func (h *ReportHandler) GetItemPerformance(c *fiber.Ctx) error {
	rows, err := h.auditItemService.GetItemsByCategoryPerformance(c.UserContext())
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse(c, rows)
}

func (h *ReportHandler) GetLowScoreItems(c *fiber.Ctx) error {
	threshold, err := queryInt(c, "threshold", services.DefaultLowScoreThreshold)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	items, err := h.auditItemService.GetLowScoreItems(c.UserContext(), float64(threshold))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse(c, items)
}

func (h *ReportHandler) GetRequiringAttention(c *fiber.Ctx) error {
	rows, err := h.reportService.GetPropertiesRequiringAttention(c.UserContext())
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse(c, rows)
}

func (h *ReportHandler) GetAIAccuracy(c *fiber.Ctx) error {
	rows, err := h.reportService.GetAIScoreAccuracy(c.UserContext())
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse(c, rows)
}

func (h *ReportHandler) GetSeasonal(c *fiber.Ctx) error {
	years, err := queryInt(c, "years", 2)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	rows, err := h.reportService.GetSeasonalPerformance(c.UserContext(), years)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse(c, rows)
}

func (h *ReportHandler) GetImprovement(c *fiber.Ctx) error {
	rows, err := h.reportService.GetPropertyImprovementTracking(c.UserContext())
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse(c, rows)
}

func (h *ReportHandler) GetRiskAssessment(c *fiber.Ctx) error {
	rows, err := h.reportService.GetRiskAssessment(c.UserContext())
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse(c, rows)
}

func (h *ReportHandler) ExportRiskAssessment(c *fiber.Ctx) error {
	data, err := h.exportService.ExportRiskAssessment(c.UserContext())
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	filename := fmt.Sprintf("risk-assessment-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Set(fiber.HeaderContentType, services.XLSXContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))

	return c.Send(data)
}

func (h *ReportHandler) GetUserStatistics(c *fiber.Ctx) error {
	stats, err := h.userService.GetUserStatistics(c.UserContext())
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse(c, stats)
}
