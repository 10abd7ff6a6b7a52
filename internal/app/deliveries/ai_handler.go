package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/hotel-audit-core/internal/app/models"
	"github.com/safatanc/hotel-audit-core/internal/app/pkg"
	"github.com/safatanc/hotel-audit-core/internal/app/services"
	"github.com/safatanc/hotel-audit-core/internal/infrastructures"
)

type AIHandler struct {
	aiService *services.AIService
	validator *infrastructures.Validator
}

func NewAIHandler(aiService *services.AIService, validator *infrastructures.Validator) *AIHandler {
	return &AIHandler{
		aiService: aiService,
		validator: validator,
	}
}

func (h *AIHandler) RegisterRoutes(router fiber.Router) {
	aiGroup := router.Group("/ai")

	aiGroup.Post("/analyze-photo", h.AnalyzePhoto)
	aiGroup.Post("/generate-report", h.GenerateReport)
	aiGroup.Post("/suggest-score", h.SuggestScore)
}

// RegisterPublicRoutes registers the AI routes that need no token. It has
// to run before the /ai auth middleware is registered.
func (h *AIHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/ai/health", h.Health)
}

func (h *AIHandler) AnalyzePhoto(c *fiber.Ctx) error {
	var req models.PhotoAnalysisRequest
	if err := parseBody(c, &req); err != nil {
		return pkg.ErrorResponse(c, err)
	}
	if err := h.validator.Validate(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	analysis, err := h.aiService.AnalyzePhoto(c.UserContext(), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, analysis)
}

func (h *AIHandler) GenerateReport(c *fiber.Ctx) error {
	var req models.ReportGenerationRequest
	if err := parseBody(c, &req); err != nil {
		return pkg.ErrorResponse(c, err)
	}
	if err := h.validator.Validate(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	report, err := h.aiService.GenerateReport(c.UserContext(), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, report)
}

func (h *AIHandler) SuggestScore(c *fiber.Ctx) error {
	var req models.ScoreSuggestionRequest
	if err := parseBody(c, &req); err != nil {
		return pkg.ErrorResponse(c, err)
	}
	if err := h.validator.Validate(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	suggestion, err := h.aiService.SuggestScore(c.UserContext(), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, suggestion)
}

func (h *AIHandler) Health(c *fiber.Ctx) error {
	return pkg.SuccessResponse(c, h.aiService.Health())
}
