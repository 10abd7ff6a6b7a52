package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/safatanc/hotel-audit-core/internal/app/errors"
	"github.com/safatanc/hotel-audit-core/internal/app/models"
	"github.com/safatanc/hotel-audit-core/internal/infrastructures"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/datatypes"
)

const (
	maxPhotoWidth    = 1024
	standardAudit    = "Standard Audit"
	aiServiceName    = "gemini"
	jsonResponseMode = "application/json"
)

var tracer = otel.Tracer("hotel-audit-core/ai")

const photoAnalysisPrompt = `You are a hotel brand compliance auditor. Inspect the attached photo in the context below and judge whether it meets brand standards.
Context: %s

Respond with a JSON object with exactly these fields:
{"compliance_status": "compliant" | "non_compliant" | "needs_review",
 "confidence_score": number between 0 and 1,
 "observations": [string],
 "suggestions": [string],
 "ai_score": number between 0 and 100 or null}`

const reportPrompt = `You are a hotel brand compliance auditor. Write an audit report for the audit below.
Audit: %s

Respond with a JSON object with exactly these fields:
{"summary": string,
 "key_findings": [string],
 "recommendations": [string],
 "compliance_overview": object,
 "ai_insights": object}`

const scorePrompt = `You are a hotel brand compliance auditor. Suggest a score from 0 to 100 for the audit item below, given the auditor's observations.
Item: %s
Observations: %s

Respond with a JSON object with exactly these fields:
{"suggested_score": number between 0 and 100,
 "confidence": number between 0 and 1,
 "reasoning": string}`

type AIService struct {
	client           *infrastructures.GeminiClient
	auditService     *AuditService
	auditItemService *AuditItemService
	clock            func() time.Time
}

func NewAIService(client *infrastructures.GeminiClient, auditService *AuditService, auditItemService *AuditItemService) *AIService {
	return &AIService{
		client:           client,
		auditService:     auditService,
		auditItemService: auditItemService,
		clock:            func() time.Time { return time.Now().UTC() },
	}
}

// AnalyzePhoto asks the model to judge a photo. When auditItemID is set the
// item must exist and receives the analysis and the suggested score.
func (s *AIService) AnalyzePhoto(ctx context.Context, req *models.PhotoAnalysisRequest) (*models.PhotoAnalysisResponse, error) {
	if req.AuditItemID != nil {
		if _, err := s.auditItemService.GetAuditItem(ctx, *req.AuditItemID); err != nil {
			return nil, err
		}
	}

	photo, err := preparePhoto(req.ImageBase64)
	if err != nil {
		return nil, errors.NewBadRequestError(fmt.Sprintf("Invalid image: %s", err.Error()))
	}

	parts := []models.GeminiPart{
		{Text: fmt.Sprintf(photoAnalysisPrompt, req.Context)},
		{InlineData: &models.GeminiInlineData{MimeType: "image/jpeg", Data: photo}},
	}

	var analysis models.PhotoAnalysisResponse
	if err := s.generateJSON(ctx, "analyze_photo", parts, &analysis); err != nil {
		return nil, errors.NewServiceError(err, "analyze photo")
	}
	if analysis.ComplianceStatus == "" {
		return nil, errors.NewServiceError(fmt.Errorf("model response has no compliance_status"), "analyze photo")
	}

	if req.AuditItemID != nil {
		stored, err := json.Marshal(analysis)
		if err != nil {
			return nil, errors.NewInternalServerError(err, "Failed to encode photo analysis")
		}
		if _, err := s.auditItemService.UpdateAuditItemWithAI(ctx, *req.AuditItemID, datatypes.JSON(stored), analysis.AIScore, nil, nil); err != nil {
			return nil, err
		}
	}

	return &analysis, nil
}

// GenerateReport writes a narrative report for an audit and stores it on
// the audit.
func (s *AIService) GenerateReport(ctx context.Context, req *models.ReportGenerationRequest) (*models.ReportGenerationResponse, error) {
	audit, err := s.auditService.GetAudit(ctx, req.AuditID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(buildReportPayload(audit))
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to encode audit")
	}

	parts := []models.GeminiPart{
		{Text: fmt.Sprintf(reportPrompt, string(payload))},
	}

	var report models.ReportGenerationResponse
	if err := s.generateJSON(ctx, "generate_report", parts, &report); err != nil {
		return nil, errors.NewServiceError(err, "generate report")
	}

	reportJSON, err := json.Marshal(report)
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to encode report")
	}
	insightsJSON, err := json.Marshal(report.AIInsights)
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to encode insights")
	}

	if err := s.auditService.UpdateAuditWithAIReport(ctx, audit.ID, datatypes.JSON(reportJSON), datatypes.JSON(insightsJSON)); err != nil {
		return nil, err
	}

	return &report, nil
}

func buildReportPayload(audit *models.Audit) models.AuditReportPayload {
	payload := models.AuditReportPayload{
		PropertyName:   "Unknown",
		Location:       "Unknown",
		AuditDate:      audit.CreatedAt.UTC().Format(time.RFC3339),
		AuditType:      standardAudit,
		OverallScore:   audit.OverallScore,
		ComplianceZone: audit.ComplianceZone,
		AuditItems:     make([]models.AuditReportItemPayload, 0, len(audit.Items)),
	}
	if audit.Property != nil {
		payload.PropertyName = audit.Property.Name
		payload.Location = audit.Property.Location
	}
	for _, item := range audit.Items {
		payload.AuditItems = append(payload.AuditItems, models.AuditReportItemPayload{
			Section:  item.Section,
			Item:     item.ItemName,
			Score:    item.Score,
			Comments: item.Notes,
		})
	}
	return payload
}

// SuggestScore proposes a score for an item from free-form observations
// and stores the suggestion on the item.
func (s *AIService) SuggestScore(ctx context.Context, req *models.ScoreSuggestionRequest) (*models.ScoreSuggestionResponse, error) {
	item, err := s.auditItemService.GetAuditItem(ctx, req.AuditItemID)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("%s / %s", item.Section, item.ItemName)
	if item.Description != "" {
		description = fmt.Sprintf("%s: %s", description, item.Description)
	}

	parts := []models.GeminiPart{
		{Text: fmt.Sprintf(scorePrompt, description, req.Observations)},
	}

	var suggestion models.ScoreSuggestionResponse
	if err := s.generateJSON(ctx, "suggest_score", parts, &suggestion); err != nil {
		return nil, errors.NewServiceError(err, "suggest score")
	}
	suggestion.ComplianceZone = models.ZoneForScore(suggestion.SuggestedScore)

	if _, err := s.auditItemService.UpdateAuditItemWithAI(ctx, item.ID, nil, &suggestion.SuggestedScore, nil, nil); err != nil {
		return nil, err
	}

	return &suggestion, nil
}

func (s *AIService) Health() *models.AIHealth {
	return &models.AIHealth{
		Status:    "healthy",
		AIService: aiServiceName,
		Model:     s.client.Config.Model,
		Timestamp: s.clock(),
	}
}

// preparePhoto decodes a base64 image, optionally wrapped in a data URL,
// shrinks it to the maximum width and returns it as base64 JPEG.
func preparePhoto(encoded string) (string, error) {
	if i := strings.Index(encoded, ","); strings.HasPrefix(encoded, "data:") && i >= 0 {
		encoded = encoded[i+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return "", fmt.Errorf("not valid base64")
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("unsupported image format")
	}

	if img.Bounds().Dx() > maxPhotoWidth {
		img = imaging.Resize(img, maxPhotoWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// generateJSON sends one generateContent call in JSON mode and decodes the
// model's text into out.
func (s *AIService) generateJSON(ctx context.Context, operation string, parts []models.GeminiPart, out any) error {
	ctx, span := tracer.Start(ctx, "gemini.generateContent")
	defer span.End()
	span.SetAttributes(
		attribute.String("ai.operation", operation),
		attribute.String("ai.model", s.client.Config.Model),
	)

	logger := infrastructures.GetLogger().WithFields(logrus.Fields{
		"operation": operation,
		"model":     s.client.Config.Model,
	})
	started := time.Now()

	body := models.GeminiGenerateContentRequest{
		Contents: []models.GeminiContent{
			{Role: "user", Parts: parts},
		},
		GenerationConfig: &models.GeminiGenerationConfig{
			ResponseMimeType: jsonResponseMode,
		},
	}

	text, err := s.makeGeminiRequest(ctx, body)
	if err == nil {
		err = json.Unmarshal([]byte(stripCodeFence(text)), out)
		if err != nil {
			err = fmt.Errorf("invalid model output: %w", err)
		}
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.WithError(err).Warn("gemini call failed")
		return err
	}

	logger.WithField("duration_ms", time.Since(started).Milliseconds()).Debug("gemini call finished")
	return nil
}

func (s *AIService) makeGeminiRequest(ctx context.Context, body models.GeminiGenerateContentRequest) (string, error) {
	if s.client.Config.APIKey == "" {
		return "", fmt.Errorf("gemini API key is not configured")
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.client.GenerateContentURL(), bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.client.Config.APIKey)

	resp, err := s.client.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr models.GeminiErrorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("gemini API error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("gemini API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var geminiResp models.GeminiGenerateContentResponse
	if err := json.Unmarshal(respBody, &geminiResp); err != nil {
		return "", fmt.Errorf("invalid gemini response: %w", err)
	}

	if len(geminiResp.Candidates) == 0 {
		if geminiResp.PromptFeedback != nil && geminiResp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("prompt blocked: %s", geminiResp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var text strings.Builder
	for _, part := range geminiResp.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("gemini returned an empty answer")
	}

	return text.String(), nil
}

// stripCodeFence removes a ```json fence some models wrap JSON answers in
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
