package models

import "time"

type PhotoAnalysisRequest struct {
	ImageBase64 string `json:"image_base64" validate:"required"`
	Context     string `json:"context" validate:"required,max=2000"`
	AuditItemID *uint  `json:"audit_item_id,omitempty"`
}

type PhotoAnalysisResponse struct {
	ComplianceStatus string   `json:"compliance_status"`
	ConfidenceScore  float64  `json:"confidence_score"`
	Observations     []string `json:"observations"`
	Suggestions      []string `json:"suggestions"`
	AIScore          *float64 `json:"ai_score"`
}

type ReportGenerationRequest struct {
	AuditID uint `json:"audit_id" validate:"required"`
}

type ReportGenerationResponse struct {
	Summary            string         `json:"summary"`
	KeyFindings        []string       `json:"key_findings"`
	Recommendations    []string       `json:"recommendations"`
	ComplianceOverview map[string]any `json:"compliance_overview"`
	AIInsights         map[string]any `json:"ai_insights"`
}

type ScoreSuggestionRequest struct {
	AuditItemID  uint   `json:"audit_item_id" validate:"required"`
	Observations string `json:"observations" validate:"required,max=4000"`
}

type ScoreSuggestionResponse struct {
	SuggestedScore float64        `json:"suggested_score"`
	Confidence     float64        `json:"confidence"`
	Reasoning      string         `json:"reasoning"`
	ComplianceZone ComplianceZone `json:"compliance_zone"`
}

// AuditReportPayload is the flattened audit the model writes a report from
type AuditReportPayload struct {
	PropertyName   string                   `json:"property_name"`
	Location       string                   `json:"location"`
	AuditDate      string                   `json:"audit_date"`
	AuditType      string                   `json:"audit_type"`
	OverallScore   *int                     `json:"overall_score"`
	ComplianceZone *ComplianceZone          `json:"compliance_zone"`
	AuditItems     []AuditReportItemPayload `json:"audit_items"`
}

type AuditReportItemPayload struct {
	Section  string   `json:"section"`
	Item     string   `json:"item"`
	Score    *float64 `json:"score"`
	Comments *string  `json:"comments"`
}

type AIHealth struct {
	Status    string    `json:"status"`
	AIService string    `json:"ai_service"`
	Model     string    `json:"model"`
	Timestamp time.Time `json:"timestamp"`
}
