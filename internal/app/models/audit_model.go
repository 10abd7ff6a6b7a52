package models

import (
	"time"

	"gorm.io/datatypes"
)

type AuditStatus string

const (
	AuditStatusScheduled  AuditStatus = "scheduled"
	AuditStatusInProgress AuditStatus = "in_progress"
	AuditStatusSubmitted  AuditStatus = "submitted"
	AuditStatusReviewed   AuditStatus = "reviewed"
	AuditStatusCompleted  AuditStatus = "completed"
)

func (s AuditStatus) IsValid() bool {
	switch s {
	case AuditStatusScheduled, AuditStatusInProgress, AuditStatusSubmitted, AuditStatusReviewed, AuditStatusCompleted:
		return true
	default:
		return false
	}
}

type Audit struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	PropertyID       uint            `gorm:"not null;index" json:"property_id"`
	AuditorID        *uint           `gorm:"index" json:"auditor_id"`
	ReviewerID       *uint           `gorm:"index" json:"reviewer_id"`
	Status           AuditStatus     `gorm:"type:varchar(20);not null;default:scheduled;index" json:"status"`
	OverallScore     *int            `json:"overall_score"`
	CleanlinessScore *int            `json:"cleanliness_score"`
	BrandingScore    *int            `json:"branding_score"`
	OperationalScore *int            `json:"operational_score"`
	ComplianceZone   *ComplianceZone `gorm:"type:varchar(10)" json:"compliance_zone"`
	Findings         datatypes.JSON  `gorm:"column:findings" json:"findings,omitempty"`
	ActionPlan       datatypes.JSON  `gorm:"column:action_plan" json:"action_plan,omitempty"`
	AIReport         datatypes.JSON  `gorm:"column:ai_report" json:"ai_report,omitempty"`
	AIInsights       datatypes.JSON  `gorm:"column:ai_insights" json:"ai_insights,omitempty"`
	SubmittedAt      *time.Time      `json:"submitted_at"`
	ReviewedAt       *time.Time      `json:"reviewed_at"`
	CreatedAt        time.Time       `gorm:"autoCreateTime;index" json:"created_at"`

	// Relations
	Property *Property   `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Auditor  *User       `gorm:"foreignKey:AuditorID" json:"auditor,omitempty"`
	Reviewer *User       `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Items    []AuditItem `gorm:"foreignKey:AuditID" json:"audit_items,omitempty"`
}

type AuditCreateRequest struct {
	PropertyID uint         `json:"property_id" validate:"required"`
	AuditorID  *uint        `json:"auditor_id,omitempty"`
	ReviewerID *uint        `json:"reviewer_id,omitempty"`
	Status     *AuditStatus `json:"status,omitempty" validate:"omitempty,oneof=scheduled in_progress submitted reviewed completed"`
}

// AuditPatch lists every field a generic audit update may touch. Nil (or
// empty JSON) fields are left as they are.
type AuditPatch struct {
	Status           *AuditStatus    `json:"status,omitempty" validate:"omitempty,oneof=scheduled in_progress submitted reviewed completed"`
	ReviewerID       *uint           `json:"reviewer_id,omitempty"`
	OverallScore     *int            `json:"overall_score,omitempty"`
	CleanlinessScore *int            `json:"cleanliness_score,omitempty"`
	BrandingScore    *int            `json:"branding_score,omitempty"`
	OperationalScore *int            `json:"operational_score,omitempty"`
	ComplianceZone   *ComplianceZone `json:"compliance_zone,omitempty" validate:"omitempty,oneof=green amber red"`
	Findings         datatypes.JSON  `json:"findings,omitempty"`
	ActionPlan       datatypes.JSON  `json:"action_plan,omitempty"`
	AIReport         datatypes.JSON  `json:"ai_report,omitempty"`
	AIInsights       datatypes.JSON  `json:"ai_insights,omitempty"`
	SubmittedAt      *time.Time      `json:"submitted_at,omitempty"`
	ReviewedAt       *time.Time      `json:"reviewed_at,omitempty"`
}

// AuditScoresRequest submits an audit. Only OverallScore is mandatory.
type AuditScoresRequest struct {
	OverallScore     *int            `json:"overall_score" validate:"required"`
	CleanlinessScore *int            `json:"cleanliness_score,omitempty"`
	BrandingScore    *int            `json:"branding_score,omitempty"`
	OperationalScore *int            `json:"operational_score,omitempty"`
	ComplianceZone   *ComplianceZone `json:"compliance_zone,omitempty" validate:"omitempty,oneof=green amber red"`
	Findings         datatypes.JSON  `json:"findings,omitempty"`
	ActionPlan       datatypes.JSON  `json:"action_plan,omitempty"`
}

type AuditReviewRequest struct {
	ReviewerID uint `json:"reviewer_id" validate:"required"`
}

// AuditFilter holds the optional criteria of the audit query builder.
// Criteria are AND-ed; values inside one list are OR-ed.
type AuditFilter struct {
	PropertyIDs     []uint
	AuditorIDs      []uint
	Statuses        []AuditStatus
	DateFrom        *time.Time
	DateTo          *time.Time
	ScoreMin        *int
	ScoreMax        *int
	ComplianceZones []ComplianceZone
}

type AuditStatistics struct {
	Status            AuditStatus `json:"status"`
	Count             int64       `json:"count"`
	AvgScore          *float64    `json:"avg_score"`
	AvgCompletionDays *float64    `json:"avg_completion_days"`
}

type MonthlyAuditTrend struct {
	Month           string   `json:"month"`
	TotalAudits     int64    `json:"total_audits"`
	CompletedAudits int64    `json:"completed_audits"`
	AvgScore        *float64 `json:"avg_score"`
}

// HasJSON reports whether a JSON payload carries a value worth storing
func HasJSON(value datatypes.JSON) bool {
	return len(value) > 0 && string(value) != "null"
}
