package models

import (
	"time"
)

type ComplianceDashboard struct {
	TotalProperties int64   `json:"total_properties"`
	TotalAudits     int64   `json:"total_audits"`
	AvgOverallScore float64 `json:"avg_overall_score"`
	GreenAudits     int64   `json:"green_audits"`
	AmberAudits     int64   `json:"amber_audits"`
	RedAudits       int64   `json:"red_audits"`
}

type PropertyComplianceTrend struct {
	PropertyID      uint       `json:"property_id"`
	Name            string     `json:"name"`
	Location        string     `json:"location"`
	TotalAudits     int64      `json:"total_audits"`
	AvgScore        *float64   `json:"avg_score"`
	LastAuditDate   *time.Time `json:"last_audit_date"`
	ComplianceZones *string    `json:"compliance_zones"`
}

type AuditorPerformance struct {
	AuditorID         uint     `json:"auditor_id"`
	AuditorName       string   `json:"auditor_name"`
	TotalAudits       int64    `json:"total_audits"`
	AvgScoreGiven     *float64 `json:"avg_score_given"`
	AvgCompletionDays *float64 `json:"avg_completion_days"`
	CompletedAudits   int64    `json:"completed_audits"`
}

type CategoryPerformance struct {
	Section       string   `json:"section"`
	TotalItems    int64    `json:"total_items"`
	AvgScore      *float64 `json:"avg_score"`
	MinScore      *float64 `json:"min_score"`
	MaxScore      *float64 `json:"max_score"`
	ScoreVariance *float64 `json:"score_variance"`
}

type PropertyAttention struct {
	PropertyID     uint            `json:"property_id"`
	Name           string          `json:"name"`
	Location       string          `json:"location"`
	Status         ComplianceZone  `json:"status"`
	OverallScore   *int            `json:"overall_score"`
	ComplianceZone *ComplianceZone `json:"compliance_zone"`
	LastAuditDate  time.Time       `json:"last_audit_date"`
	DaysSinceAudit int             `json:"days_since_audit"`
}

type AIScoreAccuracy struct {
	ItemID           uint     `json:"item_id"`
	Section          string   `json:"section"`
	ItemName         string   `json:"item_name"`
	AISuggestedScore float64  `json:"ai_suggested_score"`
	ActualScore      float64  `json:"actual_score"`
	ScoreDifference  float64  `json:"score_difference"`
	AIConfidence     *float64 `json:"ai_confidence"`
}

type SeasonalPerformance struct {
	Year            int      `json:"year"`
	Quarter         int      `json:"quarter"`
	TotalAudits     int64    `json:"total_audits"`
	AvgScore        *float64 `json:"avg_score"`
	GreenPercentage float64  `json:"green_percentage"`
}

type PropertyImprovement struct {
	PropertyID       uint      `json:"property_id"`
	Name             string    `json:"name"`
	AuditDate        time.Time `json:"audit_date"`
	CurrentScore     int       `json:"current_score"`
	PreviousScore    int       `json:"previous_score"`
	ScoreImprovement int       `json:"score_improvement"`
	TotalAudits      int64     `json:"total_audits"`
}

type RiskAssessment struct {
	PropertyID     uint            `json:"property_id"`
	Name           string          `json:"name"`
	Location       string          `json:"location"`
	OverallScore   *int            `json:"overall_score"`
	ComplianceZone *ComplianceZone `json:"compliance_zone"`
	LastAuditDate  *time.Time      `json:"last_audit_date"`
	DaysSinceAudit *int            `json:"days_since_audit"`
	RiskLevel      RiskLevel       `json:"risk_level"`
}

type CleanupResult struct {
	DeletedItems  int64 `json:"deleted_items"`
	DeletedAudits int64 `json:"deleted_audits"`
}

type ScheduleSweepResult struct {
	UpdatedProperties int64     `json:"updated_properties"`
	NextAuditDate     time.Time `json:"next_audit_date"`
}
