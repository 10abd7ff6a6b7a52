package models

import (
	"time"
)

type Property struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	Location       string         `gorm:"type:varchar(255);not null" json:"location"`
	Region         string         `gorm:"type:varchar(100);not null;index" json:"region"`
	Image          *string        `gorm:"type:text" json:"image,omitempty"`
	Status         ComplianceZone `gorm:"type:varchar(10);not null;default:green" json:"status"`
	LastAuditScore *int           `json:"last_audit_score"`
	NextAuditDate  *time.Time     `gorm:"index" json:"next_audit_date"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

type PropertyCreateRequest struct {
	Name     string          `json:"name" validate:"required,max=255"`
	Location string          `json:"location" validate:"required,max=255"`
	Region   string          `json:"region" validate:"required,max=100"`
	Image    *string         `json:"image,omitempty"`
	Status   *ComplianceZone `json:"status,omitempty" validate:"omitempty,oneof=green amber red"`
}

type PropertyStatusRequest struct {
	Score *int `json:"score" validate:"required"`
}

// PropertyWithLatestAudit is a property joined with the audit that has the
// highest id for it. Audit columns are nil when the property was never
// audited.
type PropertyWithLatestAudit struct {
	Property
	LatestScore      *int            `json:"latest_score"`
	LatestCompliance *ComplianceZone `json:"latest_compliance"`
	LastAuditDate    *time.Time      `json:"last_audit_date"`
	LastAuditorName  *string         `json:"last_auditor_name"`
}

type RegionPerformance struct {
	Region          string   `json:"region"`
	TotalProperties int64    `json:"total_properties"`
	AvgScore        *float64 `json:"avg_score"`
	GreenProperties int64    `json:"green_properties"`
	AmberProperties int64    `json:"amber_properties"`
	RedProperties   int64    `json:"red_properties"`
}
