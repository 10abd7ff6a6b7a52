package models

import (
	"time"

	"gorm.io/datatypes"
)

type AuditItem struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	AuditID          uint           `gorm:"not null;index" json:"audit_id"`
	Section          string         `gorm:"type:varchar(100);not null;index" json:"section"`
	ItemName         string         `gorm:"type:varchar(255);not null" json:"item_name"`
	Description      string         `gorm:"type:text" json:"description"`
	IsCompliant      *bool          `json:"is_compliant"`
	Score            *float64       `json:"score"`
	Notes            *string        `gorm:"type:text" json:"notes"`
	PhotoURL         *string        `gorm:"column:photo_url;type:text" json:"photo_url"`
	AIAnalysis       datatypes.JSON `gorm:"column:ai_analysis" json:"ai_analysis,omitempty"`
	AISuggestedScore *float64       `gorm:"column:ai_suggested_score" json:"ai_suggested_score"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Audit *Audit `gorm:"foreignKey:AuditID" json:"audit,omitempty"`
}

type AuditItemCreateRequest struct {
	Section     string   `json:"section" validate:"required,max=100"`
	ItemName    string   `json:"item_name" validate:"required,max=255"`
	Description string   `json:"description"`
	IsCompliant *bool    `json:"is_compliant,omitempty"`
	Score       *float64 `json:"score,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
	PhotoURL    *string  `json:"photo_url,omitempty"`
}

type AuditItemBulkCreateRequest struct {
	Items []AuditItemCreateRequest `json:"items" validate:"required,min=1,dive"`
}

// AuditItemPatch lists every field an item update may touch
type AuditItemPatch struct {
	IsCompliant *bool    `json:"is_compliant,omitempty"`
	Score       *float64 `json:"score,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
	PhotoURL    *string  `json:"photo_url,omitempty"`
}

type ItemPerformance struct {
	Section          string   `json:"section"`
	ItemName         string   `json:"item_name"`
	AvgScore         *float64 `json:"avg_score"`
	TotalAssessments int64    `json:"total_assessments"`
	HighScores       int64    `json:"high_scores"`
}
