package services

import (
	"context"

	"github.com/safatanc/hotel-audit-core/internal/app/models"
	"gorm.io/gorm"
)

// AuditQueryBuilder narrows the audit listing with optional criteria.
// Every criterion is AND-ed; list criteria match any of their values.
type AuditQueryBuilder struct {
	db *gorm.DB
}

func NewAuditQueryBuilder(db *gorm.DB) *AuditQueryBuilder {
	return &AuditQueryBuilder{
		db: db,
	}
}

// Build returns an unexecuted query with property, auditor and reviewer
// preloaded, ordered by created_at desc. An empty filter lists everything.
func (b *AuditQueryBuilder) Build(ctx context.Context, filter models.AuditFilter) *gorm.DB {
	return b.apply(b.db.WithContext(ctx).Model(&models.Audit{}), filter).
		Preload("Property").
		Preload("Auditor").
		Preload("Reviewer").
		Order("created_at DESC").
		Order("id DESC")
}

// Count returns how many audits match the filter
func (b *AuditQueryBuilder) Count(ctx context.Context, filter models.AuditFilter) (int64, error) {
	var total int64
	err := b.apply(b.db.WithContext(ctx).Model(&models.Audit{}), filter).Count(&total).Error
	return total, err
}

func (b *AuditQueryBuilder) apply(query *gorm.DB, filter models.AuditFilter) *gorm.DB {
	if len(filter.PropertyIDs) > 0 {
		query = query.Where("property_id IN ?", filter.PropertyIDs)
	}
	if len(filter.AuditorIDs) > 0 {
		query = query.Where("auditor_id IN ?", filter.AuditorIDs)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.DateFrom != nil {
		query = query.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("created_at <= ?", *filter.DateTo)
	}
	if filter.ScoreMin != nil {
		query = query.Where("overall_score >= ?", *filter.ScoreMin)
	}
	if filter.ScoreMax != nil {
		query = query.Where("overall_score <= ?", *filter.ScoreMax)
	}
	if len(filter.ComplianceZones) > 0 {
		query = query.Where("compliance_zone IN ?", filter.ComplianceZones)
	}
	return query
}
