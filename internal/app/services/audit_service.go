package services

import (
	"context"
	"fmt"
	"time"

	"github.com/safatanc/hotel-audit-core/internal/app/errors"
	"github.com/safatanc/hotel-audit-core/internal/app/models"
	"github.com/safatanc/hotel-audit-core/internal/app/pkg"
	"github.com/safatanc/hotel-audit-core/internal/infrastructures"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AuditService struct {
	db           *gorm.DB
	validator    *infrastructures.Validator
	queryBuilder *AuditQueryBuilder
	clock        func() time.Time
}

func NewAuditService(db *gorm.DB, validator *infrastructures.Validator, queryBuilder *AuditQueryBuilder) *AuditService {
	return &AuditService{
		db:           db,
		validator:    validator,
		queryBuilder: queryBuilder,
		clock:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *AuditService) CreateAudit(ctx context.Context, req *models.AuditCreateRequest) (*models.Audit, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.Property{}).Where("id = ?", req.PropertyID).Count(&count).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to check property")
	}
	if count == 0 {
		return nil, errors.NewNotFoundError("Property not found")
	}

	audit := &models.Audit{
		PropertyID: req.PropertyID,
		AuditorID:  req.AuditorID,
		ReviewerID: req.ReviewerID,
		Status:     models.AuditStatusScheduled,
	}
	if req.Status != nil {
		audit.Status = *req.Status
	}

	if err := db.Create(audit).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create audit")
	}

	return audit, nil
}

// GetAudit loads an audit with its property, people and items
func (s *AuditService) GetAudit(ctx context.Context, id uint) (*models.Audit, error) {
	var audit models.Audit
	err := s.db.WithContext(ctx).
		Preload("Property").
		Preload("Auditor").
		Preload("Reviewer").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("section ASC").Order("item_name ASC")
		}).
		First(&audit, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Audit not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get audit")
	}

	return &audit, nil
}

func (s *AuditService) GetAllAuditsWithDetails(ctx context.Context) ([]models.Audit, error) {
	var audits []models.Audit
	err := s.db.WithContext(ctx).
		Preload("Property").
		Preload("Auditor").
		Preload("Reviewer").
		Order("created_at DESC").
		Find(&audits).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get audits")
	}

	return audits, nil
}

func (s *AuditService) GetAuditsByStatus(ctx context.Context, status models.AuditStatus) ([]models.Audit, error) {
	if !status.IsValid() {
		return nil, errors.NewBadRequestError("Invalid audit status")
	}

	var audits []models.Audit
	err := s.db.WithContext(ctx).
		Preload("Property").
		Preload("Auditor").
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&audits).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get audits by status")
	}

	return audits, nil
}

// GetAuditsByAuditor lists an auditor's audits, optionally limited to a set
// of statuses.
func (s *AuditService) GetAuditsByAuditor(ctx context.Context, auditorID uint, statuses []models.AuditStatus) ([]models.Audit, error) {
	for _, status := range statuses {
		if !status.IsValid() {
			return nil, errors.NewBadRequestError(fmt.Sprintf("Invalid audit status: %s", status))
		}
	}

	query := s.db.WithContext(ctx).
		Preload("Property").
		Where("auditor_id = ?", auditorID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	var audits []models.Audit
	if err := query.Order("created_at ASC").Find(&audits).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get audits by auditor")
	}

	return audits, nil
}

// FilterAudits runs the audit query builder with pagination
func (s *AuditService) FilterAudits(ctx context.Context, filter models.AuditFilter, pagination *models.PaginationRequest) (*models.Pagination[[]models.Audit], error) {
	if pagination.Limit <= 0 {
		pagination.Limit = 20
	}
	if pagination.Page <= 0 {
		pagination.Page = 1
	}

	totalItems, err := s.queryBuilder.Count(ctx, filter)
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count audits")
	}

	offset := (pagination.Page - 1) * pagination.Limit

	var audits []models.Audit
	err = s.queryBuilder.Build(ctx, filter).
		Limit(pagination.Limit).
		Offset(offset).
		Find(&audits).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to filter audits")
	}

	totalPages := int((totalItems + int64(pagination.Limit) - 1) / int64(pagination.Limit))

	return &models.Pagination[[]models.Audit]{
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
		TotalItems: int(totalItems),
		HasNext:    pagination.Page < totalPages,
		HasPrev:    pagination.Page > 1,
		Items:      audits,
	}, nil
}

func (s *AuditService) UpdateAudit(ctx context.Context, id uint, patch *models.AuditPatch) (*models.Audit, error) {
	if err := s.validator.Validate(patch); err != nil {
		return nil, err
	}

	audit, err := s.GetAudit(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.ReviewerID != nil {
		updates["reviewer_id"] = *patch.ReviewerID
	}
	if patch.OverallScore != nil {
		updates["overall_score"] = *patch.OverallScore
	}
	if patch.CleanlinessScore != nil {
		updates["cleanliness_score"] = *patch.CleanlinessScore
	}
	if patch.BrandingScore != nil {
		updates["branding_score"] = *patch.BrandingScore
	}
	if patch.OperationalScore != nil {
		updates["operational_score"] = *patch.OperationalScore
	}
	if patch.ComplianceZone != nil {
		updates["compliance_zone"] = *patch.ComplianceZone
	}
	if models.HasJSON(patch.Findings) {
		updates["findings"] = patch.Findings
	}
	if models.HasJSON(patch.ActionPlan) {
		updates["action_plan"] = patch.ActionPlan
	}
	if models.HasJSON(patch.AIReport) {
		updates["ai_report"] = patch.AIReport
	}
	if models.HasJSON(patch.AIInsights) {
		updates["ai_insights"] = patch.AIInsights
	}
	if patch.SubmittedAt != nil {
		updates["submitted_at"] = *patch.SubmittedAt
	}
	if patch.ReviewedAt != nil {
		updates["reviewed_at"] = *patch.ReviewedAt
	}

	if len(updates) == 0 {
		return audit, nil
	}

	if err := s.db.WithContext(ctx).Model(&models.Audit{ID: id}).Updates(updates).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to update audit")
	}

	return s.GetAudit(ctx, id)
}

// UpdateAuditScores records the auditor's scores and submits the audit.
// Only supplied fields change; status and submitted_at are always set.
func (s *AuditService) UpdateAuditScores(ctx context.Context, id uint, req *models.AuditScoresRequest) (*models.Audit, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.GetAudit(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]any{
		"overall_score": *req.OverallScore,
		"status":        models.AuditStatusSubmitted,
		"submitted_at":  s.clock(),
	}
	if req.CleanlinessScore != nil {
		updates["cleanliness_score"] = *req.CleanlinessScore
	}
	if req.BrandingScore != nil {
		updates["branding_score"] = *req.BrandingScore
	}
	if req.OperationalScore != nil {
		updates["operational_score"] = *req.OperationalScore
	}
	if req.ComplianceZone != nil {
		updates["compliance_zone"] = *req.ComplianceZone
	}
	if models.HasJSON(req.Findings) {
		updates["findings"] = req.Findings
	}
	if models.HasJSON(req.ActionPlan) {
		updates["action_plan"] = req.ActionPlan
	}

	if err := s.db.WithContext(ctx).Model(&models.Audit{ID: id}).Updates(updates).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to update audit scores")
	}

	return s.GetAudit(ctx, id)
}

// AssignReviewer marks the audit reviewed by the given user
func (s *AuditService) AssignReviewer(ctx context.Context, id uint, req *models.AuditReviewRequest) (*models.Audit, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.GetAudit(ctx, id); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", req.ReviewerID).Count(&count).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to check reviewer")
	}
	if count == 0 {
		return nil, errors.NewNotFoundError("Reviewer not found")
	}

	updates := map[string]any{
		"reviewer_id": req.ReviewerID,
		"status":      models.AuditStatusReviewed,
		"reviewed_at": s.clock(),
	}
	if err := s.db.WithContext(ctx).Model(&models.Audit{ID: id}).Updates(updates).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to assign reviewer")
	}

	return s.GetAudit(ctx, id)
}

func (s *AuditService) UpdateAuditWithAIReport(ctx context.Context, id uint, report, insights datatypes.JSON) error {
	result := s.db.WithContext(ctx).
		Model(&models.Audit{ID: id}).
		Updates(map[string]any{
			"ai_report":   report,
			"ai_insights": insights,
		})
	if result.Error != nil {
		return errors.NewInternalServerError(result.Error, "Failed to store AI report")
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("Audit not found")
	}

	return nil
}

func (s *AuditService) GetAuditsWithAIAnalysis(ctx context.Context) ([]models.Audit, error) {
	var audits []models.Audit
	err := s.db.WithContext(ctx).
		Preload("Property").
		Where("ai_report IS NOT NULL").
		Order("created_at DESC").
		Find(&audits).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get audits with AI analysis")
	}

	return audits, nil
}

// GetAuditStatistics summarizes submitted audits per status
func (s *AuditService) GetAuditStatistics(ctx context.Context) ([]models.AuditStatistics, error) {
	db := s.db.WithContext(ctx)
	dialect := dialectOf(db)

	var stats []models.AuditStatistics
	err := db.Model(&models.Audit{}).
		Select(fmt.Sprintf(`status,
			COUNT(*) AS count,
			AVG(overall_score) AS avg_score,
			AVG(%s) AS avg_completion_days`, dialect.daysBetween("created_at", "submitted_at"))).
		Where("submitted_at IS NOT NULL").
		Group("status").
		Order("status ASC").
		Scan(&stats).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get audit statistics")
	}

	for i := range stats {
		stats[i].AvgScore = pkg.RoundScorePtr(stats[i].AvgScore)
		stats[i].AvgCompletionDays = pkg.RoundScorePtr(stats[i].AvgCompletionDays)
	}

	return stats, nil
}

// GetMonthlyAuditTrend buckets audits by month over the last n*30 days,
// oldest month first.
func (s *AuditService) GetMonthlyAuditTrend(ctx context.Context, months int) ([]models.MonthlyAuditTrend, error) {
	if months <= 0 {
		months = 12
	}

	db := s.db.WithContext(ctx)
	dialect := dialectOf(db)
	month := dialect.month("created_at")
	since := s.clock().AddDate(0, 0, -months*30)

	var trend []models.MonthlyAuditTrend
	err := db.Model(&models.Audit{}).
		Select(fmt.Sprintf(`%s AS month,
			COUNT(*) AS total_audits,
			COUNT(CASE WHEN status = ? THEN 1 END) AS completed_audits,
			AVG(overall_score) AS avg_score`, month), models.AuditStatusCompleted).
		Where("created_at >= ?", since).
		Group(month).
		Order("month ASC").
		Scan(&trend).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get monthly audit trend")
	}

	for i := range trend {
		trend[i].AvgScore = pkg.RoundScorePtr(trend[i].AvgScore)
	}

	return trend, nil
}
