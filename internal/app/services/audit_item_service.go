package services

import (
	"context"

	"github.com/safatanc/hotel-audit-core/internal/app/errors"
	"github.com/safatanc/hotel-audit-core/internal/app/models"
	"github.com/safatanc/hotel-audit-core/internal/app/pkg"
	"github.com/safatanc/hotel-audit-core/internal/infrastructures"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultLowScoreThreshold is the score below which an item is flagged
const DefaultLowScoreThreshold = 70

type AuditItemService struct {
	db        *gorm.DB
	validator *infrastructures.Validator
}

func NewAuditItemService(db *gorm.DB, validator *infrastructures.Validator) *AuditItemService {
	return &AuditItemService{
		db:        db,
		validator: validator,
	}
}

func newAuditItem(auditID uint, req models.AuditItemCreateRequest) models.AuditItem {
	return models.AuditItem{
		AuditID:     auditID,
		Section:     req.Section,
		ItemName:    req.ItemName,
		Description: req.Description,
		IsCompliant: req.IsCompliant,
		Score:       req.Score,
		Notes:       req.Notes,
		PhotoURL:    req.PhotoURL,
	}
}

func (s *AuditItemService) ensureAudit(db *gorm.DB, auditID uint) error {
	var count int64
	if err := db.Model(&models.Audit{}).Where("id = ?", auditID).Count(&count).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to check audit")
	}
	if count == 0 {
		return errors.NewNotFoundError("Audit not found")
	}
	return nil
}

func (s *AuditItemService) CreateAuditItem(ctx context.Context, auditID uint, req *models.AuditItemCreateRequest) (*models.AuditItem, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	if err := s.ensureAudit(db, auditID); err != nil {
		return nil, err
	}

	item := newAuditItem(auditID, *req)
	if err := db.Create(&item).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create audit item")
	}

	return &item, nil
}

// CreateAuditItems inserts all items of one audit in a single transaction
func (s *AuditItemService) CreateAuditItems(ctx context.Context, auditID uint, req *models.AuditItemBulkCreateRequest) ([]models.AuditItem, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	items := make([]models.AuditItem, 0, len(req.Items))
	for _, itemReq := range req.Items {
		items = append(items, newAuditItem(auditID, itemReq))
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ensureAudit(tx, auditID); err != nil {
			return err
		}
		if err := tx.Create(&items).Error; err != nil {
			return errors.NewInternalServerError(err, "Failed to create audit items")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (s *AuditItemService) GetAuditItem(ctx context.Context, id uint) (*models.AuditItem, error) {
	var item models.AuditItem
	err := s.db.WithContext(ctx).First(&item, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Audit item not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get audit item")
	}

	return &item, nil
}

func (s *AuditItemService) GetAuditItems(ctx context.Context, auditID uint) ([]models.AuditItem, error) {
	db := s.db.WithContext(ctx)
	if err := s.ensureAudit(db, auditID); err != nil {
		return nil, err
	}

	var items []models.AuditItem
	err := db.Where("audit_id = ?", auditID).
		Order("section ASC").
		Order("item_name ASC").
		Find(&items).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get audit items")
	}

	return items, nil
}

func (s *AuditItemService) UpdateAuditItem(ctx context.Context, id uint, patch *models.AuditItemPatch) (*models.AuditItem, error) {
	if err := s.validator.Validate(patch); err != nil {
		return nil, err
	}

	item, err := s.GetAuditItem(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if patch.IsCompliant != nil {
		updates["is_compliant"] = *patch.IsCompliant
	}
	if patch.Score != nil {
		updates["score"] = *patch.Score
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}
	if patch.PhotoURL != nil {
		updates["photo_url"] = *patch.PhotoURL
	}

	if len(updates) == 0 {
		return item, nil
	}

	if err := s.db.WithContext(ctx).Model(item).Updates(updates).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to update audit item")
	}

	return s.GetAuditItem(ctx, id)
}

// UpdateAuditItemWithAI stores a model analysis on the item. score and
// notes are only written when given.
func (s *AuditItemService) UpdateAuditItemWithAI(ctx context.Context, id uint, analysis datatypes.JSON, suggestedScore *float64, score *float64, notes *string) (*models.AuditItem, error) {
	item, err := s.GetAuditItem(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if models.HasJSON(analysis) {
		updates["ai_analysis"] = analysis
	}
	if suggestedScore != nil {
		updates["ai_suggested_score"] = *suggestedScore
	}
	if score != nil {
		updates["score"] = *score
	}
	if notes != nil {
		updates["notes"] = *notes
	}

	if len(updates) == 0 {
		return item, nil
	}

	if err := s.db.WithContext(ctx).Model(item).Updates(updates).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to store AI analysis")
	}

	return s.GetAuditItem(ctx, id)
}

// GetLowScoreItems lists scored items below threshold, worst first. Ties
// go to the most recent audit.
func (s *AuditItemService) GetLowScoreItems(ctx context.Context, threshold float64) ([]models.AuditItem, error) {
	var items []models.AuditItem
	err := s.db.WithContext(ctx).
		Select("audit_items.*").
		Joins("JOIN audits ON audits.id = audit_items.audit_id").
		Preload("Audit").
		Preload("Audit.Property").
		Where("audit_items.score IS NOT NULL AND audit_items.score < ?", threshold).
		Order("audit_items.score ASC").
		Order("audits.created_at DESC").
		Order("audit_items.id ASC").
		Find(&items).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get low score items")
	}

	return items, nil
}

func (s *AuditItemService) GetItemsByCategoryPerformance(ctx context.Context) ([]models.ItemPerformance, error) {
	var rows []models.ItemPerformance
	err := s.db.WithContext(ctx).
		Model(&models.AuditItem{}).
		Select(`section,
			item_name,
			AVG(score) AS avg_score,
			COUNT(*) AS total_assessments,
			COUNT(CASE WHEN score >= ? THEN 1 END) AS high_scores`, models.GreenZoneThreshold).
		Where("score IS NOT NULL").
		Group("section, item_name").
		Order("section ASC").
		Order("avg_score DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get item performance")
	}

	for i := range rows {
		rows[i].AvgScore = pkg.RoundScorePtr(rows[i].AvgScore)
	}

	return rows, nil
}
