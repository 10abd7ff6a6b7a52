package services

import (
	"context"
	"time"

	"github.com/safatanc/hotel-audit-core/internal/app/errors"
	"github.com/safatanc/hotel-audit-core/internal/app/models"
	"github.com/safatanc/hotel-audit-core/internal/app/pkg"
	"github.com/safatanc/hotel-audit-core/internal/infrastructures"
	"gorm.io/gorm"
)

// AuditInterval is how far ahead the next audit is scheduled
const AuditInterval = 90 * 24 * time.Hour

type PropertyService struct {
	db        *gorm.DB
	validator *infrastructures.Validator
	clock     func() time.Time
}

func NewPropertyService(db *gorm.DB, validator *infrastructures.Validator) *PropertyService {
	return &PropertyService{
		db:        db,
		validator: validator,
		clock:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *PropertyService) CreateProperty(ctx context.Context, req *models.PropertyCreateRequest) (*models.Property, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	property := &models.Property{
		Name:     req.Name,
		Location: req.Location,
		Region:   req.Region,
		Image:    req.Image,
		Status:   models.ComplianceZoneGreen,
	}
	if req.Status != nil {
		property.Status = *req.Status
	}

	if err := s.db.WithContext(ctx).Create(property).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create property")
	}

	return property, nil
}

func (s *PropertyService) GetProperty(ctx context.Context, id uint) (*models.Property, error) {
	var property models.Property
	err := s.db.WithContext(ctx).First(&property, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Property not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get property")
	}

	return &property, nil
}

func (s *PropertyService) GetAllProperties(ctx context.Context) ([]models.Property, error) {
	var properties []models.Property
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&properties).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get properties")
	}

	return properties, nil
}

// GetPropertiesWithLatestAudit joins every property with its latest audit,
// the one with the highest id, and that audit's auditor.
func (s *PropertyService) GetPropertiesWithLatestAudit(ctx context.Context) ([]models.PropertyWithLatestAudit, error) {
	var rows []models.PropertyWithLatestAudit
	err := s.db.WithContext(ctx).
		Table("properties AS p").
		Select(`p.*,
			a.overall_score AS latest_score,
			a.compliance_zone AS latest_compliance,
			a.created_at AS last_audit_date,
			u.name AS last_auditor_name`).
		Joins("LEFT JOIN audits a ON a.id = (SELECT MAX(a2.id) FROM audits a2 WHERE a2.property_id = p.id)").
		Joins("LEFT JOIN users u ON u.id = a.auditor_id").
		Order("p.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get properties with latest audit")
	}

	return rows, nil
}

func (s *PropertyService) GetPropertiesByRegion(ctx context.Context, region string) ([]models.Property, error) {
	var properties []models.Property
	err := s.db.WithContext(ctx).
		Where("region = ?", region).
		Order("CASE WHEN last_audit_score IS NULL THEN 1 ELSE 0 END, last_audit_score DESC").
		Find(&properties).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get properties by region")
	}

	return properties, nil
}

// GetPropertiesNeedingAudit returns properties that were never scheduled or
// whose next audit date is before today, never-scheduled first.
func (s *PropertyService) GetPropertiesNeedingAudit(ctx context.Context) ([]models.Property, error) {
	today := pkg.StartOfDay(s.clock())

	var properties []models.Property
	err := s.db.WithContext(ctx).
		Where("next_audit_date IS NULL OR next_audit_date < ?", today).
		Order("CASE WHEN next_audit_date IS NULL THEN 0 ELSE 1 END, next_audit_date ASC").
		Find(&properties).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get properties needing audit")
	}

	return properties, nil
}

// UpdatePropertyStatus stores the latest score, derives the status from it
// and schedules the next audit.
func (s *PropertyService) UpdatePropertyStatus(ctx context.Context, id uint, score int) (*models.Property, error) {
	property, err := s.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	nextAudit := s.clock().Add(AuditInterval)
	updates := map[string]any{
		"status":           models.ZoneForScore(float64(score)),
		"last_audit_score": score,
		"next_audit_date":  nextAudit,
	}

	if err := s.db.WithContext(ctx).Model(property).Updates(updates).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to update property status")
	}

	return s.GetProperty(ctx, id)
}

func (s *PropertyService) GetPropertyPerformanceByRegion(ctx context.Context) ([]models.RegionPerformance, error) {
	var rows []models.RegionPerformance
	err := s.db.WithContext(ctx).
		Model(&models.Property{}).
		Select(`region,
			COUNT(*) AS total_properties,
			AVG(last_audit_score) AS avg_score,
			COUNT(CASE WHEN status = 'green' THEN 1 END) AS green_properties,
			COUNT(CASE WHEN status = 'amber' THEN 1 END) AS amber_properties,
			COUNT(CASE WHEN status = 'red' THEN 1 END) AS red_properties`).
		Group("region").
		Order("CASE WHEN AVG(last_audit_score) IS NULL THEN 1 ELSE 0 END, AVG(last_audit_score) DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get region performance")
	}

	for i := range rows {
		rows[i].AvgScore = pkg.RoundScorePtr(rows[i].AvgScore)
	}

	return rows, nil
}
