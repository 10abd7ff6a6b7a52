package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/safatanc/hotel-audit-core/internal/app/errors"
	"github.com/safatanc/hotel-audit-core/internal/app/models"
	"github.com/safatanc/hotel-audit-core/internal/app/pkg"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// latestAuditJoin joins each property row "p" to its highest-id audit as "la"
const latestAuditJoin = "LEFT JOIN audits la ON la.id = (SELECT MAX(a2.id) FROM audits a2 WHERE a2.property_id = p.id)"

// newestAuditJoin joins each property row "p" to its most recently created
// audit as "na", so na.created_at is MAX(created_at) of the property
const newestAuditJoin = "LEFT JOIN audits na ON na.id = (SELECT a3.id FROM audits a3 WHERE a3.property_id = p.id ORDER BY a3.created_at DESC, a3.id DESC LIMIT 1)"

type ReportService struct {
	db    *gorm.DB
	clock func() time.Time
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{
		db:    db,
		clock: func() time.Time { return time.Now().UTC() },
	}
}

// GetComplianceDashboard counts all properties and summarizes completed
// audits by zone.
func (s *ReportService) GetComplianceDashboard(ctx context.Context) (*models.ComplianceDashboard, error) {
	db := s.db.WithContext(ctx)

	var dashboard models.ComplianceDashboard
	if err := db.Model(&models.Property{}).Count(&dashboard.TotalProperties).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count properties")
	}

	var row struct {
		TotalAudits     int64
		AvgOverallScore *float64
		GreenAudits     int64
		AmberAudits     int64
		RedAudits       int64
	}
	err := db.Model(&models.Audit{}).
		Select(`COUNT(*) AS total_audits,
			AVG(overall_score) AS avg_overall_score,
			COUNT(CASE WHEN compliance_zone = 'green' THEN 1 END) AS green_audits,
			COUNT(CASE WHEN compliance_zone = 'amber' THEN 1 END) AS amber_audits,
			COUNT(CASE WHEN compliance_zone = 'red' THEN 1 END) AS red_audits`).
		Where("status = ?", models.AuditStatusCompleted).
		Scan(&row).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get compliance dashboard")
	}

	dashboard.TotalAudits = row.TotalAudits
	dashboard.GreenAudits = row.GreenAudits
	dashboard.AmberAudits = row.AmberAudits
	dashboard.RedAudits = row.RedAudits
	if row.AvgOverallScore != nil {
		dashboard.AvgOverallScore = pkg.RoundScore(*row.AvgOverallScore)
	}

	return &dashboard, nil
}

func (s *ReportService) GetPropertyComplianceTrend(ctx context.Context) ([]models.PropertyComplianceTrend, error) {
	db := s.db.WithContext(ctx)
	dialect := dialectOf(db)

	var rows []models.PropertyComplianceTrend
	err := db.Table("properties AS p").
		Select(fmt.Sprintf(`p.id AS property_id,
			p.name,
			p.location,
			COUNT(a.id) AS total_audits,
			AVG(a.overall_score) AS avg_score,
			na.created_at AS last_audit_date,
			%s AS compliance_zones`, dialect.distinctList("a.compliance_zone"))).
		Joins("LEFT JOIN audits a ON a.property_id = p.id").
		Joins(newestAuditJoin).
		Group("p.id, p.name, p.location, na.created_at").
		Order("CASE WHEN AVG(a.overall_score) IS NULL THEN 1 ELSE 0 END, AVG(a.overall_score) DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get property compliance trend")
	}

	for i := range rows {
		rows[i].AvgScore = pkg.RoundScorePtr(rows[i].AvgScore)
	}

	return rows, nil
}

func (s *ReportService) GetAuditorPerformance(ctx context.Context) ([]models.AuditorPerformance, error) {
	db := s.db.WithContext(ctx)
	dialect := dialectOf(db)

	var rows []models.AuditorPerformance
	err := db.Table("users AS u").
		Select(fmt.Sprintf(`u.id AS auditor_id,
			u.name AS auditor_name,
			COUNT(a.id) AS total_audits,
			AVG(a.overall_score) AS avg_score_given,
			AVG(%s) AS avg_completion_days,
			COUNT(CASE WHEN a.status = ? THEN 1 END) AS completed_audits`, dialect.daysBetween("a.created_at", "a.submitted_at")),
			models.AuditStatusCompleted).
		Joins("LEFT JOIN audits a ON a.auditor_id = u.id").
		Where("u.role = ?", models.UserRoleAuditor).
		Group("u.id, u.name").
		Order("total_audits DESC").
		Order("u.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get auditor performance")
	}

	for i := range rows {
		rows[i].AvgScoreGiven = pkg.RoundScorePtr(rows[i].AvgScoreGiven)
		rows[i].AvgCompletionDays = pkg.RoundScorePtr(rows[i].AvgCompletionDays)
	}

	return rows, nil
}

// GetCategoryPerformance summarizes scored items per section. The spread is
// the sample standard deviation, derived from the sum of squares so the
// same query runs on engines without STDDEV.
func (s *ReportService) GetCategoryPerformance(ctx context.Context) ([]models.CategoryPerformance, error) {
	var rows []struct {
		Section    string
		TotalItems int64
		AvgScore   *float64
		MinScore   *float64
		MaxScore   *float64
		SumScore   float64
		SumSquares float64
	}
	err := s.db.WithContext(ctx).
		Model(&models.AuditItem{}).
		Select(`section,
			COUNT(*) AS total_items,
			AVG(score) AS avg_score,
			MIN(score) AS min_score,
			MAX(score) AS max_score,
			SUM(score) AS sum_score,
			SUM(score * score) AS sum_squares`).
		Where("score IS NOT NULL").
		Group("section").
		Order("avg_score DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get category performance")
	}

	result := make([]models.CategoryPerformance, 0, len(rows))
	for _, row := range rows {
		result = append(result, models.CategoryPerformance{
			Section:       row.Section,
			TotalItems:    row.TotalItems,
			AvgScore:      pkg.RoundScorePtr(row.AvgScore),
			MinScore:      row.MinScore,
			MaxScore:      row.MaxScore,
			ScoreVariance: sampleStdDev(row.TotalItems, row.SumScore, row.SumSquares),
		})
	}

	return result, nil
}

func sampleStdDev(n int64, sum, sumSquares float64) *float64 {
	if n < 2 {
		return nil
	}
	count := float64(n)
	variance := (sumSquares - sum*sum/count) / (count - 1)
	if variance < 0 {
		variance = 0
	}
	stddev := pkg.RoundScore(math.Sqrt(variance))
	return &stddev
}

// GetPropertiesRequiringAttention lists properties whose latest audit is in
// the red zone or scored below the amber threshold.
func (s *ReportService) GetPropertiesRequiringAttention(ctx context.Context) ([]models.PropertyAttention, error) {
	var rows []models.PropertyAttention
	err := s.db.WithContext(ctx).
		Table("properties AS p").
		Select(`p.id AS property_id,
			p.name,
			p.location,
			p.status,
			la.overall_score,
			la.compliance_zone,
			la.created_at AS last_audit_date`).
		Joins(latestAuditJoin).
		Where("la.id IS NOT NULL").
		Where("la.compliance_zone = ? OR la.overall_score < ?", models.ComplianceZoneRed, models.AmberZoneThreshold).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get properties requiring attention")
	}

	now := s.clock()
	for i := range rows {
		rows[i].DaysSinceAudit = pkg.DaysBetween(rows[i].LastAuditDate, now)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		si, sj := scoreOrMax(rows[i].OverallScore), scoreOrMax(rows[j].OverallScore)
		if si != sj {
			return si < sj
		}
		return rows[i].DaysSinceAudit > rows[j].DaysSinceAudit
	})

	return rows, nil
}

func scoreOrMax(score *int) int {
	if score == nil {
		return math.MaxInt
	}
	return *score
}

// GetAIScoreAccuracy compares model suggestions with the scores auditors
// finally gave, largest disagreement first.
func (s *ReportService) GetAIScoreAccuracy(ctx context.Context) ([]models.AIScoreAccuracy, error) {
	var rows []struct {
		ItemID           uint
		Section          string
		ItemName         string
		AISuggestedScore float64 `gorm:"column:ai_suggested_score"`
		ActualScore      float64
		ScoreDifference  float64
		AIAnalysis       datatypes.JSON `gorm:"column:ai_analysis"`
	}
	err := s.db.WithContext(ctx).
		Model(&models.AuditItem{}).
		Select(`id AS item_id,
			section,
			item_name,
			ai_suggested_score,
			score AS actual_score,
			ABS(ai_suggested_score - score) AS score_difference,
			ai_analysis`).
		Where("ai_suggested_score IS NOT NULL AND score IS NOT NULL").
		Order("score_difference DESC").
		Order("id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get AI score accuracy")
	}

	result := make([]models.AIScoreAccuracy, 0, len(rows))
	for _, row := range rows {
		result = append(result, models.AIScoreAccuracy{
			ItemID:           row.ItemID,
			Section:          row.Section,
			ItemName:         row.ItemName,
			AISuggestedScore: row.AISuggestedScore,
			ActualScore:      row.ActualScore,
			ScoreDifference:  pkg.RoundScore(row.ScoreDifference),
			AIConfidence:     analysisConfidence(row.AIAnalysis),
		})
	}

	return result, nil
}

// analysisConfidence reads the confidence a stored photo analysis carried
func analysisConfidence(analysis datatypes.JSON) *float64 {
	if !models.HasJSON(analysis) {
		return nil
	}
	var payload struct {
		ConfidenceScore *float64 `json:"confidence_score"`
		Confidence      *float64 `json:"confidence"`
	}
	if err := json.Unmarshal(analysis, &payload); err != nil {
		return nil
	}
	if payload.ConfidenceScore != nil {
		return payload.ConfidenceScore
	}
	return payload.Confidence
}

// GetSeasonalPerformance buckets audits of the last n years by quarter
func (s *ReportService) GetSeasonalPerformance(ctx context.Context, years int) ([]models.SeasonalPerformance, error) {
	if years <= 0 {
		years = 2
	}

	db := s.db.WithContext(ctx)
	dialect := dialectOf(db)
	year := dialect.year("created_at")
	quarter := dialect.quarter("created_at")
	since := s.clock().AddDate(0, 0, -years*365)

	var rows []models.SeasonalPerformance
	err := db.Model(&models.Audit{}).
		Select(fmt.Sprintf(`%s AS year,
			%s AS quarter,
			COUNT(*) AS total_audits,
			AVG(overall_score) AS avg_score,
			COUNT(CASE WHEN compliance_zone = 'green' THEN 1 END) * 100.0 / COUNT(*) AS green_percentage`, year, quarter)).
		Where("created_at >= ?", since).
		Group(fmt.Sprintf("%s, %s", year, quarter)).
		Order("year ASC").
		Order("quarter ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get seasonal performance")
	}

	for i := range rows {
		rows[i].AvgScore = pkg.RoundScorePtr(rows[i].AvgScore)
		rows[i].GreenPercentage = pkg.RoundScore(rows[i].GreenPercentage)
	}

	return rows, nil
}

// GetPropertyImprovementTracking pairs every scored audit with the previous
// scored audit of the same property, biggest improvement first.
func (s *ReportService) GetPropertyImprovementTracking(ctx context.Context) ([]models.PropertyImprovement, error) {
	const query = `
		SELECT p.id AS property_id,
			p.name,
			seq.created_at AS audit_date,
			seq.overall_score AS current_score,
			seq.previous_score,
			seq.overall_score - seq.previous_score AS score_improvement,
			seq.audit_sequence AS total_audits
		FROM properties p
		JOIN (
			SELECT property_id,
				overall_score,
				created_at,
				ROW_NUMBER() OVER (PARTITION BY property_id ORDER BY created_at, id) AS audit_sequence,
				LAG(overall_score) OVER (PARTITION BY property_id ORDER BY created_at, id) AS previous_score
			FROM audits
			WHERE overall_score IS NOT NULL
		) seq ON seq.property_id = p.id
		WHERE seq.previous_score IS NOT NULL
		ORDER BY score_improvement DESC, p.name ASC`

	var rows []models.PropertyImprovement
	if err := s.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get property improvement tracking")
	}

	return rows, nil
}

// GetRiskAssessment classifies every property by the zone of its latest
// audit and how long ago that audit was. Red comes first, then amber, then
// the rest; within a zone the stalest audit comes first and never-audited
// properties lead.
func (s *ReportService) GetRiskAssessment(ctx context.Context) ([]models.RiskAssessment, error) {
	var rows []models.RiskAssessment
	err := s.db.WithContext(ctx).
		Table("properties AS p").
		Select(`p.id AS property_id,
			p.name,
			p.location,
			la.overall_score,
			la.compliance_zone,
			la.created_at AS last_audit_date`).
		Joins(latestAuditJoin).
		Order("p.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get risk assessment")
	}

	now := s.clock()
	for i := range rows {
		var zone models.ComplianceZone
		if rows[i].ComplianceZone != nil {
			zone = *rows[i].ComplianceZone
		}
		if rows[i].LastAuditDate != nil {
			days := pkg.DaysBetween(*rows[i].LastAuditDate, now)
			rows[i].DaysSinceAudit = &days
		}
		rows[i].RiskLevel = models.ClassifyRisk(models.RiskInput{
			Zone:           zone,
			DaysSinceAudit: rows[i].DaysSinceAudit,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := zoneRank(rows[i].ComplianceZone), zoneRank(rows[j].ComplianceZone)
		if ri != rj {
			return ri < rj
		}
		return daysDesc(rows[i].DaysSinceAudit, rows[j].DaysSinceAudit)
	})

	return rows, nil
}

func zoneRank(zone *models.ComplianceZone) int {
	if zone == nil {
		return models.ComplianceZone("").Rank()
	}
	return zone.Rank()
}

// daysDesc orders unknown ages first, then larger ages
func daysDesc(a, b *int) bool {
	switch {
	case a == nil && b == nil:
		return false
	case a == nil:
		return true
	case b == nil:
		return false
	default:
		return *a > *b
	}
}
