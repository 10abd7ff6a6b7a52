package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/safatanc/hotel-audit-core/internal/app/models"
	"github.com/safatanc/hotel-audit-core/internal/infrastructures"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := infrastructures.OpenDatabase("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, infrastructures.AutoMigrate(db))
	return db
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func zonePtr(z models.ComplianceZone) *models.ComplianceZone { return &z }

func createUser(t *testing.T, db *gorm.DB, username string, role models.UserRole) *models.User {
	t.Helper()
	hashed, err := HashPassword("secret123")
	require.NoError(t, err)
	user := &models.User{
		Username: username,
		Password: hashed,
		Role:     role,
		Name:     strings.ToUpper(username[:1]) + username[1:],
		Email:    username + "@hotel-audit.com",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createProperty(t *testing.T, db *gorm.DB, name, region string, score *int, nextAudit *time.Time) *models.Property {
	t.Helper()
	property := &models.Property{
		Name:           name,
		Location:       name + " City",
		Region:         region,
		Status:         models.ComplianceZoneGreen,
		LastAuditScore: score,
		NextAuditDate:  nextAudit,
	}
	require.NoError(t, db.Create(property).Error)
	return property
}

type auditFixture struct {
	PropertyID uint
	AuditorID  *uint
	Status     models.AuditStatus
	Score      *int
	Zone       *models.ComplianceZone
	CreatedAt  time.Time
}

func createAudit(t *testing.T, db *gorm.DB, f auditFixture) *models.Audit {
	t.Helper()
	if f.Status == "" {
		f.Status = models.AuditStatusCompleted
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = fixedNow
	}
	audit := &models.Audit{
		PropertyID:     f.PropertyID,
		AuditorID:      f.AuditorID,
		Status:         f.Status,
		OverallScore:   f.Score,
		ComplianceZone: f.Zone,
		CreatedAt:      f.CreatedAt,
	}
	require.NoError(t, db.Create(audit).Error)
	return audit
}

func createItem(t *testing.T, db *gorm.DB, auditID uint, section, name string, score *float64) *models.AuditItem {
	t.Helper()
	item := &models.AuditItem{
		AuditID:  auditID,
		Section:  section,
		ItemName: name,
		Score:    score,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func daysAgo(days int) time.Time {
	return fixedNow.AddDate(0, 0, -days)
}
