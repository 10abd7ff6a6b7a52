package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/safatanc/hotel-audit-core/internal/app/errors"
	"github.com/safatanc/hotel-audit-core/internal/app/models"
	"github.com/safatanc/hotel-audit-core/internal/infrastructures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPropertyService(t *testing.T) *PropertyService {
	service := NewPropertyService(setupTestDB(t), infrastructures.NewValidator())
	service.clock = fixedClock
	return service
}

func TestPropertyService_CreateProperty(t *testing.T) {
	service := newTestPropertyService(t)
	ctx := context.Background()

	property, err := service.CreateProperty(ctx, &models.PropertyCreateRequest{
		Name:     "Taj Palace, New Delhi",
		Location: "New Delhi",
		Region:   "North India",
	})
	require.NoError(t, err)
	assert.NotZero(t, property.ID)
	assert.Equal(t, models.ComplianceZoneGreen, property.Status)

	_, err = service.CreateProperty(ctx, &models.PropertyCreateRequest{Name: "No region"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, err.(*errors.AppError).StatusCode)
}

func TestPropertyService_GetProperty_NotFound(t *testing.T) {
	service := newTestPropertyService(t)

	_, err := service.GetProperty(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestPropertyService_UpdatePropertyStatus(t *testing.T) {
	service := newTestPropertyService(t)
	ctx := context.Background()
	property := createProperty(t, service.db, "Taj Gateway", "West India", nil, nil)

	tests := []struct {
		score int
		want  models.ComplianceZone
	}{
		{92, models.ComplianceZoneGreen},
		{75, models.ComplianceZoneAmber},
		{40, models.ComplianceZoneRed},
	}

	for _, tt := range tests {
		updated, err := service.UpdatePropertyStatus(ctx, property.ID, tt.score)
		require.NoError(t, err)
		assert.Equal(t, tt.want, updated.Status)
		require.NotNil(t, updated.LastAuditScore)
		assert.Equal(t, tt.score, *updated.LastAuditScore)
		require.NotNil(t, updated.NextAuditDate)
		assert.True(t, fixedNow.Add(AuditInterval).Equal(*updated.NextAuditDate))
	}

	_, err := service.UpdatePropertyStatus(ctx, 999, 80)
	assert.True(t, errors.IsNotFound(err))
}

func TestPropertyService_GetPropertiesNeedingAudit(t *testing.T) {
	service := newTestPropertyService(t)
	db := service.db

	longOverdue := daysAgo(30)
	overdue := daysAgo(2)
	today := fixedNow
	future := fixedNow.AddDate(0, 0, 10)

	createProperty(t, db, "Overdue", "North", nil, &overdue)
	createProperty(t, db, "Never Scheduled", "North", nil, nil)
	createProperty(t, db, "Due Today", "North", nil, &today)
	createProperty(t, db, "Long Overdue", "North", nil, &longOverdue)
	createProperty(t, db, "Future", "North", nil, &future)

	properties, err := service.GetPropertiesNeedingAudit(context.Background())
	require.NoError(t, err)

	names := make([]string, 0, len(properties))
	for _, p := range properties {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Never Scheduled", "Long Overdue", "Overdue"}, names)
}

func TestPropertyService_GetPropertiesByRegion(t *testing.T) {
	service := newTestPropertyService(t)
	db := service.db

	createProperty(t, db, "Unscored", "South India", nil, nil)
	createProperty(t, db, "Low", "South India", intPtr(65), nil)
	createProperty(t, db, "High", "South India", intPtr(92), nil)
	createProperty(t, db, "Elsewhere", "East India", intPtr(99), nil)

	properties, err := service.GetPropertiesByRegion(context.Background(), "South India")
	require.NoError(t, err)
	require.Len(t, properties, 3)
	assert.Equal(t, "High", properties[0].Name)
	assert.Equal(t, "Low", properties[1].Name)
	assert.Equal(t, "Unscored", properties[2].Name)
}

func TestPropertyService_GetPropertiesWithLatestAudit(t *testing.T) {
	service := newTestPropertyService(t)
	db := service.db

	auditor := createUser(t, db, "sarah.johnson", models.UserRoleAuditor)
	audited := createProperty(t, db, "Audited", "North", nil, nil)
	createProperty(t, db, "Fresh", "North", nil, nil)

	createAudit(t, db, auditFixture{PropertyID: audited.ID, Score: intPtr(70), Zone: zonePtr(models.ComplianceZoneAmber), CreatedAt: daysAgo(40)})
	createAudit(t, db, auditFixture{PropertyID: audited.ID, AuditorID: &auditor.ID, Score: intPtr(88), Zone: zonePtr(models.ComplianceZoneGreen), CreatedAt: daysAgo(5)})

	rows, err := service.GetPropertiesWithLatestAudit(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Audited", rows[0].Name)
	require.NotNil(t, rows[0].LatestScore)
	assert.Equal(t, 88, *rows[0].LatestScore)
	require.NotNil(t, rows[0].LastAuditorName)
	assert.Equal(t, auditor.Name, *rows[0].LastAuditorName)

	assert.Equal(t, "Fresh", rows[1].Name)
	assert.Nil(t, rows[1].LatestScore)
	assert.Nil(t, rows[1].LastAuditDate)
}

func TestPropertyService_GetPropertyPerformanceByRegion(t *testing.T) {
	service := newTestPropertyService(t)
	db := service.db

	createProperty(t, db, "A", "North", intPtr(80), nil)
	createProperty(t, db, "B", "North", intPtr(90), nil)
	createProperty(t, db, "C", "South", intPtr(60), nil)

	rows, err := service.GetPropertyPerformanceByRegion(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "North", rows[0].Region)
	assert.Equal(t, int64(2), rows[0].TotalProperties)
	require.NotNil(t, rows[0].AvgScore)
	assert.Equal(t, 85.0, *rows[0].AvgScore)
	assert.Equal(t, int64(2), rows[0].GreenProperties)
}
