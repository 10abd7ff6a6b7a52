package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/safatanc/hotel-audit-core/internal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportService_ExportRiskAssessment(t *testing.T) {
	reportService := newTestReportService(t)
	db := reportService.db

	red := createProperty(t, db, "Taj Bengal", "East", nil, nil)
	createAudit(t, db, auditFixture{PropertyID: red.ID, Score: intPtr(40), Zone: zonePtr(models.ComplianceZoneRed), CreatedAt: daysAgo(3)})
	createProperty(t, db, "Taj Coromandel", "South", nil, nil)

	data, err := NewExportService(reportService).ExportRiskAssessment(context.Background())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	assert.Equal(t, []string{riskSheet}, f.GetSheetList())

	rows, err := f.GetRows(riskSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, riskHeadings, rows[0])
	assert.Equal(t, []string{"Taj Bengal", "Taj Bengal City", "40", "red", "2025-06-12", "3", "HIGH"}, rows[1])
	assert.Equal(t, "Taj Coromandel", rows[2][0])
	assert.Equal(t, "LOW", rows[2][len(rows[2])-1])
}

func TestExportService_ExportRiskAssessment_EmptyWorkbook(t *testing.T) {
	data, err := NewExportService(newTestReportService(t)).ExportRiskAssessment(context.Background())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	rows, err := f.GetRows(riskSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, riskHeadings, rows[0])
}
