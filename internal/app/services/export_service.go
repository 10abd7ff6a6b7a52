package services

import (
	"bytes"
	"context"

	"github.com/safatanc/hotel-audit-core/internal/app/errors"
	"github.com/safatanc/hotel-audit-core/internal/app/models"
	"github.com/xuri/excelize/v2"
)

const (
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	riskSheet       = "Risk Assessment"
)

var riskHeadings = []string{"Property", "Location", "Overall Score", "Compliance Zone", "Last Audit", "Days Since Audit", "Risk Level"}

type ExportService struct {
	reportService *ReportService
}

func NewExportService(reportService *ReportService) *ExportService {
	return &ExportService{
		reportService: reportService,
	}
}

// ExportRiskAssessment renders the risk assessment as an XLSX workbook
func (s *ExportService) ExportRiskAssessment(ctx context.Context) ([]byte, error) {
	rows, err := s.reportService.GetRiskAssessment(ctx)
	if err != nil {
		return nil, err
	}

	values := make([][]any, 0, len(rows))
	for _, row := range rows {
		values = append(values, riskCellValues(row))
	}

	data, err := writeSheet(riskSheet, riskHeadings, values)
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to export risk assessment")
	}

	return data, nil
}

func riskCellValues(row models.RiskAssessment) []any {
	values := []any{row.Name, row.Location, "", "", "", "", string(row.RiskLevel)}
	if row.OverallScore != nil {
		values[2] = *row.OverallScore
	}
	if row.ComplianceZone != nil {
		values[3] = string(*row.ComplianceZone)
	}
	if row.LastAuditDate != nil {
		values[4] = row.LastAuditDate.Format("2006-01-02")
	}
	if row.DaysSinceAudit != nil {
		values[5] = *row.DaysSinceAudit
	}
	return values
}

// writeSheet builds a single-sheet workbook with a header row
func writeSheet(sheet string, headings []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	for col, heading := range headings {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, heading); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
