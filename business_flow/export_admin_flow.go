// Package businessflow contains the core business logic and use cases for approval workflows
package businessflow

import (
	"bytes"
	"context"
	"fmt"

	"github.com/scoutdesk/scoutdesk/models"
	"github.com/scoutdesk/scoutdesk/repository"
	"github.com/scoutdesk/scoutdesk/utils"
	"github.com/xuri/excelize/v2"
)

// AdminExportFlow produces the xlsx export of approved reports
type AdminExportFlow interface {
	ExportApprovedReports(ctx context.Context) ([]byte, string, error)
}

// AdminExportFlowImpl implements the admin export business flow
type AdminExportFlowImpl struct {
	reportRepo repository.ReportRepository
}

// NewAdminExportFlow creates a new admin export flow instance
func NewAdminExportFlow(reportRepo repository.ReportRepository) AdminExportFlow {
	return &AdminExportFlowImpl{reportRepo: reportRepo}
}

var exportHeader = []string{"Report ID", "Player ID", "Player Name", "Rating", "Video URL", "Text", "Approved At", "Created At"}

// ExportApprovedReports renders every approved report into a spreadsheet
// and returns the file bytes plus a suggested filename.
func (s *AdminExportFlowImpl) ExportApprovedReports(ctx context.Context) ([]byte, string, error) {
	approved := models.ApprovalStatusApproved
	rows, err := s.reportRepo.ByFilter(ctx, models.ReportFilter{ApprovalStatus: &approved}, "id ASC", 0, 0)
	if err != nil {
		return nil, "", NewBusinessError("EXPORT_REPORTS_FAILED", "Failed to list approved reports", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Approved Reports"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", NewBusinessError("EXPORT_REPORTS_FAILED", "Failed to create sheet", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, "", NewBusinessError("EXPORT_REPORTS_FAILED", "Failed to drop default sheet", err)
	}

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, "", NewBusinessError("EXPORT_REPORTS_FAILED", "Failed to write header", err)
		}
	}

	for i, report := range rows {
		playerName := ""
		if report.Player != nil {
			playerName = report.Player.PlayerName
		}
		rating := ""
		if report.Rating != nil {
			rating = fmt.Sprintf("%d", *report.Rating)
		}
		videoURL := ""
		if report.VideoURL != nil {
			videoURL = *report.VideoURL
		}
		approvedAt := ""
		if report.ApprovalDate != nil {
			approvedAt = report.ApprovalDate.Format("2006-01-02 15:04:05")
		}

		values := []any{
			report.ID,
			report.PlayerID,
			playerName,
			rating,
			videoURL,
			report.Text,
			approvedAt,
			report.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", NewBusinessError("EXPORT_REPORTS_FAILED", "Failed to write row", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", NewBusinessError("EXPORT_REPORTS_FAILED", "Failed to render spreadsheet", err)
	}

	filename := fmt.Sprintf("approved-reports-%s.xlsx", utils.UTCNowFormat("2006-01-02"))
	return buf.Bytes(), filename, nil
}
