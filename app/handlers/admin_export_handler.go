// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"github.com/gofiber/fiber/v3"
	"github.com/scoutdesk/scoutdesk/app/dto"
	businessflow "github.com/scoutdesk/scoutdesk/business_flow"
)

// AdminExportHandlerInterface defines the contract for admin export handlers
type AdminExportHandlerInterface interface {
	ExportReports(c fiber.Ctx) error
}

// AdminExportHandler handles admin export HTTP requests
type AdminExportHandler struct {
	flow businessflow.AdminExportFlow
}

// NewAdminExportHandler creates a new admin export handler
func NewAdminExportHandler(flow businessflow.AdminExportFlow) *AdminExportHandler {
	return &AdminExportHandler{flow: flow}
}

func (h *AdminExportHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: &dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

// ExportReports
// @Description Download all approved reports as an xlsx spreadsheet
// @Tags Admin Export
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary "Spreadsheet with approved reports"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/reports/export [get]
func (h *AdminExportHandler) ExportReports(c fiber.Ctx) error {
	if _, ok := c.Locals("admin_id").(uint); !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Admin ID not found in context", "MISSING_ADMIN_ID", nil)
	}

	data, filename, err := h.flow.ExportApprovedReports(createRequestContext(c, "/api/v1/admin/reports/export"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to export reports", "EXPORT_REPORTS_FAILED", nil)
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
