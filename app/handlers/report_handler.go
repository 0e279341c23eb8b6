// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/scoutdesk/scoutdesk/app/dto"
	businessflow "github.com/scoutdesk/scoutdesk/business_flow"
)

// ReportHandlerInterface defines the contract for report handlers
type ReportHandlerInterface interface {
	Create(c fiber.Ctx) error
	Get(c fiber.Ctx) error
	List(c fiber.Ctx) error
}

// ReportHandler handles scouting report HTTP requests
type ReportHandler struct {
	flow      businessflow.ReportFlow
	validator *validator.Validate
}

// NewReportHandler creates a new report handler
func NewReportHandler(flow businessflow.ReportFlow) *ReportHandler {
	return &ReportHandler{
		flow:      flow,
		validator: validator.New(),
	}
}

func (h *ReportHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: &dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *ReportHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Create Report
// @Description Submit a new scouting report for an existing player. Scout submissions enter the review queue as pending; admin submissions are approved immediately.
// @Tags Reports
// @Accept json
// @Produce json
// @Param request body dto.CreateReportRequest true "Report data"
// @Success 201 {object} dto.APIResponse{data=dto.CreateReportResponse} "Report created successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 401 {object} dto.APIResponse "Unauthorized - scout not found or inactive"
// @Failure 404 {object} dto.APIResponse "Player not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/reports [post]
func (h *ReportHandler) Create(c fiber.Ctx) error {
	var req dto.CreateReportRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		var details []string
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fieldError := range validationErrors {
				details = append(details, getValidationErrorMessage(fieldError))
			}
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", details)
	}

	actor, ok := actorFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authenticated identity not found in context", "MISSING_IDENTITY", nil)
	}

	result, err := h.flow.CreateReport(createRequestContext(c, "/api/v1/reports"), &req, actor)
	if err != nil {
		if businessflow.IsScoutNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Scout not found", "SCOUT_NOT_FOUND", nil)
		}
		if businessflow.IsScoutInactive(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Scout account is inactive", "SCOUT_INACTIVE", nil)
		}
		if businessflow.IsAdminNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Admin not found", "ADMIN_NOT_FOUND", nil)
		}
		if businessflow.IsPlayerNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Player not found", "PLAYER_NOT_FOUND", nil)
		}
		if businessflow.IsReportTextRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Report text is required", "REPORT_TEXT_REQUIRED", nil)
		}
		if businessflow.IsRatingOutOfRange(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Rating must be between 1 and 10", "RATING_OUT_OF_RANGE", nil)
		}
		if businessflow.IsAllocationFailed(err) {
			return h.ErrorResponse(c, fiber.StatusServiceUnavailable, "Identifier allocation failed, please retry", "ALLOCATION_FAILED", nil)
		}
		if be, ok := err.(*businessflow.BusinessError); ok {
			return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create report", be.Code, nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create report", "CREATE_REPORT_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Report created successfully", result)
}

// Get Report
// @Description Retrieve a single report by its identifier
// @Tags Reports
// @Accept json
// @Produce json
// @Param id path string true "Report identifier (REP-2025-00001)"
// @Success 200 {object} dto.APIResponse{data=dto.ReportDTO} "Report retrieved successfully"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Report not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/reports/{id} [get]
func (h *ReportHandler) Get(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Report identifier is required", "MISSING_REPORT_ID", nil)
	}

	result, err := h.flow.GetReport(createRequestContext(c, "/api/v1/reports/:id"), id)
	if err != nil {
		if businessflow.IsReportNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Report not found", "REPORT_NOT_FOUND", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to get report", "GET_REPORT_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Report retrieved successfully", result)
}

// List Reports
// @Description List the authenticated scout's own reports, newest first
// @Tags Reports
// @Accept json
// @Produce json
// @Param status query string false "Approval status filter (pending, approved, rejected)"
// @Param page query integer false "Page number (default: 1)"
// @Param page_size query integer false "Items per page (default: 20, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.ListReportsResponse} "Reports retrieved successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/reports [get]
func (h *ReportHandler) List(c fiber.Ctx) error {
	scoutID, ok := c.Locals("scout_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Scout ID not found in context", "MISSING_SCOUT_ID", nil)
	}

	filter := dto.ListEntitiesFilter{
		Status:   queryStr(c, "status"),
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "page_size"),
	}

	result, err := h.flow.ListReports(createRequestContext(c, "/api/v1/reports"), scoutID, filter)
	if err != nil {
		if businessflow.IsInvalidPage(err) || businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid pagination parameters", "INVALID_PAGINATION", err.Error())
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list reports", "LIST_REPORTS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Reports retrieved successfully", result)
}
