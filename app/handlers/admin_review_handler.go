// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/scoutdesk/scoutdesk/app/dto"
	"github.com/scoutdesk/scoutdesk/app/middleware"
	businessflow "github.com/scoutdesk/scoutdesk/business_flow"
	"github.com/scoutdesk/scoutdesk/models"
)

// AdminReviewHandlerInterface defines the contract for admin review handlers
type AdminReviewHandlerInterface interface {
	ApprovePlayer(c fiber.Ctx) error
	RejectPlayer(c fiber.Ctx) error
	ApproveReport(c fiber.Ctx) error
	RejectReport(c fiber.Ctx) error
	ReviewQueue(c fiber.Ctx) error
	Stats(c fiber.Ctx) error
}

// AdminReviewHandler handles admin review HTTP requests
type AdminReviewHandler struct {
	flow      businessflow.AdminReviewFlow
	validator *validator.Validate
}

// NewAdminReviewHandler creates a new admin review handler
func NewAdminReviewHandler(flow businessflow.AdminReviewFlow) *AdminReviewHandler {
	return &AdminReviewHandler{
		flow:      flow,
		validator: validator.New(),
	}
}

func (h *AdminReviewHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: &dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *AdminReviewHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// approve drives the shared approve path for both entity types
func (h *AdminReviewHandler) approve(c fiber.Ctx, entityType models.EntityType, endpoint string) error {
	adminID, ok := c.Locals("admin_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Admin ID not found in context", "MISSING_ADMIN_ID", nil)
	}

	entityID := c.Params("id")
	if entityID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Entity identifier is required", "MISSING_ENTITY_ID", nil)
	}

	result, err := h.flow.ApproveEntity(createRequestContext(c, endpoint), entityType, entityID, adminID)
	if err != nil {
		return h.decisionError(c, err, "approve")
	}

	middleware.RecordWorkflowDecision(entityType.String(), "approved")
	return h.SuccessResponse(c, fiber.StatusOK, "Entity approved successfully", result)
}

// reject drives the shared reject path for both entity types
func (h *AdminReviewHandler) reject(c fiber.Ctx, entityType models.EntityType, endpoint string) error {
	adminID, ok := c.Locals("admin_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Admin ID not found in context", "MISSING_ADMIN_ID", nil)
	}

	entityID := c.Params("id")
	if entityID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Entity identifier is required", "MISSING_ENTITY_ID", nil)
	}

	var req dto.RejectEntityRequest
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

	result, err := h.flow.RejectEntity(createRequestContext(c, endpoint), entityType, entityID, adminID, req.Reason)
	if err != nil {
		return h.decisionError(c, err, "reject")
	}

	middleware.RecordWorkflowDecision(entityType.String(), "rejected")
	return h.SuccessResponse(c, fiber.StatusOK, "Entity rejected successfully", result)
}

func (h *AdminReviewHandler) decisionError(c fiber.Ctx, err error, action string) error {
	if businessflow.IsAdminNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Admin not found", "ADMIN_NOT_FOUND", nil)
	}
	if businessflow.IsPlayerNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Player not found", "PLAYER_NOT_FOUND", nil)
	}
	if businessflow.IsReportNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Report not found", "REPORT_NOT_FOUND", nil)
	}
	if businessflow.IsEntityNotPending(err) {
		return h.ErrorResponse(c, fiber.StatusConflict, "Entity is not pending review", "ENTITY_NOT_PENDING", nil)
	}
	if businessflow.IsInvalidEntityType(err) {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid entity type", "INVALID_ENTITY_TYPE", nil)
	}
	if be, ok := err.(*businessflow.BusinessError); ok {
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to "+action+" entity", be.Code, nil)
	}
	return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to "+action+" entity", "REVIEW_DECISION_FAILED", nil)
}

// ApprovePlayer
// @Description Approve a pending player submission
// @Tags Admin Review
// @Accept json
// @Produce json
// @Param id path string true "Player identifier (PLY-00001)"
// @Success 200 {object} dto.APIResponse{data=dto.ReviewDecisionResponse} "Entity approved successfully"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Player not found"
// @Failure 409 {object} dto.APIResponse "Player is not pending review"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/players/{id}/approve [post]
func (h *AdminReviewHandler) ApprovePlayer(c fiber.Ctx) error {
	return h.approve(c, models.EntityTypePlayer, "/api/v1/admin/players/:id/approve")
}

// RejectPlayer
// @Description Reject a pending player submission with an optional reason. The submitting scout is notified.
// @Tags Admin Review
// @Accept json
// @Produce json
// @Param id path string true "Player identifier (PLY-00001)"
// @Param request body dto.RejectEntityRequest false "Rejection reason"
// @Success 200 {object} dto.APIResponse{data=dto.ReviewDecisionResponse} "Entity rejected successfully"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Player not found"
// @Failure 409 {object} dto.APIResponse "Player is not pending review"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/players/{id}/reject [post]
func (h *AdminReviewHandler) RejectPlayer(c fiber.Ctx) error {
	return h.reject(c, models.EntityTypePlayer, "/api/v1/admin/players/:id/reject")
}

// ApproveReport
// @Description Approve a pending report submission
// @Tags Admin Review
// @Accept json
// @Produce json
// @Param id path string true "Report identifier (REP-2025-00001)"
// @Success 200 {object} dto.APIResponse{data=dto.ReviewDecisionResponse} "Entity approved successfully"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Report not found"
// @Failure 409 {object} dto.APIResponse "Report is not pending review"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/reports/{id}/approve [post]
func (h *AdminReviewHandler) ApproveReport(c fiber.Ctx) error {
	return h.approve(c, models.EntityTypeReport, "/api/v1/admin/reports/:id/approve")
}

// RejectReport
// @Description Reject a pending report submission with an optional reason. The submitting scout is notified.
// @Tags Admin Review
// @Accept json
// @Produce json
// @Param id path string true "Report identifier (REP-2025-00001)"
// @Param request body dto.RejectEntityRequest false "Rejection reason"
// @Success 200 {object} dto.APIResponse{data=dto.ReviewDecisionResponse} "Entity rejected successfully"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Report not found"
// @Failure 409 {object} dto.APIResponse "Report is not pending review"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/reports/{id}/reject [post]
func (h *AdminReviewHandler) RejectReport(c fiber.Ctx) error {
	return h.reject(c, models.EntityTypeReport, "/api/v1/admin/reports/:id/reject")
}

// ReviewQueue
// @Description List all pending players and reports, oldest first
// @Tags Admin Review
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ReviewQueueResponse} "Review queue retrieved successfully"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/review-queue [get]
func (h *AdminReviewHandler) ReviewQueue(c fiber.Ctx) error {
	if _, ok := c.Locals("admin_id").(uint); !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Admin ID not found in context", "MISSING_ADMIN_ID", nil)
	}

	result, err := h.flow.ReviewQueue(createRequestContext(c, "/api/v1/admin/review-queue"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to get review queue", "REVIEW_QUEUE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Review queue retrieved successfully", result)
}

// Stats
// @Description Per-status entity counts for the admin dashboard. Served from a short-lived Redis cache when available.
// @Tags Admin Review
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.DashboardStatsResponse} "Dashboard stats retrieved successfully"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/stats [get]
func (h *AdminReviewHandler) Stats(c fiber.Ctx) error {
	if _, ok := c.Locals("admin_id").(uint); !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Admin ID not found in context", "MISSING_ADMIN_ID", nil)
	}

	result, err := h.flow.DashboardStats(createRequestContext(c, "/api/v1/admin/stats"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to get dashboard stats", "DASHBOARD_STATS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Dashboard stats retrieved successfully", result)
}
