// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/scoutdesk/scoutdesk/app/dto"
	businessflow "github.com/scoutdesk/scoutdesk/business_flow"
)

// AdminRequestHandlerInterface defines the contract for admin change request handlers
type AdminRequestHandlerInterface interface {
	List(c fiber.Ctx) error
	Approve(c fiber.Ctx) error
	Reject(c fiber.Ctx) error
}

// AdminRequestHandler handles admin change request HTTP requests
type AdminRequestHandler struct {
	flow      businessflow.AdminRequestFlow
	validator *validator.Validate
}

// NewAdminRequestHandler creates a new admin request handler
func NewAdminRequestHandler(flow businessflow.AdminRequestFlow) *AdminRequestHandler {
	return &AdminRequestHandler{
		flow:      flow,
		validator: validator.New(),
	}
}

func (h *AdminRequestHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: &dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *AdminRequestHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// List Change Requests
// @Description Admin lists change requests with optional filters, newest first
// @Tags Admin Requests
// @Accept json
// @Produce json
// @Param status query string false "Request status filter (pending, approved, rejected)"
// @Param entity_type query string false "Entity type filter (report, player)"
// @Param request_type query string false "Request type filter (edit, delete)"
// @Param page query integer false "Page number (default: 1)"
// @Param page_size query integer false "Items per page (default: 20, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.ListRequestsResponse} "Requests retrieved successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/requests [get]
func (h *AdminRequestHandler) List(c fiber.Ctx) error {
	if _, ok := c.Locals("admin_id").(uint); !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Admin ID not found in context", "MISSING_ADMIN_ID", nil)
	}

	filter := dto.AdminListRequestsFilter{
		Status:      queryStr(c, "status"),
		EntityType:  queryStr(c, "entity_type"),
		RequestType: queryStr(c, "request_type"),
		Page:        queryInt(c, "page"),
		PageSize:    queryInt(c, "page_size"),
	}

	result, err := h.flow.ListRequests(createRequestContext(c, "/api/v1/admin/requests"), filter)
	if err != nil {
		if businessflow.IsInvalidPage(err) || businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid pagination parameters", "INVALID_PAGINATION", err.Error())
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list requests", "ADMIN_LIST_REQUESTS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Requests retrieved successfully", result)
}

// Approve Change Request
// @Description Approve a pending change request. Edit approval reopens the entity to pending; delete approval notifies the scout then removes the entity.
// @Tags Admin Requests
// @Accept json
// @Produce json
// @Param id path integer true "Request ID"
// @Param request body dto.ResolveRequestRequest false "Optional admin response"
// @Success 200 {object} dto.APIResponse{data=dto.ResolveRequestResponse} "Request approved successfully"
// @Failure 400 {object} dto.APIResponse "Invalid request ID"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Request not found"
// @Failure 409 {object} dto.APIResponse "Request already resolved"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/requests/{id}/approve [post]
func (h *AdminRequestHandler) Approve(c fiber.Ctx) error {
	adminID, ok := c.Locals("admin_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Admin ID not found in context", "MISSING_ADMIN_ID", nil)
	}

	requestID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || requestID == 0 {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request ID", "INVALID_REQUEST_ID", nil)
	}

	var req dto.ResolveRequestRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&req); err != nil {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
		}
	}

	result, err := h.flow.ApproveRequest(createRequestContext(c, "/api/v1/admin/requests/:id/approve"), uint(requestID), adminID, req.AdminResponse)
	if err != nil {
		return h.resolveError(c, err, "approve")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Request approved successfully", result)
}

// Reject Change Request
// @Description Reject a pending change request. An admin response explaining the rejection is mandatory.
// @Tags Admin Requests
// @Accept json
// @Produce json
// @Param id path integer true "Request ID"
// @Param request body dto.ResolveRequestRequest true "Admin response (required)"
// @Success 200 {object} dto.APIResponse{data=dto.ResolveRequestResponse} "Request rejected successfully"
// @Failure 400 {object} dto.APIResponse "Invalid request ID or missing admin response"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Request not found"
// @Failure 409 {object} dto.APIResponse "Request already resolved"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/requests/{id}/reject [post]
func (h *AdminRequestHandler) Reject(c fiber.Ctx) error {
	adminID, ok := c.Locals("admin_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Admin ID not found in context", "MISSING_ADMIN_ID", nil)
	}

	requestID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || requestID == 0 {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request ID", "INVALID_REQUEST_ID", nil)
	}

	var req dto.ResolveRequestRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if req.AdminResponse == nil || *req.AdminResponse == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Admin response is required for rejection", "ADMIN_RESPONSE_REQUIRED", nil)
	}

	result, err := h.flow.RejectRequest(createRequestContext(c, "/api/v1/admin/requests/:id/reject"), uint(requestID), adminID, *req.AdminResponse)
	if err != nil {
		return h.resolveError(c, err, "reject")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Request rejected successfully", result)
}

func (h *AdminRequestHandler) resolveError(c fiber.Ctx, err error, action string) error {
	if businessflow.IsAdminNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Admin not found", "ADMIN_NOT_FOUND", nil)
	}
	if businessflow.IsRequestNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Request not found", "REQUEST_NOT_FOUND", nil)
	}
	if businessflow.IsRequestAlreadyResolved(err) {
		return h.ErrorResponse(c, fiber.StatusConflict, "Request already resolved", "REQUEST_ALREADY_RESOLVED", nil)
	}
	if businessflow.IsAdminResponseRequired(err) {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Admin response is required for rejection", "ADMIN_RESPONSE_REQUIRED", nil)
	}
	if businessflow.IsPlayerNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Player not found", "PLAYER_NOT_FOUND", nil)
	}
	if businessflow.IsReportNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Report not found", "REPORT_NOT_FOUND", nil)
	}
	if be, ok := err.(*businessflow.BusinessError); ok {
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to "+action+" request", be.Code, nil)
	}
	return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to "+action+" request", "RESOLVE_REQUEST_FAILED", nil)
}
