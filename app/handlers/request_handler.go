// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/scoutdesk/scoutdesk/app/dto"
	businessflow "github.com/scoutdesk/scoutdesk/business_flow"
)

// RequestHandlerInterface defines the contract for change request handlers
type RequestHandlerInterface interface {
	Submit(c fiber.Ctx) error
	List(c fiber.Ctx) error
}

// RequestHandler handles change request HTTP requests for scouts
type RequestHandler struct {
	flow      businessflow.RequestFlow
	validator *validator.Validate
}

// NewRequestHandler creates a new change request handler
func NewRequestHandler(flow businessflow.RequestFlow) *RequestHandler {
	return &RequestHandler{
		flow:      flow,
		validator: validator.New(),
	}
}

func (h *RequestHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: &dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *RequestHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Submit Change Request
// @Description Submit an edit or delete request for one of the scout's own approved submissions. Only one pending request may exist per entity.
// @Tags Requests
// @Accept json
// @Produce json
// @Param request body dto.SubmitRequestRequest true "Request data"
// @Success 201 {object} dto.APIResponse{data=dto.SubmitRequestResponse} "Request submitted successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 401 {object} dto.APIResponse "Unauthorized - scout not found or inactive"
// @Failure 403 {object} dto.APIResponse "Forbidden - entity belongs to another scout"
// @Failure 404 {object} dto.APIResponse "Entity not found"
// @Failure 409 {object} dto.APIResponse "Entity not approved or a pending request already exists"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/requests [post]
func (h *RequestHandler) Submit(c fiber.Ctx) error {
	var req dto.SubmitRequestRequest
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

	scoutID, ok := c.Locals("scout_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Scout ID not found in context", "MISSING_SCOUT_ID", nil)
	}

	result, err := h.flow.SubmitRequest(createRequestContext(c, "/api/v1/requests"), scoutID, &req)
	if err != nil {
		if businessflow.IsScoutNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Scout not found", "SCOUT_NOT_FOUND", nil)
		}
		if businessflow.IsScoutInactive(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Scout account is inactive", "SCOUT_INACTIVE", nil)
		}
		if businessflow.IsPlayerNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Player not found", "PLAYER_NOT_FOUND", nil)
		}
		if businessflow.IsReportNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Report not found", "REPORT_NOT_FOUND", nil)
		}
		if businessflow.IsNotRequestSubmitter(err) {
			return h.ErrorResponse(c, fiber.StatusForbidden, "You can only request changes to your own submissions", "NOT_SUBMITTER", nil)
		}
		if businessflow.IsEntityNotApproved(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Only approved submissions can be changed", "ENTITY_NOT_APPROVED", nil)
		}
		if businessflow.IsDuplicatePendingRequest(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "A pending request already exists for this entity", "DUPLICATE_PENDING_REQUEST", nil)
		}
		if businessflow.IsReasonTooShort(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Request reason is too short", "REASON_TOO_SHORT", nil)
		}
		if businessflow.IsInvalidEntityType(err) || businessflow.IsInvalidRequestType(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid entity or request type", "INVALID_REQUEST_TYPE", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to submit request", "SUBMIT_REQUEST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Request submitted successfully", result)
}

// List Change Requests
// @Description List the authenticated scout's own change requests, newest first
// @Tags Requests
// @Accept json
// @Produce json
// @Param status query string false "Request status filter (pending, approved, rejected)"
// @Param page query integer false "Page number (default: 1)"
// @Param page_size query integer false "Items per page (default: 20, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.ListRequestsResponse} "Requests retrieved successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/requests [get]
func (h *RequestHandler) List(c fiber.Ctx) error {
	scoutID, ok := c.Locals("scout_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Scout ID not found in context", "MISSING_SCOUT_ID", nil)
	}

	filter := dto.ListRequestsFilter{
		Status:   queryStr(c, "status"),
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "page_size"),
	}

	result, err := h.flow.ListRequests(createRequestContext(c, "/api/v1/requests"), scoutID, filter)
	if err != nil {
		if businessflow.IsInvalidPage(err) || businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid pagination parameters", "INVALID_PAGINATION", err.Error())
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list requests", "LIST_REQUESTS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Requests retrieved successfully", result)
}
