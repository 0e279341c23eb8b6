// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/scoutdesk/scoutdesk/app/dto"
	businessflow "github.com/scoutdesk/scoutdesk/business_flow"
)

// NotificationHandlerInterface defines the contract for notification handlers
type NotificationHandlerInterface interface {
	List(c fiber.Ctx) error
	UnreadCount(c fiber.Ctx) error
	MarkRead(c fiber.Ctx) error
	MarkAllRead(c fiber.Ctx) error
}

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	flow      businessflow.NotificationFlow
	validator *validator.Validate
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(flow businessflow.NotificationFlow) *NotificationHandler {
	return &NotificationHandler{
		flow:      flow,
		validator: validator.New(),
	}
}

func (h *NotificationHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: &dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *NotificationHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// List Notifications
// @Description List the authenticated scout's notifications, newest first
// @Tags Notifications
// @Accept json
// @Produce json
// @Param unread query boolean false "Only unread notifications"
// @Param page query integer false "Page number (default: 1)"
// @Param page_size query integer false "Items per page (default: 20, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.ListNotificationsResponse} "Notifications retrieved successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/notifications [get]
func (h *NotificationHandler) List(c fiber.Ctx) error {
	scoutID, ok := c.Locals("scout_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Scout ID not found in context", "MISSING_SCOUT_ID", nil)
	}

	filter := dto.ListNotificationsFilter{
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "page_size"),
	}
	if v := c.Query("unread"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			filter.Unread = &b
		}
	}

	result, err := h.flow.ListNotifications(createRequestContext(c, "/api/v1/notifications"), scoutID, filter)
	if err != nil {
		if businessflow.IsInvalidPage(err) || businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid pagination parameters", "INVALID_PAGINATION", err.Error())
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list notifications", "LIST_NOTIFICATIONS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Notifications retrieved successfully", result)
}

// UnreadCount
// @Description Return the authenticated scout's unread notification count
// @Tags Notifications
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.UnreadCountResponse} "Unread count retrieved successfully"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c fiber.Ctx) error {
	scoutID, ok := c.Locals("scout_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Scout ID not found in context", "MISSING_SCOUT_ID", nil)
	}

	result, err := h.flow.UnreadCount(createRequestContext(c, "/api/v1/notifications/unread-count"), scoutID)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to get unread count", "UNREAD_COUNT_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Unread count retrieved successfully", result)
}

// MarkRead
// @Description Mark one of the authenticated scout's notifications as read
// @Tags Notifications
// @Accept json
// @Produce json
// @Param id path integer true "Notification ID"
// @Success 200 {object} dto.APIResponse{data=dto.MarkReadResponse} "Notification marked as read"
// @Failure 400 {object} dto.APIResponse "Invalid notification ID"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Notification not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c fiber.Ctx) error {
	scoutID, ok := c.Locals("scout_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Scout ID not found in context", "MISSING_SCOUT_ID", nil)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid notification ID", "INVALID_NOTIFICATION_ID", nil)
	}

	result, err := h.flow.MarkRead(createRequestContext(c, "/api/v1/notifications/:id/read"), scoutID, uint(id))
	if err != nil {
		if businessflow.IsNotificationNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Notification not found", "NOTIFICATION_NOT_FOUND", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to mark notification as read", "MARK_READ_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Notification marked as read", result)
}

// MarkAllRead
// @Description Mark all of the authenticated scout's notifications as read
// @Tags Notifications
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.MarkReadResponse} "Notifications marked as read"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c fiber.Ctx) error {
	scoutID, ok := c.Locals("scout_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Scout ID not found in context", "MISSING_SCOUT_ID", nil)
	}

	result, err := h.flow.MarkAllRead(createRequestContext(c, "/api/v1/notifications/read-all"), scoutID)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to mark notifications as read", "MARK_ALL_READ_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Notifications marked as read", result)
}
