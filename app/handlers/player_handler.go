// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/scoutdesk/scoutdesk/app/dto"
	businessflow "github.com/scoutdesk/scoutdesk/business_flow"
)

// PlayerHandlerInterface defines the contract for player handlers
type PlayerHandlerInterface interface {
	Create(c fiber.Ctx) error
	Get(c fiber.Ctx) error
	List(c fiber.Ctx) error
}

// PlayerHandler handles player-related HTTP requests
type PlayerHandler struct {
	flow      businessflow.PlayerFlow
	validator *validator.Validate
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(flow businessflow.PlayerFlow) *PlayerHandler {
	return &PlayerHandler{
		flow:      flow,
		validator: validator.New(),
	}
}

func (h *PlayerHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: &dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *PlayerHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Create Player
// @Description Submit a new player. Scout submissions enter the review queue as pending; admin submissions are approved immediately.
// @Tags Players
// @Accept json
// @Produce json
// @Param request body dto.CreatePlayerRequest true "Player data"
// @Success 201 {object} dto.APIResponse{data=dto.CreatePlayerResponse} "Player created successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 401 {object} dto.APIResponse "Unauthorized - scout not found or inactive"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/players [post]
func (h *PlayerHandler) Create(c fiber.Ctx) error {
	var req dto.CreatePlayerRequest
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

	result, err := h.flow.CreatePlayer(createRequestContext(c, "/api/v1/players"), &req, actor)
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
		if businessflow.IsPlayerNameRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Player name is required", "PLAYER_NAME_REQUIRED", nil)
		}
		if businessflow.IsAllocationFailed(err) {
			return h.ErrorResponse(c, fiber.StatusServiceUnavailable, "Identifier allocation failed, please retry", "ALLOCATION_FAILED", nil)
		}
		if be, ok := err.(*businessflow.BusinessError); ok {
			return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create player", be.Code, nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create player", "CREATE_PLAYER_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Player created successfully", result)
}

// Get Player
// @Description Retrieve a single player by its identifier
// @Tags Players
// @Accept json
// @Produce json
// @Param id path string true "Player identifier (PLY-00001)"
// @Success 200 {object} dto.APIResponse{data=dto.PlayerDTO} "Player retrieved successfully"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Player not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/players/{id} [get]
func (h *PlayerHandler) Get(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Player identifier is required", "MISSING_PLAYER_ID", nil)
	}

	result, err := h.flow.GetPlayer(createRequestContext(c, "/api/v1/players/:id"), id)
	if err != nil {
		if businessflow.IsPlayerNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Player not found", "PLAYER_NOT_FOUND", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to get player", "GET_PLAYER_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Player retrieved successfully", result)
}

// List Players
// @Description List the authenticated scout's own players, newest first
// @Tags Players
// @Accept json
// @Produce json
// @Param status query string false "Approval status filter (pending, approved, rejected)"
// @Param page query integer false "Page number (default: 1)"
// @Param page_size query integer false "Items per page (default: 20, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.ListPlayersResponse} "Players retrieved successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/players [get]
func (h *PlayerHandler) List(c fiber.Ctx) error {
	scoutID, ok := c.Locals("scout_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Scout ID not found in context", "MISSING_SCOUT_ID", nil)
	}

	filter := dto.ListEntitiesFilter{
		Status:   queryStr(c, "status"),
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "page_size"),
	}

	result, err := h.flow.ListPlayers(createRequestContext(c, "/api/v1/players"), scoutID, filter)
	if err != nil {
		if businessflow.IsInvalidPage(err) || businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid pagination parameters", "INVALID_PAGINATION", err.Error())
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list players", "LIST_PLAYERS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Players retrieved successfully", result)
}
