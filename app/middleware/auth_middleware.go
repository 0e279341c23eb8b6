// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/scoutdesk/scoutdesk/app/dto"
	"github.com/scoutdesk/scoutdesk/app/services"
)

// AuthMiddleware handles JWT token validation for protected endpoints
type AuthMiddleware struct {
	tokenService services.TokenService
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(tokenService services.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// extractBearerToken pulls the token out of the Authorization header and
// returns an error response payload when the header is missing or malformed.
func extractBearerToken(c fiber.Ctx) (string, *dto.APIResponse) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", &dto.APIResponse{
			Success: false,
			Message: "Authorization header is required",
			Error: &dto.ErrorDetail{
				Code: "MISSING_AUTHORIZATION_HEADER",
			},
		}
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", &dto.APIResponse{
			Success: false,
			Message: "Invalid authorization header format. Expected 'Bearer <token>'",
			Error: &dto.ErrorDetail{
				Code: "INVALID_AUTHORIZATION_FORMAT",
			},
		}
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", &dto.APIResponse{
			Success: false,
			Message: "Access token is required",
			Error: &dto.ErrorDetail{
				Code: "MISSING_ACCESS_TOKEN",
			},
		}
	}

	return token, nil
}

// tokenErrorResponse maps token validation failures to API error payloads
func tokenErrorResponse(err error) dto.APIResponse {
	var errorCode string
	var message string

	if errors.Is(err, services.ErrTokenExpired) {
		errorCode = "TOKEN_EXPIRED"
		message = "Access token has expired"
	} else if errors.Is(err, services.ErrTokenInvalid) {
		errorCode = "TOKEN_INVALID"
		message = "Invalid access token"
	} else if errors.Is(err, services.ErrTokenRevoked) {
		errorCode = "TOKEN_REVOKED"
		message = "Access token has been revoked"
	} else {
		errorCode = "TOKEN_VALIDATION_FAILED"
		message = "Token validation failed"
	}

	return dto.APIResponse{
		Success: false,
		Message: message,
		Error: &dto.ErrorDetail{
			Code: errorCode,
		},
	}
}

// Authenticate is the middleware function that validates scout JWT tokens
func (m *AuthMiddleware) Authenticate() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, errResp := extractBearerToken(c)
		if errResp != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(*errResp)
		}

		claims, err := m.tokenService.ValidateScoutToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(tokenErrorResponse(err))
		}

		// Store scout information in context for downstream handlers
		c.Locals("scout_id", claims.ScoutID)
		c.Locals("token_id", claims.TokenID)
		c.Locals("token_claims", claims)

		// Store RequestID for audit logging
		if requestID := c.Get("X-Request-ID"); requestID != "" {
			c.Locals("request_id", requestID)
		}

		return c.Next()
	}
}

// AdminAuthenticate validates JWT tokens and sets admin-specific context values
func (m *AuthMiddleware) AdminAuthenticate() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, errResp := extractBearerToken(c)
		if errResp != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(*errResp)
		}

		adminClaims, err := m.tokenService.ValidateAdminToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(tokenErrorResponse(err))
		}

		c.Locals("admin_id", adminClaims.AdminID)
		c.Locals("token_id", adminClaims.TokenID)
		c.Locals("token_claims", adminClaims)

		if requestID := c.Get("X-Request-ID"); requestID != "" {
			c.Locals("request_id", requestID)
		}

		return c.Next()
	}
}

// OptionalAuth validates scout JWT tokens if present, but doesn't require them
func (m *AuthMiddleware) OptionalAuth() fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Next()
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return c.Next()
		}

		claims, err := m.tokenService.ValidateScoutToken(token)
		if err != nil {
			// Token is invalid, but this is optional auth, so continue
			return c.Next()
		}

		c.Locals("scout_id", claims.ScoutID)
		c.Locals("token_id", claims.TokenID)
		c.Locals("token_claims", claims)

		if requestID := c.Get("X-Request-ID"); requestID != "" {
			c.Locals("request_id", requestID)
		}

		return c.Next()
	}
}

// GetScoutIDFromContext extracts scout ID from the request context
func GetScoutIDFromContext(c fiber.Ctx) (uint, bool) {
	scoutID, ok := c.Locals("scout_id").(uint)
	return scoutID, ok
}

// GetAdminIDFromContext extracts admin ID from the request context
func GetAdminIDFromContext(c fiber.Ctx) (uint, bool) {
	adminID, ok := c.Locals("admin_id").(uint)
	return adminID, ok
}

// GetScoutClaimsFromContext extracts scout token claims from the request context
func GetScoutClaimsFromContext(c fiber.Ctx) (*services.ScoutTokenClaims, bool) {
	claims, ok := c.Locals("token_claims").(*services.ScoutTokenClaims)
	return claims, ok
}

// RequireAuth is a helper function that ensures scout authentication is present
func RequireAuth(c fiber.Ctx) error {
	scoutID, exists := GetScoutIDFromContext(c)
	if !exists {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
			Success: false,
			Message: "Authentication required",
			Error: &dto.ErrorDetail{
				Code: "AUTHENTICATION_REQUIRED",
			},
		})
	}

	if scoutID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
			Success: false,
			Message: "Invalid scout ID",
			Error: &dto.ErrorDetail{
				Code: "INVALID_SCOUT_ID",
			},
		})
	}

	return nil
}

// RequireAdminAuth ensures admin authentication is present
func RequireAdminAuth(c fiber.Ctx) error {
	adminID, exists := GetAdminIDFromContext(c)
	if !exists {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
			Success: false,
			Message: "Admin authentication required",
			Error:   &dto.ErrorDetail{Code: "ADMIN_AUTHENTICATION_REQUIRED"},
		})
	}
	if adminID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
			Success: false,
			Message: "Invalid admin ID",
			Error:   &dto.ErrorDetail{Code: "INVALID_ADMIN_ID"},
		})
	}
	return nil
}

// AuthenticateAny accepts either a scout or an admin token. Create routes
// are shared: scout submissions enter the review queue while admin
// submissions are approved immediately.
func (m *AuthMiddleware) AuthenticateAny() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, errResp := extractBearerToken(c)
		if errResp != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(*errResp)
		}

		if claims, err := m.tokenService.ValidateScoutToken(token); err == nil {
			c.Locals("scout_id", claims.ScoutID)
			c.Locals("token_id", claims.TokenID)
			c.Locals("token_claims", claims)
		} else if adminClaims, adminErr := m.tokenService.ValidateAdminToken(token); adminErr == nil {
			c.Locals("admin_id", adminClaims.AdminID)
			c.Locals("token_id", adminClaims.TokenID)
			c.Locals("token_claims", adminClaims)
		} else {
			return c.Status(fiber.StatusUnauthorized).JSON(tokenErrorResponse(err))
		}

		if requestID := c.Get("X-Request-ID"); requestID != "" {
			c.Locals("request_id", requestID)
		}

		return c.Next()
	}
}
