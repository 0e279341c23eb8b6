package utils

import (
	"time"
)

// Token and session time constants
const (
	// AccessTokenTTL is the time-to-live for access tokens (24 hours)
	AccessTokenTTL = 24 * time.Hour

	// AccessTokenTTLSeconds is the time-to-live for access tokens in seconds (86400 seconds = 24 hours)
	AccessTokenTTLSeconds = 86400

	// RefreshTokenTTL is the time-to-live for refresh tokens (7 days)
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Identifier allocation constants
const (
	// IdentifierNumberWidth is the zero-padded width of the sequence part
	// of external identifiers (REP-2025-00001). Numbers past 99999 widen
	// naturally.
	IdentifierNumberWidth = 5

	// AllocateMaxAttempts bounds allocation retries on transient conflicts
	AllocateMaxAttempts = 3
)

// ctxKey is the type for request-scoped context keys
type ctxKey string

// Context keys for request-scoped metadata set by handlers
const (
	RequestIDKey  ctxKey = "request_id"
	UserAgentKey  ctxKey = "user_agent"
	IPAddressKey  ctxKey = "ip_address"
	EndpointKey   ctxKey = "endpoint"
	TimeoutKey    ctxKey = "timeout"
	CancelFuncKey ctxKey = "cancel_func"
)

// Notification retention constants
const (
	// DefaultNotificationRetention is how long read/unread notifications
	// are kept before the retention worker purges them
	DefaultNotificationRetention = 90 * 24 * time.Hour
)
