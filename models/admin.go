package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin represents a back office reviewer. Like scouts, admins authenticate
// against the external identity provider; ExternalAuthID is the provider's
// subject.
type Admin struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UUID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_admins_uuid" json:"uuid"`
	ExternalAuthID string    `gorm:"size:255;not null;uniqueIndex:uk_admins_external_auth_id" json:"external_auth_id"`
	DisplayName    string    `gorm:"size:255;not null" json:"display_name"`
	Email          string    `gorm:"size:255;not null;uniqueIndex:uk_admins_email" json:"email"`

	IsActive  *bool     `gorm:"default:true;index:idx_admins_is_active" json:"is_active"`
	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_admins_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Admin) TableName() string {
	return "admins"
}

// AdminFilter represents filter criteria for admin queries
type AdminFilter struct {
	ID             *uint
	UUID           *uuid.UUID
	ExternalAuthID *string
	Email          *string
	IsActive       *bool
	CreatedAfter   *time.Time
	CreatedBefore  *time.Time
}
