// Package models contains domain entities and business models for the scouting back office
package models

import (
	"time"

	"github.com/google/uuid"
)

// Scout represents a report submitter. Identity verification lives in the
// external identity provider; ExternalAuthID is the provider's subject.
type Scout struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UUID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_scouts_uuid" json:"uuid"`
	ExternalAuthID string    `gorm:"size:255;not null;uniqueIndex:uk_scouts_external_auth_id" json:"external_auth_id"`
	FirstName      string    `gorm:"size:255;not null" json:"first_name"`
	LastName       string    `gorm:"size:255;not null" json:"last_name"`
	Email          string    `gorm:"size:255;not null;uniqueIndex:uk_scouts_email" json:"email"`

	IsActive *bool `gorm:"default:true;index:idx_scouts_is_active" json:"is_active"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_scouts_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`

	// Relations
	Notifications []Notification `gorm:"foreignKey:ScoutID" json:"-"`
}

func (Scout) TableName() string {
	return "scouts"
}

// FullName returns the scout's display name
func (s *Scout) FullName() string {
	return s.FirstName + " " + s.LastName
}

// ScoutFilter represents filter criteria for scout queries
type ScoutFilter struct {
	ID             *uint
	UUID           *uuid.UUID
	ExternalAuthID *string
	Email          *string
	IsActive       *bool
	CreatedAfter   *time.Time
	CreatedBefore  *time.Time
}
