package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/scoutdesk/scoutdesk/utils"
	"gorm.io/gorm"
)

// RequestType distinguishes edit from delete requests
type RequestType string

const (
	RequestTypeEdit   RequestType = "edit"
	RequestTypeDelete RequestType = "delete"
)

// String returns the string representation of the request type
func (t RequestType) String() string {
	return string(t)
}

// Valid checks if the request type is valid
func (t RequestType) Valid() bool {
	return t == RequestTypeEdit || t == RequestTypeDelete
}

// Scan implements the sql.Scanner interface for RequestType
func (t *RequestType) Scan(value any) error {
	if value == nil {
		*t = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = RequestType(v)
	case []byte:
		*t = RequestType(string(v))
	default:
		return fmt.Errorf("cannot scan %T into RequestType", value)
	}
	return nil
}

// Value implements the driver.Valuer interface for RequestType
func (t RequestType) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid RequestType: %s", t)
	}
	return string(t), nil
}

// RequestStatus represents the resolution state of a change request
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// String returns the string representation of the request status
func (s RequestStatus) String() string {
	return string(s)
}

// Valid checks if the request status is valid
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected:
		return true
	default:
		return false
	}
}

// Resolved reports whether the request has already been decided
func (s RequestStatus) Resolved() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// Scan implements the sql.Scanner interface for RequestStatus
func (s *RequestStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = RequestStatus(v)
	case []byte:
		*s = RequestStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into RequestStatus", value)
	}
	return nil
}

// Value implements the driver.Valuer interface for RequestStatus
func (s RequestStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid RequestStatus: %s", s)
	}
	return string(s), nil
}

// MinRequestReasonLength is the minimum length of a change request reason
const MinRequestReasonLength = 10

// ChangeRequest is an edit/delete request raised by the original submitter
// against an approved entity. At most one pending request may exist per
// entity; the partial unique index in the migration enforces this at the
// storage level. Rows for a deleted entity are removed in the same
// transaction as the entity; resolved rows otherwise persist as an audit
// record.
type ChangeRequest struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	UUID        uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:uk_change_requests_uuid" json:"uuid"`
	EntityType  EntityType    `gorm:"type:varchar(16);not null;index:idx_change_requests_entity,priority:1" json:"entity_type"`
	EntityID    string        `gorm:"size:16;not null;index:idx_change_requests_entity,priority:2" json:"entity_id"`
	ScoutID     uint          `gorm:"not null;index:idx_change_requests_scout_id" json:"scout_id"`
	RequestType RequestType   `gorm:"type:varchar(8);not null" json:"request_type"`
	Reason      string        `gorm:"type:text;not null" json:"reason"`
	Status      RequestStatus `gorm:"type:varchar(16);not null;default:'pending';index:idx_change_requests_status" json:"status"`

	AdminResponse     *string    `gorm:"type:text" json:"admin_response,omitempty"`
	ResolvedByAdminID *uint      `json:"resolved_by_admin_id,omitempty"`
	ResolvedAt        *time.Time `json:"resolved_at,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_change_requests_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`

	// Relations
	Scout *Scout `gorm:"foreignKey:ScoutID;references:ID" json:"scout,omitempty"`
}

func (ChangeRequest) TableName() string {
	return "change_requests"
}

// BeforeCreate ensures UUID and timestamps are set
func (r *ChangeRequest) BeforeCreate(tx *gorm.DB) error {
	if r.UUID == uuid.Nil {
		r.UUID = uuid.New()
	}
	if r.Status == "" {
		r.Status = RequestStatusPending
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = utils.UTCNow()
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate refreshes the updated_at timestamp
func (r *ChangeRequest) BeforeUpdate(tx *gorm.DB) error {
	r.UpdatedAt = utils.UTCNow()
	return nil
}

// ChangeRequestFilter represents filter criteria for change request queries
type ChangeRequestFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	EntityType    *EntityType
	EntityID      *string
	ScoutID       *uint
	RequestType   *RequestType
	Status        *RequestStatus
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
