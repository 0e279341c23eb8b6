package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationType classifies workflow notifications
type NotificationType string

const (
	NotificationTypeRequestApproved NotificationType = "request_approved"
	NotificationTypeRequestRejected NotificationType = "request_rejected"
	NotificationTypeEntityDeleted   NotificationType = "entity_deleted"
	NotificationTypeEntityRejected  NotificationType = "entity_rejected"
)

// String returns the string representation of the notification type
func (t NotificationType) String() string {
	return string(t)
}

// Valid checks if the notification type is valid
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTypeRequestApproved, NotificationTypeRequestRejected,
		NotificationTypeEntityDeleted, NotificationTypeEntityRejected:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for NotificationType
func (t *NotificationType) Scan(value any) error {
	if value == nil {
		*t = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = NotificationType(v)
	case []byte:
		*t = NotificationType(string(v))
	default:
		return fmt.Errorf("cannot scan %T into NotificationType", value)
	}
	return nil
}

// Value implements the driver.Valuer interface for NotificationType
func (t NotificationType) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid NotificationType: %s", t)
	}
	return string(t), nil
}

// Notification is an in-app message delivered to a scout when a workflow
// decision touches one of their submissions. Title and Message carry
// denormalized entity names so the row stays meaningful after the entity
// is deleted; ReportID and PlayerID are plain columns without foreign keys
// for the same reason.
type Notification struct {
	ID      uint             `gorm:"primaryKey" json:"id"`
	UUID    uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:uk_notifications_uuid" json:"uuid"`
	ScoutID uint             `gorm:"not null;index:idx_notifications_scout_id" json:"scout_id"`
	Type    NotificationType `gorm:"type:varchar(32);not null" json:"type"`
	Title   string           `gorm:"size:255;not null" json:"title"`
	Message string           `gorm:"type:text;not null" json:"message"`

	ReportID *string `gorm:"size:16" json:"report_id,omitempty"`
	PlayerID *string `gorm:"size:16" json:"player_id,omitempty"`

	Read   bool       `gorm:"not null;default:false;index:idx_notifications_read" json:"read"`
	ReadAt *time.Time `json:"read_at,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_notifications_created_at" json:"created_at"`

	// Relations
	Scout *Scout `gorm:"foreignKey:ScoutID;references:ID" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}

// BeforeCreate ensures UUID and created_at are set
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.UUID == uuid.Nil {
		n.UUID = uuid.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	return nil
}

// NotificationFilter represents filter criteria for notification queries
type NotificationFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	ScoutID       *uint
	Type          *NotificationType
	Read          *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
