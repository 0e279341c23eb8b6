package models

import (
	"database/sql/driver"
	"fmt"
)

// ApprovalStatus represents the review state of a workflowed entity
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

// String returns the string representation of the status
func (s ApprovalStatus) String() string {
	return string(s)
}

// Valid checks if the status is valid
func (s ApprovalStatus) Valid() bool {
	switch s {
	case ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if the status can move to the given status.
// The only backward transition (approved -> pending) happens when an
// edit request is granted and the review cycle re-opens.
func (s ApprovalStatus) CanTransitionTo(next ApprovalStatus) bool {
	switch s {
	case ApprovalStatusPending:
		return next == ApprovalStatusApproved || next == ApprovalStatusRejected
	case ApprovalStatusApproved:
		return next == ApprovalStatusPending
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for ApprovalStatus
func (s *ApprovalStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = ApprovalStatus(v)
	case []byte:
		*s = ApprovalStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into ApprovalStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for ApprovalStatus
func (s ApprovalStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid ApprovalStatus: %s", s)
	}
	return string(s), nil
}

// EntityType identifies the kind of workflowed entity an identifier or
// change request refers to.
type EntityType string

const (
	EntityTypeReport     EntityType = "report"
	EntityTypePlayer     EntityType = "player"
	EntityTypeTournament EntityType = "tournament"
)

// String returns the string representation of the entity type
func (t EntityType) String() string {
	return string(t)
}

// Valid checks if the entity type is valid
func (t EntityType) Valid() bool {
	switch t {
	case EntityTypeReport, EntityTypePlayer, EntityTypeTournament:
		return true
	default:
		return false
	}
}

// Code returns the three-letter prefix used in external identifiers
func (t EntityType) Code() string {
	switch t {
	case EntityTypeReport:
		return "REP"
	case EntityTypePlayer:
		return "PLY"
	case EntityTypeTournament:
		return "TOR"
	default:
		return ""
	}
}

// YearScoped reports whether identifiers of this type carry the calendar
// year. Players are permanent entities and use a single global counter.
func (t EntityType) YearScoped() bool {
	return t != EntityTypePlayer
}

// Scan implements the sql.Scanner interface for EntityType
func (t *EntityType) Scan(value any) error {
	if value == nil {
		*t = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*t = EntityType(v)
	case []byte:
		*t = EntityType(string(v))
	default:
		return fmt.Errorf("cannot scan %T into EntityType", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for EntityType
func (t EntityType) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid EntityType: %s", t)
	}
	return string(t), nil
}
