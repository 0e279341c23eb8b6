package models

import "time"

// GlobalScopeKey is the scope sentinel for entity types whose counter is not
// partitioned by year (players).
const GlobalScopeKey = "all"

// SequenceCounter stores the last allocated number for each
// (entity_type, scope_key) pair. Rows are created lazily on first
// allocation and are never deleted or reset, so allocated numbers stay
// unique for all time within an entity type.
type SequenceCounter struct {
	EntityType string    `gorm:"primaryKey;size:32" json:"entity_type"`
	ScopeKey   string    `gorm:"primaryKey;size:16" json:"scope_key"`
	LastNumber int64     `gorm:"not null;default:0" json:"last_number"`
	CreatedAt  time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt  time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (SequenceCounter) TableName() string { return "sequence_counters" }
