package models

import (
	"time"

	"github.com/lib/pq"
)

// Player represents a scouted player. The primary key is the allocated
// external identifier (PLY-NNNNN) and is immutable once assigned.
type Player struct {
	ID          string         `gorm:"primaryKey;size:16" json:"id"`
	PlayerName  string         `gorm:"size:255;not null;index:idx_players_player_name" json:"player_name"`
	Position    *string        `gorm:"size:60" json:"position,omitempty"`
	TeamName    *string        `gorm:"size:255" json:"team_name,omitempty"`
	Nationality *string        `gorm:"size:60" json:"nationality,omitempty"`
	BirthDate   *time.Time     `json:"birth_date,omitempty"`
	Attributes  pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"attributes"`

	// Approval metadata, mutated only by the workflow flows
	ApprovalStatus    ApprovalStatus `gorm:"type:varchar(16);not null;default:'pending';index:idx_players_approval_status" json:"approval_status"`
	CreatedByScoutID  *uint          `gorm:"index:idx_players_created_by_scout_id" json:"created_by_scout_id,omitempty"`
	ApprovedByAdminID *uint          `json:"approved_by_admin_id,omitempty"`
	ApprovalDate      *time.Time     `json:"approval_date,omitempty"`
	RejectionReason   *string        `gorm:"type:text" json:"rejection_reason,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_players_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`

	// Relations
	CreatedByScout *Scout   `gorm:"foreignKey:CreatedByScoutID;references:ID" json:"created_by_scout,omitempty"`
	Reports        []Report `gorm:"foreignKey:PlayerID" json:"reports,omitempty"`
}

func (Player) TableName() string {
	return "players"
}

// DisplayName returns the denormalized name used in notifications that must
// stay meaningful after the player is deleted.
func (p *Player) DisplayName() string {
	return p.PlayerName
}

// PlayerFilter represents filter criteria for player queries
type PlayerFilter struct {
	ID               *string
	PlayerName       *string
	TeamName         *string
	Position         *string
	ApprovalStatus   *ApprovalStatus
	CreatedByScoutID *uint
	CreatedAfter     *time.Time
	CreatedBefore    *time.Time
}
