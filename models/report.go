package models

import (
	"time"
)

// Report represents a scouting report on a player. The primary key is the
// allocated external identifier (REP-YYYY-NNNNN) and is immutable once
// assigned.
type Report struct {
	ID       string  `gorm:"primaryKey;size:16" json:"id"`
	PlayerID string  `gorm:"size:16;not null;index:idx_reports_player_id" json:"player_id"`
	Text     string  `gorm:"type:text;not null" json:"text"`
	VideoURL *string `gorm:"size:512" json:"video_url,omitempty"`
	Rating   *int    `json:"rating,omitempty"`

	// Approval metadata, mutated only by the workflow flows
	ApprovalStatus    ApprovalStatus `gorm:"type:varchar(16);not null;default:'pending';index:idx_reports_approval_status" json:"approval_status"`
	CreatedByScoutID  *uint          `gorm:"index:idx_reports_created_by_scout_id" json:"created_by_scout_id,omitempty"`
	ApprovedByAdminID *uint          `json:"approved_by_admin_id,omitempty"`
	ApprovalDate      *time.Time     `json:"approval_date,omitempty"`
	RejectionReason   *string        `gorm:"type:text" json:"rejection_reason,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_reports_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`

	// Relations
	Player         *Player `gorm:"foreignKey:PlayerID;references:ID;constraint:OnDelete:CASCADE" json:"player,omitempty"`
	CreatedByScout *Scout  `gorm:"foreignKey:CreatedByScoutID;references:ID" json:"created_by_scout,omitempty"`
}

func (Report) TableName() string {
	return "reports"
}

// DisplayName returns the denormalized subject name used in notifications
// that must stay meaningful after the report is deleted.
func (r *Report) DisplayName() string {
	if r.Player != nil && r.Player.PlayerName != "" {
		return r.Player.PlayerName
	}
	return r.ID
}

// ReportFilter represents filter criteria for report queries
type ReportFilter struct {
	ID               *string
	PlayerID         *string
	ApprovalStatus   *ApprovalStatus
	CreatedByScoutID *uint
	CreatedAfter     *time.Time
	CreatedBefore    *time.Time
}
