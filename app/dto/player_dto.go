package dto

import "time"

// CreatePlayerRequest carries data to submit a new player
type CreatePlayerRequest struct {
	PlayerName  string     `json:"player_name" validate:"required,min=2,max=255"`
	Position    *string    `json:"position,omitempty" validate:"omitempty,max=60"`
	TeamName    *string    `json:"team_name,omitempty" validate:"omitempty,max=255"`
	Nationality *string    `json:"nationality,omitempty" validate:"omitempty,max=60"`
	BirthDate   *time.Time `json:"birth_date,omitempty" validate:"omitempty"`
	Attributes  []string   `json:"attributes,omitempty" validate:"omitempty,dive,min=1,max=60"`
}

// PlayerDTO represents a player in API responses
type PlayerDTO struct {
	ID               string     `json:"id"`
	PlayerName       string     `json:"player_name"`
	Position         *string    `json:"position,omitempty"`
	TeamName         *string    `json:"team_name,omitempty"`
	Nationality      *string    `json:"nationality,omitempty"`
	BirthDate        *time.Time `json:"birth_date,omitempty"`
	Attributes       []string   `json:"attributes"`
	ApprovalStatus   string     `json:"approval_status"`
	CreatedByScoutID *uint      `json:"created_by_scout_id,omitempty"`
	ApprovalDate     *time.Time `json:"approval_date,omitempty"`
	RejectionReason  *string    `json:"rejection_reason,omitempty"`
	CreatedAt        string     `json:"created_at"`
}

// CreatePlayerResponse returns the created player
type CreatePlayerResponse struct {
	Message string    `json:"message"`
	Player  PlayerDTO `json:"player"`
}

// ListEntitiesFilter filters own-entity listings by approval status
type ListEntitiesFilter struct {
	Status   *string `json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected"`
	Page     int     `json:"page,omitempty"`
	PageSize int     `json:"page_size,omitempty"`
}

// ListPlayersResponse returns a page of players
type ListPlayersResponse struct {
	Message string      `json:"message"`
	Items   []PlayerDTO `json:"items"`
	Total   int64       `json:"total"`
}
