package dto

import "time"

// CreateReportRequest carries data to submit a new scouting report
type CreateReportRequest struct {
	PlayerID string  `json:"player_id" validate:"required"`
	Text     string  `json:"text" validate:"required,min=10"`
	VideoURL *string `json:"video_url,omitempty" validate:"omitempty,url,max=512"`
	Rating   *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=10"`
}

// ReportDTO represents a report in API responses. PlayerName is
// denormalized from the player relation for listings.
type ReportDTO struct {
	ID               string     `json:"id"`
	PlayerID         string     `json:"player_id"`
	PlayerName       string     `json:"player_name,omitempty"`
	Text             string     `json:"text"`
	VideoURL         *string    `json:"video_url,omitempty"`
	Rating           *int       `json:"rating,omitempty"`
	ApprovalStatus   string     `json:"approval_status"`
	CreatedByScoutID *uint      `json:"created_by_scout_id,omitempty"`
	ApprovalDate     *time.Time `json:"approval_date,omitempty"`
	RejectionReason  *string    `json:"rejection_reason,omitempty"`
	CreatedAt        string     `json:"created_at"`
}

// CreateReportResponse returns the created report
type CreateReportResponse struct {
	Message string    `json:"message"`
	Report  ReportDTO `json:"report"`
}

// ListReportsResponse returns a page of reports
type ListReportsResponse struct {
	Message string      `json:"message"`
	Items   []ReportDTO `json:"items"`
	Total   int64       `json:"total"`
}
