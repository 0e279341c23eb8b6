package dto

// SubmitRequestRequest carries a scout's edit/delete request for one of
// their approved submissions
type SubmitRequestRequest struct {
	EntityType  string `json:"entity_type" validate:"required,oneof=report player"`
	EntityID    string `json:"entity_id" validate:"required"`
	RequestType string `json:"request_type" validate:"required,oneof=edit delete"`
	Reason      string `json:"reason" validate:"required,min=10"`
}

// ChangeRequestDTO represents a change request in API responses
type ChangeRequestDTO struct {
	ID            uint    `json:"id"`
	UUID          string  `json:"uuid"`
	EntityType    string  `json:"entity_type"`
	EntityID      string  `json:"entity_id"`
	ScoutID       uint    `json:"scout_id"`
	RequestType   string  `json:"request_type"`
	Reason        string  `json:"reason"`
	Status        string  `json:"status"`
	AdminResponse *string `json:"admin_response,omitempty"`
	ResolvedAt    *string `json:"resolved_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

// SubmitRequestResponse returns the recorded request
type SubmitRequestResponse struct {
	Message string           `json:"message"`
	Request ChangeRequestDTO `json:"request"`
}

// ListRequestsFilter filters a scout's own request listing
type ListRequestsFilter struct {
	Status   *string `json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected"`
	Page     int     `json:"page,omitempty"`
	PageSize int     `json:"page_size,omitempty"`
}

// ListRequestsResponse returns a page of change requests
type ListRequestsResponse struct {
	Message string             `json:"message"`
	Items   []ChangeRequestDTO `json:"items"`
	Total   int64              `json:"total"`
}
