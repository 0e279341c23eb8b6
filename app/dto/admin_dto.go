package dto

// RejectEntityRequest carries the optional rejection reason for a pending
// player or report
type RejectEntityRequest struct {
	Reason string `json:"reason,omitempty" validate:"omitempty,max=2000"`
}

// ReviewDecisionResponse acknowledges an approve/reject decision
type ReviewDecisionResponse struct {
	Message  string `json:"message"`
	EntityID string `json:"entity_id"`
	Status   string `json:"status"`
}

// ReviewQueueResponse lists all pending submissions, oldest first
type ReviewQueueResponse struct {
	Message string      `json:"message"`
	Players []PlayerDTO `json:"players"`
	Reports []ReportDTO `json:"reports"`
}

// DashboardStatsResponse carries per-status entity counts for the admin
// dashboard
type DashboardStatsResponse struct {
	Message         string           `json:"message"`
	Players         map[string]int64 `json:"players"`
	Reports         map[string]int64 `json:"reports"`
	PendingRequests int64            `json:"pending_requests"`
	GeneratedAt     string           `json:"generated_at"`
}

// AdminListRequestsFilter filters the admin request listing
type AdminListRequestsFilter struct {
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected"`
	EntityType  *string `json:"entity_type,omitempty" validate:"omitempty,oneof=report player"`
	RequestType *string `json:"request_type,omitempty" validate:"omitempty,oneof=edit delete"`
	Page        int     `json:"page,omitempty"`
	PageSize    int     `json:"page_size,omitempty"`
}

// ResolveRequestRequest carries the admin's response when resolving a
// change request. The response is mandatory on rejection.
type ResolveRequestRequest struct {
	AdminResponse *string `json:"admin_response,omitempty" validate:"omitempty,max=2000"`
}

// ResolveRequestResponse returns the resolved request
type ResolveRequestResponse struct {
	Message string           `json:"message"`
	Request ChangeRequestDTO `json:"request"`
}
