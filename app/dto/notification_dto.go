package dto

// ListNotificationsFilter filters the notification feed
type ListNotificationsFilter struct {
	Unread   *bool `json:"unread,omitempty"`
	Page     int   `json:"page,omitempty"`
	PageSize int   `json:"page_size,omitempty"`
}

// NotificationDTO represents a notification in API responses
type NotificationDTO struct {
	ID        uint    `json:"id"`
	UUID      string  `json:"uuid"`
	Type      string  `json:"type"`
	Title     string  `json:"title"`
	Message   string  `json:"message"`
	ReportID  *string `json:"report_id,omitempty"`
	PlayerID  *string `json:"player_id,omitempty"`
	Read      bool    `json:"read"`
	ReadAt    *string `json:"read_at,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// ListNotificationsResponse returns a page of notifications
type ListNotificationsResponse struct {
	Message string            `json:"message"`
	Items   []NotificationDTO `json:"items"`
	Total   int64             `json:"total"`
}

// UnreadCountResponse returns the unread notification count
type UnreadCountResponse struct {
	Message string `json:"message"`
	Count   int64  `json:"count"`
}

// MarkReadResponse acknowledges a mark-read operation
type MarkReadResponse struct {
	Message string `json:"message"`
}
