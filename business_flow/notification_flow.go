// Package businessflow contains the core business logic and use cases for approval workflows
package businessflow

import (
	"context"
	"errors"

	"github.com/scoutdesk/scoutdesk/app/dto"
	"github.com/scoutdesk/scoutdesk/models"
	"github.com/scoutdesk/scoutdesk/repository"
	"gorm.io/gorm"
)

// NotificationFlow serves a scout's notification feed. Rows are written
// only by the workflow flows; this flow is read/ack side only.
type NotificationFlow interface {
	ListNotifications(ctx context.Context, scoutID uint, filter dto.ListNotificationsFilter) (*dto.ListNotificationsResponse, error)
	UnreadCount(ctx context.Context, scoutID uint) (*dto.UnreadCountResponse, error)
	MarkRead(ctx context.Context, scoutID uint, notificationID uint) (*dto.MarkReadResponse, error)
	MarkAllRead(ctx context.Context, scoutID uint) (*dto.MarkReadResponse, error)
}

// NotificationFlowImpl implements the notification business flow
type NotificationFlowImpl struct {
	notificationRepo repository.NotificationRepository
	scoutRepo        repository.ScoutRepository
}

// NewNotificationFlow creates a new notification flow instance
func NewNotificationFlow(
	notificationRepo repository.NotificationRepository,
	scoutRepo repository.ScoutRepository,
) NotificationFlow {
	return &NotificationFlowImpl{
		notificationRepo: notificationRepo,
		scoutRepo:        scoutRepo,
	}
}

// ListNotifications retrieves the scout's notifications, newest first
func (s *NotificationFlowImpl) ListNotifications(ctx context.Context, scoutID uint, filter dto.ListNotificationsFilter) (*dto.ListNotificationsResponse, error) {
	limit, offset, err := paginate(filter.Page, filter.PageSize)
	if err != nil {
		return nil, err
	}

	nf := models.NotificationFilter{ScoutID: &scoutID}
	if filter.Unread != nil && *filter.Unread {
		unread := false
		nf.Read = &unread
	}

	rows, err := s.notificationRepo.ByFilter(ctx, nf, "created_at DESC", limit, offset)
	if err != nil {
		return nil, NewBusinessError("LIST_NOTIFICATIONS_FAILED", "Failed to list notifications", err)
	}
	total, err := s.notificationRepo.Count(ctx, nf)
	if err != nil {
		return nil, NewBusinessError("LIST_NOTIFICATIONS_FAILED", "Failed to count notifications", err)
	}

	items := make([]dto.NotificationDTO, 0, len(rows))
	for _, n := range rows {
		items = append(items, ToNotificationDTO(*n))
	}

	return &dto.ListNotificationsResponse{
		Message: "Notifications retrieved successfully",
		Items:   items,
		Total:   total,
	}, nil
}

// UnreadCount returns the scout's unread notification count
func (s *NotificationFlowImpl) UnreadCount(ctx context.Context, scoutID uint) (*dto.UnreadCountResponse, error) {
	count, err := s.notificationRepo.UnreadCount(ctx, scoutID)
	if err != nil {
		return nil, NewBusinessError("UNREAD_COUNT_FAILED", "Failed to count unread notifications", err)
	}
	return &dto.UnreadCountResponse{
		Message: "Unread count retrieved successfully",
		Count:   count,
	}, nil
}

// MarkRead marks one of the scout's notifications read
func (s *NotificationFlowImpl) MarkRead(ctx context.Context, scoutID uint, notificationID uint) (*dto.MarkReadResponse, error) {
	err := s.notificationRepo.MarkRead(ctx, notificationID, scoutID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, NewBusinessError("MARK_READ_FAILED", "Failed to mark notification read", err)
	}
	return &dto.MarkReadResponse{Message: "Notification marked read"}, nil
}

// MarkAllRead marks every unread notification of the scout read
func (s *NotificationFlowImpl) MarkAllRead(ctx context.Context, scoutID uint) (*dto.MarkReadResponse, error) {
	if err := s.notificationRepo.MarkAllRead(ctx, scoutID); err != nil {
		return nil, NewBusinessError("MARK_READ_FAILED", "Failed to mark notifications read", err)
	}
	return &dto.MarkReadResponse{Message: "All notifications marked read"}, nil
}
