package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/scoutdesk/scoutdesk/models"
	"github.com/scoutdesk/scoutdesk/utils"
	"gorm.io/gorm"
)

// NotificationRepositoryImpl implements NotificationRepository interface
type NotificationRepositoryImpl struct {
	*BaseRepository[models.Notification, models.NotificationFilter]
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Notification, models.NotificationFilter](db),
	}
}

// ByUUID retrieves a notification by UUID
func (r *NotificationRepositoryImpl) ByUUID(ctx context.Context, uuidStr string) (*models.Notification, error) {
	parsed, err := uuid.Parse(uuidStr)
	if err != nil {
		return nil, err
	}
	rows, err := r.ByFilter(ctx, models.NotificationFilter{UUID: &parsed}, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// UnreadCount returns the number of unread notifications for a scout
func (r *NotificationRepositoryImpl) UnreadCount(ctx context.Context, scoutID uint) (int64, error) {
	db := r.getDB(ctx)
	var count int64
	err := db.Model(&models.Notification{}).
		Where("scout_id = ? AND read = false", scoutID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// MarkRead marks a single notification read. The scout ID is part of the
// predicate so a scout cannot touch another scout's rows.
func (r *NotificationRepositoryImpl) MarkRead(ctx context.Context, id uint, scoutID uint) error {
	db := r.getDB(ctx)
	result := db.Model(&models.Notification{}).
		Where("id = ? AND scout_id = ? AND read = false", id, scoutID).
		Updates(map[string]any{"read": true, "read_at": utils.UTCNow()})
	if result.Error != nil {
		return fmt.Errorf("failed to mark notification %d read: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkAllRead marks every unread notification of a scout read
func (r *NotificationRepositoryImpl) MarkAllRead(ctx context.Context, scoutID uint) error {
	db := r.getDB(ctx)
	err := db.Model(&models.Notification{}).
		Where("scout_id = ? AND read = false", scoutID).
		Updates(map[string]any{"read": true, "read_at": utils.UTCNow()}).Error
	if err != nil {
		return fmt.Errorf("failed to mark notifications read for scout %d: %w", scoutID, err)
	}
	return nil
}

// DeleteOlderThan purges notifications created before the cutoff and
// returns how many rows were removed.
func (r *NotificationRepositoryImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	db := r.getDB(ctx)
	result := db.Where("created_at < ?", cutoff).Delete(&models.Notification{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to purge notifications: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// applyFilter applies filter criteria to a GORM query
func (r *NotificationRepositoryImpl) applyFilter(query *gorm.DB, filter models.NotificationFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.ScoutID != nil {
		query = query.Where("scout_id = ?", *filter.ScoutID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Read != nil {
		query = query.Where("read = ?", *filter.Read)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

// ByFilter retrieves notifications based on filter criteria
func (r *NotificationRepositoryImpl) ByFilter(ctx context.Context, filter models.NotificationFilter, orderBy string, limit, offset int) ([]*models.Notification, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Notification{})

	query = r.applyFilter(query, filter)

	if orderBy == "" {
		orderBy = "created_at DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.Notification
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of notifications matching filter
func (r *NotificationRepositoryImpl) Count(ctx context.Context, filter models.NotificationFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Notification{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any notification matches the filter
func (r *NotificationRepositoryImpl) Exists(ctx context.Context, filter models.NotificationFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
