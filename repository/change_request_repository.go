package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/scoutdesk/scoutdesk/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChangeRequestRepositoryImpl implements ChangeRequestRepository interface
type ChangeRequestRepositoryImpl struct {
	*BaseRepository[models.ChangeRequest, models.ChangeRequestFilter]
}

// NewChangeRequestRepository creates a new change request repository
func NewChangeRequestRepository(db *gorm.DB) ChangeRequestRepository {
	return &ChangeRequestRepositoryImpl{
		BaseRepository: NewBaseRepository[models.ChangeRequest, models.ChangeRequestFilter](db),
	}
}

// ByIDForUpdate retrieves a change request and locks its row for the
// duration of the surrounding transaction. Must be called inside
// WithTransaction; this is what makes resolution exactly-once under
// concurrent admins.
func (r *ChangeRequestRepositoryImpl) ByIDForUpdate(ctx context.Context, id uint) (*models.ChangeRequest, error) {
	db := r.getDB(ctx)
	var row models.ChangeRequest
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ByUUID retrieves a change request by UUID
func (r *ChangeRequestRepositoryImpl) ByUUID(ctx context.Context, uuidStr string) (*models.ChangeRequest, error) {
	parsed, err := uuid.Parse(uuidStr)
	if err != nil {
		return nil, err
	}
	rows, err := r.ByFilter(ctx, models.ChangeRequestFilter{UUID: &parsed}, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// PendingByEntity returns the pending request for an entity, or nil. The
// partial unique index guarantees at most one row can match.
func (r *ChangeRequestRepositoryImpl) PendingByEntity(ctx context.Context, entityType models.EntityType, entityID string) (*models.ChangeRequest, error) {
	db := r.getDB(ctx)
	var row models.ChangeRequest
	err := db.Where("entity_type = ? AND entity_id = ? AND status = ?",
		entityType.String(), entityID, models.RequestStatusPending).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Update persists all fields of the change request row
func (r *ChangeRequestRepositoryImpl) Update(ctx context.Context, request *models.ChangeRequest) error {
	db := r.getDB(ctx)
	if err := db.Omit("Scout").Save(request).Error; err != nil {
		return fmt.Errorf("failed to update change request %d: %w", request.ID, err)
	}
	return nil
}

// DeleteByEntity removes all request rows for an entity. Called inside the
// delete-approval transaction so requests never dangle after their entity
// is gone.
func (r *ChangeRequestRepositoryImpl) DeleteByEntity(ctx context.Context, entityType models.EntityType, entityID string) error {
	db := r.getDB(ctx)
	err := db.Where("entity_type = ? AND entity_id = ?", entityType.String(), entityID).
		Delete(&models.ChangeRequest{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete requests of %s %s: %w", entityType, entityID, err)
	}
	return nil
}

// applyFilter applies filter criteria to a GORM query
func (r *ChangeRequestRepositoryImpl) applyFilter(query *gorm.DB, filter models.ChangeRequestFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.EntityType != nil {
		query = query.Where("entity_type = ?", *filter.EntityType)
	}
	if filter.EntityID != nil {
		query = query.Where("entity_id = ?", *filter.EntityID)
	}
	if filter.ScoutID != nil {
		query = query.Where("scout_id = ?", *filter.ScoutID)
	}
	if filter.RequestType != nil {
		query = query.Where("request_type = ?", *filter.RequestType)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

// ByFilter retrieves change requests based on filter criteria
func (r *ChangeRequestRepositoryImpl) ByFilter(ctx context.Context, filter models.ChangeRequestFilter, orderBy string, limit, offset int) ([]*models.ChangeRequest, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.ChangeRequest{})

	query = r.applyFilter(query, filter)

	if orderBy == "" {
		orderBy = "id DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.ChangeRequest
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of change requests matching filter
func (r *ChangeRequestRepositoryImpl) Count(ctx context.Context, filter models.ChangeRequestFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.ChangeRequest{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any change request matches the filter
func (r *ChangeRequestRepositoryImpl) Exists(ctx context.Context, filter models.ChangeRequestFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
