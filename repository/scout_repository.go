package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/scoutdesk/scoutdesk/models"
	"gorm.io/gorm"
)

// ScoutRepositoryImpl implements ScoutRepository interface
type ScoutRepositoryImpl struct {
	*BaseRepository[models.Scout, models.ScoutFilter]
}

// NewScoutRepository creates a new scout repository
func NewScoutRepository(db *gorm.DB) ScoutRepository {
	return &ScoutRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Scout, models.ScoutFilter](db),
	}
}

// ByUUID retrieves a scout by UUID
func (r *ScoutRepositoryImpl) ByUUID(ctx context.Context, uuidStr string) (*models.Scout, error) {
	parsed, err := uuid.Parse(uuidStr)
	if err != nil {
		return nil, err
	}
	rows, err := r.ByFilter(ctx, models.ScoutFilter{UUID: &parsed}, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// ByExternalAuthID retrieves a scout by the identity provider subject
func (r *ScoutRepositoryImpl) ByExternalAuthID(ctx context.Context, externalAuthID string) (*models.Scout, error) {
	db := r.getDB(ctx)
	var row models.Scout
	if err := db.Where("external_auth_id = ?", externalAuthID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ByEmail retrieves a scout by email
func (r *ScoutRepositoryImpl) ByEmail(ctx context.Context, email string) (*models.Scout, error) {
	db := r.getDB(ctx)
	var row models.Scout
	if err := db.Where("email = ?", email).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// applyFilter applies filter criteria to a GORM query
func (r *ScoutRepositoryImpl) applyFilter(query *gorm.DB, filter models.ScoutFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.ExternalAuthID != nil {
		query = query.Where("external_auth_id = ?", *filter.ExternalAuthID)
	}
	if filter.Email != nil {
		query = query.Where("email = ?", *filter.Email)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

// ByFilter retrieves scouts based on filter criteria
func (r *ScoutRepositoryImpl) ByFilter(ctx context.Context, filter models.ScoutFilter, orderBy string, limit, offset int) ([]*models.Scout, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Scout{})

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

	var rows []*models.Scout
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of scouts matching filter
func (r *ScoutRepositoryImpl) Count(ctx context.Context, filter models.ScoutFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Scout{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any scout matches the filter
func (r *ScoutRepositoryImpl) Exists(ctx context.Context, filter models.ScoutFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
