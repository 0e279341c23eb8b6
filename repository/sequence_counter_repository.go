package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/scoutdesk/scoutdesk/models"
	"gorm.io/gorm"
)

// SequenceCounterRepositoryImpl implements SequenceCounterRepository
type SequenceCounterRepositoryImpl struct {
	*BaseRepository[models.SequenceCounter, any]
}

// NewSequenceCounterRepository creates a new sequence counter repository
func NewSequenceCounterRepository(db *gorm.DB) SequenceCounterRepository {
	return &SequenceCounterRepositoryImpl{
		BaseRepository: NewBaseRepository[models.SequenceCounter, any](db),
	}
}

// Next atomically increments and returns the counter for the given
// (entity_type, scope_key) pair. Insert and increment are a single
// statement so two concurrent allocators can never observe the same
// value; the row is created with last_number = 1 on first use.
func (r *SequenceCounterRepositoryImpl) Next(ctx context.Context, entityType models.EntityType, scopeKey string) (int64, error) {
	db := r.getDB(ctx)

	var next int64
	err := db.Raw(`
		INSERT INTO sequence_counters (entity_type, scope_key, last_number, created_at, updated_at)
		VALUES (?, ?, 1, NOW() AT TIME ZONE 'UTC', NOW() AT TIME ZONE 'UTC')
		ON CONFLICT (entity_type, scope_key)
		DO UPDATE SET last_number = sequence_counters.last_number + 1,
		              updated_at  = NOW() AT TIME ZONE 'UTC'
		RETURNING last_number
	`, entityType.String(), scopeKey).Scan(&next).Error
	if err != nil {
		return 0, fmt.Errorf("failed to advance counter %s/%s: %w", entityType, scopeKey, err)
	}

	return next, nil
}

// Current returns the counter row without advancing it, or nil when the
// pair has never allocated.
func (r *SequenceCounterRepositoryImpl) Current(ctx context.Context, entityType models.EntityType, scopeKey string) (*models.SequenceCounter, error) {
	db := r.getDB(ctx)

	var row models.SequenceCounter
	err := db.Where("entity_type = ? AND scope_key = ?", entityType.String(), scopeKey).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// List returns all counter rows
func (r *SequenceCounterRepositoryImpl) List(ctx context.Context) ([]*models.SequenceCounter, error) {
	db := r.getDB(ctx)

	var rows []*models.SequenceCounter
	if err := db.Order("entity_type, scope_key").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
