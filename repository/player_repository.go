package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/scoutdesk/scoutdesk/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlayerRepositoryImpl implements PlayerRepository interface. Players are
// keyed by their allocated identifier (PLY-NNNNN), so the generic uint-keyed
// base lookups do not apply here.
type PlayerRepositoryImpl struct {
	*BaseRepository[models.Player, models.PlayerFilter]
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &PlayerRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Player, models.PlayerFilter](db),
	}
}

// ByIdentifier retrieves a player by its allocated identifier
func (r *PlayerRepositoryImpl) ByIdentifier(ctx context.Context, id string) (*models.Player, error) {
	db := r.getDB(ctx)
	var row models.Player
	if err := db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ByIdentifierForUpdate retrieves a player and locks its row for the
// duration of the surrounding transaction. Must be called inside
// WithTransaction.
func (r *PlayerRepositoryImpl) ByIdentifierForUpdate(ctx context.Context, id string) (*models.Player, error) {
	db := r.getDB(ctx)
	var row models.Player
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Update persists all fields of the player row
func (r *PlayerRepositoryImpl) Update(ctx context.Context, player *models.Player) error {
	db := r.getDB(ctx)
	if err := db.Save(player).Error; err != nil {
		return fmt.Errorf("failed to update player %s: %w", player.ID, err)
	}
	return nil
}

// Delete removes a player row. Reports referencing the player cascade at
// the database level.
func (r *PlayerRepositoryImpl) Delete(ctx context.Context, id string) error {
	db := r.getDB(ctx)
	if err := db.Where("id = ?", id).Delete(&models.Player{}).Error; err != nil {
		return fmt.Errorf("failed to delete player %s: %w", id, err)
	}
	return nil
}

// applyFilter applies filter criteria to a GORM query
func (r *PlayerRepositoryImpl) applyFilter(query *gorm.DB, filter models.PlayerFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.PlayerName != nil {
		query = query.Where("player_name = ?", *filter.PlayerName)
	}
	if filter.TeamName != nil {
		query = query.Where("team_name = ?", *filter.TeamName)
	}
	if filter.Position != nil {
		query = query.Where("position = ?", *filter.Position)
	}
	if filter.ApprovalStatus != nil {
		query = query.Where("approval_status = ?", *filter.ApprovalStatus)
	}
	if filter.CreatedByScoutID != nil {
		query = query.Where("created_by_scout_id = ?", *filter.CreatedByScoutID)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

// ByFilter retrieves players based on filter criteria
func (r *PlayerRepositoryImpl) ByFilter(ctx context.Context, filter models.PlayerFilter, orderBy string, limit, offset int) ([]*models.Player, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Player{})

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

	var rows []*models.Player
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of players matching filter
func (r *PlayerRepositoryImpl) Count(ctx context.Context, filter models.PlayerFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Player{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus returns the number of players per approval status
func (r *PlayerRepositoryImpl) CountByStatus(ctx context.Context) (map[models.ApprovalStatus]int64, error) {
	db := r.getDB(ctx)

	var rows []struct {
		ApprovalStatus models.ApprovalStatus
		Total          int64
	}
	err := db.Model(&models.Player{}).
		Select("approval_status, COUNT(*) AS total").
		Group("approval_status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.ApprovalStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.ApprovalStatus] = row.Total
	}
	return counts, nil
}
