package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/scoutdesk/scoutdesk/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReportRepositoryImpl implements ReportRepository interface. Reports are
// keyed by their allocated identifier (REP-YYYY-NNNNN).
type ReportRepositoryImpl struct {
	*BaseRepository[models.Report, models.ReportFilter]
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &ReportRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Report, models.ReportFilter](db),
	}
}

// ByIdentifier retrieves a report by its allocated identifier, with the
// player relation loaded for display names.
func (r *ReportRepositoryImpl) ByIdentifier(ctx context.Context, id string) (*models.Report, error) {
	db := r.getDB(ctx)
	var row models.Report
	if err := db.Preload("Player").Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ByIdentifierForUpdate retrieves a report and locks its row for the
// duration of the surrounding transaction. Must be called inside
// WithTransaction. The lock only covers the reports row; the player
// relation is loaded separately without a lock.
func (r *ReportRepositoryImpl) ByIdentifierForUpdate(ctx context.Context, id string) (*models.Report, error) {
	db := r.getDB(ctx)
	var row models.Report
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := db.Where("id = ?", row.PlayerID).First(&row.Player).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return &row, nil
}

// Update persists all fields of the report row
func (r *ReportRepositoryImpl) Update(ctx context.Context, report *models.Report) error {
	db := r.getDB(ctx)
	if err := db.Omit("Player", "CreatedByScout").Save(report).Error; err != nil {
		return fmt.Errorf("failed to update report %s: %w", report.ID, err)
	}
	return nil
}

// Delete removes a report row
func (r *ReportRepositoryImpl) Delete(ctx context.Context, id string) error {
	db := r.getDB(ctx)
	if err := db.Where("id = ?", id).Delete(&models.Report{}).Error; err != nil {
		return fmt.Errorf("failed to delete report %s: %w", id, err)
	}
	return nil
}

// DeleteByPlayer removes all reports for a player
func (r *ReportRepositoryImpl) DeleteByPlayer(ctx context.Context, playerID string) error {
	db := r.getDB(ctx)
	if err := db.Where("player_id = ?", playerID).Delete(&models.Report{}).Error; err != nil {
		return fmt.Errorf("failed to delete reports of player %s: %w", playerID, err)
	}
	return nil
}

// applyFilter applies filter criteria to a GORM query
func (r *ReportRepositoryImpl) applyFilter(query *gorm.DB, filter models.ReportFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.PlayerID != nil {
		query = query.Where("player_id = ?", *filter.PlayerID)
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

// ByFilter retrieves reports based on filter criteria
func (r *ReportRepositoryImpl) ByFilter(ctx context.Context, filter models.ReportFilter, orderBy string, limit, offset int) ([]*models.Report, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Report{}).Preload("Player")

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

	var rows []*models.Report
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of reports matching filter
func (r *ReportRepositoryImpl) Count(ctx context.Context, filter models.ReportFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Report{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus returns the number of reports per approval status
func (r *ReportRepositoryImpl) CountByStatus(ctx context.Context) (map[models.ApprovalStatus]int64, error) {
	db := r.getDB(ctx)

	var rows []struct {
		ApprovalStatus models.ApprovalStatus
		Total          int64
	}
	err := db.Model(&models.Report{}).
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
