// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/scoutdesk/scoutdesk/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// SequenceCounterRepository defines operations for identifier sequence counters
type SequenceCounterRepository interface {
	// Next atomically increments and returns the counter for the given
	// (entity_type, scope_key) pair, creating the row on first use.
	Next(ctx context.Context, entityType models.EntityType, scopeKey string) (int64, error)
	Current(ctx context.Context, entityType models.EntityType, scopeKey string) (*models.SequenceCounter, error)
	List(ctx context.Context) ([]*models.SequenceCounter, error)
}

// ScoutRepository defines operations for scouts
type ScoutRepository interface {
	Repository[models.Scout, models.ScoutFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Scout, error)
	ByExternalAuthID(ctx context.Context, externalAuthID string) (*models.Scout, error)
	ByEmail(ctx context.Context, email string) (*models.Scout, error)
}

// AdminRepository defines operations for admins
type AdminRepository interface {
	Repository[models.Admin, models.AdminFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Admin, error)
	ByExternalAuthID(ctx context.Context, externalAuthID string) (*models.Admin, error)
}

// PlayerRepository defines operations for players
type PlayerRepository interface {
	ByIdentifier(ctx context.Context, id string) (*models.Player, error)
	ByIdentifierForUpdate(ctx context.Context, id string) (*models.Player, error)
	ByFilter(ctx context.Context, filter models.PlayerFilter, orderBy string, limit, offset int) ([]*models.Player, error)
	Save(ctx context.Context, player *models.Player) error
	Update(ctx context.Context, player *models.Player) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, filter models.PlayerFilter) (int64, error)
	CountByStatus(ctx context.Context) (map[models.ApprovalStatus]int64, error)
}

// ReportRepository defines operations for reports
type ReportRepository interface {
	ByIdentifier(ctx context.Context, id string) (*models.Report, error)
	ByIdentifierForUpdate(ctx context.Context, id string) (*models.Report, error)
	ByFilter(ctx context.Context, filter models.ReportFilter, orderBy string, limit, offset int) ([]*models.Report, error)
	Save(ctx context.Context, report *models.Report) error
	Update(ctx context.Context, report *models.Report) error
	Delete(ctx context.Context, id string) error
	DeleteByPlayer(ctx context.Context, playerID string) error
	Count(ctx context.Context, filter models.ReportFilter) (int64, error)
	CountByStatus(ctx context.Context) (map[models.ApprovalStatus]int64, error)
}

// ChangeRequestRepository defines operations for change requests
type ChangeRequestRepository interface {
	Repository[models.ChangeRequest, models.ChangeRequestFilter]
	ByIDForUpdate(ctx context.Context, id uint) (*models.ChangeRequest, error)
	ByUUID(ctx context.Context, uuid string) (*models.ChangeRequest, error)
	PendingByEntity(ctx context.Context, entityType models.EntityType, entityID string) (*models.ChangeRequest, error)
	Update(ctx context.Context, request *models.ChangeRequest) error
	DeleteByEntity(ctx context.Context, entityType models.EntityType, entityID string) error
}

// NotificationRepository defines operations for scout notifications
type NotificationRepository interface {
	Repository[models.Notification, models.NotificationFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Notification, error)
	UnreadCount(ctx context.Context, scoutID uint) (int64, error)
	MarkRead(ctx context.Context, id uint, scoutID uint) error
	MarkAllRead(ctx context.Context, scoutID uint) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
