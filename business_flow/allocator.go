// Package businessflow contains the core business logic and use cases for approval workflows
package businessflow

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/scoutdesk/scoutdesk/models"
	"github.com/scoutdesk/scoutdesk/repository"
	"github.com/scoutdesk/scoutdesk/utils"
)

// IdentifierAllocator hands out sequential external identifiers
// (REP-2025-00001, PLY-00001). Allocation participates in the caller's
// transaction context, so an entity is never created without its
// identifier and a rolled-back transaction never leaves a visible gap.
type IdentifierAllocator interface {
	Allocate(ctx context.Context, entityType models.EntityType) (string, error)
}

// IdentifierAllocatorImpl implements the identifier allocator
type IdentifierAllocatorImpl struct {
	counterRepo repository.SequenceCounterRepository
}

// NewIdentifierAllocator creates a new identifier allocator instance
func NewIdentifierAllocator(counterRepo repository.SequenceCounterRepository) IdentifierAllocator {
	return &IdentifierAllocatorImpl{counterRepo: counterRepo}
}

// Allocate increments the counter for the entity type's current scope and
// formats the identifier. Transient serialization or deadlock failures are
// retried a bounded number of times; exhaustion surfaces
// ErrAllocationFailed. When ctx carries a transaction the retry is left to
// the caller, because the surrounding transaction is already aborted.
func (a *IdentifierAllocatorImpl) Allocate(ctx context.Context, entityType models.EntityType) (string, error) {
	if !entityType.Valid() {
		return "", ErrInvalidEntityType
	}

	scopeKey := scopeKeyFor(entityType)

	var lastErr error
	attempts := utils.AllocateMaxAttempts
	if ctx.Value(repository.TxContextKey) != nil {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		number, err := a.counterRepo.Next(ctx, entityType, scopeKey)
		if err == nil {
			return FormatIdentifier(entityType, scopeKey, number), nil
		}
		lastErr = err
		if !isTransientSQLError(err) {
			return "", fmt.Errorf("failed to allocate %s identifier: %w", entityType, err)
		}
	}

	return "", NewBusinessErrorf("ALLOCATION_FAILED", "failed to allocate %s identifier after %d attempts",
		errors.Join(ErrAllocationFailed, lastErr), entityType, attempts)
}

// scopeKeyFor returns the counter scope for an entity type: the current
// UTC year for year-scoped types, the global sentinel otherwise.
func scopeKeyFor(entityType models.EntityType) string {
	if entityType.YearScoped() {
		return strconv.Itoa(utils.UTCNow().Year())
	}
	return models.GlobalScopeKey
}

// FormatIdentifier renders an identifier from its parts. The number is
// zero-padded to five digits and widens naturally past 99999.
func FormatIdentifier(entityType models.EntityType, scopeKey string, number int64) string {
	if scopeKey == models.GlobalScopeKey {
		return fmt.Sprintf("%s-%0*d", entityType.Code(), utils.IdentifierNumberWidth, number)
	}
	return fmt.Sprintf("%s-%s-%0*d", entityType.Code(), scopeKey, utils.IdentifierNumberWidth, number)
}

// ParseIdentifier splits an identifier into its entity type, scope key and
// number. The scope key is the year segment for year-scoped identifiers
// and the global sentinel otherwise.
func ParseIdentifier(id string) (models.EntityType, string, int64, error) {
	parts := strings.Split(id, "-")

	var entityType models.EntityType
	switch {
	case len(parts) >= 1 && parts[0] == models.EntityTypeReport.Code():
		entityType = models.EntityTypeReport
	case len(parts) >= 1 && parts[0] == models.EntityTypePlayer.Code():
		entityType = models.EntityTypePlayer
	case len(parts) >= 1 && parts[0] == models.EntityTypeTournament.Code():
		entityType = models.EntityTypeTournament
	default:
		return "", "", 0, ErrInvalidIdentifier
	}

	var scopeKey, numberPart string
	switch {
	case entityType.YearScoped() && len(parts) == 3:
		scopeKey = parts[1]
		numberPart = parts[2]
		if _, err := strconv.Atoi(scopeKey); err != nil || len(scopeKey) != 4 {
			return "", "", 0, ErrInvalidIdentifier
		}
	case !entityType.YearScoped() && len(parts) == 2:
		scopeKey = models.GlobalScopeKey
		numberPart = parts[1]
	default:
		return "", "", 0, ErrInvalidIdentifier
	}

	if len(numberPart) < utils.IdentifierNumberWidth {
		return "", "", 0, ErrInvalidIdentifier
	}
	number, err := strconv.ParseInt(numberPart, 10, 64)
	if err != nil || number < 1 {
		return "", "", 0, ErrInvalidIdentifier
	}

	return entityType, scopeKey, number, nil
}

// isTransientSQLError reports whether the error is a Postgres
// serialization failure or deadlock worth retrying.
func isTransientSQLError(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	msg := err.Error()
	return strings.Contains(msg, "could not serialize access") || strings.Contains(msg, "deadlock detected")
}
