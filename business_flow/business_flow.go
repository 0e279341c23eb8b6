// Package businessflow contains the business logic for the application.
package businessflow

import (
	"context"
	"errors"
	"time"

	"github.com/scoutdesk/scoutdesk/app/dto"
	"github.com/scoutdesk/scoutdesk/config"
	"github.com/scoutdesk/scoutdesk/models"
	"github.com/scoutdesk/scoutdesk/repository"
	"github.com/scoutdesk/scoutdesk/utils"
)

const RequestIDKey = "X-Request-ID"

// Actor identifies who is performing an operation. Exactly one of the two
// IDs is set; handlers populate it from the token middleware locals.
type Actor struct {
	ScoutID *uint
	AdminID *uint
}

// IsAdmin reports whether the actor carries an admin identity
func (a Actor) IsAdmin() bool {
	return a.AdminID != nil
}

func getScout(ctx context.Context, repo repository.ScoutRepository, scoutID uint) (models.Scout, error) {
	scout, err := repo.ByID(ctx, scoutID)
	if err != nil {
		return models.Scout{}, err
	}
	if scout == nil {
		return models.Scout{}, ErrScoutNotFound
	}
	if !utils.IsTrue(scout.IsActive) {
		return models.Scout{}, ErrScoutInactive
	}
	return *scout, nil
}

func getAdmin(ctx context.Context, repo repository.AdminRepository, adminID uint) (models.Admin, error) {
	admin, err := repo.ByID(ctx, adminID)
	if err != nil {
		return models.Admin{}, err
	}
	if admin == nil {
		return models.Admin{}, ErrAdminNotFound
	}
	return *admin, nil
}

func redisKey(cfg config.CacheConfig, key string) string {
	return cfg.RedisPrefix + key
}

func asBusinessError(err error, target **BusinessError) bool {
	return errors.As(err, target)
}

// paginate converts page/page_size to limit/offset, defaulting to the
// first page of 20 rows.
func paginate(page, pageSize int) (limit, offset int, err error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 20
	}
	if page < 1 {
		return 0, 0, ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return 0, 0, ErrInvalidPageSize
	}
	return pageSize, (page - 1) * pageSize, nil
}

// ToPlayerDTO converts a player model to its API representation
func ToPlayerDTO(p models.Player) dto.PlayerDTO {
	return dto.PlayerDTO{
		ID:               p.ID,
		PlayerName:       p.PlayerName,
		Position:         p.Position,
		TeamName:         p.TeamName,
		Nationality:      p.Nationality,
		BirthDate:        p.BirthDate,
		Attributes:       p.Attributes,
		ApprovalStatus:   p.ApprovalStatus.String(),
		CreatedByScoutID: p.CreatedByScoutID,
		ApprovalDate:     p.ApprovalDate,
		RejectionReason:  p.RejectionReason,
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
	}
}

// ToReportDTO converts a report model to its API representation
func ToReportDTO(r models.Report) dto.ReportDTO {
	d := dto.ReportDTO{
		ID:               r.ID,
		PlayerID:         r.PlayerID,
		Text:             r.Text,
		VideoURL:         r.VideoURL,
		Rating:           r.Rating,
		ApprovalStatus:   r.ApprovalStatus.String(),
		CreatedByScoutID: r.CreatedByScoutID,
		ApprovalDate:     r.ApprovalDate,
		RejectionReason:  r.RejectionReason,
		CreatedAt:        r.CreatedAt.Format(time.RFC3339),
	}
	if r.Player != nil {
		d.PlayerName = r.Player.PlayerName
	}
	return d
}

// ToChangeRequestDTO converts a change request model to its API representation
func ToChangeRequestDTO(r models.ChangeRequest) dto.ChangeRequestDTO {
	d := dto.ChangeRequestDTO{
		ID:            r.ID,
		UUID:          r.UUID.String(),
		EntityType:    r.EntityType.String(),
		EntityID:      r.EntityID,
		ScoutID:       r.ScoutID,
		RequestType:   r.RequestType.String(),
		Reason:        r.Reason,
		Status:        r.Status.String(),
		AdminResponse: r.AdminResponse,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
	}
	if r.ResolvedAt != nil {
		resolved := r.ResolvedAt.Format(time.RFC3339)
		d.ResolvedAt = &resolved
	}
	return d
}

// ToNotificationDTO converts a notification model to its API representation
func ToNotificationDTO(n models.Notification) dto.NotificationDTO {
	d := dto.NotificationDTO{
		ID:        n.ID,
		UUID:      n.UUID.String(),
		Type:      n.Type.String(),
		Title:     n.Title,
		Message:   n.Message,
		ReportID:  n.ReportID,
		PlayerID:  n.PlayerID,
		Read:      n.Read,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.ReadAt != nil {
		readAt := n.ReadAt.Format(time.RFC3339)
		d.ReadAt = &readAt
	}
	return d
}
