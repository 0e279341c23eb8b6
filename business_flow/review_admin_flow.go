// Package businessflow contains the core business logic and use cases for approval workflows
package businessflow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/scoutdesk/scoutdesk/app/dto"
	"github.com/scoutdesk/scoutdesk/config"
	"github.com/scoutdesk/scoutdesk/models"
	"github.com/scoutdesk/scoutdesk/repository"
	"github.com/scoutdesk/scoutdesk/utils"
	"gorm.io/gorm"
)

const (
	adminStatsCacheKey = "admin:stats"
	adminStatsCacheTTL = 30 * time.Second
)

// AdminReviewFlow drives the approval state machine for players and
// reports. Every transition runs in one transaction with the entity row
// locked, so two admins racing on the same entity serialize and the loser
// fails its precondition instead of overwriting the winner.
type AdminReviewFlow interface {
	ApproveEntity(ctx context.Context, entityType models.EntityType, entityID string, adminID uint) (*dto.ReviewDecisionResponse, error)
	RejectEntity(ctx context.Context, entityType models.EntityType, entityID string, adminID uint, reason string) (*dto.ReviewDecisionResponse, error)
	ReviewQueue(ctx context.Context) (*dto.ReviewQueueResponse, error)
	DashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error)
}

// AdminReviewFlowImpl implements the admin review business flow
type AdminReviewFlowImpl struct {
	playerRepo       repository.PlayerRepository
	reportRepo       repository.ReportRepository
	requestRepo      repository.ChangeRequestRepository
	notificationRepo repository.NotificationRepository
	adminRepo        repository.AdminRepository
	rc               *redis.Client
	cacheConfig      *config.CacheConfig
	db               *gorm.DB
}

// NewAdminReviewFlow creates a new admin review flow instance
func NewAdminReviewFlow(
	playerRepo repository.PlayerRepository,
	reportRepo repository.ReportRepository,
	requestRepo repository.ChangeRequestRepository,
	notificationRepo repository.NotificationRepository,
	adminRepo repository.AdminRepository,
	rc *redis.Client,
	cacheConfig *config.CacheConfig,
	db *gorm.DB,
) AdminReviewFlow {
	return &AdminReviewFlowImpl{
		playerRepo:       playerRepo,
		reportRepo:       reportRepo,
		requestRepo:      requestRepo,
		notificationRepo: notificationRepo,
		adminRepo:        adminRepo,
		rc:               rc,
		cacheConfig:      cacheConfig,
		db:               db,
	}
}

// reviewedEntity is the slice of entity state the state machine touches,
// loaded and stored through the per-type repositories.
type reviewedEntity struct {
	id               string
	displayName      string
	status           models.ApprovalStatus
	createdByScoutID *uint
	reportID         *string
	playerID         *string
}

func (s *AdminReviewFlowImpl) loadForUpdate(ctx context.Context, entityType models.EntityType, entityID string) (*reviewedEntity, error) {
	switch entityType {
	case models.EntityTypePlayer:
		player, err := s.playerRepo.ByIdentifierForUpdate(ctx, entityID)
		if err != nil {
			return nil, err
		}
		if player == nil {
			return nil, ErrPlayerNotFound
		}
		return &reviewedEntity{
			id:               player.ID,
			displayName:      player.DisplayName(),
			status:           player.ApprovalStatus,
			createdByScoutID: player.CreatedByScoutID,
			playerID:         &player.ID,
		}, nil
	case models.EntityTypeReport:
		report, err := s.reportRepo.ByIdentifierForUpdate(ctx, entityID)
		if err != nil {
			return nil, err
		}
		if report == nil {
			return nil, ErrReportNotFound
		}
		return &reviewedEntity{
			id:               report.ID,
			displayName:      report.DisplayName(),
			status:           report.ApprovalStatus,
			createdByScoutID: report.CreatedByScoutID,
			reportID:         &report.ID,
		}, nil
	default:
		return nil, ErrInvalidEntityType
	}
}

func (s *AdminReviewFlowImpl) storeDecision(ctx context.Context, entityType models.EntityType, entityID string, next models.ApprovalStatus, adminID uint, reason *string) error {
	now := utils.UTCNow()
	switch entityType {
	case models.EntityTypePlayer:
		player, err := s.playerRepo.ByIdentifier(ctx, entityID)
		if err != nil {
			return err
		}
		player.ApprovalStatus = next
		player.RejectionReason = reason
		switch next {
		case models.ApprovalStatusApproved, models.ApprovalStatusRejected:
			player.ApprovedByAdminID = &adminID
			player.ApprovalDate = &now
		case models.ApprovalStatusPending:
			player.ApprovedByAdminID = nil
			player.ApprovalDate = nil
		}
		return s.playerRepo.Update(ctx, player)
	case models.EntityTypeReport:
		report, err := s.reportRepo.ByIdentifier(ctx, entityID)
		if err != nil {
			return err
		}
		report.ApprovalStatus = next
		report.RejectionReason = reason
		switch next {
		case models.ApprovalStatusApproved, models.ApprovalStatusRejected:
			report.ApprovedByAdminID = &adminID
			report.ApprovalDate = &now
		case models.ApprovalStatusPending:
			report.ApprovedByAdminID = nil
			report.ApprovalDate = nil
		}
		return s.reportRepo.Update(ctx, report)
	default:
		return ErrInvalidEntityType
	}
}

// ApproveEntity moves a pending entity to approved. The submitter is not
// notified on plain approval.
func (s *AdminReviewFlowImpl) ApproveEntity(ctx context.Context, entityType models.EntityType, entityID string, adminID uint) (*dto.ReviewDecisionResponse, error) {
	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		admin, err := getAdmin(txCtx, s.adminRepo, adminID)
		if err != nil {
			return err
		}

		entity, err := s.loadForUpdate(txCtx, entityType, entityID)
		if err != nil {
			return err
		}
		if !entity.status.CanTransitionTo(models.ApprovalStatusApproved) {
			return ErrEntityNotPending
		}

		return s.storeDecision(txCtx, entityType, entityID, models.ApprovalStatusApproved, admin.ID, nil)
	})
	if err != nil {
		if IsEntityNotPending(err) || IsPlayerNotFound(err) || IsReportNotFound(err) || IsAdminNotFound(err) || IsInvalidEntityType(err) {
			return nil, err
		}
		return nil, NewBusinessError("ADMIN_APPROVE_FAILED", "Failed to approve entity", err)
	}

	s.invalidateStatsCache(ctx)

	return &dto.ReviewDecisionResponse{
		Message:  fmt.Sprintf("%s approved successfully", entityType),
		EntityID: entityID,
		Status:   models.ApprovalStatusApproved.String(),
	}, nil
}

// RejectEntity moves a pending entity to rejected and notifies the
// submitter with the reason. The reason may be empty.
func (s *AdminReviewFlowImpl) RejectEntity(ctx context.Context, entityType models.EntityType, entityID string, adminID uint, reason string) (*dto.ReviewDecisionResponse, error) {
	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		admin, err := getAdmin(txCtx, s.adminRepo, adminID)
		if err != nil {
			return err
		}

		entity, err := s.loadForUpdate(txCtx, entityType, entityID)
		if err != nil {
			return err
		}
		if !entity.status.CanTransitionTo(models.ApprovalStatusRejected) {
			return ErrEntityNotPending
		}

		var reasonPtr *string
		if reason != "" {
			reasonPtr = &reason
		}
		if err := s.storeDecision(txCtx, entityType, entityID, models.ApprovalStatusRejected, admin.ID, reasonPtr); err != nil {
			return err
		}

		if entity.createdByScoutID == nil {
			return nil
		}
		message := fmt.Sprintf("Your %s %q was rejected.", entityType, entity.displayName)
		if reason != "" {
			message = fmt.Sprintf("%s Reason: %s", message, reason)
		}
		return s.notificationRepo.Save(txCtx, &models.Notification{
			ScoutID:  *entity.createdByScoutID,
			Type:     models.NotificationTypeEntityRejected,
			Title:    fmt.Sprintf("%s rejected", entityType),
			Message:  message,
			ReportID: entity.reportID,
			PlayerID: entity.playerID,
		})
	})
	if err != nil {
		if IsEntityNotPending(err) || IsPlayerNotFound(err) || IsReportNotFound(err) || IsAdminNotFound(err) || IsInvalidEntityType(err) {
			return nil, err
		}
		return nil, NewBusinessError("ADMIN_REJECT_FAILED", "Failed to reject entity", err)
	}

	s.invalidateStatsCache(ctx)

	return &dto.ReviewDecisionResponse{
		Message:  fmt.Sprintf("%s rejected successfully", entityType),
		EntityID: entityID,
		Status:   models.ApprovalStatusRejected.String(),
	}, nil
}

// ReviewQueue lists all pending players and reports, oldest first, so
// admins work submissions in arrival order.
func (s *AdminReviewFlowImpl) ReviewQueue(ctx context.Context) (*dto.ReviewQueueResponse, error) {
	pending := models.ApprovalStatusPending

	players, err := s.playerRepo.ByFilter(ctx, models.PlayerFilter{ApprovalStatus: &pending}, "created_at ASC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("REVIEW_QUEUE_FAILED", "Failed to list pending players", err)
	}
	reports, err := s.reportRepo.ByFilter(ctx, models.ReportFilter{ApprovalStatus: &pending}, "created_at ASC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("REVIEW_QUEUE_FAILED", "Failed to list pending reports", err)
	}

	playerItems := make([]dto.PlayerDTO, 0, len(players))
	for _, p := range players {
		playerItems = append(playerItems, ToPlayerDTO(*p))
	}
	reportItems := make([]dto.ReportDTO, 0, len(reports))
	for _, r := range reports {
		reportItems = append(reportItems, ToReportDTO(*r))
	}

	return &dto.ReviewQueueResponse{
		Message: "Review queue retrieved successfully",
		Players: playerItems,
		Reports: reportItems,
	}, nil
}

// DashboardStats returns per-status entity counts and the pending request
// backlog. Counts are served from Redis for a short window; the cache is
// best-effort and dropped on every transition.
func (s *AdminReviewFlowImpl) DashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	if s.rc != nil && s.cacheConfig != nil && s.cacheConfig.Enabled {
		key := redisKey(*s.cacheConfig, adminStatsCacheKey)
		if bs, err := s.rc.Get(ctx, key).Bytes(); err == nil && len(bs) > 0 {
			var cached dto.DashboardStatsResponse
			if err := json.Unmarshal(bs, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	playerCounts, err := s.playerRepo.CountByStatus(ctx)
	if err != nil {
		return nil, NewBusinessError("ADMIN_STATS_FAILED", "Failed to count players", err)
	}
	reportCounts, err := s.reportRepo.CountByStatus(ctx)
	if err != nil {
		return nil, NewBusinessError("ADMIN_STATS_FAILED", "Failed to count reports", err)
	}
	pending := models.RequestStatusPending
	pendingRequests, err := s.requestRepo.Count(ctx, models.ChangeRequestFilter{Status: &pending})
	if err != nil {
		return nil, NewBusinessError("ADMIN_STATS_FAILED", "Failed to count pending requests", err)
	}

	resp := &dto.DashboardStatsResponse{
		Message:         "Stats retrieved successfully",
		Players:         statusCountsToMap(playerCounts),
		Reports:         statusCountsToMap(reportCounts),
		PendingRequests: pendingRequests,
		GeneratedAt:     utils.UTCNowRFC3339(),
	}

	if s.rc != nil && s.cacheConfig != nil && s.cacheConfig.Enabled {
		if bs, err := json.Marshal(resp); err == nil {
			_ = s.rc.Set(ctx, redisKey(*s.cacheConfig, adminStatsCacheKey), bs, adminStatsCacheTTL).Err()
		}
	}

	return resp, nil
}

func (s *AdminReviewFlowImpl) invalidateStatsCache(ctx context.Context) {
	if s.rc == nil || s.cacheConfig == nil || !s.cacheConfig.Enabled {
		return
	}
	_ = s.rc.Del(ctx, redisKey(*s.cacheConfig, adminStatsCacheKey)).Err()
}

func statusCountsToMap(counts map[models.ApprovalStatus]int64) map[string]int64 {
	out := map[string]int64{
		models.ApprovalStatusPending.String():  0,
		models.ApprovalStatusApproved.String(): 0,
		models.ApprovalStatusRejected.String(): 0,
	}
	for status, n := range counts {
		out[status.String()] = n
	}
	return out
}
