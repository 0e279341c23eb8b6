// Package businessflow contains the core business logic and use cases for approval workflows
package businessflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/scoutdesk/scoutdesk/app/dto"
	"github.com/scoutdesk/scoutdesk/models"
	"github.com/scoutdesk/scoutdesk/repository"
	"github.com/scoutdesk/scoutdesk/utils"
	"gorm.io/gorm"
)

// AdminRequestFlow resolves change requests. Resolution is exactly-once:
// the request row is locked for the duration of the transaction, so a
// second admin racing on the same request observes the final state and
// fails instead of double-applying.
type AdminRequestFlow interface {
	ListRequests(ctx context.Context, filter dto.AdminListRequestsFilter) (*dto.ListRequestsResponse, error)
	ApproveRequest(ctx context.Context, requestID uint, adminID uint, adminResponse *string) (*dto.ResolveRequestResponse, error)
	RejectRequest(ctx context.Context, requestID uint, adminID uint, adminResponse string) (*dto.ResolveRequestResponse, error)
}

// AdminRequestFlowImpl implements the admin request business flow
type AdminRequestFlowImpl struct {
	requestRepo      repository.ChangeRequestRepository
	playerRepo       repository.PlayerRepository
	reportRepo       repository.ReportRepository
	notificationRepo repository.NotificationRepository
	adminRepo        repository.AdminRepository
	db               *gorm.DB
}

// NewAdminRequestFlow creates a new admin request flow instance
func NewAdminRequestFlow(
	requestRepo repository.ChangeRequestRepository,
	playerRepo repository.PlayerRepository,
	reportRepo repository.ReportRepository,
	notificationRepo repository.NotificationRepository,
	adminRepo repository.AdminRepository,
	db *gorm.DB,
) AdminRequestFlow {
	return &AdminRequestFlowImpl{
		requestRepo:      requestRepo,
		playerRepo:       playerRepo,
		reportRepo:       reportRepo,
		notificationRepo: notificationRepo,
		adminRepo:        adminRepo,
		db:               db,
	}
}

// ListRequests retrieves change requests for the admin, newest first
func (s *AdminRequestFlowImpl) ListRequests(ctx context.Context, filter dto.AdminListRequestsFilter) (*dto.ListRequestsResponse, error) {
	limit, offset, err := paginate(filter.Page, filter.PageSize)
	if err != nil {
		return nil, err
	}

	rf := models.ChangeRequestFilter{}
	if filter.Status != nil && *filter.Status != "" {
		st := models.RequestStatus(*filter.Status)
		if st.Valid() {
			rf.Status = &st
		}
	}
	if filter.EntityType != nil && *filter.EntityType != "" {
		et := models.EntityType(*filter.EntityType)
		if et.Valid() {
			rf.EntityType = &et
		}
	}
	if filter.RequestType != nil && *filter.RequestType != "" {
		rt := models.RequestType(*filter.RequestType)
		if rt.Valid() {
			rf.RequestType = &rt
		}
	}

	rows, err := s.requestRepo.ByFilter(ctx, rf, "id DESC", limit, offset)
	if err != nil {
		return nil, NewBusinessError("ADMIN_LIST_REQUESTS_FAILED", "Failed to list requests", err)
	}
	total, err := s.requestRepo.Count(ctx, rf)
	if err != nil {
		return nil, NewBusinessError("ADMIN_LIST_REQUESTS_FAILED", "Failed to count requests", err)
	}

	items := make([]dto.ChangeRequestDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, ToChangeRequestDTO(*r))
	}

	return &dto.ListRequestsResponse{
		Message: "Requests retrieved successfully",
		Items:   items,
		Total:   total,
	}, nil
}

// ApproveRequest grants a pending request. An edit request re-opens the
// review cycle (entity back to pending); a delete request writes the
// notification first, while the entity still exists to name, then removes
// the entity and every request row attached to it in the same transaction.
func (s *AdminRequestFlowImpl) ApproveRequest(ctx context.Context, requestID uint, adminID uint, adminResponse *string) (*dto.ResolveRequestResponse, error) {
	var request models.ChangeRequest

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		admin, err := getAdmin(txCtx, s.adminRepo, adminID)
		if err != nil {
			return err
		}

		locked, err := s.requestRepo.ByIDForUpdate(txCtx, requestID)
		if err != nil {
			return err
		}
		if locked == nil {
			return ErrRequestNotFound
		}
		if locked.Status.Resolved() {
			return ErrRequestAlreadyResolved
		}
		request = *locked

		switch request.RequestType {
		case models.RequestTypeEdit:
			return s.approveEdit(txCtx, &request, admin.ID, adminResponse)
		case models.RequestTypeDelete:
			return s.approveDelete(txCtx, &request, admin.ID, adminResponse)
		default:
			return ErrInvalidRequestType
		}
	})
	if err != nil {
		switch {
		case IsRequestNotFound(err), IsRequestAlreadyResolved(err), IsAdminNotFound(err),
			IsPlayerNotFound(err), IsReportNotFound(err), IsEntityNotApproved(err), IsInvalidRequestType(err):
			return nil, err
		}
		return nil, NewBusinessError("ADMIN_APPROVE_REQUEST_FAILED", "Failed to approve request", err)
	}

	return &dto.ResolveRequestResponse{
		Message: "Request approved successfully",
		Request: ToChangeRequestDTO(request),
	}, nil
}

// approveEdit sends the entity back through review and marks the request
// approved. The submitter is notified so they know editing is unlocked.
func (s *AdminRequestFlowImpl) approveEdit(ctx context.Context, request *models.ChangeRequest, adminID uint, adminResponse *string) error {
	entity, err := s.lockEntity(ctx, request.EntityType, request.EntityID)
	if err != nil {
		return err
	}
	if !entity.status.CanTransitionTo(models.ApprovalStatusPending) {
		return ErrEntityNotApproved
	}

	if err := s.reopenEntity(ctx, request.EntityType, request.EntityID); err != nil {
		return err
	}

	request.Status = models.RequestStatusApproved
	request.AdminResponse = adminResponse
	request.ResolvedByAdminID = &adminID
	request.ResolvedAt = utils.UTCNowPtr()
	if err := s.requestRepo.Update(ctx, request); err != nil {
		return err
	}

	return s.notificationRepo.Save(ctx, &models.Notification{
		ScoutID:  request.ScoutID,
		Type:     models.NotificationTypeRequestApproved,
		Title:    "Edit request approved",
		Message:  fmt.Sprintf("Your edit request for %s %q was approved. The %s is back in review once you resubmit.", request.EntityType, entity.displayName, request.EntityType),
		ReportID: entity.reportID,
		PlayerID: entity.playerID,
	})
}

// approveDelete removes the entity. The notification is written before the
// delete and carries the denormalized display name, because after the
// cascade there is no row left to name the subject.
func (s *AdminRequestFlowImpl) approveDelete(ctx context.Context, request *models.ChangeRequest, adminID uint, adminResponse *string) error {
	entity, err := s.lockEntity(ctx, request.EntityType, request.EntityID)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("Your delete request for %s %q was approved. The %s has been removed.", request.EntityType, entity.displayName, request.EntityType)
	if adminResponse != nil && *adminResponse != "" {
		message = fmt.Sprintf("%s Admin note: %s", message, *adminResponse)
	}
	if err := s.notificationRepo.Save(ctx, &models.Notification{
		ScoutID: request.ScoutID,
		Type:    models.NotificationTypeEntityDeleted,
		Title:   fmt.Sprintf("%s deleted", request.EntityType),
		Message: message,
	}); err != nil {
		return err
	}

	switch request.EntityType {
	case models.EntityTypePlayer:
		// Requests against the player's reports go first; the reports
		// themselves cascade with the player row.
		reports, err := s.reportRepo.ByFilter(ctx, models.ReportFilter{PlayerID: &request.EntityID}, "", 0, 0)
		if err != nil {
			return err
		}
		for _, report := range reports {
			if err := s.requestRepo.DeleteByEntity(ctx, models.EntityTypeReport, report.ID); err != nil {
				return err
			}
		}
		if err := s.requestRepo.DeleteByEntity(ctx, models.EntityTypePlayer, request.EntityID); err != nil {
			return err
		}
		return s.playerRepo.Delete(ctx, request.EntityID)
	case models.EntityTypeReport:
		if err := s.requestRepo.DeleteByEntity(ctx, models.EntityTypeReport, request.EntityID); err != nil {
			return err
		}
		return s.reportRepo.Delete(ctx, request.EntityID)
	default:
		return ErrInvalidEntityType
	}
}

// RejectRequest denies a pending request with a mandatory admin response.
// The entity is untouched.
func (s *AdminRequestFlowImpl) RejectRequest(ctx context.Context, requestID uint, adminID uint, adminResponse string) (*dto.ResolveRequestResponse, error) {
	adminResponse = strings.TrimSpace(adminResponse)
	if adminResponse == "" {
		return nil, ErrAdminResponseRequired
	}

	var request models.ChangeRequest

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		admin, err := getAdmin(txCtx, s.adminRepo, adminID)
		if err != nil {
			return err
		}

		locked, err := s.requestRepo.ByIDForUpdate(txCtx, requestID)
		if err != nil {
			return err
		}
		if locked == nil {
			return ErrRequestNotFound
		}
		if locked.Status.Resolved() {
			return ErrRequestAlreadyResolved
		}
		request = *locked

		entity, err := s.lockEntity(txCtx, request.EntityType, request.EntityID)
		if err != nil {
			return err
		}

		request.Status = models.RequestStatusRejected
		request.AdminResponse = &adminResponse
		request.ResolvedByAdminID = &admin.ID
		request.ResolvedAt = utils.UTCNowPtr()
		if err := s.requestRepo.Update(txCtx, &request); err != nil {
			return err
		}

		return s.notificationRepo.Save(txCtx, &models.Notification{
			ScoutID:  request.ScoutID,
			Type:     models.NotificationTypeRequestRejected,
			Title:    fmt.Sprintf("%s request rejected", request.RequestType),
			Message:  fmt.Sprintf("Your %s request for %s %q was rejected: %s", request.RequestType, request.EntityType, entity.displayName, adminResponse),
			ReportID: entity.reportID,
			PlayerID: entity.playerID,
		})
	})
	if err != nil {
		switch {
		case IsRequestNotFound(err), IsRequestAlreadyResolved(err), IsAdminNotFound(err),
			IsPlayerNotFound(err), IsReportNotFound(err):
			return nil, err
		}
		return nil, NewBusinessError("ADMIN_REJECT_REQUEST_FAILED", "Failed to reject request", err)
	}

	return &dto.ResolveRequestResponse{
		Message: "Request rejected successfully",
		Request: ToChangeRequestDTO(request),
	}, nil
}

// lockEntity loads the request's subject with a row lock
func (s *AdminRequestFlowImpl) lockEntity(ctx context.Context, entityType models.EntityType, entityID string) (*reviewedEntity, error) {
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

// reopenEntity resets the entity to pending and clears reviewer metadata
func (s *AdminRequestFlowImpl) reopenEntity(ctx context.Context, entityType models.EntityType, entityID string) error {
	switch entityType {
	case models.EntityTypePlayer:
		player, err := s.playerRepo.ByIdentifier(ctx, entityID)
		if err != nil {
			return err
		}
		player.ApprovalStatus = models.ApprovalStatusPending
		player.ApprovedByAdminID = nil
		player.ApprovalDate = nil
		player.RejectionReason = nil
		return s.playerRepo.Update(ctx, player)
	case models.EntityTypeReport:
		report, err := s.reportRepo.ByIdentifier(ctx, entityID)
		if err != nil {
			return err
		}
		report.ApprovalStatus = models.ApprovalStatusPending
		report.ApprovedByAdminID = nil
		report.ApprovalDate = nil
		report.RejectionReason = nil
		return s.reportRepo.Update(ctx, report)
	default:
		return ErrInvalidEntityType
	}
}
