// Package businessflow contains the core business logic and use cases for approval workflows
package businessflow

import (
	"context"
	"strings"

	"github.com/scoutdesk/scoutdesk/app/dto"
	"github.com/scoutdesk/scoutdesk/models"
	"github.com/scoutdesk/scoutdesk/repository"
	"gorm.io/gorm"
)

// RequestFlow handles change requests raised by scouts against their
// approved submissions
type RequestFlow interface {
	SubmitRequest(ctx context.Context, scoutID uint, req *dto.SubmitRequestRequest) (*dto.SubmitRequestResponse, error)
	ListRequests(ctx context.Context, scoutID uint, filter dto.ListRequestsFilter) (*dto.ListRequestsResponse, error)
}

// RequestFlowImpl implements the change request business flow
type RequestFlowImpl struct {
	requestRepo repository.ChangeRequestRepository
	playerRepo  repository.PlayerRepository
	reportRepo  repository.ReportRepository
	scoutRepo   repository.ScoutRepository
	db          *gorm.DB
}

// NewRequestFlow creates a new request flow instance
func NewRequestFlow(
	requestRepo repository.ChangeRequestRepository,
	playerRepo repository.PlayerRepository,
	reportRepo repository.ReportRepository,
	scoutRepo repository.ScoutRepository,
	db *gorm.DB,
) RequestFlow {
	return &RequestFlowImpl{
		requestRepo: requestRepo,
		playerRepo:  playerRepo,
		reportRepo:  reportRepo,
		scoutRepo:   scoutRepo,
		db:          db,
	}
}

// SubmitRequest records an edit or delete request. The entity must exist
// and be approved, the caller must be its original submitter, the reason
// must carry enough substance, and at most one pending request may exist
// per entity. A violation rejects the submission; nothing is queued or
// merged.
func (s *RequestFlowImpl) SubmitRequest(ctx context.Context, scoutID uint, req *dto.SubmitRequestRequest) (*dto.SubmitRequestResponse, error) {
	if req == nil {
		return nil, NewBusinessError("SUBMIT_REQUEST_FAILED", "request body is required", nil)
	}

	entityType := models.EntityType(req.EntityType)
	if entityType != models.EntityTypePlayer && entityType != models.EntityTypeReport {
		return nil, ErrInvalidEntityType
	}
	requestType := models.RequestType(req.RequestType)
	if !requestType.Valid() {
		return nil, ErrInvalidRequestType
	}
	reason := strings.TrimSpace(req.Reason)
	if len(reason) < models.MinRequestReasonLength {
		return nil, NewBusinessErrorf("SUBMIT_REQUEST_FAILED", "reason must be at least %d characters",
			ErrReasonTooShort, models.MinRequestReasonLength)
	}

	var request models.ChangeRequest

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		scout, err := getScout(txCtx, s.scoutRepo, scoutID)
		if err != nil {
			return err
		}

		status, createdBy, err := s.entityState(txCtx, entityType, req.EntityID)
		if err != nil {
			return err
		}
		if status != models.ApprovalStatusApproved {
			return ErrEntityNotApproved
		}
		if createdBy == nil || *createdBy != scout.ID {
			return ErrNotRequestSubmitter
		}

		pending, err := s.requestRepo.PendingByEntity(txCtx, entityType, req.EntityID)
		if err != nil {
			return err
		}
		if pending != nil {
			return ErrDuplicatePendingRequest
		}

		request = models.ChangeRequest{
			EntityType:  entityType,
			EntityID:    req.EntityID,
			ScoutID:     scout.ID,
			RequestType: requestType,
			Reason:      reason,
			Status:      models.RequestStatusPending,
		}
		return s.requestRepo.Save(txCtx, &request)
	})
	if err != nil {
		var be *BusinessError
		switch {
		case IsEntityNotApproved(err), IsNotRequestSubmitter(err), IsDuplicatePendingRequest(err),
			IsPlayerNotFound(err), IsReportNotFound(err), IsScoutNotFound(err), IsScoutInactive(err),
			asBusinessError(err, &be):
			return nil, err
		}
		return nil, NewBusinessError("SUBMIT_REQUEST_FAILED", "Failed to submit request", err)
	}

	return &dto.SubmitRequestResponse{
		Message: "Request submitted successfully",
		Request: ToChangeRequestDTO(request),
	}, nil
}

func (s *RequestFlowImpl) entityState(ctx context.Context, entityType models.EntityType, entityID string) (models.ApprovalStatus, *uint, error) {
	switch entityType {
	case models.EntityTypePlayer:
		player, err := s.playerRepo.ByIdentifier(ctx, entityID)
		if err != nil {
			return "", nil, err
		}
		if player == nil {
			return "", nil, ErrPlayerNotFound
		}
		return player.ApprovalStatus, player.CreatedByScoutID, nil
	case models.EntityTypeReport:
		report, err := s.reportRepo.ByIdentifier(ctx, entityID)
		if err != nil {
			return "", nil, err
		}
		if report == nil {
			return "", nil, ErrReportNotFound
		}
		return report.ApprovalStatus, report.CreatedByScoutID, nil
	default:
		return "", nil, ErrInvalidEntityType
	}
}

// ListRequests retrieves the scout's own requests, newest first
func (s *RequestFlowImpl) ListRequests(ctx context.Context, scoutID uint, filter dto.ListRequestsFilter) (*dto.ListRequestsResponse, error) {
	limit, offset, err := paginate(filter.Page, filter.PageSize)
	if err != nil {
		return nil, err
	}

	rf := models.ChangeRequestFilter{ScoutID: &scoutID}
	if filter.Status != nil && *filter.Status != "" {
		st := models.RequestStatus(*filter.Status)
		if st.Valid() {
			rf.Status = &st
		}
	}

	rows, err := s.requestRepo.ByFilter(ctx, rf, "id DESC", limit, offset)
	if err != nil {
		return nil, NewBusinessError("LIST_REQUESTS_FAILED", "Failed to list requests", err)
	}
	total, err := s.requestRepo.Count(ctx, rf)
	if err != nil {
		return nil, NewBusinessError("LIST_REQUESTS_FAILED", "Failed to count requests", err)
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
