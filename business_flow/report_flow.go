// Package businessflow contains the core business logic and use cases for approval workflows
package businessflow

import (
	"context"
	"strings"

	"github.com/scoutdesk/scoutdesk/app/dto"
	"github.com/scoutdesk/scoutdesk/models"
	"github.com/scoutdesk/scoutdesk/repository"
	"github.com/scoutdesk/scoutdesk/utils"
	"gorm.io/gorm"
)

// ReportFlow handles report submission and listing
type ReportFlow interface {
	CreateReport(ctx context.Context, req *dto.CreateReportRequest, actor Actor) (*dto.CreateReportResponse, error)
	GetReport(ctx context.Context, id string) (*dto.ReportDTO, error)
	ListReports(ctx context.Context, scoutID uint, filter dto.ListEntitiesFilter) (*dto.ListReportsResponse, error)
}

// ReportFlowImpl implements the report business flow
type ReportFlowImpl struct {
	reportRepo repository.ReportRepository
	playerRepo repository.PlayerRepository
	scoutRepo  repository.ScoutRepository
	adminRepo  repository.AdminRepository
	allocator  IdentifierAllocator
	db         *gorm.DB
}

// NewReportFlow creates a new report flow instance
func NewReportFlow(
	reportRepo repository.ReportRepository,
	playerRepo repository.PlayerRepository,
	scoutRepo repository.ScoutRepository,
	adminRepo repository.AdminRepository,
	allocator IdentifierAllocator,
	db *gorm.DB,
) ReportFlow {
	return &ReportFlowImpl{
		reportRepo: reportRepo,
		playerRepo: playerRepo,
		scoutRepo:  scoutRepo,
		adminRepo:  adminRepo,
		allocator:  allocator,
		db:         db,
	}
}

// CreateReport allocates an identifier and stores the report against an
// existing player. Scout submissions enter the review queue as pending;
// admin submissions are approved immediately with no creator scout.
func (s *ReportFlowImpl) CreateReport(ctx context.Context, req *dto.CreateReportRequest, actor Actor) (*dto.CreateReportResponse, error) {
	if req == nil || strings.TrimSpace(req.Text) == "" {
		return nil, NewBusinessError("CREATE_REPORT_FAILED", "text is required", ErrReportTextRequired)
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 10) {
		return nil, NewBusinessError("CREATE_REPORT_FAILED", "rating must be between 1 and 10", ErrRatingOutOfRange)
	}

	var report models.Report

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		player, err := s.playerRepo.ByIdentifier(txCtx, req.PlayerID)
		if err != nil {
			return err
		}
		if player == nil {
			return ErrPlayerNotFound
		}

		id, err := s.allocator.Allocate(txCtx, models.EntityTypeReport)
		if err != nil {
			return err
		}

		report = models.Report{
			ID:       id,
			PlayerID: player.ID,
			Text:     strings.TrimSpace(req.Text),
			VideoURL: req.VideoURL,
			Rating:   req.Rating,
		}

		if actor.IsAdmin() {
			admin, err := getAdmin(txCtx, s.adminRepo, *actor.AdminID)
			if err != nil {
				return err
			}
			report.ApprovalStatus = models.ApprovalStatusApproved
			report.ApprovedByAdminID = &admin.ID
			report.ApprovalDate = utils.UTCNowPtr()
		} else {
			scout, err := getScout(txCtx, s.scoutRepo, *actor.ScoutID)
			if err != nil {
				return err
			}
			report.ApprovalStatus = models.ApprovalStatusPending
			report.CreatedByScoutID = &scout.ID
		}

		if err := s.reportRepo.Save(txCtx, &report); err != nil {
			return err
		}
		report.Player = player
		return nil
	})
	if err != nil {
		var be *BusinessError
		if IsAllocationFailed(err) || IsPlayerNotFound(err) || asBusinessError(err, &be) {
			return nil, err
		}
		return nil, NewBusinessError("CREATE_REPORT_FAILED", "Failed to create report", err)
	}

	return &dto.CreateReportResponse{
		Message: "Report created successfully",
		Report:  ToReportDTO(report),
	}, nil
}

// GetReport retrieves a report by identifier
func (s *ReportFlowImpl) GetReport(ctx context.Context, id string) (*dto.ReportDTO, error) {
	report, err := s.reportRepo.ByIdentifier(ctx, id)
	if err != nil {
		return nil, NewBusinessError("GET_REPORT_FAILED", "Failed to get report", err)
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	d := ToReportDTO(*report)
	return &d, nil
}

// ListReports retrieves the scout's own reports, newest first
func (s *ReportFlowImpl) ListReports(ctx context.Context, scoutID uint, filter dto.ListEntitiesFilter) (*dto.ListReportsResponse, error) {
	limit, offset, err := paginate(filter.Page, filter.PageSize)
	if err != nil {
		return nil, err
	}

	rf := models.ReportFilter{CreatedByScoutID: &scoutID}
	if filter.Status != nil && *filter.Status != "" {
		st := models.ApprovalStatus(*filter.Status)
		if st.Valid() {
			rf.ApprovalStatus = &st
		}
	}

	rows, err := s.reportRepo.ByFilter(ctx, rf, "created_at DESC", limit, offset)
	if err != nil {
		return nil, NewBusinessError("LIST_REPORTS_FAILED", "Failed to list reports", err)
	}
	total, err := s.reportRepo.Count(ctx, rf)
	if err != nil {
		return nil, NewBusinessError("LIST_REPORTS_FAILED", "Failed to count reports", err)
	}

	items := make([]dto.ReportDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, ToReportDTO(*r))
	}

	return &dto.ListReportsResponse{
		Message: "Reports retrieved successfully",
		Items:   items,
		Total:   total,
	}, nil
}
