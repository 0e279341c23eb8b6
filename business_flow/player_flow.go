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

// PlayerFlow handles player submission and listing
type PlayerFlow interface {
	CreatePlayer(ctx context.Context, req *dto.CreatePlayerRequest, actor Actor) (*dto.CreatePlayerResponse, error)
	GetPlayer(ctx context.Context, id string) (*dto.PlayerDTO, error)
	ListPlayers(ctx context.Context, scoutID uint, filter dto.ListEntitiesFilter) (*dto.ListPlayersResponse, error)
}

// PlayerFlowImpl implements the player business flow
type PlayerFlowImpl struct {
	playerRepo repository.PlayerRepository
	scoutRepo  repository.ScoutRepository
	adminRepo  repository.AdminRepository
	allocator  IdentifierAllocator
	db         *gorm.DB
}

// NewPlayerFlow creates a new player flow instance
func NewPlayerFlow(
	playerRepo repository.PlayerRepository,
	scoutRepo repository.ScoutRepository,
	adminRepo repository.AdminRepository,
	allocator IdentifierAllocator,
	db *gorm.DB,
) PlayerFlow {
	return &PlayerFlowImpl{
		playerRepo: playerRepo,
		scoutRepo:  scoutRepo,
		adminRepo:  adminRepo,
		allocator:  allocator,
		db:         db,
	}
}

// CreatePlayer allocates an identifier and stores the player. Scout
// submissions enter the review queue as pending; admin submissions are
// approved immediately with no creator scout.
func (s *PlayerFlowImpl) CreatePlayer(ctx context.Context, req *dto.CreatePlayerRequest, actor Actor) (*dto.CreatePlayerResponse, error) {
	if req == nil || strings.TrimSpace(req.PlayerName) == "" {
		return nil, NewBusinessError("CREATE_PLAYER_FAILED", "player_name is required", ErrPlayerNameRequired)
	}

	var player models.Player

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		id, err := s.allocator.Allocate(txCtx, models.EntityTypePlayer)
		if err != nil {
			return err
		}

		player = models.Player{
			ID:          id,
			PlayerName:  strings.TrimSpace(req.PlayerName),
			Position:    req.Position,
			TeamName:    req.TeamName,
			Nationality: req.Nationality,
			BirthDate:   utils.TimeToUTCPtr(req.BirthDate),
			Attributes:  req.Attributes,
		}
		if player.Attributes == nil {
			player.Attributes = []string{}
		}

		if actor.IsAdmin() {
			admin, err := getAdmin(txCtx, s.adminRepo, *actor.AdminID)
			if err != nil {
				return err
			}
			player.ApprovalStatus = models.ApprovalStatusApproved
			player.ApprovedByAdminID = &admin.ID
			player.ApprovalDate = utils.UTCNowPtr()
		} else {
			scout, err := getScout(txCtx, s.scoutRepo, *actor.ScoutID)
			if err != nil {
				return err
			}
			player.ApprovalStatus = models.ApprovalStatusPending
			player.CreatedByScoutID = &scout.ID
		}

		return s.playerRepo.Save(txCtx, &player)
	})
	if err != nil {
		var be *BusinessError
		if IsAllocationFailed(err) || asBusinessError(err, &be) {
			return nil, err
		}
		return nil, NewBusinessError("CREATE_PLAYER_FAILED", "Failed to create player", err)
	}

	return &dto.CreatePlayerResponse{
		Message: "Player created successfully",
		Player:  ToPlayerDTO(player),
	}, nil
}

// GetPlayer retrieves a player by identifier
func (s *PlayerFlowImpl) GetPlayer(ctx context.Context, id string) (*dto.PlayerDTO, error) {
	player, err := s.playerRepo.ByIdentifier(ctx, id)
	if err != nil {
		return nil, NewBusinessError("GET_PLAYER_FAILED", "Failed to get player", err)
	}
	if player == nil {
		return nil, ErrPlayerNotFound
	}
	d := ToPlayerDTO(*player)
	return &d, nil
}

// ListPlayers retrieves the scout's own players, newest first
func (s *PlayerFlowImpl) ListPlayers(ctx context.Context, scoutID uint, filter dto.ListEntitiesFilter) (*dto.ListPlayersResponse, error) {
	limit, offset, err := paginate(filter.Page, filter.PageSize)
	if err != nil {
		return nil, err
	}

	pf := models.PlayerFilter{CreatedByScoutID: &scoutID}
	if filter.Status != nil && *filter.Status != "" {
		st := models.ApprovalStatus(*filter.Status)
		if st.Valid() {
			pf.ApprovalStatus = &st
		}
	}

	rows, err := s.playerRepo.ByFilter(ctx, pf, "created_at DESC", limit, offset)
	if err != nil {
		return nil, NewBusinessError("LIST_PLAYERS_FAILED", "Failed to list players", err)
	}
	total, err := s.playerRepo.Count(ctx, pf)
	if err != nil {
		return nil, NewBusinessError("LIST_PLAYERS_FAILED", "Failed to count players", err)
	}

	items := make([]dto.PlayerDTO, 0, len(rows))
	for _, p := range rows {
		items = append(items, ToPlayerDTO(*p))
	}

	return &dto.ListPlayersResponse{
		Message: "Players retrieved successfully",
		Items:   items,
		Total:   total,
	}, nil
}
