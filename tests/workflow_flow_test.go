// Package tests contains test cases for models and repository packages to avoid circular imports
package tests

import (
	"bytes"
	"strings"
	"testing"

	"github.com/scoutdesk/scoutdesk/app/dto"
	businessflow "github.com/scoutdesk/scoutdesk/business_flow"
	"github.com/scoutdesk/scoutdesk/models"
	"github.com/scoutdesk/scoutdesk/repository"
	testingutil "github.com/scoutdesk/scoutdesk/testing"
	"github.com/scoutdesk/scoutdesk/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// flowEnv wires the full flow stack against a test database
type flowEnv struct {
	fixtures *testingutil.TestFixtures

	playerFlow       businessflow.PlayerFlow
	reportFlow       businessflow.ReportFlow
	requestFlow      businessflow.RequestFlow
	notificationFlow businessflow.NotificationFlow
	adminReviewFlow  businessflow.AdminReviewFlow
	adminRequestFlow businessflow.AdminRequestFlow
	adminExportFlow  businessflow.AdminExportFlow

	notificationRepo repository.NotificationRepository
	requestRepo      repository.ChangeRequestRepository
	playerRepo       repository.PlayerRepository
	reportRepo       repository.ReportRepository
}

func newFlowEnv(testDB *testingutil.TestDB) *flowEnv {
	db := testDB.DB

	scoutRepo := repository.NewScoutRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	counterRepo := repository.NewSequenceCounterRepository(db)
	playerRepo := repository.NewPlayerRepository(db)
	reportRepo := repository.NewReportRepository(db)
	requestRepo := repository.NewChangeRequestRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	allocator := businessflow.NewIdentifierAllocator(counterRepo)

	return &flowEnv{
		fixtures:         testingutil.NewTestFixtures(testDB),
		playerFlow:       businessflow.NewPlayerFlow(playerRepo, scoutRepo, adminRepo, allocator, db),
		reportFlow:       businessflow.NewReportFlow(reportRepo, playerRepo, scoutRepo, adminRepo, allocator, db),
		requestFlow:      businessflow.NewRequestFlow(requestRepo, playerRepo, reportRepo, scoutRepo, db),
		notificationFlow: businessflow.NewNotificationFlow(notificationRepo, scoutRepo),
		adminReviewFlow:  businessflow.NewAdminReviewFlow(playerRepo, reportRepo, requestRepo, notificationRepo, adminRepo, nil, nil, db),
		adminRequestFlow: businessflow.NewAdminRequestFlow(requestRepo, playerRepo, reportRepo, notificationRepo, adminRepo, db),
		adminExportFlow:  businessflow.NewAdminExportFlow(reportRepo),
		notificationRepo: notificationRepo,
		requestRepo:      requestRepo,
		playerRepo:       playerRepo,
		reportRepo:       reportRepo,
	}
}

func scoutActor(id uint) businessflow.Actor { return businessflow.Actor{ScoutID: &id} }
func adminActor(id uint) businessflow.Actor { return businessflow.Actor{AdminID: &id} }

func TestPlayerCreationFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		env := newFlowEnv(testDB)
		ctx := testingutil.CreateTestContext()

		scout, err := env.fixtures.CreateTestScout()
		require.NoError(t, err)
		admin, err := env.fixtures.CreateTestAdmin()
		require.NoError(t, err)

		t.Run("ScoutSubmissionEntersReview", func(t *testing.T) {
			resp, err := env.playerFlow.CreatePlayer(ctx, &dto.CreatePlayerRequest{
				PlayerName: "Mateo Silva",
				Position:   utils.ToPtr("Winger"),
				Attributes: []string{"pace", "dribbling"},
			}, scoutActor(scout.ID))
			require.NoError(t, err)
			assert.Equal(t, "PLY-00001", resp.Player.ID)
			assert.Equal(t, "pending", resp.Player.ApprovalStatus)
			require.NotNil(t, resp.Player.CreatedByScoutID)
			assert.Equal(t, scout.ID, *resp.Player.CreatedByScoutID)
		})

		t.Run("AdminSubmissionIsAutoApproved", func(t *testing.T) {
			resp, err := env.playerFlow.CreatePlayer(ctx, &dto.CreatePlayerRequest{
				PlayerName: "Ivan Petrov",
			}, adminActor(admin.ID))
			require.NoError(t, err)
			assert.Equal(t, "PLY-00002", resp.Player.ID)
			assert.Equal(t, "approved", resp.Player.ApprovalStatus)
			assert.Nil(t, resp.Player.CreatedByScoutID)
		})

		t.Run("IdentifiersAreSequential", func(t *testing.T) {
			resp, err := env.playerFlow.CreatePlayer(ctx, &dto.CreatePlayerRequest{
				PlayerName: "Theo Mbeki",
			}, scoutActor(scout.ID))
			require.NoError(t, err)
			assert.Equal(t, "PLY-00003", resp.Player.ID)
		})

		t.Run("EmptyNameRejected", func(t *testing.T) {
			_, err := env.playerFlow.CreatePlayer(ctx, &dto.CreatePlayerRequest{
				PlayerName: "   ",
			}, scoutActor(scout.ID))
			assert.True(t, businessflow.IsPlayerNameRequired(err))
		})

		t.Run("InactiveScoutRejected", func(t *testing.T) {
			inactive, err := env.fixtures.CreateInactiveTestScout()
			require.NoError(t, err)
			_, err = env.playerFlow.CreatePlayer(ctx, &dto.CreatePlayerRequest{
				PlayerName: "Blocked Player",
			}, scoutActor(inactive.ID))
			assert.True(t, businessflow.IsScoutInactive(err))
		})

		t.Run("GetPlayerNotFound", func(t *testing.T) {
			_, err := env.playerFlow.GetPlayer(ctx, "PLY-99999")
			assert.True(t, businessflow.IsPlayerNotFound(err))
		})

		t.Run("ListOwnPlayers", func(t *testing.T) {
			resp, err := env.playerFlow.ListPlayers(ctx, scout.ID, dto.ListEntitiesFilter{})
			require.NoError(t, err)
			assert.Equal(t, int64(2), resp.Total)
			// newest first
			assert.Equal(t, "PLY-00003", resp.Items[0].ID)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestReportCreationFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		env := newFlowEnv(testDB)
		ctx := testingutil.CreateTestContext()

		scout, err := env.fixtures.CreateTestScout()
		require.NoError(t, err)
		player, err := env.fixtures.CreateTestPlayer("PLY-00001", models.ApprovalStatusApproved, &scout.ID)
		require.NoError(t, err)

		year := utils.UTCNowFormat("2006")

		t.Run("CreateReport", func(t *testing.T) {
			resp, err := env.reportFlow.CreateReport(ctx, &dto.CreateReportRequest{
				PlayerID: player.ID,
				Text:     "Excellent pressing triggers and work rate off the ball.",
				Rating:   utils.ToPtr(8),
			}, scoutActor(scout.ID))
			require.NoError(t, err)
			assert.Equal(t, "REP-"+year+"-00001", resp.Report.ID)
			assert.Equal(t, "pending", resp.Report.ApprovalStatus)
			assert.Equal(t, player.PlayerName, resp.Report.PlayerName)
		})

		t.Run("UnknownPlayerRejected", func(t *testing.T) {
			_, err := env.reportFlow.CreateReport(ctx, &dto.CreateReportRequest{
				PlayerID: "PLY-99999",
				Text:     "Report against a player that does not exist.",
			}, scoutActor(scout.ID))
			assert.True(t, businessflow.IsPlayerNotFound(err))
		})

		t.Run("RatingOutOfRangeRejected", func(t *testing.T) {
			_, err := env.reportFlow.CreateReport(ctx, &dto.CreateReportRequest{
				PlayerID: player.ID,
				Text:     "Rating outside the accepted scale.",
				Rating:   utils.ToPtr(11),
			}, scoutActor(scout.ID))
			assert.True(t, businessflow.IsRatingOutOfRange(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestAdminReviewFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		env := newFlowEnv(testDB)
		ctx := testingutil.CreateTestContext()

		scout, err := env.fixtures.CreateTestScout()
		require.NoError(t, err)
		admin, err := env.fixtures.CreateTestAdmin()
		require.NoError(t, err)

		pendingPlayer, err := env.fixtures.CreateTestPlayer("PLY-00001", models.ApprovalStatusPending, &scout.ID)
		require.NoError(t, err)
		rejectablePlayer, err := env.fixtures.CreateTestPlayer("PLY-00002", models.ApprovalStatusPending, &scout.ID)
		require.NoError(t, err)

		t.Run("ApprovePendingEntity", func(t *testing.T) {
			resp, err := env.adminReviewFlow.ApproveEntity(ctx, models.EntityTypePlayer, pendingPlayer.ID, admin.ID)
			require.NoError(t, err)
			assert.Equal(t, "approved", resp.Status)

			loaded, err := env.playerRepo.ByIdentifier(ctx, pendingPlayer.ID)
			require.NoError(t, err)
			assert.Equal(t, models.ApprovalStatusApproved, loaded.ApprovalStatus)
			require.NotNil(t, loaded.ApprovedByAdminID)
			assert.Equal(t, admin.ID, *loaded.ApprovedByAdminID)
			assert.NotNil(t, loaded.ApprovalDate)

			// Plain approval does not notify the submitter
			count, err := env.notificationRepo.UnreadCount(ctx, scout.ID)
			require.NoError(t, err)
			assert.Zero(t, count)
		})

		t.Run("ApproveIsNotIdempotent", func(t *testing.T) {
			_, err := env.adminReviewFlow.ApproveEntity(ctx, models.EntityTypePlayer, pendingPlayer.ID, admin.ID)
			assert.True(t, businessflow.IsEntityNotPending(err))
		})

		t.Run("RejectNotifiesSubmitter", func(t *testing.T) {
			resp, err := env.adminReviewFlow.RejectEntity(ctx, models.EntityTypePlayer, rejectablePlayer.ID, admin.ID, "Duplicate of an existing player")
			require.NoError(t, err)
			assert.Equal(t, "rejected", resp.Status)

			loaded, err := env.playerRepo.ByIdentifier(ctx, rejectablePlayer.ID)
			require.NoError(t, err)
			assert.Equal(t, models.ApprovalStatusRejected, loaded.ApprovalStatus)
			require.NotNil(t, loaded.RejectionReason)
			assert.Equal(t, "Duplicate of an existing player", *loaded.RejectionReason)

			notifications, err := env.notificationFlow.ListNotifications(ctx, scout.ID, dto.ListNotificationsFilter{})
			require.NoError(t, err)
			require.Equal(t, int64(1), notifications.Total)
			assert.Equal(t, models.NotificationTypeEntityRejected.String(), notifications.Items[0].Type)
			assert.Contains(t, notifications.Items[0].Message, "Duplicate of an existing player")
		})

		t.Run("RejectedIsTerminal", func(t *testing.T) {
			_, err := env.adminReviewFlow.ApproveEntity(ctx, models.EntityTypePlayer, rejectablePlayer.ID, admin.ID)
			assert.True(t, businessflow.IsEntityNotPending(err))
		})

		t.Run("UnknownEntityNotFound", func(t *testing.T) {
			_, err := env.adminReviewFlow.ApproveEntity(ctx, models.EntityTypePlayer, "PLY-99999", admin.ID)
			assert.True(t, businessflow.IsPlayerNotFound(err))
		})

		t.Run("ReviewQueueOldestFirst", func(t *testing.T) {
			_, err := env.fixtures.CreateTestPlayer("PLY-00003", models.ApprovalStatusPending, &scout.ID)
			require.NoError(t, err)
			_, err = env.fixtures.CreateTestReport("REP-2025-00001", pendingPlayer.ID, models.ApprovalStatusPending, &scout.ID)
			require.NoError(t, err)

			queue, err := env.adminReviewFlow.ReviewQueue(ctx)
			require.NoError(t, err)
			require.Len(t, queue.Players, 1)
			assert.Equal(t, "PLY-00003", queue.Players[0].ID)
			require.Len(t, queue.Reports, 1)
			assert.Equal(t, "REP-2025-00001", queue.Reports[0].ID)
		})

		t.Run("DashboardStats", func(t *testing.T) {
			stats, err := env.adminReviewFlow.DashboardStats(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(1), stats.Players["approved"])
			assert.Equal(t, int64(1), stats.Players["rejected"])
			assert.Equal(t, int64(1), stats.Players["pending"])
			assert.Equal(t, int64(1), stats.Reports["pending"])
			assert.Zero(t, stats.PendingRequests)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestChangeRequestFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		env := newFlowEnv(testDB)
		ctx := testingutil.CreateTestContext()

		scout, err := env.fixtures.CreateTestScout()
		require.NoError(t, err)
		otherScout, err := env.fixtures.CreateTestScout()
		require.NoError(t, err)

		approvedPlayer, err := env.fixtures.CreateTestPlayer("PLY-00001", models.ApprovalStatusApproved, &scout.ID)
		require.NoError(t, err)
		pendingPlayer, err := env.fixtures.CreateTestPlayer("PLY-00002", models.ApprovalStatusPending, &scout.ID)
		require.NoError(t, err)

		t.Run("SubmitEditRequest", func(t *testing.T) {
			resp, err := env.requestFlow.SubmitRequest(ctx, scout.ID, &dto.SubmitRequestRequest{
				EntityType:  "player",
				EntityID:    approvedPlayer.ID,
				RequestType: "edit",
				Reason:      "Player moved to a new club in January.",
			})
			require.NoError(t, err)
			assert.Equal(t, "pending", resp.Request.Status)
			assert.Equal(t, scout.ID, resp.Request.ScoutID)
		})

		t.Run("DuplicatePendingRejected", func(t *testing.T) {
			_, err := env.requestFlow.SubmitRequest(ctx, scout.ID, &dto.SubmitRequestRequest{
				EntityType:  "player",
				EntityID:    approvedPlayer.ID,
				RequestType: "delete",
				Reason:      "Second request while one is still pending.",
			})
			assert.True(t, businessflow.IsDuplicatePendingRequest(err))
		})

		t.Run("OnlySubmitterMayRequest", func(t *testing.T) {
			_, err := env.requestFlow.SubmitRequest(ctx, otherScout.ID, &dto.SubmitRequestRequest{
				EntityType:  "player",
				EntityID:    approvedPlayer.ID,
				RequestType: "edit",
				Reason:      "Someone else's player record needs a change.",
			})
			assert.True(t, businessflow.IsNotRequestSubmitter(err))
		})

		t.Run("EntityMustBeApproved", func(t *testing.T) {
			_, err := env.requestFlow.SubmitRequest(ctx, scout.ID, &dto.SubmitRequestRequest{
				EntityType:  "player",
				EntityID:    pendingPlayer.ID,
				RequestType: "edit",
				Reason:      "Cannot request changes while still pending.",
			})
			assert.True(t, businessflow.IsEntityNotApproved(err))
		})

		t.Run("ReasonTooShortRejected", func(t *testing.T) {
			_, err := env.requestFlow.SubmitRequest(ctx, scout.ID, &dto.SubmitRequestRequest{
				EntityType:  "player",
				EntityID:    approvedPlayer.ID,
				RequestType: "edit",
				Reason:      "too short",
			})
			assert.True(t, businessflow.IsReasonTooShort(err))
		})

		t.Run("ListOwnRequests", func(t *testing.T) {
			resp, err := env.requestFlow.ListRequests(ctx, scout.ID, dto.ListRequestsFilter{})
			require.NoError(t, err)
			assert.Equal(t, int64(1), resp.Total)

			resp, err = env.requestFlow.ListRequests(ctx, otherScout.ID, dto.ListRequestsFilter{})
			require.NoError(t, err)
			assert.Zero(t, resp.Total)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestAdminRequestResolutionFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		env := newFlowEnv(testDB)
		ctx := testingutil.CreateTestContext()

		scout, err := env.fixtures.CreateTestScout()
		require.NoError(t, err)
		admin, err := env.fixtures.CreateTestAdmin()
		require.NoError(t, err)

		t.Run("ApprovedEditReopensEntity", func(t *testing.T) {
			player, err := env.fixtures.CreateTestPlayer("PLY-00001", models.ApprovalStatusApproved, &scout.ID)
			require.NoError(t, err)
			request, err := env.fixtures.CreateTestChangeRequest(models.EntityTypePlayer, player.ID, scout.ID, models.RequestTypeEdit, models.RequestStatusPending)
			require.NoError(t, err)

			resp, err := env.adminRequestFlow.ApproveRequest(ctx, request.ID, admin.ID, nil)
			require.NoError(t, err)
			assert.Equal(t, "approved", resp.Request.Status)

			loaded, err := env.playerRepo.ByIdentifier(ctx, player.ID)
			require.NoError(t, err)
			assert.Equal(t, models.ApprovalStatusPending, loaded.ApprovalStatus)
			assert.Nil(t, loaded.ApprovedByAdminID)
			assert.Nil(t, loaded.ApprovalDate)

			notifications, err := env.notificationFlow.ListNotifications(ctx, scout.ID, dto.ListNotificationsFilter{})
			require.NoError(t, err)
			require.Equal(t, int64(1), notifications.Total)
			assert.Equal(t, models.NotificationTypeRequestApproved.String(), notifications.Items[0].Type)
		})

		t.Run("ResolutionIsExactlyOnce", func(t *testing.T) {
			player, err := env.fixtures.CreateTestPlayer("PLY-00002", models.ApprovalStatusApproved, &scout.ID)
			require.NoError(t, err)
			request, err := env.fixtures.CreateTestChangeRequest(models.EntityTypePlayer, player.ID, scout.ID, models.RequestTypeEdit, models.RequestStatusPending)
			require.NoError(t, err)

			_, err = env.adminRequestFlow.ApproveRequest(ctx, request.ID, admin.ID, nil)
			require.NoError(t, err)

			_, err = env.adminRequestFlow.ApproveRequest(ctx, request.ID, admin.ID, nil)
			assert.True(t, businessflow.IsRequestAlreadyResolved(err))
			_, err = env.adminRequestFlow.RejectRequest(ctx, request.ID, admin.ID, "already settled")
			assert.True(t, businessflow.IsRequestAlreadyResolved(err))
		})

		t.Run("ApprovedDeleteNotifiesThenRemoves", func(t *testing.T) {
			player, err := env.fixtures.CreateTestPlayer("PLY-00003", models.ApprovalStatusApproved, &scout.ID)
			require.NoError(t, err)
			report, err := env.fixtures.CreateTestReport("REP-2025-00001", player.ID, models.ApprovalStatusApproved, &scout.ID)
			require.NoError(t, err)
			request, err := env.fixtures.CreateTestChangeRequest(models.EntityTypePlayer, player.ID, scout.ID, models.RequestTypeDelete, models.RequestStatusPending)
			require.NoError(t, err)

			before, err := env.notificationRepo.UnreadCount(ctx, scout.ID)
			require.NoError(t, err)

			_, err = env.adminRequestFlow.ApproveRequest(ctx, request.ID, admin.ID, utils.ToPtr("Removed at the club's request"))
			require.NoError(t, err)

			// Entity and its reports are gone
			loaded, err := env.playerRepo.ByIdentifier(ctx, player.ID)
			require.NoError(t, err)
			assert.Nil(t, loaded)
			loadedReport, err := env.reportRepo.ByIdentifier(ctx, report.ID)
			require.NoError(t, err)
			assert.Nil(t, loadedReport)

			// Request rows for the deleted entity are gone too
			pending, err := env.requestRepo.PendingByEntity(ctx, models.EntityTypePlayer, player.ID)
			require.NoError(t, err)
			assert.Nil(t, pending)

			// The notification still names the player
			after, err := env.notificationRepo.UnreadCount(ctx, scout.ID)
			require.NoError(t, err)
			assert.Equal(t, before+1, after)

			notifications, err := env.notificationFlow.ListNotifications(ctx, scout.ID, dto.ListNotificationsFilter{})
			require.NoError(t, err)
			assert.Equal(t, models.NotificationTypeEntityDeleted.String(), notifications.Items[0].Type)
			assert.Contains(t, notifications.Items[0].Message, player.PlayerName)
			assert.Contains(t, notifications.Items[0].Message, "Removed at the club's request")
		})

		t.Run("RejectRequiresAdminResponse", func(t *testing.T) {
			player, err := env.fixtures.CreateTestPlayer("PLY-00004", models.ApprovalStatusApproved, &scout.ID)
			require.NoError(t, err)
			request, err := env.fixtures.CreateTestChangeRequest(models.EntityTypePlayer, player.ID, scout.ID, models.RequestTypeDelete, models.RequestStatusPending)
			require.NoError(t, err)

			_, err = env.adminRequestFlow.RejectRequest(ctx, request.ID, admin.ID, "   ")
			assert.True(t, businessflow.IsAdminResponseRequired(err))

			resp, err := env.adminRequestFlow.RejectRequest(ctx, request.ID, admin.ID, "The record is still referenced by an open tournament")
			require.NoError(t, err)
			assert.Equal(t, "rejected", resp.Request.Status)

			// Entity untouched
			loaded, err := env.playerRepo.ByIdentifier(ctx, player.ID)
			require.NoError(t, err)
			require.NotNil(t, loaded)
			assert.Equal(t, models.ApprovalStatusApproved, loaded.ApprovalStatus)

			notifications, err := env.notificationFlow.ListNotifications(ctx, scout.ID, dto.ListNotificationsFilter{})
			require.NoError(t, err)
			assert.Equal(t, models.NotificationTypeRequestRejected.String(), notifications.Items[0].Type)
			assert.Contains(t, notifications.Items[0].Message, "still referenced")
		})

		t.Run("UnknownRequestNotFound", func(t *testing.T) {
			_, err := env.adminRequestFlow.ApproveRequest(ctx, 99999, admin.ID, nil)
			assert.True(t, businessflow.IsRequestNotFound(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestNotificationFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		env := newFlowEnv(testDB)
		ctx := testingutil.CreateTestContext()

		scout, err := env.fixtures.CreateTestScout()
		require.NoError(t, err)

		first, err := env.fixtures.CreateTestNotification(scout.ID, models.NotificationTypeRequestApproved, 0)
		require.NoError(t, err)
		_, err = env.fixtures.CreateTestNotification(scout.ID, models.NotificationTypeRequestRejected, 0)
		require.NoError(t, err)

		t.Run("UnreadFilter", func(t *testing.T) {
			resp, err := env.notificationFlow.ListNotifications(ctx, scout.ID, dto.ListNotificationsFilter{Unread: utils.ToPtr(true)})
			require.NoError(t, err)
			assert.Equal(t, int64(2), resp.Total)
		})

		t.Run("MarkRead", func(t *testing.T) {
			_, err := env.notificationFlow.MarkRead(ctx, scout.ID, first.ID)
			require.NoError(t, err)

			count, err := env.notificationFlow.UnreadCount(ctx, scout.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(1), count.Count)
		})

		t.Run("MarkReadUnknownNotification", func(t *testing.T) {
			_, err := env.notificationFlow.MarkRead(ctx, scout.ID, 99999)
			assert.True(t, businessflow.IsNotificationNotFound(err))
		})

		t.Run("MarkAllRead", func(t *testing.T) {
			_, err := env.notificationFlow.MarkAllRead(ctx, scout.ID)
			require.NoError(t, err)

			count, err := env.notificationFlow.UnreadCount(ctx, scout.ID)
			require.NoError(t, err)
			assert.Zero(t, count.Count)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestExportApprovedReports(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		env := newFlowEnv(testDB)
		ctx := testingutil.CreateTestContext()

		scout, err := env.fixtures.CreateTestScout()
		require.NoError(t, err)
		player, err := env.fixtures.CreateTestPlayer("PLY-00001", models.ApprovalStatusApproved, &scout.ID)
		require.NoError(t, err)

		_, err = env.fixtures.CreateTestReport("REP-2025-00001", player.ID, models.ApprovalStatusApproved, &scout.ID)
		require.NoError(t, err)
		_, err = env.fixtures.CreateTestReport("REP-2025-00002", player.ID, models.ApprovalStatusPending, &scout.ID)
		require.NoError(t, err)
		_, err = env.fixtures.CreateTestReport("REP-2025-00003", player.ID, models.ApprovalStatusRejected, &scout.ID)
		require.NoError(t, err)

		data, filename, err := env.adminExportFlow.ExportApprovedReports(ctx)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(filename, ".xlsx"))
		require.NotEmpty(t, data)

		f, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows("Approved Reports")
		require.NoError(t, err)
		// Header plus the single approved report
		require.Len(t, rows, 2)
		assert.Equal(t, "Report ID", rows[0][0])
		assert.Equal(t, "REP-2025-00001", rows[1][0])
		assert.Equal(t, player.ID, rows[1][1])

		return nil
	})
	require.NoError(t, err)
}
