// Package tests contains test cases for models and repository packages to avoid circular imports
package tests

import (
	"sync"
	"testing"
	"time"

	"github.com/scoutdesk/scoutdesk/models"
	"github.com/scoutdesk/scoutdesk/repository"
	testingutil "github.com/scoutdesk/scoutdesk/testing"
	"github.com/scoutdesk/scoutdesk/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceCounterRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewSequenceCounterRepository(testDB.DB)
		ctx := testingutil.CreateTestContext()

		t.Run("FirstAllocationStartsAtOne", func(t *testing.T) {
			n, err := repo.Next(ctx, models.EntityTypeReport, "2025")
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)
		})

		t.Run("SequentialIncrements", func(t *testing.T) {
			for expected := int64(2); expected <= 5; expected++ {
				n, err := repo.Next(ctx, models.EntityTypeReport, "2025")
				require.NoError(t, err)
				assert.Equal(t, expected, n)
			}
		})

		t.Run("ScopesAreIndependent", func(t *testing.T) {
			n, err := repo.Next(ctx, models.EntityTypeReport, "2026")
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)

			n, err = repo.Next(ctx, models.EntityTypePlayer, models.GlobalScopeKey)
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)
		})

		t.Run("Current", func(t *testing.T) {
			counter, err := repo.Current(ctx, models.EntityTypeReport, "2025")
			require.NoError(t, err)
			require.NotNil(t, counter)
			assert.Equal(t, int64(5), counter.LastNumber)

			counter, err = repo.Current(ctx, models.EntityTypeTournament, "2025")
			require.NoError(t, err)
			assert.Nil(t, counter)
		})

		t.Run("ConcurrentAllocationsAreUnique", func(t *testing.T) {
			const workers = 20

			var mu sync.Mutex
			var wg sync.WaitGroup
			seen := make(map[int64]bool)

			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					n, err := repo.Next(ctx, models.EntityTypeTournament, "2026")
					assert.NoError(t, err)
					mu.Lock()
					defer mu.Unlock()
					assert.False(t, seen[n], "number %d allocated twice", n)
					seen[n] = true
				}()
			}
			wg.Wait()

			assert.Len(t, seen, workers)
			counter, err := repo.Current(ctx, models.EntityTypeTournament, "2026")
			require.NoError(t, err)
			require.NotNil(t, counter)
			assert.Equal(t, int64(workers), counter.LastNumber)
		})

		t.Run("List", func(t *testing.T) {
			counters, err := repo.List(ctx)
			require.NoError(t, err)
			assert.Len(t, counters, 4)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestPlayerRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		repo := repository.NewPlayerRepository(testDB.DB)
		ctx := testingutil.CreateTestContext()

		scout, err := fixtures.CreateTestScout()
		require.NoError(t, err)

		t.Run("SaveAndByIdentifier", func(t *testing.T) {
			player := &models.Player{
				ID:               "PLY-00001",
				PlayerName:       "Luka Andrade",
				Position:         utils.ToPtr("Midfielder"),
				Attributes:       []string{"vision"},
				ApprovalStatus:   models.ApprovalStatusPending,
				CreatedByScoutID: &scout.ID,
			}
			require.NoError(t, repo.Save(ctx, player))

			loaded, err := repo.ByIdentifier(ctx, "PLY-00001")
			require.NoError(t, err)
			require.NotNil(t, loaded)
			assert.Equal(t, "Luka Andrade", loaded.PlayerName)
		})

		t.Run("ByIdentifierNotFound", func(t *testing.T) {
			loaded, err := repo.ByIdentifier(ctx, "PLY-99999")
			assert.NoError(t, err)
			assert.Nil(t, loaded)
		})

		t.Run("Update", func(t *testing.T) {
			player, err := repo.ByIdentifier(ctx, "PLY-00001")
			require.NoError(t, err)
			require.NotNil(t, player)

			player.ApprovalStatus = models.ApprovalStatusApproved
			player.ApprovalDate = utils.UTCNowPtr()
			require.NoError(t, repo.Update(ctx, player))

			loaded, err := repo.ByIdentifier(ctx, "PLY-00001")
			require.NoError(t, err)
			assert.Equal(t, models.ApprovalStatusApproved, loaded.ApprovalStatus)
			assert.NotNil(t, loaded.ApprovalDate)
		})

		t.Run("ByFilterAndCount", func(t *testing.T) {
			_, err := fixtures.CreateTestPlayer("PLY-00002", models.ApprovalStatusPending, &scout.ID)
			require.NoError(t, err)
			_, err = fixtures.CreateTestPlayer("PLY-00003", models.ApprovalStatusRejected, &scout.ID)
			require.NoError(t, err)

			pending := models.ApprovalStatusPending
			rows, err := repo.ByFilter(ctx, models.PlayerFilter{ApprovalStatus: &pending}, "created_at ASC", 0, 0)
			require.NoError(t, err)
			assert.Len(t, rows, 1)
			assert.Equal(t, "PLY-00002", rows[0].ID)

			count, err := repo.Count(ctx, models.PlayerFilter{CreatedByScoutID: &scout.ID})
			require.NoError(t, err)
			assert.Equal(t, int64(3), count)
		})

		t.Run("CountByStatus", func(t *testing.T) {
			counts, err := repo.CountByStatus(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(1), counts[models.ApprovalStatusApproved])
			assert.Equal(t, int64(1), counts[models.ApprovalStatusPending])
			assert.Equal(t, int64(1), counts[models.ApprovalStatusRejected])
		})

		t.Run("Delete", func(t *testing.T) {
			require.NoError(t, repo.Delete(ctx, "PLY-00003"))
			loaded, err := repo.ByIdentifier(ctx, "PLY-00003")
			require.NoError(t, err)
			assert.Nil(t, loaded)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestReportRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		repo := repository.NewReportRepository(testDB.DB)
		ctx := testingutil.CreateTestContext()

		scout, err := fixtures.CreateTestScout()
		require.NoError(t, err)
		player, err := fixtures.CreateTestPlayer("PLY-00001", models.ApprovalStatusApproved, &scout.ID)
		require.NoError(t, err)

		t.Run("SaveAndByIdentifier", func(t *testing.T) {
			report := &models.Report{
				ID:               "REP-2025-00001",
				PlayerID:         player.ID,
				Text:             "Dominant in the air, wins nearly every defensive duel.",
				Rating:           utils.ToPtr(7),
				ApprovalStatus:   models.ApprovalStatusPending,
				CreatedByScoutID: &scout.ID,
			}
			require.NoError(t, repo.Save(ctx, report))

			loaded, err := repo.ByIdentifier(ctx, "REP-2025-00001")
			require.NoError(t, err)
			require.NotNil(t, loaded)
			assert.Equal(t, player.ID, loaded.PlayerID)
		})

		t.Run("ByIdentifierNotFound", func(t *testing.T) {
			loaded, err := repo.ByIdentifier(ctx, "REP-2025-99999")
			assert.NoError(t, err)
			assert.Nil(t, loaded)
		})

		t.Run("DeleteByPlayer", func(t *testing.T) {
			_, err := fixtures.CreateTestReport("REP-2025-00002", player.ID, models.ApprovalStatusApproved, &scout.ID)
			require.NoError(t, err)

			require.NoError(t, repo.DeleteByPlayer(ctx, player.ID))

			count, err := repo.Count(ctx, models.ReportFilter{PlayerID: &player.ID})
			require.NoError(t, err)
			assert.Zero(t, count)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestChangeRequestRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		repo := repository.NewChangeRequestRepository(testDB.DB)
		ctx := testingutil.CreateTestContext()

		scout, err := fixtures.CreateTestScout()
		require.NoError(t, err)
		admin, err := fixtures.CreateTestAdmin()
		require.NoError(t, err)
		player, err := fixtures.CreateTestPlayer("PLY-00001", models.ApprovalStatusApproved, &scout.ID)
		require.NoError(t, err)

		t.Run("PendingByEntity", func(t *testing.T) {
			created, err := fixtures.CreateTestChangeRequest(models.EntityTypePlayer, player.ID, scout.ID, models.RequestTypeEdit, models.RequestStatusPending)
			require.NoError(t, err)

			pending, err := repo.PendingByEntity(ctx, models.EntityTypePlayer, player.ID)
			require.NoError(t, err)
			require.NotNil(t, pending)
			assert.Equal(t, created.ID, pending.ID)

			pending, err = repo.PendingByEntity(ctx, models.EntityTypeReport, "REP-2025-00001")
			require.NoError(t, err)
			assert.Nil(t, pending)
		})

		t.Run("UpdateResolution", func(t *testing.T) {
			pending, err := repo.PendingByEntity(ctx, models.EntityTypePlayer, player.ID)
			require.NoError(t, err)
			require.NotNil(t, pending)

			pending.Status = models.RequestStatusApproved
			pending.ResolvedByAdminID = &admin.ID
			pending.ResolvedAt = utils.UTCNowPtr()
			require.NoError(t, repo.Update(ctx, pending))

			resolved, err := repo.ByID(ctx, pending.ID)
			require.NoError(t, err)
			require.NotNil(t, resolved)
			assert.Equal(t, models.RequestStatusApproved, resolved.Status)
			require.NotNil(t, resolved.ResolvedByAdminID)
			assert.Equal(t, admin.ID, *resolved.ResolvedByAdminID)

			// No longer pending
			pending, err = repo.PendingByEntity(ctx, models.EntityTypePlayer, player.ID)
			require.NoError(t, err)
			assert.Nil(t, pending)
		})

		t.Run("DeleteByEntity", func(t *testing.T) {
			_, err := fixtures.CreateTestChangeRequest(models.EntityTypePlayer, player.ID, scout.ID, models.RequestTypeDelete, models.RequestStatusPending)
			require.NoError(t, err)

			require.NoError(t, repo.DeleteByEntity(ctx, models.EntityTypePlayer, player.ID))

			count, err := repo.Count(ctx, models.ChangeRequestFilter{EntityID: &player.ID})
			require.NoError(t, err)
			assert.Zero(t, count)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestNotificationRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		repo := repository.NewNotificationRepository(testDB.DB)
		ctx := testingutil.CreateTestContext()

		scout, err := fixtures.CreateTestScout()
		require.NoError(t, err)
		otherScout, err := fixtures.CreateTestScout()
		require.NoError(t, err)

		first, err := fixtures.CreateTestNotification(scout.ID, models.NotificationTypeRequestApproved, 0)
		require.NoError(t, err)
		_, err = fixtures.CreateTestNotification(scout.ID, models.NotificationTypeRequestRejected, 0)
		require.NoError(t, err)
		_, err = fixtures.CreateTestNotification(otherScout.ID, models.NotificationTypeEntityRejected, 0)
		require.NoError(t, err)

		t.Run("UnreadCount", func(t *testing.T) {
			count, err := repo.UnreadCount(ctx, scout.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(2), count)
		})

		t.Run("MarkReadScopedToOwner", func(t *testing.T) {
			// Another scout cannot mark this row
			err := repo.MarkRead(ctx, first.ID, otherScout.ID)
			assert.Error(t, err)

			require.NoError(t, repo.MarkRead(ctx, first.ID, scout.ID))

			count, err := repo.UnreadCount(ctx, scout.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)

			// Marking twice reports not found since the row is already read
			err = repo.MarkRead(ctx, first.ID, scout.ID)
			assert.Error(t, err)
		})

		t.Run("MarkAllRead", func(t *testing.T) {
			require.NoError(t, repo.MarkAllRead(ctx, scout.ID))

			count, err := repo.UnreadCount(ctx, scout.ID)
			require.NoError(t, err)
			assert.Zero(t, count)

			// Other scouts are untouched
			count, err = repo.UnreadCount(ctx, otherScout.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)
		})

		t.Run("DeleteOlderThanPurgesOnlyExpired", func(t *testing.T) {
			old, err := fixtures.CreateTestNotification(scout.ID, models.NotificationTypeEntityDeleted, 91*24*time.Hour)
			require.NoError(t, err)

			purged, err := repo.DeleteOlderThan(ctx, utils.UTCNow().Add(-90*24*time.Hour))
			require.NoError(t, err)
			assert.Equal(t, int64(1), purged)

			loaded, err := repo.ByID(ctx, old.ID)
			require.NoError(t, err)
			assert.Nil(t, loaded)

			// Recent rows survive
			count, err := repo.Count(ctx, models.NotificationFilter{ScoutID: &scout.ID})
			require.NoError(t, err)
			assert.Equal(t, int64(2), count)
		})

		return nil
	})
	require.NoError(t, err)
}
