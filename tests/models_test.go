// Package tests contains test cases for models and repository packages to avoid circular imports
package tests

import (
	"testing"

	"github.com/google/uuid"
	"github.com/scoutdesk/scoutdesk/models"
	testingutil "github.com/scoutdesk/scoutdesk/testing"
	"github.com/scoutdesk/scoutdesk/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApprovalStatus(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.True(t, models.ApprovalStatusPending.Valid())
		assert.True(t, models.ApprovalStatusApproved.Valid())
		assert.True(t, models.ApprovalStatusRejected.Valid())
		assert.False(t, models.ApprovalStatus("deleted").Valid())
		assert.False(t, models.ApprovalStatus("").Valid())
	})

	t.Run("Transitions", func(t *testing.T) {
		// pending may be decided either way
		assert.True(t, models.ApprovalStatusPending.CanTransitionTo(models.ApprovalStatusApproved))
		assert.True(t, models.ApprovalStatusPending.CanTransitionTo(models.ApprovalStatusRejected))

		// approved only reopens to pending (granted edit request)
		assert.True(t, models.ApprovalStatusApproved.CanTransitionTo(models.ApprovalStatusPending))
		assert.False(t, models.ApprovalStatusApproved.CanTransitionTo(models.ApprovalStatusRejected))

		// rejected is terminal
		assert.False(t, models.ApprovalStatusRejected.CanTransitionTo(models.ApprovalStatusPending))
		assert.False(t, models.ApprovalStatusRejected.CanTransitionTo(models.ApprovalStatusApproved))

		// no self transitions
		assert.False(t, models.ApprovalStatusPending.CanTransitionTo(models.ApprovalStatusPending))
		assert.False(t, models.ApprovalStatusApproved.CanTransitionTo(models.ApprovalStatusApproved))
	})

	t.Run("Value", func(t *testing.T) {
		v, err := models.ApprovalStatusApproved.Value()
		require.NoError(t, err)
		assert.Equal(t, "approved", v)

		_, err = models.ApprovalStatus("bogus").Value()
		assert.Error(t, err)
	})

	t.Run("Scan", func(t *testing.T) {
		var s models.ApprovalStatus
		require.NoError(t, s.Scan("pending"))
		assert.Equal(t, models.ApprovalStatusPending, s)

		require.NoError(t, s.Scan([]byte("rejected")))
		assert.Equal(t, models.ApprovalStatusRejected, s)

		assert.Error(t, s.Scan(42))
	})
}

func TestEntityType(t *testing.T) {
	t.Run("Code", func(t *testing.T) {
		assert.Equal(t, "REP", models.EntityTypeReport.Code())
		assert.Equal(t, "PLY", models.EntityTypePlayer.Code())
		assert.Equal(t, "TOR", models.EntityTypeTournament.Code())
		assert.Equal(t, "", models.EntityType("bogus").Code())
	})

	t.Run("YearScoped", func(t *testing.T) {
		assert.True(t, models.EntityTypeReport.YearScoped())
		assert.True(t, models.EntityTypeTournament.YearScoped())
		assert.False(t, models.EntityTypePlayer.YearScoped())
	})
}

func TestRequestStatus(t *testing.T) {
	assert.False(t, models.RequestStatusPending.Resolved())
	assert.True(t, models.RequestStatusApproved.Resolved())
	assert.True(t, models.RequestStatusRejected.Resolved())

	assert.True(t, models.RequestTypeEdit.Valid())
	assert.True(t, models.RequestTypeDelete.Valid())
	assert.False(t, models.RequestType("rename").Valid())
}

func TestScoutModel(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		t.Run("CreateScout", func(t *testing.T) {
			scout, err := fixtures.CreateTestScout()
			require.NoError(t, err)
			assert.NotZero(t, scout.ID)
			assert.NotEqual(t, uuid.Nil, scout.UUID)
			assert.True(t, utils.IsTrue(scout.IsActive))
			assert.Equal(t, "Sam Marsh", scout.FullName())
		})

		t.Run("UniqueEmail", func(t *testing.T) {
			scout, err := fixtures.CreateTestScout()
			require.NoError(t, err)

			dup := &models.Scout{
				UUID:           uuid.New(),
				ExternalAuthID: "auth0|other-subject",
				FirstName:      "Other",
				LastName:       "Scout",
				Email:          scout.Email,
			}
			assert.Error(t, testDB.DB.Create(dup).Error)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestPlayerModel(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		scout, err := fixtures.CreateTestScout()
		require.NoError(t, err)

		t.Run("CreatePlayer", func(t *testing.T) {
			player, err := fixtures.CreateTestPlayer("PLY-00001", models.ApprovalStatusPending, &scout.ID)
			require.NoError(t, err)
			assert.Equal(t, "PLY-00001", player.ID)
			assert.Equal(t, models.ApprovalStatusPending, player.ApprovalStatus)
			assert.Equal(t, []string{"pace", "finishing"}, []string(player.Attributes))

			var loaded models.Player
			require.NoError(t, testDB.DB.First(&loaded, "id = ?", "PLY-00001").Error)
			assert.Equal(t, player.PlayerName, loaded.PlayerName)
			assert.Equal(t, player.PlayerName, loaded.DisplayName())
		})

		t.Run("DuplicateIdentifierRejected", func(t *testing.T) {
			_, err := fixtures.CreateTestPlayer("PLY-00002", models.ApprovalStatusPending, &scout.ID)
			require.NoError(t, err)
			_, err = fixtures.CreateTestPlayer("PLY-00002", models.ApprovalStatusPending, &scout.ID)
			assert.Error(t, err)
		})

		t.Run("DeleteCascadesToReports", func(t *testing.T) {
			player, err := fixtures.CreateTestPlayer("PLY-00003", models.ApprovalStatusApproved, &scout.ID)
			require.NoError(t, err)
			_, err = fixtures.CreateTestReport("REP-2025-00001", player.ID, models.ApprovalStatusApproved, &scout.ID)
			require.NoError(t, err)

			require.NoError(t, testDB.DB.Exec("DELETE FROM players WHERE id = ?", player.ID).Error)

			var count int64
			require.NoError(t, testDB.DB.Model(&models.Report{}).Where("player_id = ?", player.ID).Count(&count).Error)
			assert.Zero(t, count)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestChangeRequestModel(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		scout, err := fixtures.CreateTestScout()
		require.NoError(t, err)
		player, err := fixtures.CreateTestPlayer("PLY-00001", models.ApprovalStatusApproved, &scout.ID)
		require.NoError(t, err)

		t.Run("BeforeCreateDefaults", func(t *testing.T) {
			request := &models.ChangeRequest{
				EntityType:  models.EntityTypePlayer,
				EntityID:    player.ID,
				ScoutID:     scout.ID,
				RequestType: models.RequestTypeEdit,
				Reason:      "Position changed after the winter transfer window.",
			}
			require.NoError(t, testDB.DB.Create(request).Error)
			assert.NotEqual(t, uuid.Nil, request.UUID)
			assert.Equal(t, models.RequestStatusPending, request.Status)
			assert.False(t, request.CreatedAt.IsZero())
		})

		t.Run("OnePendingPerEntity", func(t *testing.T) {
			// The partial unique index rejects a second pending request
			dup := &models.ChangeRequest{
				EntityType:  models.EntityTypePlayer,
				EntityID:    player.ID,
				ScoutID:     scout.ID,
				RequestType: models.RequestTypeDelete,
				Reason:      "Player retired at the end of the season.",
			}
			assert.Error(t, testDB.DB.Create(dup).Error)

			// Resolved rows do not count against the limit
			resolved, err := fixtures.CreateTestChangeRequest(models.EntityTypePlayer, "PLY-99999", scout.ID, models.RequestTypeEdit, models.RequestStatusRejected)
			require.NoError(t, err)
			assert.NotZero(t, resolved.ID)

			another, err := fixtures.CreateTestChangeRequest(models.EntityTypePlayer, "PLY-99999", scout.ID, models.RequestTypeEdit, models.RequestStatusPending)
			require.NoError(t, err)
			assert.NotZero(t, another.ID)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestNotificationModel(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		scout, err := fixtures.CreateTestScout()
		require.NoError(t, err)

		t.Run("CreateNotification", func(t *testing.T) {
			notification, err := fixtures.CreateTestNotification(scout.ID, models.NotificationTypeRequestApproved, 0)
			require.NoError(t, err)
			assert.NotZero(t, notification.ID)
			assert.NotEqual(t, uuid.Nil, notification.UUID)
			assert.False(t, notification.Read)
			assert.Nil(t, notification.ReadAt)
		})

		t.Run("SurvivesEntityDeletion", func(t *testing.T) {
			// player_id carries no foreign key, so the row outlives the entity
			player, err := fixtures.CreateTestPlayer("PLY-00010", models.ApprovalStatusApproved, &scout.ID)
			require.NoError(t, err)

			notification := &models.Notification{
				UUID:     uuid.New(),
				ScoutID:  scout.ID,
				Type:     models.NotificationTypeEntityDeleted,
				Title:    "Player deleted",
				Message:  "Player " + player.PlayerName + " was removed.",
				PlayerID: &player.ID,
			}
			require.NoError(t, testDB.DB.Create(notification).Error)

			require.NoError(t, testDB.DB.Exec("DELETE FROM players WHERE id = ?", player.ID).Error)

			var loaded models.Notification
			require.NoError(t, testDB.DB.First(&loaded, notification.ID).Error)
			assert.Equal(t, "Player deleted", loaded.Title)
			require.NotNil(t, loaded.PlayerID)
			assert.Equal(t, "PLY-00010", *loaded.PlayerID)
		})

		return nil
	})
	require.NoError(t, err)
}
