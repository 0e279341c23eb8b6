// Package testing provides test utilities and database setup for testing the scouting back office
package testing

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/scoutdesk/scoutdesk/models"
	"github.com/scoutdesk/scoutdesk/utils"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestScout creates an active scout with unique identity fields
func (tf *TestFixtures) CreateTestScout() (*models.Scout, error) {
	suffix := fmt.Sprintf("%d%06d", time.Now().UnixNano(), rand.Intn(1000000))

	scout := &models.Scout{
		UUID:           uuid.New(),
		ExternalAuthID: fmt.Sprintf("auth0|scout-%s", suffix),
		FirstName:      "Sam",
		LastName:       "Marsh",
		Email:          fmt.Sprintf("sam.marsh.%s@example.com", suffix),
		IsActive:       utils.ToPtr(true),
	}

	if err := tf.DB.DB.Create(scout).Error; err != nil {
		return nil, fmt.Errorf("failed to create test scout: %w", err)
	}

	return scout, nil
}

// CreateInactiveTestScout creates a deactivated scout
func (tf *TestFixtures) CreateInactiveTestScout() (*models.Scout, error) {
	scout, err := tf.CreateTestScout()
	if err != nil {
		return nil, err
	}

	scout.IsActive = utils.ToPtr(false)
	if err := tf.DB.DB.Save(scout).Error; err != nil {
		return nil, fmt.Errorf("failed to deactivate test scout: %w", err)
	}

	return scout, nil
}

// CreateTestAdmin creates an active admin with unique identity fields
func (tf *TestFixtures) CreateTestAdmin() (*models.Admin, error) {
	suffix := fmt.Sprintf("%d%06d", time.Now().UnixNano(), rand.Intn(1000000))

	admin := &models.Admin{
		UUID:           uuid.New(),
		ExternalAuthID: fmt.Sprintf("auth0|admin-%s", suffix),
		DisplayName:    "Review Admin",
		Email:          fmt.Sprintf("admin.%s@example.com", suffix),
		IsActive:       utils.ToPtr(true),
	}

	if err := tf.DB.DB.Create(admin).Error; err != nil {
		return nil, fmt.Errorf("failed to create test admin: %w", err)
	}

	return admin, nil
}

// CreateTestPlayer inserts a player directly with the given identifier and status,
// bypassing the allocation path. Useful for tests that exercise review and
// request flows without caring about identifier assignment.
func (tf *TestFixtures) CreateTestPlayer(id string, status models.ApprovalStatus, scoutID *uint) (*models.Player, error) {
	player := &models.Player{
		ID:               id,
		PlayerName:       fmt.Sprintf("Player %s", id),
		Position:         utils.ToPtr("Forward"),
		TeamName:         utils.ToPtr("Test FC"),
		Nationality:      utils.ToPtr("Brazil"),
		Attributes:       []string{"pace", "finishing"},
		ApprovalStatus:   status,
		CreatedByScoutID: scoutID,
	}

	if status == models.ApprovalStatusApproved {
		player.ApprovalDate = utils.UTCNowPtr()
	}

	if err := tf.DB.DB.Create(player).Error; err != nil {
		return nil, fmt.Errorf("failed to create test player: %w", err)
	}

	return player, nil
}

// CreateTestReport inserts a report directly with the given identifier and status
func (tf *TestFixtures) CreateTestReport(id, playerID string, status models.ApprovalStatus, scoutID *uint) (*models.Report, error) {
	report := &models.Report{
		ID:               id,
		PlayerID:         playerID,
		Text:             "Strong positional awareness and consistent first touch under pressure.",
		VideoURL:         utils.ToPtr("https://videos.example.com/clips/highlights.mp4"),
		Rating:           utils.ToPtr(8),
		ApprovalStatus:   status,
		CreatedByScoutID: scoutID,
	}

	if status == models.ApprovalStatusApproved {
		report.ApprovalDate = utils.UTCNowPtr()
	}

	if err := tf.DB.DB.Create(report).Error; err != nil {
		return nil, fmt.Errorf("failed to create test report: %w", err)
	}

	return report, nil
}

// CreateTestChangeRequest inserts a change request in the given status
func (tf *TestFixtures) CreateTestChangeRequest(entityType models.EntityType, entityID string, scoutID uint, requestType models.RequestType, status models.RequestStatus) (*models.ChangeRequest, error) {
	request := &models.ChangeRequest{
		UUID:        uuid.New(),
		EntityType:  entityType,
		EntityID:    entityID,
		ScoutID:     scoutID,
		RequestType: requestType,
		Reason:      "Updated medical information changes the assessment.",
		Status:      status,
	}

	if status.Resolved() {
		request.ResolvedAt = utils.UTCNowPtr()
	}

	if err := tf.DB.DB.Create(request).Error; err != nil {
		return nil, fmt.Errorf("failed to create test change request: %w", err)
	}

	return request, nil
}

// CreateTestNotification inserts a notification with the given age
func (tf *TestFixtures) CreateTestNotification(scoutID uint, notificationType models.NotificationType, age time.Duration) (*models.Notification, error) {
	notification := &models.Notification{
		UUID:      uuid.New(),
		ScoutID:   scoutID,
		Type:      notificationType,
		Title:     "Request approved",
		Message:   "Your edit request for Player PLY-00001 was approved.",
		CreatedAt: utils.UTCNow().Add(-age),
	}

	if err := tf.DB.DB.Create(notification).Error; err != nil {
		return nil, fmt.Errorf("failed to create test notification: %w", err)
	}

	return notification, nil
}
