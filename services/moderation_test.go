package services

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"marketplace-server/models"
	"marketplace-server/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.ProductListing{},
		&models.ServiceListing{},
		&models.JobListing{},
		&models.MatrimonyListing{},
		&models.Interest{},
		&models.Notification{},
		&models.AuditLog{},
	))

	storage.DB = db
	return db
}

func seedUser(t *testing.T, db *gorm.DB, firstName, lastName string) models.User {
	t.Helper()
	user := models.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     fmt.Sprintf("%s.%s@example.com", firstName, lastName),
		Status:    "pending",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, owner models.User, title string, createdAt time.Time) models.ProductListing {
	t.Helper()
	listing := models.ProductListing{
		UserID: owner.ID,
		Title:  title,
		Price:  100,
		Status: "pending",
		Images: datatypes.JSON(`["https://img.example.com/1.jpg"]`),
	}
	listing.CreatedAt = createdAt
	require.NoError(t, db.Create(&listing).Error)
	return listing
}

func seedJob(t *testing.T, db *gorm.DB, owner models.User, jobTitle string, createdAt time.Time) models.JobListing {
	t.Helper()
	listing := models.JobListing{
		UserID:      owner.ID,
		JobTitle:    jobTitle,
		CompanyName: "Acme",
		Status:      "pending",
	}
	listing.CreatedAt = createdAt
	require.NoError(t, db.Create(&listing).Error)
	return listing
}

func seedService(t *testing.T, db *gorm.DB, owner models.User, title string, createdAt time.Time) models.ServiceListing {
	t.Helper()
	listing := models.ServiceListing{
		UserID: owner.ID,
		Title:  title,
		Status: "pending",
	}
	listing.CreatedAt = createdAt
	require.NoError(t, db.Create(&listing).Error)
	return listing
}

func seedMatrimony(t *testing.T, db *gorm.DB, owner models.User, title string, createdAt time.Time) models.MatrimonyListing {
	t.Helper()
	listing := models.MatrimonyListing{
		UserID: owner.ID,
		Title:  title,
		Status: "pending",
	}
	listing.CreatedAt = createdAt
	require.NoError(t, db.Create(&listing).Error)
	return listing
}

func seedInterest(t *testing.T, db *gorm.DB, sender, receiver models.User, listingID uint, listingType string) models.Interest {
	t.Helper()
	interest := models.Interest{
		SenderID:    sender.ID,
		ReceiverID:  receiver.ID,
		ListingID:   listingID,
		ListingType: listingType,
		Status:      "pending",
	}
	require.NoError(t, db.Create(&interest).Error)
	return interest
}

func notificationsFor(t *testing.T, db *gorm.DB, recipientID uint) []models.Notification {
	t.Helper()
	var notifications []models.Notification
	require.NoError(t, db.Where("recipient_id = ?", recipientID).Order("id").Find(&notifications).Error)
	return notifications
}

func TestTransitionApproveProductListing(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "Amina", "Diallo")
	listing := seedProduct(t, db, owner, "Vintage Camera", time.Now())

	err := NewModerationService().Transition("product", listing.ID, "approve")
	require.NoError(t, err)

	var reloaded models.ProductListing
	require.NoError(t, db.First(&reloaded, listing.ID).Error)
	assert.Equal(t, "active", reloaded.Status)

	notifications := notificationsFor(t, db, owner.ID)
	require.Len(t, notifications, 1)
	assert.Equal(t, "listing_moderation", notifications[0].Type)
	assert.Equal(t, "Your product listing has been approved", notifications[0].Title)
	assert.Contains(t, notifications[0].Message, "Vintage Camera")
	assert.Contains(t, notifications[0].Message, "approved by a moderator")
	assert.Equal(t, "product", notifications[0].RelatedModel)
	assert.Equal(t, listing.ID, notifications[0].RelatedID)
}

func TestTransitionRejectListing(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "Bilal", "Kane")
	listing := seedService(t, db, owner, "House Painting", time.Now())

	require.NoError(t, NewModerationService().Transition("service", listing.ID, "reject"))

	var reloaded models.ServiceListing
	require.NoError(t, db.First(&reloaded, listing.ID).Error)
	assert.Equal(t, "rejected", reloaded.Status)

	notifications := notificationsFor(t, db, owner.ID)
	require.Len(t, notifications, 1)
	assert.Contains(t, notifications[0].Message, "rejected by a moderator")
}

func TestTransitionUserStatusMapping(t *testing.T) {
	db := setupTestDB(t)
	svc := NewModerationService()

	approved := seedUser(t, db, "Cheikh", "Fall")
	require.NoError(t, svc.Transition("user", approved.ID, "approve"))
	var reloaded models.User
	require.NoError(t, db.First(&reloaded, approved.ID).Error)
	assert.Equal(t, "active", reloaded.Status)

	rejected := seedUser(t, db, "Dieynaba", "Sow")
	require.NoError(t, svc.Transition("user", rejected.ID, "reject"))
	reloaded = models.User{}
	require.NoError(t, db.First(&reloaded, rejected.ID).Error)
	assert.Equal(t, "inactive", reloaded.Status)

	notifications := notificationsFor(t, db, approved.ID)
	require.Len(t, notifications, 1)
	assert.Equal(t, "account_moderation", notifications[0].Type)
	assert.Equal(t, "Your account has been approved", notifications[0].Title)
}

func TestTransitionInterestApproveNotifiesBothParties(t *testing.T) {
	db := setupTestDB(t)
	sender := seedUser(t, db, "Fatou", "Ba")
	receiver := seedUser(t, db, "Gora", "Ndiaye")
	listing := seedProduct(t, db, receiver, "Leather Sofa", time.Now())
	interest := seedInterest(t, db, sender, receiver, listing.ID, "product")

	require.NoError(t, NewModerationService().Transition("interest", interest.ID, "approve"))

	var reloaded models.Interest
	require.NoError(t, db.First(&reloaded, interest.ID).Error)
	assert.Equal(t, "approved", reloaded.Status)

	senderNotifications := notificationsFor(t, db, sender.ID)
	require.Len(t, senderNotifications, 1)
	assert.Equal(t, "interest_moderation", senderNotifications[0].Type)
	assert.Contains(t, senderNotifications[0].Message, "Leather Sofa")

	receiverNotifications := notificationsFor(t, db, receiver.ID)
	require.Len(t, receiverNotifications, 1)
	assert.Equal(t, "interest_received", receiverNotifications[0].Type)
	assert.Contains(t, receiverNotifications[0].Message, "Fatou Ba")
	assert.Contains(t, receiverNotifications[0].Message, "Leather Sofa")
}

func TestTransitionInterestRejectIsSilentToReceiver(t *testing.T) {
	db := setupTestDB(t)
	sender := seedUser(t, db, "Hawa", "Toure")
	receiver := seedUser(t, db, "Ibrahima", "Sy")
	listing := seedProduct(t, db, receiver, "Mountain Bike", time.Now())
	interest := seedInterest(t, db, sender, receiver, listing.ID, "product")

	require.NoError(t, NewModerationService().Transition("interest", interest.ID, "reject"))

	assert.Len(t, notificationsFor(t, db, sender.ID), 1)
	assert.Empty(t, notificationsFor(t, db, receiver.ID))
}

func TestTransitionInterestJobTitleFallback(t *testing.T) {
	db := setupTestDB(t)
	sender := seedUser(t, db, "Khady", "Gueye")
	receiver := seedUser(t, db, "Lamine", "Diop")
	job := seedJob(t, db, receiver, "Backend Engineer", time.Now())
	interest := seedInterest(t, db, sender, receiver, job.ID, "job")

	require.NoError(t, NewModerationService().Transition("interest", interest.ID, "approve"))

	notifications := notificationsFor(t, db, sender.ID)
	require.Len(t, notifications, 1)
	assert.Contains(t, notifications[0].Message, "Backend Engineer")
}

func TestTransitionInvalidActionTouchesNothing(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "Mame", "Cisse")
	listing := seedProduct(t, db, owner, "Espresso Machine", time.Now())

	err := NewModerationService().Transition("product", listing.ID, "archive")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Invalid action", validationErr.Message)

	var reloaded models.ProductListing
	require.NoError(t, db.First(&reloaded, listing.ID).Error)
	assert.Equal(t, "pending", reloaded.Status)
	assert.Empty(t, notificationsFor(t, db, owner.ID))
}

func TestTransitionUnknownKind(t *testing.T) {
	setupTestDB(t)

	err := NewModerationService().Transition("vehicle", 1, "approve")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Invalid listing type", validationErr.Message)
}

func TestTransitionNotFound(t *testing.T) {
	setupTestDB(t)

	err := NewModerationService().Transition("product", 9999, "approve")
	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "Listing not found", notFoundErr.Message)
}

// Re-approving an already active listing succeeds again and writes a second
// notification. The engine deliberately has no prior-status guard.
func TestTransitionRepeatApprove(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "Ndeye", "Faye")
	listing := seedProduct(t, db, owner, "Office Chair", time.Now())
	svc := NewModerationService()

	require.NoError(t, svc.Transition("product", listing.ID, "approve"))
	require.NoError(t, svc.Transition("product", listing.ID, "approve"))

	var reloaded models.ProductListing
	require.NoError(t, db.First(&reloaded, listing.ID).Error)
	assert.Equal(t, "active", reloaded.Status)
	assert.Len(t, notificationsFor(t, db, owner.ID), 2)
}

func TestBulkTransitionPartialFailure(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "Omar", "Niang")
	first := seedProduct(t, db, owner, "Bookshelf", time.Now())
	second := seedJob(t, db, owner, "Site Supervisor", time.Now())
	third := seedMatrimony(t, db, owner, "Profile of Omar", time.Now())

	items := []BulkItem{
		{ID: first.ID, Kind: "product"},
		{ID: second.ID, Kind: "job"},
		{ID: third.ID, Kind: "matrimony"},
		{ID: 9998, Kind: "product"},
		{ID: 9999, Kind: "service"},
	}

	results, err := NewModerationService().BulkTransition(items, "approve")
	require.NoError(t, err)
	require.Len(t, results.Success, 3)
	require.Len(t, results.Failed, 2)

	assert.Equal(t, BulkOutcome{ID: first.ID, Kind: "product"}, results.Success[0])
	for _, failure := range results.Failed {
		assert.Equal(t, "Listing not found", failure.Error)
	}
	assert.Equal(t, uint(9998), results.Failed[0].ID)
	assert.Equal(t, uint(9999), results.Failed[1].ID)

	var reloaded models.JobListing
	require.NoError(t, db.First(&reloaded, second.ID).Error)
	assert.Equal(t, "active", reloaded.Status)
}

func TestBulkTransitionUnknownKindItemContinues(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "Penda", "Mbaye")
	listing := seedProduct(t, db, owner, "Dining Table", time.Now())

	items := []BulkItem{
		{ID: 1, Kind: "vehicle"},
		{ID: listing.ID, Kind: "product"},
	}

	results, err := NewModerationService().BulkTransition(items, "reject")
	require.NoError(t, err)
	require.Len(t, results.Success, 1)
	require.Len(t, results.Failed, 1)
	assert.Equal(t, "Invalid listing type", results.Failed[0].Error)
	assert.Equal(t, "vehicle", results.Failed[0].Kind)
}

func TestBulkTransitionUpfrontValidation(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "Rama", "Seck")
	listing := seedProduct(t, db, owner, "Acoustic Guitar", time.Now())
	svc := NewModerationService()

	var validationErr *ValidationError

	_, err := svc.BulkTransition(nil, "approve")
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Invalid request data", validationErr.Message)

	_, err = svc.BulkTransition([]BulkItem{{ID: listing.ID, Kind: "product"}}, "promote")
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Invalid action", validationErr.Message)

	// An invalid action aborts the whole batch before any item is touched.
	var reloaded models.ProductListing
	require.NoError(t, db.First(&reloaded, listing.ID).Error)
	assert.Equal(t, "pending", reloaded.Status)
	assert.Empty(t, notificationsFor(t, db, owner.ID))
}

func TestBulkTransitionIDsOmitsKindTag(t *testing.T) {
	db := setupTestDB(t)
	first := seedUser(t, db, "Sokhna", "Dieng")
	second := seedUser(t, db, "Thierno", "Barry")

	results, err := NewModerationService().BulkTransitionIDs("user", []uint{first.ID, second.ID, 9999}, "approve")
	require.NoError(t, err)
	require.Len(t, results.Success, 2)
	require.Len(t, results.Failed, 1)

	assert.Empty(t, results.Success[0].Kind)
	assert.Empty(t, results.Failed[0].Kind)
	assert.Equal(t, "User not found", results.Failed[0].Error)

	encoded, err := json.Marshal(results.Success[0])
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "type")
}
