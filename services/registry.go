package services

import (
	"errors"
	"fmt"
	"time"

	"marketplace-server/models"

	"gorm.io/gorm"
)

// EntityKind tags one moderatable entity family. The set is closed: adding a
// kind means registering it below, never branching in the transition engine.
type EntityKind string

const (
	KindProduct   EntityKind = "product"
	KindService   EntityKind = "service"
	KindJob       EntityKind = "job"
	KindMatrimony EntityKind = "matrimony"
	KindUser      EntityKind = "user"
	KindInterest  EntityKind = "interest"
)

// ListingKinds are the sub-kinds merged together when a moderator asks for
// type=all. Users and interests have their own queues.
var ListingKinds = []EntityKind{KindProduct, KindService, KindJob, KindMatrimony}

// Moderatable is the capability every registered kind exposes to the
// transition engine and the queue service.
type Moderatable interface {
	EntityID() uint
	DisplayName() string
	SetStatus(status string)
	// RecipientID is the user notified about the moderation outcome: the
	// owner for listings and accounts, the sender for interests.
	RecipientID() uint
	CreationTime() time.Time
}

// ReceiverNotifier is an optional capability. Kinds whose approval also alerts
// a second party (interests alert the listing owner) implement it; rejection
// never triggers it.
type ReceiverNotifier interface {
	ReceiverRecipientID() uint
	ReceivedNotification() (title, message string)
}

// KindSpec is one registry entry: how to load, relist and describe a kind,
// and which status values approve/reject map onto.
type KindSpec struct {
	Kind            EntityKind
	Label           string
	NotFoundMessage string

	ApprovedStatus string
	RejectedStatus string

	NotificationType string
	RelatedModel     string

	// Describe builds the moderation notification addressed to the primary
	// recipient. outcome is "approved" or "rejected".
	Describe func(entity Moderatable, outcome string) (title, message string)

	// Load fetches the entity with the relations a notification needs.
	// Returns the raw storage error; callers map gorm.ErrRecordNotFound.
	Load func(db *gorm.DB, id uint) (Moderatable, error)

	// List and Count back the moderation queue. limit <= 0 means unpaginated,
	// which the merged type=all path relies on. Nil for non-listing kinds.
	List  func(db *gorm.DB, status string, offset, limit int) ([]QueuedListing, error)
	Count func(db *gorm.DB, status string) (int64, error)
}

var kindRegistry map[EntityKind]*KindSpec

func init() {
	kindRegistry = map[EntityKind]*KindSpec{
		KindProduct: {
			Kind:             KindProduct,
			Label:            "Listing",
			NotFoundMessage:  "Listing not found",
			ApprovedStatus:   "active",
			RejectedStatus:   "rejected",
			NotificationType: "listing_moderation",
			RelatedModel:     "product",
			Describe:         describeListing(KindProduct),
			Load:             loadListing[models.ProductListing, *models.ProductListing],
			List:             listListings[models.ProductListing, *models.ProductListing](KindProduct),
			Count:            countByStatus[models.ProductListing],
		},
		KindService: {
			Kind:             KindService,
			Label:            "Listing",
			NotFoundMessage:  "Listing not found",
			ApprovedStatus:   "active",
			RejectedStatus:   "rejected",
			NotificationType: "listing_moderation",
			RelatedModel:     "service",
			Describe:         describeListing(KindService),
			Load:             loadListing[models.ServiceListing, *models.ServiceListing],
			List:             listListings[models.ServiceListing, *models.ServiceListing](KindService),
			Count:            countByStatus[models.ServiceListing],
		},
		KindJob: {
			Kind:             KindJob,
			Label:            "Listing",
			NotFoundMessage:  "Listing not found",
			ApprovedStatus:   "active",
			RejectedStatus:   "rejected",
			NotificationType: "listing_moderation",
			RelatedModel:     "job",
			Describe:         describeListing(KindJob),
			Load:             loadListing[models.JobListing, *models.JobListing],
			List:             listListings[models.JobListing, *models.JobListing](KindJob),
			Count:            countByStatus[models.JobListing],
		},
		KindMatrimony: {
			Kind:             KindMatrimony,
			Label:            "Listing",
			NotFoundMessage:  "Listing not found",
			ApprovedStatus:   "active",
			RejectedStatus:   "rejected",
			NotificationType: "listing_moderation",
			RelatedModel:     "matrimony",
			Describe:         describeListing(KindMatrimony),
			Load:             loadListing[models.MatrimonyListing, *models.MatrimonyListing],
			List:             listListings[models.MatrimonyListing, *models.MatrimonyListing](KindMatrimony),
			Count:            countByStatus[models.MatrimonyListing],
		},
		KindUser: {
			Kind:             KindUser,
			Label:            "User",
			NotFoundMessage:  "User not found",
			ApprovedStatus:   "active",
			RejectedStatus:   "inactive",
			NotificationType: "account_moderation",
			RelatedModel:     "user",
			Describe:         describeUser,
			Load:             loadUser,
		},
		KindInterest: {
			Kind:             KindInterest,
			Label:            "Interest",
			NotFoundMessage:  "Interest not found",
			ApprovedStatus:   "approved",
			RejectedStatus:   "rejected",
			NotificationType: "interest_moderation",
			RelatedModel:     "interest",
			Describe:         describeInterest,
			Load:             loadInterest,
		},
	}
}

// LookupKind resolves a kind tag. An unknown tag is a client error, never a
// server fault.
func LookupKind(tag string) (*KindSpec, error) {
	spec, ok := kindRegistry[EntityKind(tag)]
	if !ok {
		return nil, &ValidationError{Message: "Invalid listing type"}
	}
	return spec, nil
}

// LookupListingKind resolves a listing sub-kind tag, rejecting user/interest.
func LookupListingKind(tag string) (*KindSpec, error) {
	spec, err := LookupKind(tag)
	if err != nil {
		return nil, err
	}
	if spec.NotificationType != "listing_moderation" {
		return nil, &ValidationError{Message: "Invalid listing type"}
	}
	return spec, nil
}

// ownerProfile limits a joined user to the fields a moderator needs to see.
func ownerProfile(db *gorm.DB) *gorm.DB {
	return db.Select("id", "first_name", "last_name", "email")
}

type moderatablePtr[T any] interface {
	*T
	Moderatable
}

func loadListing[T any, P moderatablePtr[T]](db *gorm.DB, id uint) (Moderatable, error) {
	var row T
	if err := db.Preload("User", ownerProfile).First(&row, id).Error; err != nil {
		return nil, err
	}
	return P(&row), nil
}

func listListings[T any, P moderatablePtr[T]](kind EntityKind) func(db *gorm.DB, status string, offset, limit int) ([]QueuedListing, error) {
	return func(db *gorm.DB, status string, offset, limit int) ([]QueuedListing, error) {
		var rows []T
		q := db.Where("status = ?", status).Order("created_at DESC").Preload("User", ownerProfile)
		if limit > 0 {
			q = q.Offset(offset).Limit(limit)
		}
		if err := q.Find(&rows).Error; err != nil {
			return nil, err
		}
		items := make([]QueuedListing, len(rows))
		for i := range rows {
			record := P(&rows[i])
			items[i] = QueuedListing{
				ListingType: kind,
				CreatedAt:   record.CreationTime(),
				Record:      record,
			}
		}
		return items, nil
	}
}

func countByStatus[T any](db *gorm.DB, status string) (int64, error) {
	var total int64
	err := db.Model(new(T)).Where("status = ?", status).Count(&total).Error
	return total, err
}

func loadUser(db *gorm.DB, id uint) (Moderatable, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func loadInterest(db *gorm.DB, id uint) (Moderatable, error) {
	var interest models.Interest
	err := db.Preload("Sender", ownerProfile).Preload("Receiver", ownerProfile).First(&interest, id).Error
	if err != nil {
		return nil, err
	}
	if err := resolveInterestListing(db, &interest); err != nil {
		return nil, err
	}
	return &interest, nil
}

// resolveInterestListing fills in the polymorphic listing reference. A dangling
// or unknown reference leaves Listing nil rather than failing the interest,
// matching how a dead reference degrades elsewhere in the system.
func resolveInterestListing(db *gorm.DB, interest *models.Interest) error {
	spec, err := LookupListingKind(interest.ListingType)
	if err != nil {
		return nil
	}
	entity, loadErr := spec.Load(db, interest.ListingID)
	if loadErr != nil {
		if errors.Is(loadErr, gorm.ErrRecordNotFound) {
			return nil
		}
		return loadErr
	}
	related := &models.RelatedListing{ID: entity.EntityID()}
	if spec.Kind == KindJob {
		related.JobTitle = entity.DisplayName()
	} else {
		related.Title = entity.DisplayName()
	}
	interest.Listing = related
	return nil
}

func describeListing(kind EntityKind) func(entity Moderatable, outcome string) (string, string) {
	return func(entity Moderatable, outcome string) (string, string) {
		title := fmt.Sprintf("Your %s listing has been %s", kind, outcome)
		message := fmt.Sprintf("Your listing %q has been %s by a moderator.", entity.DisplayName(), outcome)
		return title, message
	}
}

func describeUser(_ Moderatable, outcome string) (string, string) {
	title := fmt.Sprintf("Your account has been %s", outcome)
	message := fmt.Sprintf("Your account has been %s by a moderator.", outcome)
	return title, message
}

func describeInterest(entity Moderatable, outcome string) (string, string) {
	title := fmt.Sprintf("Your interest has been %s", outcome)
	message := fmt.Sprintf("Your interest in %q has been %s by a moderator.", entity.DisplayName(), outcome)
	return title, message
}
