package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Interest is one user expressing interest in another user's listing. The
// listing reference is polymorphic (ListingID + ListingType) because each
// listing kind lives in its own table.
type Interest struct {
	gorm.Model
	SenderID    uint   `json:"senderID" gorm:"index;not null"`
	Sender      User   `json:"sender" gorm:"foreignKey:SenderID"`
	ReceiverID  uint   `json:"receiverID" gorm:"index;not null"`
	Receiver    User   `json:"receiver" gorm:"foreignKey:ReceiverID"`
	ListingID   uint   `json:"listingID" gorm:"index;not null"`
	ListingType string `json:"listingType" gorm:"type:varchar(20)"` // product, service, job, matrimony
	Message     string `json:"message" gorm:"size:500"`
	Status      string `json:"status" gorm:"type:varchar(20);default:pending;index"` // pending, approved, rejected

	// Listing is filled in by the loader from the referenced listing's table;
	// it is not a column.
	Listing *RelatedListing `json:"listing,omitempty" gorm:"-"`
}

// RelatedListing carries the display fields of the referenced listing. Job
// listings name the position in JobTitle instead of Title.
type RelatedListing struct {
	ID       uint   `json:"id"`
	Title    string `json:"title,omitempty"`
	JobTitle string `json:"jobTitle,omitempty"`
}

func (r *RelatedListing) DisplayName() string {
	if r.Title != "" {
		return r.Title
	}
	return r.JobTitle
}

func (i *Interest) EntityID() uint { return i.ID }

func (i *Interest) DisplayName() string {
	if i.Listing == nil {
		return ""
	}
	return i.Listing.DisplayName()
}

func (i *Interest) SetStatus(status string) { i.Status = status }

// RecipientID: interest moderation notifies the sender.
func (i *Interest) RecipientID() uint { return i.SenderID }

func (i *Interest) CreationTime() time.Time { return i.CreatedAt }

// ReceiverRecipientID and ReceivedNotification let an approved interest alert
// the listing owner as well. Rejections stay silent to the receiver.
func (i *Interest) ReceiverRecipientID() uint { return i.ReceiverID }

func (i *Interest) ReceivedNotification() (title, message string) {
	title = "You have received an interest"
	message = fmt.Sprintf("%s %s has shown interest in your listing %q.",
		i.Sender.FirstName, i.Sender.LastName, i.DisplayName())
	return title, message
}
