package models

import "time"

// Notification is a durable, write-once record addressed to one user. Delivery
// (push, in-app listing) happens downstream of the row being committed.
type Notification struct {
	ID          uint `json:"id" gorm:"primaryKey"`
	RecipientID uint `json:"recipientID" gorm:"not null;index"`
	Recipient   User `json:"-" gorm:"foreignKey:RecipientID"`

	Type    string `json:"type" gorm:"size:32;index"` // listing_moderation, account_moderation, interest_moderation, interest_received
	Title   string `json:"title" gorm:"size:200"`
	Message string `json:"message" gorm:"size:500"`

	// Reference back to the entity the notification is about.
	RelatedModel string `json:"relatedModel" gorm:"size:32"`
	RelatedID    uint   `json:"relatedID"`

	IsRead    bool       `json:"isRead" gorm:"default:false;index"`
	CreatedAt time.Time  `json:"createdAt"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
}
