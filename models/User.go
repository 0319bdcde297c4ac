package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName           string         `json:"firstName"`
	LastName            string         `json:"lastName"`
	Email               string         `json:"email" gorm:"uniqueIndex"`
	Password            string         `json:"-"`
	PhoneNumber         string         `json:"phoneNumber,omitempty"`
	AvatarURL           string         `json:"avatarURL,omitempty"`
	Bio                 string         `json:"bio,omitempty"`
	Location            string         `json:"location,omitempty"`
	PushTokens          datatypes.JSON `json:"-"`
	AllowsNotifications *bool          `json:"allowsNotifications,omitempty"`
	Role                string         `json:"role,omitempty" gorm:"type:varchar(20);default:user;index"`      // user, moderator, admin
	Status              string         `json:"status,omitempty" gorm:"type:varchar(20);default:pending;index"` // pending, active, inactive
}

func (u *User) EntityID() uint { return u.ID }

func (u *User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) SetStatus(status string) { u.Status = status }

// RecipientID: account moderation notifies the account itself.
func (u *User) RecipientID() uint { return u.ID }

func (u *User) CreationTime() time.Time { return u.CreatedAt }
