package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MatrimonyListing struct {
	gorm.Model
	UserID     uint           `json:"userID" gorm:"index;not null"`
	User       User           `json:"user" gorm:"foreignKey:UserID"`
	Title      string         `json:"title"`
	Age        int            `json:"age"`
	Gender     string         `json:"gender"`
	Religion   string         `json:"religion"`
	Education  string         `json:"education"`
	Profession string         `json:"profession"`
	Bio        string         `json:"bio"`
	Photos     datatypes.JSON `json:"photos"`
	Location   string         `json:"location"`
	Status     string         `json:"status" gorm:"type:varchar(20);default:pending;index"` // pending, active, rejected
}

func (m *MatrimonyListing) EntityID() uint          { return m.ID }
func (m *MatrimonyListing) DisplayName() string     { return m.Title }
func (m *MatrimonyListing) SetStatus(status string) { m.Status = status }
func (m *MatrimonyListing) RecipientID() uint       { return m.UserID }
func (m *MatrimonyListing) CreationTime() time.Time { return m.CreatedAt }

// Custom JSON marshaling to expose Photos as an array of URLs.
func (m *MatrimonyListing) MarshalJSON() ([]byte, error) {
	type Alias MatrimonyListing
	aux := &struct {
		Photos []string `json:"photos"`
		*Alias
	}{
		Photos: []string{},
		Alias:  (*Alias)(m),
	}

	if m.Photos != nil {
		var photos []string
		if err := json.Unmarshal(m.Photos, &photos); err == nil {
			aux.Photos = photos
		}
	}

	return json.Marshal(aux)
}
