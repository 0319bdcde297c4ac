package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProductListing struct {
	gorm.Model
	UserID      uint           `json:"userID" gorm:"index;not null"`
	User        User           `json:"user" gorm:"foreignKey:UserID"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	Currency    string         `json:"currency"`
	Category    string         `json:"category"`
	Condition   string         `json:"condition"` // new, like_new, used
	Images      datatypes.JSON `json:"images"`
	Location    string         `json:"location"`
	Status      string         `json:"status" gorm:"type:varchar(20);default:pending;index"` // pending, active, rejected
}

func (p *ProductListing) EntityID() uint          { return p.ID }
func (p *ProductListing) DisplayName() string     { return p.Title }
func (p *ProductListing) SetStatus(status string) { p.Status = status }
func (p *ProductListing) RecipientID() uint       { return p.UserID }
func (p *ProductListing) CreationTime() time.Time { return p.CreatedAt }

// Custom JSON marshaling to expose Images as an array of URLs.
func (p *ProductListing) MarshalJSON() ([]byte, error) {
	type Alias ProductListing
	aux := &struct {
		Images []string `json:"images"`
		*Alias
	}{
		Images: []string{},
		Alias:  (*Alias)(p),
	}

	if p.Images != nil {
		var images []string
		if err := json.Unmarshal(p.Images, &images); err == nil {
			aux.Images = images
		}
	}

	return json.Marshal(aux)
}
