package models

import (
	"time"

	"gorm.io/gorm"
)

type ServiceListing struct {
	gorm.Model
	UserID       uint    `json:"userID" gorm:"index;not null"`
	User         User    `json:"user" gorm:"foreignKey:UserID"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Rate         float64 `json:"rate"`
	RateUnit     string  `json:"rateUnit"` // hourly, daily, fixed
	Availability string  `json:"availability"`
	Location     string  `json:"location"`
	Status       string  `json:"status" gorm:"type:varchar(20);default:pending;index"` // pending, active, rejected
}

func (s *ServiceListing) EntityID() uint          { return s.ID }
func (s *ServiceListing) DisplayName() string     { return s.Title }
func (s *ServiceListing) SetStatus(status string) { s.Status = status }
func (s *ServiceListing) RecipientID() uint       { return s.UserID }
func (s *ServiceListing) CreationTime() time.Time { return s.CreatedAt }
