package models

import (
	"time"

	"gorm.io/gorm"
)

// JobListing has no Title column: the position name lives in JobTitle, which is
// why display-name resolution falls back to it for this kind.
type JobListing struct {
	gorm.Model
	UserID      uint    `json:"userID" gorm:"index;not null"`
	User        User    `json:"user" gorm:"foreignKey:UserID"`
	JobTitle    string  `json:"jobTitle"`
	CompanyName string  `json:"companyName"`
	Description string  `json:"description"`
	Salary      float64 `json:"salary"`
	SalaryUnit  string  `json:"salaryUnit"` // monthly, yearly
	JobType     string  `json:"jobType"`    // full_time, part_time, contract
	Location    string  `json:"location"`
	Status      string  `json:"status" gorm:"type:varchar(20);default:pending;index"` // pending, active, rejected
}

func (j *JobListing) EntityID() uint          { return j.ID }
func (j *JobListing) DisplayName() string     { return j.JobTitle }
func (j *JobListing) SetStatus(status string) { j.Status = status }
func (j *JobListing) RecipientID() uint       { return j.UserID }
func (j *JobListing) CreationTime() time.Time { return j.CreatedAt }
