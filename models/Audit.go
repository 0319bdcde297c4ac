package models

import (
	"time"
)

type AuditLog struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	ModeratorUserID uint      `json:"moderatorUserID" gorm:"index;not null"`
	Action          string    `json:"action" gorm:"size:64;index"`
	ResourceType    string    `json:"resourceType" gorm:"size:64;index"`
	ResourceID      uint      `json:"resourceID" gorm:"index"`
	DetailJSON      string    `json:"detailJSON" gorm:"type:text"`
	IPAddress       string    `json:"ipAddress" gorm:"size:64"`
	CreatedAt       time.Time `json:"createdAt"`
}
