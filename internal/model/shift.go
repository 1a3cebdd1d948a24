package model

import "gorm.io/gorm"

// Shift is a recurring daily window. EndTime before StartTime means the
// window wraps past midnight.
type Shift struct {
	gorm.Model
	OrganizationID uint   `json:"organization_id" gorm:"index;not null"`
	Code           string `json:"code" gorm:"size:32;not null"`
	Name           string `json:"name"`
	StartTime      string `json:"start_time" gorm:"size:8;not null"` // "07:30" or "07:30:00"
	EndTime        string `json:"end_time" gorm:"size:8;not null"`
	Active         bool   `json:"active" gorm:"not null"`
}
