package model

import "gorm.io/gorm"

type Organization struct {
	gorm.Model
	Code        string       `json:"code" gorm:"size:32;uniqueIndex;not null"`
	Name        string       `json:"name" gorm:"not null"`
	Active      bool         `json:"active" gorm:"not null"`
	Departments []Department `json:"departments,omitempty"`
}

// Department is the org unit a person reports to. Marks keep a text snapshot
// of it, so renaming a department never rewrites history.
type Department struct {
	gorm.Model
	OrganizationID uint   `json:"organization_id" gorm:"index;not null"`
	Name           string `json:"name" gorm:"not null"`
	Active         bool   `json:"active" gorm:"not null"`
}
