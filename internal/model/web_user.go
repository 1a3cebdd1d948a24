package model

import "gorm.io/gorm"

const (
	RoleAdmin      = "ADMIN"
	RoleSupervisor = "SUPERVISOR"
)

type WebUser struct {
	gorm.Model
	OrganizationID uint   `json:"organization_id" gorm:"not null;uniqueIndex:idx_web_user_org_email,priority:1"`
	Name           string `json:"name" gorm:"not null"`
	Email          string `json:"email" gorm:"size:191;not null;uniqueIndex:idx_web_user_org_email,priority:2"`
	PasswordHash   string `json:"-" gorm:"not null"`
	Role           string `json:"role" gorm:"size:16;not null"`
	Active         bool   `json:"active" gorm:"not null"`
}
