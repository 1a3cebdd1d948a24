package model

import (
	"time"

	"gorm.io/gorm"
)

type Supervisor struct {
	gorm.Model
	OrganizationID uint   `json:"organization_id" gorm:"not null;uniqueIndex:idx_supervisor_org_dni,priority:1"`
	DNI            string `json:"dni" gorm:"size:20;not null;uniqueIndex:idx_supervisor_org_dni,priority:2"`
	Name           string `json:"name"`
}

// PatrolPing is a raw position report; pings are never updated.
type PatrolPing struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	OrganizationID uint      `json:"organization_id" gorm:"index;not null"`
	SupervisorID   uint      `json:"supervisor_id" gorm:"not null;index:idx_pings_supervisor_created,priority:1"`
	ShiftID        uint      `json:"shift_id" gorm:"not null"`
	Lat            float64   `json:"lat" gorm:"not null"`
	Lng            float64   `json:"lng" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at" gorm:"not null;index:idx_pings_supervisor_created,priority:2"`

	Supervisor *Supervisor `json:"supervisor,omitempty" gorm:"foreignKey:SupervisorID"`
}
