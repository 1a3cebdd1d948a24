package model

import "time"

// Person is keyed by national ID and overwritten on every scan.
type Person struct {
	DNI            string    `json:"dni" gorm:"primaryKey;size:20"`
	OrganizationID uint      `json:"organization_id" gorm:"index;not null"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	Department     string    `json:"department"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Location struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	OrganizationID uint      `json:"organization_id" gorm:"index;not null"`
	Lat            float64   `json:"lat" gorm:"not null"`
	Lng            float64   `json:"lng" gorm:"not null"`
	Sector         *string   `json:"sector"`
	CreatedAt      time.Time `json:"created_at"`
}

// AttendanceMark is append-only. CreatedAt is the authoritative instant;
// Date and Time are the business-local snapshot of that same instant.
type AttendanceMark struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	OrganizationID uint      `json:"organization_id" gorm:"index;not null"`
	PersonDNI      string    `json:"person_dni" gorm:"size:20;not null;index:idx_marks_person_created,priority:1"`
	SupervisorID   *uint     `json:"supervisor_id"`
	LocationID     uint      `json:"location_id" gorm:"not null"`
	ShiftID        uint      `json:"shift_id" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at" gorm:"not null;index:idx_marks_person_created,priority:2;index"`
	Date           string    `json:"date" gorm:"size:10;not null;index"`
	Time           string    `json:"time" gorm:"size:8;not null"`
	Department     string    `json:"department"`
	Comment        string    `json:"comment" gorm:"not null"`

	// Relations
	Person     *Person     `json:"person,omitempty" gorm:"foreignKey:PersonDNI;references:DNI"`
	Supervisor *Supervisor `json:"supervisor,omitempty" gorm:"foreignKey:SupervisorID"`
	Location   *Location   `json:"location,omitempty" gorm:"foreignKey:LocationID"`
	Shift      *Shift      `json:"shift,omitempty" gorm:"foreignKey:ShiftID"`
}
