package database

import (
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/model"

	"gorm.io/gorm"
)

// Models lists every table, parents before children.
func Models() []interface{} {
	return []interface{}{
		&model.Organization{},
		&model.Department{},
		&model.WebUser{},
		&model.Shift{},
		&model.Geofence{},
		&model.GeofencePoint{},
		&model.Person{},
		&model.Supervisor{},
		&model.Location{},
		&model.AttendanceMark{},
		&model.PatrolPing{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
