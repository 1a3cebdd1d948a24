package model

import (
	"sort"

	"github.com/paulmach/orb"
	"gorm.io/gorm"
)

type Geofence struct {
	gorm.Model
	OrganizationID uint            `json:"organization_id" gorm:"index;not null"`
	Name           string          `json:"name" gorm:"not null"`
	Color          string          `json:"color" gorm:"size:16"`
	Active         bool            `json:"active" gorm:"not null"`
	Points         []GeofencePoint `json:"points" gorm:"constraint:OnDelete:CASCADE"`
}

type GeofencePoint struct {
	ID         uint    `json:"-" gorm:"primaryKey"`
	GeofenceID uint    `json:"-" gorm:"index;not null"`
	Seq        int     `json:"seq" gorm:"not null"`
	Lat        float64 `json:"lat" gorm:"not null"`
	Lng        float64 `json:"lng" gorm:"not null"`
}

// Ring returns the polygon in vertex order as an orb ring (X=lng, Y=lat).
func (g *Geofence) Ring() orb.Ring {
	points := make([]GeofencePoint, len(g.Points))
	copy(points, g.Points)
	sort.SliceStable(points, func(i, j int) bool { return points[i].Seq < points[j].Seq })

	ring := make(orb.Ring, 0, len(points))
	for _, p := range points {
		ring = append(ring, orb.Point{p.Lng, p.Lat})
	}
	return ring
}
