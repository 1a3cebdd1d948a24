package usecase

import (
	"context"
	"fmt"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/geo"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/model"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/repository"

	"github.com/paulmach/orb"
)

// MatchGeofence returns the first geofence, in slice order, that contains
// the point, or nil.
func MatchGeofence(geofences []model.Geofence, lat, lng float64) *model.Geofence {
	p := orb.Point{lng, lat}
	for i := range geofences {
		if geo.Contains(geofences[i].Ring(), p) {
			return &geofences[i]
		}
	}
	return nil
}

// GeofenceMatcher tags coordinates with the sector of an active geofence.
type GeofenceMatcher struct{}

// Match evaluates the organization's active geofences in ascending id order.
func (GeofenceMatcher) Match(ctx context.Context, repo repository.GeofenceRepository, orgID uint, lat, lng float64) (*model.Geofence, error) {
	geofences, err := repo.ListActive(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("list geofences: %w", err)
	}
	return MatchGeofence(geofences, lat, lng), nil
}
