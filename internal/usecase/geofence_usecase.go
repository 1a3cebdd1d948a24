package usecase

import (
	"context"
	"errors"
	"sort"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/apperror"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/geo"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/model"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/repository"

	"gorm.io/gorm"
)

type PointInput struct {
	Seq int     `json:"seq"`
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type GeofenceInput struct {
	Name   string       `json:"name"`
	Color  string       `json:"color"`
	Points []PointInput `json:"points"`
}

// points validates the polygon and renumbers vertices 1..n in the order
// given by Seq, ties keeping request order.
func (in GeofenceInput) points() ([]model.GeofencePoint, error) {
	if cleanText(in.Name) == "" || cleanText(in.Color) == "" {
		return nil, apperror.Validation(apperror.CodeInvalidInput, "name y color son requeridos")
	}
	if len(in.Points) < geo.MinVertices {
		return nil, apperror.Validation(apperror.CodeInvalidInput, "la geocerca necesita al menos 3 puntos")
	}

	sorted := make([]PointInput, len(in.Points))
	copy(sorted, in.Points)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Seq < sorted[j].Seq })

	points := make([]model.GeofencePoint, 0, len(sorted))
	for i, p := range sorted {
		if !geo.ValidCoordinate(p.Lat, p.Lng) {
			return nil, apperror.Validation(apperror.CodeInvalidInput, "coordenadas fuera de rango")
		}
		points = append(points, model.GeofencePoint{Seq: i + 1, Lat: p.Lat, Lng: p.Lng})
	}
	return points, nil
}

type GeofenceUsecase struct {
	store repository.Store
}

func NewGeofenceUsecase(store repository.Store) *GeofenceUsecase {
	return &GeofenceUsecase{store: store}
}

func (u *GeofenceUsecase) List(ctx context.Context, orgID uint) ([]model.Geofence, error) {
	geofences, err := u.store.Geofences().ListActive(ctx, orgID)
	if err != nil {
		return nil, apperror.FromDB("no se pudo listar las geocercas", err)
	}
	return geofences, nil
}

func (u *GeofenceUsecase) Create(ctx context.Context, orgID uint, in GeofenceInput) (*model.Geofence, error) {
	points, err := in.points()
	if err != nil {
		return nil, err
	}
	geofence := &model.Geofence{
		OrganizationID: orgID,
		Name:           cleanText(in.Name),
		Color:          cleanText(in.Color),
		Active:         true,
		Points:         points,
	}
	if err := u.store.Geofences().Create(ctx, geofence); err != nil {
		return nil, apperror.FromDB("no se pudo crear la geocerca", err)
	}
	return geofence, nil
}

func (u *GeofenceUsecase) Update(ctx context.Context, orgID, id uint, in GeofenceInput) (*model.Geofence, error) {
	points, err := in.points()
	if err != nil {
		return nil, err
	}
	geofence := &model.Geofence{
		OrganizationID: orgID,
		Name:           cleanText(in.Name),
		Color:          cleanText(in.Color),
		Active:         true,
		Points:         points,
	}
	geofence.ID = id

	err = u.store.Geofences().Update(ctx, geofence)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("unknown_geofence", "geocerca no encontrada")
	}
	if err != nil {
		return nil, apperror.FromDB("no se pudo actualizar la geocerca", err)
	}
	return geofence, nil
}

func (u *GeofenceUsecase) Deactivate(ctx context.Context, orgID, id uint) error {
	err := u.store.Geofences().Deactivate(ctx, orgID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound("unknown_geofence", "geocerca no encontrada")
	}
	return apperror.FromDB("no se pudo desactivar la geocerca", err)
}
