package repository

import (
	"context"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/model"

	"gorm.io/gorm"
)

type GeofenceRepository interface {
	// ListActive returns active geofences in ascending id order with their
	// vertices sorted by sequence.
	ListActive(ctx context.Context, orgID uint) ([]model.Geofence, error)
	GetByID(ctx context.Context, orgID, id uint) (*model.Geofence, error)
	Create(ctx context.Context, geofence *model.Geofence) error
	// Update rewrites name and color and replaces every vertex.
	Update(ctx context.Context, geofence *model.Geofence) error
	Deactivate(ctx context.Context, orgID, id uint) error
}

type geofenceRepository struct {
	db *gorm.DB
}

func NewGeofenceRepository(db *gorm.DB) GeofenceRepository {
	return &geofenceRepository{db}
}

func orderedPoints(db *gorm.DB) *gorm.DB {
	return db.Order("seq ASC")
}

func (r *geofenceRepository) ListActive(ctx context.Context, orgID uint) ([]model.Geofence, error) {
	var geofences []model.Geofence
	err := r.db.WithContext(ctx).
		Preload("Points", orderedPoints).
		Where("organization_id = ? AND active = ?", orgID, true).
		Order("id ASC").
		Find(&geofences).Error
	return geofences, err
}

func (r *geofenceRepository) GetByID(ctx context.Context, orgID, id uint) (*model.Geofence, error) {
	var geofence model.Geofence
	err := r.db.WithContext(ctx).
		Preload("Points", orderedPoints).
		Where("organization_id = ?", orgID).
		First(&geofence, id).Error
	if err != nil {
		return nil, err
	}
	return &geofence, nil
}

func (r *geofenceRepository) Create(ctx context.Context, geofence *model.Geofence) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		points := geofence.Points
		geofence.Points = nil
		if err := tx.Create(geofence).Error; err != nil {
			return err
		}
		for i := range points {
			points[i].GeofenceID = geofence.ID
		}
		if len(points) > 0 {
			if err := tx.Create(&points).Error; err != nil {
				return err
			}
		}
		geofence.Points = points
		return nil
	})
}

func (r *geofenceRepository) Update(ctx context.Context, geofence *model.Geofence) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Geofence{}).
			Where("id = ? AND organization_id = ? AND active = ?", geofence.ID, geofence.OrganizationID, true).
			Updates(map[string]interface{}{"name": geofence.Name, "color": geofence.Color})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("geofence_id = ?", geofence.ID).Delete(&model.GeofencePoint{}).Error; err != nil {
			return err
		}
		for i := range geofence.Points {
			geofence.Points[i].ID = 0
			geofence.Points[i].GeofenceID = geofence.ID
		}
		if len(geofence.Points) > 0 {
			return tx.Create(&geofence.Points).Error
		}
		return nil
	})
}

func (r *geofenceRepository) Deactivate(ctx context.Context, orgID, id uint) error {
	res := r.db.WithContext(ctx).Model(&model.Geofence{}).
		Where("id = ? AND organization_id = ?", id, orgID).
		Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
