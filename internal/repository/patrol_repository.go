package repository

import (
	"context"
	"time"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/model"

	"gorm.io/gorm"
)

type PatrolRepository interface {
	Create(ctx context.Context, ping *model.PatrolPing) error
	// LatestPerSupervisor returns the newest ping of every supervisor of the
	// organization, with the supervisor preloaded.
	LatestPerSupervisor(ctx context.Context, orgID uint) ([]model.PatrolPing, error)
	// ListBetween returns pings in [from, to) in ascending time order.
	ListBetween(ctx context.Context, orgID, supervisorID uint, from, to time.Time) ([]model.PatrolPing, error)
}

type patrolRepository struct {
	db *gorm.DB
}

func NewPatrolRepository(db *gorm.DB) PatrolRepository {
	return &patrolRepository{db}
}

func (r *patrolRepository) Create(ctx context.Context, ping *model.PatrolPing) error {
	return r.db.WithContext(ctx).Omit("Supervisor").Create(ping).Error
}

func (r *patrolRepository) LatestPerSupervisor(ctx context.Context, orgID uint) ([]model.PatrolPing, error) {
	latest := r.db.Model(&model.PatrolPing{}).
		Select("supervisor_id, MAX(created_at) AS created_at").
		Where("organization_id = ?", orgID).
		Group("supervisor_id")

	var pings []model.PatrolPing
	err := r.db.WithContext(ctx).
		Preload("Supervisor").
		Joins("JOIN (?) AS latest ON latest.supervisor_id = patrol_pings.supervisor_id AND latest.created_at = patrol_pings.created_at", latest).
		Where("patrol_pings.organization_id = ?", orgID).
		Order("patrol_pings.supervisor_id ASC").Order("patrol_pings.id DESC").
		Find(&pings).Error
	if err != nil {
		return nil, err
	}

	// Identical timestamps can yield several rows per supervisor.
	out := pings[:0]
	seen := make(map[uint]bool, len(pings))
	for _, p := range pings {
		if seen[p.SupervisorID] {
			continue
		}
		seen[p.SupervisorID] = true
		out = append(out, p)
	}
	return out, nil
}

func (r *patrolRepository) ListBetween(ctx context.Context, orgID, supervisorID uint, from, to time.Time) ([]model.PatrolPing, error) {
	var pings []model.PatrolPing
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND supervisor_id = ?", orgID, supervisorID).
		Where("created_at >= ? AND created_at < ?", from.UTC(), to.UTC()).
		Order("created_at ASC").Order("id ASC").
		Find(&pings).Error
	return pings, err
}
