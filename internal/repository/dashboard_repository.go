package repository

import (
	"context"
	"time"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/model"

	"gorm.io/gorm"
)

type DashboardRepository interface {
	GetDashboardStats(ctx context.Context, orgID uint, date string, activeSince time.Time) (map[string]interface{}, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db}
}

func (r *dashboardRepository) GetDashboardStats(ctx context.Context, orgID uint, date string, activeSince time.Time) (map[string]interface{}, error) {
	db := r.db.WithContext(ctx)
	stats := make(map[string]interface{})

	// 1. People seen by this organization
	var totalPeople int64
	if err := db.Model(&model.Person{}).Where("organization_id = ?", orgID).Count(&totalPeople).Error; err != nil {
		return nil, err
	}
	stats["total_people"] = totalPeople

	// 2. Marks today, split by shift
	var daily []struct {
		Code  string
		Count int64
	}
	err := db.Table("attendance_marks").
		Joins("JOIN shifts ON shifts.id = attendance_marks.shift_id").
		Where("attendance_marks.organization_id = ? AND attendance_marks.date = ?", orgID, date).
		Group("shifts.code").Select("shifts.code AS code, count(*) AS count").
		Scan(&daily).Error
	if err != nil {
		return nil, err
	}

	var marksToday int64
	byShift := make(map[string]int64, len(daily))
	for _, d := range daily {
		byShift[d.Code] = d.Count
		marksToday += d.Count
	}
	stats["marks_today"] = marksToday
	stats["marks_by_shift"] = byShift

	// 3. Supervisors with a recent ping
	var active int64
	err = db.Model(&model.PatrolPing{}).
		Where("organization_id = ? AND created_at > ?", orgID, activeSince.UTC()).
		Distinct("supervisor_id").
		Count(&active).Error
	if err != nil {
		return nil, err
	}
	stats["active_supervisors"] = active

	return stats, nil
}
