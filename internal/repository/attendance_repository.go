package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/model"

	"gorm.io/gorm"
)

// MarkFilter narrows a mark listing. Dates are inclusive YYYY-MM-DD bounds
// on the business-local date; empty fields do not filter.
type MarkFilter struct {
	OrganizationID uint
	DNI            string
	From           string
	To             string
	Limit          int
	Offset         int
}

// RecapRow is one bucket of the daily recap.
type RecapRow struct {
	ShiftCode  string `json:"shift_code"`
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

type AttendanceRepository interface {
	Create(ctx context.Context, mark *model.AttendanceMark) error
	// LastCreatedAt returns the newest mark instant for dni. orgID 0 means
	// any organization.
	LastCreatedAt(ctx context.Context, dni string, orgID uint) (time.Time, bool, error)
	LastByDNI(ctx context.Context, dni string) (*model.AttendanceMark, error)
	List(ctx context.Context, filter MarkFilter) ([]model.AttendanceMark, int64, error)
	RecapByDate(ctx context.Context, orgID uint, date string) ([]RecapRow, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db}
}

func (r *attendanceRepository) Create(ctx context.Context, mark *model.AttendanceMark) error {
	return r.db.WithContext(ctx).Omit("Person", "Supervisor", "Location", "Shift").Create(mark).Error
}

func (r *attendanceRepository) LastCreatedAt(ctx context.Context, dni string, orgID uint) (time.Time, bool, error) {
	q := r.db.WithContext(ctx).Select("id", "created_at").Where("person_dni = ?", dni)
	if orgID != 0 {
		q = q.Where("organization_id = ?", orgID)
	}

	var mark model.AttendanceMark
	err := q.Order("created_at DESC").Order("id DESC").Take(&mark).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return mark.CreatedAt, true, nil
}

func (r *attendanceRepository) LastByDNI(ctx context.Context, dni string) (*model.AttendanceMark, error) {
	var mark model.AttendanceMark
	err := r.db.WithContext(ctx).
		Where("person_dni = ?", dni).
		Order("created_at DESC").Order("id DESC").
		Take(&mark).Error
	if err != nil {
		return nil, err
	}
	return &mark, nil
}

func (r *attendanceRepository) List(ctx context.Context, filter MarkFilter) ([]model.AttendanceMark, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.AttendanceMark{}).
		Where("organization_id = ?", filter.OrganizationID)
	if filter.DNI != "" {
		q = q.Where("person_dni = ?", filter.DNI)
	}
	if filter.From != "" {
		q = q.Where("date >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("date <= ?", filter.To)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var marks []model.AttendanceMark
	err := q.Preload("Person").Preload("Location").Preload("Shift").Preload("Supervisor").
		Order("created_at DESC").Order("id DESC").
		Limit(filter.Limit).Offset(filter.Offset).
		Find(&marks).Error
	return marks, total, err
}

func (r *attendanceRepository) RecapByDate(ctx context.Context, orgID uint, date string) ([]RecapRow, error) {
	var rows []RecapRow
	err := r.db.WithContext(ctx).Table("attendance_marks").
		Select("shifts.code AS shift_code, attendance_marks.department AS department, COUNT(*) AS count").
		Joins("JOIN shifts ON shifts.id = attendance_marks.shift_id").
		Where("attendance_marks.organization_id = ? AND attendance_marks.date = ?", orgID, date).
		Group("shifts.code, attendance_marks.department").
		Order("shifts.code ASC, attendance_marks.department ASC").
		Scan(&rows).Error
	return rows, err
}
