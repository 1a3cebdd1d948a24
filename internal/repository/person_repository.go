package repository

import (
	"context"
	"errors"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PersonRepository interface {
	// LockForUpdate takes a row lock on the person, if the row exists, until
	// the surrounding transaction ends.
	LockForUpdate(ctx context.Context, dni string) error
	// Upsert inserts the person or overwrites name, role and department.
	Upsert(ctx context.Context, person *model.Person) error
	GetByDNI(ctx context.Context, dni string) (*model.Person, error)
}

type personRepository struct {
	db *gorm.DB
}

func NewPersonRepository(db *gorm.DB) PersonRepository {
	return &personRepository{db}
}

func (r *personRepository) LockForUpdate(ctx context.Context, dni string) error {
	q := r.db.WithContext(ctx)
	// SQLite has no row locks; a write transaction already excludes others.
	if r.db.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var person model.Person
	err := q.Select("dni").Where("dni = ?", dni).Take(&person).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

func (r *personRepository) Upsert(ctx context.Context, person *model.Person) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "dni"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "role", "department", "updated_at"}),
	}).Create(person).Error
}

func (r *personRepository) GetByDNI(ctx context.Context, dni string) (*model.Person, error) {
	var person model.Person
	err := r.db.WithContext(ctx).Where("dni = ?", dni).Take(&person).Error
	if err != nil {
		return nil, err
	}
	return &person, nil
}
