package seed

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/apperror"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/model"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/repository"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/usecase"

	"github.com/goccy/go-yaml"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Fixture is the YAML document accepted by `seeder seed --file`.
type Fixture struct {
	Organizations []OrganizationFixture `yaml:"organizations"`
}

type OrganizationFixture struct {
	Code        string               `yaml:"code"`
	Name        string               `yaml:"name"`
	Departments []string             `yaml:"departments"`
	Shifts      []usecase.ShiftInput `yaml:"shifts"`
	Geofences   []GeofenceFixture    `yaml:"geofences"`
	Supervisors []SupervisorFixture  `yaml:"supervisors"`
	Users       []usecase.UserInput  `yaml:"users"`
}

type GeofenceFixture struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
	// Points are [lat, lng] pairs in drawing order.
	Points [][2]float64 `yaml:"points"`
}

type SupervisorFixture struct {
	DNI  string `yaml:"dni"`
	Name string `yaml:"name"`
}

func LoadFixture(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseFixture(raw)
}

func ParseFixture(raw []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.UnmarshalWithOptions(raw, &f, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	for i, org := range f.Organizations {
		if org.Code == "" || org.Name == "" {
			return nil, fmt.Errorf("fixture: organizations[%d] needs code and name", i)
		}
	}
	return &f, nil
}

// Seeder loads fixtures through the same usecases the API uses, so shift
// windows, polygons and passwords get identical validation. Seeding is
// idempotent: rows matched by their natural key are left alone.
type Seeder struct {
	db        *gorm.DB
	store     repository.Store
	shifts    *usecase.ShiftUsecase
	geofences *usecase.GeofenceUsecase
	orgs      *usecase.OrganizationUsecase
	auth      *usecase.AuthUsecase
	log       logrus.FieldLogger
}

func NewSeeder(db *gorm.DB, log logrus.FieldLogger) *Seeder {
	store := repository.NewStore(db)
	clock := usecase.NewSystemClock(time.UTC)
	return &Seeder{
		db:        db,
		store:     store,
		shifts:    usecase.NewShiftUsecase(store, clock),
		geofences: usecase.NewGeofenceUsecase(store),
		orgs:      usecase.NewOrganizationUsecase(store, clock, 0),
		auth:      usecase.NewAuthUsecase(store, clock, nil, 0),
		log:       log,
	}
}

// WithBcryptCost lowers the hashing cost for tests.
func (s *Seeder) WithBcryptCost(cost int) *Seeder {
	s.auth.WithBcryptCost(cost)
	return s
}

func (s *Seeder) Seed(ctx context.Context, f *Fixture) error {
	for _, of := range f.Organizations {
		if err := s.seedOrganization(ctx, of); err != nil {
			return fmt.Errorf("organization %s: %w", of.Code, err)
		}
	}
	return nil
}

func (s *Seeder) seedOrganization(ctx context.Context, of OrganizationFixture) error {
	db := s.db.WithContext(ctx)

	// 1. Organization
	org := model.Organization{Code: of.Code, Name: of.Name, Active: true}
	if err := db.Where(model.Organization{Code: of.Code}).FirstOrCreate(&org).Error; err != nil {
		return err
	}
	entry := s.log.WithField("organization_id", org.ID)

	// 2. Departments
	for _, name := range of.Departments {
		dept := model.Department{OrganizationID: org.ID, Name: name, Active: true}
		if err := db.Where(model.Department{OrganizationID: org.ID, Name: name}).FirstOrCreate(&dept).Error; err != nil {
			return err
		}
	}

	// 3. Shifts, by code
	existingShifts, err := s.shifts.List(ctx, org.ID)
	if err != nil {
		return err
	}
	shiftCodes := make(map[string]bool, len(existingShifts))
	for _, sh := range existingShifts {
		shiftCodes[sh.Code] = true
	}
	for _, in := range of.Shifts {
		if shiftCodes[in.Code] {
			continue
		}
		if _, err := s.shifts.Create(ctx, org.ID, in); err != nil {
			return fmt.Errorf("shift %s: %w", in.Code, err)
		}
		shiftCodes[in.Code] = true
	}

	// 4. Geofences, by name
	existingFences, err := s.geofences.List(ctx, org.ID)
	if err != nil {
		return err
	}
	fenceNames := make(map[string]bool, len(existingFences))
	for _, g := range existingFences {
		fenceNames[g.Name] = true
	}
	for _, gf := range of.Geofences {
		if fenceNames[gf.Name] {
			continue
		}
		in := usecase.GeofenceInput{Name: gf.Name, Color: gf.Color}
		for i, p := range gf.Points {
			in.Points = append(in.Points, usecase.PointInput{Seq: i + 1, Lat: p[0], Lng: p[1]})
		}
		if _, err := s.geofences.Create(ctx, org.ID, in); err != nil {
			return fmt.Errorf("geofence %s: %w", gf.Name, err)
		}
		fenceNames[gf.Name] = true
	}

	// 5. Supervisors
	for _, sf := range of.Supervisors {
		if _, _, err := s.orgs.RegisterSupervisor(ctx, org.ID, sf.DNI, sf.Name); err != nil {
			return fmt.Errorf("supervisor %s: %w", sf.DNI, err)
		}
	}

	// 6. Web users; an existing email keeps its password
	for _, uf := range of.Users {
		_, err := s.auth.CreateUser(ctx, org.ID, uf)
		if e, ok := apperror.As(err); ok && e.Code == apperror.CodeEmailTaken {
			continue
		}
		if err != nil {
			return fmt.Errorf("user %s: %w", uf.Email, err)
		}
	}

	entry.WithFields(logrus.Fields{
		"shifts":    len(of.Shifts),
		"geofences": len(of.Geofences),
		"users":     len(of.Users),
	}).Info("organization seeded")
	return nil
}
