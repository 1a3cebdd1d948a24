package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentShift(t *testing.T) {
	f := newFixture(t)
	uc := NewShiftUsecase(f.store, f.clock)
	ctx := context.Background()

	shift, err := uc.CurrentShift(ctx, 1, time.Time{})
	require.NoError(t, err)
	require.NotNil(t, shift)
	assert.Equal(t, "morning", shift.Code)

	shift, err = uc.CurrentShift(ctx, 1, time.Date(2026, 3, 2, 20, 0, 0, 0, f.clock.Location()))
	require.NoError(t, err)
	assert.Nil(t, shift)

	// 12:30 UTC is 07:30 in Lima.
	shift, err = uc.CurrentShift(ctx, 1, time.Date(2026, 3, 2, 12, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, shift)

	_, err = uc.CurrentShift(ctx, 42, time.Time{})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestShiftAdministration(t *testing.T) {
	f := newFixture(t)
	uc := NewShiftUsecase(f.store, f.clock)
	ctx := context.Background()

	created, err := uc.Create(ctx, 1, ShiftInput{Code: "night", Name: "Noche", StartTime: "22:00", EndTime: "06:00"})
	require.NoError(t, err)
	assert.Equal(t, "22:00:00", created.StartTime)
	assert.Equal(t, "06:00:00", created.EndTime)
	assert.True(t, created.Active)

	_, err = uc.Create(ctx, 1, ShiftInput{Code: "zero", StartTime: "08:00", EndTime: "08:00:00"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = uc.Create(ctx, 1, ShiftInput{Code: "bad", StartTime: "25:00", EndTime: "08:00"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	off := false
	updated, err := uc.Update(ctx, 1, created.ID, ShiftInput{Code: "night", StartTime: "21:00", EndTime: "05:00", Active: &off})
	require.NoError(t, err)
	assert.Equal(t, "21:00:00", updated.StartTime)
	assert.False(t, updated.Active)

	_, err = uc.Update(ctx, 2, created.ID, ShiftInput{Code: "night", StartTime: "21:00", EndTime: "05:00"})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	shifts, err := uc.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, shifts, 2)

	require.NoError(t, uc.Delete(ctx, 1, created.ID))
	assert.True(t, apperror.Is(uc.Delete(ctx, 1, created.ID), apperror.KindNotFound))
}

func TestShiftCreate_InactiveIsStoredInactive(t *testing.T) {
	f := newFixture(t)
	uc := NewShiftUsecase(f.store, f.clock)
	ctx := context.Background()

	off := false
	created, err := uc.Create(ctx, 1, ShiftInput{Code: "late", StartTime: "15:00", EndTime: "20:00", Active: &off})
	require.NoError(t, err)
	assert.False(t, created.Active)

	stored, err := f.store.Shifts().GetByID(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)

	shift, err := uc.CurrentShift(ctx, 1, time.Date(2026, 3, 2, 16, 0, 0, 0, f.clock.Location()))
	require.NoError(t, err)
	assert.Nil(t, shift)
}
