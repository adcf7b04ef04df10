package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hotelbooking/constants"
	apperrors "hotelbooking/errors"
)

func TestTransition(t *testing.T) {
	const (
		pending   = constants.ReservationStatusPending
		confirmed = constants.ReservationStatusConfirmed
		completed = constants.ReservationStatusCompleted
		cancelled = constants.ReservationStatusCancelled
	)

	tests := []struct {
		from, to string
		ok       bool
	}{
		{pending, confirmed, true},
		{pending, cancelled, true},
		{pending, completed, false},
		{pending, pending, true},
		{confirmed, completed, true},
		{confirmed, cancelled, true},
		{confirmed, confirmed, false},
		{confirmed, pending, false},
		{completed, cancelled, false},
		{completed, confirmed, false},
		{completed, pending, false},
		{cancelled, confirmed, false},
		{cancelled, cancelled, false},
		{cancelled, pending, false},
	}
	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			r := &Reservation{Status: tt.from}
			err := Transition(r, tt.to)
			if tt.ok {
				assert.NoError(t, err)
				assert.Equal(t, tt.to, r.Status)
				return
			}
			assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeConflict), "got %v", err)
			assert.Equal(t, tt.from, r.Status, "a refused transition leaves the status alone")
		})
	}

	err := Transition(&Reservation{Status: pending}, "archived")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))
}

func TestReservationInterval(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC) }
	r := &Reservation{CheckIn: day(1), CheckOut: day(3), Status: constants.ReservationStatusPending}

	assert.True(t, r.Overlaps(day(2), day(4)))
	assert.False(t, r.Overlaps(day(3), day(5)), "checkout day is free")
	assert.False(t, r.Overlaps(day(0), day(1)))
	assert.True(t, r.Covers(day(1)))
	assert.True(t, r.Covers(day(2)))
	assert.False(t, r.Covers(day(3)))
	assert.True(t, r.IsActive())

	r.Status = constants.ReservationStatusCancelled
	assert.False(t, r.IsActive())
}
