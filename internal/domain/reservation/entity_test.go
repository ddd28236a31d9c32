//go:build unit

package reservation_test

import (
	"strings"
	"testing"
	"time"

	"kilo-share/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	created = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	later   = created.Add(2 * time.Hour)
)

func ptr[T any](v T) *T { return &v }

func mustCode(t *testing.T, s string) reservation.TrackingCode {
	t.Helper()
	c, err := reservation.ParseTrackingCode(s)
	require.NoError(t, err)
	return c
}

func newReservation(t *testing.T) *reservation.Reservation {
	t.Helper()
	r, err := reservation.NewReservation(uuid.New(), uuid.New(), 15, ptr("  two suitcases "), mustCode(t, "KG-AB12CD34"), created)
	require.NoError(t, err)
	return r
}

func TestNewReservation(t *testing.T) {
	t.Run("starts pending with code", func(t *testing.T) {
		r := newReservation(t)
		assert.Equal(t, reservation.StatusPendingSubmission, r.Status())
		assert.Equal(t, created, r.StatusUpdatedAt())
		assert.Equal(t, "KG-AB12CD34", r.TrackingCode().String())
		assert.Equal(t, "two suitcases", *r.Description())
		assert.Equal(t, 15, r.Kilos())
	})

	cases := []struct {
		name  string
		kilos int
		desc  *string
		code  reservation.TrackingCode
		errIs error
	}{
		{"zero kilos", 0, nil, mustCode(t, "KG-AAAAAAAA"), reservation.ErrInvalidKilos},
		{"negative kilos", -3, nil, mustCode(t, "KG-AAAAAAAA"), reservation.ErrInvalidKilos},
		{"missing code", 1, nil, reservation.TrackingCode{}, reservation.ErrTrackingCodeNotAssigned},
		{"description too long", 1, ptr(strings.Repeat("x", 501)), mustCode(t, "KG-AAAAAAAA"), reservation.ErrDescriptionTooLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := reservation.NewReservation(uuid.New(), uuid.New(), tc.kilos, tc.desc, tc.code, created)
			assert.ErrorIs(t, err, tc.errIs)
		})
	}

	t.Run("blank description is dropped", func(t *testing.T) {
		r, err := reservation.NewReservation(uuid.New(), uuid.New(), 1, ptr("   "), mustCode(t, "KG-AAAAAAAA"), created)
		require.NoError(t, err)
		assert.Nil(t, r.Description())
	})
}

func TestReservationTransition(t *testing.T) {
	t.Run("same status is a no-op", func(t *testing.T) {
		r := newReservation(t)
		changed, err := r.Transition(reservation.StatusPendingSubmission, reservation.PolicyLinear, later)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, created, r.StatusUpdatedAt())
	})

	t.Run("linear advance", func(t *testing.T) {
		r := newReservation(t)
		changed, err := r.Transition(reservation.StatusReceivedAtOrigin, reservation.PolicyLinear, later)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, reservation.StatusReceivedAtOrigin, r.Status())
		assert.Equal(t, later, r.StatusUpdatedAt())
	})

	t.Run("linear rejects skipping", func(t *testing.T) {
		r := newReservation(t)
		_, err := r.Transition(reservation.StatusInTransit, reservation.PolicyLinear, later)
		assert.ErrorIs(t, err, reservation.ErrInvalidTransition)
		assert.Equal(t, reservation.StatusPendingSubmission, r.Status())
		assert.Equal(t, created, r.StatusUpdatedAt())
	})

	t.Run("permissive allows skipping and going back", func(t *testing.T) {
		r := newReservation(t)
		changed, err := r.Transition(reservation.StatusInTransit, reservation.PolicyPermissive, later)
		require.NoError(t, err)
		assert.True(t, changed)

		changed, err = r.Transition(reservation.StatusPendingSubmission, reservation.PolicyPermissive, later.Add(time.Minute))
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, reservation.StatusPendingSubmission, r.Status())
	})

	t.Run("unknown status", func(t *testing.T) {
		r := newReservation(t)
		_, err := r.Transition(reservation.Status("lost"), reservation.PolicyPermissive, later)
		assert.ErrorIs(t, err, reservation.ErrInvalidStatus)
	})
}

func TestReservationUpdateDescription(t *testing.T) {
	r := newReservation(t)
	require.NoError(t, r.UpdateDescription(ptr("one box"), later))
	assert.Equal(t, "one box", *r.Description())
	assert.Equal(t, later, r.UpdatedAt())

	require.NoError(t, r.UpdateDescription(nil, later))
	assert.Nil(t, r.Description())

	_, err := r.Transition(reservation.StatusReceivedAtOrigin, reservation.PolicyLinear, later)
	require.NoError(t, err)
	assert.ErrorIs(t, r.UpdateDescription(ptr("too late"), later), reservation.ErrReservationLocked)
	assert.Nil(t, r.Description())
}

func TestNewHistoryEntry(t *testing.T) {
	id := uuid.New()
	e, err := reservation.NewHistoryEntry(id, reservation.StatusInTransit, ptr(" left Paris "), created)
	require.NoError(t, err)
	assert.Equal(t, id, e.ReservationID())
	assert.Equal(t, "left Paris", *e.Notes())

	_, err = reservation.NewHistoryEntry(id, reservation.Status("nope"), nil, created)
	assert.ErrorIs(t, err, reservation.ErrInvalidStatus)

	_, err = reservation.NewHistoryEntry(id, reservation.StatusInTransit, ptr(strings.Repeat("n", 501)), created)
	assert.ErrorIs(t, err, reservation.ErrNotesTooLong)
}
