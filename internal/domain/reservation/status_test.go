//go:build unit

package reservation_test

import (
	"testing"

	"kilo-share/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusLifecycle(t *testing.T) {
	all := reservation.Statuses()
	require.Len(t, all, 5)
	assert.Equal(t, reservation.InitialStatus, all[0])
	assert.True(t, all[0].IsInitial())
	assert.True(t, all[4].IsTerminal())

	for i := 0; i < len(all)-1; i++ {
		next, ok := all[i].Next()
		require.True(t, ok)
		assert.Equal(t, all[i+1], next)
	}
	_, ok := reservation.StatusDelivered.Next()
	assert.False(t, ok)
}

func TestParseStatus(t *testing.T) {
	s, err := reservation.ParseStatus("in_transit")
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusInTransit, s)

	_, err = reservation.ParseStatus("IN_TRANSIT")
	assert.ErrorIs(t, err, reservation.ErrInvalidStatus)
	_, err = reservation.ParseStatus("canceled")
	assert.ErrorIs(t, err, reservation.ErrInvalidStatus)
}

func TestTransitionPolicy(t *testing.T) {
	_, err := reservation.ParseTransitionPolicy("strict")
	assert.ErrorIs(t, err, reservation.ErrInvalidTransitionPolicy)

	cases := []struct {
		name       string
		from, to   reservation.Status
		linear     error
		permissive error
	}{
		{"advance one step", reservation.StatusPendingSubmission, reservation.StatusReceivedAtOrigin, nil, nil},
		{"skip a step", reservation.StatusPendingSubmission, reservation.StatusInTransit, reservation.ErrInvalidTransition, nil},
		{"move backwards", reservation.StatusInTransit, reservation.StatusReceivedAtOrigin, reservation.ErrInvalidTransition, nil},
		{"leave terminal", reservation.StatusDelivered, reservation.StatusInTransit, reservation.ErrInvalidTransition, nil},
		{"unknown target", reservation.StatusInTransit, reservation.Status("lost"), reservation.ErrInvalidStatus, reservation.ErrInvalidStatus},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, reservation.PolicyLinear.Allows(tc.from, tc.to), tc.linear)
			assert.ErrorIs(t, reservation.PolicyPermissive.Allows(tc.from, tc.to), tc.permissive)
		})
	}
}
