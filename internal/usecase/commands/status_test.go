//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"testing"

	"kilo-share/internal/domain/policy"
	"kilo-share/internal/domain/reservation"
	"kilo-share/internal/pkg/errs"
	"kilo-share/internal/usecase/commands"
	"kilo-share/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reserveOne(t *testing.T, f *fixture) *commands.ReserveResult {
	t.Helper()
	o := f.seedOffer()
	res, err := f.reservations.Reserve(context.Background(), f.owner, commands.ReserveRequest{OfferID: o.ID(), Kilos: 2})
	require.NoError(t, err)
	return res
}

func TestTransition_Linear(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	res := reserveOne(t, f)

	f.tick()
	out, err := f.status.Transition(ctx, f.admin, commands.TransitionRequest{
		ReservationID: res.ReservationID,
		Status:        "received_at_origin",
		Notes:         ptr("dropped off at the Paris depot"),
	})
	require.NoError(t, err)
	assert.True(t, out.Changed)
	assert.Equal(t, "received_at_origin", out.Status)
	assert.Equal(t, f.clock.Now(), out.StatusUpdatedAt)

	history := f.store.History(res.ReservationID)
	require.Len(t, history, 2)
	assert.Equal(t, reservation.StatusReceivedAtOrigin, history[1].Status())
	assert.Equal(t, "dropped off at the Paris depot", *history[1].Notes())

	events := f.store.Events()
	last := events[len(events)-1]
	assert.Equal(t, reservation.TopicReservationStatusChanged, last.Topic)
	var payload reservation.StatusChangedEvent
	require.NoError(t, json.Unmarshal(last.Payload, &payload))
	assert.Equal(t, "pending_submission", payload.From)
	assert.Equal(t, "received_at_origin", payload.To)
	assert.Equal(t, f.admin.UserID(), payload.ChangedBy)

	_, err = f.status.Transition(ctx, f.admin, commands.TransitionRequest{ReservationID: res.ReservationID, Status: "delivered"})
	assert.ErrorIs(t, err, reservation.ErrInvalidTransition)
	assert.Len(t, f.store.History(res.ReservationID), 2)
}

func TestTransition_FullLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	res := reserveOne(t, f)

	for _, st := range reservation.Statuses()[1:] {
		f.tick()
		out, err := f.status.Transition(ctx, f.admin, commands.TransitionRequest{ReservationID: res.ReservationID, Status: st.String()})
		require.NoError(t, err, st)
		require.True(t, out.Changed)
	}

	history := f.store.History(res.ReservationID)
	require.Len(t, history, len(reservation.Statuses()))
	for i, st := range reservation.Statuses() {
		assert.Equal(t, st, history[i].Status())
	}
}

func TestTransition_SameStatusIsNoop(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	res := reserveOne(t, f)
	before, _ := f.store.Reservation(res.ReservationID)
	eventsBefore := len(f.store.Events())
	require.NoError(t, f.cache.Set(ctx, shared.TrackingCacheKey(res.TrackingCode), []byte("{}"), 0))

	f.tick()
	out, err := f.status.Transition(ctx, f.admin, commands.TransitionRequest{ReservationID: res.ReservationID, Status: "pending_submission"})
	require.NoError(t, err)
	assert.False(t, out.Changed)
	assert.Equal(t, before.StatusUpdatedAt(), out.StatusUpdatedAt)

	after, _ := f.store.Reservation(res.ReservationID)
	assert.Equal(t, before.StatusUpdatedAt(), after.StatusUpdatedAt())
	assert.Len(t, f.store.History(res.ReservationID), 1)
	assert.Len(t, f.store.Events(), eventsBefore)
	assert.True(t, f.cache.Has(shared.TrackingCacheKey(res.TrackingCode)))
}

func TestTransition_Policies(t *testing.T) {
	ctx := context.Background()

	t.Run("linear rejects skipping", func(t *testing.T) {
		f := newFixture(t, withPolicy(reservation.PolicyLinear))
		res := reserveOne(t, f)
		_, err := f.status.Transition(ctx, f.admin, commands.TransitionRequest{ReservationID: res.ReservationID, Status: "in_transit"})
		assert.ErrorIs(t, err, reservation.ErrInvalidTransition)
	})

	t.Run("permissive accepts skipping and moving back", func(t *testing.T) {
		f := newFixture(t, withPolicy(reservation.PolicyPermissive))
		res := reserveOne(t, f)
		require.NoError(t, f.cache.Set(ctx, shared.TrackingCacheKey(res.TrackingCode), []byte("{}"), 0))

		out, err := f.status.Transition(ctx, f.admin, commands.TransitionRequest{ReservationID: res.ReservationID, Status: "in_transit"})
		require.NoError(t, err)
		assert.True(t, out.Changed)
		assert.False(t, f.cache.Has(shared.TrackingCacheKey(res.TrackingCode)))

		out, err = f.status.Transition(ctx, f.admin, commands.TransitionRequest{ReservationID: res.ReservationID, Status: "received_at_origin"})
		require.NoError(t, err)
		assert.Equal(t, "received_at_origin", out.Status)
		assert.Len(t, f.store.History(res.ReservationID), 3)
	})
}

func TestTransition_Rejections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	res := reserveOne(t, f)

	_, err := f.status.Transition(ctx, f.owner, commands.TransitionRequest{ReservationID: res.ReservationID, Status: "received_at_origin"})
	assert.ErrorIs(t, err, policy.ErrUnauthorized)

	_, err = f.status.Transition(ctx, f.admin, commands.TransitionRequest{ReservationID: res.ReservationID, Status: "lost_at_sea"})
	assert.ErrorIs(t, err, reservation.ErrInvalidStatus)

	_, err = f.status.Transition(ctx, f.admin, commands.TransitionRequest{ReservationID: uuid.New(), Status: "received_at_origin"})
	assert.ErrorIs(t, err, errs.ErrReservationNotFound)

	assert.Len(t, f.store.History(res.ReservationID), 1)
}
