//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"testing"

	"kilo-share/internal/domain/offer"
	"kilo-share/internal/domain/policy"
	"kilo-share/internal/domain/reservation"
	"kilo-share/internal/pkg/errs"
	"kilo-share/internal/testutil/builder"
	"kilo-share/internal/usecase/commands"
	"kilo-share/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfferCreate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	draft := builder.NewOfferBuilder().BuildDraft()

	id, err := f.offers.Create(ctx, f.admin, draft)
	require.NoError(t, err)
	o, ok := f.store.Offer(id)
	require.True(t, ok)
	assert.Equal(t, 20, o.AvailableKilos())
	assert.Equal(t, f.clock.Now(), o.CreatedAt())

	_, err = f.offers.Create(ctx, f.owner, draft)
	assert.ErrorIs(t, err, policy.ErrUnauthorized)

	draft.TotalKilos = 0
	_, err = f.offers.Create(ctx, f.admin, draft)
	assert.ErrorIs(t, err, offer.ErrInvalidCapacity)
}

func TestOfferUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("total change preserves reserved kilos", func(t *testing.T) {
		f := newFixture(t)
		o := f.seedOffer()
		_, err := f.reservations.Reserve(ctx, f.owner, commands.ReserveRequest{OfferID: o.ID(), Kilos: 15})
		require.NoError(t, err)

		require.NoError(t, f.offers.Update(ctx, f.admin, o.ID(), offer.Patch{TotalKilos: ptr(30)}))
		got, _ := f.store.Offer(o.ID())
		assert.Equal(t, 30, got.TotalKilos())
		assert.Equal(t, 15, got.AvailableKilos())
	})

	t.Run("total below reserved kilos is rejected", func(t *testing.T) {
		f := newFixture(t)
		o := f.seedOffer()
		_, err := f.reservations.Reserve(ctx, f.owner, commands.ReserveRequest{OfferID: o.ID(), Kilos: 15})
		require.NoError(t, err)

		err = f.offers.Update(ctx, f.admin, o.ID(), offer.Patch{TotalKilos: ptr(10)})
		assert.ErrorIs(t, err, offer.ErrInvalidCapacity)
		got, _ := f.store.Offer(o.ID())
		assert.Equal(t, 20, got.TotalKilos())
		assert.Equal(t, 5, got.AvailableKilos())
	})

	t.Run("deactivation hides the offer from reserve", func(t *testing.T) {
		f := newFixture(t)
		o := f.seedOffer()
		require.NoError(t, f.offers.Update(ctx, f.admin, o.ID(), offer.Patch{IsActive: ptr(false)}))

		_, err := f.reservations.Reserve(ctx, f.owner, commands.ReserveRequest{OfferID: o.ID(), Kilos: 1})
		assert.ErrorIs(t, err, offer.ErrOfferInactive)
	})

	t.Run("route change evicts cached tracking views", func(t *testing.T) {
		f := newFixture(t)
		o := f.seedOffer()
		other := f.seedOffer()
		res, err := f.reservations.Reserve(ctx, f.owner, commands.ReserveRequest{OfferID: o.ID(), Kilos: 2})
		require.NoError(t, err)
		unrelated, err := f.reservations.Reserve(ctx, f.owner, commands.ReserveRequest{OfferID: other.ID(), Kilos: 2})
		require.NoError(t, err)
		for _, code := range []string{res.TrackingCode, unrelated.TrackingCode} {
			require.NoError(t, f.cache.Set(ctx, shared.TrackingCacheKey(code), []byte("{}"), 0))
		}

		err = f.offers.Update(ctx, f.admin, o.ID(), offer.Patch{AvailableKilos: ptr(99)})
		require.ErrorIs(t, err, offer.ErrInvalidCapacity)
		assert.True(t, f.cache.Has(shared.TrackingCacheKey(res.TrackingCode)), "failed update keeps the cache")

		require.NoError(t, f.offers.Update(ctx, f.admin, o.ID(), offer.Patch{ArrivalCity: ptr("Lyon")}))
		assert.False(t, f.cache.Has(shared.TrackingCacheKey(res.TrackingCode)))
		assert.True(t, f.cache.Has(shared.TrackingCacheKey(unrelated.TrackingCode)))
	})

	t.Run("rejections", func(t *testing.T) {
		f := newFixture(t)
		o := f.seedOffer()
		assert.ErrorIs(t, f.offers.Update(ctx, f.owner, o.ID(), offer.Patch{}), policy.ErrUnauthorized)
		assert.ErrorIs(t, f.offers.Update(ctx, f.admin, uuid.New(), offer.Patch{}), errs.ErrOfferNotFound)
		assert.ErrorIs(t, f.offers.Update(ctx, f.admin, o.ID(), offer.Patch{AvailableKilos: ptr(21)}), offer.ErrInvalidCapacity)
	})
}

func TestOfferDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	o := f.seedOffer()
	kept := f.seedOffer()

	var codes []string
	for range 2 {
		res, err := f.reservations.Reserve(ctx, f.owner, commands.ReserveRequest{OfferID: o.ID(), Kilos: 2})
		require.NoError(t, err)
		codes = append(codes, res.TrackingCode)
		require.NoError(t, f.cache.Set(ctx, shared.TrackingCacheKey(res.TrackingCode), []byte("{}"), 0))
	}
	survivor, err := f.reservations.Reserve(ctx, f.owner, commands.ReserveRequest{OfferID: kept.ID(), Kilos: 2})
	require.NoError(t, err)

	assert.ErrorIs(t, f.offers.Delete(ctx, f.owner, o.ID(), true), policy.ErrUnauthorized)
	assert.ErrorIs(t, f.offers.Delete(ctx, f.admin, o.ID(), false), errs.ErrConfirmationRequired)
	assert.Equal(t, 3, f.store.ReservationCount())

	require.NoError(t, f.offers.Delete(ctx, f.admin, o.ID(), true))
	_, exists := f.store.Offer(o.ID())
	assert.False(t, exists)
	assert.Equal(t, 1, f.store.ReservationCount())
	_, exists = f.store.Reservation(survivor.ReservationID)
	assert.True(t, exists)
	for _, c := range codes {
		assert.False(t, f.cache.Has(shared.TrackingCacheKey(c)))
	}

	events := f.store.Events()
	last := events[len(events)-1]
	assert.Equal(t, reservation.TopicOfferDeleted, last.Topic)
	var payload reservation.OfferDeletedEvent
	require.NoError(t, json.Unmarshal(last.Payload, &payload))
	var got []string
	for _, r := range payload.Reservations {
		got = append(got, r.TrackingCode)
	}
	assert.ElementsMatch(t, codes, got)

	assert.ErrorIs(t, f.offers.Delete(ctx, f.admin, o.ID(), true), errs.ErrOfferNotFound)
}
