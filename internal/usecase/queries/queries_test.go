//go:build unit

package queries_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"kilo-share/internal/domain/policy"
	"kilo-share/internal/domain/reservation"
	"kilo-share/internal/domain/user"
	"kilo-share/internal/pkg/clock"
	"kilo-share/internal/pkg/errs"
	"kilo-share/internal/testutil/builder"
	"kilo-share/internal/testutil/memstore"
	"kilo-share/internal/usecase/commands"
	"kilo-share/internal/usecase/queries"
	"kilo-share/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	store        *memstore.Store
	cache        *memstore.Cache
	clock        *clock.MockClock
	reservations commands.ReservationCommands
	status       commands.StatusCommands
	offerQ       queries.OfferQueries
	reservationQ queries.ReservationQueries
	trackingQ    queries.TrackingQueries
	roleQ        queries.RoleQueries

	admin, owner, other user.Actor
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memstore.New()
	cache := memstore.NewCache()
	clk := clock.NewMockClock(time.Date(2026, 11, 2, 8, 0, 0, 0, time.UTC))
	issuer := reservation.NewIssuer(reservation.NewRandomCodeGenerator(), reservation.DefaultIssuerAttempts)

	adminID := uuid.New()
	store.SeedRole(adminID, user.RoleAdmin)

	return &env{
		store:        store,
		cache:        cache,
		clock:        clk,
		reservations: commands.NewReservationUseCase(store, issuer, cache, clk),
		status:       commands.NewStatusUseCase(store, reservation.PolicyLinear, cache, clk),
		offerQ:       queries.NewOfferQueries(store.OfferReads()),
		reservationQ: queries.NewReservationQueries(store.ReservationReads()),
		trackingQ:    queries.NewTrackingQueries(store.ReservationReads(), cache, 30*time.Second),
		roleQ:        queries.NewRoleQueries(store.RoleReads()),
		admin:        user.NewActor(adminID, user.RoleAdmin),
		owner:        user.NewActor(uuid.New()),
		other:        user.NewActor(uuid.New()),
	}
}

func (e *env) reserve(t *testing.T, offerID uuid.UUID, kilos int) *commands.ReserveResult {
	t.Helper()
	e.clock.Add(time.Second)
	res, err := e.reservations.Reserve(context.Background(), e.owner, commands.ReserveRequest{
		OfferID:     offerID,
		Kilos:       kilos,
		Description: ptr("private note"),
	})
	require.NoError(t, err)
	return res
}

func ptr[T any](v T) *T { return &v }

func TestOfferQueries(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	dakar := builder.NewOfferBuilder().BuildDomain()
	later := builder.NewOfferBuilder().With(func(b *builder.OfferBuilder) {
		b.ArrivalCity, b.ArrivalCountry = "Abidjan", "Côte d'Ivoire"
		b.DepartureDate = b.DepartureDate.AddDate(0, 0, 7)
	}).BuildDomain()
	inactive := builder.NewOfferBuilder().With(func(b *builder.OfferBuilder) { b.IsActive = false }).BuildDomain()
	soldOut := builder.NewOfferBuilder().With(func(b *builder.OfferBuilder) { b.TotalKilos = 1 }).BuildDomain()
	e.store.SeedOffer(dakar)
	e.store.SeedOffer(later)
	e.store.SeedOffer(inactive)
	e.store.SeedOffer(soldOut)
	e.reserve(t, soldOut.ID(), 1)

	t.Run("public listing hides inactive and sold out", func(t *testing.T) {
		got, err := e.offerQ.ListActive(ctx, queries.OfferFilter{})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, dakar.ID(), got[0].ID)
		assert.Equal(t, later.ID(), got[1].ID)
	})

	t.Run("search is case-insensitive over cities and countries", func(t *testing.T) {
		got, err := e.offerQ.ListActive(ctx, queries.OfferFilter{Query: "ABID"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, later.ID(), got[0].ID)

		got, err = e.offerQ.ListActive(ctx, queries.OfferFilter{Query: "senegal"})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("paging", func(t *testing.T) {
		got, err := e.offerQ.ListActive(ctx, queries.OfferFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, later.ID(), got[0].ID)
	})

	t.Run("admin listing includes everything", func(t *testing.T) {
		got, err := e.offerQ.ListAll(ctx, e.admin, queries.OfferFilter{})
		require.NoError(t, err)
		assert.Len(t, got, 4)

		_, err = e.offerQ.ListAll(ctx, e.owner, queries.OfferFilter{})
		assert.ErrorIs(t, err, policy.ErrUnauthorized)
	})

	t.Run("inactive offer is not found for non-admins", func(t *testing.T) {
		_, err := e.offerQ.GetByID(ctx, user.Anonymous, inactive.ID())
		assert.ErrorIs(t, err, errs.ErrOfferNotFound)
		_, err = e.offerQ.GetByID(ctx, e.owner, inactive.ID())
		assert.ErrorIs(t, err, errs.ErrOfferNotFound)

		got, err := e.offerQ.GetByID(ctx, e.admin, inactive.ID())
		require.NoError(t, err)
		assert.False(t, got.IsActive)

		got, err = e.offerQ.GetByID(ctx, user.Anonymous, dakar.ID())
		require.NoError(t, err)
		assert.Equal(t, "Dakar", got.ArrivalCity)

		_, err = e.offerQ.GetByID(ctx, e.admin, uuid.New())
		assert.ErrorIs(t, err, errs.ErrOfferNotFound)
	})
}

func TestReservationQueries(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	o := builder.NewOfferBuilder().With(func(b *builder.OfferBuilder) { b.TotalKilos = 100 }).BuildDomain()
	e.store.SeedOffer(o)

	var ids []uuid.UUID
	for range 5 {
		ids = append(ids, e.reserve(t, o.ID(), 1).ReservationID)
	}

	t.Run("owner and admin can read, others cannot", func(t *testing.T) {
		got, err := e.reservationQ.GetByID(ctx, e.owner, ids[0])
		require.NoError(t, err)
		assert.Equal(t, "private note", *got.Description)
		assert.Equal(t, "Dakar", got.Route.ArrivalCity)

		_, err = e.reservationQ.GetByID(ctx, e.admin, ids[0])
		require.NoError(t, err)

		_, err = e.reservationQ.GetByID(ctx, e.other, ids[0])
		assert.ErrorIs(t, err, policy.ErrUnauthorized)

		_, err = e.reservationQ.GetByID(ctx, e.owner, uuid.New())
		assert.ErrorIs(t, err, errs.ErrReservationNotFound)
	})

	t.Run("list mine pages newest first", func(t *testing.T) {
		first, next, err := e.reservationQ.ListMine(ctx, e.owner, nil, 2)
		require.NoError(t, err)
		require.Len(t, first, 2)
		require.NotNil(t, next)
		assert.Equal(t, ids[4], first[0].ID)
		assert.Equal(t, ids[3], first[1].ID)

		second, next, err := e.reservationQ.ListMine(ctx, e.owner, next, 2)
		require.NoError(t, err)
		require.Len(t, second, 2)
		assert.Equal(t, ids[2], second[0].ID)

		third, next, err := e.reservationQ.ListMine(ctx, e.owner, next, 2)
		require.NoError(t, err)
		require.Len(t, third, 1)
		assert.Equal(t, ids[0], third[0].ID)
		assert.Nil(t, next)

		mine, _, err := e.reservationQ.ListMine(ctx, e.other, nil, 0)
		require.NoError(t, err)
		assert.Empty(t, mine)

		_, _, err = e.reservationQ.ListMine(ctx, e.owner, &queries.Cursor{After: "garbage"}, 2)
		assert.True(t, errs.Is(err, queries.ErrInvalidCursor), "got %v", err)
	})

	t.Run("admin list filters by status", func(t *testing.T) {
		_, err := e.status.Transition(ctx, e.admin, commands.TransitionRequest{ReservationID: ids[1], Status: "received_at_origin"})
		require.NoError(t, err)

		got, _, err := e.reservationQ.ListAll(ctx, e.admin, ptr("received_at_origin"), nil, 0)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, ids[1], got[0].ID)

		all, _, err := e.reservationQ.ListAll(ctx, e.admin, nil, nil, 0)
		require.NoError(t, err)
		assert.Len(t, all, 5)

		_, _, err = e.reservationQ.ListAll(ctx, e.admin, ptr("bogus"), nil, 0)
		assert.ErrorIs(t, err, reservation.ErrInvalidStatus)

		_, _, err = e.reservationQ.ListAll(ctx, e.owner, nil, nil, 0)
		assert.ErrorIs(t, err, policy.ErrUnauthorized)
	})

	t.Run("history is ordered and owner scoped", func(t *testing.T) {
		history, err := e.reservationQ.ListHistory(ctx, e.owner, ids[1])
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, "pending_submission", history[0].Status)
		assert.Equal(t, "received_at_origin", history[1].Status)

		_, err = e.reservationQ.ListHistory(ctx, e.other, ids[1])
		assert.ErrorIs(t, err, policy.ErrUnauthorized)
	})
}

func TestTrackingQueries(t *testing.T) {
	ctx := context.Background()

	t.Run("lookup by code in any case", func(t *testing.T) {
		e := newEnv(t)
		o := builder.NewOfferBuilder().BuildDomain()
		e.store.SeedOffer(o)
		res := e.reserve(t, o.ID(), 4)

		view, err := e.trackingQ.GetByTrackingCode(ctx, "  "+strings.ToLower(res.TrackingCode)+" ")
		require.NoError(t, err)
		require.NotNil(t, view)
		assert.Equal(t, res.TrackingCode, view.TrackingCode)
		assert.Equal(t, "pending_submission", view.Status)
		assert.Equal(t, 4, view.Kilos)
		assert.Equal(t, "Paris", view.Route.DepartureCity)
		require.Len(t, view.History, 1)
	})

	t.Run("misses", func(t *testing.T) {
		e := newEnv(t)
		for _, code := range []string{"", "KG-", "not a code", "KG-ZZZZZZZZ"} {
			view, err := e.trackingQ.GetByTrackingCode(ctx, code)
			require.NoError(t, err, code)
			assert.Nil(t, view, code)
		}
	})

	t.Run("hits are cached and invalidated on transition", func(t *testing.T) {
		e := newEnv(t)
		o := builder.NewOfferBuilder().BuildDomain()
		e.store.SeedOffer(o)
		res := e.reserve(t, o.ID(), 4)
		key := shared.TrackingCacheKey(res.TrackingCode)

		_, err := e.trackingQ.GetByTrackingCode(ctx, res.TrackingCode)
		require.NoError(t, err)
		assert.True(t, e.cache.Has(key))
		assert.Equal(t, 30*time.Second, e.cache.TTL(key))

		_, err = e.status.Transition(ctx, e.admin, commands.TransitionRequest{ReservationID: res.ReservationID, Status: "received_at_origin"})
		require.NoError(t, err)
		assert.False(t, e.cache.Has(key))

		view, err := e.trackingQ.GetByTrackingCode(ctx, res.TrackingCode)
		require.NoError(t, err)
		assert.Equal(t, "received_at_origin", view.Status)
		assert.Len(t, view.History, 2)
	})

	t.Run("served from cache", func(t *testing.T) {
		e := newEnv(t)
		key := shared.TrackingCacheKey("KG-CACHED00")
		require.NoError(t, e.cache.Set(ctx, key, []byte(`{"tracking_code":"KG-CACHED00","status":"in_transit"}`), time.Minute))

		view, err := e.trackingQ.GetByTrackingCode(ctx, "kg-cached00")
		require.NoError(t, err)
		require.NotNil(t, view)
		assert.Equal(t, "in_transit", view.Status)
	})

	t.Run("broken cache degrades to the store", func(t *testing.T) {
		e := newEnv(t)
		o := builder.NewOfferBuilder().BuildDomain()
		e.store.SeedOffer(o)
		res := e.reserve(t, o.ID(), 4)
		e.cache.Break(errors.New("connection refused"))

		view, err := e.trackingQ.GetByTrackingCode(ctx, res.TrackingCode)
		require.NoError(t, err)
		require.NotNil(t, view)
		assert.Equal(t, res.TrackingCode, view.TrackingCode)
	})

	t.Run("non-owner can track what they cannot read", func(t *testing.T) {
		e := newEnv(t)
		o := builder.NewOfferBuilder().BuildDomain()
		e.store.SeedOffer(o)
		res := e.reserve(t, o.ID(), 4)

		_, err := e.reservationQ.GetByID(ctx, e.other, res.ReservationID)
		assert.ErrorIs(t, err, policy.ErrUnauthorized)

		view, err := e.trackingQ.GetByTrackingCode(ctx, res.TrackingCode)
		require.NoError(t, err)
		assert.Equal(t, res.TrackingCode, view.TrackingCode)
	})
}

func TestRoleQueries(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	actor, err := e.roleQ.ActorFor(ctx, e.admin.UserID())
	require.NoError(t, err)
	assert.True(t, actor.IsAdmin())

	actor, err = e.roleQ.ActorFor(ctx, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, []user.Role{user.RoleUser}, actor.Roles())

	view, err := e.roleQ.ListRoles(ctx, e.owner, e.owner.UserID())
	require.NoError(t, err)
	assert.Equal(t, []string{"user"}, view.Roles)

	view, err = e.roleQ.ListRoles(ctx, e.admin, e.admin.UserID())
	require.NoError(t, err)
	assert.Equal(t, []string{"user", "admin"}, view.Roles)

	_, err = e.roleQ.ListRoles(ctx, e.owner, e.admin.UserID())
	assert.ErrorIs(t, err, policy.ErrUnauthorized)
}
