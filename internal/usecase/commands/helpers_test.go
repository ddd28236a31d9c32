//go:build unit

package commands_test

import (
	"testing"
	"time"

	"kilo-share/internal/domain/offer"
	"kilo-share/internal/domain/reservation"
	"kilo-share/internal/domain/user"
	"kilo-share/internal/pkg/clock"
	"kilo-share/internal/testutil/builder"
	"kilo-share/internal/testutil/memstore"
	"kilo-share/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2026, 11, 2, 8, 0, 0, 0, time.UTC)

type fixture struct {
	store        *memstore.Store
	cache        *memstore.Cache
	clock        *clock.MockClock
	offers       commands.OfferCommands
	reservations commands.ReservationCommands
	status       commands.StatusCommands
	roles        commands.RoleCommands

	admin user.Actor
	owner user.Actor
	other user.Actor
}

type fixtureOption func(*fixtureConfig)

type fixtureConfig struct {
	policy reservation.TransitionPolicy
	gen    reservation.CodeGenerator
}

func withPolicy(p reservation.TransitionPolicy) fixtureOption {
	return func(c *fixtureConfig) { c.policy = p }
}

func withCodes(codes ...string) fixtureOption {
	return func(c *fixtureConfig) { c.gen = &sequenceGenerator{codes: codes} }
}

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()
	cfg := fixtureConfig{policy: reservation.PolicyLinear, gen: reservation.NewRandomCodeGenerator()}
	for _, o := range opts {
		o(&cfg)
	}

	store := memstore.New()
	cache := memstore.NewCache()
	clk := clock.NewMockClock(start)
	issuer := reservation.NewIssuer(cfg.gen, 3)

	return &fixture{
		store:        store,
		cache:        cache,
		clock:        clk,
		offers:       commands.NewOfferUseCase(store, cache, clk),
		reservations: commands.NewReservationUseCase(store, issuer, cache, clk),
		status:       commands.NewStatusUseCase(store, cfg.policy, cache, clk),
		roles:        commands.NewRoleUseCase(store, clk),
		admin:        user.NewActor(uuid.New(), user.RoleAdmin),
		owner:        user.NewActor(uuid.New()),
		other:        user.NewActor(uuid.New()),
	}
}

func (f *fixture) seedOffer(mutate ...func(*builder.OfferBuilder)) *offer.Offer {
	b := builder.NewOfferBuilder()
	for _, m := range mutate {
		b.With(m)
	}
	o := b.BuildDomain()
	f.store.SeedOffer(o)
	return o
}

func (f *fixture) available(t *testing.T, offerID uuid.UUID) int {
	t.Helper()
	o, ok := f.store.Offer(offerID)
	require.True(t, ok)
	return o.AvailableKilos()
}

func (f *fixture) tick() {
	f.clock.Add(time.Minute)
}

type sequenceGenerator struct {
	codes []string
	next  int
}

func (g *sequenceGenerator) Generate() (reservation.TrackingCode, error) {
	c := g.codes[g.next%len(g.codes)]
	g.next++
	return reservation.ParseTrackingCode(c)
}

func ptr[T any](v T) *T { return &v }
