//go:build unit

package outbox_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"kilo-share/internal/pkg/clock"
	"kilo-share/internal/testutil/memstore"
	"kilo-share/internal/usecase/shared"
	"kilo-share/internal/worker/outbox"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type message struct {
	topic string
	key   string
	value string
}

type fakePublisher struct {
	mu   sync.Mutex
	sent []message
	fail map[string]error
}

func (p *fakePublisher) Publish(_ context.Context, topic string, key, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.fail[string(value)]; err != nil {
		return err
	}
	p.sent = append(p.sent, message{topic: topic, key: string(key), value: string(value)})
	return nil
}

var now = time.Date(2026, 11, 2, 8, 0, 0, 0, time.UTC)

func appendEvent(t *testing.T, store *memstore.Store, topic string, aggregate uuid.UUID, payload map[string]string) shared.Event {
	t.Helper()
	e, err := shared.NewEvent(topic, aggregate, payload, now)
	require.NoError(t, err)
	require.NoError(t, store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		return tx.Outbox().Append(ctx, e)
	}))
	return e
}

func newRelay(store *memstore.Store, pub outbox.Publisher, batch int) *outbox.Relay {
	return newRelayWithAttempts(store, pub, batch, 10)
}

func newRelayWithAttempts(store *memstore.Store, pub outbox.Publisher, batch, maxAttempts int) *outbox.Relay {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return outbox.NewRelay(store, pub, clock.NewMockClock(now), batch, maxAttempts, logger)
}

func TestRelay_PublishesInOrder(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	pub := &fakePublisher{}
	agg := uuid.New()

	first := appendEvent(t, store, "reservation.created", agg, map[string]string{"n": "1"})
	second := appendEvent(t, store, "reservation.status_changed", agg, map[string]string{"n": "2"})

	res, err := newRelay(store, pub, 10).RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, outbox.Result{Published: 2}, res)

	require.Len(t, pub.sent, 2)
	assert.Equal(t, "reservation.created", pub.sent[0].topic)
	assert.Equal(t, agg.String(), pub.sent[0].key)
	assert.JSONEq(t, `{"n":"1"}`, pub.sent[0].value)
	assert.Equal(t, "reservation.status_changed", pub.sent[1].topic)
	assert.True(t, store.Published(first.ID))
	assert.True(t, store.Published(second.ID))

	res, err = newRelay(store, pub, 10).RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, res.Published, "published events are not claimed again")
}

func TestRelay_BatchSize(t *testing.T) {
	store := memstore.New()
	pub := &fakePublisher{}
	for range 5 {
		appendEvent(t, store, "offer.deleted", uuid.New(), map[string]string{})
	}
	relay := newRelay(store, pub, 2)

	for _, want := range []int{2, 2, 1, 0} {
		res, err := relay.RunOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, res.Published)
	}
}

func TestRelay_FailureHoldsBackAggregate(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	broken, healthy := uuid.New(), uuid.New()

	a1 := appendEvent(t, store, "reservation.created", broken, map[string]string{"n": "a1"})
	b1 := appendEvent(t, store, "reservation.created", healthy, map[string]string{"n": "b1"})
	a2 := appendEvent(t, store, "reservation.status_changed", broken, map[string]string{"n": "a2"})

	pub := &fakePublisher{fail: map[string]error{`{"n":"a1"}`: errors.New("leader not available")}}
	res, err := newRelay(store, pub, 10).RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, outbox.Result{Published: 1, Failed: 1}, res)

	assert.False(t, store.Published(a1.ID))
	assert.Equal(t, "leader not available", store.LastError(a1.ID))
	assert.True(t, store.Published(b1.ID))
	assert.False(t, store.Published(a2.ID), "later event of a failed aggregate waits")

	var attempts int
	for _, e := range store.Events() {
		if e.ID == a1.ID {
			attempts = e.Attempts
		}
	}
	assert.Equal(t, 1, attempts)

	pub.fail = nil
	res, err = newRelay(store, pub, 10).RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Published)
	assert.True(t, store.Published(a1.ID))
	assert.True(t, store.Published(a2.ID))
	assert.Equal(t, `{"n":"a2"}`, pub.sent[len(pub.sent)-1].value)
}

func TestRelay_PoisonEventIsDeadLettered(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	broken, healthy := uuid.New(), uuid.New()

	poison := appendEvent(t, store, "reservation.created", broken, map[string]string{"n": "poison"})
	after := appendEvent(t, store, "reservation.status_changed", broken, map[string]string{"n": "after"})
	other := appendEvent(t, store, "reservation.created", healthy, map[string]string{"n": "other"})

	pub := &fakePublisher{fail: map[string]error{`{"n":"poison"}`: errors.New("message too large")}}
	relay := newRelayWithAttempts(store, pub, 1, 3)

	for range 3 {
		res, err := relay.RunOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Failed)
	}
	assert.False(t, store.Published(other.ID), "batch of one stays stuck until the cutoff")

	var results []outbox.Result
	for range 3 {
		res, err := relay.RunOnce(ctx)
		require.NoError(t, err)
		results = append(results, res)
	}
	assert.Equal(t, []outbox.Result{{Published: 1}, {Published: 1}, {}}, results)

	assert.False(t, store.Published(poison.ID))
	assert.Equal(t, "message too large", store.LastError(poison.ID))
	assert.True(t, store.Published(after.ID))
	assert.True(t, store.Published(other.ID))
}

func TestRelay_ReportsDeadLetter(t *testing.T) {
	store := memstore.New()
	appendEvent(t, store, "offer.deleted", uuid.New(), map[string]string{"n": "bad"})
	pub := &fakePublisher{fail: map[string]error{`{"n":"bad"}`: errors.New("schema rejected")}}

	res, err := newRelayWithAttempts(store, pub, 10, 1).RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, outbox.Result{Failed: 1, DeadLettered: 1}, res)
}

func TestRelay_ClaimError(t *testing.T) {
	store := memstore.New()
	store.FailNext("outbox.claim", errors.New("connection reset"))

	_, err := newRelay(store, &fakePublisher{}, 10).RunOnce(context.Background())
	assert.ErrorContains(t, err, "connection reset")
}
