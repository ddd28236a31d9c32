package shared

import (
	"context"
	"encoding/json"
	"time"

	"kilo-share/internal/pkg/errs"

	"github.com/google/uuid"
)

type IdempotencyRecord struct {
	Key                 uuid.UUID
	UserID              uuid.UUID
	RequestHash         string
	ResultReservationID *uuid.UUID
	CreatedAt           time.Time
}

// Event is an outbox row. Payload is the JSON body published to the broker.
type Event struct {
	ID          uuid.UUID
	Topic       string
	AggregateID uuid.UUID
	Payload     []byte
	CreatedAt   time.Time
	Attempts    int
}

func NewEvent(topic string, aggregateID uuid.UUID, payload any, now time.Time) (Event, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Event{}, errs.Wrapf(err, "marshal %s payload", topic)
	}
	return Event{
		ID:          uuid.New(),
		Topic:       topic,
		AggregateID: aggregateID,
		Payload:     body,
		CreatedAt:   now,
	}, nil
}

// TrackingCache stores serialized public tracking views by tracking code.
type TrackingCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

func TrackingCacheKey(code string) string {
	return "tracking:" + code
}
