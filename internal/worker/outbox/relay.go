package outbox

import (
	"context"
	"log/slog"

	"kilo-share/internal/pkg/clock"
	"kilo-share/internal/usecase/shared"

	"github.com/google/uuid"
)

type Publisher interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

// Relay moves committed outbox events to the broker. Delivery is at least
// once: an event published just before a failed commit goes out again.
type Relay struct {
	uow       shared.UnitOfWork
	publisher Publisher
	clock     clock.Clock
	batchSize   int
	maxAttempts int
	logger      *slog.Logger
}

func NewRelay(uow shared.UnitOfWork, publisher Publisher, clk clock.Clock, batchSize, maxAttempts int, logger *slog.Logger) *Relay {
	if batchSize <= 0 {
		batchSize = 100
	}
	if maxAttempts <= 0 {
		maxAttempts = 10
	}
	return &Relay{
		uow:         uow,
		publisher:   publisher,
		clock:       clk,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		logger:      logger.With("component", "outbox_relay"),
	}
}

type Result struct {
	Published    int
	Failed       int
	DeadLettered int
}

// RunOnce claims one batch and publishes it in order. After a failure the
// remaining events of that aggregate are left for the next run so consumers
// never see them out of order. An event that reaches maxAttempts failures is
// dead-lettered: it keeps its row and last error but is no longer claimed,
// which lets the rest of its aggregate move on.
func (r *Relay) RunOnce(ctx context.Context) (Result, error) {
	var res Result
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res = Result{}
		events, err := tx.Outbox().ClaimPending(ctx, r.batchSize, r.maxAttempts)
		if err != nil {
			return err
		}

		blocked := map[uuid.UUID]bool{}
		for _, e := range events {
			if blocked[e.AggregateID] {
				continue
			}
			if err := r.publisher.Publish(ctx, e.Topic, []byte(e.AggregateID.String()), e.Payload); err != nil {
				blocked[e.AggregateID] = true
				res.Failed++
				attempts := e.Attempts + 1
				if attempts >= r.maxAttempts {
					res.DeadLettered++
					r.logger.ErrorContext(ctx, "outbox event dead-lettered",
						"event_id", e.ID, "topic", e.Topic, "aggregate_id", e.AggregateID, "attempts", attempts, "error", err.Error())
				} else {
					r.logger.WarnContext(ctx, "outbox publish failed",
						"event_id", e.ID, "topic", e.Topic, "attempts", attempts, "error", err.Error())
				}
				if err := tx.Outbox().MarkFailed(ctx, e.ID, err.Error()); err != nil {
					return err
				}
				continue
			}
			if err := tx.Outbox().MarkPublished(ctx, e.ID, r.clock.Now()); err != nil {
				return err
			}
			res.Published++
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}
