package repository

import (
	"context"
	"time"

	"kilo-share/internal/infra"
	"kilo-share/internal/infra/db"
	"kilo-share/internal/usecase/shared"

	"github.com/google/uuid"
)

type OutboxRepository struct {
	db db.DBTX
}

func NewOutboxRepository(db db.DBTX) *OutboxRepository {
	return &OutboxRepository{db: db}
}

func (r *OutboxRepository) Append(ctx context.Context, e shared.Event) error {
	_, err := r.db.Exec(ctx, `
INSERT INTO outbox_events (id, topic, aggregate_id, payload, created_at)
VALUES ($1,$2,$3,$4,$5)
`, e.ID, e.Topic, e.AggregateID, e.Payload, e.CreatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to append outbox event", err)
	}
	return nil
}

// ClaimPending locks up to limit unpublished events, oldest first. Rows held
// by a concurrent relay are skipped; the locks last until the transaction ends.
// Events that already failed maxAttempts times stay in the table as dead
// letters and are never claimed again.
func (r *OutboxRepository) ClaimPending(ctx context.Context, limit, maxAttempts int) ([]shared.Event, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, topic, aggregate_id, payload, created_at, attempts
FROM outbox_events
WHERE published_at IS NULL AND attempts < $2
ORDER BY created_at, id
LIMIT $1
FOR UPDATE SKIP LOCKED
`, limit, maxAttempts)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim outbox events", err)
	}
	defer rows.Close()

	out := make([]shared.Event, 0, limit)
	for rows.Next() {
		var e shared.Event
		if err := rows.Scan(&e.ID, &e.Topic, &e.AggregateID, &e.Payload, &e.CreatedAt, &e.Attempts); err != nil {
			return nil, infra.WrapRepoErr("failed to scan outbox event", err)
		}
		e.CreatedAt = e.CreatedAt.UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read outbox events", err)
	}
	return out, nil
}

func (r *OutboxRepository) MarkPublished(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := r.db.Exec(ctx, `UPDATE outbox_events SET published_at = $2, last_error = NULL WHERE id = $1`, id, at)
	if err != nil {
		return infra.WrapRepoErr("failed to mark outbox event published", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("outbox event not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *OutboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	tag, err := r.db.Exec(ctx, `UPDATE outbox_events SET attempts = attempts + 1, last_error = $2 WHERE id = $1`, id, reason)
	if err != nil {
		return infra.WrapRepoErr("failed to mark outbox event failed", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("outbox event not found", nil, infra.KindNotFound)
	}
	return nil
}
