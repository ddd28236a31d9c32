package repository

import (
	"context"

	"kilo-share/internal/infra"
	"kilo-share/internal/infra/db"
	"kilo-share/internal/usecase/shared"

	"github.com/google/uuid"
)

type IdempotencyRepository struct {
	db db.DBTX
}

func NewIdempotencyRepository(db db.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{db: db}
}

// TryInsert reports false when the (key, user) pair already exists. A
// concurrent insert of the same pair blocks until the other transaction ends.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, rec shared.IdempotencyRecord) (bool, error) {
	tag, err := r.db.Exec(ctx, `
INSERT INTO idempotency_keys (key, user_id, request_hash, result_reservation_id, created_at)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (key, user_id) DO NOTHING
`, rec.Key, rec.UserID, rec.RequestHash, rec.ResultReservationID, rec.CreatedAt)
	if err != nil {
		return false, infra.WrapRepoErr("failed to try insert idempotency key", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *IdempotencyRepository) Complete(ctx context.Context, key, userID, reservationID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
UPDATE idempotency_keys SET result_reservation_id = $3
WHERE key = $1 AND user_id = $2
`, key, userID, reservationID)
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	return nil
}
