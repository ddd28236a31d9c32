package repository

import (
	"context"

	"kilo-share/internal/domain/reservation"
	"kilo-share/internal/infra"
	"kilo-share/internal/infra/db"
	"kilo-share/internal/pkg/pgconv"
)

// HistoryRepository only appends; history rows are never updated.
type HistoryRepository struct {
	db db.DBTX
}

func NewHistoryRepository(db db.DBTX) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Append(ctx context.Context, e *reservation.HistoryEntry) error {
	_, err := r.db.Exec(ctx, `
INSERT INTO reservation_status_history (id, reservation_id, status, notes, created_at)
VALUES ($1,$2,$3,$4,$5)
`, e.ID(), e.ReservationID(), e.Status().String(), pgconv.StringPtrToPgtype(e.Notes()), e.CreatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to append status history", err)
	}
	return nil
}
