package repository

import (
	"context"

	"kilo-share/internal/domain/reservation"
	"kilo-share/internal/infra"
	"kilo-share/internal/infra/db"
	"kilo-share/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(db db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// Insert reports false when the tracking code is already taken so the issuer
// can draw another one. Other unique violations are errors.
func (r *ReservationRepository) Insert(ctx context.Context, res *reservation.Reservation) (bool, error) {
	tag, err := r.db.Exec(ctx, `
INSERT INTO reservations (
  id, owner_id, cargo_offer_id, kilos_reserved, description,
  status, status_updated_at, tracking_code, created_at, updated_at
)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
ON CONFLICT (tracking_code) DO NOTHING
`,
		res.ID(), res.OwnerID(), res.OfferID(), res.Kilos(), pgconv.StringPtrToPgtype(res.Description()),
		res.Status().String(), res.StatusUpdatedAt(), res.TrackingCode().String(), res.CreatedAt(), res.UpdatedAt(),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to insert reservation", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Update persists the mutable fields; owner, offer, kilos and tracking code
// never change after creation.
func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	tag, err := r.db.Exec(ctx, `
UPDATE reservations
SET description = $2, status = $3, status_updated_at = $4, updated_at = $5
WHERE id = $1
`, res.ID(), pgconv.StringPtrToPgtype(res.Description()), res.Status().String(), res.StatusUpdatedAt(), res.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}
