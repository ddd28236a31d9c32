package repository

import (
	"context"
	"time"

	"kilo-share/internal/domain/offer"
	"kilo-share/internal/infra"
	"kilo-share/internal/infra/converter"
	"kilo-share/internal/infra/db"

	"github.com/google/uuid"
)

type OfferRepository struct {
	db db.DBTX
}

func NewOfferRepository(db db.DBTX) *OfferRepository {
	return &OfferRepository{db: db}
}

func (r *OfferRepository) Create(ctx context.Context, o *offer.Offer) error {
	_, err := r.db.Exec(ctx, `
INSERT INTO cargo_offers (
  id, departure_city, departure_country, departure_flag,
  arrival_city, arrival_country, arrival_flag, departure_date,
  total_kilos, available_kilos, price_per_kilo_cents, is_active,
  created_at, updated_at
)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
`, converter.OfferArgs(o)...)
	if err != nil {
		return infra.WrapRepoErr("failed to create offer", err)
	}
	return nil
}

func (r *OfferRepository) Update(ctx context.Context, o *offer.Offer) error {
	tag, err := r.db.Exec(ctx, `
UPDATE cargo_offers SET
  departure_city = $2, departure_country = $3, departure_flag = $4,
  arrival_city = $5, arrival_country = $6, arrival_flag = $7, departure_date = $8,
  total_kilos = $9, available_kilos = $10, price_per_kilo_cents = $11, is_active = $12,
  updated_at = $14
WHERE id = $1
`, converter.OfferArgs(o)...)
	if err != nil {
		return infra.WrapRepoErr("failed to update offer", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("offer not found", nil, infra.KindNotFound)
	}
	return nil
}

// Delete cascades to reservations, their history, and nulls idempotency results.
func (r *OfferRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cargo_offers WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete offer", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("offer not found", nil, infra.KindNotFound)
	}
	return nil
}

// DecrementAvailable is the single conditional update that keeps concurrent
// reserves from overselling. It reports false when the offer is missing,
// inactive or short of kilos.
// DecrementAvailable reports false when no active offer has kilos left; the
// caller re-reads the offer to tell which. Kilos beyond MaxKilos cannot fit
// any offer and would not encode as int4, so they never reach the database.
func (r *OfferRepository) DecrementAvailable(ctx context.Context, id uuid.UUID, kilos int, now time.Time) (bool, error) {
	if kilos > offer.MaxKilos {
		return false, nil
	}
	tag, err := r.db.Exec(ctx, `
UPDATE cargo_offers
SET available_kilos = available_kilos - $2, updated_at = $3
WHERE id = $1 AND is_active AND available_kilos >= $2
`, id, kilos, now)
	if err != nil {
		return false, infra.WrapRepoErr("failed to decrement available kilos", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *OfferRepository) IncrementAvailable(ctx context.Context, id uuid.UUID, kilos int, now time.Time) error {
	tag, err := r.db.Exec(ctx, `
UPDATE cargo_offers
SET available_kilos = LEAST(total_kilos, available_kilos + $2), updated_at = $3
WHERE id = $1
`, id, kilos, now)
	if err != nil {
		return infra.WrapRepoErr("failed to increment available kilos", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("offer not found", nil, infra.KindNotFound)
	}
	return nil
}
