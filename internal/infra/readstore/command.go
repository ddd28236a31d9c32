package readstore

import (
	"context"

	"kilo-share/internal/domain/offer"
	"kilo-share/internal/domain/reservation"
	"kilo-share/internal/infra"
	"kilo-share/internal/infra/converter"
	"kilo-share/internal/infra/db"
	"kilo-share/internal/pkg/pgconv"
	"kilo-share/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CommandReadStore loads domain entities for the write side. The ForUpdate
// variants take row locks and only make sense inside a transaction.
type CommandReadStore struct {
	db db.DBTX
}

var _ shared.CommandReads = (*CommandReadStore)(nil)

func NewCommandReadStore(db db.DBTX) *CommandReadStore {
	return &CommandReadStore{db: db}
}

func (r *CommandReadStore) OfferByID(ctx context.Context, id uuid.UUID) (*offer.Offer, error) {
	return r.offer(ctx, `SELECT `+converter.OfferColumns+` FROM cargo_offers o WHERE o.id = $1`, id)
}

func (r *CommandReadStore) OfferForUpdate(ctx context.Context, id uuid.UUID) (*offer.Offer, error) {
	return r.offer(ctx, `SELECT `+converter.OfferColumns+` FROM cargo_offers o WHERE o.id = $1 FOR UPDATE`, id)
}

func (r *CommandReadStore) offer(ctx context.Context, sql string, id uuid.UUID) (*offer.Offer, error) {
	var row converter.OfferRow
	if err := r.db.QueryRow(ctx, sql, id).Scan(row.Targets()...); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("offer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load offer", err)
	}
	o, err := converter.OfferToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("stored offer is invalid", err)
	}
	return o, nil
}

func (r *CommandReadStore) ReservationByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return r.reservation(ctx, `SELECT `+converter.ReservationColumns+` FROM reservations r WHERE r.id = $1`, id)
}

func (r *CommandReadStore) ReservationForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return r.reservation(ctx, `SELECT `+converter.ReservationColumns+` FROM reservations r WHERE r.id = $1 FOR UPDATE`, id)
}

func (r *CommandReadStore) reservation(ctx context.Context, sql string, id uuid.UUID) (*reservation.Reservation, error) {
	var row converter.ReservationRow
	if err := r.db.QueryRow(ctx, sql, id).Scan(row.Targets()...); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load reservation", err)
	}
	res, err := converter.ReservationToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("stored reservation is invalid", err)
	}
	return res, nil
}

func (r *CommandReadStore) ReservationsByOffer(ctx context.Context, offerID uuid.UUID) ([]*reservation.Reservation, error) {
	rows, err := r.db.Query(ctx, `
SELECT `+converter.ReservationColumns+`
FROM reservations r
WHERE r.cargo_offer_id = $1
ORDER BY r.created_at, r.id
`, offerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations of offer", err)
	}
	return collect(rows, "reservation", func(rows pgx.Rows) (*reservation.Reservation, error) {
		var row converter.ReservationRow
		if err := rows.Scan(row.Targets()...); err != nil {
			return nil, err
		}
		return converter.ReservationToDomain(row)
	})
}

func (r *CommandReadStore) HistoryByReservation(ctx context.Context, reservationID uuid.UUID) ([]*reservation.HistoryEntry, error) {
	rows, err := r.db.Query(ctx, `
SELECT `+converter.HistoryColumns+`
FROM reservation_status_history h
WHERE h.reservation_id = $1
ORDER BY h.created_at, h.seq
`, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load status history", err)
	}
	return collect(rows, "status history", func(rows pgx.Rows) (*reservation.HistoryEntry, error) {
		var row converter.HistoryRow
		if err := rows.Scan(row.Targets()...); err != nil {
			return nil, err
		}
		return converter.HistoryToDomain(row)
	})
}

func (r *CommandReadStore) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	var rec shared.IdempotencyRecord
	err := r.db.QueryRow(ctx, `
SELECT key, user_id, request_hash, result_reservation_id, created_at
FROM idempotency_keys
WHERE key = $1 AND user_id = $2
`, key, userID).Scan(&rec.Key, &rec.UserID, &rec.RequestHash, &rec.ResultReservationID, &rec.CreatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load idempotency key", err)
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	return &rec, nil
}
