package readstore

import (
	"context"
	"strconv"

	"kilo-share/internal/infra"
	"kilo-share/internal/infra/converter"
	"kilo-share/internal/infra/db"
	"kilo-share/internal/pkg/pgconv"
	"kilo-share/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const reservationSelect = `SELECT ` + converter.ReservationColumns + `, ` + converter.RouteColumns + `
FROM reservations r
JOIN cargo_offers o ON o.id = r.cargo_offer_id`

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(db db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: db}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	return r.findOne(ctx, reservationSelect+` WHERE r.id = $1`, id)
}

// FindByTrackingCode expects the canonical upper-case code.
func (r *ReservationReadStore) FindByTrackingCode(ctx context.Context, code string) (*queries.ReservationView, error) {
	return r.findOne(ctx, reservationSelect+` WHERE r.tracking_code = $1`, code)
}

func (r *ReservationReadStore) findOne(ctx context.Context, sql string, arg any) (*queries.ReservationView, error) {
	var (
		row   converter.ReservationRow
		route converter.RouteRow
	)
	err := r.db.QueryRow(ctx, sql, arg).Scan(append(row.Targets(), route.Targets()...)...)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}
	return converter.ReservationToView(row, route), nil
}

func (r *ReservationReadStore) ListByOwner(ctx context.Context, ownerID uuid.UUID, after *queries.Position, limit int32) ([]*queries.ReservationView, error) {
	return r.list(ctx, []string{"r.owner_id = $1"}, []any{ownerID}, after, limit)
}

func (r *ReservationReadStore) ListAll(ctx context.Context, status *string, after *queries.Position, limit int32) ([]*queries.ReservationView, error) {
	if status == nil {
		return r.list(ctx, nil, nil, after, limit)
	}
	return r.list(ctx, []string{"r.status = $1"}, []any{*status}, after, limit)
}

// list pages newest first with the (created_at, id) keyset.
func (r *ReservationReadStore) list(ctx context.Context, where []string, args []any, after *queries.Position, limit int32) ([]*queries.ReservationView, error) {
	if after != nil {
		args = append(args, after.CreatedAt, after.ID)
		where = append(where, "(r.created_at, r.id) < ($"+itoa(len(args)-1)+", $"+itoa(len(args))+")")
	}
	sql := reservationSelect
	for i, w := range where {
		if i == 0 {
			sql += " WHERE " + w
		} else {
			sql += " AND " + w
		}
	}
	args = append(args, limit)
	sql += ` ORDER BY r.created_at DESC, r.id DESC LIMIT $` + itoa(len(args))

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	return collect(rows, "reservation", func(rows pgx.Rows) (*queries.ReservationView, error) {
		var (
			row   converter.ReservationRow
			route converter.RouteRow
		)
		if err := rows.Scan(append(row.Targets(), route.Targets()...)...); err != nil {
			return nil, err
		}
		return converter.ReservationToView(row, route), nil
	})
}

func (r *ReservationReadStore) History(ctx context.Context, reservationID uuid.UUID) ([]*queries.StatusHistoryView, error) {
	rows, err := r.db.Query(ctx, `
SELECT `+converter.HistoryColumns+`
FROM reservation_status_history h
WHERE h.reservation_id = $1
ORDER BY h.created_at, h.seq
`, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list status history", err)
	}
	out, err := collect(rows, "status history", func(rows pgx.Rows) (*queries.StatusHistoryView, error) {
		var row converter.HistoryRow
		if err := rows.Scan(row.Targets()...); err != nil {
			return nil, err
		}
		return converter.HistoryToView(row), nil
	})
	if out == nil && err == nil {
		out = []*queries.StatusHistoryView{}
	}
	return out, err
}

func itoa(n int) string { return strconv.Itoa(n) }
