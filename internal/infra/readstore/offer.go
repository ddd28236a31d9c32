package readstore

import (
	"context"
	"strings"

	"kilo-share/internal/infra"
	"kilo-share/internal/infra/converter"
	"kilo-share/internal/infra/db"
	"kilo-share/internal/pkg/pgconv"
	"kilo-share/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OfferReadStore struct {
	db db.DBTX
}

func NewOfferReadStore(db db.DBTX) *OfferReadStore {
	return &OfferReadStore{db: db}
}

func (r *OfferReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OfferView, error) {
	var row converter.OfferRow
	err := r.db.QueryRow(ctx, `SELECT `+converter.OfferColumns+` FROM cargo_offers o WHERE o.id = $1`, id).Scan(row.Targets()...)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("offer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find offer by ID", err)
	}
	return converter.OfferToView(row), nil
}

func (r *OfferReadStore) ListActive(ctx context.Context, f queries.OfferFilter) ([]*queries.OfferView, error) {
	return r.list(ctx, f, true)
}

func (r *OfferReadStore) ListAll(ctx context.Context, f queries.OfferFilter) ([]*queries.OfferView, error) {
	return r.list(ctx, f, false)
}

func (r *OfferReadStore) list(ctx context.Context, f queries.OfferFilter, listedOnly bool) ([]*queries.OfferView, error) {
	var (
		where []string
		args  []any
	)
	if listedOnly {
		where = append(where, "o.is_active AND o.available_kilos > 0")
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		args = append(args, pgconv.ContainsPattern(q))
		where = append(where, `(o.departure_city ILIKE $1 OR o.departure_country ILIKE $1
  OR o.arrival_city ILIKE $1 OR o.arrival_country ILIKE $1)`)
	}

	sql := `SELECT ` + converter.OfferColumns + ` FROM cargo_offers o`
	if len(where) > 0 {
		sql += ` WHERE ` + strings.Join(where, " AND ")
	}
	sql += ` ORDER BY o.departure_date, o.created_at, o.id`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		sql += ` LIMIT $` + itoa(len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		sql += ` OFFSET $` + itoa(len(args))
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list offers", err)
	}
	return collect(rows, "offer", func(rows pgx.Rows) (*queries.OfferView, error) {
		var row converter.OfferRow
		if err := rows.Scan(row.Targets()...); err != nil {
			return nil, err
		}
		return converter.OfferToView(row), nil
	})
}
