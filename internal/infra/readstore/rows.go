package readstore

import (
	"kilo-share/internal/infra"

	"github.com/jackc/pgx/v5"
)

// collect scans every row with scan and closes rows.
func collect[T any](rows pgx.Rows, what string, scan func(pgx.Rows) (T, error)) ([]T, error) {
	defer rows.Close()
	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan "+what, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read "+what, err)
	}
	return out, nil
}
