//go:build unit || e2e

package dbtest

import (
	"context"
	"strings"
	"sync"
	"time"

	"kilo-share/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Every test database is migrated from the same files, so one statement
// serves them all once built.
var (
	truncateMu   sync.Mutex
	truncateStmt string
)

// ResetDB empties every application table, leaving the migration bookkeeping.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt, err := truncateStatement(ctx, pool)
	if err != nil {
		return err
	}
	if stmt == "" {
		return nil
	}
	_, err = pool.Exec(ctx, stmt)
	return errs.Wrap(err, "truncate tables")
}

func truncateStatement(ctx context.Context, pool *pgxpool.Pool) (string, error) {
	truncateMu.Lock()
	defer truncateMu.Unlock()
	if truncateStmt != "" {
		return truncateStmt, nil
	}

	rows, err := pool.Query(ctx, `
		SELECT format('%I.%I', schemaname, tablename)
		FROM pg_tables
		WHERE schemaname = 'public' AND tablename <> 'atlas_schema_revisions'
		ORDER BY tablename`)
	if err != nil {
		return "", errs.Wrap(err, "list tables")
	}
	tables, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return "", errs.Wrap(err, "scan table names")
	}
	if len(tables) == 0 {
		return "", nil
	}
	truncateStmt = "TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE"
	return truncateStmt, nil
}
