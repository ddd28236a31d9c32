package readstore

import (
	"context"

	"kilo-share/internal/domain/user"
	"kilo-share/internal/infra"
	"kilo-share/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RoleReadStore struct {
	db db.DBTX
}

func NewRoleReadStore(db db.DBTX) *RoleReadStore {
	return &RoleReadStore{db: db}
}

// RolesByUser skips values the domain no longer knows.
func (r *RoleReadStore) RolesByUser(ctx context.Context, userID uuid.UUID) ([]user.Role, error) {
	rows, err := r.db.Query(ctx, `SELECT role FROM user_roles WHERE user_id = $1 ORDER BY role`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list user roles", err)
	}
	names, err := collect(rows, "user role", func(rows pgx.Rows) (string, error) {
		var s string
		err := rows.Scan(&s)
		return s, err
	})
	if err != nil {
		return nil, err
	}
	out := make([]user.Role, 0, len(names))
	for _, n := range names {
		if role, err := user.NewRole(n); err == nil {
			out = append(out, role)
		}
	}
	return out, nil
}
