package repository

import (
	"context"
	"time"

	"kilo-share/internal/domain/user"
	"kilo-share/internal/infra"
	"kilo-share/internal/infra/db"

	"github.com/google/uuid"
)

type RoleRepository struct {
	db db.DBTX
}

func NewRoleRepository(db db.DBTX) *RoleRepository {
	return &RoleRepository{db: db}
}

// Grant reports whether a row was added.
func (r *RoleRepository) Grant(ctx context.Context, userID uuid.UUID, role user.Role, now time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `
INSERT INTO user_roles (user_id, role, granted_at)
VALUES ($1,$2,$3)
ON CONFLICT (user_id, role) DO NOTHING
`, userID, role.String(), now)
	if err != nil {
		return false, infra.WrapRepoErr("failed to grant role", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RoleRepository) Revoke(ctx context.Context, userID uuid.UUID, role user.Role) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1 AND role = $2`, userID, role.String())
	if err != nil {
		return false, infra.WrapRepoErr("failed to revoke role", err)
	}
	return tag.RowsAffected() == 1, nil
}
