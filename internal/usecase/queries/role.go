package queries

import (
	"context"

	"kilo-share/internal/domain/policy"
	"kilo-share/internal/domain/user"

	"github.com/google/uuid"
)

//go:generate mockgen -source=role.go -destination=../../testutil/mock/queries/role_mock.go -package=queriesmock

type RoleReadStore interface {
	// RolesByUser returns the explicit grants only.
	RolesByUser(ctx context.Context, userID uuid.UUID) ([]user.Role, error)
}

type RoleQueries interface {
	ListRoles(ctx context.Context, actor user.Actor, userID uuid.UUID) (*RoleView, error)
	// ActorFor resolves the roles of an authenticated user.
	ActorFor(ctx context.Context, userID uuid.UUID) (user.Actor, error)
}

type roleQueriesImpl struct {
	store RoleReadStore
}

func NewRoleQueries(store RoleReadStore) RoleQueries {
	return &roleQueriesImpl{store: store}
}

func (q *roleQueriesImpl) ListRoles(ctx context.Context, actor user.Actor, userID uuid.UUID) (*RoleView, error) {
	if err := policy.Authorize(actor, policy.ResourceUserRole, policy.ActionRead, policy.Target{OwnerID: userID}); err != nil {
		return nil, err
	}
	subject, err := q.ActorFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := &RoleView{UserID: userID}
	for _, r := range subject.Roles() {
		view.Roles = append(view.Roles, r.String())
	}
	return view, nil
}

func (q *roleQueriesImpl) ActorFor(ctx context.Context, userID uuid.UUID) (user.Actor, error) {
	roles, err := q.store.RolesByUser(ctx, userID)
	if err != nil {
		return user.Anonymous, err
	}
	return user.NewActor(userID, roles...), nil
}
