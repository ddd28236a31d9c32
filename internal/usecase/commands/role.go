package commands

import (
	"context"

	"kilo-share/internal/domain/policy"
	"kilo-share/internal/domain/user"
	"kilo-share/internal/pkg/clock"
	"kilo-share/internal/pkg/errs"
	"kilo-share/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=role.go -destination=../../testutil/mock/commands/role_mock.go -package=commandsmock

type RoleCommands interface {
	// Grant reports whether the role was newly granted.
	Grant(ctx context.Context, actor user.Actor, userID uuid.UUID, role string) (bool, error)
	// Revoke reports whether a grant was removed.
	Revoke(ctx context.Context, actor user.Actor, userID uuid.UUID, role string) (bool, error)
}

type roleUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewRoleUseCase(uow shared.UnitOfWork, clk clock.Clock) RoleCommands {
	return &roleUseCaseImpl{uow: uow, clock: clk}
}

func (uc *roleUseCaseImpl) Grant(ctx context.Context, actor user.Actor, userID uuid.UUID, raw string) (bool, error) {
	role, err := uc.authorize(actor, userID, raw)
	if err != nil {
		return false, err
	}
	// Everyone holds the user role implicitly.
	if role == user.RoleUser {
		return false, nil
	}

	var granted bool
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		granted, err = tx.Roles().Grant(ctx, userID, role, uc.clock.Now())
		return err
	})
	return granted, err
}

func (uc *roleUseCaseImpl) Revoke(ctx context.Context, actor user.Actor, userID uuid.UUID, raw string) (bool, error) {
	role, err := uc.authorize(actor, userID, raw)
	if err != nil {
		return false, err
	}
	if role == user.RoleUser {
		return false, errs.Wrap(user.ErrInvalidRole, "the user role is implicit")
	}
	if role == user.RoleAdmin && actor.Is(userID) {
		return false, errs.Wrap(policy.ErrUnauthorized, "revoke own admin role")
	}

	var revoked bool
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		revoked, err = tx.Roles().Revoke(ctx, userID, role)
		return err
	})
	return revoked, err
}

func (uc *roleUseCaseImpl) authorize(actor user.Actor, userID uuid.UUID, raw string) (user.Role, error) {
	if err := policy.Authorize(actor, policy.ResourceUserRole, policy.ActionWrite, policy.Target{OwnerID: userID}); err != nil {
		return "", err
	}
	return user.NewRole(raw)
}
