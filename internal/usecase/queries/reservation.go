package queries

import (
	"context"

	"kilo-share/internal/domain/policy"
	"kilo-share/internal/domain/reservation"
	"kilo-share/internal/domain/user"
	"kilo-share/internal/infra"
	"kilo-share/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reservation.go -destination=../../testutil/mock/queries/reservation_mock.go -package=queriesmock

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByTrackingCode(ctx context.Context, code string) (*ReservationView, error)
	// List methods return newest first and continue strictly after the
	// given position when it is set.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, after *Position, limit int32) ([]*ReservationView, error)
	ListAll(ctx context.Context, status *string, after *Position, limit int32) ([]*ReservationView, error)
	History(ctx context.Context, reservationID uuid.UUID) ([]*StatusHistoryView, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*ReservationView, error)
	ListMine(ctx context.Context, actor user.Actor, cursor *Cursor, limit int) ([]*ReservationView, *Cursor, error)
	ListAll(ctx context.Context, actor user.Actor, status *string, cursor *Cursor, limit int) ([]*ReservationView, *Cursor, error)
	ListHistory(ctx context.Context, actor user.Actor, reservationID uuid.UUID) ([]*StatusHistoryView, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
}

func NewReservationQueries(store ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{store: store}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*ReservationView, error) {
	view, err := q.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ResourceReservation, policy.ActionRead, policy.Target{OwnerID: view.OwnerID}); err != nil {
		return nil, err
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListMine(ctx context.Context, actor user.Actor, cursor *Cursor, limit int) ([]*ReservationView, *Cursor, error) {
	if !actor.IsAuthenticated() {
		return nil, nil, errs.Wrap(policy.ErrUnauthorized, "list reservations")
	}
	limit = ValidateLimit(limit)
	after, err := positionFromCursor(cursor)
	if err != nil {
		return nil, nil, err
	}
	rows, err := q.store.ListByOwner(ctx, actor.UserID(), after, int32(limit+1))
	if err != nil {
		return nil, nil, err
	}
	rows, next := page(rows, limit, reservationPosition)
	return rows, next, nil
}

func (q *reservationQueriesImpl) ListAll(ctx context.Context, actor user.Actor, status *string, cursor *Cursor, limit int) ([]*ReservationView, *Cursor, error) {
	if !actor.IsAdmin() {
		return nil, nil, errs.Wrap(policy.ErrUnauthorized, "list all reservations")
	}
	if status != nil {
		if _, err := reservation.ParseStatus(*status); err != nil {
			return nil, nil, err
		}
	}
	limit = ValidateLimit(limit)
	after, err := positionFromCursor(cursor)
	if err != nil {
		return nil, nil, err
	}
	rows, err := q.store.ListAll(ctx, status, after, int32(limit+1))
	if err != nil {
		return nil, nil, err
	}
	rows, next := page(rows, limit, reservationPosition)
	return rows, next, nil
}

func (q *reservationQueriesImpl) ListHistory(ctx context.Context, actor user.Actor, reservationID uuid.UUID) ([]*StatusHistoryView, error) {
	view, err := q.find(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ResourceStatusHistory, policy.ActionRead, policy.Target{OwnerID: view.OwnerID}); err != nil {
		return nil, err
	}
	return q.store.History(ctx, reservationID)
}

func (q *reservationQueriesImpl) find(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrReservationNotFound
		}
		return nil, err
	}
	return view, nil
}

func reservationPosition(v *ReservationView) Position {
	return Position{CreatedAt: v.CreatedAt, ID: v.ID}
}
