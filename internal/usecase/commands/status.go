package commands

import (
	"context"
	"time"

	"kilo-share/internal/domain/policy"
	"kilo-share/internal/domain/reservation"
	"kilo-share/internal/domain/user"
	"kilo-share/internal/infra"
	"kilo-share/internal/pkg/clock"
	"kilo-share/internal/pkg/errs"
	"kilo-share/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=status.go -destination=../../testutil/mock/commands/status_mock.go -package=commandsmock

type TransitionRequest struct {
	ReservationID uuid.UUID
	Status        string
	Notes         *string
}

type TransitionResult struct {
	ReservationID   uuid.UUID
	TrackingCode    string
	Status          string
	StatusUpdatedAt time.Time
	// Changed is false when the reservation already had the requested status.
	Changed bool
}

type StatusCommands interface {
	Transition(ctx context.Context, actor user.Actor, req TransitionRequest) (*TransitionResult, error)
}

type statusUseCaseImpl struct {
	uow    shared.UnitOfWork
	policy reservation.TransitionPolicy
	cache  shared.TrackingCache
	clock  clock.Clock
}

func NewStatusUseCase(uow shared.UnitOfWork, p reservation.TransitionPolicy, cache shared.TrackingCache, clk clock.Clock) StatusCommands {
	return &statusUseCaseImpl{uow: uow, policy: p, cache: cache, clock: clk}
}

func (uc *statusUseCaseImpl) Transition(ctx context.Context, actor user.Actor, req TransitionRequest) (*TransitionResult, error) {
	if err := policy.Authorize(actor, policy.ResourceStatusHistory, policy.ActionWrite, policy.Target{}); err != nil {
		return nil, err
	}
	to, err := reservation.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}
	notes, err := reservation.NewNotes(req.Notes)
	if err != nil {
		return nil, err
	}

	var result *TransitionResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Reads().ReservationForUpdate(ctx, req.ReservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrReservationNotFound
			}
			return err
		}

		from := r.Status()
		now := uc.clock.Now()
		changed, err := r.Transition(to, uc.policy, now)
		if err != nil {
			return err
		}
		result = &TransitionResult{
			ReservationID:   r.ID(),
			TrackingCode:    r.TrackingCode().String(),
			Status:          r.Status().String(),
			StatusUpdatedAt: r.StatusUpdatedAt(),
			Changed:         changed,
		}
		if !changed {
			return nil
		}

		if err := tx.Reservations().Update(ctx, r); err != nil {
			return err
		}
		entry, err := reservation.NewHistoryEntry(r.ID(), to, notes, now)
		if err != nil {
			return err
		}
		if err := tx.History().Append(ctx, entry); err != nil {
			return err
		}

		ev, err := shared.NewEvent(reservation.TopicReservationStatusChanged, r.ID(), reservation.StatusChangedEvent{
			ReservationID: r.ID(),
			TrackingCode:  r.TrackingCode().String(),
			From:          from.String(),
			To:            to.String(),
			Notes:         notes,
			ChangedBy:     actor.UserID(),
			ChangedAt:     now,
		}, now)
		if err != nil {
			return err
		}
		return tx.Outbox().Append(ctx, ev)
	})
	if err != nil {
		return nil, err
	}

	if result.Changed {
		invalidateTracking(ctx, uc.cache, result.TrackingCode)
	}
	return result, nil
}
