package commands

import (
	"context"

	"kilo-share/internal/domain/offer"
	"kilo-share/internal/domain/policy"
	"kilo-share/internal/domain/reservation"
	"kilo-share/internal/domain/user"
	"kilo-share/internal/infra"
	"kilo-share/internal/pkg/clock"
	"kilo-share/internal/pkg/errs"
	"kilo-share/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=offer.go -destination=../../testutil/mock/commands/offer_mock.go -package=commandsmock

type OfferCommands interface {
	Create(ctx context.Context, actor user.Actor, draft offer.Draft) (uuid.UUID, error)
	Update(ctx context.Context, actor user.Actor, id uuid.UUID, patch offer.Patch) error
	// Delete removes the offer with its reservations and their history.
	// confirmed must be set explicitly by the caller.
	Delete(ctx context.Context, actor user.Actor, id uuid.UUID, confirmed bool) error
}

type offerUseCaseImpl struct {
	uow   shared.UnitOfWork
	cache shared.TrackingCache
	clock clock.Clock
}

func NewOfferUseCase(uow shared.UnitOfWork, cache shared.TrackingCache, clk clock.Clock) OfferCommands {
	return &offerUseCaseImpl{uow: uow, cache: cache, clock: clk}
}

func (uc *offerUseCaseImpl) Create(ctx context.Context, actor user.Actor, draft offer.Draft) (uuid.UUID, error) {
	if err := authorizeOfferWrite(actor); err != nil {
		return uuid.Nil, err
	}
	o, err := offer.NewOffer(draft, uc.clock.Now())
	if err != nil {
		return uuid.Nil, err
	}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Offers().Create(ctx, o)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return o.ID(), nil
}

func (uc *offerUseCaseImpl) Update(ctx context.Context, actor user.Actor, id uuid.UUID, p offer.Patch) error {
	if err := authorizeOfferWrite(actor); err != nil {
		return err
	}
	// Tracking views embed the route and date, so cached ones go stale.
	var stale []string
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		stale = nil
		o, err := lockOffer(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := o.Apply(p, uc.clock.Now()); err != nil {
			return err
		}
		if err := tx.Offers().Update(ctx, o); err != nil {
			return err
		}
		linked, err := tx.Reads().ReservationsByOffer(ctx, id)
		if err != nil {
			return err
		}
		for _, r := range linked {
			stale = append(stale, r.TrackingCode().String())
		}
		return nil
	})
	if err != nil {
		return err
	}

	invalidateTracking(ctx, uc.cache, stale...)
	return nil
}

func (uc *offerUseCaseImpl) Delete(ctx context.Context, actor user.Actor, id uuid.UUID, confirmed bool) error {
	if err := authorizeOfferWrite(actor); err != nil {
		return err
	}
	if !confirmed {
		return errs.ErrConfirmationRequired
	}

	var purged []string
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		purged = nil
		if _, err := lockOffer(ctx, tx, id); err != nil {
			return err
		}
		doomed, err := tx.Reads().ReservationsByOffer(ctx, id)
		if err != nil {
			return err
		}

		now := uc.clock.Now()
		payload := reservation.OfferDeletedEvent{
			OfferID:      id,
			DeletedBy:    actor.UserID(),
			DeletedAt:    now,
			Reservations: make([]reservation.RemovedReservation, 0, len(doomed)),
		}
		for _, r := range doomed {
			code := r.TrackingCode().String()
			payload.Reservations = append(payload.Reservations, reservation.RemovedReservation{ReservationID: r.ID(), TrackingCode: code})
			purged = append(purged, code)
		}
		ev, err := shared.NewEvent(reservation.TopicOfferDeleted, id, payload, now)
		if err != nil {
			return err
		}
		if err := tx.Outbox().Append(ctx, ev); err != nil {
			return err
		}
		return tx.Offers().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	invalidateTracking(ctx, uc.cache, purged...)
	return nil
}

func authorizeOfferWrite(actor user.Actor) error {
	return policy.Authorize(actor, policy.ResourceOffer, policy.ActionWrite, policy.Target{})
}

func lockOffer(ctx context.Context, tx shared.Tx, id uuid.UUID) (*offer.Offer, error) {
	o, err := tx.Reads().OfferForUpdate(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrOfferNotFound
		}
		return nil, err
	}
	return o, nil
}
