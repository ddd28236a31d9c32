package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

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

//go:generate mockgen -source=reservation.go -destination=../../testutil/mock/commands/reservation_mock.go -package=commandsmock

type ReserveRequest struct {
	OfferID        uuid.UUID
	Kilos          int
	Description    *string
	IdempotencyKey *uuid.UUID
}

type ReserveResult struct {
	ReservationID uuid.UUID
	TrackingCode  string
	// Replayed is set when an earlier request with the same idempotency key
	// already created the reservation.
	Replayed bool
}

type ReservationCommands interface {
	Reserve(ctx context.Context, actor user.Actor, req ReserveRequest) (*ReserveResult, error)
	UpdateDescription(ctx context.Context, actor user.Actor, id uuid.UUID, description *string) error
	Cancel(ctx context.Context, actor user.Actor, id uuid.UUID) error
}

type reservationUseCaseImpl struct {
	uow    shared.UnitOfWork
	issuer *reservation.Issuer
	cache  shared.TrackingCache
	clock  clock.Clock
}

func NewReservationUseCase(uow shared.UnitOfWork, issuer *reservation.Issuer, cache shared.TrackingCache, clk clock.Clock) ReservationCommands {
	return &reservationUseCaseImpl{uow: uow, issuer: issuer, cache: cache, clock: clk}
}

// Reserve takes kilos from the offer, issues a tracking code and records the
// first history entry in one transaction.
func (uc *reservationUseCaseImpl) Reserve(ctx context.Context, actor user.Actor, req ReserveRequest) (*ReserveResult, error) {
	if !actor.IsAuthenticated() {
		return nil, errs.Wrap(policy.ErrUnauthorized, "reserve")
	}
	if err := reservation.ValidateKilos(req.Kilos); err != nil {
		return nil, err
	}
	description, err := reservation.NewDescription(req.Description)
	if err != nil {
		return nil, err
	}
	req.Description = description
	requestHash := calculateRequestHash(req)

	var result *ReserveResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = nil
		now := uc.clock.Now()

		if req.IdempotencyKey != nil {
			replay, err := uc.claimIdempotencyKey(ctx, tx, actor.UserID(), *req.IdempotencyKey, requestHash)
			if err != nil {
				return err
			}
			if replay != nil {
				result = replay
				return nil
			}
		}

		taken, err := tx.Offers().DecrementAvailable(ctx, req.OfferID, req.Kilos, now)
		if err != nil {
			return err
		}
		if !taken {
			return explainRejectedReserve(ctx, tx, req)
		}

		var created *reservation.Reservation
		_, err = uc.issuer.Issue(ctx, func(ctx context.Context, code reservation.TrackingCode) (bool, error) {
			r, err := reservation.NewReservation(actor.UserID(), req.OfferID, req.Kilos, req.Description, code, now)
			if err != nil {
				return false, err
			}
			claimed, err := tx.Reservations().Insert(ctx, r)
			if claimed {
				created = r
			}
			return claimed, err
		})
		if err != nil {
			return err
		}

		entry, err := reservation.NewHistoryEntry(created.ID(), created.Status(), nil, now)
		if err != nil {
			return err
		}
		if err := tx.History().Append(ctx, entry); err != nil {
			return err
		}

		ev, err := shared.NewEvent(reservation.TopicReservationCreated, created.ID(), reservation.NewCreatedEvent(created), now)
		if err != nil {
			return err
		}
		if err := tx.Outbox().Append(ctx, ev); err != nil {
			return err
		}

		if req.IdempotencyKey != nil {
			if err := tx.Idempotency().Complete(ctx, *req.IdempotencyKey, actor.UserID(), created.ID()); err != nil {
				return err
			}
		}

		result = &ReserveResult{ReservationID: created.ID(), TrackingCode: created.TrackingCode().String()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// claimIdempotencyKey returns the earlier result when the key was already
// used for the same request.
func (uc *reservationUseCaseImpl) claimIdempotencyKey(ctx context.Context, tx shared.Tx, userID, key uuid.UUID, requestHash string) (*ReserveResult, error) {
	inserted, err := tx.Idempotency().TryInsert(ctx, shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		RequestHash: requestHash,
		CreatedAt:   uc.clock.Now(),
	})
	if err != nil {
		return nil, err
	}
	if inserted {
		return nil, nil
	}

	existing, err := tx.Reads().IdempotencyByKey(ctx, key, userID)
	if err != nil {
		return nil, err
	}
	if existing.RequestHash != requestHash {
		return nil, errs.Wrap(errs.ErrIdempotencyConflict, "key was used for a different request")
	}
	if existing.ResultReservationID == nil {
		return nil, errs.Wrap(errs.ErrIdempotencyConflict, "original request did not complete")
	}

	r, err := tx.Reads().ReservationByID(ctx, *existing.ResultReservationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrap(errs.ErrIdempotencyConflict, "reservation was canceled")
		}
		return nil, err
	}
	return &ReserveResult{ReservationID: r.ID(), TrackingCode: r.TrackingCode().String(), Replayed: true}, nil
}

// explainRejectedReserve re-reads the offer after the conditional decrement
// matched no row and reports the reason.
func explainRejectedReserve(ctx context.Context, tx shared.Tx, req ReserveRequest) error {
	o, err := tx.Reads().OfferByID(ctx, req.OfferID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrOfferNotFound
		}
		return err
	}
	if err := o.CheckReservable(req.Kilos); err != nil {
		return err
	}
	return offer.ErrCapacityExceeded
}

func (uc *reservationUseCaseImpl) UpdateDescription(ctx context.Context, actor user.Actor, id uuid.UUID, description *string) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := lockReservation(ctx, tx, actor, id)
		if err != nil {
			return err
		}
		// Administrators only move the status; the description is the owner's.
		if !actor.Is(r.OwnerID()) {
			return errs.Wrapf(policy.ErrUnauthorized, "%s %s", policy.ActionWrite, policy.ResourceReservation)
		}
		if err := authorizeWrite(actor, r); err != nil {
			return err
		}
		if err := r.UpdateDescription(description, uc.clock.Now()); err != nil {
			return err
		}
		return tx.Reservations().Update(ctx, r)
	})
}

// Cancel gives the kilos back to the offer and deletes the reservation. The
// full history goes out on the outbox first since it is deleted with the row.
func (uc *reservationUseCaseImpl) Cancel(ctx context.Context, actor user.Actor, id uuid.UUID) error {
	var code string
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := lockReservation(ctx, tx, actor, id)
		if err != nil {
			return err
		}
		if err := authorizeWrite(actor, r); err != nil {
			return err
		}

		history, err := tx.Reads().HistoryByReservation(ctx, r.ID())
		if err != nil {
			return err
		}
		now := uc.clock.Now()
		payload := reservation.CanceledEvent{
			ReservationID: r.ID(),
			OfferID:       r.OfferID(),
			OwnerID:       r.OwnerID(),
			Kilos:         r.Kilos(),
			TrackingCode:  r.TrackingCode().String(),
			Status:        r.Status().String(),
			CanceledBy:    actor.UserID(),
			CanceledAt:    now,
			History:       reservation.NewHistoryRecords(history),
		}
		ev, err := shared.NewEvent(reservation.TopicReservationCanceled, r.ID(), payload, now)
		if err != nil {
			return err
		}
		if err := tx.Outbox().Append(ctx, ev); err != nil {
			return err
		}

		if err := tx.Offers().IncrementAvailable(ctx, r.OfferID(), r.Kilos(), now); err != nil {
			return err
		}
		if err := tx.Reservations().Delete(ctx, r.ID()); err != nil {
			return err
		}
		code = r.TrackingCode().String()
		return nil
	})
	if err != nil {
		return err
	}

	invalidateTracking(ctx, uc.cache, code)
	return nil
}

// lockReservation loads the row FOR UPDATE and checks the actor may see it.
// Whether the actor may change it depends on the operation.
func lockReservation(ctx context.Context, tx shared.Tx, actor user.Actor, id uuid.UUID) (*reservation.Reservation, error) {
	r, err := tx.Reads().ReservationForUpdate(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrReservationNotFound
		}
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ResourceReservation, policy.ActionRead, policy.Target{OwnerID: r.OwnerID()}); err != nil {
		return nil, err
	}
	return r, nil
}

// authorizeWrite applies the reservation write rule. An owner refused by it
// holds a reservation past pending_submission, which is reported as locked.
func authorizeWrite(actor user.Actor, r *reservation.Reservation) error {
	err := policy.Authorize(actor, policy.ResourceReservation, policy.ActionWrite,
		policy.Target{OwnerID: r.OwnerID(), Status: r.Status()})
	if err != nil && actor.Is(r.OwnerID()) {
		return reservation.ErrReservationLocked
	}
	return err
}

func calculateRequestHash(req ReserveRequest) string {
	data, _ := json.Marshal(struct {
		OfferID     uuid.UUID `json:"offer_id"`
		Kilos       int       `json:"kilos"`
		Description *string   `json:"description"`
	}{req.OfferID, req.Kilos, req.Description})
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
