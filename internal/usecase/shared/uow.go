package shared

import (
	"context"
	"time"

	"kilo-share/internal/domain/offer"
	"kilo-share/internal/domain/reservation"
	"kilo-share/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within runs fn in a READ COMMITTED transaction, retrying serialization
	// failures and deadlocks.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Offers() OfferRepository
	Reservations() ReservationRepository
	History() HistoryRepository
	Roles() RoleRepository
	Outbox() OutboxRepository
	Idempotency() IdempotencyRepository
	Reads() CommandReads
}

// CommandReads are the reads a command needs to validate before it writes.
// Missing rows come back as an infra NOT_FOUND repository error.
type CommandReads interface {
	OfferByID(ctx context.Context, id uuid.UUID) (*offer.Offer, error)
	OfferForUpdate(ctx context.Context, id uuid.UUID) (*offer.Offer, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	ReservationForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	ReservationsByOffer(ctx context.Context, offerID uuid.UUID) ([]*reservation.Reservation, error)
	HistoryByReservation(ctx context.Context, reservationID uuid.UUID) ([]*reservation.HistoryEntry, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type OfferRepository interface {
	Create(ctx context.Context, o *offer.Offer) error
	Update(ctx context.Context, o *offer.Offer) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DecrementAvailable takes kilos only if the offer is active and has
	// enough left. It reports false when no row qualified.
	DecrementAvailable(ctx context.Context, id uuid.UUID, kilos int, now time.Time) (bool, error)
	IncrementAvailable(ctx context.Context, id uuid.UUID, kilos int, now time.Time) error
}

type ReservationRepository interface {
	// Insert reports false without error when the tracking code is taken.
	Insert(ctx context.Context, r *reservation.Reservation) (bool, error)
	Update(ctx context.Context, r *reservation.Reservation) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type HistoryRepository interface {
	Append(ctx context.Context, e *reservation.HistoryEntry) error
}

type RoleRepository interface {
	Grant(ctx context.Context, userID uuid.UUID, role user.Role, now time.Time) (bool, error)
	Revoke(ctx context.Context, userID uuid.UUID, role user.Role) (bool, error)
}

type OutboxRepository interface {
	Append(ctx context.Context, e Event) error
	// ClaimPending locks up to limit unpublished events that have failed
	// fewer than maxAttempts times, skipping rows another relay already holds.
	ClaimPending(ctx context.Context, limit, maxAttempts int) ([]Event, error)
	MarkPublished(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
}

type IdempotencyRepository interface {
	// TryInsert reports false when the key already exists for the user.
	TryInsert(ctx context.Context, rec IdempotencyRecord) (bool, error)
	Complete(ctx context.Context, key, userID, reservationID uuid.UUID) error
}
