package reservation

import (
	"time"

	"github.com/google/uuid"
)

type Reservation struct {
	id              uuid.UUID
	ownerID         uuid.UUID
	offerID         uuid.UUID
	kilos           int
	description     *string
	status          Status
	statusUpdatedAt time.Time
	trackingCode    TrackingCode
	createdAt       time.Time
	updatedAt       time.Time
}

// NewReservation starts a reservation in the initial status. The tracking
// code is fixed here and never changes afterwards.
func NewReservation(ownerID, offerID uuid.UUID, kilos int, description *string, code TrackingCode, now time.Time) (*Reservation, error) {
	if err := ValidateKilos(kilos); err != nil {
		return nil, err
	}
	if code.IsZero() {
		return nil, ErrTrackingCodeNotAssigned
	}
	desc, err := NewDescription(description)
	if err != nil {
		return nil, err
	}

	return &Reservation{
		id:              uuid.New(),
		ownerID:         ownerID,
		offerID:         offerID,
		kilos:           kilos,
		description:     desc,
		status:          InitialStatus,
		statusUpdatedAt: now,
		trackingCode:    code,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

func ReconstructReservation(
	id, ownerID, offerID uuid.UUID,
	kilos int,
	description *string,
	status Status,
	statusUpdatedAt time.Time,
	trackingCode TrackingCode,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:              id,
		ownerID:         ownerID,
		offerID:         offerID,
		kilos:           kilos,
		description:     description,
		status:          status,
		statusUpdatedAt: statusUpdatedAt,
		trackingCode:    trackingCode,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// Transition moves the reservation to status to. It returns false without
// touching anything when to equals the current status.
func (r *Reservation) Transition(to Status, policy TransitionPolicy, now time.Time) (bool, error) {
	if !to.IsValid() {
		return false, ErrInvalidStatus
	}
	if to == r.status {
		return false, nil
	}
	if err := policy.Allows(r.status, to); err != nil {
		return false, err
	}
	r.status = to
	r.statusUpdatedAt = now
	r.updatedAt = now
	return true, nil
}

// UpdateDescription is the owner's edit, only allowed before the parcel is handed over.
func (r *Reservation) UpdateDescription(description *string, now time.Time) error {
	if !r.status.IsInitial() {
		return ErrReservationLocked
	}
	desc, err := NewDescription(description)
	if err != nil {
		return err
	}
	r.description = desc
	r.updatedAt = now
	return nil
}

func (r *Reservation) IsOwnedBy(userID uuid.UUID) bool {
	return r.ownerID == userID
}

func (r *Reservation) ID() uuid.UUID              { return r.id }
func (r *Reservation) OwnerID() uuid.UUID         { return r.ownerID }
func (r *Reservation) OfferID() uuid.UUID         { return r.offerID }
func (r *Reservation) Kilos() int                 { return r.kilos }
func (r *Reservation) Description() *string       { return r.description }
func (r *Reservation) Status() Status             { return r.status }
func (r *Reservation) StatusUpdatedAt() time.Time { return r.statusUpdatedAt }
func (r *Reservation) TrackingCode() TrackingCode { return r.trackingCode }
func (r *Reservation) CreatedAt() time.Time       { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time       { return r.updatedAt }

// HistoryEntry is an append-only record of a status a reservation passed through.
type HistoryEntry struct {
	id            uuid.UUID
	reservationID uuid.UUID
	status        Status
	notes         *string
	createdAt     time.Time
}

func NewHistoryEntry(reservationID uuid.UUID, status Status, notes *string, now time.Time) (*HistoryEntry, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	n, err := NewNotes(notes)
	if err != nil {
		return nil, err
	}
	return &HistoryEntry{
		id:            uuid.New(),
		reservationID: reservationID,
		status:        status,
		notes:         n,
		createdAt:     now,
	}, nil
}

func ReconstructHistoryEntry(id, reservationID uuid.UUID, status Status, notes *string, createdAt time.Time) *HistoryEntry {
	return &HistoryEntry{
		id:            id,
		reservationID: reservationID,
		status:        status,
		notes:         notes,
		createdAt:     createdAt,
	}
}

func (h *HistoryEntry) ID() uuid.UUID            { return h.id }
func (h *HistoryEntry) ReservationID() uuid.UUID { return h.reservationID }
func (h *HistoryEntry) Status() Status           { return h.status }
func (h *HistoryEntry) Notes() *string           { return h.notes }
func (h *HistoryEntry) CreatedAt() time.Time     { return h.createdAt }
