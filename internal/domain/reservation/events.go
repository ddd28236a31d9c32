package reservation

import (
	"time"

	"github.com/google/uuid"
)

// Event topics written to the outbox.
const (
	TopicReservationCreated       = "reservation.created"
	TopicReservationStatusChanged = "reservation.status_changed"
	TopicReservationCanceled      = "reservation.canceled"
	TopicOfferDeleted             = "offer.deleted"
)

type CreatedEvent struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	OfferID       uuid.UUID `json:"offer_id"`
	OwnerID       uuid.UUID `json:"owner_id"`
	Kilos         int       `json:"kilos"`
	TrackingCode  string    `json:"tracking_code"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type StatusChangedEvent struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	TrackingCode  string    `json:"tracking_code"`
	From          string    `json:"from"`
	To            string    `json:"to"`
	Notes         *string   `json:"notes,omitempty"`
	ChangedBy     uuid.UUID `json:"changed_by"`
	ChangedAt     time.Time `json:"changed_at"`
}

type HistoryRecord struct {
	Status    string    `json:"status"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CanceledEvent carries the full history, which is deleted together with the reservation.
type CanceledEvent struct {
	ReservationID uuid.UUID       `json:"reservation_id"`
	OfferID       uuid.UUID       `json:"offer_id"`
	OwnerID       uuid.UUID       `json:"owner_id"`
	Kilos         int             `json:"kilos"`
	TrackingCode  string          `json:"tracking_code"`
	Status        string          `json:"status"`
	CanceledBy    uuid.UUID       `json:"canceled_by"`
	CanceledAt    time.Time       `json:"canceled_at"`
	History       []HistoryRecord `json:"history"`
}

type RemovedReservation struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	TrackingCode  string    `json:"tracking_code"`
}

type OfferDeletedEvent struct {
	OfferID      uuid.UUID            `json:"offer_id"`
	DeletedBy    uuid.UUID            `json:"deleted_by"`
	DeletedAt    time.Time            `json:"deleted_at"`
	Reservations []RemovedReservation `json:"reservations"`
}

func NewCreatedEvent(r *Reservation) CreatedEvent {
	return CreatedEvent{
		ReservationID: r.id,
		OfferID:       r.offerID,
		OwnerID:       r.ownerID,
		Kilos:         r.kilos,
		TrackingCode:  r.trackingCode.String(),
		Status:        r.status.String(),
		CreatedAt:     r.createdAt,
	}
}

func NewHistoryRecords(entries []*HistoryEntry) []HistoryRecord {
	out := make([]HistoryRecord, 0, len(entries))
	for _, e := range entries {
		out = append(out, HistoryRecord{Status: e.status.String(), Notes: e.notes, CreatedAt: e.createdAt})
	}
	return out
}
