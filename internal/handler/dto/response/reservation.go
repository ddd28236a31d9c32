package response

import (
	"time"

	"kilo-share/internal/usecase/commands"
	"kilo-share/internal/usecase/queries"

	"github.com/google/uuid"
)

type RouteResponse struct {
	DepartureCity    string `json:"departure_city"`
	DepartureCountry string `json:"departure_country"`
	DepartureFlag    string `json:"departure_flag"`
	ArrivalCity      string `json:"arrival_city"`
	ArrivalCountry   string `json:"arrival_country"`
	ArrivalFlag      string `json:"arrival_flag"`
	DepartureDate    string `json:"departure_date"`
}

type ReservationResponse struct {
	ID              uuid.UUID     `json:"id"`
	OwnerID         uuid.UUID     `json:"owner_id"`
	OfferID         uuid.UUID     `json:"offer_id"`
	Kilos           int           `json:"kilos"`
	Description     *string       `json:"description,omitempty"`
	Status          string        `json:"status"`
	StatusUpdatedAt time.Time     `json:"status_updated_at"`
	TrackingCode    string        `json:"tracking_code"`
	Route           RouteResponse `json:"route"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	NextCursor   *string               `json:"next_cursor,omitempty"`
}

type ReserveResponse struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	TrackingCode  string    `json:"tracking_code"`
	Replayed      bool      `json:"replayed"`
}

type StatusHistoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Status    string    `json:"status"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type TransitionResponse struct {
	ReservationID   uuid.UUID `json:"reservation_id"`
	TrackingCode    string    `json:"tracking_code"`
	Status          string    `json:"status"`
	StatusUpdatedAt time.Time `json:"status_updated_at"`
	Changed         bool      `json:"changed"`
}

func FromReservationView(v *queries.ReservationView) (*ReservationResponse, error) {
	var out ReservationResponse
	if err := copyFrom(&out, v); err != nil {
		return nil, err
	}
	return &out, nil
}

func FromReservationList(items []*queries.ReservationView, next *queries.Cursor) (*ReservationListResponse, error) {
	out := &ReservationListResponse{Reservations: make([]ReservationResponse, 0, len(items))}
	if len(items) == 0 {
		return out, nil
	}
	if err := copyFrom(&out.Reservations, items); err != nil {
		return nil, err
	}
	if next != nil {
		out.NextCursor = &next.After
	}
	return out, nil
}

func FromReserveResult(r *commands.ReserveResult) *ReserveResponse {
	return &ReserveResponse{ReservationID: r.ReservationID, TrackingCode: r.TrackingCode, Replayed: r.Replayed}
}

func FromHistory(items []*queries.StatusHistoryView) ([]StatusHistoryResponse, error) {
	out := make([]StatusHistoryResponse, 0, len(items))
	if len(items) == 0 {
		return out, nil
	}
	if err := copyFrom(&out, items); err != nil {
		return nil, err
	}
	return out, nil
}

func FromTransitionResult(r *commands.TransitionResult) *TransitionResponse {
	return &TransitionResponse{
		ReservationID:   r.ReservationID,
		TrackingCode:    r.TrackingCode,
		Status:          r.Status,
		StatusUpdatedAt: r.StatusUpdatedAt,
		Changed:         r.Changed,
	}
}
