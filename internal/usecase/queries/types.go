package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type OfferView struct {
	ID                uuid.UUID `json:"id"`
	DepartureCity     string    `json:"departure_city"`
	DepartureCountry  string    `json:"departure_country"`
	DepartureFlag     string    `json:"departure_flag"`
	ArrivalCity       string    `json:"arrival_city"`
	ArrivalCountry    string    `json:"arrival_country"`
	ArrivalFlag       string    `json:"arrival_flag"`
	DepartureDate     time.Time `json:"departure_date"`
	TotalKilos        int       `json:"total_kilos"`
	AvailableKilos    int       `json:"available_kilos"`
	PricePerKiloCents int64     `json:"price_per_kilo_cents"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type OfferFilter struct {
	Query  string
	Limit  int
	Offset int
}

// RouteSummary is the part of an offer shown next to a reservation.
type RouteSummary struct {
	DepartureCity    string    `json:"departure_city"`
	DepartureCountry string    `json:"departure_country"`
	DepartureFlag    string    `json:"departure_flag"`
	ArrivalCity      string    `json:"arrival_city"`
	ArrivalCountry   string    `json:"arrival_country"`
	ArrivalFlag      string    `json:"arrival_flag"`
	DepartureDate    time.Time `json:"departure_date"`
}

type ReservationView struct {
	ID              uuid.UUID    `json:"id"`
	OwnerID         uuid.UUID    `json:"owner_id"`
	OfferID         uuid.UUID    `json:"offer_id"`
	Kilos           int          `json:"kilos"`
	Description     *string      `json:"description,omitempty"`
	Status          string       `json:"status"`
	StatusUpdatedAt time.Time    `json:"status_updated_at"`
	TrackingCode    string       `json:"tracking_code"`
	Route           RouteSummary `json:"route"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

type StatusHistoryView struct {
	ID        uuid.UUID `json:"id"`
	Status    string    `json:"status"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TrackingView is the public shipment view. It never carries the owner or
// the description.
type TrackingView struct {
	TrackingCode    string              `json:"tracking_code"`
	Status          string              `json:"status"`
	StatusUpdatedAt time.Time           `json:"status_updated_at"`
	Kilos           int                 `json:"kilos"`
	CreatedAt       time.Time           `json:"created_at"`
	Route           RouteSummary        `json:"route"`
	History         []StatusHistoryView `json:"history"`
}

type RoleView struct {
	UserID uuid.UUID `json:"user_id"`
	Roles  []string  `json:"roles"`
}
