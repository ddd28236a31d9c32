package response

import (
	"time"

	"kilo-share/internal/usecase/queries"

	"github.com/google/uuid"
)

type OfferResponse struct {
	ID                uuid.UUID `json:"id"`
	DepartureCity     string    `json:"departure_city"`
	DepartureCountry  string    `json:"departure_country"`
	DepartureFlag     string    `json:"departure_flag"`
	ArrivalCity       string    `json:"arrival_city"`
	ArrivalCountry    string    `json:"arrival_country"`
	ArrivalFlag       string    `json:"arrival_flag"`
	DepartureDate     string    `json:"departure_date"`
	TotalKilos        int       `json:"total_kilos"`
	AvailableKilos    int       `json:"available_kilos"`
	PricePerKiloCents int64     `json:"price_per_kilo_cents"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type OfferListResponse struct {
	Offers []OfferResponse `json:"offers"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type CreateOfferResponse struct {
	ID uuid.UUID `json:"id"`
}

func FromOfferView(v *queries.OfferView) (*OfferResponse, error) {
	var out OfferResponse
	if err := copyFrom(&out, v); err != nil {
		return nil, err
	}
	return &out, nil
}

func FromOfferList(items []*queries.OfferView, filter queries.OfferFilter) (*OfferListResponse, error) {
	out := &OfferListResponse{Offers: make([]OfferResponse, 0, len(items)), Limit: filter.Limit, Offset: filter.Offset}
	if len(items) == 0 {
		return out, nil
	}
	if err := copyFrom(&out.Offers, items); err != nil {
		return nil, err
	}
	return out, nil
}
