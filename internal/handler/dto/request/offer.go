package request

import (
	"time"

	"kilo-share/internal/domain/offer"
	"kilo-share/internal/pkg/errs"
	"kilo-share/internal/pkg/patch"
)

// DateLayout is the wire format of departure dates.
const DateLayout = "2006-01-02"

var ErrInvalidDateFormat = errs.New("departure_date must be formatted as YYYY-MM-DD")

type CreateOfferRequest struct {
	DepartureCity     string `json:"departure_city" binding:"required,max=100"`
	DepartureCountry  string `json:"departure_country" binding:"required,max=100"`
	DepartureFlag     string `json:"departure_flag" binding:"max=16"`
	ArrivalCity       string `json:"arrival_city" binding:"required,max=100"`
	ArrivalCountry    string `json:"arrival_country" binding:"required,max=100"`
	ArrivalFlag       string `json:"arrival_flag" binding:"max=16"`
	DepartureDate     string `json:"departure_date" binding:"required"`
	TotalKilos        int    `json:"total_kilos" binding:"required,min=1,max=2147483647"`
	PricePerKiloCents int64  `json:"price_per_kilo_cents" binding:"min=0"`
	IsActive          *bool  `json:"is_active,omitempty"`
}

func (r *CreateOfferRequest) ToDraft() (offer.Draft, error) {
	date, err := parseDate(r.DepartureDate)
	if err != nil {
		return offer.Draft{}, err
	}
	return offer.Draft{
		DepartureCity:     r.DepartureCity,
		DepartureCountry:  r.DepartureCountry,
		DepartureFlag:     r.DepartureFlag,
		ArrivalCity:       r.ArrivalCity,
		ArrivalCountry:    r.ArrivalCountry,
		ArrivalFlag:       r.ArrivalFlag,
		DepartureDate:     date,
		TotalKilos:        r.TotalKilos,
		PricePerKiloCents: r.PricePerKiloCents,
		IsActive:          patch.Coalesce(r.IsActive, true),
	}, nil
}

// UpdateOfferRequest is a partial patch; absent fields keep their value.
type UpdateOfferRequest struct {
	DepartureCity     *string `json:"departure_city,omitempty" binding:"omitempty,max=100"`
	DepartureCountry  *string `json:"departure_country,omitempty" binding:"omitempty,max=100"`
	DepartureFlag     *string `json:"departure_flag,omitempty" binding:"omitempty,max=16"`
	ArrivalCity       *string `json:"arrival_city,omitempty" binding:"omitempty,max=100"`
	ArrivalCountry    *string `json:"arrival_country,omitempty" binding:"omitempty,max=100"`
	ArrivalFlag       *string `json:"arrival_flag,omitempty" binding:"omitempty,max=16"`
	DepartureDate     *string `json:"departure_date,omitempty"`
	TotalKilos        *int    `json:"total_kilos,omitempty" binding:"omitempty,min=1,max=2147483647"`
	AvailableKilos    *int    `json:"available_kilos,omitempty" binding:"omitempty,min=0,max=2147483647"`
	PricePerKiloCents *int64  `json:"price_per_kilo_cents,omitempty" binding:"omitempty,min=0"`
	IsActive          *bool   `json:"is_active,omitempty"`
}

func (r *UpdateOfferRequest) ToPatch() (offer.Patch, error) {
	date, err := patch.Map(r.DepartureDate, parseDate)
	if err != nil {
		return offer.Patch{}, err
	}
	return offer.Patch{
		DepartureCity:     r.DepartureCity,
		DepartureCountry:  r.DepartureCountry,
		DepartureFlag:     r.DepartureFlag,
		ArrivalCity:       r.ArrivalCity,
		ArrivalCountry:    r.ArrivalCountry,
		ArrivalFlag:       r.ArrivalFlag,
		TotalKilos:        r.TotalKilos,
		AvailableKilos:    r.AvailableKilos,
		PricePerKiloCents: r.PricePerKiloCents,
		DepartureDate:     date,
		IsActive:          r.IsActive,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, errs.Mark(errs.Wrap(err, "parse departure date"), ErrInvalidDateFormat)
	}
	return t, nil
}
