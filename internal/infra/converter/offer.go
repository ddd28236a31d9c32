package converter

import (
	"time"

	"kilo-share/internal/domain/offer"
	"kilo-share/internal/pkg/pgconv"
	"kilo-share/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// OfferColumns is the select list OfferRow.Targets scans, in order.
const OfferColumns = `o.id, o.departure_city, o.departure_country, o.departure_flag,
  o.arrival_city, o.arrival_country, o.arrival_flag, o.departure_date,
  o.total_kilos, o.available_kilos, o.price_per_kilo_cents, o.is_active,
  o.created_at, o.updated_at`

type OfferRow struct {
	ID                uuid.UUID
	DepartureCity     string
	DepartureCountry  string
	DepartureFlag     string
	ArrivalCity       string
	ArrivalCountry    string
	ArrivalFlag       string
	DepartureDate     pgtype.Date
	TotalKilos        int
	AvailableKilos    int
	PricePerKiloCents int64
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (r *OfferRow) Targets() []any {
	return []any{
		&r.ID, &r.DepartureCity, &r.DepartureCountry, &r.DepartureFlag,
		&r.ArrivalCity, &r.ArrivalCountry, &r.ArrivalFlag, &r.DepartureDate,
		&r.TotalKilos, &r.AvailableKilos, &r.PricePerKiloCents, &r.IsActive,
		&r.CreatedAt, &r.UpdatedAt,
	}
}

func OfferToDomain(r OfferRow) (*offer.Offer, error) {
	dep, err := offer.NewPlace(r.DepartureCity, r.DepartureCountry, r.DepartureFlag)
	if err != nil {
		return nil, err
	}
	arr, err := offer.NewPlace(r.ArrivalCity, r.ArrivalCountry, r.ArrivalFlag)
	if err != nil {
		return nil, err
	}
	price, err := offer.NewMoney(r.PricePerKiloCents)
	if err != nil {
		return nil, err
	}
	return offer.ReconstructOffer(
		r.ID,
		offer.NewRoute(dep, arr),
		pgconv.DateFromPgtype(r.DepartureDate),
		r.TotalKilos, r.AvailableKilos,
		price,
		r.IsActive,
		r.CreatedAt.UTC(), r.UpdatedAt.UTC(),
	), nil
}

func OfferToView(r OfferRow) *queries.OfferView {
	return &queries.OfferView{
		ID:                r.ID,
		DepartureCity:     r.DepartureCity,
		DepartureCountry:  r.DepartureCountry,
		DepartureFlag:     r.DepartureFlag,
		ArrivalCity:       r.ArrivalCity,
		ArrivalCountry:    r.ArrivalCountry,
		ArrivalFlag:       r.ArrivalFlag,
		DepartureDate:     pgconv.DateFromPgtype(r.DepartureDate),
		TotalKilos:        r.TotalKilos,
		AvailableKilos:    r.AvailableKilos,
		PricePerKiloCents: r.PricePerKiloCents,
		IsActive:          r.IsActive,
		CreatedAt:         r.CreatedAt.UTC(),
		UpdatedAt:         r.UpdatedAt.UTC(),
	}
}

// OfferArgs lists the persisted fields of o in OfferColumns order.
func OfferArgs(o *offer.Offer) []any {
	dep, arr := o.Route().Departure(), o.Route().Arrival()
	return []any{
		o.ID(), dep.City(), dep.Country(), dep.Flag(),
		arr.City(), arr.Country(), arr.Flag(), pgconv.DateToPgtype(o.DepartureDate()),
		o.TotalKilos(), o.AvailableKilos(), o.PricePerKilo().Cents(), o.IsActive(),
		o.CreatedAt(), o.UpdatedAt(),
	}
}
