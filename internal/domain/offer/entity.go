package offer

import (
	"time"

	"kilo-share/internal/pkg/patch"

	"github.com/google/uuid"
)

type Offer struct {
	id             uuid.UUID
	route          Route
	departureDate  time.Time
	totalKilos     int
	availableKilos int
	pricePerKilo   Money
	isActive       bool
	createdAt      time.Time
	updatedAt      time.Time
}

type Draft struct {
	DepartureCity     string
	DepartureCountry  string
	DepartureFlag     string
	ArrivalCity       string
	ArrivalCountry    string
	ArrivalFlag       string
	DepartureDate     time.Time
	TotalKilos        int
	PricePerKiloCents int64
	IsActive          bool
}

// Patch leaves nil fields untouched.
type Patch struct {
	DepartureCity     *string
	DepartureCountry  *string
	DepartureFlag     *string
	ArrivalCity       *string
	ArrivalCountry    *string
	ArrivalFlag       *string
	DepartureDate     *time.Time
	TotalKilos        *int
	AvailableKilos    *int
	PricePerKiloCents *int64
	IsActive          *bool
}

func NewOffer(d Draft, now time.Time) (*Offer, error) {
	route, err := buildRoute(d.DepartureCity, d.DepartureCountry, d.DepartureFlag, d.ArrivalCity, d.ArrivalCountry, d.ArrivalFlag)
	if err != nil {
		return nil, err
	}
	if d.DepartureDate.IsZero() {
		return nil, ErrInvalidDate
	}
	if d.TotalKilos < 1 || d.TotalKilos > MaxKilos {
		return nil, ErrInvalidCapacity
	}
	price, err := NewMoney(d.PricePerKiloCents)
	if err != nil {
		return nil, err
	}

	return &Offer{
		id:             uuid.New(),
		route:          route,
		departureDate:  truncateToDate(d.DepartureDate),
		totalKilos:     d.TotalKilos,
		availableKilos: d.TotalKilos,
		pricePerKilo:   price,
		isActive:       d.IsActive,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructOffer(
	id uuid.UUID,
	route Route,
	departureDate time.Time,
	totalKilos, availableKilos int,
	pricePerKilo Money,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Offer {
	return &Offer{
		id:             id,
		route:          route,
		departureDate:  departureDate,
		totalKilos:     totalKilos,
		availableKilos: availableKilos,
		pricePerKilo:   pricePerKilo,
		isActive:       isActive,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// Apply validates the patched offer as a whole before mutating the receiver.
// A new total shifts available kilos by the same delta so the kilos already
// reserved are preserved; an explicit available value wins over the shift.
func (o *Offer) Apply(p Patch, now time.Time) error {
	dep, arr := o.route.departure, o.route.arrival
	route, err := buildRoute(
		patch.Coalesce(p.DepartureCity, dep.city),
		patch.Coalesce(p.DepartureCountry, dep.country),
		patch.Coalesce(p.DepartureFlag, dep.flag),
		patch.Coalesce(p.ArrivalCity, arr.city),
		patch.Coalesce(p.ArrivalCountry, arr.country),
		patch.Coalesce(p.ArrivalFlag, arr.flag),
	)
	if err != nil {
		return err
	}

	date := patch.Coalesce(p.DepartureDate, o.departureDate)
	if date.IsZero() {
		return ErrInvalidDate
	}

	total := patch.Coalesce(p.TotalKilos, o.totalKilos)
	available := o.availableKilos + (total - o.totalKilos)
	if p.AvailableKilos != nil {
		available = *p.AvailableKilos
	}
	if total < 1 || total > MaxKilos || available < 0 || available > total {
		return ErrInvalidCapacity
	}

	price, err := NewMoney(patch.Coalesce(p.PricePerKiloCents, o.pricePerKilo.cents))
	if err != nil {
		return err
	}

	o.route = route
	o.departureDate = truncateToDate(date)
	o.totalKilos = total
	o.availableKilos = available
	o.pricePerKilo = price
	o.isActive = patch.Coalesce(p.IsActive, o.isActive)
	o.updatedAt = now
	return nil
}

// CheckReservable reports why kilos cannot be taken from the offer right now.
func (o *Offer) CheckReservable(kilos int) error {
	if kilos < 1 {
		return ErrInvalidKilos
	}
	if !o.isActive {
		return ErrOfferInactive
	}
	if kilos > o.availableKilos {
		return ErrCapacityExceeded
	}
	return nil
}

func (o *Offer) Take(kilos int, now time.Time) error {
	if err := o.CheckReservable(kilos); err != nil {
		return err
	}
	o.availableKilos -= kilos
	o.updatedAt = now
	return nil
}

// Restore gives kilos back, never above the total.
func (o *Offer) Restore(kilos int, now time.Time) {
	o.availableKilos = min(o.totalKilos, o.availableKilos+kilos)
	o.updatedAt = now
}

// IsListed reports whether the offer shows up in the public listing.
func (o *Offer) IsListed() bool {
	return o.isActive && o.availableKilos > 0
}

func (o *Offer) Matches(query string) bool {
	return o.route.Matches(query)
}

func (o *Offer) ID() uuid.UUID            { return o.id }
func (o *Offer) Route() Route             { return o.route }
func (o *Offer) DepartureDate() time.Time { return o.departureDate }
func (o *Offer) TotalKilos() int          { return o.totalKilos }
func (o *Offer) AvailableKilos() int      { return o.availableKilos }
func (o *Offer) PricePerKilo() Money      { return o.pricePerKilo }
func (o *Offer) IsActive() bool           { return o.isActive }
func (o *Offer) CreatedAt() time.Time     { return o.createdAt }
func (o *Offer) UpdatedAt() time.Time     { return o.updatedAt }

func buildRoute(depCity, depCountry, depFlag, arrCity, arrCountry, arrFlag string) (Route, error) {
	dep, err := NewPlace(depCity, depCountry, depFlag)
	if err != nil {
		return Route{}, err
	}
	arr, err := NewPlace(arrCity, arrCountry, arrFlag)
	if err != nil {
		return Route{}, err
	}
	return NewRoute(dep, arr), nil
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
