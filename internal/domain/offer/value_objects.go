package offer

import (
	"strings"
	"unicode/utf8"
)

const maxPlaceFieldLen = 100

// Place is one end of a route. Flag is a display glyph and may be empty.
type Place struct {
	city    string
	country string
	flag    string
}

func NewPlace(city, country, flag string) (Place, error) {
	city = strings.TrimSpace(city)
	country = strings.TrimSpace(country)
	flag = strings.TrimSpace(flag)
	if city == "" || country == "" {
		return Place{}, ErrInvalidRoute
	}
	if utf8.RuneCountInString(city) > maxPlaceFieldLen || utf8.RuneCountInString(country) > maxPlaceFieldLen {
		return Place{}, ErrInvalidRoute
	}
	return Place{city: city, country: country, flag: flag}, nil
}

func (p Place) City() string    { return p.city }
func (p Place) Country() string { return p.country }
func (p Place) Flag() string    { return p.flag }

type Route struct {
	departure Place
	arrival   Place
}

func NewRoute(departure, arrival Place) Route {
	return Route{departure: departure, arrival: arrival}
}

func (r Route) Departure() Place { return r.departure }
func (r Route) Arrival() Place   { return r.arrival }

// Matches is a case-insensitive substring match over cities and countries.
// An empty query matches every route.
func (r Route) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{r.departure.city, r.departure.country, r.arrival.city, r.arrival.country} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Money is an amount in minor currency units.
type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrInvalidPrice
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Times(kilos int) Money {
	return Money{cents: m.cents * int64(kilos)}
}
