package offer

import (
	"errors"
	"math"
)

// MaxKilos is the largest capacity the INTEGER kilo columns can hold.
const MaxKilos = math.MaxInt32

var (
	ErrInvalidRoute     = errors.New("departure and arrival city and country are required")
	ErrInvalidDate      = errors.New("departure date is required")
	ErrInvalidCapacity  = errors.New("available kilos must stay between 0 and total kilos")
	ErrInvalidPrice     = errors.New("price per kilo cannot be negative")
	ErrInvalidKilos     = errors.New("kilos must be at least 1")
	ErrOfferInactive    = errors.New("offer is not active")
	ErrCapacityExceeded = errors.New("requested kilos exceed available capacity")
)
