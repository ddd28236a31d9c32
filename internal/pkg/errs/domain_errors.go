package errs

// Sentinel errors shared by the usecase layers and mapped to HTTP statuses by the handlers.
var (
	// Offer errors
	ErrOfferNotFound        = New("offer not found")
	ErrConfirmationRequired = New("explicit confirmation required")

	// Reservation errors
	ErrReservationNotFound = New("reservation not found")

	// Idempotency errors
	ErrIdempotencyConflict = New("idempotency key conflict")

	// Validation errors
	ErrDomainValidation = New("domain validation error")
)
