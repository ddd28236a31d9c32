package reservation

import "errors"

var (
	ErrInvalidKilos            = errors.New("kilos must be at least 1")
	ErrInvalidStatus           = errors.New("unknown reservation status")
	ErrInvalidTransition       = errors.New("status can only advance to its immediate successor")
	ErrInvalidTransitionPolicy = errors.New("unknown status transition policy")
	ErrReservationLocked       = errors.New("reservation can no longer be changed by its owner")
	ErrDescriptionTooLong      = errors.New("description is too long")
	ErrNotesTooLong            = errors.New("notes are too long")
	ErrInvalidTrackingCode     = errors.New("invalid tracking code")
	ErrIssuerExhausted         = errors.New("could not issue a unique tracking code")
	ErrTrackingCodeNotAssigned = errors.New("tracking code is required")
)
