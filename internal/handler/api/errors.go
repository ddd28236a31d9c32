package api

import (
	"log/slog"
	"net/http"

	"kilo-share/internal/domain/offer"
	"kilo-share/internal/domain/policy"
	"kilo-share/internal/domain/reservation"
	"kilo-share/internal/domain/user"
	reqdto "kilo-share/internal/handler/dto/request"
	"kilo-share/internal/handler/httperr"
	"kilo-share/internal/handler/middleware"
	"kilo-share/internal/pkg/errs"
	"kilo-share/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidID       = errs.New("invalid id")
	errTrackingMissing = errs.New("tracking code not found")
)

type errorMapping struct {
	targets []error
	status  int
	message string
}

// Checked in order; the first match wins.
var errorMappings = []errorMapping{
	{[]error{policy.ErrUnauthorized}, http.StatusForbidden, "Access denied"},
	{[]error{errs.ErrOfferNotFound}, http.StatusNotFound, "Offer not found"},
	{[]error{errs.ErrReservationNotFound}, http.StatusNotFound, "Reservation not found"},
	{[]error{offer.ErrCapacityExceeded}, http.StatusConflict, "Not enough kilos available"},
	{[]error{offer.ErrOfferInactive}, http.StatusConflict, "Offer is not active"},
	{[]error{errs.ErrIdempotencyConflict}, http.StatusConflict, "Idempotency key cannot be reused"},
	{[]error{reservation.ErrInvalidTransition}, http.StatusUnprocessableEntity, "Invalid status transition"},
	{[]error{reservation.ErrReservationLocked}, http.StatusUnprocessableEntity, "Reservation can no longer be changed"},
	{[]error{offer.ErrInvalidCapacity}, http.StatusUnprocessableEntity, "Invalid capacity"},
	{[]error{errs.ErrConfirmationRequired}, http.StatusPreconditionRequired, "Explicit confirmation required"},
	{[]error{reservation.ErrIssuerExhausted}, http.StatusServiceUnavailable, "Could not issue a tracking code, retry later"},
	{[]error{
		offer.ErrInvalidRoute, offer.ErrInvalidDate, offer.ErrInvalidPrice, offer.ErrInvalidKilos,
		reservation.ErrInvalidKilos, reservation.ErrInvalidStatus, reservation.ErrDescriptionTooLong,
		reservation.ErrNotesTooLong, user.ErrInvalidRole, queries.ErrInvalidCursor,
		reqdto.ErrInvalidDateFormat, errs.ErrDomainValidation, errInvalidID,
	}, http.StatusBadRequest, "Invalid request"},
}

func statusFor(err error) (int, string) {
	for _, m := range errorMappings {
		if errs.IsAny(err, m.targets...) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

// abortWithError maps usecase errors onto HTTP statuses. Client errors carry
// the underlying message as detail; server errors are logged and hidden.
func abortWithError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"error", err, "route", c.FullPath(), "request_id", middleware.GetRequestID(c))
		httperr.AbortWithError(c, status, err, msg, nil)
		return
	}
	httperr.AbortWithError(c, status, err, msg, err.Error())
}

func abortBadRequest(c *gin.Context, err error, msg string) {
	httperr.AbortWithError(c, http.StatusBadRequest, err, msg, err.Error())
}
