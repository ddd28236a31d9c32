package request

import (
	"kilo-share/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	OfferID     uuid.UUID `json:"offer_id" binding:"required"`
	Kilos       int       `json:"kilos" binding:"required,min=1"`
	Description *string   `json:"description,omitempty"`
}

func (r *CreateReservationRequest) ToCommand(idempotencyKey *uuid.UUID) commands.ReserveRequest {
	return commands.ReserveRequest{
		OfferID:        r.OfferID,
		Kilos:          r.Kilos,
		Description:    r.Description,
		IdempotencyKey: idempotencyKey,
	}
}

// UpdateDescriptionRequest clears the description when it is null or blank.
type UpdateDescriptionRequest struct {
	Description *string `json:"description"`
}

type TransitionStatusRequest struct {
	Status string  `json:"status" binding:"required"`
	Notes  *string `json:"notes,omitempty"`
}

func (r *TransitionStatusRequest) ToCommand(id uuid.UUID) commands.TransitionRequest {
	return commands.TransitionRequest{ReservationID: id, Status: r.Status, Notes: r.Notes}
}
