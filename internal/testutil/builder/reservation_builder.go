//go:build unit || e2e

package builder

import (
	"time"

	reqdto "kilo-share/internal/handler/dto/request"
	"kilo-share/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	OwnerID      uuid.UUID
	OfferID      uuid.UUID
	Kilos        int
	Description  *string
	Status       string
	TrackingCode string
	CreatedAt    time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	desc := "two boxes of books"
	return &ReservationBuilder{
		OwnerID:      uuid.New(),
		OfferID:      uuid.New(),
		Kilos:        5,
		Description:  &desc,
		Status:       "pending_submission",
		TrackingCode: "KG-7Q2M9XK4",
		CreatedAt:    time.Date(2026, 11, 2, 10, 30, 0, 0, time.UTC),
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		OfferID:     b.OfferID,
		Kilos:       b.Kilos,
		Description: b.Description,
	}
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	o := NewOfferBuilder()
	return &queries.ReservationView{
		ID:              uuid.New(),
		OwnerID:         b.OwnerID,
		OfferID:         b.OfferID,
		Kilos:           b.Kilos,
		Description:     b.Description,
		Status:          b.Status,
		StatusUpdatedAt: b.CreatedAt,
		TrackingCode:    b.TrackingCode,
		Route: queries.RouteSummary{
			DepartureCity:    o.DepartureCity,
			DepartureCountry: o.DepartureCountry,
			DepartureFlag:    o.DepartureFlag,
			ArrivalCity:      o.ArrivalCity,
			ArrivalCountry:   o.ArrivalCountry,
			ArrivalFlag:      o.ArrivalFlag,
			DepartureDate:    o.DepartureDate,
		},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.CreatedAt,
	}
}

func (b *ReservationBuilder) BuildTrackingView() *queries.TrackingView {
	v := b.BuildView()
	return &queries.TrackingView{
		TrackingCode:    v.TrackingCode,
		Status:          v.Status,
		StatusUpdatedAt: v.StatusUpdatedAt,
		Kilos:           v.Kilos,
		CreatedAt:       v.CreatedAt,
		Route:           v.Route,
		History: []queries.StatusHistoryView{
			{ID: uuid.New(), Status: v.Status, CreatedAt: v.CreatedAt},
		},
	}
}
