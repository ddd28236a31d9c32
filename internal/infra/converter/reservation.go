package converter

import (
	"time"

	"kilo-share/internal/domain/reservation"
	"kilo-share/internal/pkg/pgconv"
	"kilo-share/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const ReservationColumns = `r.id, r.owner_id, r.cargo_offer_id, r.kilos_reserved, r.description,
  r.status, r.status_updated_at, r.tracking_code, r.created_at, r.updated_at`

type ReservationRow struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	OfferID         uuid.UUID
	Kilos           int
	Description     pgtype.Text
	Status          string
	StatusUpdatedAt time.Time
	TrackingCode    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (r *ReservationRow) Targets() []any {
	return []any{
		&r.ID, &r.OwnerID, &r.OfferID, &r.Kilos, &r.Description,
		&r.Status, &r.StatusUpdatedAt, &r.TrackingCode, &r.CreatedAt, &r.UpdatedAt,
	}
}

func ReservationToDomain(r ReservationRow) (*reservation.Reservation, error) {
	status, err := reservation.ParseStatus(r.Status)
	if err != nil {
		return nil, err
	}
	code, err := reservation.ParseTrackingCode(r.TrackingCode)
	if err != nil {
		return nil, err
	}
	return reservation.ReconstructReservation(
		r.ID, r.OwnerID, r.OfferID,
		r.Kilos,
		pgconv.StringPtrFromPgtype(r.Description),
		status,
		r.StatusUpdatedAt.UTC(),
		code,
		r.CreatedAt.UTC(), r.UpdatedAt.UTC(),
	), nil
}

// RouteColumns joins the offer route onto a reservation row.
const RouteColumns = `o.departure_city, o.departure_country, o.departure_flag,
  o.arrival_city, o.arrival_country, o.arrival_flag, o.departure_date`

type RouteRow struct {
	DepartureCity    string
	DepartureCountry string
	DepartureFlag    string
	ArrivalCity      string
	ArrivalCountry   string
	ArrivalFlag      string
	DepartureDate    pgtype.Date
}

func (r *RouteRow) Targets() []any {
	return []any{
		&r.DepartureCity, &r.DepartureCountry, &r.DepartureFlag,
		&r.ArrivalCity, &r.ArrivalCountry, &r.ArrivalFlag, &r.DepartureDate,
	}
}

func ReservationToView(r ReservationRow, route RouteRow) *queries.ReservationView {
	return &queries.ReservationView{
		ID:              r.ID,
		OwnerID:         r.OwnerID,
		OfferID:         r.OfferID,
		Kilos:           r.Kilos,
		Description:     pgconv.StringPtrFromPgtype(r.Description),
		Status:          r.Status,
		StatusUpdatedAt: r.StatusUpdatedAt.UTC(),
		TrackingCode:    r.TrackingCode,
		CreatedAt:       r.CreatedAt.UTC(),
		UpdatedAt:       r.UpdatedAt.UTC(),
		Route: queries.RouteSummary{
			DepartureCity:    route.DepartureCity,
			DepartureCountry: route.DepartureCountry,
			DepartureFlag:    route.DepartureFlag,
			ArrivalCity:      route.ArrivalCity,
			ArrivalCountry:   route.ArrivalCountry,
			ArrivalFlag:      route.ArrivalFlag,
			DepartureDate:    pgconv.DateFromPgtype(route.DepartureDate),
		},
	}
}

const HistoryColumns = `h.id, h.reservation_id, h.status, h.notes, h.created_at`

type HistoryRow struct {
	ID            uuid.UUID
	ReservationID uuid.UUID
	Status        string
	Notes         pgtype.Text
	CreatedAt     time.Time
}

func (r *HistoryRow) Targets() []any {
	return []any{&r.ID, &r.ReservationID, &r.Status, &r.Notes, &r.CreatedAt}
}

func HistoryToDomain(r HistoryRow) (*reservation.HistoryEntry, error) {
	status, err := reservation.ParseStatus(r.Status)
	if err != nil {
		return nil, err
	}
	return reservation.ReconstructHistoryEntry(r.ID, r.ReservationID, status, pgconv.StringPtrFromPgtype(r.Notes), r.CreatedAt.UTC()), nil
}

func HistoryToView(r HistoryRow) *queries.StatusHistoryView {
	return &queries.StatusHistoryView{
		ID:        r.ID,
		Status:    r.Status,
		Notes:     pgconv.StringPtrFromPgtype(r.Notes),
		CreatedAt: r.CreatedAt.UTC(),
	}
}
