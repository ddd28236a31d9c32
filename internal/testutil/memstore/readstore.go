//go:build unit || e2e

package memstore

import (
	"cmp"
	"context"
	"slices"

	"kilo-share/internal/domain/offer"
	"kilo-share/internal/domain/reservation"
	"kilo-share/internal/domain/user"
	"kilo-share/internal/usecase/queries"

	"github.com/google/uuid"
)

// The read stores serve the query side from the same state as the transactions.
type (
	OfferReads       struct{ s *Store }
	ReservationReads struct{ s *Store }
	RoleReads        struct{ s *Store }
)

func (s *Store) OfferReads() *OfferReads             { return &OfferReads{s: s} }
func (s *Store) ReservationReads() *ReservationReads { return &ReservationReads{s: s} }
func (s *Store) RoleReads() *RoleReads               { return &RoleReads{s: s} }

var (
	_ queries.OfferReadStore       = (*OfferReads)(nil)
	_ queries.ReservationReadStore = (*ReservationReads)(nil)
	_ queries.RoleReadStore        = (*RoleReads)(nil)
)

func (r *OfferReads) FindByID(_ context.Context, id uuid.UUID) (*queries.OfferView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.st.offers[id]
	if !ok {
		return nil, notFound("offer not found")
	}
	return offerView(&o), nil
}

func (r *OfferReads) ListActive(_ context.Context, f queries.OfferFilter) ([]*queries.OfferView, error) {
	return r.listOffers(f, func(o *offer.Offer) bool { return o.IsListed() }), nil
}

func (r *OfferReads) ListAll(_ context.Context, f queries.OfferFilter) ([]*queries.OfferView, error) {
	return r.listOffers(f, func(*offer.Offer) bool { return true }), nil
}

func (r *OfferReads) listOffers(f queries.OfferFilter, keep func(*offer.Offer) bool) []*queries.OfferView {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var picked []*offer.Offer
	for _, o := range r.s.st.offers {
		if keep(&o) && o.Matches(f.Query) {
			picked = append(picked, &o)
		}
	}
	slices.SortFunc(picked, func(a, b *offer.Offer) int {
		return cmp.Or(
			a.DepartureDate().Compare(b.DepartureDate()),
			a.CreatedAt().Compare(b.CreatedAt()),
			cmp.Compare(a.ID().String(), b.ID().String()),
		)
	})

	start := min(f.Offset, len(picked))
	end := len(picked)
	if f.Limit > 0 {
		end = min(start+f.Limit, len(picked))
	}
	out := make([]*queries.OfferView, 0, end-start)
	for _, o := range picked[start:end] {
		out = append(out, offerView(o))
	}
	return out
}

func (r *ReservationReads) findReservation(match func(*reservation.Reservation) bool) (*queries.ReservationView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, res := range r.s.st.reservations {
		if match(&res) {
			return r.reservationView(&res), nil
		}
	}
	return nil, notFound("reservation not found")
}

func (r *ReservationReads) FindByID(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	return r.findReservation(func(res *reservation.Reservation) bool { return res.ID() == id })
}

func (r *ReservationReads) FindByTrackingCode(_ context.Context, code string) (*queries.ReservationView, error) {
	return r.findReservation(func(res *reservation.Reservation) bool { return res.TrackingCode().String() == code })
}

func (r *ReservationReads) ListByOwner(_ context.Context, ownerID uuid.UUID, after *queries.Position, limit int32) ([]*queries.ReservationView, error) {
	return r.listReservations(func(res *reservation.Reservation) bool { return res.OwnerID() == ownerID }, after, limit), nil
}

func (r *ReservationReads) ListAll(_ context.Context, status *string, after *queries.Position, limit int32) ([]*queries.ReservationView, error) {
	return r.listReservations(func(res *reservation.Reservation) bool {
		return status == nil || res.Status().String() == *status
	}, after, limit), nil
}

func (r *ReservationReads) listReservations(keep func(*reservation.Reservation) bool, after *queries.Position, limit int32) []*queries.ReservationView {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var picked []*reservation.Reservation
	for _, res := range r.s.st.reservations {
		if keep(&res) && (after == nil || before(&res, after)) {
			picked = append(picked, &res)
		}
	}
	slices.SortFunc(picked, func(a, b *reservation.Reservation) int {
		return cmp.Or(b.CreatedAt().Compare(a.CreatedAt()), cmp.Compare(b.ID().String(), a.ID().String()))
	})
	if limit > 0 && len(picked) > int(limit) {
		picked = picked[:limit]
	}
	out := make([]*queries.ReservationView, 0, len(picked))
	for _, res := range picked {
		out = append(out, r.reservationView(res))
	}
	return out
}

// before is the newest-first keyset condition (created_at, id) < position.
func before(res *reservation.Reservation, p *queries.Position) bool {
	if c := res.CreatedAt().Compare(p.CreatedAt); c != 0 {
		return c < 0
	}
	return res.ID().String() < p.ID.String()
}

func (r *ReservationReads) History(_ context.Context, reservationID uuid.UUID) ([]*queries.StatusHistoryView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := slices.Clone(r.s.st.history[reservationID])
	slices.SortStableFunc(rows, func(a, b historyRow) int {
		return cmp.Or(a.entry.CreatedAt().Compare(b.entry.CreatedAt()), cmp.Compare(a.seq, b.seq))
	})
	out := make([]*queries.StatusHistoryView, 0, len(rows))
	for _, h := range rows {
		out = append(out, &queries.StatusHistoryView{
			ID:        h.entry.ID(),
			Status:    h.entry.Status().String(),
			Notes:     h.entry.Notes(),
			CreatedAt: h.entry.CreatedAt(),
		})
	}
	return out, nil
}

func (r *RoleReads) RolesByUser(_ context.Context, userID uuid.UUID) ([]user.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []user.Role
	for role := range r.s.st.roles[userID] {
		out = append(out, role)
	}
	slices.Sort(out)
	return out, nil
}

func offerView(o *offer.Offer) *queries.OfferView {
	dep, arr := o.Route().Departure(), o.Route().Arrival()
	return &queries.OfferView{
		ID:                o.ID(),
		DepartureCity:     dep.City(),
		DepartureCountry:  dep.Country(),
		DepartureFlag:     dep.Flag(),
		ArrivalCity:       arr.City(),
		ArrivalCountry:    arr.Country(),
		ArrivalFlag:       arr.Flag(),
		DepartureDate:     o.DepartureDate(),
		TotalKilos:        o.TotalKilos(),
		AvailableKilos:    o.AvailableKilos(),
		PricePerKiloCents: o.PricePerKilo().Cents(),
		IsActive:          o.IsActive(),
		CreatedAt:         o.CreatedAt(),
		UpdatedAt:         o.UpdatedAt(),
	}
}

func (r *ReservationReads) reservationView(res *reservation.Reservation) *queries.ReservationView {
	view := &queries.ReservationView{
		ID:              res.ID(),
		OwnerID:         res.OwnerID(),
		OfferID:         res.OfferID(),
		Kilos:           res.Kilos(),
		Description:     res.Description(),
		Status:          res.Status().String(),
		StatusUpdatedAt: res.StatusUpdatedAt(),
		TrackingCode:    res.TrackingCode().String(),
		CreatedAt:       res.CreatedAt(),
		UpdatedAt:       res.UpdatedAt(),
	}
	if o, ok := r.s.st.offers[res.OfferID()]; ok {
		ov := offerView(&o)
		view.Route = queries.RouteSummary{
			DepartureCity:    ov.DepartureCity,
			DepartureCountry: ov.DepartureCountry,
			DepartureFlag:    ov.DepartureFlag,
			ArrivalCity:      ov.ArrivalCity,
			ArrivalCountry:   ov.ArrivalCountry,
			ArrivalFlag:      ov.ArrivalFlag,
			DepartureDate:    ov.DepartureDate,
		}
	}
	return view
}
