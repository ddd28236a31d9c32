//go:build unit || e2e

package memstore

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"time"

	"kilo-share/internal/domain/offer"
	"kilo-share/internal/domain/reservation"
	"kilo-share/internal/domain/user"
	"kilo-share/internal/infra"
	"kilo-share/internal/usecase/shared"

	"github.com/google/uuid"
)

var errNoRow = errors.New("no rows in result set")

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, errNoRow, infra.KindNotFound)
}

// memTx runs with Store.mu held by Within.
type memTx struct {
	s *Store
}

func (t *memTx) Offers() shared.OfferRepository             { return offerRepo{t.s} }
func (t *memTx) Reservations() shared.ReservationRepository { return reservationRepo{t.s} }
func (t *memTx) History() shared.HistoryRepository          { return historyRepo{t.s} }
func (t *memTx) Roles() shared.RoleRepository               { return roleRepo{t.s} }
func (t *memTx) Outbox() shared.OutboxRepository            { return outboxRepo{t.s} }
func (t *memTx) Idempotency() shared.IdempotencyRepository  { return idempotencyRepo{t.s} }
func (t *memTx) Reads() shared.CommandReads                 { return commandReads{t.s} }

type offerRepo struct{ s *Store }

func (r offerRepo) Create(_ context.Context, o *offer.Offer) error {
	if err := r.s.fault("offers.create"); err != nil {
		return err
	}
	r.s.st.offers[o.ID()] = *o
	return nil
}

func (r offerRepo) Update(_ context.Context, o *offer.Offer) error {
	if _, ok := r.s.st.offers[o.ID()]; !ok {
		return notFound("offer not found")
	}
	r.s.st.offers[o.ID()] = *o
	return nil
}

// Delete cascades to reservations and their history like the foreign keys do.
func (r offerRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.s.st.offers[id]; !ok {
		return notFound("offer not found")
	}
	delete(r.s.st.offers, id)
	for rid, res := range r.s.st.reservations {
		if res.OfferID() == id {
			r.s.deleteReservation(rid)
		}
	}
	return nil
}

func (r offerRepo) DecrementAvailable(_ context.Context, id uuid.UUID, kilos int, now time.Time) (bool, error) {
	if err := r.s.fault("offers.decrement"); err != nil {
		return false, err
	}
	o, ok := r.s.st.offers[id]
	if !ok {
		return false, nil
	}
	if err := o.Take(kilos, now); err != nil {
		return false, nil
	}
	r.s.st.offers[id] = o
	return true, nil
}

func (r offerRepo) IncrementAvailable(_ context.Context, id uuid.UUID, kilos int, now time.Time) error {
	o, ok := r.s.st.offers[id]
	if !ok {
		return notFound("offer not found")
	}
	o.Restore(kilos, now)
	r.s.st.offers[id] = o
	return nil
}

type reservationRepo struct{ s *Store }

func (r reservationRepo) Insert(_ context.Context, res *reservation.Reservation) (bool, error) {
	if err := r.s.fault("reservations.insert"); err != nil {
		return false, err
	}
	if _, taken := r.s.st.codes[res.TrackingCode().String()]; taken {
		return false, nil
	}
	if _, ok := r.s.st.offers[res.OfferID()]; !ok {
		return false, infra.WrapRepoErr("offer missing", errNoRow, infra.KindForeignKeyViolated)
	}
	r.s.st.reservations[res.ID()] = *res
	r.s.st.codes[res.TrackingCode().String()] = res.ID()
	return true, nil
}

func (r reservationRepo) Update(_ context.Context, res *reservation.Reservation) error {
	if _, ok := r.s.st.reservations[res.ID()]; !ok {
		return notFound("reservation not found")
	}
	r.s.st.reservations[res.ID()] = *res
	return nil
}

func (r reservationRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.s.st.reservations[id]; !ok {
		return notFound("reservation not found")
	}
	r.s.deleteReservation(id)
	return nil
}

// deleteReservation also clears idempotency results, mirroring ON DELETE SET NULL.
func (s *Store) deleteReservation(id uuid.UUID) {
	res := s.st.reservations[id]
	delete(s.st.reservations, id)
	delete(s.st.codes, res.TrackingCode().String())
	delete(s.st.history, id)
	for k, rec := range s.st.idempotency {
		if rec.ResultReservationID != nil && *rec.ResultReservationID == id {
			rec.ResultReservationID = nil
			s.st.idempotency[k] = rec
		}
	}
}

type historyRepo struct{ s *Store }

func (r historyRepo) Append(_ context.Context, e *reservation.HistoryEntry) error {
	if err := r.s.fault("history.append"); err != nil {
		return err
	}
	if _, ok := r.s.st.reservations[e.ReservationID()]; !ok {
		return infra.WrapRepoErr("reservation missing", errNoRow, infra.KindForeignKeyViolated)
	}
	r.s.st.seq++
	r.s.st.history[e.ReservationID()] = append(r.s.st.history[e.ReservationID()], historyRow{seq: r.s.st.seq, entry: *e})
	return nil
}

type roleRepo struct{ s *Store }

func (r roleRepo) Grant(_ context.Context, userID uuid.UUID, role user.Role, now time.Time) (bool, error) {
	grants := r.s.st.roles[userID]
	if grants == nil {
		grants = map[user.Role]time.Time{}
		r.s.st.roles[userID] = grants
	}
	if _, ok := grants[role]; ok {
		return false, nil
	}
	grants[role] = now
	return true, nil
}

func (r roleRepo) Revoke(_ context.Context, userID uuid.UUID, role user.Role) (bool, error) {
	grants := r.s.st.roles[userID]
	if _, ok := grants[role]; !ok {
		return false, nil
	}
	delete(grants, role)
	return true, nil
}

type outboxRepo struct{ s *Store }

func (r outboxRepo) Append(_ context.Context, e shared.Event) error {
	if err := r.s.fault("outbox.append"); err != nil {
		return err
	}
	r.s.st.outbox = append(r.s.st.outbox, outboxRow{event: e})
	return nil
}

func (r outboxRepo) ClaimPending(_ context.Context, limit, maxAttempts int) ([]shared.Event, error) {
	if err := r.s.fault("outbox.claim"); err != nil {
		return nil, err
	}
	var out []shared.Event
	for _, row := range r.s.st.outbox {
		if row.publishedAt != nil || row.event.Attempts >= maxAttempts {
			continue
		}
		out = append(out, row.event)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r outboxRepo) MarkPublished(_ context.Context, id uuid.UUID, at time.Time) error {
	for i := range r.s.st.outbox {
		if r.s.st.outbox[i].event.ID == id {
			r.s.st.outbox[i].publishedAt = &at
			return nil
		}
	}
	return notFound("outbox event not found")
}

func (r outboxRepo) MarkFailed(_ context.Context, id uuid.UUID, reason string) error {
	for i := range r.s.st.outbox {
		if r.s.st.outbox[i].event.ID == id {
			r.s.st.outbox[i].event.Attempts++
			r.s.st.outbox[i].lastError = reason
			return nil
		}
	}
	return notFound("outbox event not found")
}

type idempotencyRepo struct{ s *Store }

func (r idempotencyRepo) TryInsert(_ context.Context, rec shared.IdempotencyRecord) (bool, error) {
	k := idemKey{key: rec.Key, userID: rec.UserID}
	if _, ok := r.s.st.idempotency[k]; ok {
		return false, nil
	}
	r.s.st.idempotency[k] = rec
	return true, nil
}

func (r idempotencyRepo) Complete(_ context.Context, key, userID, reservationID uuid.UUID) error {
	k := idemKey{key: key, userID: userID}
	rec, ok := r.s.st.idempotency[k]
	if !ok {
		return notFound("idempotency key not found")
	}
	rec.ResultReservationID = &reservationID
	r.s.st.idempotency[k] = rec
	return nil
}

type commandReads struct{ s *Store }

func (r commandReads) OfferByID(_ context.Context, id uuid.UUID) (*offer.Offer, error) {
	o, ok := r.s.st.offers[id]
	if !ok {
		return nil, notFound("offer not found")
	}
	return &o, nil
}

func (r commandReads) OfferForUpdate(ctx context.Context, id uuid.UUID) (*offer.Offer, error) {
	return r.OfferByID(ctx, id)
}

func (r commandReads) ReservationByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, ok := r.s.st.reservations[id]
	if !ok {
		return nil, notFound("reservation not found")
	}
	return &res, nil
}

func (r commandReads) ReservationForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return r.ReservationByID(ctx, id)
}

func (r commandReads) ReservationsByOffer(_ context.Context, offerID uuid.UUID) ([]*reservation.Reservation, error) {
	var out []*reservation.Reservation
	for _, res := range r.s.st.reservations {
		if res.OfferID() == offerID {
			out = append(out, &res)
		}
	}
	slices.SortFunc(out, func(a, b *reservation.Reservation) int {
		return cmp.Or(a.CreatedAt().Compare(b.CreatedAt()), cmp.Compare(a.ID().String(), b.ID().String()))
	})
	return out, nil
}

func (r commandReads) HistoryByReservation(_ context.Context, reservationID uuid.UUID) ([]*reservation.HistoryEntry, error) {
	return r.s.historyLocked(reservationID), nil
}

func (r commandReads) IdempotencyByKey(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	rec, ok := r.s.st.idempotency[idemKey{key: key, userID: userID}]
	if !ok {
		return nil, notFound("idempotency key not found")
	}
	return &rec, nil
}
