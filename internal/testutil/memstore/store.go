//go:build unit || e2e

// Package memstore is an in-memory implementation of the persistence ports.
// Transactions are serialized by one mutex and roll back by restoring a
// snapshot, which is enough to exercise usecase atomicity without PostgreSQL.
package memstore

import (
	"context"
	"maps"
	"sync"
	"time"

	"kilo-share/internal/domain/offer"
	"kilo-share/internal/domain/reservation"
	"kilo-share/internal/domain/user"
	"kilo-share/internal/usecase/shared"

	"github.com/google/uuid"
)

type idemKey struct {
	key    uuid.UUID
	userID uuid.UUID
}

type historyRow struct {
	seq   int
	entry reservation.HistoryEntry
}

type outboxRow struct {
	event       shared.Event
	publishedAt *time.Time
	lastError   string
}

type state struct {
	offers       map[uuid.UUID]offer.Offer
	reservations map[uuid.UUID]reservation.Reservation
	codes        map[string]uuid.UUID
	history      map[uuid.UUID][]historyRow
	roles        map[uuid.UUID]map[user.Role]time.Time
	outbox       []outboxRow
	idempotency  map[idemKey]shared.IdempotencyRecord
	seq          int
}

func (s *state) clone() *state {
	c := &state{
		offers:       maps.Clone(s.offers),
		reservations: maps.Clone(s.reservations),
		codes:        maps.Clone(s.codes),
		history:      make(map[uuid.UUID][]historyRow, len(s.history)),
		roles:        make(map[uuid.UUID]map[user.Role]time.Time, len(s.roles)),
		outbox:       append([]outboxRow(nil), s.outbox...),
		idempotency:  maps.Clone(s.idempotency),
		seq:          s.seq,
	}
	for k, v := range s.history {
		c.history[k] = append([]historyRow(nil), v...)
	}
	for k, v := range s.roles {
		c.roles[k] = maps.Clone(v)
	}
	return c
}

type Store struct {
	mu     sync.Mutex
	st     *state
	faults map[string]error
}

func New() *Store {
	return &Store{
		st: &state{
			offers:       map[uuid.UUID]offer.Offer{},
			reservations: map[uuid.UUID]reservation.Reservation{},
			codes:        map[string]uuid.UUID{},
			history:      map[uuid.UUID][]historyRow{},
			roles:        map[uuid.UUID]map[user.Role]time.Time{},
			idempotency:  map[idemKey]shared.IdempotencyRecord{},
		},
		faults: map[string]error{},
	}
}

// FailNext makes the next call of op return err. Ops are named
// "<repository>.<method>", e.g. "history.append".
func (s *Store) FailNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = err
}

func (s *Store) fault(op string) error {
	err, ok := s.faults[op]
	if !ok {
		return nil
	}
	delete(s.faults, op)
	return err
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(ctx, &memTx{s: s}); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

// SeedOffer stores o as is, outside any transaction.
func (s *Store) SeedOffer(o *offer.Offer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.offers[o.ID()] = *o
}

func (s *Store) SeedRole(userID uuid.UUID, role user.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st.roles[userID] == nil {
		s.st.roles[userID] = map[user.Role]time.Time{}
	}
	s.st.roles[userID][role] = time.Now().UTC()
}

func (s *Store) Offer(id uuid.UUID) (*offer.Offer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.st.offers[id]
	return &o, ok
}

func (s *Store) Reservation(id uuid.UUID) (*reservation.Reservation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.st.reservations[id]
	return &r, ok
}

func (s *Store) ReservationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.reservations)
}

func (s *Store) History(reservationID uuid.UUID) []*reservation.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.historyLocked(reservationID)
}

func (s *Store) historyLocked(reservationID uuid.UUID) []*reservation.HistoryEntry {
	rows := s.st.history[reservationID]
	out := make([]*reservation.HistoryEntry, 0, len(rows))
	for i := range rows {
		e := rows[i].entry
		out = append(out, &e)
	}
	return out
}

// Events returns every outbox event in append order.
func (s *Store) Events() []shared.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]shared.Event, 0, len(s.st.outbox))
	for _, r := range s.st.outbox {
		out = append(out, r.event)
	}
	return out
}

// Published reports whether the event was marked published.
func (s *Store) Published(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.st.outbox {
		if r.event.ID == id {
			return r.publishedAt != nil
		}
	}
	return false
}

func (s *Store) LastError(id uuid.UUID) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.st.outbox {
		if r.event.ID == id {
			return r.lastError
		}
	}
	return ""
}
