// Package policy holds the row-level authorization rules of the service.
// Every usecase asks Authorize before it reads or writes a resource.
package policy

import (
	"kilo-share/internal/domain/reservation"
	"kilo-share/internal/domain/user"
	"kilo-share/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrUnauthorized = errs.New("unauthorized")

type Resource string

const (
	ResourceOffer         Resource = "cargo_offer"
	ResourceReservation   Resource = "reservation"
	ResourceStatusHistory Resource = "status_history"
	ResourceUserRole      Resource = "user_role"
)

type Action string

const (
	ActionRead  Action = "read"
	ActionWrite Action = "write"
)

// Target describes the row being accessed. Fields that do not apply to a
// resource are ignored by its rules.
type Target struct {
	// OwnerID is the reservation owner, or the subject user for roles.
	OwnerID uuid.UUID
	// Active is the offer's is_active flag.
	Active bool
	// Status is the reservation status.
	Status reservation.Status
}

type rule func(a user.Actor, t Target) bool

var rules = map[Resource]map[Action]rule{
	ResourceOffer: {
		ActionRead:  func(a user.Actor, t Target) bool { return t.Active || a.IsAdmin() },
		ActionWrite: adminOnly,
	},
	ResourceReservation: {
		ActionRead: ownerOrAdmin,
		ActionWrite: func(a user.Actor, t Target) bool {
			return a.IsAdmin() || (a.Is(t.OwnerID) && t.Status.IsInitial())
		},
	},
	ResourceStatusHistory: {
		ActionRead:  ownerOrAdmin,
		ActionWrite: adminOnly,
	},
	ResourceUserRole: {
		ActionRead:  ownerOrAdmin,
		ActionWrite: adminOnly,
	},
}

func adminOnly(a user.Actor, _ Target) bool {
	return a.IsAdmin()
}

func ownerOrAdmin(a user.Actor, t Target) bool {
	return a.IsAdmin() || a.Is(t.OwnerID)
}

func Allows(a user.Actor, res Resource, act Action, t Target) bool {
	r, ok := rules[res][act]
	if !ok {
		return false
	}
	return r(a, t)
}

func Authorize(a user.Actor, res Resource, act Action, t Target) error {
	if !Allows(a, res, act, t) {
		return errs.Wrapf(ErrUnauthorized, "%s %s", act, res)
	}
	return nil
}
