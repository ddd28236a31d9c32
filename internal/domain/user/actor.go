package user

import (
	"slices"

	"github.com/google/uuid"
)

// Actor is the identity an operation runs as. The zero value is the
// anonymous public caller.
type Actor struct {
	userID uuid.UUID
	roles  []Role
}

var Anonymous = Actor{}

// NewActor always includes the implicit user role.
func NewActor(userID uuid.UUID, roles ...Role) Actor {
	rs := []Role{RoleUser}
	for _, r := range roles {
		if r.IsValid() && !slices.Contains(rs, r) {
			rs = append(rs, r)
		}
	}
	return Actor{userID: userID, roles: rs}
}

func (a Actor) UserID() uuid.UUID { return a.userID }

func (a Actor) Roles() []Role { return slices.Clone(a.roles) }

func (a Actor) IsAuthenticated() bool {
	return a.userID != uuid.Nil
}

func (a Actor) IsAdmin() bool {
	return a.IsAuthenticated() && slices.Contains(a.roles, RoleAdmin)
}

func (a Actor) Is(userID uuid.UUID) bool {
	return a.IsAuthenticated() && a.userID == userID
}
