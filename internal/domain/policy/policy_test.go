//go:build unit

package policy_test

import (
	"testing"

	"kilo-share/internal/domain/policy"
	"kilo-share/internal/domain/reservation"
	"kilo-share/internal/domain/user"
	"kilo-share/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	ownerID := uuid.New()
	owner := user.NewActor(ownerID)
	stranger := user.NewActor(uuid.New())
	admin := user.NewActor(uuid.New(), user.RoleAdmin)
	public := user.Anonymous

	pending := policy.Target{OwnerID: ownerID, Status: reservation.StatusPendingSubmission}
	inTransit := policy.Target{OwnerID: ownerID, Status: reservation.StatusInTransit}

	cases := []struct {
		name   string
		actor  user.Actor
		res    policy.Resource
		act    policy.Action
		target policy.Target
		want   bool
	}{
		{"public reads active offer", public, policy.ResourceOffer, policy.ActionRead, policy.Target{Active: true}, true},
		{"public cannot read inactive offer", public, policy.ResourceOffer, policy.ActionRead, policy.Target{}, false},
		{"admin reads inactive offer", admin, policy.ResourceOffer, policy.ActionRead, policy.Target{}, true},
		{"user cannot write offer", owner, policy.ResourceOffer, policy.ActionWrite, policy.Target{Active: true}, false},
		{"admin writes offer", admin, policy.ResourceOffer, policy.ActionWrite, policy.Target{}, true},

		{"owner reads reservation", owner, policy.ResourceReservation, policy.ActionRead, inTransit, true},
		{"stranger cannot read reservation", stranger, policy.ResourceReservation, policy.ActionRead, pending, false},
		{"public cannot read reservation", public, policy.ResourceReservation, policy.ActionRead, pending, false},
		{"admin reads reservation", admin, policy.ResourceReservation, policy.ActionRead, pending, true},
		{"owner writes pending reservation", owner, policy.ResourceReservation, policy.ActionWrite, pending, true},
		{"owner cannot write after hand-over", owner, policy.ResourceReservation, policy.ActionWrite, inTransit, false},
		{"stranger cannot write pending reservation", stranger, policy.ResourceReservation, policy.ActionWrite, pending, false},
		{"admin writes any reservation", admin, policy.ResourceReservation, policy.ActionWrite, inTransit, true},

		{"owner reads history", owner, policy.ResourceStatusHistory, policy.ActionRead, inTransit, true},
		{"stranger cannot read history", stranger, policy.ResourceStatusHistory, policy.ActionRead, inTransit, false},
		{"owner cannot write history", owner, policy.ResourceStatusHistory, policy.ActionWrite, pending, false},
		{"admin writes history", admin, policy.ResourceStatusHistory, policy.ActionWrite, pending, true},

		{"self reads roles", owner, policy.ResourceUserRole, policy.ActionRead, policy.Target{OwnerID: ownerID}, true},
		{"stranger cannot read roles", stranger, policy.ResourceUserRole, policy.ActionRead, policy.Target{OwnerID: ownerID}, false},
		{"self cannot write roles", owner, policy.ResourceUserRole, policy.ActionWrite, policy.Target{OwnerID: ownerID}, false},
		{"admin writes roles", admin, policy.ResourceUserRole, policy.ActionWrite, policy.Target{OwnerID: ownerID}, true},

		{"unknown resource denied", admin, policy.Resource("invoice"), policy.ActionRead, policy.Target{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, policy.Allows(tc.actor, tc.res, tc.act, tc.target))

			err := policy.Authorize(tc.actor, tc.res, tc.act, tc.target)
			if tc.want {
				assert.NoError(t, err)
			} else {
				assert.True(t, errs.Is(err, policy.ErrUnauthorized), "got %v", err)
			}
		})
	}
}
