//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"
	"time"

	"kilo-share/internal/domain/reservation"
	"kilo-share/internal/domain/user"
	"kilo-share/internal/infra/db"
	"kilo-share/internal/infra/repository"
	"kilo-share/internal/testutil/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func CreateOffer(t *testing.T, dbtx db.DBTX, b *builder.OfferBuilder) uuid.UUID {
	t.Helper()

	o := b.BuildDomain()
	require.NoError(t, repository.NewOfferRepository(dbtx).Create(context.Background(), o))
	return o.ID()
}

// CreateReservation takes the kilos from the offer and writes the initial
// history row, the same rows a reserve call leaves behind.
func CreateReservation(t *testing.T, dbtx db.DBTX, ownerID, offerID uuid.UUID, kilos int, code string) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	now := time.Now().UTC()

	tc, err := reservation.ParseTrackingCode(code)
	require.NoError(t, err)
	res, err := reservation.NewReservation(ownerID, offerID, kilos, nil, tc, now)
	require.NoError(t, err)

	ok, err := repository.NewOfferRepository(dbtx).DecrementAvailable(ctx, offerID, kilos, now)
	require.NoError(t, err)
	require.True(t, ok, "offer has no room for the fixture reservation")

	inserted, err := repository.NewReservationRepository(dbtx).Insert(ctx, res)
	require.NoError(t, err)
	require.True(t, inserted, "tracking code already taken")

	entry, err := reservation.NewHistoryEntry(res.ID(), res.Status(), nil, now)
	require.NoError(t, err)
	require.NoError(t, repository.NewHistoryRepository(dbtx).Append(ctx, entry))

	return res.ID()
}

func GrantRole(t *testing.T, dbtx db.DBTX, userID uuid.UUID, role user.Role) {
	t.Helper()

	_, err := repository.NewRoleRepository(dbtx).Grant(context.Background(), userID, role, time.Now().UTC())
	require.NoError(t, err)
}

func AvailableKilos(t *testing.T, dbtx db.DBTX, offerID uuid.UUID) int {
	t.Helper()

	var kilos int
	err := dbtx.QueryRow(context.Background(), "SELECT available_kilos FROM cargo_offers WHERE id = $1", offerID).Scan(&kilos)
	require.NoError(t, err)
	return kilos
}

func CountRows(t *testing.T, dbtx db.DBTX, table string) int {
	t.Helper()

	var n int
	err := dbtx.QueryRow(context.Background(), "SELECT count(*) FROM "+table).Scan(&n)
	require.NoError(t, err)
	return n
}
