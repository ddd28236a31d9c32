package queries

import (
	"context"

	"kilo-share/internal/domain/policy"
	"kilo-share/internal/domain/user"
	"kilo-share/internal/infra"
	"kilo-share/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=offer.go -destination=../../testutil/mock/queries/offer_mock.go -package=queriesmock

type OfferReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OfferView, error)
	// ListActive returns listed offers only: active with kilos left.
	ListActive(ctx context.Context, filter OfferFilter) ([]*OfferView, error)
	ListAll(ctx context.Context, filter OfferFilter) ([]*OfferView, error)
}

type OfferQueries interface {
	ListActive(ctx context.Context, filter OfferFilter) ([]*OfferView, error)
	ListAll(ctx context.Context, actor user.Actor, filter OfferFilter) ([]*OfferView, error)
	GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*OfferView, error)
}

type offerQueriesImpl struct {
	store OfferReadStore
}

func NewOfferQueries(store OfferReadStore) OfferQueries {
	return &offerQueriesImpl{store: store}
}

func (q *offerQueriesImpl) ListActive(ctx context.Context, filter OfferFilter) ([]*OfferView, error) {
	return q.store.ListActive(ctx, normalizeOfferFilter(filter))
}

func (q *offerQueriesImpl) ListAll(ctx context.Context, actor user.Actor, filter OfferFilter) ([]*OfferView, error) {
	if !actor.IsAdmin() {
		return nil, errs.Wrap(policy.ErrUnauthorized, "list all offers")
	}
	return q.store.ListAll(ctx, normalizeOfferFilter(filter))
}

// GetByID hides inactive offers from non-admins as if they did not exist.
func (q *offerQueriesImpl) GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*OfferView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrOfferNotFound
		}
		return nil, err
	}
	if !policy.Allows(actor, policy.ResourceOffer, policy.ActionRead, policy.Target{Active: view.IsActive}) {
		return nil, errs.ErrOfferNotFound
	}
	return view, nil
}

func normalizeOfferFilter(f OfferFilter) OfferFilter {
	f.Limit = ValidateLimit(f.Limit)
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}
