package queries

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"kilo-share/internal/domain/reservation"
	"kilo-share/internal/infra"
	"kilo-share/internal/usecase/shared"
)

//go:generate mockgen -source=tracking.go -destination=../../testutil/mock/queries/tracking_mock.go -package=queriesmock

type TrackingQueries interface {
	// GetByTrackingCode returns nil without error when no reservation carries the code.
	GetByTrackingCode(ctx context.Context, code string) (*TrackingView, error)
}

type trackingQueriesImpl struct {
	store ReservationReadStore
	cache shared.TrackingCache
	ttl   time.Duration
}

func NewTrackingQueries(store ReservationReadStore, cache shared.TrackingCache, ttl time.Duration) TrackingQueries {
	return &trackingQueriesImpl{store: store, cache: cache, ttl: ttl}
}

func (q *trackingQueriesImpl) GetByTrackingCode(ctx context.Context, raw string) (*TrackingView, error) {
	code, err := reservation.ParseTrackingCode(raw)
	if err != nil {
		return nil, nil
	}
	key := shared.TrackingCacheKey(code.String())

	if view := q.cached(ctx, key); view != nil {
		return view, nil
	}

	res, err := q.store.FindByTrackingCode(ctx, code.String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	history, err := q.store.History(ctx, res.ID)
	if err != nil {
		return nil, err
	}

	view := &TrackingView{
		TrackingCode:    res.TrackingCode,
		Status:          res.Status,
		StatusUpdatedAt: res.StatusUpdatedAt,
		Kilos:           res.Kilos,
		CreatedAt:       res.CreatedAt,
		Route:           res.Route,
		History:         make([]StatusHistoryView, 0, len(history)),
	}
	for _, h := range history {
		view.History = append(view.History, *h)
	}

	q.remember(ctx, key, view)
	return view, nil
}

func (q *trackingQueriesImpl) cached(ctx context.Context, key string) *TrackingView {
	if q.cache == nil {
		return nil
	}
	body, ok, err := q.cache.Get(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "tracking cache read failed", "key", key, "error", err.Error())
		return nil
	}
	if !ok {
		return nil
	}
	var view TrackingView
	if err := json.Unmarshal(body, &view); err != nil {
		slog.WarnContext(ctx, "tracking cache entry unreadable", "key", key, "error", err.Error())
		return nil
	}
	return &view
}

func (q *trackingQueriesImpl) remember(ctx context.Context, key string, view *TrackingView) {
	if q.cache == nil || q.ttl <= 0 {
		return
	}
	body, err := json.Marshal(view)
	if err != nil {
		return
	}
	if err := q.cache.Set(ctx, key, body, q.ttl); err != nil {
		slog.WarnContext(ctx, "tracking cache write failed", "key", key, "error", err.Error())
	}
}
