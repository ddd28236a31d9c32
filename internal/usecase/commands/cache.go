package commands

import (
	"context"
	"log/slog"

	"kilo-share/internal/usecase/shared"
)

// invalidateTracking drops cached public views. Failures only cost staleness
// until the entry expires, so they are logged and swallowed.
func invalidateTracking(ctx context.Context, cache shared.TrackingCache, codes ...string) {
	if cache == nil || len(codes) == 0 {
		return
	}
	keys := make([]string, 0, len(codes))
	for _, c := range codes {
		keys = append(keys, shared.TrackingCacheKey(c))
	}
	if err := cache.Delete(ctx, keys...); err != nil {
		slog.WarnContext(ctx, "tracking cache invalidation failed", "keys", keys, "error", err.Error())
	}
}
