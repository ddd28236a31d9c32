package cache

import (
	"context"
	"strconv"
	"time"

	"kilo-share/internal/pkg/clock"
	"kilo-share/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed window counter. Each window gets its own key, so a
// window opens fresh on its boundary even if the previous key has not expired.
type RateLimiter struct {
	c     redis.UniversalClient
	clock clock.Clock
}

func NewRateLimiter(c redis.UniversalClient, clk clock.Clock) *RateLimiter {
	return &RateLimiter{c: c, clock: clk}
}

// Allow counts one hit for key in the current window and returns whether it
// is within limit along with the count so far.
func (rl *RateLimiter) Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, error) {
	bucket := rl.clock.Now().UnixNano() / int64(window)
	k := "ratelimit:" + key + ":" + strconv.FormatInt(bucket, 10)

	pipe := rl.c.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, errs.Wrap(err, "redis ratelimit")
	}
	n := incr.Val()
	return n <= limit, n, nil
}
