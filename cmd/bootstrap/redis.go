package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"kilo-share/internal/infra/cache"
	"kilo-share/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		fx.Annotate(
			NewRedisClient,
			fx.As(new(redis.UniversalClient)),
		),
	),
)

// NewRedisClient does not fail startup when Redis is down: the tracking cache
// and rate limiter both degrade to pass-through.
func NewRedisClient(lc fx.Lifecycle, cfg config.RedisConfig, logger *slog.Logger) *redis.Client {
	client := cache.NewClient(cfg)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			if err := client.Ping(pingCtx).Err(); err != nil {
				logger.Warn("redis unreachable, cache and rate limit disabled until it recovers", "addr", cfg.Addr, "error", err)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return client
}
