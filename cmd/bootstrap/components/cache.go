package components

import (
	"kilo-share/internal/handler/middleware"
	"kilo-share/internal/infra/cache"
	"kilo-share/internal/usecase/shared"

	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		fx.Annotate(
			cache.New,
			fx.As(new(shared.TrackingCache)),
		),
		fx.Annotate(
			cache.NewRateLimiter,
			fx.As(new(middleware.Limiter)),
		),
	),
)
