package bootstrap

import (
	"context"

	"kilo-share/internal/infra/broker"
	"kilo-share/internal/pkg/config"

	"go.uber.org/fx"
)

var KafkaModule = fx.Module("kafka",
	fx.Provide(
		NewProducer,
	),
)

func NewProducer(lc fx.Lifecycle, cfg config.KafkaConfig) *broker.Producer {
	p := broker.NewProducer(cfg)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return p.Close()
		},
	})
	return p
}
