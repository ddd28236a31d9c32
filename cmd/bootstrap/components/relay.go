package components

import (
	"context"
	"log/slog"

	"kilo-share/internal/infra/broker"
	"kilo-share/internal/pkg/clock"
	"kilo-share/internal/pkg/config"
	"kilo-share/internal/usecase/shared"
	"kilo-share/internal/worker/outbox"

	"go.uber.org/fx"
)

var RelayModule = fx.Module("relay",
	fx.Provide(
		clock.NewRealClock,
		func(p *broker.Producer) outbox.Publisher { return p },
		func(uow shared.UnitOfWork, pub outbox.Publisher, clk clock.Clock, cfg config.Config, logger *slog.Logger) *outbox.Relay {
			return outbox.NewRelay(uow, pub, clk, cfg.Relay.BatchSize, cfg.Relay.MaxAttempts, logger)
		},
		func(r *outbox.Relay, cfg config.Config, logger *slog.Logger) *outbox.Job {
			return outbox.NewJob(r, cfg.Relay.Schedule, logger)
		},
	),
	fx.Invoke(startRelayJob),
)

func startRelayJob(lc fx.Lifecycle, job *outbox.Job) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return job.Start()
		},
		OnStop: func(_ context.Context) error {
			job.Stop()
			return nil
		},
	})
}
