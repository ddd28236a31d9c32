package main

import (
	"context"
	"log/slog"
	"os"

	"kilo-share/cmd/bootstrap"

	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		bootstrap.RelayModule,
		fx.Invoke(func(lc fx.Lifecycle, logger *slog.Logger) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					logger.Info("outbox relay started")
					return nil
				},
				OnStop: func(_ context.Context) error {
					logger.Info("outbox relay stopping")
					return nil
				},
			})
		}),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("failed to start relay", "error", err)
		os.Exit(1)
	}

	<-app.Done()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("failed to stop relay", "error", err)
	}
}
