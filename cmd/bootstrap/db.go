package bootstrap

import (
	"context"
	"log/slog"

	"kilo-share/internal/infra/db"
	"kilo-share/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

// NewDB connects eagerly so a bad DSN fails startup, and closes the pool
// after every other hook has stopped.
func NewDB(lc fx.Lifecycle, cfg config.DBConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, closePool, err := db.Connect(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("database connected", "host", cfg.Host, "db", cfg.DBName, "max_conns", pool.Config().MaxConns)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			stat := pool.Stat()
			logger.Info("closing database pool", "acquired", stat.AcquiredConns(), "total", stat.TotalConns())
			closePool()
			return nil
		},
	})
	return pool, nil
}
