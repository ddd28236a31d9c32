package bootstrap

import (
	"kilo-share/internal/pkg/config"

	"go.uber.org/fx"
)

// SectionsOut lets infrastructure constructors depend on just their section.
type SectionsOut struct {
	fx.Out

	DB    config.DBConfig
	Redis config.RedisConfig
	Kafka config.KafkaConfig
}

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		splitSections,
	),
)

func splitSections(cfg config.Config) SectionsOut {
	return SectionsOut{DB: cfg.DB, Redis: cfg.Redis, Kafka: cfg.Kafka}
}
