package bootstrap

import (
	"kilo-share/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// Module wires the HTTP API.
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	RedisModule,
	components.PersistenceModule,
	components.CacheModule,
	components.UseCaseModule,
	components.HandlerModule,
)

// RelayModule wires the outbox relay worker.
var RelayModule = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	KafkaModule,
	components.UnitOfWorkModule,
	components.RelayModule,
)
