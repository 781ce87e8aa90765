package bootstrap

import (
	"cabinet-keeper/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	RedisModule,
	WorkerModule,
	KafkaModule,
	TasksModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
