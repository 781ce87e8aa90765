package bootstrap

import (
	"context"
	"log/slog"

	"cabinet-keeper/internal/pkg/config"
	"cabinet-keeper/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewWorkerPool,
	),
)

func NewWorkerPool(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) *worker.Pool {
	pool := worker.NewPool(cfg.Worker, logger)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			pool.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			return pool.Stop()
		},
	})

	return pool
}
