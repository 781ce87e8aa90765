package bootstrap

import (
	"context"

	"cabinet-keeper/internal/infra/tasks"
	"cabinet-keeper/internal/pkg/config"
	"cabinet-keeper/internal/usecase/commands"

	"go.uber.org/fx"
)

var TasksModule = fx.Module("tasks",
	fx.Provide(
		NewTaskClient,
	),
	fx.Invoke(
		StartTaskServer,
		StartTaskScheduler,
	),
)

func NewTaskClient(lc fx.Lifecycle, cfg config.Config) *tasks.Client {
	client := tasks.NewClient(cfg.Redis, cfg.Tasks)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client
}

func StartTaskServer(
	lc fx.Lifecycle,
	cfg config.Config,
	alloc commands.AllocationCommands,
	admin commands.AdminCommands,
	sync commands.BookmarkSyncCommands,
) {
	server := tasks.NewServer(cfg.Redis, cfg.Tasks, alloc, admin, sync)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return server.Start()
		},
		OnStop: func(_ context.Context) error {
			server.Stop()
			return nil
		},
	})
}

func StartTaskScheduler(lc fx.Lifecycle, cfg config.Config) error {
	scheduler, err := tasks.NewScheduler(cfg.Redis, cfg.Tasks)
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return scheduler.Start()
		},
		OnStop: func(_ context.Context) error {
			scheduler.Stop()
			return nil
		},
	})

	return nil
}
