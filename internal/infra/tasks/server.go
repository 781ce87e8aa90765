package tasks

import (
	"context"
	"encoding/json"
	"log/slog"

	"cabinet-keeper/internal/pkg/config"
	"cabinet-keeper/internal/pkg/errs"
	"cabinet-keeper/internal/usecase/commands"

	"github.com/hibiken/asynq"
)

// Server consumes the durable queue: rent tasks plus the scheduled
// maintenance jobs (bookmark reconciliation, overdue sweep).
type Server struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

func NewServer(
	redisCfg config.RedisConfig,
	tasksCfg config.TasksConfig,
	alloc commands.AllocationCommands,
	admin commands.AdminCommands,
	sync commands.BookmarkSyncCommands,
) *Server {
	server := asynq.NewServer(redisOpt(redisCfg), asynq.Config{
		Concurrency: tasksCfg.Concurrency,
		Queues:      map[string]int{tasksCfg.Queue: 1},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeRentCabinet, handleRent(alloc))
	mux.HandleFunc(TypeOverdueSweep, handleOverdueSweep(admin))
	mux.HandleFunc(TypeBookmarkSync, handleBookmarkSync(sync))

	return &Server{server: server, mux: mux}
}

func (s *Server) Start() error {
	return s.server.Start(s.mux)
}

func (s *Server) Stop() {
	s.server.Shutdown()
}

func handleRent(alloc commands.AllocationCommands) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var payload RentPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return errs.Wrap(err, "failed to decode rent payload")
		}
		if err := alloc.ExecuteRent(ctx, payload.TaskID, payload.CabinetID, payload.UserID); err != nil {
			// Losing the race against another execution path is the normal
			// case here. The outcome is already recorded; do not retry.
			slog.Debug("queued rent did not win",
				"task_id", payload.TaskID, "cabinet_id", payload.CabinetID, "error", err.Error())
		}
		return nil
	}
}

func handleOverdueSweep(admin commands.AdminCommands) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		result, err := admin.SweepOverdue(ctx)
		if err != nil {
			return err
		}
		if len(result.Succeeded) > 0 || len(result.Failed) > 0 {
			slog.Info("overdue sweep finished",
				"marked", len(result.Succeeded), "failed", len(result.Failed))
		}
		return nil
	}
}

func handleBookmarkSync(sync commands.BookmarkSyncCommands) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		report, err := sync.SyncBookmarks(ctx)
		if err != nil {
			return err
		}
		if report.Skipped {
			return nil
		}
		slog.Info("bookmark sync finished",
			"applied", report.Applied, "dropped", report.Dropped, "retried", report.Retried)
		return nil
	}
}
