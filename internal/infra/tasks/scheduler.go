package tasks

import (
	"cabinet-keeper/internal/pkg/config"
	"cabinet-keeper/internal/pkg/errs"

	"github.com/hibiken/asynq"
)

// Scheduler registers the periodic maintenance jobs on the durable queue.
type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisCfg config.RedisConfig, tasksCfg config.TasksConfig) (*Scheduler, error) {
	scheduler := asynq.NewScheduler(redisOpt(redisCfg), nil)

	entries := []struct {
		cronspec string
		taskType string
	}{
		{tasksCfg.BookmarkSyncCron, TypeBookmarkSync},
		{tasksCfg.OverdueSweepCron, TypeOverdueSweep},
	}
	for _, entry := range entries {
		task := asynq.NewTask(entry.taskType, nil)
		if _, err := scheduler.Register(entry.cronspec, task, asynq.Queue(tasksCfg.Queue)); err != nil {
			return nil, errs.Wrap(err, "failed to register scheduled task")
		}
	}
	return &Scheduler{scheduler: scheduler}, nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Stop() {
	s.scheduler.Shutdown()
}
