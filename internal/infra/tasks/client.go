package tasks

import (
	"context"

	"cabinet-keeper/internal/pkg/config"
	"cabinet-keeper/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

func redisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// Client is the durable dispatch path for rent tasks: at-least-once delivery
// backed by the task queue's own persistence and retry machinery.
type Client struct {
	client *asynq.Client
	queue  string
}

func NewClient(redisCfg config.RedisConfig, tasksCfg config.TasksConfig) *Client {
	return &Client{
		client: asynq.NewClient(redisOpt(redisCfg)),
		queue:  tasksCfg.Queue,
	}
}

func (c *Client) Name() string {
	return "taskqueue"
}

func (c *Client) DispatchRent(ctx context.Context, taskID string, cabinetID int64, userID uuid.UUID) error {
	task, err := NewRentTask(taskID, cabinetID, userID)
	if err != nil {
		return errs.Wrap(err, "failed to build rent task")
	}
	// No queue-level retries: a rent that lost the race reports a terminal
	// outcome, and the redundant dispatch paths are the retry strategy.
	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue), asynq.MaxRetry(0))
	if err != nil {
		return errs.Wrap(err, "failed to enqueue rent task")
	}
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
