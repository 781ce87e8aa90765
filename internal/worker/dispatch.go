package worker

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// RentExecutor is the domain operation the pool re-invokes. Satisfied by the
// allocation service; kept local so the pool stays free of usecase imports.
type RentExecutor interface {
	ExecuteRent(ctx context.Context, taskID string, cabinetID int64, userID uuid.UUID) error
}

// Dispatcher is the in-process primary execution path for rent tasks.
type Dispatcher struct {
	pool *Pool
	exec RentExecutor
}

func NewDispatcher(pool *Pool, exec RentExecutor) *Dispatcher {
	return &Dispatcher{pool: pool, exec: exec}
}

func (d *Dispatcher) Name() string {
	return "workerpool"
}

func (d *Dispatcher) DispatchRent(ctx context.Context, taskID string, cabinetID int64, userID uuid.UUID) error {
	return d.pool.Enqueue(Task{
		Name: fmt.Sprintf("cabinet:rent:%d", cabinetID),
		Run: func(runCtx context.Context) error {
			return d.exec.ExecuteRent(runCtx, taskID, cabinetID, userID)
		},
	})
}
