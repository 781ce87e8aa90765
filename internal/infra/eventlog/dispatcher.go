package eventlog

import (
	"context"

	"github.com/google/uuid"
)

// Dispatcher adapts the producer to the rent dispatch port. It is one of the
// backup delivery paths for rent tasks.
type Dispatcher struct {
	producer *Producer
}

func NewDispatcher(producer *Producer) *Dispatcher {
	return &Dispatcher{producer: producer}
}

func (d *Dispatcher) Name() string {
	return "eventlog"
}

func (d *Dispatcher) DispatchRent(ctx context.Context, taskID string, cabinetID int64, userID uuid.UUID) error {
	return d.producer.PublishRentIntent(ctx, taskID, cabinetID, userID)
}
