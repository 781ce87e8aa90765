package eventlog

import (
	"context"

	"github.com/google/uuid"
)

// Notifier is the fire-and-forget notification sink for completed returns.
type Notifier struct {
	producer *Producer
}

func NewNotifier(producer *Producer) *Notifier {
	return &Notifier{producer: producer}
}

func (n *Notifier) CabinetReturned(ctx context.Context, cabinetID int64, userID uuid.UUID) {
	n.producer.PublishReturned(ctx, cabinetID, userID)
}
