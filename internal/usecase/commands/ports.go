package commands

import (
	"context"

	"github.com/google/uuid"
)

// TaskDispatcher hands a rent task to an execution path. The orchestrator
// holds one primary dispatcher and any number of backups; a backup failure is
// logged and swallowed, a primary failure aborts the request.
type TaskDispatcher interface {
	Name() string
	DispatchRent(ctx context.Context, taskID string, cabinetID int64, userID uuid.UUID) error
}

// Notifier receives best-effort domain notifications. Failures never affect
// the command outcome.
type Notifier interface {
	CabinetReturned(ctx context.Context, cabinetID int64, userID uuid.UUID)
}
