package tasks

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Task type names routed by the asynq mux.
const (
	TypeRentCabinet  = "cabinet:rent"
	TypeOverdueSweep = "cabinet:overdue_sweep"
	TypeBookmarkSync = "bookmark:sync"
)

type RentPayload struct {
	TaskID    string    `json:"task_id"`
	CabinetID int64     `json:"cabinet_id"`
	UserID    uuid.UUID `json:"user_id"`
}

func NewRentTask(taskID string, cabinetID int64, userID uuid.UUID) (*asynq.Task, error) {
	payload, err := json.Marshal(RentPayload{TaskID: taskID, CabinetID: cabinetID, UserID: userID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeRentCabinet, payload), nil
}
