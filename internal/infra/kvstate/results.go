package kvstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
)

// ResultTTL bounds how long an unclaimed task outcome survives.
const ResultTTL = 5 * time.Minute

type OutcomeStatus string

const (
	OutcomeSuccess   OutcomeStatus = "success"
	OutcomeError     OutcomeStatus = "error"
	OutcomeCancelled OutcomeStatus = "cancelled"
)

// Outcome is the tagged result a task execution path records for the
// originating request to pick up.
type Outcome struct {
	Status    OutcomeStatus `json:"status"`
	Code      string        `json:"code,omitempty"`
	Message   string        `json:"message,omitempty"`
	CabinetID int64         `json:"cabinet_id"`
	UserID    uuid.UUID     `json:"user_id"`
}

func resultKey(taskID string) string {
	return "task:" + taskID + ":result"
}

func taskIndexKey(cabinetID int64) string {
	return fmt.Sprintf("cabinet:%d:task", cabinetID)
}

// ResultStore is the mailbox joining the synchronous request path with
// whichever asynchronous execution path finishes the task first.
type ResultStore struct {
	client *redis.Client
}

func NewResultStore(client *redis.Client) *ResultStore {
	return &ResultStore{client: client}
}

// Complete records a terminal outcome. Write-once: the first path to finish
// wins and later writers (a slower redundant path, a stale cancel) are
// rejected, reported by the false return.
func (s *ResultStore) Complete(ctx context.Context, taskID string, outcome Outcome) (bool, error) {
	payload, err := json.Marshal(outcome)
	if err != nil {
		return false, err
	}
	return s.client.SetNX(ctx, resultKey(taskID), payload, ResultTTL).Result()
}

func (s *ResultStore) Get(ctx context.Context, taskID string) (*Outcome, bool, error) {
	data, err := s.client.Get(ctx, resultKey(taskID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var outcome Outcome
	if err := json.Unmarshal(data, &outcome); err != nil {
		return nil, false, err
	}
	return &outcome, true, nil
}

// Await polls for the outcome until it appears or the timeout elapses.
// Absence is not an error: the caller reports "still processing".
func (s *ResultStore) Await(ctx context.Context, taskID string, timeout, interval time.Duration) (*Outcome, bool, error) {
	deadline := time.Now().Add(timeout)
	for {
		outcome, found, err := s.Get(ctx, taskID)
		if err != nil {
			return nil, false, err
		}
		if found {
			return outcome, true, nil
		}
		if time.Now().After(deadline) {
			return nil, false, nil
		}
		select {
		case <-ctx.Done():
			return nil, false, ctx.Err()
		case <-time.After(interval):
		}
	}
}

// BindTask records the authoritative task id for a cabinet, overwriting any
// previous binding. Cancellation is then a single-key operation instead of a
// pattern scan.
func (s *ResultStore) BindTask(ctx context.Context, cabinetID int64, taskID string) error {
	return s.client.Set(ctx, taskIndexKey(cabinetID), taskID, ResultTTL).Err()
}

func (s *ResultStore) CurrentTask(ctx context.Context, cabinetID int64) (string, bool, error) {
	taskID, err := s.client.Get(ctx, taskIndexKey(cabinetID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return taskID, true, nil
}

// CancelCurrent marks the cabinet's in-flight task as cancelled, best-effort.
// If the task already recorded a terminal outcome the write-once Complete
// refuses the overwrite and the cancel is a no-op.
func (s *ResultStore) CancelCurrent(ctx context.Context, cabinetID int64, userID uuid.UUID) (bool, error) {
	taskID, found, err := s.CurrentTask(ctx, cabinetID)
	if err != nil || !found {
		return false, err
	}
	stored, err := s.Complete(ctx, taskID, Outcome{
		Status:    OutcomeCancelled,
		CabinetID: cabinetID,
		UserID:    userID,
	})
	if err != nil {
		return false, err
	}
	if delErr := s.client.Del(ctx, taskIndexKey(cabinetID)).Err(); delErr != nil {
		return stored, delErr
	}
	return stored, nil
}
