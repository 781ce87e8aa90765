package kvstate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
)

// Default TTLs for the advisory markers. Markers are hints for fast-fail and
// progress reporting; losing one to expiry never violates correctness.
const (
	ProcessingTTL = 15 * time.Second
	RentingTTL    = 60 * time.Second
	RentedTTL     = time.Hour
)

type Phase string

const (
	PhaseRenting Phase = "renting"
	PhaseRented  Phase = "rented"
)

var errMalformedStatus = errors.New("malformed status marker")

func processingKey(cabinetID int64) string {
	return fmt.Sprintf("cabinet:%d:processing", cabinetID)
}

func statusKey(cabinetID int64) string {
	return fmt.Sprintf("cabinet:%d:status", cabinetID)
}

// MarkerStore tracks per-cabinet "processing" and "status" markers in Redis.
type MarkerStore struct {
	client *redis.Client
}

func NewMarkerStore(client *redis.Client) *MarkerStore {
	return &MarkerStore{client: client}
}

// MarkProcessing admits a rent attempt. The SET NX makes admission atomic:
// a false result means another attempt on the same cabinet is in flight.
func (s *MarkerStore) MarkProcessing(ctx context.Context, cabinetID int64, userID uuid.UUID) (bool, error) {
	return s.client.SetNX(ctx, processingKey(cabinetID), userID.String(), ProcessingTTL).Result()
}

func (s *MarkerStore) ClearProcessing(ctx context.Context, cabinetID int64) error {
	return s.client.Del(ctx, processingKey(cabinetID)).Err()
}

func (s *MarkerStore) SetStatus(ctx context.Context, cabinetID int64, phase Phase, userID uuid.UUID, ttl time.Duration) error {
	value := string(phase) + ":" + userID.String()
	return s.client.Set(ctx, statusKey(cabinetID), value, ttl).Err()
}

// Status returns the current phase marker. The third result is false when no
// marker exists (expired or never set).
func (s *MarkerStore) Status(ctx context.Context, cabinetID int64) (Phase, uuid.UUID, bool, error) {
	value, err := s.client.Get(ctx, statusKey(cabinetID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", uuid.Nil, false, nil
	}
	if err != nil {
		return "", uuid.Nil, false, err
	}

	phase, rawUser, found := strings.Cut(value, ":")
	if !found {
		return "", uuid.Nil, false, errMalformedStatus
	}
	user, err := uuid.Parse(rawUser)
	if err != nil {
		return "", uuid.Nil, false, errMalformedStatus
	}
	return Phase(phase), user, true, nil
}

func (s *MarkerStore) ClearStatus(ctx context.Context, cabinetID int64) error {
	return s.client.Del(ctx, statusKey(cabinetID)).Err()
}

// AwaitRentSettled polls until the status marker is no longer "renting" or the
// timeout elapses. It returns true once the marker has settled; false means a
// rent was still completing when time ran out.
func (s *MarkerStore) AwaitRentSettled(ctx context.Context, cabinetID int64, timeout, interval time.Duration) (bool, error) {
	deadline := time.Now().Add(timeout)
	for {
		phase, _, found, err := s.Status(ctx, cabinetID)
		if err != nil {
			return false, err
		}
		if !found || phase != PhaseRenting {
			return true, nil
		}
		if time.Now().After(deadline) {
			return false, nil
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(interval):
		}
	}
}
