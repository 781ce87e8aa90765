package redislock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
)

const keyPrefix = "lock:"

// releaseScript deletes the lock key only while the caller still owns it.
// The GET/DEL pair must run atomically or a holder could delete a lock that
// expired and was re-acquired by someone else in between.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
else
    return 0
end
`)

// Locker hands out TTL-bound mutual-exclusion leases backed by Redis.
// Acquisition is a single SET NX PX carrying a random ownership token.
type Locker struct {
	client *redis.Client
}

func New(client *redis.Client) *Locker {
	return &Locker{client: client}
}

// TryAcquire attempts to take the named lock without waiting. A false result
// means another holder is active; callers treat it as "resource busy".
func (l *Locker) TryAcquire(ctx context.Context, name string, ttl time.Duration) (*Lease, bool, error) {
	token := uuid.NewString()
	key := keyPrefix + name

	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	return &Lease{client: l.client, key: key, token: token}, true, nil
}

// Lease is a held lock. Release is safe to call on every exit path: once the
// TTL has fired and the lock moved on, the compare-and-delete is a no-op.
type Lease struct {
	client *redis.Client
	key    string
	token  string
}

func (le *Lease) Release(ctx context.Context) error {
	_, err := releaseScript.Run(ctx, le.client, []string{le.key}, le.token).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}
