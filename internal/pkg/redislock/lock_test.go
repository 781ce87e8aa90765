//go:build unit

package redislock_test

import (
	"context"
	"testing"
	"time"

	"cabinet-keeper/internal/pkg/redislock"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocker(t *testing.T) (*redislock.Locker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redislock.New(client), mr
}

func TestTryAcquire(t *testing.T) {
	t.Run("first caller acquires, second is rejected", func(t *testing.T) {
		locker, _ := newLocker(t)
		ctx := context.Background()

		lease, acquired, err := locker.TryAcquire(ctx, "cabinet:1:rent", 30*time.Second)
		require.NoError(t, err)
		require.True(t, acquired)
		require.NotNil(t, lease)

		_, acquired, err = locker.TryAcquire(ctx, "cabinet:1:rent", 30*time.Second)
		require.NoError(t, err)
		assert.False(t, acquired, "held lock must not be re-acquired")
	})

	t.Run("different names do not contend", func(t *testing.T) {
		locker, _ := newLocker(t)
		ctx := context.Background()

		_, acquired, err := locker.TryAcquire(ctx, "cabinet:1:rent", 30*time.Second)
		require.NoError(t, err)
		require.True(t, acquired)

		_, acquired, err = locker.TryAcquire(ctx, "cabinet:2:rent", 30*time.Second)
		require.NoError(t, err)
		assert.True(t, acquired)
	})

	t.Run("lock becomes acquirable after TTL expiry", func(t *testing.T) {
		locker, mr := newLocker(t)
		ctx := context.Background()

		_, acquired, err := locker.TryAcquire(ctx, "cabinet:1:rent", 30*time.Second)
		require.NoError(t, err)
		require.True(t, acquired)

		mr.FastForward(31 * time.Second)

		_, acquired, err = locker.TryAcquire(ctx, "cabinet:1:rent", 30*time.Second)
		require.NoError(t, err)
		assert.True(t, acquired, "expired lock should be free")
	})
}

func TestRelease(t *testing.T) {
	t.Run("release frees the lock for the next caller", func(t *testing.T) {
		locker, _ := newLocker(t)
		ctx := context.Background()

		lease, acquired, err := locker.TryAcquire(ctx, "cabinet:1:return", 10*time.Second)
		require.NoError(t, err)
		require.True(t, acquired)

		require.NoError(t, lease.Release(ctx))

		_, acquired, err = locker.TryAcquire(ctx, "cabinet:1:return", 10*time.Second)
		require.NoError(t, err)
		assert.True(t, acquired)
	})

	t.Run("stale release does not delete a successor's lock", func(t *testing.T) {
		locker, mr := newLocker(t)
		ctx := context.Background()

		staleLease, acquired, err := locker.TryAcquire(ctx, "cabinet:1:rent", 30*time.Second)
		require.NoError(t, err)
		require.True(t, acquired)

		// the original lease expires and someone else takes the lock
		mr.FastForward(31 * time.Second)
		_, acquired, err = locker.TryAcquire(ctx, "cabinet:1:rent", 30*time.Second)
		require.NoError(t, err)
		require.True(t, acquired)

		require.NoError(t, staleLease.Release(ctx))

		_, acquired, err = locker.TryAcquire(ctx, "cabinet:1:rent", 30*time.Second)
		require.NoError(t, err)
		assert.False(t, acquired, "successor's lock must survive the stale release")
	})

	t.Run("release is idempotent", func(t *testing.T) {
		locker, _ := newLocker(t)
		ctx := context.Background()

		lease, acquired, err := locker.TryAcquire(ctx, "cabinet:1:rent", 30*time.Second)
		require.NoError(t, err)
		require.True(t, acquired)

		require.NoError(t, lease.Release(ctx))
		require.NoError(t, lease.Release(ctx))
	})
}
