//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"cabinet-keeper/internal/domain/bookmark"
	"cabinet-keeper/internal/domain/cabinet"
	"cabinet-keeper/internal/infra"
	"cabinet-keeper/internal/infra/bookmarkcache"
	"cabinet-keeper/internal/pkg/redislock"
	"cabinet-keeper/internal/usecase/commands"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncFixture struct {
	store  *fakeStore
	cache  *bookmarkcache.Cache
	locker *redislock.Locker
	client *redis.Client
	sync   commands.BookmarkSyncCommands
}

func newSyncFixture(t *testing.T) *syncFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := newFakeStore()
	cache := bookmarkcache.New(client, 12*time.Hour)
	locker := redislock.New(client)
	return &syncFixture{
		store:  store,
		cache:  cache,
		locker: locker,
		client: client,
		sync:   commands.NewBookmarkSyncUseCase(newFakeUoW(store), cache, locker),
	}
}

func (f *syncFixture) putActive(t *testing.T, userID uuid.UUID, cabinetID int64) {
	t.Helper()
	now := time.Now().Truncate(time.Second).UTC()
	require.NoError(t, f.cache.Put(context.Background(), bookmarkcache.Entry{
		UserID:    userID,
		CabinetID: cabinetID,
		Status:    bookmark.StatusActive,
		Cabinet: bookmarkcache.CachedCabinet{
			Status:  cabinet.StatusAvailable,
			Payable: true,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}))
}

func TestSyncBookmarks(t *testing.T) {
	ctx := context.Background()

	t.Run("flushes active deltas to the durable store", func(t *testing.T) {
		f := newSyncFixture(t)
		userID := uuid.New()
		f.store.addCabinet(1, cabinet.StatusAvailable, nil, nil)
		f.putActive(t, userID, 1)

		report, err := f.sync.SyncBookmarks(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Applied)
		assert.Zero(t, report.Dropped)
		assert.Zero(t, report.Retried)
		assert.False(t, report.Skipped)

		rows := f.store.bookmarkRows()
		require.Len(t, rows, 1)
		assert.Equal(t, bookmarkRow{UserID: userID, CabinetID: 1, Status: bookmark.StatusActive}, rows[0])

		pending, err := f.cache.PendingCount(ctx)
		require.NoError(t, err)
		assert.Zero(t, pending, "changed set must be drained")
	})

	t.Run("deleted delta persists the soft delete without a cabinet check", func(t *testing.T) {
		f := newSyncFixture(t)
		userID := uuid.New()
		// Deliberately no cabinet row: a deleted bookmark must sync even when
		// the cabinet vanished.
		now := time.Now().Truncate(time.Second).UTC()
		require.NoError(t, f.cache.Put(ctx, bookmarkcache.Entry{
			UserID:    userID,
			CabinetID: 1,
			Status:    bookmark.StatusDeleted,
			CreatedAt: now,
			UpdatedAt: now,
		}))

		report, err := f.sync.SyncBookmarks(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Applied)

		rows := f.store.bookmarkRows()
		require.Len(t, rows, 1)
		assert.Equal(t, bookmark.StatusDeleted, rows[0].Status)
	})

	t.Run("skips the run when another instance holds the lock", func(t *testing.T) {
		f := newSyncFixture(t)
		userID := uuid.New()
		f.store.addCabinet(1, cabinet.StatusAvailable, nil, nil)
		f.putActive(t, userID, 1)

		_, acquired, err := f.locker.TryAcquire(ctx, "bookmark_sync", 15*time.Second)
		require.NoError(t, err)
		require.True(t, acquired)

		report, err := f.sync.SyncBookmarks(ctx)
		require.NoError(t, err)
		assert.True(t, report.Skipped)
		assert.Empty(t, f.store.bookmarkRows())

		pending, err := f.cache.PendingCount(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), pending, "skipped run must leave the delta for the next one")
	})

	t.Run("drops the delta when the cache entry expired", func(t *testing.T) {
		f := newSyncFixture(t)
		userID := uuid.New()
		member := userID.String() + ":1"
		require.NoError(t, f.client.SAdd(ctx, "bookmark:changed", member).Err())

		report, err := f.sync.SyncBookmarks(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Dropped)
		assert.Empty(t, f.store.bookmarkRows())

		pending, err := f.cache.PendingCount(ctx)
		require.NoError(t, err)
		assert.Zero(t, pending)
	})

	t.Run("drops the delta when the cabinet is no longer bookmarkable", func(t *testing.T) {
		f := newSyncFixture(t)
		userID := uuid.New()
		reason := "vandalized"
		f.store.addCabinet(1, cabinet.StatusBroken, nil, &reason)
		f.putActive(t, userID, 1)

		report, err := f.sync.SyncBookmarks(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Dropped)
		assert.Empty(t, f.store.bookmarkRows())
	})

	t.Run("drops the delta when the cabinet row is gone", func(t *testing.T) {
		f := newSyncFixture(t)
		userID := uuid.New()
		f.putActive(t, userID, 1)

		report, err := f.sync.SyncBookmarks(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Dropped)
	})

	t.Run("failed persist leaves the delta for the next run", func(t *testing.T) {
		f := newSyncFixture(t)
		userID := uuid.New()
		f.store.addCabinet(1, cabinet.StatusAvailable, nil, nil)
		f.store.upsertErr = repoErr(infra.KindDBFailure, "connection reset")
		f.putActive(t, userID, 1)

		report, err := f.sync.SyncBookmarks(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Retried)

		pending, err := f.cache.PendingCount(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), pending)

		// Next run succeeds once the store recovers.
		f.store.upsertErr = nil
		report, err = f.sync.SyncBookmarks(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Applied)
		require.Len(t, f.store.bookmarkRows(), 1)
	})

	t.Run("malformed changed-set member is discarded", func(t *testing.T) {
		f := newSyncFixture(t)
		require.NoError(t, f.client.SAdd(ctx, "bookmark:changed", "not-a-uuid:12", "garbage").Err())

		report, err := f.sync.SyncBookmarks(ctx)
		require.NoError(t, err)
		assert.Zero(t, report.Applied)
		assert.Zero(t, report.Retried)

		pending, err := f.cache.PendingCount(ctx)
		require.NoError(t, err)
		assert.Zero(t, pending)
	})
}
