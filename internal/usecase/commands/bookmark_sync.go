package commands

import (
	"context"
	"log/slog"
	"time"

	"cabinet-keeper/internal/domain/bookmark"
	"cabinet-keeper/internal/infra"
	"cabinet-keeper/internal/infra/bookmarkcache"
	"cabinet-keeper/internal/pkg/errs"
	"cabinet-keeper/internal/pkg/redislock"
	"cabinet-keeper/internal/usecase/shared"
)

const (
	bookmarkSyncLockName = "bookmark_sync"
	bookmarkSyncLockTTL  = 15 * time.Second
)

type SyncReport struct {
	Applied int
	Dropped int
	Retried int
	Skipped bool
}

// BookmarkSyncCommands drains the changed set into the durable store. The run
// is single-flight: when another instance holds the lock the whole run is
// skipped, not queued.
type BookmarkSyncCommands interface {
	SyncBookmarks(ctx context.Context) (*SyncReport, error)
}

type bookmarkSyncUseCaseImpl struct {
	uow    shared.UnitOfWork
	cache  *bookmarkcache.Cache
	locker *redislock.Locker
}

func NewBookmarkSyncUseCase(uow shared.UnitOfWork, cache *bookmarkcache.Cache, locker *redislock.Locker) BookmarkSyncCommands {
	return &bookmarkSyncUseCaseImpl{uow: uow, cache: cache, locker: locker}
}

func (b *bookmarkSyncUseCaseImpl) SyncBookmarks(ctx context.Context) (*SyncReport, error) {
	lease, acquired, err := b.locker.TryAcquire(ctx, bookmarkSyncLockName, bookmarkSyncLockTTL)
	if err != nil {
		return nil, errs.Wrap(err, "failed to acquire sync lock")
	}
	if !acquired {
		slog.Debug("bookmark sync already running, skipping")
		return &SyncReport{Skipped: true}, nil
	}
	defer func() {
		if releaseErr := lease.Release(context.WithoutCancel(ctx)); releaseErr != nil {
			slog.Warn("failed to release sync lock", "error", releaseErr.Error())
		}
	}()

	changed, malformed, err := b.cache.Changed(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to read changed set")
	}
	for _, member := range malformed {
		slog.Warn("dropping malformed changed-set member", "member", member)
		if ackErr := b.cache.AckRaw(ctx, member); ackErr != nil {
			slog.Warn("failed to drop malformed member", "member", member, "error", ackErr.Error())
		}
	}

	report := &SyncReport{}
	for _, key := range changed {
		switch applied, err := b.syncOne(ctx, key); {
		case err != nil:
			// Entry stays in the changed set for the next run.
			slog.Warn("bookmark sync entry failed",
				"user_id", key.UserID, "cabinet_id", key.CabinetID, "error", err.Error())
			report.Retried++
		case applied:
			report.Applied++
		default:
			report.Dropped++
		}
	}
	return report, nil
}

// syncOne flushes a single delta. The false return means the entry was
// dropped without persisting: the cache entry vanished (TTL) or the cabinet
// is no longer bookmarkable.
func (b *bookmarkSyncUseCaseImpl) syncOne(ctx context.Context, key bookmarkcache.ChangedKey) (bool, error) {
	entry, found, err := b.cache.Get(ctx, key.UserID, key.CabinetID)
	if err != nil {
		return false, err
	}
	if !found {
		return false, b.cache.Ack(ctx, key)
	}

	// Re-validate against the system of record before persisting: a cabinet
	// that turned BROKEN since the cache write drops the delta entirely.
	if entry.Status == bookmark.StatusActive {
		snap, err := b.uow.Reads().CabinetByID(ctx, key.CabinetID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return false, b.cache.Ack(ctx, key)
			}
			return false, err
		}
		if !snap.Entity().Bookmarkable() {
			return false, b.cache.Ack(ctx, key)
		}
	}

	err = b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookmarks().Upsert(ctx, tx.DB(), key.UserID, key.CabinetID, entry.Status)
	})
	if err != nil {
		return false, err
	}
	return true, b.cache.Ack(ctx, key)
}
