package commands

import (
	"context"

	"cabinet-keeper/internal/domain/bookmark"
	"cabinet-keeper/internal/infra"
	"cabinet-keeper/internal/infra/bookmarkcache"
	"cabinet-keeper/internal/pkg/clock"
	"cabinet-keeper/internal/pkg/errs"
	"cabinet-keeper/internal/usecase/shared"

	"github.com/google/uuid"
)

// BookmarkCommands writes bookmarks to the cache only. The durable store is
// updated asynchronously by the reconciliation job via the changed set.
type BookmarkCommands interface {
	AddBookmark(ctx context.Context, userID uuid.UUID, cabinetID int64) error
	RemoveBookmark(ctx context.Context, userID uuid.UUID, cabinetID int64) error
}

type bookmarkUseCaseImpl struct {
	uow   shared.UnitOfWork
	cache *bookmarkcache.Cache
	clock clock.Clock
}

func NewBookmarkUseCase(uow shared.UnitOfWork, cache *bookmarkcache.Cache, clock clock.Clock) BookmarkCommands {
	return &bookmarkUseCaseImpl{uow: uow, cache: cache, clock: clock}
}

func (b *bookmarkUseCaseImpl) AddBookmark(ctx context.Context, userID uuid.UUID, cabinetID int64) error {
	// Bookmarkability is checked against the live cabinet row, not the cached
	// snapshot: a cabinet marked BROKEN since the last cache write must not
	// accept new bookmarks.
	snap, err := b.uow.Reads().CabinetByID(ctx, cabinetID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrCabinetNotFound
		}
		return errs.Wrap(err, "failed to load cabinet")
	}
	if !snap.Entity().Bookmarkable() {
		return ErrCabinetBroken
	}

	existing, found, err := b.cache.Get(ctx, userID, cabinetID)
	if err != nil {
		return errs.Wrap(err, "failed to read bookmark cache")
	}
	if found && existing.Status == bookmark.StatusActive {
		return ErrBookmarkExists
	}

	now := b.clock.Now()
	entry := bookmarkcache.Entry{
		UserID:    userID,
		CabinetID: cabinetID,
		Status:    bookmark.StatusActive,
		Cabinet: bookmarkcache.CachedCabinet{
			Status:  snap.Status,
			Payable: snap.Payable,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if found {
		entry.CreatedAt = existing.CreatedAt
	}
	if err := b.cache.Put(ctx, entry); err != nil {
		return errs.Wrap(err, "failed to write bookmark cache")
	}
	return nil
}

func (b *bookmarkUseCaseImpl) RemoveBookmark(ctx context.Context, userID uuid.UUID, cabinetID int64) error {
	existing, found, err := b.cache.Get(ctx, userID, cabinetID)
	if err != nil {
		return errs.Wrap(err, "failed to read bookmark cache")
	}
	if !found || existing.Status != bookmark.StatusActive {
		return ErrBookmarkNotFound
	}

	existing.Status = bookmark.StatusDeleted
	existing.UpdatedAt = b.clock.Now()
	if err := b.cache.Put(ctx, *existing); err != nil {
		return errs.Wrap(err, "failed to write bookmark cache")
	}
	return nil
}
