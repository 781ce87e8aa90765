package queries

import (
	"context"
	"sort"

	"cabinet-keeper/internal/domain/bookmark"
	"cabinet-keeper/internal/domain/cabinet"
	"cabinet-keeper/internal/infra/bookmarkcache"

	"github.com/google/uuid"
)

// BookmarkQueries serves exclusively from the cache: the durable store is an
// audit/backup copy, not the read path.
type BookmarkQueries interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookmarkView, error)
}

type bookmarkQueriesImpl struct {
	cache *bookmarkcache.Cache
}

func NewBookmarkQueries(cache *bookmarkcache.Cache) BookmarkQueries {
	return &bookmarkQueriesImpl{cache: cache}
}

func (q *bookmarkQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookmarkView, error) {
	entries, err := q.cache.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]*BookmarkView, 0, len(entries))
	for _, entry := range entries {
		if entry.Status != bookmark.StatusActive {
			continue
		}
		// A cabinet that broke after being bookmarked is hidden from the
		// list until the cached snapshot refreshes.
		if entry.Cabinet.Status == cabinet.StatusBroken {
			continue
		}
		views = append(views, &BookmarkView{
			UserID:        entry.UserID,
			CabinetID:     entry.CabinetID,
			CabinetStatus: entry.Cabinet.Status.String(),
			Payable:       entry.Cabinet.Payable,
			CreatedAt:     entry.CreatedAt,
			UpdatedAt:     entry.UpdatedAt,
		})
	}

	// SCAN order is unspecified; pin a stable order for callers.
	sort.Slice(views, func(i, j int) bool { return views[i].CabinetID < views[j].CabinetID })
	return views, nil
}
