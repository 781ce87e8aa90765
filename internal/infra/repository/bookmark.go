package repository

import (
	"context"
	"log/slog"

	"cabinet-keeper/internal/domain/bookmark"
	"cabinet-keeper/internal/infra"
	"cabinet-keeper/internal/infra/db"

	"github.com/google/uuid"
)

type BookmarkRepository struct{}

func NewBookmarkRepository() *BookmarkRepository {
	return &BookmarkRepository{}
}

// Upsert flips the durable row for (user, cabinet) to the given status. The
// unique constraint on the pair means a previously soft-deleted row is reused
// on re-add instead of piling up duplicates.
func (r *BookmarkRepository) Upsert(ctx context.Context, dbtx db.DBTX, userID uuid.UUID, cabinetID int64, status bookmark.Status) error {
	query := `
		INSERT INTO bookmarks (user_id, cabinet_id, bookmark_status)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, cabinet_id)
		DO UPDATE SET bookmark_status = EXCLUDED.bookmark_status, updated_at = now()`

	if _, err := dbtx.Exec(ctx, query, userID, cabinetID, status.String()); err != nil {
		return infra.WrapRepoErr(slog.Default(), infra.ClassifyPgErr(err), "failed to upsert bookmark", err)
	}
	return nil
}
