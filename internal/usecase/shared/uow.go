package shared

import (
	"context"
	"time"

	"cabinet-keeper/internal/domain/bookmark"
	"cabinet-keeper/internal/domain/cabinet"
	"cabinet-keeper/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Reads: Direct access to command reads outside transactions
	Reads() CommandReads
}

type Tx interface {
	Cabinets() CabinetRepository
	Rentals() RentalHistoryRepository
	Bookmarks() BookmarkRepository
	Users() UserRepository
	DB() db.DBTX
}

type CommandReads interface {
	CabinetByID(ctx context.Context, id int64) (*CabinetSnapshot, error)
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
	OpenRentalByUser(ctx context.Context, userID uuid.UUID) (*RentalSnapshot, error)
	ExpiredOpenRentals(ctx context.Context, asOf time.Time) ([]*RentalSnapshot, error)
}

type CabinetRepository interface {
	FindByID(ctx context.Context, db db.DBTX, id int64) (*CabinetSnapshot, error)
	// FindByIDForUpdate takes the row lock with NOWAIT semantics; a row held
	// by a concurrent transaction surfaces as KindRowLocked instead of blocking.
	FindByIDForUpdate(ctx context.Context, db db.DBTX, id int64) (*CabinetSnapshot, error)
	UpdateState(ctx context.Context, db db.DBTX, id int64, status cabinet.Status, holderID *uuid.UUID, reason *string) error
}

type RentalHistoryRepository interface {
	CreateOpen(ctx context.Context, db db.DBTX, userID uuid.UUID, cabinetID int64, expiresAt time.Time) (uuid.UUID, error)
	// CloseOpenByCabinet sets ended_at on the cabinet's open entry. The false
	// return means no open entry existed, which callers log rather than abort on.
	CloseOpenByCabinet(ctx context.Context, db db.DBTX, cabinetID int64, endedAt time.Time) (bool, error)
	FindOpenByUser(ctx context.Context, db db.DBTX, userID uuid.UUID) (*RentalSnapshot, error)
	ListExpiredOpen(ctx context.Context, db db.DBTX, asOf time.Time) ([]*RentalSnapshot, error)
}

type BookmarkRepository interface {
	// Upsert reuses the soft-deleted row for the (user, cabinet) pair when one
	// exists, so re-adding a removed bookmark never creates a duplicate.
	Upsert(ctx context.Context, db db.DBTX, userID uuid.UUID, cabinetID int64, status bookmark.Status) error
}

type UserRepository interface {
	FindByID(ctx context.Context, db db.DBTX, id uuid.UUID) (*UserSnapshot, error)
}
