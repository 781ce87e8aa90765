package repository

import (
	"context"
	"log/slog"

	"cabinet-keeper/internal/domain/cabinet"
	"cabinet-keeper/internal/infra"
	"cabinet-keeper/internal/infra/db"
	"cabinet-keeper/internal/pkg/pgconv"
	"cabinet-keeper/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const cabinetColumns = `id, status, holder_id, payable, reason, created_at, updated_at, deleted_at`

type CabinetRepository struct{}

func NewCabinetRepository() *CabinetRepository {
	return &CabinetRepository{}
}

func (r *CabinetRepository) FindByID(ctx context.Context, dbtx db.DBTX, id int64) (*shared.CabinetSnapshot, error) {
	query := `SELECT ` + cabinetColumns + ` FROM cabinets WHERE id = $1 AND deleted_at IS NULL`

	snap, err := scanCabinet(dbtx.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "cabinet not found", err)
		}
		return nil, infra.WrapRepoErr(slog.Default(), infra.ClassifyPgErr(err), "failed to find cabinet", err)
	}
	return snap, nil
}

// FindByIDForUpdate locks the row with NOWAIT so a concurrent mutation fails
// fast (KindRowLocked) instead of queueing behind the other transaction.
func (r *CabinetRepository) FindByIDForUpdate(ctx context.Context, dbtx db.DBTX, id int64) (*shared.CabinetSnapshot, error) {
	query := `SELECT ` + cabinetColumns + ` FROM cabinets WHERE id = $1 AND deleted_at IS NULL FOR UPDATE NOWAIT`

	snap, err := scanCabinet(dbtx.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "cabinet not found", err)
		}
		return nil, infra.WrapRepoErr(slog.Default(), infra.ClassifyPgErr(err), "failed to lock cabinet row", err)
	}
	return snap, nil
}

func (r *CabinetRepository) UpdateState(ctx context.Context, dbtx db.DBTX, id int64, status cabinet.Status, holderID *uuid.UUID, reason *string) error {
	query := `
		UPDATE cabinets
		SET status = $2, holder_id = $3, reason = $4, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := dbtx.Exec(ctx, query, id, status.String(), pgconv.UUIDPtrToPgtype(holderID), pgconv.StringPtrToPgtype(reason))
	if err != nil {
		return infra.WrapRepoErr(slog.Default(), infra.ClassifyPgErr(err), "failed to update cabinet state", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "cabinet not found", pgx.ErrNoRows)
	}
	return nil
}

func scanCabinet(row pgx.Row) (*shared.CabinetSnapshot, error) {
	var (
		id        int64
		status    string
		holderID  pgtype.UUID
		payable   bool
		reason    pgtype.Text
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
		deletedAt pgtype.Timestamptz
	)
	if err := row.Scan(&id, &status, &holderID, &payable, &reason, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, err
	}
	return &shared.CabinetSnapshot{
		ID:        id,
		Status:    cabinet.Status(status),
		HolderID:  pgconv.UUIDPtrFromPgtype(holderID),
		Payable:   payable,
		Reason:    pgconv.StringPtrFromPgtype(reason),
		CreatedAt: pgconv.TimeFromPgtype(createdAt),
		UpdatedAt: pgconv.TimeFromPgtype(updatedAt),
		DeletedAt: pgconv.TimePtrFromPgtype(deletedAt),
	}, nil
}
