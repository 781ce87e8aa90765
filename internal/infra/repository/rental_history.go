package repository

import (
	"context"
	"log/slog"
	"time"

	"cabinet-keeper/internal/infra"
	"cabinet-keeper/internal/infra/db"
	"cabinet-keeper/internal/pkg/pgconv"
	"cabinet-keeper/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const rentalColumns = `id, user_id, cabinet_id, created_at, expires_at, ended_at`

// RentalHistoryRepository is the append-oriented rental ledger. Open entries
// (ended_at IS NULL) are guarded by partial unique indexes per cabinet and
// per user, so a racing insert loses with KindDuplicateKey.
type RentalHistoryRepository struct{}

func NewRentalHistoryRepository() *RentalHistoryRepository {
	return &RentalHistoryRepository{}
}

func (r *RentalHistoryRepository) CreateOpen(ctx context.Context, dbtx db.DBTX, userID uuid.UUID, cabinetID int64, expiresAt time.Time) (uuid.UUID, error) {
	query := `
		INSERT INTO rental_histories (user_id, cabinet_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id uuid.UUID
	if err := dbtx.QueryRow(ctx, query, userID, cabinetID, expiresAt).Scan(&id); err != nil {
		return uuid.Nil, infra.WrapRepoErr(slog.Default(), infra.ClassifyPgErr(err), "failed to create rental history", err)
	}
	return id, nil
}

func (r *RentalHistoryRepository) CloseOpenByCabinet(ctx context.Context, dbtx db.DBTX, cabinetID int64, endedAt time.Time) (bool, error) {
	query := `
		UPDATE rental_histories
		SET ended_at = $2
		WHERE cabinet_id = $1 AND ended_at IS NULL`

	tag, err := dbtx.Exec(ctx, query, cabinetID, endedAt)
	if err != nil {
		return false, infra.WrapRepoErr(slog.Default(), infra.ClassifyPgErr(err), "failed to close rental history", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *RentalHistoryRepository) FindOpenByUser(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) (*shared.RentalSnapshot, error) {
	query := `SELECT ` + rentalColumns + ` FROM rental_histories WHERE user_id = $1 AND ended_at IS NULL`

	snap, err := scanRental(dbtx.QueryRow(ctx, query, userID))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "open rental not found", err)
		}
		return nil, infra.WrapRepoErr(slog.Default(), infra.ClassifyPgErr(err), "failed to find open rental by user", err)
	}
	return snap, nil
}

func (r *RentalHistoryRepository) ListExpiredOpen(ctx context.Context, dbtx db.DBTX, asOf time.Time) ([]*shared.RentalSnapshot, error) {
	query := `SELECT ` + rentalColumns + ` FROM rental_histories WHERE ended_at IS NULL AND expires_at < $1`

	rows, err := dbtx.Query(ctx, query, asOf)
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.ClassifyPgErr(err), "failed to list expired open rentals", err)
	}
	defer rows.Close()

	var result []*shared.RentalSnapshot
	for rows.Next() {
		snap, err := scanRental(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to scan expired rental", err)
		}
		result = append(result, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to iterate expired rentals", err)
	}
	return result, nil
}

func scanRental(row pgx.Row) (*shared.RentalSnapshot, error) {
	var (
		id        uuid.UUID
		userID    uuid.UUID
		cabinetID int64
		createdAt pgtype.Timestamptz
		expiresAt pgtype.Timestamptz
		endedAt   pgtype.Timestamptz
	)
	if err := row.Scan(&id, &userID, &cabinetID, &createdAt, &expiresAt, &endedAt); err != nil {
		return nil, err
	}
	return &shared.RentalSnapshot{
		ID:        id,
		UserID:    userID,
		CabinetID: cabinetID,
		CreatedAt: pgconv.TimeFromPgtype(createdAt),
		ExpiresAt: pgconv.TimeFromPgtype(expiresAt),
		EndedAt:   pgconv.TimePtrFromPgtype(endedAt),
	}, nil
}
