package readstore

import (
	"context"
	"log/slog"

	"cabinet-keeper/internal/domain/cabinet"
	"cabinet-keeper/internal/infra"
	"cabinet-keeper/internal/infra/db"
	"cabinet-keeper/internal/pkg/pgconv"
	"cabinet-keeper/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type CabinetReadStore struct {
	db db.DBTX
}

func NewCabinetReadStore(dbtx db.DBTX) *CabinetReadStore {
	return &CabinetReadStore{db: dbtx}
}

const cabinetViewColumns = `id, status, holder_id, payable, reason, created_at, updated_at`

func (r *CabinetReadStore) FindByID(ctx context.Context, id int64) (*queries.CabinetView, error) {
	query := `SELECT ` + cabinetViewColumns + ` FROM cabinets WHERE id = $1 AND deleted_at IS NULL`

	view, err := scanCabinetView(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "cabinet not found", err)
		}
		return nil, infra.WrapRepoErr(slog.Default(), infra.ClassifyPgErr(err), "failed to find cabinet", err)
	}
	return view, nil
}

func (r *CabinetReadStore) FindAll(ctx context.Context, status *cabinet.Status) ([]*queries.CabinetView, error) {
	query := `SELECT ` + cabinetViewColumns + ` FROM cabinets WHERE deleted_at IS NULL`
	args := []any{}
	if status != nil {
		query += ` AND status = $1`
		args = append(args, status.String())
	}
	query += ` ORDER BY id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.ClassifyPgErr(err), "failed to list cabinets", err)
	}
	defer rows.Close()

	var views []*queries.CabinetView
	for rows.Next() {
		view, err := scanCabinetView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(slog.Default(), infra.ClassifyPgErr(err), "failed to scan cabinet row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.ClassifyPgErr(err), "failed to iterate cabinet rows", err)
	}
	return views, nil
}

func (r *CabinetReadStore) FindRentalsByCabinet(ctx context.Context, cabinetID int64, limit int32) ([]*queries.RentalView, error) {
	query := `
		SELECT rh.id, rh.user_id, u.email, rh.cabinet_id, rh.created_at, rh.expires_at, rh.ended_at
		FROM rental_histories rh
		JOIN users u ON u.id = rh.user_id
		WHERE rh.cabinet_id = $1
		ORDER BY rh.created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, cabinetID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.ClassifyPgErr(err), "failed to list rental history", err)
	}
	defer rows.Close()

	var views []*queries.RentalView
	for rows.Next() {
		var (
			view      queries.RentalView
			createdAt pgtype.Timestamptz
			expiresAt pgtype.Timestamptz
			endedAt   pgtype.Timestamptz
		)
		if err := rows.Scan(&view.ID, &view.UserID, &view.UserEmail, &view.CabinetID, &createdAt, &expiresAt, &endedAt); err != nil {
			return nil, infra.WrapRepoErr(slog.Default(), infra.ClassifyPgErr(err), "failed to scan rental row", err)
		}
		view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		view.ExpiresAt = pgconv.TimeFromPgtype(expiresAt)
		view.EndedAt = pgconv.TimePtrFromPgtype(endedAt)
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.ClassifyPgErr(err), "failed to iterate rental rows", err)
	}
	return views, nil
}

func (r *CabinetReadStore) CountByStatus(ctx context.Context) (*queries.CabinetStatistics, error) {
	query := `
		SELECT
			count(*),
			count(*) FILTER (WHERE status = 'AVAILABLE'),
			count(*) FILTER (WHERE status = 'USING'),
			count(*) FILTER (WHERE status = 'BROKEN'),
			count(*) FILTER (WHERE status = 'OVERDUE')
		FROM cabinets
		WHERE deleted_at IS NULL`

	var stats queries.CabinetStatistics
	err := r.db.QueryRow(ctx, query).Scan(&stats.Total, &stats.Available, &stats.Using, &stats.Broken, &stats.Overdue)
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.ClassifyPgErr(err), "failed to count cabinets", err)
	}
	return &stats, nil
}

func scanCabinetView(row pgx.Row) (*queries.CabinetView, error) {
	var (
		view      queries.CabinetView
		holderID  pgtype.UUID
		reason    pgtype.Text
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(&view.ID, &view.Status, &holderID, &view.Payable, &reason, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	view.HolderID = pgconv.UUIDPtrFromPgtype(holderID)
	view.Reason = pgconv.StringPtrFromPgtype(reason)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}
