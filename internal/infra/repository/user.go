package repository

import (
	"context"
	"log/slog"

	"cabinet-keeper/internal/infra"
	"cabinet-keeper/internal/infra/db"
	"cabinet-keeper/internal/pkg/pgconv"
	"cabinet-keeper/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.UserSnapshot, error) {
	query := `SELECT id, email, is_active FROM users WHERE id = $1`

	var snap shared.UserSnapshot
	if err := dbtx.QueryRow(ctx, query, id).Scan(&snap.ID, &snap.Email, &snap.IsActive); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "user not found", err)
		}
		return nil, infra.WrapRepoErr(slog.Default(), infra.ClassifyPgErr(err), "failed to find user", err)
	}
	return &snap, nil
}
