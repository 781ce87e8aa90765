package queries

import (
	"context"

	"cabinet-keeper/internal/domain/cabinet"
)

type CabinetViewRepo interface {
	FindByID(ctx context.Context, id int64) (*CabinetView, error)
	FindAll(ctx context.Context, status *cabinet.Status) ([]*CabinetView, error)
	FindRentalsByCabinet(ctx context.Context, cabinetID int64, limit int32) ([]*RentalView, error)
	CountByStatus(ctx context.Context) (*CabinetStatistics, error)
}

type CabinetQueries interface {
	GetByID(ctx context.Context, id int64) (*CabinetView, error)
	List(ctx context.Context, status *cabinet.Status) ([]*CabinetView, error)
	RentalHistory(ctx context.Context, cabinetID int64, limit int) ([]*RentalView, error)
	Statistics(ctx context.Context) (*CabinetStatistics, error)
}

type cabinetQueriesImpl struct {
	repo CabinetViewRepo
}

func NewCabinetQueries(repo CabinetViewRepo) CabinetQueries {
	return &cabinetQueriesImpl{repo: repo}
}

func (q *cabinetQueriesImpl) GetByID(ctx context.Context, id int64) (*CabinetView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *cabinetQueriesImpl) List(ctx context.Context, status *cabinet.Status) ([]*CabinetView, error) {
	return q.repo.FindAll(ctx, status)
}

func (q *cabinetQueriesImpl) RentalHistory(ctx context.Context, cabinetID int64, limit int) ([]*RentalView, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return q.repo.FindRentalsByCabinet(ctx, cabinetID, int32(limit))
}

func (q *cabinetQueriesImpl) Statistics(ctx context.Context) (*CabinetStatistics, error) {
	return q.repo.CountByStatus(ctx)
}
