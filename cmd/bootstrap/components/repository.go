package components

import (
	"cabinet-keeper/internal/infra/db"
	"cabinet-keeper/internal/infra/readstore"
	"cabinet-keeper/internal/infra/uow"
	"cabinet-keeper/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			readstore.NewCabinetReadStore,
			fx.As(new(queries.CabinetViewRepo)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
