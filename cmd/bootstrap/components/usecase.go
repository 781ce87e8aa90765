package components

import (
	"cabinet-keeper/internal/infra/eventlog"
	"cabinet-keeper/internal/infra/kvstate"
	"cabinet-keeper/internal/infra/tasks"
	"cabinet-keeper/internal/pkg/clock"
	"cabinet-keeper/internal/pkg/config"
	"cabinet-keeper/internal/usecase/commands"
	"cabinet-keeper/internal/usecase/queries"
	"cabinet-keeper/internal/usecase/shared"
	"cabinet-keeper/internal/worker"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) config.RentalConfig {
		return cfg.Rental
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAllocationUseCase,
		NewRentOrchestrator,
		commands.NewReturnUseCase,
		commands.NewAdminUseCase,
		commands.NewBookmarkUseCase,
		commands.NewBookmarkSyncUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCabinetQueries,
		queries.NewBookmarkQueries,
	),
)

// NewRentOrchestrator wires the three redundant execution paths: the worker
// pool is the primary, the durable queue always backs it up, and the event
// log joins when Kafka is enabled (nil producer means disabled).
func NewRentOrchestrator(
	uow shared.UnitOfWork,
	markers *kvstate.MarkerStore,
	results *kvstate.ResultStore,
	pool *worker.Pool,
	alloc commands.AllocationCommands,
	taskClient *tasks.Client,
	producer *eventlog.Producer,
	rental config.RentalConfig,
) commands.RentOrchestrator {
	primary := worker.NewDispatcher(pool, alloc)
	backups := []commands.TaskDispatcher{taskClient}
	if producer != nil {
		backups = append(backups, eventlog.NewDispatcher(producer))
	}
	return commands.NewRentOrchestrator(uow, markers, results, primary, backups, rental)
}
