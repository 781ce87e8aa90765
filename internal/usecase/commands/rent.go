package commands

import (
	"context"
	"log/slog"

	"cabinet-keeper/internal/infra"
	"cabinet-keeper/internal/infra/kvstate"
	"cabinet-keeper/internal/pkg/config"
	"cabinet-keeper/internal/pkg/errs"
	"cabinet-keeper/internal/usecase/shared"

	"github.com/google/uuid"
)

type RentStatus string

const (
	RentStatusSuccess RentStatus = "success"
	// RentStatusProcessing means no execution path settled within the bounded
	// wait. It is a valid terminal response, not an error.
	RentStatusProcessing RentStatus = "processing"
)

type RentTicket struct {
	Status    RentStatus
	TaskID    string
	CabinetID int64
}

// RentOrchestrator is the synchronous client-facing entry for rentals. It
// admits the attempt via the advisory markers, fans the task out to the
// redundant execution paths and joins on the result store.
type RentOrchestrator interface {
	RequestRent(ctx context.Context, cabinetID int64, userID uuid.UUID) (*RentTicket, error)
}

type rentOrchestratorImpl struct {
	uow     shared.UnitOfWork
	markers *kvstate.MarkerStore
	results *kvstate.ResultStore
	primary TaskDispatcher
	backups []TaskDispatcher
	rental  config.RentalConfig
}

func NewRentOrchestrator(
	uow shared.UnitOfWork,
	markers *kvstate.MarkerStore,
	results *kvstate.ResultStore,
	primary TaskDispatcher,
	backups []TaskDispatcher,
	rental config.RentalConfig,
) RentOrchestrator {
	return &rentOrchestratorImpl{
		uow:     uow,
		markers: markers,
		results: results,
		primary: primary,
		backups: backups,
		rental:  rental,
	}
}

func (r *rentOrchestratorImpl) RequestRent(ctx context.Context, cabinetID int64, userID uuid.UUID) (*RentTicket, error) {
	admitted, err := r.markers.MarkProcessing(ctx, cabinetID, userID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to mark processing")
	}
	if !admitted {
		return nil, ErrRentInProgress
	}

	if err := r.markers.SetStatus(ctx, cabinetID, kvstate.PhaseRenting, userID, kvstate.RentingTTL); err != nil {
		r.clearMarkers(ctx, cabinetID)
		return nil, errs.Wrap(err, "failed to set renting status")
	}

	user, err := r.uow.Reads().UserByID(ctx, userID)
	if err != nil {
		r.clearMarkers(ctx, cabinetID)
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Wrap(err, "failed to resolve user")
	}
	if !user.IsActive {
		r.clearMarkers(ctx, cabinetID)
		return nil, ErrUserNotFound
	}

	// Fail fast before dispatching; RentCabinet re-checks inside the
	// transaction where the unique index has the final say.
	open, err := r.uow.Reads().OpenRentalByUser(ctx, userID)
	if err != nil && !infra.IsKind(err, infra.KindNotFound) {
		r.clearMarkers(ctx, cabinetID)
		return nil, errs.Wrap(err, "failed to check open rental")
	}
	if open != nil {
		r.clearMarkers(ctx, cabinetID)
		return nil, ErrUserHasRental
	}

	taskID := uuid.NewString()
	if err := r.results.BindTask(ctx, cabinetID, taskID); err != nil {
		slog.Warn("failed to bind task id", "cabinet_id", cabinetID, "task_id", taskID, "error", err.Error())
	}

	// The primary path must accept the task; the backups are redundancy and
	// their dispatch failures are logged and swallowed.
	if err := r.primary.DispatchRent(ctx, taskID, cabinetID, userID); err != nil {
		r.clearMarkers(ctx, cabinetID)
		return nil, errs.Mark(errs.Wrap(err, "primary dispatch failed"), ErrRentFailed)
	}
	for _, backup := range r.backups {
		if err := backup.DispatchRent(ctx, taskID, cabinetID, userID); err != nil {
			slog.Warn("backup dispatch failed",
				"dispatcher", backup.Name(), "cabinet_id", cabinetID, "task_id", taskID, "error", err.Error())
		}
	}

	outcome, found, err := r.results.Await(ctx, taskID, r.rental.DispatchWait, r.rental.PollInterval)
	if err != nil {
		return nil, errs.Wrap(err, "failed to await task outcome")
	}
	if !found {
		// Still in flight; a path will settle it and the markers will report
		// progress until then.
		return &RentTicket{Status: RentStatusProcessing, TaskID: taskID, CabinetID: cabinetID}, nil
	}

	switch outcome.Status {
	case kvstate.OutcomeSuccess:
		if err := r.markers.SetStatus(ctx, cabinetID, kvstate.PhaseRented, userID, kvstate.RentedTTL); err != nil {
			slog.Warn("failed to set rented status", "cabinet_id", cabinetID, "error", err.Error())
		}
		return &RentTicket{Status: RentStatusSuccess, TaskID: taskID, CabinetID: cabinetID}, nil
	case kvstate.OutcomeCancelled:
		if err := r.markers.ClearStatus(ctx, cabinetID); err != nil {
			slog.Warn("failed to clear status marker", "cabinet_id", cabinetID, "error", err.Error())
		}
		return nil, ErrRentFailed
	default:
		if err := r.markers.ClearStatus(ctx, cabinetID); err != nil {
			slog.Warn("failed to clear status marker", "cabinet_id", cabinetID, "error", err.Error())
		}
		return nil, ErrorForCode(outcome.Code)
	}
}

func (r *rentOrchestratorImpl) clearMarkers(ctx context.Context, cabinetID int64) {
	ctx = context.WithoutCancel(ctx)
	if err := r.markers.ClearProcessing(ctx, cabinetID); err != nil {
		slog.Warn("failed to clear processing marker", "cabinet_id", cabinetID, "error", err.Error())
	}
	if err := r.markers.ClearStatus(ctx, cabinetID); err != nil {
		slog.Warn("failed to clear status marker", "cabinet_id", cabinetID, "error", err.Error())
	}
}
