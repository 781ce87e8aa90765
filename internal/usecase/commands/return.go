package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cabinet-keeper/internal/domain/cabinet"
	"cabinet-keeper/internal/infra"
	"cabinet-keeper/internal/infra/kvstate"
	"cabinet-keeper/internal/pkg/clock"
	"cabinet-keeper/internal/pkg/config"
	"cabinet-keeper/internal/pkg/errs"
	"cabinet-keeper/internal/pkg/redislock"
	"cabinet-keeper/internal/usecase/shared"

	"github.com/google/uuid"
)

const returnLockTTL = 10 * time.Second

func returnLockName(cabinetID int64) string {
	return fmt.Sprintf("cabinet:%d:return", cabinetID)
}

// ReturnCommands handles the synchronous return flow. Returns are not
// multi-path-dispatched: the caller holds the cabinet, so there is no
// contention to absorb with redundancy.
type ReturnCommands interface {
	ReturnCabinet(ctx context.Context, cabinetID int64, userID uuid.UUID) (*shared.CabinetSnapshot, error)
}

type returnUseCaseImpl struct {
	uow      shared.UnitOfWork
	locker   *redislock.Locker
	markers  *kvstate.MarkerStore
	results  *kvstate.ResultStore
	notifier Notifier
	clock    clock.Clock
	rental   config.RentalConfig
}

func NewReturnUseCase(
	uow shared.UnitOfWork,
	locker *redislock.Locker,
	markers *kvstate.MarkerStore,
	results *kvstate.ResultStore,
	notifier Notifier,
	clock clock.Clock,
	rental config.RentalConfig,
) ReturnCommands {
	return &returnUseCaseImpl{
		uow:      uow,
		locker:   locker,
		markers:  markers,
		results:  results,
		notifier: notifier,
		clock:    clock,
		rental:   rental,
	}
}

func (r *returnUseCaseImpl) ReturnCabinet(ctx context.Context, cabinetID int64, userID uuid.UUID) (*shared.CabinetSnapshot, error) {
	settled, err := r.markers.AwaitRentSettled(ctx, cabinetID, r.rental.ReturnWait, r.rental.ReturnPoll)
	if err != nil {
		return nil, errs.Wrap(err, "failed to await rent settlement")
	}
	if !settled {
		return nil, ErrReturnInProgress
	}

	// The system of record decides; the marker is only checked to log a
	// divergence when it claims a rental the store does not show.
	snap, err := r.uow.Reads().CabinetByID(ctx, cabinetID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCabinetNotFound
		}
		return nil, errs.Wrap(err, "failed to load cabinet")
	}
	if !snap.Status.RequiresHolder() {
		phase, markerUser, found, markerErr := r.markers.Status(ctx, cabinetID)
		if markerErr == nil && found && phase == kvstate.PhaseRented {
			slog.Warn("status marker diverges from system of record",
				"cabinet_id", cabinetID, "marker_phase", string(phase), "marker_user", markerUser,
				"store_status", string(snap.Status))
		}
		return nil, ErrCabinetNotRented
	}

	lease, acquired, err := r.locker.TryAcquire(ctx, returnLockName(cabinetID), returnLockTTL)
	if err != nil {
		return nil, errs.Wrap(err, "failed to acquire return lock")
	}
	if !acquired {
		return nil, ErrLockBusy
	}
	defer func() {
		if releaseErr := lease.Release(context.WithoutCancel(ctx)); releaseErr != nil {
			slog.Warn("failed to release return lock", "cabinet_id", cabinetID, "error", releaseErr.Error())
		}
	}()

	var returned *shared.CabinetSnapshot
	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		locked, err := tx.Cabinets().FindByIDForUpdate(ctx, tx.DB(), cabinetID)
		if err != nil {
			switch {
			case infra.IsKind(err, infra.KindNotFound):
				return ErrCabinetNotFound
			case infra.IsKind(err, infra.KindRowLocked):
				return ErrLockBusy
			default:
				return errs.Wrap(err, "failed to lock cabinet row")
			}
		}

		entity := locked.Entity()
		if err := entity.Return(userID); err != nil {
			switch {
			case errors.Is(err, cabinet.ErrHolderMismatch):
				return ErrNotCabinetHolder
			default:
				return errs.Mark(err, ErrCabinetNotRented)
			}
		}

		// Returning the physical cabinet takes priority over a perfectly
		// consistent audit trail: a missing open entry is logged, not fatal.
		closed, err := tx.Rentals().CloseOpenByCabinet(ctx, tx.DB(), cabinetID, r.clock.Now())
		if err != nil {
			return errs.Wrap(err, "failed to close rental history")
		}
		if !closed {
			slog.Warn("no open rental history entry to close", "cabinet_id", cabinetID, "user_id", userID)
		}

		if err := tx.Cabinets().UpdateState(ctx, tx.DB(), cabinetID, entity.Status(), entity.HolderID(), entity.Reason()); err != nil {
			return errs.Wrap(err, "failed to update cabinet state")
		}

		after := *locked
		after.Status = entity.Status()
		after.HolderID = entity.HolderID()
		after.Reason = entity.Reason()
		returned = &after
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.cleanup(ctx, cabinetID, userID)
	return returned, nil
}

// cleanup runs the best-effort post-return work: marker teardown, cancelling
// a duplicate in-flight rent task and the external notification.
func (r *returnUseCaseImpl) cleanup(ctx context.Context, cabinetID int64, userID uuid.UUID) {
	ctx = context.WithoutCancel(ctx)

	if err := r.markers.ClearProcessing(ctx, cabinetID); err != nil {
		slog.Warn("failed to clear processing marker", "cabinet_id", cabinetID, "error", err.Error())
	}
	if err := r.markers.ClearStatus(ctx, cabinetID); err != nil {
		slog.Warn("failed to clear status marker", "cabinet_id", cabinetID, "error", err.Error())
	}
	if _, err := r.results.CancelCurrent(ctx, cabinetID, userID); err != nil {
		slog.Warn("failed to cancel in-flight task", "cabinet_id", cabinetID, "error", err.Error())
	}
	if r.notifier != nil {
		r.notifier.CabinetReturned(ctx, cabinetID, userID)
	}
}
