package commands

import (
	"context"
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

const (
	rentLockTTL = 30 * time.Second
)

func rentLockName(cabinetID int64) string {
	return fmt.Sprintf("cabinet:%d:rent", cabinetID)
}

// AllocationCommands is the domain mutation surface shared by every execution
// path: the in-process worker pool, the durable queue handler and the event
// log consumer all funnel into the same operations.
type AllocationCommands interface {
	// RentCabinet performs the actual rental mutation under the per-cabinet
	// rent lock. Redundant callers racing on the same cabinet observe
	// ErrLockBusy or ErrCabinetAlreadyRented, both harmless.
	RentCabinet(ctx context.Context, cabinetID int64, userID uuid.UUID) error
	// ExecuteRent runs RentCabinet on behalf of an asynchronous dispatch and
	// records the outcome into the result store under taskID.
	ExecuteRent(ctx context.Context, taskID string, cabinetID int64, userID uuid.UUID) error
}

type allocationUseCaseImpl struct {
	uow     shared.UnitOfWork
	locker  *redislock.Locker
	markers *kvstate.MarkerStore
	results *kvstate.ResultStore
	clock   clock.Clock
	rental  config.RentalConfig
}

func NewAllocationUseCase(
	uow shared.UnitOfWork,
	locker *redislock.Locker,
	markers *kvstate.MarkerStore,
	results *kvstate.ResultStore,
	clock clock.Clock,
	rental config.RentalConfig,
) AllocationCommands {
	return &allocationUseCaseImpl{
		uow:     uow,
		locker:  locker,
		markers: markers,
		results: results,
		clock:   clock,
		rental:  rental,
	}
}

func (a *allocationUseCaseImpl) RentCabinet(ctx context.Context, cabinetID int64, userID uuid.UUID) error {
	lease, acquired, err := a.locker.TryAcquire(ctx, rentLockName(cabinetID), rentLockTTL)
	if err != nil {
		return errs.Wrap(err, "failed to acquire rent lock")
	}
	if !acquired {
		return ErrLockBusy
	}
	defer func() {
		if releaseErr := lease.Release(context.WithoutCancel(ctx)); releaseErr != nil {
			slog.Warn("failed to release rent lock", "cabinet_id", cabinetID, "error", releaseErr.Error())
		}
	}()

	return a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		user, err := tx.Users().FindByID(ctx, tx.DB(), userID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrUserNotFound
			}
			return errs.Wrap(err, "failed to load user")
		}
		if !user.IsActive {
			return ErrUserNotFound
		}

		open, err := tx.Rentals().FindOpenByUser(ctx, tx.DB(), userID)
		if err != nil && !infra.IsKind(err, infra.KindNotFound) {
			return errs.Wrap(err, "failed to check open rental")
		}
		if open != nil {
			return ErrUserHasRental
		}

		snap, err := tx.Cabinets().FindByIDForUpdate(ctx, tx.DB(), cabinetID)
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

		entity := snap.Entity()
		if err := entity.Rent(userID); err != nil {
			if entity.Status() == cabinet.StatusBroken {
				return ErrCabinetBroken
			}
			return errs.Mark(err, ErrCabinetAlreadyRented)
		}

		expiresAt := a.clock.Now().Add(a.rental.Period)
		if _, err := tx.Rentals().CreateOpen(ctx, tx.DB(), userID, cabinetID, expiresAt); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				// The pre-check above can read a stale snapshot under
				// READ COMMITTED; the per-user index is the source of truth.
				if infra.ViolatedConstraint(err) == infra.ConstraintOpenRentalPerUser {
					return ErrUserHasRental
				}
				return ErrCabinetAlreadyRented
			}
			return errs.Wrap(err, "failed to open rental history")
		}

		holder := entity.HolderID()
		if err := tx.Cabinets().UpdateState(ctx, tx.DB(), cabinetID, entity.Status(), holder, entity.Reason()); err != nil {
			return errs.Wrap(err, "failed to update cabinet state")
		}
		return nil
	})
}

// ExecuteRent is the shared entry point for the asynchronous paths. It always
// clears the processing marker and records a terminal outcome, so the
// synchronous originator's poll is guaranteed to settle (or time out into a
// "still processing" response when every path is wedged).
func (a *allocationUseCaseImpl) ExecuteRent(ctx context.Context, taskID string, cabinetID int64, userID uuid.UUID) error {
	err := a.RentCabinet(ctx, cabinetID, userID)

	cleanupCtx := context.WithoutCancel(ctx)
	if clearErr := a.markers.ClearProcessing(cleanupCtx, cabinetID); clearErr != nil {
		slog.Warn("failed to clear processing marker", "cabinet_id", cabinetID, "error", clearErr.Error())
	}

	outcome := kvstate.Outcome{
		Status:    kvstate.OutcomeSuccess,
		CabinetID: cabinetID,
		UserID:    userID,
	}
	if err != nil {
		outcome.Status = kvstate.OutcomeError
		outcome.Code = CodeForError(err)
		outcome.Message = err.Error()
	}

	stored, completeErr := a.results.Complete(cleanupCtx, taskID, outcome)
	if completeErr != nil {
		slog.Error("failed to record task outcome", "task_id", taskID, "cabinet_id", cabinetID, "error", completeErr.Error())
		return err
	}
	if !stored {
		// Another path already settled this task; our result is discarded.
		slog.Debug("task outcome already recorded", "task_id", taskID, "cabinet_id", cabinetID)
	}
	return err
}
