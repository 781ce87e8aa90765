package commands

import (
	"context"
	"log/slog"

	"cabinet-keeper/internal/domain/cabinet"
	"cabinet-keeper/internal/infra"
	"cabinet-keeper/internal/pkg/clock"
	"cabinet-keeper/internal/pkg/config"
	"cabinet-keeper/internal/pkg/errs"
	"cabinet-keeper/internal/usecase/shared"

	"github.com/google/uuid"
)

type BulkFailure struct {
	CabinetID int64
	Code      string
	Message   string
}

// BulkResult carries partial-failure semantics: administrative batches never
// abort on the first bad cabinet.
type BulkResult struct {
	Succeeded []int64
	Failed    []BulkFailure
}

func (r *BulkResult) recordFailure(cabinetID int64, err error) {
	r.Failed = append(r.Failed, BulkFailure{
		CabinetID: cabinetID,
		Code:      CodeForError(err),
		Message:   err.Error(),
	})
}

// AdminCommands applies state transitions without the lock/marker machinery.
// Administrative context assumes no concurrent end-user contention, but each
// cabinet is still mutated in its own transaction with the row lock held so
// the open-rental-history invariant survives.
type AdminCommands interface {
	ChangeCabinetStatusByIDs(ctx context.Context, ids []int64, status cabinet.Status, reason *string) (*BulkResult, error)
	AssignCabinetToUser(ctx context.Context, cabinetID int64, userID uuid.UUID) error
	ReturnCabinetsByIDs(ctx context.Context, ids []int64) (*BulkResult, error)
	// SweepOverdue flips cabinets with expired open rentals to OVERDUE. Run
	// periodically from the task scheduler.
	SweepOverdue(ctx context.Context) (*BulkResult, error)
}

type adminUseCaseImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	rental config.RentalConfig
}

func NewAdminUseCase(uow shared.UnitOfWork, clock clock.Clock, rental config.RentalConfig) AdminCommands {
	return &adminUseCaseImpl{uow: uow, clock: clock, rental: rental}
}

func (a *adminUseCaseImpl) ChangeCabinetStatusByIDs(ctx context.Context, ids []int64, status cabinet.Status, reason *string) (*BulkResult, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	result := &BulkResult{}
	for _, id := range ids {
		if err := a.changeStatus(ctx, id, status, reason); err != nil {
			result.recordFailure(id, err)
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	return result, nil
}

func (a *adminUseCaseImpl) changeStatus(ctx context.Context, cabinetID int64, status cabinet.Status, reason *string) error {
	return a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := a.lockCabinet(ctx, tx, cabinetID)
		if err != nil {
			return err
		}

		entity := snap.Entity()
		hadHolder := entity.Status().RequiresHolder()
		if err := entity.ChangeStatus(status, reason); err != nil {
			return a.mapDomainErr(err)
		}

		// Leaving USING/OVERDUE ends the rental; the ledger entry closes with
		// the status flip.
		if hadHolder && !status.RequiresHolder() {
			closed, err := tx.Rentals().CloseOpenByCabinet(ctx, tx.DB(), cabinetID, a.clock.Now())
			if err != nil {
				return errs.Wrap(err, "failed to close rental history")
			}
			if !closed {
				slog.Warn("no open rental history entry to close", "cabinet_id", cabinetID)
			}
		}

		return a.updateState(ctx, tx, cabinetID, entity)
	})
}

func (a *adminUseCaseImpl) AssignCabinetToUser(ctx context.Context, cabinetID int64, userID uuid.UUID) error {
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

		snap, err := a.lockCabinet(ctx, tx, cabinetID)
		if err != nil {
			return err
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
				if infra.ViolatedConstraint(err) == infra.ConstraintOpenRentalPerUser {
					return ErrUserHasRental
				}
				return ErrCabinetAlreadyRented
			}
			return errs.Wrap(err, "failed to open rental history")
		}

		return a.updateState(ctx, tx, cabinetID, entity)
	})
}

func (a *adminUseCaseImpl) ReturnCabinetsByIDs(ctx context.Context, ids []int64) (*BulkResult, error) {
	result := &BulkResult{}
	for _, id := range ids {
		if err := a.forceReturn(ctx, id); err != nil {
			result.recordFailure(id, err)
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	return result, nil
}

func (a *adminUseCaseImpl) forceReturn(ctx context.Context, cabinetID int64) error {
	return a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := a.lockCabinet(ctx, tx, cabinetID)
		if err != nil {
			return err
		}

		entity := snap.Entity()
		if err := entity.ForceRelease(); err != nil {
			return errs.Mark(err, ErrCabinetNotRented)
		}

		closed, err := tx.Rentals().CloseOpenByCabinet(ctx, tx.DB(), cabinetID, a.clock.Now())
		if err != nil {
			return errs.Wrap(err, "failed to close rental history")
		}
		if !closed {
			slog.Warn("no open rental history entry to close", "cabinet_id", cabinetID)
		}

		return a.updateState(ctx, tx, cabinetID, entity)
	})
}

func (a *adminUseCaseImpl) SweepOverdue(ctx context.Context) (*BulkResult, error) {
	expired, err := a.uow.Reads().ExpiredOpenRentals(ctx, a.clock.Now())
	if err != nil {
		return nil, errs.Wrap(err, "failed to list expired rentals")
	}

	result := &BulkResult{}
	for _, rental := range expired {
		if err := a.markOverdue(ctx, rental.CabinetID); err != nil {
			result.recordFailure(rental.CabinetID, err)
			continue
		}
		result.Succeeded = append(result.Succeeded, rental.CabinetID)
	}
	return result, nil
}

func (a *adminUseCaseImpl) markOverdue(ctx context.Context, cabinetID int64) error {
	return a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := a.lockCabinet(ctx, tx, cabinetID)
		if err != nil {
			return err
		}

		entity := snap.Entity()
		if entity.Status() != cabinet.StatusUsing {
			// Already overdue, returned or administratively changed.
			return nil
		}
		if err := entity.ChangeStatus(cabinet.StatusOverdue, nil); err != nil {
			return a.mapDomainErr(err)
		}

		return a.updateState(ctx, tx, cabinetID, entity)
	})
}

func (a *adminUseCaseImpl) lockCabinet(ctx context.Context, tx shared.Tx, cabinetID int64) (*shared.CabinetSnapshot, error) {
	snap, err := tx.Cabinets().FindByIDForUpdate(ctx, tx.DB(), cabinetID)
	if err != nil {
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			return nil, ErrCabinetNotFound
		case infra.IsKind(err, infra.KindRowLocked):
			return nil, ErrLockBusy
		default:
			return nil, errs.Wrap(err, "failed to lock cabinet row")
		}
	}
	return snap, nil
}

func (a *adminUseCaseImpl) updateState(ctx context.Context, tx shared.Tx, cabinetID int64, entity *cabinet.Cabinet) error {
	if err := tx.Cabinets().UpdateState(ctx, tx.DB(), cabinetID, entity.Status(), entity.HolderID(), entity.Reason()); err != nil {
		return errs.Wrap(err, "failed to update cabinet state")
	}
	return nil
}

func (a *adminUseCaseImpl) mapDomainErr(err error) error {
	switch err {
	case cabinet.ErrReasonRequired, cabinet.ErrHolderRequired, cabinet.ErrInvalidStatus:
		return errs.Mark(err, ErrInvalidStatus)
	case cabinet.ErrNotRented:
		return errs.Mark(err, ErrCabinetNotRented)
	default:
		return err
	}
}
