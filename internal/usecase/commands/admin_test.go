//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"cabinet-keeper/internal/domain/cabinet"
	"cabinet-keeper/internal/pkg/clock"
	"cabinet-keeper/internal/pkg/config"
	"cabinet-keeper/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adminFixture struct {
	store *fakeStore
	clock *clock.MockClock
	admin commands.AdminCommands
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	store := newFakeStore()
	mockClock := clock.NewMockClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	rental := config.RentalConfig{Period: 720 * time.Hour}
	return &adminFixture{
		store: store,
		clock: mockClock,
		admin: commands.NewAdminUseCase(newFakeUoW(store), mockClock, rental),
	}
}

func TestChangeCabinetStatusByIDs(t *testing.T) {
	ctx := context.Background()

	t.Run("marks cabinets broken with a reason", func(t *testing.T) {
		f := newAdminFixture(t)
		f.store.addCabinet(1, cabinet.StatusAvailable, nil, nil)
		f.store.addCabinet(2, cabinet.StatusAvailable, nil, nil)
		reason := "water damage"

		result, err := f.admin.ChangeCabinetStatusByIDs(ctx, []int64{1, 2}, cabinet.StatusBroken, &reason)
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2}, result.Succeeded)
		assert.Empty(t, result.Failed)

		for _, id := range []int64{1, 2} {
			snap := f.store.cabinet(id)
			assert.Equal(t, cabinet.StatusBroken, snap.Status)
			require.NotNil(t, snap.Reason)
			assert.Equal(t, reason, *snap.Reason)
		}
	})

	t.Run("invalid status rejects the whole batch", func(t *testing.T) {
		f := newAdminFixture(t)
		f.store.addCabinet(1, cabinet.StatusAvailable, nil, nil)

		_, err := f.admin.ChangeCabinetStatusByIDs(ctx, []int64{1}, cabinet.Status("SMASHED"), nil)
		assert.ErrorIs(t, err, commands.ErrInvalidStatus)
	})

	t.Run("unknown cabinet fails per-entry, the rest proceed", func(t *testing.T) {
		f := newAdminFixture(t)
		f.store.addCabinet(1, cabinet.StatusAvailable, nil, nil)
		reason := "lock jammed"

		result, err := f.admin.ChangeCabinetStatusByIDs(ctx, []int64{1, 999}, cabinet.StatusBroken, &reason)
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, result.Succeeded)
		require.Len(t, result.Failed, 1)
		assert.Equal(t, int64(999), result.Failed[0].CabinetID)
		assert.Equal(t, commands.CodeCabinetNotFound, result.Failed[0].Code)
	})

	t.Run("broken without a reason fails per-entry", func(t *testing.T) {
		f := newAdminFixture(t)
		f.store.addCabinet(1, cabinet.StatusAvailable, nil, nil)

		result, err := f.admin.ChangeCabinetStatusByIDs(ctx, []int64{1}, cabinet.StatusBroken, nil)
		require.NoError(t, err)
		assert.Empty(t, result.Succeeded)
		require.Len(t, result.Failed, 1)
		assert.Equal(t, commands.CodeInvalidStatus, result.Failed[0].Code)
		assert.Equal(t, cabinet.StatusAvailable, f.store.cabinet(1).Status)
	})

	t.Run("leaving a holder status closes the open ledger entry", func(t *testing.T) {
		f := newAdminFixture(t)
		userID := uuid.New()
		holder := userID
		f.store.addCabinet(1, cabinet.StatusUsing, &holder, nil)
		f.store.addOpenRental(userID, 1, f.clock.Now().Add(time.Hour))

		result, err := f.admin.ChangeCabinetStatusByIDs(ctx, []int64{1}, cabinet.StatusAvailable, nil)
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, result.Succeeded)

		snap := f.store.cabinet(1)
		assert.Equal(t, cabinet.StatusAvailable, snap.Status)
		assert.Nil(t, snap.HolderID)
		assert.Nil(t, f.store.openRentalByCabinet(1))
	})

	t.Run("moving between holder statuses keeps the rental open", func(t *testing.T) {
		f := newAdminFixture(t)
		userID := uuid.New()
		holder := userID
		f.store.addCabinet(1, cabinet.StatusUsing, &holder, nil)
		f.store.addOpenRental(userID, 1, f.clock.Now().Add(time.Hour))

		result, err := f.admin.ChangeCabinetStatusByIDs(ctx, []int64{1}, cabinet.StatusOverdue, nil)
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, result.Succeeded)

		snap := f.store.cabinet(1)
		assert.Equal(t, cabinet.StatusOverdue, snap.Status)
		require.NotNil(t, snap.HolderID)
		assert.Equal(t, userID, *snap.HolderID)
		assert.NotNil(t, f.store.openRentalByCabinet(1), "ledger entry must stay open")
	})
}

func TestAssignCabinetToUser(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns an available cabinet", func(t *testing.T) {
		f := newAdminFixture(t)
		userID := uuid.New()
		f.store.addUser(userID, true)
		f.store.addCabinet(1, cabinet.StatusAvailable, nil, nil)

		require.NoError(t, f.admin.AssignCabinetToUser(ctx, 1, userID))

		snap := f.store.cabinet(1)
		assert.Equal(t, cabinet.StatusUsing, snap.Status)
		require.NotNil(t, snap.HolderID)
		assert.Equal(t, userID, *snap.HolderID)
		assert.NotNil(t, f.store.openRentalByCabinet(1))
	})

	t.Run("user with an open rental cannot be assigned", func(t *testing.T) {
		f := newAdminFixture(t)
		userID := uuid.New()
		holder := userID
		f.store.addUser(userID, true)
		f.store.addCabinet(1, cabinet.StatusUsing, &holder, nil)
		f.store.addCabinet(2, cabinet.StatusAvailable, nil, nil)
		f.store.addOpenRental(userID, 1, f.clock.Now().Add(time.Hour))

		err := f.admin.AssignCabinetToUser(ctx, 2, userID)
		assert.ErrorIs(t, err, commands.ErrUserHasRental)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newAdminFixture(t)
		f.store.addCabinet(1, cabinet.StatusAvailable, nil, nil)

		err := f.admin.AssignCabinetToUser(ctx, 1, uuid.New())
		assert.ErrorIs(t, err, commands.ErrUserNotFound)
	})

	t.Run("broken cabinet cannot be assigned", func(t *testing.T) {
		f := newAdminFixture(t)
		userID := uuid.New()
		f.store.addUser(userID, true)
		reason := "hinge broken"
		f.store.addCabinet(1, cabinet.StatusBroken, nil, &reason)

		err := f.admin.AssignCabinetToUser(ctx, 1, userID)
		assert.ErrorIs(t, err, commands.ErrCabinetBroken)
	})
}

func TestReturnCabinetsByIDs(t *testing.T) {
	ctx := context.Background()

	t.Run("force-returns rented cabinets regardless of holder", func(t *testing.T) {
		f := newAdminFixture(t)
		userA := uuid.New()
		userB := uuid.New()
		holderA, holderB := userA, userB
		f.store.addCabinet(1, cabinet.StatusUsing, &holderA, nil)
		f.store.addCabinet(2, cabinet.StatusOverdue, &holderB, nil)
		f.store.addOpenRental(userA, 1, f.clock.Now().Add(time.Hour))
		f.store.addOpenRental(userB, 2, f.clock.Now().Add(-time.Hour))

		result, err := f.admin.ReturnCabinetsByIDs(ctx, []int64{1, 2})
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2}, result.Succeeded)
		assert.Empty(t, result.Failed)

		for _, id := range []int64{1, 2} {
			snap := f.store.cabinet(id)
			assert.Equal(t, cabinet.StatusAvailable, snap.Status)
			assert.Nil(t, snap.HolderID)
			assert.Nil(t, f.store.openRentalByCabinet(id))
		}
	})

	t.Run("idle cabinet fails per-entry", func(t *testing.T) {
		f := newAdminFixture(t)
		userID := uuid.New()
		holder := userID
		f.store.addCabinet(1, cabinet.StatusUsing, &holder, nil)
		f.store.addCabinet(2, cabinet.StatusAvailable, nil, nil)
		f.store.addOpenRental(userID, 1, f.clock.Now().Add(time.Hour))

		result, err := f.admin.ReturnCabinetsByIDs(ctx, []int64{1, 2})
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, result.Succeeded)
		require.Len(t, result.Failed, 1)
		assert.Equal(t, int64(2), result.Failed[0].CabinetID)
		assert.Equal(t, commands.CodeCabinetNotRented, result.Failed[0].Code)
	})
}

func TestSweepOverdue(t *testing.T) {
	ctx := context.Background()

	t.Run("flips cabinets with expired rentals to overdue", func(t *testing.T) {
		f := newAdminFixture(t)
		expired := uuid.New()
		current := uuid.New()
		holderA, holderB := expired, current
		f.store.addCabinet(1, cabinet.StatusUsing, &holderA, nil)
		f.store.addCabinet(2, cabinet.StatusUsing, &holderB, nil)
		f.store.addOpenRental(expired, 1, f.clock.Now().Add(-time.Minute))
		f.store.addOpenRental(current, 2, f.clock.Now().Add(time.Hour))

		result, err := f.admin.SweepOverdue(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, result.Succeeded)
		assert.Empty(t, result.Failed)

		snap := f.store.cabinet(1)
		assert.Equal(t, cabinet.StatusOverdue, snap.Status)
		require.NotNil(t, snap.HolderID, "overdue keeps the holder")
		assert.Equal(t, expired, *snap.HolderID)

		assert.Equal(t, cabinet.StatusUsing, f.store.cabinet(2).Status)
	})

	t.Run("cabinet returned since the scan is left alone", func(t *testing.T) {
		f := newAdminFixture(t)
		userID := uuid.New()
		f.store.addCabinet(1, cabinet.StatusAvailable, nil, nil)
		f.store.addOpenRental(userID, 1, f.clock.Now().Add(-time.Minute))

		result, err := f.admin.SweepOverdue(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, result.Succeeded)
		assert.Equal(t, cabinet.StatusAvailable, f.store.cabinet(1).Status)
	})

	t.Run("nothing expired", func(t *testing.T) {
		f := newAdminFixture(t)
		userID := uuid.New()
		holder := userID
		f.store.addCabinet(1, cabinet.StatusUsing, &holder, nil)
		f.store.addOpenRental(userID, 1, f.clock.Now().Add(time.Hour))

		result, err := f.admin.SweepOverdue(ctx)
		require.NoError(t, err)
		assert.Empty(t, result.Succeeded)
		assert.Empty(t, result.Failed)
	})
}
