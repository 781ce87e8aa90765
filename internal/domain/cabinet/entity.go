package cabinet

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotAvailable   = errors.New("cabinet is not available")
	ErrNotRented      = errors.New("cabinet is not rented")
	ErrHolderMismatch = errors.New("cabinet is held by another user")
	ErrReasonRequired = errors.New("reason is required for a broken cabinet")
	ErrHolderRequired = errors.New("holder is required for this status")
	ErrInvalidStatus  = errors.New("invalid cabinet status")
)

type Cabinet struct {
	id        int64
	status    Status
	holderID  *uuid.UUID
	payable   bool
	reason    *string
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

func Reconstruct(
	id int64,
	status Status,
	holderID *uuid.UUID,
	payable bool,
	reason *string,
	createdAt, updatedAt time.Time,
	deletedAt *time.Time,
) *Cabinet {
	return &Cabinet{
		id:        id,
		status:    status,
		holderID:  holderID,
		payable:   payable,
		reason:    reason,
		createdAt: createdAt,
		updatedAt: updatedAt,
		deletedAt: deletedAt,
	}
}

func (c *Cabinet) ID() int64             { return c.id }
func (c *Cabinet) Status() Status        { return c.status }
func (c *Cabinet) HolderID() *uuid.UUID  { return c.holderID }
func (c *Cabinet) Payable() bool         { return c.payable }
func (c *Cabinet) Reason() *string       { return c.reason }
func (c *Cabinet) CreatedAt() time.Time  { return c.createdAt }
func (c *Cabinet) UpdatedAt() time.Time  { return c.updatedAt }
func (c *Cabinet) DeletedAt() *time.Time { return c.deletedAt }

// Rent transitions AVAILABLE -> USING with the given holder.
func (c *Cabinet) Rent(userID uuid.UUID) error {
	if c.status != StatusAvailable {
		return ErrNotAvailable
	}
	c.status = StatusUsing
	c.holderID = &userID
	c.reason = nil
	return nil
}

// Return transitions USING/OVERDUE -> AVAILABLE, verifying the holder.
func (c *Cabinet) Return(userID uuid.UUID) error {
	if !c.status.RequiresHolder() {
		return ErrNotRented
	}
	if c.holderID == nil || *c.holderID != userID {
		return ErrHolderMismatch
	}
	c.status = StatusAvailable
	c.holderID = nil
	return nil
}

// ForceRelease is the administrative return path: no holder verification.
func (c *Cabinet) ForceRelease() error {
	if !c.status.RequiresHolder() {
		return ErrNotRented
	}
	c.status = StatusAvailable
	c.holderID = nil
	return nil
}

// ChangeStatus applies an administrative transition. The holder invariant
// (holder != nil iff USING/OVERDUE) is preserved: transitions into USING
// or OVERDUE require the current holder to already be set.
func (c *Cabinet) ChangeStatus(status Status, reason *string) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	if status == StatusBroken && (reason == nil || *reason == "") {
		return ErrReasonRequired
	}
	if status.RequiresHolder() && c.holderID == nil {
		return ErrHolderRequired
	}
	if !status.RequiresHolder() {
		c.holderID = nil
	}
	c.status = status
	if status == StatusBroken {
		c.reason = reason
	} else {
		c.reason = nil
	}
	return nil
}

// Bookmarkable reports whether new bookmarks may target this cabinet.
func (c *Cabinet) Bookmarkable() bool {
	return c.status != StatusBroken && c.deletedAt == nil
}
