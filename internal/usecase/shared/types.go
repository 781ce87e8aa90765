package shared

import (
	"time"

	"cabinet-keeper/internal/domain/cabinet"

	"github.com/google/uuid"
)

// Minimal snapshots for command read operations

type CabinetSnapshot struct {
	ID        int64
	Status    cabinet.Status
	HolderID  *uuid.UUID
	Payable   bool
	Reason    *string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

func (s *CabinetSnapshot) Entity() *cabinet.Cabinet {
	return cabinet.Reconstruct(s.ID, s.Status, s.HolderID, s.Payable, s.Reason, s.CreatedAt, s.UpdatedAt, s.DeletedAt)
}

type UserSnapshot struct {
	ID       uuid.UUID
	Email    string
	IsActive bool
}

type RentalSnapshot struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CabinetID int64
	CreatedAt time.Time
	ExpiresAt time.Time
	EndedAt   *time.Time
}
