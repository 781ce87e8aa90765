package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type CabinetView struct {
	ID        int64      `json:"id"`
	Status    string     `json:"status"`
	HolderID  *uuid.UUID `json:"holder_id,omitempty"`
	Payable   bool       `json:"payable"`
	Reason    *string    `json:"reason,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type RentalView struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	UserEmail string     `json:"user_email"`
	CabinetID int64      `json:"cabinet_id"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

type CabinetStatistics struct {
	Total     int64 `json:"total"`
	Available int64 `json:"available"`
	Using     int64 `json:"using"`
	Broken    int64 `json:"broken"`
	Overdue   int64 `json:"overdue"`
}

type BookmarkView struct {
	UserID        uuid.UUID `json:"user_id"`
	CabinetID     int64     `json:"cabinet_id"`
	CabinetStatus string    `json:"cabinet_status"`
	Payable       bool      `json:"payable"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
