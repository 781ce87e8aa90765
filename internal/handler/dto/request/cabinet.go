package request

import (
	"strings"

	"cabinet-keeper/internal/domain/cabinet"

	"github.com/google/uuid"
)

type ChangeStatusRequest struct {
	CabinetIDs []int64 `json:"cabinet_ids" binding:"required,min=1"`
	Status     string  `json:"status" binding:"required"`
	Reason     *string `json:"reason,omitempty"`
}

func (r ChangeStatusRequest) ToStatus() (cabinet.Status, bool) {
	status := cabinet.Status(strings.ToUpper(strings.TrimSpace(r.Status)))
	return status, status.IsValid()
}

func (r ChangeStatusRequest) GetReason() *string {
	if r.Reason == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.Reason)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

type AssignCabinetRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

type BulkReturnRequest struct {
	CabinetIDs []int64 `json:"cabinet_ids" binding:"required,min=1"`
}
