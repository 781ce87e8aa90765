package response

import (
	"time"

	"cabinet-keeper/internal/usecase/commands"
	"cabinet-keeper/internal/usecase/queries"
	"cabinet-keeper/internal/usecase/shared"

	"github.com/google/uuid"
)

type CabinetResponse struct {
	ID        int64      `json:"id"`
	Status    string     `json:"status"`
	HolderID  *uuid.UUID `json:"holderId,omitempty"`
	Payable   bool       `json:"payable"`
	Reason    *string    `json:"reason,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func FromCabinetView(rm *queries.CabinetView) *CabinetResponse {
	return &CabinetResponse{
		ID:        rm.ID,
		Status:    rm.Status,
		HolderID:  rm.HolderID,
		Payable:   rm.Payable,
		Reason:    rm.Reason,
		CreatedAt: rm.CreatedAt,
		UpdatedAt: rm.UpdatedAt,
	}
}

func FromCabinetSnapshot(snap *shared.CabinetSnapshot) *CabinetResponse {
	return &CabinetResponse{
		ID:        snap.ID,
		Status:    snap.Status.String(),
		HolderID:  snap.HolderID,
		Payable:   snap.Payable,
		Reason:    snap.Reason,
		CreatedAt: snap.CreatedAt,
		UpdatedAt: snap.UpdatedAt,
	}
}

type RentResponse struct {
	Status    string `json:"status"`
	TaskID    string `json:"taskId,omitempty"`
	CabinetID int64  `json:"cabinetId"`
}

func FromRentTicket(ticket *commands.RentTicket) *RentResponse {
	resp := &RentResponse{
		Status:    string(ticket.Status),
		CabinetID: ticket.CabinetID,
	}
	if ticket.Status == commands.RentStatusProcessing {
		resp.TaskID = ticket.TaskID
	}
	return resp
}

type RentalResponse struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"userId"`
	UserEmail string     `json:"userEmail"`
	CabinetID int64      `json:"cabinetId"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt time.Time  `json:"expiresAt"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
}

func FromRentalView(rm *queries.RentalView) *RentalResponse {
	return &RentalResponse{
		ID:        rm.ID,
		UserID:    rm.UserID,
		UserEmail: rm.UserEmail,
		CabinetID: rm.CabinetID,
		CreatedAt: rm.CreatedAt,
		ExpiresAt: rm.ExpiresAt,
		EndedAt:   rm.EndedAt,
	}
}

type StatisticsResponse struct {
	Total     int64 `json:"total"`
	Available int64 `json:"available"`
	Using     int64 `json:"using"`
	Broken    int64 `json:"broken"`
	Overdue   int64 `json:"overdue"`
}

func FromStatistics(rm *queries.CabinetStatistics) *StatisticsResponse {
	return &StatisticsResponse{
		Total:     rm.Total,
		Available: rm.Available,
		Using:     rm.Using,
		Broken:    rm.Broken,
		Overdue:   rm.Overdue,
	}
}

type BulkFailureResponse struct {
	CabinetID int64  `json:"cabinetId"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

type BulkResponse struct {
	Succeeded []int64               `json:"succeeded"`
	Failed    []BulkFailureResponse `json:"failed"`
}

func FromBulkResult(result *commands.BulkResult) *BulkResponse {
	resp := &BulkResponse{Succeeded: result.Succeeded}
	if resp.Succeeded == nil {
		resp.Succeeded = []int64{}
	}
	resp.Failed = make([]BulkFailureResponse, 0, len(result.Failed))
	for _, failure := range result.Failed {
		resp.Failed = append(resp.Failed, BulkFailureResponse{
			CabinetID: failure.CabinetID,
			Code:      failure.Code,
			Message:   failure.Message,
		})
	}
	return resp
}
