package response

import (
	"time"

	"cabinet-keeper/internal/usecase/queries"
)

type BookmarkResponse struct {
	CabinetID     int64     `json:"cabinetId"`
	CabinetStatus string    `json:"cabinetStatus"`
	Payable       bool      `json:"payable"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func FromBookmarkView(rm *queries.BookmarkView) *BookmarkResponse {
	return &BookmarkResponse{
		CabinetID:     rm.CabinetID,
		CabinetStatus: rm.CabinetStatus,
		Payable:       rm.Payable,
		CreatedAt:     rm.CreatedAt,
		UpdatedAt:     rm.UpdatedAt,
	}
}

func FromBookmarkViews(rms []*queries.BookmarkView) []*BookmarkResponse {
	responses := make([]*BookmarkResponse, 0, len(rms))
	for _, rm := range rms {
		responses = append(responses, FromBookmarkView(rm))
	}
	return responses
}
