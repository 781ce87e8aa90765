package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "cabinet-keeper/internal/handler/dto/request"
	resdto "cabinet-keeper/internal/handler/dto/response"
	"cabinet-keeper/internal/handler/httperr"
	"cabinet-keeper/internal/usecase/commands"
	"cabinet-keeper/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	cmds commands.AdminCommands
	q    queries.CabinetQueries
}

func NewAdminHandler(cmds commands.AdminCommands, q queries.CabinetQueries) *AdminHandler {
	return &AdminHandler{cmds: cmds, q: q}
}

func (h *AdminHandler) ChangeStatus(c *gin.Context) {
	var req reqdto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	status, ok := req.ToStatus()
	if !ok {
		httperr.AbortWithError(c, http.StatusBadRequest, errors.New("invalid status"), "Invalid status", nil)
		return
	}

	result, err := h.cmds.ChangeCabinetStatusByIDs(c.Request.Context(), req.CabinetIDs, status, req.GetReason())
	if err != nil {
		if errors.Is(err, commands.ErrInvalidStatus) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid status", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to change cabinet status", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBulkResult(result))
}

func (h *AdminHandler) Assign(c *gin.Context) {
	cabinetID, err := parseCabinetID(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cabinet id", nil)
		return
	}
	var req reqdto.AssignCabinetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	if err := h.cmds.AssignCabinetToUser(c.Request.Context(), cabinetID, req.UserID); err != nil {
		abortWithRentError(c, err)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), cabinetID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load cabinet", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCabinetView(view))
}

func (h *AdminHandler) BulkReturn(c *gin.Context) {
	var req reqdto.BulkReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.ReturnCabinetsByIDs(c.Request.Context(), req.CabinetIDs)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to return cabinets", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBulkResult(result))
}

func (h *AdminHandler) Statistics(c *gin.Context) {
	stats, err := h.q.Statistics(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load statistics", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromStatistics(stats))
}

func (h *AdminHandler) RentalHistory(c *gin.Context) {
	cabinetID, err := parseCabinetID(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cabinet id", nil)
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid limit", nil)
			return
		}
		limit = parsed
	}

	views, err := h.q.RentalHistory(c.Request.Context(), cabinetID, limit)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load rental history", nil)
		return
	}

	responses := make([]*resdto.RentalResponse, 0, len(views))
	for _, view := range views {
		responses = append(responses, resdto.FromRentalView(view))
	}
	c.JSON(http.StatusOK, responses)
}
