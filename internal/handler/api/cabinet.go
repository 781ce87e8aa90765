package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"cabinet-keeper/internal/domain/cabinet"
	resdto "cabinet-keeper/internal/handler/dto/response"
	"cabinet-keeper/internal/handler/httperr"
	"cabinet-keeper/internal/handler/middleware"
	"cabinet-keeper/internal/usecase/commands"
	"cabinet-keeper/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CabinetHandler struct {
	rent    commands.RentOrchestrator
	returns commands.ReturnCommands
	q       queries.CabinetQueries
}

func NewCabinetHandler(rent commands.RentOrchestrator, returns commands.ReturnCommands, q queries.CabinetQueries) *CabinetHandler {
	return &CabinetHandler{rent: rent, returns: returns, q: q}
}

func (h *CabinetHandler) Rent(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing identity"), "Unauthorized", nil)
		return
	}
	cabinetID, err := parseCabinetID(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cabinet id", nil)
		return
	}

	ticket, err := h.rent.RequestRent(c.Request.Context(), cabinetID, userID)
	if err != nil {
		abortWithRentError(c, err)
		return
	}

	status := http.StatusOK
	if ticket.Status == commands.RentStatusProcessing {
		status = http.StatusAccepted
	}
	c.JSON(status, resdto.FromRentTicket(ticket))
}

func (h *CabinetHandler) Return(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing identity"), "Unauthorized", nil)
		return
	}
	cabinetID, err := parseCabinetID(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cabinet id", nil)
		return
	}

	snap, err := h.returns.ReturnCabinet(c.Request.Context(), cabinetID, userID)
	if err != nil {
		abortWithRentError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCabinetSnapshot(snap))
}

func (h *CabinetHandler) Get(c *gin.Context) {
	cabinetID, err := parseCabinetID(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cabinet id", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), cabinetID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Cabinet not found", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCabinetView(view))
}

func (h *CabinetHandler) List(c *gin.Context) {
	status, ok := parseStatusQuery(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusBadRequest, errors.New("invalid status filter"), "Invalid status filter", nil)
		return
	}

	views, err := h.q.List(c.Request.Context(), status)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list cabinets", nil)
		return
	}

	responses := make([]*resdto.CabinetResponse, 0, len(views))
	for _, view := range views {
		responses = append(responses, resdto.FromCabinetView(view))
	}
	c.JSON(http.StatusOK, responses)
}

func parseCabinetID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func parseStatusQuery(c *gin.Context) (*cabinet.Status, bool) {
	raw := strings.TrimSpace(c.Query("status"))
	if raw == "" {
		return nil, true
	}
	status := cabinet.Status(strings.ToUpper(raw))
	if !status.IsValid() {
		return nil, false
	}
	return &status, true
}

// abortWithRentError maps the command error taxonomy onto HTTP statuses.
func abortWithRentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrCabinetNotFound), errors.Is(err, commands.ErrUserNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
	case errors.Is(err, commands.ErrCabinetAlreadyRented),
		errors.Is(err, commands.ErrUserHasRental),
		errors.Is(err, commands.ErrLockBusy),
		errors.Is(err, commands.ErrRentInProgress),
		errors.Is(err, commands.ErrReturnInProgress):
		httperr.AbortWithError(c, http.StatusConflict, err, "Conflict", nil)
	case errors.Is(err, commands.ErrCabinetBroken),
		errors.Is(err, commands.ErrCabinetNotRented),
		errors.Is(err, commands.ErrNotCabinetHolder),
		errors.Is(err, commands.ErrRentFailed),
		errors.Is(err, commands.ErrReturnFailed):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Operation failed", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
