package api

import (
	"errors"
	"net/http"

	resdto "cabinet-keeper/internal/handler/dto/response"
	"cabinet-keeper/internal/handler/httperr"
	"cabinet-keeper/internal/handler/middleware"
	"cabinet-keeper/internal/usecase/commands"
	"cabinet-keeper/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BookmarkHandler struct {
	cmds commands.BookmarkCommands
	q    queries.BookmarkQueries
}

func NewBookmarkHandler(cmds commands.BookmarkCommands, q queries.BookmarkQueries) *BookmarkHandler {
	return &BookmarkHandler{cmds: cmds, q: q}
}

func (h *BookmarkHandler) Add(c *gin.Context) {
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

	if err := h.cmds.AddBookmark(c.Request.Context(), userID, cabinetID); err != nil {
		switch {
		case errors.Is(err, commands.ErrCabinetNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Cabinet not found", nil)
		case errors.Is(err, commands.ErrBookmarkExists):
			httperr.AbortWithError(c, http.StatusConflict, err, "Bookmark already exists", nil)
		case errors.Is(err, commands.ErrCabinetBroken):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Cabinet cannot be bookmarked", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to add bookmark", nil)
		}
		return
	}
	c.Status(http.StatusCreated)
}

func (h *BookmarkHandler) Remove(c *gin.Context) {
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

	if err := h.cmds.RemoveBookmark(c.Request.Context(), userID, cabinetID); err != nil {
		switch {
		case errors.Is(err, commands.ErrBookmarkNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Bookmark not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to remove bookmark", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookmarkHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing identity"), "Unauthorized", nil)
		return
	}

	views, err := h.q.ListByUser(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list bookmarks", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookmarkViews(views))
}
