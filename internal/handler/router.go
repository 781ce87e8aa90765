package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabinet-keeper/internal/handler/api"
	"cabinet-keeper/internal/handler/middleware"
	"cabinet-keeper/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, cabinetHandler *api.CabinetHandler, bookmarkHandler *api.BookmarkHandler, adminHandler *api.AdminHandler) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, cabinetHandler, bookmarkHandler, adminHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cabinetHandler *api.CabinetHandler, bookmarkHandler *api.BookmarkHandler, adminHandler *api.AdminHandler) {
	engine.GET("/health", healthCheck)

	apiGroup := engine.Group("/api")
	{
		cabinets := apiGroup.Group("/cabinets")
		{
			addRoutes(cabinets, []route{
				{Method: http.MethodGet, Path: "", Handler: cabinetHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: cabinetHandler.Get},
			})

			identified := cabinets.Group("")
			identified.Use(middleware.RequireIdentity())
			addRoutes(identified, []route{
				{Method: http.MethodPost, Path: "/:id/rent", Handler: cabinetHandler.Rent},
				{Method: http.MethodPost, Path: "/:id/return", Handler: cabinetHandler.Return},
			})
		}

		bookmarks := apiGroup.Group("/bookmarks")
		bookmarks.Use(middleware.RequireIdentity())
		{
			addRoutes(bookmarks, []route{
				{Method: http.MethodGet, Path: "", Handler: bookmarkHandler.List},
				{Method: http.MethodPost, Path: "/:id", Handler: bookmarkHandler.Add},
				{Method: http.MethodDelete, Path: "/:id", Handler: bookmarkHandler.Remove},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(middleware.RequireIdentity())
		{
			addRoutes(admin, []route{
				{Method: http.MethodPatch, Path: "/cabinets/status", Handler: adminHandler.ChangeStatus},
				{Method: http.MethodPost, Path: "/cabinets/return", Handler: adminHandler.BulkReturn},
				{Method: http.MethodPost, Path: "/cabinets/:id/assign", Handler: adminHandler.Assign},
				{Method: http.MethodGet, Path: "/cabinets/:id/rentals", Handler: adminHandler.RentalHistory},
				{Method: http.MethodGet, Path: "/statistics", Handler: adminHandler.Statistics},
			})
		}
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
