package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"raffle-tickets/internal/handler/api"
	"raffle-tickets/internal/handler/middleware"
	"raffle-tickets/internal/infra/proofstore"
	"raffle-tickets/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	ticketHandler *api.TicketHandler,
	adminHandler *api.AdminHandler,
	adminMiddleware *middleware.AdminMiddleware,
	rateLimiter *middleware.RateLimiter,
	proofs *proofstore.Storage,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, ticketHandler, adminHandler, adminMiddleware, rateLimiter, proofs)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	ticketHandler *api.TicketHandler,
	adminHandler *api.AdminHandler,
	adminMiddleware *middleware.AdminMiddleware,
	rateLimiter *middleware.RateLimiter,
	proofs *proofstore.Storage,
) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.Static(proofstore.URLPrefix, proofs.Dir())

	apiGroup := engine.Group("/api")
	{
		tickets := apiGroup.Group("/tickets")
		{
			addRoutes(tickets, []route{
				{Method: http.MethodGet, Path: "", Handler: ticketHandler.List},
				{Method: http.MethodPost, Path: "/buy", Handler: ticketHandler.Buy, Mw: []gin.HandlerFunc{rateLimiter.Limit()}},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(adminMiddleware.RequireAdmin())
		{
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/settings", Handler: adminHandler.GetSettings},
				{Method: http.MethodPost, Path: "/settings/tickets", Handler: adminHandler.ResizeCapacity},
				{Method: http.MethodGet, Path: "/purchases", Handler: adminHandler.ListPurchases},
				{Method: http.MethodGet, Path: "/purchases/:id", Handler: adminHandler.GetPurchase},
				{Method: http.MethodPost, Path: "/purchases/:id/approve", Handler: adminHandler.ApprovePurchase},
				{Method: http.MethodPost, Path: "/purchases/:id/reject", Handler: adminHandler.RejectPurchase},
				{Method: http.MethodPut, Path: "/purchases/:id", Handler: adminHandler.UpdatePurchase},
				{Method: http.MethodDelete, Path: "/purchases/:id", Handler: adminHandler.DeletePurchase},
				{Method: http.MethodGet, Path: "/db/download", Handler: adminHandler.DownloadDocument},
				{Method: http.MethodPost, Path: "/db/upload", Handler: adminHandler.UploadDocument},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
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
