package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"conference-seats/internal/handler/api"
	"conference-seats/internal/handler/middleware"
	"conference-seats/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, conferenceHandler *api.ConferenceHandler) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, conferenceHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, conferenceHandler *api.ConferenceHandler) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		conferences := apiGroup.Group("/conferences")
		{
			addRoutes(conferences, []route{
				{Method: http.MethodPost, Path: "", Handler: conferenceHandler.CreateConference},
				{Method: http.MethodGet, Path: "/:slug", Handler: conferenceHandler.GetConference},
				{Method: http.MethodPatch, Path: "/:slug", Handler: conferenceHandler.UpdateConference},
				{Method: http.MethodPost, Path: "/:slug/publish", Handler: conferenceHandler.PublishConference},
				{Method: http.MethodPost, Path: "/:slug/seats", Handler: conferenceHandler.AddSeats},
				{Method: http.MethodPost, Path: "/:slug/reservations", Handler: conferenceHandler.MakeReservation},
				{Method: http.MethodGet, Path: "/:slug/availability", Handler: conferenceHandler.Availability},
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
