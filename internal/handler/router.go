package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"hotel-booking/internal/handler/api"
	"hotel-booking/internal/handler/middleware"
	"hotel-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

func NewRoomRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, roomHandler *api.RoomHandler) {
	setupMiddleware(engine, cfg, logger)
	setupCommonRoutes(engine)

	rooms := engine.Group("/rooms")
	addRoutes(rooms, []route{
		{Method: http.MethodGet, Path: "", Handler: roomHandler.List},
		{Method: http.MethodPost, Path: "", Handler: roomHandler.Create},
		{Method: http.MethodGet, Path: "/:id", Handler: roomHandler.Get},
		{Method: http.MethodPut, Path: "/:id", Handler: roomHandler.Update},
		{Method: http.MethodPatch, Path: "/:id/status", Handler: roomHandler.UpdateStatus},
		{Method: http.MethodDelete, Path: "/:id", Handler: roomHandler.Delete},
	})
}

func NewReservationRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, reservationHandler *api.ReservationHandler) {
	setupMiddleware(engine, cfg, logger)
	setupCommonRoutes(engine)

	reservations := engine.Group("/reservations")
	addRoutes(reservations, []route{
		{Method: http.MethodPost, Path: "", Handler: reservationHandler.Create},
		{Method: http.MethodGet, Path: "", Handler: reservationHandler.List},
		{Method: http.MethodGet, Path: "/:id", Handler: reservationHandler.Get},
		{Method: http.MethodPut, Path: "/:id", Handler: reservationHandler.Update},
		{Method: http.MethodDelete, Path: "/:id", Handler: reservationHandler.Delete},
	})
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery(logger.GetSlogLogger()))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS, logger.GetSlogLogger()))
	engine.Use(middleware.TraceContext())
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupCommonRoutes(engine *gin.Engine) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
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
