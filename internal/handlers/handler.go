package handlers

import (
	"iot_backend/internal/logger"
	"iot_backend/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", h.root)
	router.GET("/api/health", h.health)

	// Operator accounts
	h.registerAuthRoutes(router)

	api := router.Group("/api")
	{
		h.registerDeviceRoutes(api)
		h.registerRelayRoutes(api)
		h.registerTelemetryRoutes(api)
	}

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerDeviceRoutes(api *gin.RouterGroup) {
	devices := api.Group("/devices")
	{
		devices.POST("/register", h.registerDevice)
		devices.GET("/count", h.userIdMiddleware, h.countDevices)
		devices.GET("/:deviceId", h.userIdMiddleware, h.getDevice)
	}
}

// Relay reads and writes are device-token authenticated inside the service;
// only the command log needs an operator.
func (h *Handler) registerRelayRoutes(api *gin.RouterGroup) {
	relay := api.Group("/relay")
	{
		relay.POST("/control", h.controlRelay)
		// Body example: {"deviceId":"D1","relay":"on"}
		relay.POST("/status", h.controlRelay)
		relay.GET("/status", h.relayStatus)
		relay.GET("/status/:deviceId", h.relayStatus)
		relay.GET("/ws", h.relayStream)
		relay.GET("/logs", h.userIdMiddleware, h.getLogs)
	}
}

func (h *Handler) registerTelemetryRoutes(api *gin.RouterGroup) {
	data := api.Group("/data")
	{
		data.POST("", h.postReading)
		data.GET("", h.readingHistory)
		data.GET("/latest", h.latestReading)
	}
}
