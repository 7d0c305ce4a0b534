package handlers

import (
	"microwave/internal/logger"
	"microwave/internal/service"

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

	router.GET("/health", h.health)

	h.registerAuthRoutes(router)

	// Everything below needs a token and runs inside a heating session.
	h.registerAPIRoutes(router)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/configure", h.configure)
		auth.POST("/login", h.login)
		auth.GET("/status", h.authStatus)
		auth.POST("/validate", h.validateToken)
		auth.POST("/logout", h.logout)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdentity, h.sessionMiddleware)
	{
		h.registerHeatingRoutes(api)
		h.registerProgramRoutes(api)
		h.registerCharacterRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerHeatingRoutes(api *gin.RouterGroup) {
	heating := api.Group("/heating")
	{
		// Body example: {"timeInSeconds":90,"powerLevel":7}
		heating.POST("/start", h.startHeating)
		heating.POST("/quick", h.quickStart)
		heating.POST("/pause", h.pauseHeating)
		heating.POST("/cancel", h.cancelHeating)
		heating.POST("/add-time", h.addTime)
		heating.GET("/status", h.heatingStatus)
		heating.GET("/ws", h.wsConnect)
	}
}

func (h *Handler) registerProgramRoutes(api *gin.RouterGroup) {
	programs := api.Group("/programs")
	{
		programs.GET("", h.listPrograms)
		programs.GET("/predefined", h.listPredefinedPrograms)
		programs.POST("/predefined/:name/start", h.startPredefinedProgram)

		programs.GET("/custom", h.listCustomPrograms)
		programs.POST("/custom", h.createCustomProgram)
		programs.GET("/custom/names/:name/available", h.nameAvailable)
		programs.GET("/custom/:id", h.getCustomProgram)
		programs.PUT("/custom/:id", h.updateCustomProgram)
		programs.DELETE("/custom/:id", h.deleteCustomProgram)
		programs.POST("/custom/:id/start", h.startCustomProgram)
	}
}

func (h *Handler) registerCharacterRoutes(api *gin.RouterGroup) {
	chars := api.Group("/characters")
	{
		chars.GET("/used", h.usedCharacters)
		chars.GET("/:character/unique", h.characterUnique)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("", h.getLogs)
	}
}
