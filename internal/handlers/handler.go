package handlers

import (
	"accommodation_finder/internal/logger"
	"accommodation_finder/internal/service"

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

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints
	h.registerAPIRoutes(router)

	// Minimal WebSocket connection (HTTP upgrade) — same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")

	// Browsing listings requires no account.
	h.registerPublicListingRoutes(api)

	// Everything else runs behind the identity middleware.
	protected := api.Group("", h.identityMiddleware)
	{
		h.registerListingMutationRoutes(protected)
		h.registerAmenityRoutes(protected)
		h.registerLogRoutes(protected)
	}
}

func (h *Handler) registerPublicListingRoutes(api *gin.RouterGroup) {
	acc := api.Group("/accommodations")
	{
		acc.GET("", h.listAccommodations)
		acc.GET("/:id", h.getAccommodation)
		acc.GET("/broker/:brokerId", h.listAccommodationsByBroker)
	}
}

func (h *Handler) registerListingMutationRoutes(api *gin.RouterGroup) {
	acc := api.Group("/accommodations")
	{
		acc.POST("", h.createAccommodation)
		acc.PUT("/:id", h.updateAccommodation)
		acc.DELETE("/:id", h.deleteAccommodation)
		acc.POST("/:id/photos", h.addPhoto)
		acc.DELETE("/:id/photos/:photoId", h.removePhoto)
	}
}

func (h *Handler) registerAmenityRoutes(api *gin.RouterGroup) {
	amenities := api.Group("/amenities")
	{
		amenities.GET("", h.listAmenities)
		amenities.POST("", h.createAmenity)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("", h.getLogs)
	}
}
