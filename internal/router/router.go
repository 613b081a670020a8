package router

import (
	"github.com/gin-gonic/gin"
	"github.com/nugamoto/nugamoto/backend/internal/api"
	"github.com/nugamoto/nugamoto/backend/internal/middleware"
)

// RouteRegistrar is implemented by every API handler
type RouteRegistrar interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// SetupRouter configures the application routes
func SetupRouter(allowedOrigins []string, health *api.HealthHandler, handlers ...RouteRegistrar) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(allowedOrigins))
	router.NoRoute(middleware.NotFound())

	router.GET("/health", health.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	for _, h := range handlers {
		h.RegisterRoutes(v1)
	}

	return router
}
