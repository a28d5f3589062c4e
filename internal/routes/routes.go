package routes

import (
	"marketsafe_backend/internal/config"
	"marketsafe_backend/internal/handlers"
	"marketsafe_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all HTTP routes onto the engine.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers, cfg *config.Config) {
	authRequired := middleware.AuthMiddleware(cfg.JWT.Secret)

	api := ginRouter.Group("/api")
	{
		api.GET("/health", appHandlers.HealthHandler.Health)
	}

	v1 := ginRouter.Group("/api/v1")
	{
		appHandlers.AccountHandler.RegisterRoutes(v1, authRequired)
		appHandlers.ListingHandler.RegisterRoutes(v1, authRequired)
	}
}
