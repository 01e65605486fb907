package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/kkapil94/outflo-assignment/internal/config"
	"github.com/kkapil94/outflo-assignment/internal/handlers"
	"github.com/kkapil94/outflo-assignment/internal/middleware"
	"github.com/kkapil94/outflo-assignment/internal/validation"
	"go.uber.org/zap"
)

// HandlerDependencies holds the handlers the router mounts
type HandlerDependencies struct {
	CampaignHandler *handlers.CampaignHandler
	MessageHandler  *handlers.MessageHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	binding.Validator = validation.GinValidator()

	router := gin.New()
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(logger.Named("http")))
	router.Use(middleware.RecoveryMiddleware(cfg.Server.Mode, logger))
	router.Use(middleware.CORSMiddleware(cfg))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"message": "Server is running",
		})
	})

	api := router.Group("/api")
	{
		campaigns := api.Group("/campaigns")
		{
			// Static segment first so it is never read as an id.
			campaigns.POST("/gen-msg", deps.MessageHandler.GeneratePersonalizedMessage)

			campaigns.GET("", deps.CampaignHandler.GetCampaigns)
			campaigns.GET("/:id", deps.CampaignHandler.GetCampaignByID)
			campaigns.POST("", deps.CampaignHandler.CreateCampaign)
			campaigns.PUT("/:id", deps.CampaignHandler.UpdateCampaign)
			campaigns.DELETE("/:id", deps.CampaignHandler.DeleteCampaign)
			campaigns.POST("/:id/toggle-status", deps.CampaignHandler.ToggleCampaignStatus)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})

	return router
}
