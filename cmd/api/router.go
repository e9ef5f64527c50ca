package api

import (
	"net/http"

	"pakora-chat-backend/internal/push/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, pushHandler *delivery.PushHandler) {
	api := r.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Push routes
		push := api.Group("/push")
		{
			push.POST("/tokens", pushHandler.RegisterToken)
			push.DELETE("/tokens/:token", pushHandler.UnregisterToken)
			push.POST("/dispatch/:collection/:id", pushHandler.DispatchEvent)
			push.GET("/logs", pushHandler.GetLogs)
		}
	}
}
