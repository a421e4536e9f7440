// Package router provides seller assist service routing.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/marketx/seller-assist/internal/assist/handler"
)

// Register registers the seller assist routes.
func Register(engine *gin.Engine, assistHandler *handler.AssistHandler) {
	logger.Info("Registering assist routes...")

	engine.GET("/healthz", assistHandler.Healthz)

	v1 := engine.Group("/v1")
	{
		assist := v1.Group("/assist")
		{
			assist.POST("/ask", assistHandler.Ask)
			assist.POST("/ingest", assistHandler.Ingest)
			assist.GET("/stats", assistHandler.Stats)
		}
	}

	logger.Info("HTTP routes registered")
}
