package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jira_notifier/internal/logger"
)

// NewRouter builds the gin engine serving the configurator API. The same
// router runs standalone (cmd/server) and behind API Gateway (cmd/lambda).
func NewRouter(h *SubscriptionHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinLogMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		api.POST("/catalog", h.HandleCatalog)
		api.POST("/subscriptions/validate", h.HandleValidate)
		api.POST("/subscriptions/preview", h.HandlePreview)
		api.POST("/subscriptions/announce", h.HandleAnnounce)
	}

	r.POST("/slack/events", HandleSlackRetry(), h.HandleSlackEvents)

	return r
}
