package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jira_notifier/internal/engine"
	"jira_notifier/internal/logger"
	"jira_notifier/internal/model"
)

// AnnounceRequest posts the preview of a validated subscription into its
// channel so everyone can see what the channel now listens to.
type AnnounceRequest struct {
	ChannelID string                    `json:"channel_id" binding:"required"`
	Filters   model.SubscriptionFilters `json:"filters" binding:"required"`
	Metadata  *model.IssueMetadata      `json:"metadata,omitempty"`
}

// HandleAnnounce handles the POST request to /api/v1/subscriptions/announce
func (h *SubscriptionHandler) HandleAnnounce(c *gin.Context) {
	var req AnnounceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().Error("invalid announce request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	metadata, err := h.resolveMetadata(c.Request.Context(), req.Metadata, req.Filters.Projects)
	if err != nil {
		logger.GetLogger().Error("failed to resolve metadata", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load project metadata"})
		return
	}

	// a conflicting subscription must not be announced
	result := h.validate(metadata, ValidateRequest{Filters: req.Filters})
	if !result.Valid {
		c.JSON(http.StatusConflict, gin.H{"error": result.Error})
		return
	}

	catalog := engine.BuildFilterCatalog(metadata, req.Filters.Projects)
	preview := engine.SynthesizeQuery(req.Filters, catalog, h.securityLevelEmptyByDefault)

	message := fmt.Sprintf("This channel now receives notifications for issues matching:\n```%s```", preview.Query)
	if preview.Advisory != "" {
		message += fmt.Sprintf("\n_%s_", preview.Advisory)
	}

	if err := h.sendChannelMessage(req.ChannelID, message, ""); err != nil {
		logger.GetLogger().Error("failed to announce subscription", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to post announcement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "subscription announced", "preview": preview})
}
