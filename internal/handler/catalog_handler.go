package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jira_notifier/internal/engine"
	"jira_notifier/internal/logger"
	"jira_notifier/internal/model"
)

// CatalogRequest asks for the filterable fields of one or more projects.
// Metadata may be supplied inline (webhook-sourced payloads); otherwise the
// stored snapshots of the listed projects are used.
type CatalogRequest struct {
	Projects []string             `json:"projects" binding:"required"`
	Metadata *model.IssueMetadata `json:"metadata,omitempty"`
}

// CatalogResponse carries the derived filter catalog
type CatalogResponse struct {
	Fields []engine.FilterableField `json:"fields"`
}

// HandleCatalog handles the POST request to /api/v1/catalog
func (h *SubscriptionHandler) HandleCatalog(c *gin.Context) {
	var req CatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().Error("invalid catalog request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	metadata, err := h.resolveMetadata(c.Request.Context(), req.Metadata, req.Projects)
	if err != nil {
		logger.GetLogger().Error("failed to resolve metadata", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load project metadata"})
		return
	}

	catalog := engine.BuildFilterCatalog(metadata, req.Projects)
	if catalog == nil {
		// no fields is a renderable state, not a failure
		catalog = []engine.FilterableField{}
	}

	c.JSON(http.StatusOK, CatalogResponse{Fields: catalog})
}
