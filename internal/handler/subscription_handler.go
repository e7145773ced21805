package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jira_notifier/internal/engine"
	"jira_notifier/internal/logger"
	"jira_notifier/internal/model"
)

// ValidateRequest carries an in-progress subscription for conflict checking.
// PreviousIssueTypes, when present, switches to the added-issue-types check:
// only ids newly selected since the previous state are validated.
type ValidateRequest struct {
	Filters            model.SubscriptionFilters `json:"filters" binding:"required"`
	PreviousIssueTypes []string                  `json:"previous_issue_types,omitempty"`
	Metadata           *model.IssueMetadata      `json:"metadata,omitempty"`
}

// ValidateResponse reports the validation outcome. Repaired lists filter
// keys that were dropped because their field vanished from fresh metadata.
type ValidateResponse struct {
	Valid    bool     `json:"valid"`
	Error    string   `json:"error,omitempty"`
	Repaired []string `json:"repaired,omitempty"`
}

// PreviewRequest asks for the human-readable query preview of a subscription
type PreviewRequest struct {
	Filters  model.SubscriptionFilters `json:"filters" binding:"required"`
	Metadata *model.IssueMetadata      `json:"metadata,omitempty"`
}

// HandleValidate handles the POST request to /api/v1/subscriptions/validate
func (h *SubscriptionHandler) HandleValidate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().Error("invalid validate request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	metadata, err := h.resolveMetadata(c.Request.Context(), req.Metadata, req.Filters.Projects)
	if err != nil {
		logger.GetLogger().Error("failed to resolve metadata", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load project metadata"})
		return
	}

	c.JSON(http.StatusOK, h.validate(metadata, req))
}

func (h *SubscriptionHandler) validate(metadata *model.IssueMetadata, req ValidateRequest) ValidateResponse {
	catalog := engine.BuildFilterCatalog(metadata, req.Filters.Projects)
	issueTypes := collectIssueTypes(metadata, req.Filters.Projects)

	configured, dropped := repairStaleFilters(catalog, req.Filters.Fields)

	for _, filter := range configured {
		field := engine.FindField(catalog, filter.Key)
		if err := engine.ValidateFilterValue(*field, filter); err != nil {
			return ValidateResponse{Valid: false, Error: err.Error(), Repaired: dropped}
		}
	}

	var conflict string
	if req.PreviousIssueTypes != nil {
		conflict = engine.CheckAddedIssueTypes(catalog, issueTypes, req.PreviousIssueTypes, req.Filters.IssueTypes, configured)
	} else {
		conflict = engine.CheckFieldConflicts(catalog, issueTypes, req.Filters.IssueTypes, configured)
	}
	if conflict != "" {
		return ValidateResponse{Valid: false, Error: conflict, Repaired: dropped}
	}

	return ValidateResponse{Valid: true, Repaired: dropped}
}

// HandlePreview handles the POST request to /api/v1/subscriptions/preview
func (h *SubscriptionHandler) HandlePreview(c *gin.Context) {
	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().Error("invalid preview request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	metadata, err := h.resolveMetadata(c.Request.Context(), req.Metadata, req.Filters.Projects)
	if err != nil {
		logger.GetLogger().Error("failed to resolve metadata", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load project metadata"})
		return
	}

	catalog := engine.BuildFilterCatalog(metadata, req.Filters.Projects)
	preview := engine.SynthesizeQuery(req.Filters, catalog, h.securityLevelEmptyByDefault)

	c.JSON(http.StatusOK, preview)
}
