package handler

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"

	"jira_notifier/internal/engine"
	"jira_notifier/internal/model"
	"jira_notifier/internal/storage"
)

// SubscriptionHandler serves the subscription configurator API: catalog
// building, conflict validation, query previews and channel announcements.
type SubscriptionHandler struct {
	api   *slack.Client
	store storage.MetadataStore

	// securityLevelEmptyByDefault applies the "security is EMPTY" policy
	// to subscriptions without an explicit security-level filter
	securityLevelEmptyByDefault bool
}

// NewSubscriptionHandler creates a handler posting through the given Slack
// bot token and reading metadata snapshots from store.
func NewSubscriptionHandler(token string, store storage.MetadataStore, securityLevelEmptyByDefault bool) *SubscriptionHandler {
	return &SubscriptionHandler{
		api:                         slack.New(token),
		store:                       store,
		securityLevelEmptyByDefault: securityLevelEmptyByDefault,
	}
}

// resolveMetadata returns the metadata tree for a request: the inline tree
// when the caller supplied one, otherwise the stored snapshots of the
// requested projects merged into one tree. Missing snapshots contribute
// nothing; an entirely empty tree is a valid state.
func (h *SubscriptionHandler) resolveMetadata(ctx context.Context, inline *model.IssueMetadata, projectKeys []string) (*model.IssueMetadata, error) {
	if inline != nil {
		return inline, nil
	}

	merged := &model.IssueMetadata{}
	for _, projectKey := range projectKeys {
		snapshot, err := h.store.GetMetadata(ctx, projectKey)
		if err != nil {
			return nil, fmt.Errorf("failed to load metadata for project %s: %v", projectKey, err)
		}
		if snapshot == nil {
			continue
		}
		merged.Projects = append(merged.Projects, snapshot.Projects...)
	}
	return merged, nil
}

// collectIssueTypes gathers every issue type of the selected projects, used
// by the conflict detector to resolve issue-type ids to display names
func collectIssueTypes(metadata *model.IssueMetadata, projectKeys []string) []model.IssueType {
	var issueTypes []model.IssueType
	for _, projectKey := range projectKeys {
		for _, project := range metadata.Projects {
			if project.Key != projectKey {
				continue
			}
			issueTypes = append(issueTypes, project.IssueTypes...)
		}
	}
	return issueTypes
}

// repairStaleFilters drops configured filters whose field key no longer
// appears in the freshly built catalog. The dropped keys are reported so
// the user can be warned that the subscription was silently repaired.
func repairStaleFilters(catalog []engine.FilterableField, configured []model.FilterValue) (kept []model.FilterValue, dropped []string) {
	for _, filter := range configured {
		if engine.FindField(catalog, filter.Key) == nil {
			dropped = append(dropped, filter.Key)
			continue
		}
		kept = append(kept, filter)
	}
	return kept, dropped
}
