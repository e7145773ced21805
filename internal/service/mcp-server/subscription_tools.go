package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"jira_notifier/internal/engine"
	"jira_notifier/internal/model"
)

// registerSubscriptionTools registers all subscription-related tools with the server
func registerSubscriptionTools(s *server.MCPServer) error {
	// List filterable fields tool
	listFieldsTool := mcp.NewTool("list_filter_fields",
		mcp.WithDescription("List the fields a channel subscription can filter on, derived from project metadata"),
		mcp.WithString("metadata",
			mcp.Required(),
			mcp.Description("Raw issue metadata JSON ({\"projects\": [...]})"),
		),
		mcp.WithString("projects",
			mcp.Required(),
			mcp.Description("Comma-separated project keys (e.g., 'KT,OPS')"),
		),
	)

	// Conflict check tool
	checkConflictsTool := mcp.NewTool("check_subscription_conflicts",
		mcp.WithDescription("Check configured subscription filters against an issue-type selection"),
		mcp.WithString("metadata",
			mcp.Required(),
			mcp.Description("Raw issue metadata JSON"),
		),
		mcp.WithString("projects",
			mcp.Required(),
			mcp.Description("Comma-separated project keys"),
		),
		mcp.WithString("issue_types",
			mcp.Required(),
			mcp.Description("Comma-separated selected issue type ids"),
		),
		mcp.WithString("filters",
			mcp.Required(),
			mcp.Description("Configured filters as a JSON array of {key, inclusion, values}"),
		),
		mcp.WithString("previous_issue_types",
			mcp.Description("Previously selected issue type ids; when set, only newly added ids are checked"),
		),
	)

	// Query preview tool
	previewTool := mcp.NewTool("preview_subscription_query",
		mcp.WithDescription("Render the approximate query a subscription will match, for human review"),
		mcp.WithString("metadata",
			mcp.Required(),
			mcp.Description("Raw issue metadata JSON"),
		),
		mcp.WithString("filters",
			mcp.Required(),
			mcp.Description("Subscription filters as JSON ({events, projects, issue_types, fields})"),
		),
		mcp.WithBoolean("security_level_empty",
			mcp.Description("Treat subscriptions without a security-level filter as 'security is EMPTY'"),
		),
	)

	// Register tools with handlers
	s.AddTool(listFieldsTool, handleListFilterFields)
	s.AddTool(checkConflictsTool, handleCheckConflicts)
	s.AddTool(previewTool, handlePreviewQuery)

	return nil
}

func handleListFilterFields(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	metadata, err := metadataArg(request)
	if err != nil {
		return nil, err
	}
	projects, err := csvArg(request, "projects")
	if err != nil {
		return nil, err
	}

	catalog := engine.BuildFilterCatalog(metadata, projects)

	jsonResult, err := json.Marshal(catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %v", err)
	}
	return mcp.NewToolResultText(string(jsonResult)), nil
}

func handleCheckConflicts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	metadata, err := metadataArg(request)
	if err != nil {
		return nil, err
	}
	projects, err := csvArg(request, "projects")
	if err != nil {
		return nil, err
	}
	selected, err := csvArg(request, "issue_types")
	if err != nil {
		return nil, err
	}

	filtersJSON, ok := request.Params.Arguments["filters"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid filters parameter")
	}
	var configured []model.FilterValue
	if err := json.Unmarshal([]byte(filtersJSON), &configured); err != nil {
		return nil, fmt.Errorf("failed to parse filters: %v", err)
	}

	catalog := engine.BuildFilterCatalog(metadata, projects)
	var issueTypes []model.IssueType
	for _, projectKey := range projects {
		for _, project := range metadata.Projects {
			if project.Key == projectKey {
				issueTypes = append(issueTypes, project.IssueTypes...)
			}
		}
	}

	var conflict string
	if previous, ok := request.Params.Arguments["previous_issue_types"].(string); ok && previous != "" {
		conflict = engine.CheckAddedIssueTypes(catalog, issueTypes, splitCSV(previous), selected, configured)
	} else {
		conflict = engine.CheckFieldConflicts(catalog, issueTypes, selected, configured)
	}

	result := map[string]any{
		"valid": conflict == "",
	}
	if conflict != "" {
		result["error"] = conflict
	}
	jsonResult, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %v", err)
	}
	return mcp.NewToolResultText(string(jsonResult)), nil
}

func handlePreviewQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	metadata, err := metadataArg(request)
	if err != nil {
		return nil, err
	}

	filtersJSON, ok := request.Params.Arguments["filters"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid filters parameter")
	}
	var filters model.SubscriptionFilters
	if err := json.Unmarshal([]byte(filtersJSON), &filters); err != nil {
		return nil, fmt.Errorf("failed to parse filters: %v", err)
	}

	securityLevelEmpty := false
	if v, ok := request.Params.Arguments["security_level_empty"].(bool); ok {
		securityLevelEmpty = v
	}

	catalog := engine.BuildFilterCatalog(metadata, filters.Projects)
	preview := engine.SynthesizeQuery(filters, catalog, securityLevelEmpty)

	jsonResult, err := json.Marshal(preview)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %v", err)
	}
	return mcp.NewToolResultText(string(jsonResult)), nil
}

func metadataArg(request mcp.CallToolRequest) (*model.IssueMetadata, error) {
	raw, ok := request.Params.Arguments["metadata"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid metadata parameter")
	}
	var metadata model.IssueMetadata
	if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %v", err)
	}
	return &metadata, nil
}

func csvArg(request mcp.CallToolRequest, name string) ([]string, error) {
	raw, ok := request.Params.Arguments[name].(string)
	if !ok {
		return nil, fmt.Errorf("invalid %s parameter", name)
	}
	return splitCSV(raw), nil
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
