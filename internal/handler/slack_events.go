package handler

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack/slackevents"
	"go.uber.org/zap"

	"jira_notifier/internal/engine"
	"jira_notifier/internal/logger"
)

// HandleSlackEvents handles the POST request to /slack/events. The bot
// answers "fields <PROJECT-KEY>" mentions with the filterable fields of
// that project, so users can discover what a subscription may filter on
// without opening the configurator.
func (h *SubscriptionHandler) HandleSlackEvents(c *gin.Context) {
	logger := logger.GetLogger()

	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		logger.Error("empty request body")
		c.JSON(200, gin.H{"error": "empty request body"})
		return
	}

	eventsAPIEvent, err := slackevents.ParseEvent(
		json.RawMessage(body),
		slackevents.OptionNoVerifyToken(),
	)
	if err != nil {
		logger.Error("failed to parse slack event", zap.Error(err))
		c.JSON(200, gin.H{"error": "failed to parse slack event"})
		return
	}

	// Handle URL verification challenge
	if eventsAPIEvent.Type == slackevents.URLVerification {
		var challenge *slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &challenge); err != nil {
			logger.Error("failed to unmarshal challenge", zap.Error(err))
			c.JSON(400, gin.H{"error": "failed to parse challenge"})
			return
		}
		c.Header("Content-Type", "text/plain")
		c.String(200, string(body))
		return
	}

	// Handle event callbacks
	if eventsAPIEvent.Type == slackevents.CallbackEvent {
		innerEvent := eventsAPIEvent.InnerEvent
		switch event := innerEvent.Data.(type) {
		case *slackevents.AppMentionEvent:
			if err := h.handleAppMentionEvent(c, event); err != nil {
				logger.Error("failed to handle mention event", zap.Error(err))
				c.JSON(200, gin.H{"error": "failed to handle mention event"})
				return
			}
		default:
			logger.Warn("unsupported event type", zap.String("event_type", fmt.Sprintf("%T", innerEvent.Data)))
		}
	}

	c.JSON(200, gin.H{"status": "ok"})
}

// handleAppMentionEvent answers field-discovery mentions
func (h *SubscriptionHandler) handleAppMentionEvent(c *gin.Context, ev *slackevents.AppMentionEvent) error {
	// Ignore messages from bots to prevent loops
	if ev.BotID != "" {
		return nil
	}

	threadTS := ev.ThreadTimeStamp
	if threadTS == "" {
		threadTS = ev.TimeStamp
	}

	projectKey, ok := parseFieldsCommand(ev.Text)
	if !ok {
		return h.sendChannelMessage(ev.Channel, "Usage: `fields <PROJECT-KEY>` lists the fields a subscription can filter on.", threadTS)
	}

	metadata, err := h.store.GetMetadata(c.Request.Context(), projectKey)
	if err != nil {
		_ = h.sendChannelMessage(ev.Channel, fmt.Sprintf(defaultErrorMessage, err.Error()), threadTS)
		return fmt.Errorf("failed to load metadata for project %s: %v", projectKey, err)
	}

	catalog := engine.BuildFilterCatalog(metadata, []string{projectKey})
	return h.sendChannelMessage(ev.Channel, formatCatalogReply(projectKey, catalog), threadTS)
}

// parseFieldsCommand extracts the project key from a mention like
// "<@U123> fields KT"
func parseFieldsCommand(text string) (string, bool) {
	words := strings.Fields(text)
	for i, word := range words {
		if strings.EqualFold(word, "fields") && i+1 < len(words) {
			return strings.ToUpper(words[i+1]), true
		}
	}
	return "", false
}

func formatCatalogReply(projectKey string, catalog []engine.FilterableField) string {
	if len(catalog) == 0 {
		return fmt.Sprintf("No filterable fields found for project *%s*. Its metadata may not be synced yet.", projectKey)
	}

	lines := make([]string, 0, len(catalog)+1)
	lines = append(lines, fmt.Sprintf("Subscriptions to *%s* can filter on:", projectKey))
	for _, field := range catalog {
		switch {
		case field.UserDefined:
			lines = append(lines, fmt.Sprintf("• %s (free text)", field.Name))
		case len(field.Values) > 0:
			lines = append(lines, fmt.Sprintf("• %s (%d values)", field.Name, len(field.Values)))
		default:
			lines = append(lines, fmt.Sprintf("• %s", field.Name))
		}
	}
	return strings.Join(lines, "\n")
}
