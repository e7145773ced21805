package handler

import (
	"fmt"

	"github.com/slack-go/slack"

	"jira_notifier/internal/logger"
)

// add error emoji to the error message
const defaultErrorMessage = "❌ Something went wrong while processing your request. Please try again later. ```Error: %s```"

// sendChannelMessage posts a message to a Slack channel, threaded when
// threadTS is non-empty
func (h *SubscriptionHandler) sendChannelMessage(channel string, message string, threadTS string) error {
	_, _, err := h.api.PostMessage(
		channel,
		slack.MsgOptionText(message, false),
		slack.MsgOptionTS(threadTS))
	if err != nil {
		logger.GetLogger().Error(fmt.Sprintf("failed to post message due to %s", err))
	}
	return err
}
