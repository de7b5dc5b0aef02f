// Package slack posts one-message operational summaries (poll cycle
// results, generated reports) to a configured channel. Delivery is entirely
// optional: a nil Notifier is a no-op.
package slack

import (
	"log"

	"github.com/slack-go/slack"

	"triagebot/internal/config"
)

type Notifier struct {
	api       *slack.Client
	channelID string
}

// NewNotifier returns nil when Slack is not configured; callers treat a nil
// notifier as disabled.
func NewNotifier(cfg config.Config) *Notifier {
	if !cfg.SlackConfigured() {
		return nil
	}
	return &Notifier{
		api:       slack.New(cfg.SlackBotToken),
		channelID: cfg.SlackChannelID,
	}
}

// PostSummary sends the text to the configured channel. Failures are logged
// and swallowed: summary delivery must never affect the triage cycle.
func (n *Notifier) PostSummary(text string) {
	if n == nil {
		return
	}
	_, _, err := n.api.PostMessage(n.channelID, slack.MsgOptionText(text, false))
	if err != nil {
		log.Printf("slack post error: %v", err)
	}
}
