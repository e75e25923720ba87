// Package dispatch holds the two outbound notification channels: the Slack
// room webhook and the ServiceNow incident API. These are the only external
// side effects in the system beyond UI prompts.
package dispatch

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jshacar-hms/requesthelp/internal/model"
)

// Dispatcher fans a confirmed help request out to the notification channels.
// The workflow decides which operations to invoke and how; each call here is
// a single external side-effecting attempt with no internal retry.
type Dispatcher interface {
	SendChatNotification(ctx context.Context, s model.Session) model.NotificationOutcome
	CreateTicket(ctx context.Context, s model.Session) model.NotificationOutcome
}

// Fanout is the production Dispatcher backed by Slack and ServiceNow.
type Fanout struct {
	chat    *SlackNotifier
	tickets *ServiceNowClient
	logger  *slog.Logger
}

func NewFanout(chat *SlackNotifier, tickets *ServiceNowClient, logger *slog.Logger) *Fanout {
	return &Fanout{chat: chat, tickets: tickets, logger: logger}
}

// SendChatNotification posts the room notification and reports the outcome.
func (f *Fanout) SendChatNotification(ctx context.Context, s model.Session) model.NotificationOutcome {
	if err := f.chat.Notify(ctx, s); err != nil {
		f.logger.Warn("chat notification failed", "session", s.ID, "error", err)
		return model.NotificationOutcome{Channel: model.ChannelChat, Error: err.Error()}
	}
	return model.NotificationOutcome{Channel: model.ChannelChat, Success: true}
}

// CreateTicket opens the incident and reports the outcome. The Error field
// carries the user-displayable detail on failure.
func (f *Fanout) CreateTicket(ctx context.Context, s model.Session) model.NotificationOutcome {
	number, err := f.tickets.Create(ctx, s)
	if err != nil {
		f.logger.Error("ticket creation failed", "session", s.ID, "error", err)
		var derr *Error
		if errors.As(err, &derr) {
			return model.NotificationOutcome{Channel: model.ChannelTicket, Error: derr.UserMessage()}
		}
		return model.NotificationOutcome{Channel: model.ChannelTicket, Error: "Unable to create ticket"}
	}
	return model.NotificationOutcome{Channel: model.ChannelTicket, Success: true, Reference: number}
}
