package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jshacar-hms/requesthelp/internal/model"
)

// SlackNotifier posts the room's help request to a Slack incoming webhook.
// Chat is a best-effort side channel: callers log failures but never surface
// them to the person at the panel.
type SlackNotifier struct {
	webhookURL string
	httpClient *http.Client
}

// NewSlackNotifier creates a notifier for the given webhook URL.
func NewSlackNotifier(webhookURL string) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type slackMessage struct {
	Text string `json:"text"`
}

// Notify sends the room notification for s. Returns a *Error on transport
// failure or a non-2xx response.
func (n *SlackNotifier) Notify(ctx context.Context, s model.Session) error {
	msg := slackMessage{
		Text: fmt.Sprintf("%s - The customer %s has reported an issue in this room.",
			s.Device.DisplayName, s.UserEmail),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return &Error{Channel: model.ChannelChat, Err: fmt.Errorf("marshal message: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return &Error{Channel: model.ChannelChat, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return &Error{Channel: model.ChannelChat, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &Error{Channel: model.ChannelChat, StatusCode: resp.StatusCode, Detail: string(detail)}
	}

	return nil
}
