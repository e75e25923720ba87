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

// ServiceNowClient creates incidents through the ServiceNow table API. This
// is the one channel the person at the panel is guaranteed feedback about,
// so every failure mode carries enough detail to display.
type ServiceNowClient struct {
	baseURL    string
	authKey    string // base64 basic-auth credentials
	httpClient *http.Client
}

// NewServiceNowClient builds a client for the instance rooted at baseURL
// (e.g. https://harvardmed.service-now.com) with the base64 credential.
func NewServiceNowClient(baseURL, key string) *ServiceNowClient {
	return &ServiceNowClient{
		baseURL: baseURL,
		authKey: key,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type incidentResponse struct {
	Result struct {
		Number string `json:"number"`
	} `json:"result"`
}

// Create opens an incident for s and returns the ticket number. Any
// non-success status, a success body without a ticket number, or a transport
// failure comes back as a *Error.
func (c *ServiceNowClient) Create(ctx context.Context, s model.Session) (string, error) {
	body, err := json.Marshal(NewTicketRequest(s))
	if err != nil {
		return "", &Error{Channel: model.ChannelTicket, Err: fmt.Errorf("marshal incident: %w", err)}
	}

	url := c.baseURL + "/api/now/table/incident"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &Error{Channel: model.ChannelTicket, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+c.authKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &Error{Channel: model.ChannelTicket, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Channel: model.ChannelTicket, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &Error{Channel: model.ChannelTicket, StatusCode: resp.StatusCode, Detail: string(respBody)}
	}

	var parsed incidentResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &Error{Channel: model.ChannelTicket, StatusCode: resp.StatusCode, Detail: "unparsable response body"}
	}
	if parsed.Result.Number == "" {
		return "", &Error{Channel: model.ChannelTicket, StatusCode: resp.StatusCode, Detail: "response missing ticket number"}
	}

	return parsed.Result.Number, nil
}
