package device

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/jshacar-hms/requesthelp/internal/model"
	"github.com/jshacar-hms/requesthelp/internal/ui"
)

// PanelID identifies the Request Help button on the device's home screen.
// Feedback events for panel clicks carry this ID.
const PanelID = "requesthelp"

// Client talks to the room device's HTTP command API. It implements
// ui.Prompter by rendering prompts on the touch panel, and IdentitySource by
// reading the device's status attributes.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

// NewClient creates a device client for the given base URL and credentials.
func NewClient(baseURL, username, password string) *Client {
	return &Client{
		baseURL:  baseURL,
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type commandRequest struct {
	Command string            `json:"command"`
	Params  map[string]string `json:"params,omitempty"`
}

// command posts a single device command and checks for a 2xx response.
func (c *Client) command(ctx context.Context, command string, params map[string]string) error {
	body, err := json.Marshal(commandRequest{Command: command, Params: params})
	if err != nil {
		return fmt.Errorf("marshal command: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/command", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("device command %s: HTTP %d: %s", command, resp.StatusCode, string(detail))
	}
	return nil
}

// ShowTextInput renders a text input prompt keyed by the correlation ID.
func (c *Client) ShowTextInput(correlationID, title, text string) error {
	return c.command(context.Background(), "UserInterface.Message.TextInput.Display", map[string]string{
		"FeedbackId": correlationID,
		"Title":      title,
		"Text":       text,
	})
}

// ShowChoice renders a prompt with ordered labeled options.
func (c *Client) ShowChoice(correlationID, title, text string, choices []ui.Choice) error {
	params := map[string]string{
		"FeedbackId": correlationID,
		"Title":      title,
		"Text":       text,
	}
	for i, ch := range choices {
		params["Option."+strconv.Itoa(i+1)] = ch.Label
	}
	return c.command(context.Background(), "UserInterface.Message.Prompt.Display", params)
}

// ShowMessage renders a transient alert.
func (c *Client) ShowMessage(title, text string, duration time.Duration) error {
	params := map[string]string{
		"Title": title,
		"Text":  text,
	}
	if duration > 0 {
		params["Duration"] = strconv.Itoa(int(duration.Seconds()))
	}
	return c.command(context.Background(), "UserInterface.Message.Alert.Display", params)
}

// RegisterPanel saves the Request Help button on the device home screen so
// pressing it emits panel-clicked feedback events for PanelID.
func (c *Client) RegisterPanel(ctx context.Context) error {
	return c.command(ctx, "UserInterface.Extensions.Panel.Save", map[string]string{
		"PanelId":  PanelID,
		"Name":     "Request Help",
		"Icon":     "Concierge",
		"Color":    "#D43B52",
		"Location": "HomeScreenAndCallControls",
	})
}

// Snapshot reads the device identity attributes.
func (c *Client) Snapshot(ctx context.Context) (model.DeviceIdentity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/identity", nil)
	if err != nil {
		return model.DeviceIdentity{}, fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.DeviceIdentity{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.DeviceIdentity{}, fmt.Errorf("device identity: HTTP %d", resp.StatusCode)
	}

	var ident struct {
		DisplayName     string `json:"displayName"`
		SerialNumber    string `json:"serialNumber"`
		IPAddress       string `json:"ipAddress"`
		SoftwareVersion string `json:"softwareVersion"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ident); err != nil {
		return model.DeviceIdentity{}, fmt.Errorf("decode identity: %w", err)
	}

	return model.DeviceIdentity{
		DisplayName:     ident.DisplayName,
		SerialNumber:    ident.SerialNumber,
		IPAddress:       ident.IPAddress,
		SoftwareVersion: ident.SoftwareVersion,
	}, nil
}
