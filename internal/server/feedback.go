package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jshacar-hms/requesthelp/internal/device"
	"github.com/jshacar-hms/requesthelp/internal/ui"
)

// Feedback event types posted by the device.
const (
	EventPanelClicked   = "panel-clicked"
	EventTextResponse   = "text-response"
	EventPromptResponse = "prompt-response"
)

// FeedbackEvent is the device's wire format for a single UI event.
type FeedbackEvent struct {
	Type string `json:"type"`
	// PanelID is set on panel-clicked events.
	PanelID string `json:"panelId,omitempty"`
	// CorrelationID echoes the FeedbackId of the prompt being answered.
	CorrelationID string `json:"correlationId,omitempty"`
	// Text is the submitted value on text-response events.
	Text string `json:"text,omitempty"`
	// OptionIndex is the zero-based chosen option on prompt-response events.
	OptionIndex int `json:"optionIndex"`
}

// FeedbackHandler turns device feedback events into workflow calls.
type FeedbackHandler struct {
	trigger   Trigger
	responder ui.Responder
	logger    *slog.Logger
}

func NewFeedbackHandler(trigger Trigger, responder ui.Responder, logger *slog.Logger) *FeedbackHandler {
	return &FeedbackHandler{trigger: trigger, responder: responder, logger: logger}
}

// Health reports liveness.
func (h *FeedbackHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Event receives one feedback event and routes it. Unknown panel IDs and
// event types are acknowledged and ignored so the device's feedback feed can
// carry traffic for other integrations.
func (h *FeedbackHandler) Event(w http.ResponseWriter, r *http.Request) {
	var ev FeedbackEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, "invalid event body")
		return
	}

	switch ev.Type {
	case EventPanelClicked:
		if ev.PanelID != device.PanelID {
			break
		}
		h.trigger.Trigger()
	case EventTextResponse:
		if ev.CorrelationID == "" {
			writeError(w, http.StatusBadRequest, "missing correlationId")
			return
		}
		h.responder.SubmitText(ev.CorrelationID, ev.Text)
	case EventPromptResponse:
		if ev.CorrelationID == "" {
			writeError(w, http.StatusBadRequest, "missing correlationId")
			return
		}
		h.responder.SelectChoice(ev.CorrelationID, ev.OptionIndex)
	default:
		h.logger.Debug("ignoring feedback event", "type", ev.Type)
	}

	w.WriteHeader(http.StatusAccepted)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
