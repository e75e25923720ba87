package workflow

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jshacar-hms/requesthelp/internal/device"
	"github.com/jshacar-hms/requesthelp/internal/dispatch"
	"github.com/jshacar-hms/requesthelp/internal/hours"
	"github.com/jshacar-hms/requesthelp/internal/model"
)

// End to end through the real dispatchers: a confirmed business-hours
// request hits both transports and the 201 response's ticket number lands in
// the success message.
func TestWorkflowThroughRealDispatchers(t *testing.T) {
	var chatHits atomic.Int32
	chat := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chatHits.Add(1)
	}))
	defer chat.Close()

	snow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"result":{"number":"INC001"}}`))
	}))
	defer snow.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fanout := dispatch.NewFanout(
		dispatch.NewSlackNotifier(chat.URL),
		dispatch.NewServiceNowClient(snow.URL, "a2V5"),
		logger,
	)

	prompter := newFakePrompter()
	ident := device.StaticIdentity{Identity: model.DeviceIdentity{DisplayName: "Test Room"}}
	e := NewEngine(prompter, ident, fanout, hours.DefaultWindow(), businessClock, logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go e.Run(ctx)

	e.Trigger()
	text := prompter.next(t)
	e.SubmitText(text.correlationID, "user@example.com")
	confirm := prompter.next(t)
	e.SelectChoice(confirm.correlationID, choiceConfirm)

	msg := prompter.next(t)
	if msg.title != "Success" {
		t.Fatalf("expected success message, got %+v", msg)
	}
	if !strings.Contains(msg.text, "INC001") {
		t.Errorf("success message missing ticket number: %q", msg.text)
	}
	if chatHits.Load() != 1 {
		t.Errorf("chat webhook hit %d times, want 1", chatHits.Load())
	}
}
