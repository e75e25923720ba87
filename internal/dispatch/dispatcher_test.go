package dispatch

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jshacar-hms/requesthelp/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFanoutOutcomes(t *testing.T) {
	snow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"result":{"number":"INC007"}}`))
	}))
	defer snow.Close()

	chatDown := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer chatDown.Close()

	f := NewFanout(NewSlackNotifier(chatDown.URL), snowClient(snow), discardLogger())

	chat := f.SendChatNotification(context.Background(), testSession())
	if chat.Success {
		t.Error("chat outcome should be a failure")
	}
	if chat.Channel != model.ChannelChat || chat.Error == "" {
		t.Errorf("chat outcome = %+v", chat)
	}

	ticket := f.CreateTicket(context.Background(), testSession())
	if !ticket.Success {
		t.Fatalf("ticket outcome = %+v", ticket)
	}
	if ticket.Reference != "INC007" {
		t.Errorf("reference = %q, want INC007", ticket.Reference)
	}
}

func TestFanoutTicketFailureCarriesUserMessage(t *testing.T) {
	snow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer snow.Close()

	f := NewFanout(NewSlackNotifier("http://unused.invalid"), snowClient(snow), discardLogger())

	out := f.CreateTicket(context.Background(), testSession())
	if out.Success {
		t.Fatal("expected failure outcome")
	}
	if out.Error != "Status code: 403" {
		t.Errorf("outcome error = %q, want %q", out.Error, "Status code: 403")
	}
}
