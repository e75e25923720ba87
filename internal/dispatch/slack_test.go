package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jshacar-hms/requesthelp/internal/model"
)

func TestNotifySendsRoomMessage(t *testing.T) {
	var got slackMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
	}))
	defer srv.Close()

	if err := NewSlackNotifier(srv.URL).Notify(context.Background(), testSession()); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	want := "Gordon Hall 104 - The customer user@example.com has reported an issue in this room."
	if got.Text != want {
		t.Errorf("message = %q, want %q", got.Text, want)
	}
}

func TestNotifyNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid_payload", http.StatusBadRequest)
	}))
	defer srv.Close()

	err := NewSlackNotifier(srv.URL).Notify(context.Background(), testSession())
	if err == nil {
		t.Fatal("Notify() expected error")
	}

	var derr *Error
	if !errors.As(err, &derr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if derr.Channel != model.ChannelChat {
		t.Errorf("channel = %q, want chat", derr.Channel)
	}
	if derr.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", derr.StatusCode)
	}
}

func TestNotifyTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	err := NewSlackNotifier(srv.URL).Notify(context.Background(), testSession())
	if err == nil {
		t.Fatal("Notify() expected error")
	}
	var derr *Error
	if !errors.As(err, &derr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if derr.StatusCode != 0 {
		t.Errorf("status = %d, want 0 for transport failure", derr.StatusCode)
	}
}
