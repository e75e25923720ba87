package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jshacar-hms/requesthelp/internal/model"
)

func testSession() model.Session {
	return model.Session{
		ID: "sess-1",
		Device: model.DeviceIdentity{
			DisplayName:     "Gordon Hall 104",
			SerialNumber:    "FOC1234",
			IPAddress:       "10.1.2.3",
			SoftwareVersion: "ce11.5",
		},
		UserEmail: "user@example.com",
	}
}

func snowClient(srv *httptest.Server) *ServiceNowClient {
	return NewServiceNowClient(srv.URL, "dGVzdDp0ZXN0")
}

func TestCreateParsesTicketNumber(t *testing.T) {
	var gotAuth string
	var gotBody TicketRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"result":{"number":"INC001"}}`))
	}))
	defer srv.Close()

	number, err := snowClient(srv).Create(context.Background(), testSession())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if number != "INC001" {
		t.Errorf("Create() number = %q, want INC001", number)
	}
	if gotAuth != "Basic dGVzdDp0ZXN0" {
		t.Errorf("Authorization = %q, want basic auth header", gotAuth)
	}

	// Incident fields derived from the session
	if gotBody.CallerID != "user@example.com" {
		t.Errorf("caller_id = %q", gotBody.CallerID)
	}
	if gotBody.ShortDescription != "Issue in Gordon Hall 104 reported by user@example.com" {
		t.Errorf("short_description = %q", gotBody.ShortDescription)
	}
	for _, want := range []string{
		"Customer - user@example.com",
		"Room Name - Gordon Hall 104",
		"IP Address - 10.1.2.3",
		"Software - ce11.5",
		"Device Serial - FOC1234",
	} {
		if !strings.Contains(gotBody.Description, want) {
			t.Errorf("description missing %q:\n%s", want, gotBody.Description)
		}
	}
	if gotBody.AssignmentGroup != "SN All Media" || gotBody.Category != "Troubleshoot" {
		t.Errorf("unexpected routing fields: %+v", gotBody)
	}
}

// Status 200 counts as success, not just 201.
func TestCreateAcceptsStatus200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":{"number":"INC002"}}`))
	}))
	defer srv.Close()

	number, err := snowClient(srv).Create(context.Background(), testSession())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if number != "INC002" {
		t.Errorf("number = %q, want INC002", number)
	}
}

func TestCreateErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantStatus  int
		wantMessage string
	}{
		{"unauthorized", 401, `{"error":"nope"}`, 401, "Status code: 401"},
		{"server error", 500, ``, 500, "Status code: 500"},
		{"redirect is not success", 302, ``, 302, "Status code: 302"},
		{"unparsable success body", 201, `not json`, 201, "Status code: 201"},
		{"success body missing number", 201, `{"result":{}}`, 201, "Status code: 201"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := snowClient(srv).Create(context.Background(), testSession())
			if err == nil {
				t.Fatal("Create() expected error")
			}

			var derr *Error
			if !errors.As(err, &derr) {
				t.Fatalf("error type = %T, want *Error", err)
			}
			if derr.Channel != model.ChannelTicket {
				t.Errorf("channel = %q, want ticket", derr.Channel)
			}
			if derr.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", derr.StatusCode, tt.wantStatus)
			}
			if derr.UserMessage() != tt.wantMessage {
				t.Errorf("UserMessage() = %q, want %q", derr.UserMessage(), tt.wantMessage)
			}
		})
	}
}

func TestCreateTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := snowClient(srv).Create(context.Background(), testSession())
	if err == nil {
		t.Fatal("Create() expected error")
	}

	var derr *Error
	if !errors.As(err, &derr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if derr.StatusCode != 0 {
		t.Errorf("status = %d, want 0 for transport failure", derr.StatusCode)
	}
	if derr.UserMessage() != "Unable to create ticket" {
		t.Errorf("UserMessage() = %q", derr.UserMessage())
	}
}
