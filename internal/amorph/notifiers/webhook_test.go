package notifiers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stefanbringuier/genamorph/internal/amorph"
)

func TestWebhookNotifier_Identity(t *testing.T) {
	notifier := NewWebhookNotifier("test-webhook", "http://localhost:9999/webhook")

	if notifier.ID() != "test-webhook" {
		t.Errorf("Expected ID 'test-webhook', got '%s'", notifier.ID())
	}
	if notifier.Type() != "webhook" {
		t.Errorf("Expected type 'webhook', got '%s'", notifier.Type())
	}
	if notifier.URL() != "http://localhost:9999/webhook" {
		t.Errorf("Expected configured URL, got '%s'", notifier.URL())
	}
	if err := notifier.Close(); err != nil {
		t.Errorf("Close should not return error: %v", err)
	}
}

func TestWebhookNotifier_Notify(t *testing.T) {
	var received amorph.ProgressEvent
	var gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Test")
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("Expected valid JSON body, got %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	notifier := NewWebhookNotifier("hook", srv.URL)
	notifier.SetHeader("X-Test", "yes")

	event := amorph.ProgressEvent{
		Build:  "silica",
		Symbol: "Si",
		Placed: 3,
		Total:  10,
	}
	if err := notifier.Notify(context.Background(), event); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if received.Build != "silica" || received.Symbol != "Si" || received.Placed != 3 {
		t.Errorf("Expected delivered event to match, got %+v", received)
	}
	if gotHeader != "yes" {
		t.Errorf("Expected custom header to be sent, got %q", gotHeader)
	}
}

func TestWebhookNotifier_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	notifier := NewWebhookNotifier("hook", srv.URL)
	if err := notifier.Notify(context.Background(), amorph.ProgressEvent{}); err == nil {
		t.Error("Expected error for non-2xx response")
	}
}
