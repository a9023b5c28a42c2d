package notifiers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/stefanbringuier/genamorph/internal/amorph"
)

func TestNewWebSocketNotifier(t *testing.T) {
	notifier := NewWebSocketNotifier("test-ws")
	defer notifier.Close()

	if notifier.ID() != "test-ws" {
		t.Errorf("Expected ID 'test-ws', got '%s'", notifier.ID())
	}
	if notifier.Type() != "websocket" {
		t.Errorf("Expected type 'websocket', got '%s'", notifier.Type())
	}
}

func TestWebSocketNotifier_GetUpgrader(t *testing.T) {
	notifier := NewWebSocketNotifier("test")
	defer notifier.Close()

	upgrader := notifier.GetUpgrader()
	if upgrader.ReadBufferSize == 0 {
		t.Error("Expected non-zero ReadBufferSize")
	}
	if upgrader.WriteBufferSize == 0 {
		t.Error("Expected non-zero WriteBufferSize")
	}
}

func TestWebSocketNotifier_Broadcast(t *testing.T) {
	notifier := NewWebSocketNotifier("test")
	defer notifier.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upgrader := notifier.GetUpgrader()
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("Upgrade failed: %v", err)
			return
		}
		notifier.RegisterClient(conn)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Expected dial to succeed, got %v", err)
	}
	defer conn.Close()

	// Registration goes through a channel; give the run loop a moment.
	deadline := time.Now().Add(2 * time.Second)
	for notifier.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if notifier.ClientCount() != 1 {
		t.Fatal("Expected one registered client")
	}

	event := amorph.ProgressEvent{Build: "silica", Symbol: "O", Placed: 7, Total: 9}
	if err := notifier.Notify(context.Background(), event); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Expected a broadcast message, got %v", err)
	}

	var got amorph.ProgressEvent
	if err := json.Unmarshal(msg, &got); err != nil {
		t.Fatalf("Expected JSON event, got %v", err)
	}
	if got.Build != "silica" || got.Symbol != "O" || got.Placed != 7 {
		t.Errorf("Expected delivered event to match, got %+v", got)
	}
}

func TestWebSocketNotifier_CloseDropsClients(t *testing.T) {
	notifier := NewWebSocketNotifier("test")
	defer notifier.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upgrader := notifier.GetUpgrader()
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		notifier.RegisterClient(conn)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Expected dial to succeed, got %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for notifier.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	if err := notifier.Close(); err != nil {
		t.Fatalf("Expected close to succeed, got %v", err)
	}
	if notifier.ClientCount() != 0 {
		t.Error("Expected no clients after close")
	}
}
