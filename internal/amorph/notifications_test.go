package amorph

import (
	"context"
	"sync"
	"testing"
	"time"
)

// recordingNotifier captures delivered events for assertions.
type recordingNotifier struct {
	id     string
	mu     sync.Mutex
	events []ProgressEvent
	closed bool
}

func (r *recordingNotifier) ID() string   { return r.id }
func (r *recordingNotifier) Type() string { return "recording" }

func (r *recordingNotifier) Notify(ctx context.Context, event ProgressEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingNotifier) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *recordingNotifier) eventCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestNotificationManager_RegisterAndPublish(t *testing.T) {
	mgr := NewNotificationManager()
	defer mgr.Close()

	rec := &recordingNotifier{id: "rec"}
	if err := mgr.RegisterNotifier(rec); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := mgr.RegisterNotifier(rec); err == nil {
		t.Error("Expected error registering duplicate ID")
	}
	if err := mgr.RegisterNotifier(nil); err == nil {
		t.Error("Expected error registering nil notifier")
	}

	mgr.Publish(ProgressEvent{Build: "b1", Symbol: "Si", Placed: 1, Total: 2})
	mgr.Publish(ProgressEvent{Build: "b1", Symbol: "Si", Placed: 2, Total: 2, Fallback: true})

	waitFor(t, func() bool { return rec.eventCount() == 2 })

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.events[0].Placed != 1 || rec.events[1].Placed != 2 {
		t.Errorf("Expected events in publish order, got %+v", rec.events)
	}
	if !rec.events[1].Fallback {
		t.Error("Expected fallback flag to survive delivery")
	}
}

func TestNotificationManager_Unregister(t *testing.T) {
	mgr := NewNotificationManager()
	defer mgr.Close()

	rec := &recordingNotifier{id: "rec"}
	if err := mgr.RegisterNotifier(rec); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got := mgr.ListNotifiers(); len(got) != 1 || got[0] != "rec" {
		t.Errorf("Expected notifier list [rec], got %v", got)
	}

	if err := mgr.UnregisterNotifier("rec"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !rec.closed {
		t.Error("Expected notifier to be closed on unregister")
	}
	if err := mgr.UnregisterNotifier("rec"); err == nil {
		t.Error("Expected error unregistering missing notifier")
	}

	// Publishing with no notifiers is a no-op.
	mgr.Publish(ProgressEvent{Build: "b1"})
	if rec.eventCount() != 0 {
		t.Error("Expected no deliveries after unregister")
	}
}

func TestNotificationManager_CloseIdempotent(t *testing.T) {
	mgr := NewNotificationManager()
	rec := &recordingNotifier{id: "rec"}
	if err := mgr.RegisterNotifier(rec); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := mgr.Close(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !rec.closed {
		t.Error("Expected registered notifier to be closed")
	}
	if err := mgr.Close(); err != nil {
		t.Errorf("Expected second close to be a no-op, got %v", err)
	}
}

func TestBuilder_PublishesProgressEvents(t *testing.T) {
	mgr := NewNotificationManager()
	defer mgr.Close()
	rec := &recordingNotifier{id: "rec"}
	if err := mgr.RegisterNotifier(rec); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	table := NewPropertyTable()
	si, _ := table.Lookup("Si")
	box := Box{12, 12, 12}
	builder := NewBuilder(table, Options{Seed: 4})
	builder.SetNotificationManager(mgr, "my-build")

	result, err := builder.Build(Stoichiometry{{Symbol: "Si", Weight: 1}}, box, densityForAtoms(si, 4, box))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	waitFor(t, func() bool { return rec.eventCount() == len(result.Particles) })

	rec.mu.Lock()
	defer rec.mu.Unlock()
	for i, ev := range rec.events {
		if ev.Build != "my-build" {
			t.Errorf("Expected build name my-build, got %q", ev.Build)
		}
		if ev.Placed != i+1 || ev.Total != len(result.Particles) {
			t.Errorf("Expected event %d to report %d/%d, got %d/%d", i, i+1, len(result.Particles), ev.Placed, ev.Total)
		}
	}
}
