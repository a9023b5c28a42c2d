package amorph

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"
)

// ProgressEvent is emitted once per placed particle and once on build
// completion (Placed == Total with an empty Symbol is not used; completion
// is simply the last particle event, consumers compare Placed to Total).
type ProgressEvent struct {
	Build     string  `json:"build"`
	Symbol    string  `json:"symbol"`
	Position  Vec3    `json:"position"`
	Placed    int     `json:"placed"`
	Total     int     `json:"total"`
	Fallback  bool    `json:"fallback"`
	Timestamp int64   `json:"timestamp"`
}

// JSON encodes the event for delivery over the wire.
func (e ProgressEvent) JSON() ([]byte, error) {
	return json.Marshal(e)
}

// Notifier is the interface that all progress delivery channels implement.
type Notifier interface {
	// ID returns a unique identifier for this notifier
	ID() string

	// Type returns the type of notifier (e.g., "webhook", "websocket")
	Type() string

	// Notify delivers one progress event. Returns an error if delivery fails.
	// The context can be used for cancellation and timeout.
	Notify(ctx context.Context, event ProgressEvent) error

	// Close closes the notifier and releases any resources
	Close() error
}

// notificationJob is one event queued for asynchronous delivery.
type notificationJob struct {
	Event ProgressEvent
}

// NotificationManager fans progress events out to all registered
// notifiers from a worker goroutine, so slow consumers never stall a
// running build.
type NotificationManager struct {
	mu        sync.RWMutex
	notifiers map[string]Notifier
	jobs      chan notificationJob
	closed    bool
	wg        sync.WaitGroup
}

// NewNotificationManager creates a manager with one delivery worker.
func NewNotificationManager() *NotificationManager {
	mgr := &NotificationManager{
		notifiers: make(map[string]Notifier),
		jobs:      make(chan notificationJob, 1024),
	}
	mgr.startWorkers(1)
	return mgr
}

// RegisterNotifier registers a notifier with the manager
func (nm *NotificationManager) RegisterNotifier(notifier Notifier) error {
	if notifier == nil {
		return fmt.Errorf("notifier cannot be nil")
	}

	id := notifier.ID()
	if id == "" {
		return fmt.Errorf("notifier ID cannot be empty")
	}

	nm.mu.Lock()
	defer nm.mu.Unlock()

	if _, exists := nm.notifiers[id]; exists {
		return fmt.Errorf("notifier with ID %s already exists", id)
	}

	nm.notifiers[id] = notifier
	return nil
}

// UnregisterNotifier removes a notifier from the manager
func (nm *NotificationManager) UnregisterNotifier(id string) error {
	nm.mu.Lock()
	notifier, exists := nm.notifiers[id]
	nm.mu.Unlock()

	if !exists {
		return fmt.Errorf("notifier with ID %s not found", id)
	}

	if err := notifier.Close(); err != nil {
		return fmt.Errorf("error closing notifier %s: %w", id, err)
	}

	nm.mu.Lock()
	delete(nm.notifiers, id)
	nm.mu.Unlock()

	return nil
}

// GetNotifier retrieves a notifier by ID
func (nm *NotificationManager) GetNotifier(id string) (Notifier, bool) {
	nm.mu.RLock()
	defer nm.mu.RUnlock()
	notifier, exists := nm.notifiers[id]
	return notifier, exists
}

// ListNotifiers returns a list of all registered notifier IDs
func (nm *NotificationManager) ListNotifiers() []string {
	nm.mu.RLock()
	defer nm.mu.RUnlock()
	ids := make([]string, 0, len(nm.notifiers))
	for id := range nm.notifiers {
		ids = append(ids, id)
	}
	return ids
}

// Publish enqueues one event for delivery to every registered notifier.
// Non-blocking: if the queue is full the event is dropped with a log
// line, progress events are advisory.
func (nm *NotificationManager) Publish(event ProgressEvent) {
	nm.mu.RLock()
	closed := nm.closed
	empty := len(nm.notifiers) == 0
	nm.mu.RUnlock()

	if closed || empty {
		return
	}

	select {
	case nm.jobs <- notificationJob{Event: event}:
	default:
		log.Printf("notification queue full, dropping progress event: build=%s placed=%d", event.Build, event.Placed)
	}
}

// startWorkers starts n worker goroutines to process notification jobs
func (nm *NotificationManager) startWorkers(n int) {
	for i := 0; i < n; i++ {
		nm.wg.Add(1)
		go nm.worker()
	}
}

// worker processes notification jobs from the queue
func (nm *NotificationManager) worker() {
	defer nm.wg.Done()
	for job := range nm.jobs {
		nm.dispatchJob(job)
	}
}

// dispatchJob delivers one event to every registered notifier.
func (nm *NotificationManager) dispatchJob(job notificationJob) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	nm.mu.RLock()
	targets := make([]Notifier, 0, len(nm.notifiers))
	for _, n := range nm.notifiers {
		targets = append(targets, n)
	}
	nm.mu.RUnlock()

	for _, notifier := range targets {
		if err := notifier.Notify(ctx, job.Event); err != nil {
			log.Printf("notification failed: notifier=%s error=%v", notifier.ID(), err)
		}
	}
}

// Close stops the workers and closes all registered notifiers.
func (nm *NotificationManager) Close() error {
	nm.mu.Lock()
	if nm.closed {
		nm.mu.Unlock()
		return nil
	}
	nm.closed = true
	close(nm.jobs)
	notifiers := make([]Notifier, 0, len(nm.notifiers))
	for _, n := range nm.notifiers {
		notifiers = append(notifiers, n)
	}
	nm.notifiers = make(map[string]Notifier)
	nm.mu.Unlock()

	nm.wg.Wait()

	var firstErr error
	for _, n := range notifiers {
		if err := n.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
