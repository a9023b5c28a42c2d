package main

import (
	"time"

	"github.com/stefanbringuier/genamorph/internal/amorph"
	"github.com/stefanbringuier/genamorph/internal/amorph/notifiers"
	"github.com/stefanbringuier/genamorph/internal/logging"
)

// Server is the HTTP surface over the build job manager. One shared
// websocket notifier streams progress events of all jobs; webhook
// notifiers can be registered at runtime.
type Server struct {
	manager        *amorph.JobManager
	notifierMgr    *amorph.NotificationManager
	wsNotifier     *notifiers.WebSocketNotifier
	resultDir      string
	webhookTimeout time.Duration
	logger         *logging.Logger
}

// NewServer creates a new server instance
func NewServer(logger *logging.Logger) *Server {
	notifierMgr := amorph.NewNotificationManager()
	wsNotifier := notifiers.NewWebSocketNotifier("progress-ws")
	if err := notifierMgr.RegisterNotifier(wsNotifier); err != nil {
		logger.Errorf("cannot register websocket notifier: %v", err)
	}

	manager := amorph.NewJobManager(amorph.NewPropertyTable())
	manager.SetLogger(logger)
	manager.SetNotificationManager(notifierMgr)

	return &Server{
		manager:     manager,
		notifierMgr: notifierMgr,
		wsNotifier:  wsNotifier,
		logger:      logger,
	}
}

// SetResultDir sets the directory finished structures are mirrored to.
func (s *Server) SetResultDir(dir string) {
	s.resultDir = dir
}

// SetWebhookTimeout sets the delivery timeout for registered webhooks.
func (s *Server) SetWebhookTimeout(timeout time.Duration) {
	s.webhookTimeout = timeout
}

// Close shuts down notification delivery.
func (s *Server) Close() error {
	return s.notifierMgr.Close()
}
