// Command genamorph-server exposes amorphous structure generation as an
// HTTP service: builds run as asynchronous jobs, progress streams over
// websockets or webhooks, and finished structures download in any
// supported file format.
package main

import (
	"net/http"
	"os"
	"time"

	"github.com/stefanbringuier/genamorph/internal/logging"
)

func main() {
	cfg := loadServerConfig()
	logger := logging.New(cfg.LogLevel)

	if cfg.ResultDir != "" {
		if err := os.MkdirAll(cfg.ResultDir, 0o755); err != nil {
			logger.Fatalf("cannot create result dir %s: %v", cfg.ResultDir, err)
		}
	}

	srv := NewServer(logger)
	srv.SetResultDir(cfg.ResultDir)
	srv.SetWebhookTimeout(time.Duration(cfg.WebhookTimeout) * time.Second)
	defer srv.Close()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", srv.handleHealth)
	mux.HandleFunc("/job/", srv.handleJob)
	mux.HandleFunc("/jobs", srv.handleListJobs)
	mux.HandleFunc("/ws/progress", srv.handleProgressWS)
	mux.HandleFunc("/notifiers/webhook", srv.handleRegisterWebhook)

	logger.Infof("genamorph-server listening on %s", cfg.Addr)
	logger.Fatalf("%v", http.ListenAndServe(cfg.Addr, mux))
}
