package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/stefanbringuier/genamorph/internal/amorph"
	"github.com/stefanbringuier/genamorph/internal/amorph/notifiers"
	"github.com/stefanbringuier/genamorph/internal/chemio"
)

// extractJobID extracts the job ID from a path like "/job/{jobID}/..."
// Returns the job ID and the remaining path, or empty string if not found
func extractJobID(path string) (amorph.JobID, string) {
	if !strings.HasPrefix(path, "/job/") {
		return "", ""
	}

	rest := path[len("/job/"):]
	idx := strings.Index(rest, "/")
	if idx == -1 {
		return amorph.JobID(rest), ""
	}
	return amorph.JobID(rest[:idx]), rest[idx:]
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleJob dispatches /job/{jobID}/... requests.
func (s *Server) handleJob(w http.ResponseWriter, r *http.Request) {
	jobID, rest := extractJobID(r.URL.Path)
	if jobID == "" {
		http.Error(w, "job ID is required in path: /job/{jobID}/...", http.StatusBadRequest)
		return
	}

	switch {
	case rest == "/build" && r.Method == http.MethodPost:
		s.handleBuild(w, r, jobID)
	case rest == "/result" && r.Method == http.MethodGet:
		s.handleResult(w, r, jobID)
	case rest == "/structure" && r.Method == http.MethodGet:
		s.handleStructure(w, r, jobID)
	case rest == "" && r.Method == http.MethodDelete:
		s.handleDelete(w, r, jobID)
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

// POST /job/{jobID}/build
// Body: BuildConfig JSON
func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request, jobID amorph.JobID) {
	defer r.Body.Close()

	var cfg amorph.BuildConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "invalid build config json: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.manager.Submit(jobID, cfg); err != nil {
		http.Error(w, "cannot submit build: "+err.Error(), http.StatusBadRequest)
		return
	}
	s.logger.Infof("Build submitted: job_id=%s name=%s", jobID, cfg.Name)

	if s.resultDir != "" {
		go s.mirrorResult(jobID)
	}

	w.WriteHeader(http.StatusAccepted)
	_, _ = w.Write([]byte("build submitted"))
}

// mirrorResult writes the finished structure to the result directory.
func (s *Server) mirrorResult(jobID amorph.JobID) {
	job, exists := s.manager.Get(jobID)
	if !exists {
		return
	}
	<-job.Done()

	result, err := job.Result()
	if err != nil || result == nil {
		return
	}

	path := filepath.Join(s.resultDir, fmt.Sprintf("%s.cfg", jobID))
	f, err := os.Create(path)
	if err != nil {
		s.logger.Errorf("cannot create result file: job_id=%s error=%v", jobID, err)
		return
	}
	defer f.Close()
	if err := chemio.WriteCFG(f, result); err != nil {
		s.logger.Errorf("cannot write result file: job_id=%s error=%v", jobID, err)
		return
	}
	s.logger.Infof("Result mirrored: job_id=%s path=%s", jobID, path)
}

// GET /job/{jobID}/result
func (s *Server) handleResult(w http.ResponseWriter, r *http.Request, jobID amorph.JobID) {
	job, exists := s.manager.Get(jobID)
	if !exists {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}

	switch job.State() {
	case amorph.JobPending, amorph.JobRunning:
		http.Error(w, "build still running", http.StatusConflict)
		return
	case amorph.JobFailed:
		_, err := job.Result()
		http.Error(w, "build failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	result, _ := job.Result()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, "cannot encode: "+err.Error(), http.StatusInternalServerError)
	}
}

// GET /job/{jobID}/structure?format=cfg|xyz|lammps
func (s *Server) handleStructure(w http.ResponseWriter, r *http.Request, jobID amorph.JobID) {
	job, exists := s.manager.Get(jobID)
	if !exists {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}
	if job.State() != amorph.JobDone {
		http.Error(w, "no structure available", http.StatusConflict)
		return
	}
	result, _ := job.Result()

	format := chemio.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = chemio.FormatCFG
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("%s.%s", jobID, format)))
	if err := chemio.Write(w, result, format); err != nil {
		http.Error(w, "cannot serialize structure: "+err.Error(), http.StatusBadRequest)
	}
}

// DELETE /job/{jobID}
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request, jobID amorph.JobID) {
	if err := s.manager.Delete(jobID); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	s.logger.Infof("Job deleted: job_id=%s", jobID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("deleted"))
}

// GET /jobs
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.manager.List()); err != nil {
		http.Error(w, "cannot encode: "+err.Error(), http.StatusInternalServerError)
	}
}

// GET /ws/progress
// Upgrades to a websocket streaming progress events of all running builds.
func (s *Server) handleProgressWS(w http.ResponseWriter, r *http.Request) {
	upgrader := s.wsNotifier.GetUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Errorf("websocket upgrade failed: %v", err)
		return
	}

	s.wsNotifier.RegisterClient(conn)
	s.logger.Debugf("websocket client connected: remote=%s", conn.RemoteAddr())

	// Reader loop only to detect disconnects; clients do not send data.
	go func() {
		defer s.wsNotifier.UnregisterClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// POST /notifiers/webhook
// Body: { "id": "...", "url": "https://..." }
type registerWebhookRequest struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

func (s *Server) handleRegisterWebhook(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req registerWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.ID == "" || req.URL == "" {
		http.Error(w, "both id and url are required", http.StatusBadRequest)
		return
	}

	notifier := notifiers.NewWebhookNotifier(req.ID, req.URL)
	notifier.SetTimeout(s.webhookTimeout)
	if err := s.notifierMgr.RegisterNotifier(notifier); err != nil {
		http.Error(w, "cannot register webhook: "+err.Error(), http.StatusConflict)
		return
	}
	s.logger.Infof("Webhook registered: id=%s url=%s", req.ID, req.URL)

	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write([]byte("webhook registered"))
}
