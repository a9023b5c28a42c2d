package amorph

import (
	"fmt"
	"sync"
	"time"
)

// JobID is a unique identifier for a build job.
type JobID string

// JobState is the lifecycle state of a build job.
type JobState string

const (
	JobPending JobState = "pending"
	JobRunning JobState = "running"
	JobDone    JobState = "done"
	JobFailed  JobState = "failed"
)

// Job is one managed build: its configuration, state, and once finished
// either the result or the failure.
type Job struct {
	mu        sync.RWMutex
	ID        JobID
	Config    BuildConfig
	CreatedAt int64

	state  JobState
	result *BuildResult
	err    error
	done   chan struct{}
}

// Done returns a channel closed when the job has finished, whether it
// succeeded or failed.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// State returns the current job state.
func (j *Job) State() JobState {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.state
}

// Result returns the build result and error once the job has finished.
// Both are nil while the job is pending or running.
func (j *Job) Result() (*BuildResult, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.result, j.err
}

func (j *Job) setRunning() {
	j.mu.Lock()
	j.state = JobRunning
	j.mu.Unlock()
}

func (j *Job) finish(result *BuildResult, err error) {
	j.mu.Lock()
	if err != nil {
		j.state = JobFailed
		j.err = err
	} else {
		j.state = JobDone
		j.result = result
	}
	j.mu.Unlock()
	close(j.done)
}

// JobSummary is the listable view of a job.
type JobSummary struct {
	ID        JobID    `json:"id"`
	Name      string   `json:"name,omitempty"`
	State     JobState `json:"state"`
	CreatedAt int64    `json:"created_at"`
	Fallbacks int      `json:"fallbacks,omitempty"`
	Particles int      `json:"particles,omitempty"`
}

// JobManager runs build jobs asynchronously, each isolated from the
// others, and keeps finished results until deleted.
type JobManager struct {
	mu    sync.RWMutex
	jobs  map[JobID]*Job
	table *PropertyTable

	logger   Logger
	notifier *NotificationManager
	wg       sync.WaitGroup
}

// NewJobManager creates a manager resolving species against table.
func NewJobManager(table *PropertyTable) *JobManager {
	return &JobManager{
		jobs:   make(map[JobID]*Job),
		table:  table,
		logger: NewNoOpLogger(),
	}
}

// SetLogger sets the logger passed to every build.
func (m *JobManager) SetLogger(logger Logger) {
	if logger != nil {
		m.logger = logger
	}
}

// SetNotificationManager routes build progress events of all jobs to mgr.
func (m *JobManager) SetNotificationManager(mgr *NotificationManager) {
	m.notifier = mgr
}

// Submit validates the config, registers the job and starts the build in
// a goroutine. Returns an error if the ID is taken or the config is
// invalid; build-time failures are reported through the job state.
func (m *JobManager) Submit(id JobID, cfg BuildConfig) error {
	if id == "" {
		return fmt.Errorf("job ID cannot be empty")
	}
	if err := ValidateBuildConfig(cfg); err != nil {
		return err
	}

	job := &Job{
		ID:        id,
		Config:    cfg,
		CreatedAt: time.Now().Unix(),
		state:     JobPending,
		done:      make(chan struct{}),
	}

	m.mu.Lock()
	if _, exists := m.jobs[id]; exists {
		m.mu.Unlock()
		return fmt.Errorf("job with id %s already exists", id)
	}
	m.jobs[id] = job
	m.mu.Unlock()

	m.wg.Add(1)
	go m.run(job)
	return nil
}

func (m *JobManager) run(job *Job) {
	defer m.wg.Done()
	job.setRunning()

	builder := NewBuilder(m.table, job.Config.Options())
	builder.SetLogger(m.logger)
	if m.notifier != nil {
		name := job.Config.Name
		if name == "" {
			name = string(job.ID)
		}
		builder.SetNotificationManager(m.notifier, name)
	}

	result, err := builder.Build(job.Config.Stoichiometry(), job.Config.BoxExtents(), job.Config.Density)
	if err != nil {
		m.logger.Errorf("job %s failed: %v", job.ID, err)
	}
	job.finish(result, err)
}

// Get retrieves a job by ID.
func (m *JobManager) Get(id JobID) (*Job, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, exists := m.jobs[id]
	return job, exists
}

// List returns a summary of all jobs.
func (m *JobManager) List() []JobSummary {
	m.mu.RLock()
	jobs := make([]*Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		jobs = append(jobs, j)
	}
	m.mu.RUnlock()

	out := make([]JobSummary, 0, len(jobs))
	for _, j := range jobs {
		s := JobSummary{
			ID:        j.ID,
			Name:      j.Config.Name,
			State:     j.State(),
			CreatedAt: j.CreatedAt,
		}
		if result, _ := j.Result(); result != nil {
			s.Fallbacks = result.Fallbacks
			s.Particles = len(result.Particles)
		}
		out = append(out, s)
	}
	return out
}

// Delete removes a job by ID. Running jobs keep running to completion
// but their result is discarded with the job entry.
func (m *JobManager) Delete(id JobID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.jobs[id]; !exists {
		return fmt.Errorf("job with id %s does not exist", id)
	}
	delete(m.jobs, id)
	return nil
}

// Wait blocks until all submitted jobs have finished. Test helper and
// shutdown hook.
func (m *JobManager) Wait() {
	m.wg.Wait()
}
