// Package client is the Go client for a genamorph-server instance. It
// provides a fluent builder for build configurations and thin wrappers
// around the server's HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/stefanbringuier/genamorph/internal/amorph"
)

// BuildBuilder provides a fluent API for describing one structure build:
// the composition, the periodic cell, the target density and the
// placement tuning parameters.
type BuildBuilder struct {
	cfg amorph.BuildConfig
}

// NewBuild creates a new build builder with the given name.
// The name identifies the build in progress events and job listings.
func NewBuild(name string) *BuildBuilder {
	return &BuildBuilder{cfg: amorph.BuildConfig{Name: name}}
}

// Species appends one species with its stoichiometry weight.
// Call order defines the placement order.
func (bb *BuildBuilder) Species(symbol string, weight int) *BuildBuilder {
	bb.cfg.Species = append(bb.cfg.Species, amorph.SpeciesSpec{Symbol: symbol, Weight: weight})
	return bb
}

// Box sets the periodic cell extents in Angstrom.
func (bb *BuildBuilder) Box(x, y, z float64) *BuildBuilder {
	bb.cfg.Box = []float64{x, y, z}
	return bb
}

// CubicBox sets a cubic periodic cell with the given edge in Angstrom.
func (bb *BuildBuilder) CubicBox(edge float64) *BuildBuilder {
	bb.cfg.Box = []float64{edge}
	return bb
}

// Density sets the target mass density in g/cm^3.
func (bb *BuildBuilder) Density(density float64) *BuildBuilder {
	bb.cfg.Density = density
	return bb
}

// MinFactor sets the separation factor applied to combined covalent radii.
// If not set, the server default is used.
func (bb *BuildBuilder) MinFactor(factor float64) *BuildBuilder {
	bb.cfg.MinFactor = factor
	return bb
}

// MaxAttempts sets the per-atom candidate attempt budget.
// If not set, the server default is used.
func (bb *BuildBuilder) MaxAttempts(attempts int) *BuildBuilder {
	bb.cfg.MaxAttempts = attempts
	return bb
}

// Temperature sets the candidate selection temperature.
// If not set, the server default is used.
func (bb *BuildBuilder) Temperature(temperature float64) *BuildBuilder {
	bb.cfg.Temperature = temperature
	return bb
}

// Seed sets the random seed so the build is reproducible.
func (bb *BuildBuilder) Seed(seed int64) *BuildBuilder {
	bb.cfg.Seed = seed
	return bb
}

// Build converts the builder to a BuildConfig.
func (bb *BuildBuilder) Build() amorph.BuildConfig {
	return bb.cfg
}

// SubmitBuild submits a build job to a genamorph server. The baseURL is
// the server's base URL (e.g., "http://localhost:8080"), jobID names the
// job for later retrieval. The build runs asynchronously; poll GetResult
// or subscribe to the progress websocket for completion.
func SubmitBuild(ctx context.Context, baseURL, jobID string, build *BuildBuilder) error {
	cfg := build.Build()

	jsonData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal build config: %w", err)
	}

	u, err := url.JoinPath(baseURL, "job", jobID, "build")
	if err != nil {
		return fmt.Errorf("failed to build URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// ErrBuildRunning is reported by GetResult while the build has not
// finished yet.
var ErrBuildRunning = fmt.Errorf("build still running")

// GetResult fetches the finished build result of a job. Returns
// ErrBuildRunning while the job is pending or running.
func GetResult(ctx context.Context, baseURL, jobID string) (*amorph.BuildResult, error) {
	u, err := url.JoinPath(baseURL, "job", jobID, "result")
	if err != nil {
		return nil, fmt.Errorf("failed to build URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var result amorph.BuildResult
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return nil, fmt.Errorf("failed to decode result: %w", err)
		}
		return &result, nil
	case http.StatusConflict:
		return nil, ErrBuildRunning
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(body))
	}
}

// GetStructure downloads the serialized structure of a finished job in
// the given format ("cfg", "xyz" or "lammps").
func GetStructure(ctx context.Context, baseURL, jobID, format string) ([]byte, error) {
	u, err := url.JoinPath(baseURL, "job", jobID, "structure")
	if err != nil {
		return nil, fmt.Errorf("failed to build URL: %w", err)
	}
	u += "?format=" + url.QueryEscape(format)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(body))
	}
	return io.ReadAll(resp.Body)
}

// ListJobs lists all jobs known to the server.
func ListJobs(ctx context.Context, baseURL string) ([]amorph.JobSummary, error) {
	u, err := url.JoinPath(baseURL, "jobs")
	if err != nil {
		return nil, fmt.Errorf("failed to build URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(body))
	}

	var jobs []amorph.JobSummary
	if err := json.NewDecoder(resp.Body).Decode(&jobs); err != nil {
		return nil, fmt.Errorf("failed to decode job list: %w", err)
	}
	return jobs, nil
}

// DeleteJob removes a job and its stored result from the server.
func DeleteJob(ctx context.Context, baseURL, jobID string) error {
	u, err := url.JoinPath(baseURL, "job", jobID)
	if err != nil {
		return fmt.Errorf("failed to build URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// RegisterWebhook registers a webhook notifier that receives every
// progress event as an HTTP POST.
func RegisterWebhook(ctx context.Context, baseURL, id, webhookURL string) error {
	payload, err := json.Marshal(map[string]string{"id": id, "url": webhookURL})
	if err != nil {
		return fmt.Errorf("failed to marshal webhook registration: %w", err)
	}

	u, err := url.JoinPath(baseURL, "notifiers", "webhook")
	if err != nil {
		return fmt.Errorf("failed to build URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Health checks that the server is up.
func Health(ctx context.Context, baseURL string) error {
	u, err := url.JoinPath(baseURL, "healthz")
	if err != nil {
		return fmt.Errorf("failed to build URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}
	return nil
}
