// Package session owns the single piece of mutable state in the app: the
// analysis lifecycle.
package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"aesthetica/internal/models"
	"aesthetica/shared/monitoring"

	"github.com/google/uuid"
)

// Phase is the session lifecycle state. There is no terminal error phase:
// failures fold back into Idle with a message attached, so the user lands
// on the input screen and can retry immediately.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAnalyzing
	PhaseResults
)

func (p Phase) String() string {
	switch p {
	case PhaseAnalyzing:
		return "ANALYZING"
	case PhaseResults:
		return "RESULTS"
	default:
		return "IDLE"
	}
}

// Analyzer is the slice of shared/ai the controller needs.
type Analyzer interface {
	Analyze(ctx context.Context, asset *models.MediaAsset, userContext string) (*models.AnalysisResult, error)
}

// ErrAnalysisInFlight rejects a submit while another analysis is running.
// There is no queue and no cancellation; the caller waits for the current
// run to settle.
var ErrAnalysisInFlight = errors.New("uma análise já está em andamento")

// Controller sequences file intake, analysis and result display. It is
// the only owner of the session state; at most one analysis is in flight
// at any time.
type Controller struct {
	analyzer Analyzer
	monitor  *monitoring.Monitor

	mu      sync.Mutex
	phase   Phase
	result  *models.AnalysisResult
	lastErr string
	runID   string
	done    chan struct{}
}

// Snapshot is a point-in-time copy of the session state for display.
type Snapshot struct {
	Phase  Phase
	Result *models.AnalysisResult
	Err    string
	RunID  string
}

func New(analyzer Analyzer, monitor *monitoring.Monitor) *Controller {
	return &Controller{
		analyzer: analyzer,
		monitor:  monitor,
	}
}

// Submit starts an asynchronous analysis of the asset. Returns
// ErrAnalysisInFlight while a previous run has not settled.
func (c *Controller) Submit(ctx context.Context, asset *models.MediaAsset, userContext string) error {
	c.mu.Lock()
	if c.phase == PhaseAnalyzing {
		c.mu.Unlock()
		return ErrAnalysisInFlight
	}
	c.phase = PhaseAnalyzing
	c.lastErr = ""
	c.runID = uuid.NewString()
	done := make(chan struct{})
	c.done = done
	c.mu.Unlock()

	log.Printf("Starting analysis of %s (%.2f MB)", asset.Name, float64(asset.Size)/(1024*1024))

	go func() {
		defer close(done)

		start := time.Now()
		result, err := c.analyzer.Analyze(ctx, asset, userContext)
		if c.monitor != nil {
			c.monitor.RecordAnalysis(asset.Name, time.Since(start), err)
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if err != nil {
			c.phase = PhaseIdle
			c.lastErr = err.Error()
			return
		}
		c.phase = PhaseResults
		c.result = result
	}()

	return nil
}

// Wait blocks until the in-flight analysis settles, or the context ends.
// A no-op when nothing is running.
func (c *Controller) Wait(ctx context.Context) error {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns the current state for rendering.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Phase:  c.phase,
		Result: c.result,
		Err:    c.lastErr,
		RunID:  c.runID,
	}
}

// CanSubmit exposes the condition the UI uses to disable the submit
// affordance.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase != PhaseAnalyzing
}

// Restore seeds the controller with a previously produced result, used by
// the CLI export path. Rejected while an analysis is running.
func (c *Controller) Restore(result *models.AnalysisResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == PhaseAnalyzing {
		return ErrAnalysisInFlight
	}
	c.phase = PhaseResults
	c.result = result
	c.lastErr = ""
	c.runID = uuid.NewString()
	return nil
}

// Reset clears the result and error and returns to Idle.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == PhaseAnalyzing {
		// An in-flight run cannot be cancelled; its outcome will
		// overwrite state when it lands.
		return
	}
	c.phase = PhaseIdle
	c.result = nil
	c.lastErr = ""
	c.runID = ""
}
