package monitoring

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Monitor tracks the outcome of the most recent analysis run. Guarded by
// a mutex because the web front-end records from a background goroutine.
type Monitor struct {
	mu             sync.Mutex
	lastRunSuccess bool
	lastRunTime    time.Time
	totalRuns      int
	failedRuns     int
}

func NewMonitor() *Monitor {
	return &Monitor{}
}

// RecordAnalysis logs one finished analysis and updates the health state.
func (m *Monitor) RecordAnalysis(name string, duration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastRunTime = time.Now()
	m.totalRuns++

	if err != nil {
		m.lastRunSuccess = false
		m.failedRuns++
		log.Printf("Analysis of %s failed after %v: %v", name, duration, err)
		return
	}

	m.lastRunSuccess = true
	log.Printf("Analysis of %s completed successfully (took %v)", name, duration)
}

func (m *Monitor) IsHealthy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.lastRunTime.IsZero() {
		return true // No runs yet, assume healthy
	}
	return m.lastRunSuccess
}

func (m *Monitor) StatusSummary() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.lastRunTime.IsZero() {
		return "No analyses yet"
	}
	if m.lastRunSuccess {
		return fmt.Sprintf("Last analysis succeeded at %s (%d run(s), %d failed)",
			m.lastRunTime.Format("Jan 2 15:04"), m.totalRuns, m.failedRuns)
	}
	return fmt.Sprintf("Last analysis failed at %s (%d run(s), %d failed)",
		m.lastRunTime.Format("Jan 2 15:04"), m.totalRuns, m.failedRuns)
}
