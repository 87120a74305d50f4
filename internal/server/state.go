package server

import (
	"sync"

	"github.com/hedgelab/hedgebench/internal/modules/evaluation"
	"github.com/hedgelab/hedgebench/internal/modules/metrics"
	"github.com/hedgelab/hedgebench/internal/modules/report"
)

// State holds the shared view of the current run. The evaluation batch
// writes from its own goroutine while API handlers read concurrently.
type State struct {
	mu sync.RWMutex

	running  bool
	progress evaluation.Progress
	report   *report.Report
	records  []metrics.EpisodeRecord
}

// NewState returns an empty run state.
func NewState() *State {
	return &State{}
}

// SetRunning marks the batch as started or finished.
func (s *State) SetRunning(running bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = running
}

// SetProgress records the latest batch progress.
func (s *State) SetProgress(p evaluation.Progress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = p
}

// SetResults publishes the finished run.
func (s *State) SetResults(rep *report.Report, records []metrics.EpisodeRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report = rep
	s.records = records
}

// Snapshot returns a consistent view of the run state.
func (s *State) Snapshot() (running bool, progress evaluation.Progress, rep *report.Report, records []metrics.EpisodeRecord) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running, s.progress, s.report, s.records
}
