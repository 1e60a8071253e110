// SPDX-FileCopyrightText: 2026 Pier Luigi Fiorini <pierluigi.fiorini@gmail.com>
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package daemon

import (
	"sync"
	"time"

	"github.com/chilts/sid"
)

// RunState is the lifecycle state of a sync run
type RunState string

const (
	// RunStateRunning means the pipeline is still executing
	RunStateRunning RunState = "running"

	// RunStateDone means the run finished without errors
	RunStateDone RunState = "done"

	// RunStateFailed means the run reported a fatal error
	RunStateFailed RunState = "failed"
)

// Run is a snapshot of a sync run
type Run struct {
	ID       string
	FeedURL  string
	Stage    string
	Detail   string
	State    RunState
	Error    string
	Started  time.Time
	Finished time.Time
}

// RunStore tracks sync runs and which feeds have one in flight
type RunStore struct {
	mutex    sync.RWMutex
	runs     map[string]*Run
	order    []string
	inFlight map[string]bool
}

// NewRunStore creates a new RunStore object
func NewRunStore() *RunStore {
	return &RunStore{
		runs:     map[string]*Run{},
		inFlight: map[string]bool{},
	}
}

// Acquire marks the feed as syncing; it reports false when the feed
// already has a run in flight
func (s *RunStore) Acquire(feedURL string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.inFlight[feedURL] {
		return false
	}
	s.inFlight[feedURL] = true
	return true
}

// Release marks the feed as idle again
func (s *RunStore) Release(feedURL string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.inFlight, feedURL)
}

// Add records a new running run for the feed
func (s *RunStore) Add(feedURL string) *Run {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	run := &Run{
		ID:      sid.IdBase64(),
		FeedURL: feedURL,
		State:   RunStateRunning,
		Started: time.Now().UTC(),
	}
	s.runs[run.ID] = run
	s.order = append(s.order, run.ID)

	snapshot := *run
	return &snapshot
}

// Get returns a snapshot of the run with the given ID, or nil
func (s *RunStore) Get(id string) *Run {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return nil
	}

	snapshot := *run
	return &snapshot
}

// List returns snapshots of all runs in creation order
func (s *RunStore) List() []*Run {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	runs := make([]*Run, 0, len(s.order))
	for _, id := range s.order {
		snapshot := *s.runs[id]
		runs = append(runs, &snapshot)
	}
	return runs
}

// Progress updates the stage and detail of a running run
func (s *RunStore) Progress(id, stage, detail string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if run, ok := s.runs[id]; ok {
		run.Stage = stage
		run.Detail = detail
	}
}

// Finish marks the run as done or failed
func (s *RunStore) Finish(id string, err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	run, ok := s.runs[id]
	if !ok {
		return
	}

	run.Finished = time.Now().UTC()
	if err != nil {
		run.State = RunStateFailed
		run.Error = err.Error()
	} else {
		run.State = RunStateDone
	}
}

// runReporter feeds pipeline progress into the store as it arrives
type runReporter struct {
	runs *RunStore
	id   string
}

func (r *runReporter) Report(description, detail string) {
	r.runs.Progress(r.id, description, detail)
}
