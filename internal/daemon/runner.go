// SPDX-FileCopyrightText: 2026 Pier Luigi Fiorini <pierluigi.fiorini@gmail.com>
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package daemon

import (
	"context"
	"errors"

	"github.com/lirios/ostree-sync/internal/config"
	"github.com/lirios/ostree-sync/internal/logger"
	"github.com/lirios/ostree-sync/internal/sync"
)

// ErrSyncInFlight means the feed already has a running sync
var ErrSyncInFlight = errors.New("a sync for this feed is already running")

// Runner starts sync runs on behalf of API clients. Runs of the same
// feed are serialized; distinct feeds sync concurrently.
type Runner struct {
	Sync *sync.Runner
	Runs *RunStore
}

// Start launches a sync run for the feed in the background and
// returns its run record
func (r *Runner) Start(feed *config.Feed) (*Run, error) {
	if !r.Runs.Acquire(feed.URL) {
		return nil, ErrSyncInFlight
	}

	run := r.Runs.Add(feed.URL)

	go func() {
		defer r.Runs.Release(feed.URL)

		reporter := &runReporter{runs: r.Runs, id: run.ID}
		err := r.Sync.Sync(context.Background(), feed, reporter)
		if err != nil {
			logger.Errorf("Sync of %s failed: %v", feed.URL, err)
		}
		r.Runs.Finish(run.ID, err)
	}()

	return run, nil
}
