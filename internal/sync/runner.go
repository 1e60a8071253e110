// SPDX-FileCopyrightText: 2026 Pier Luigi Fiorini <pierluigi.fiorini@gmail.com>
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package sync

import (
	"context"
	"os"

	"github.com/lirios/ostree-sync/internal/config"
)

// Runner runs sync pipelines against a storage root. It provisions a
// run-exclusive working directory for the TLS and GPG material and
// removes it when the run is over; the pipeline itself never cleans
// the working directory.
type Runner struct {
	Engine      Engine
	Catalog     Catalog
	StorageRoot string
}

// Sync mirrors a single feed. Callers must serialize runs of the same
// feed; distinct feeds can run concurrently since each owns a distinct
// mirror path.
func (r *Runner) Sync(ctx context.Context, feed *config.Feed, reporter Reporter) error {
	if err := feed.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(r.StorageRoot, 0755); err != nil {
		return err
	}

	workDir, err := os.MkdirTemp(r.StorageRoot, "work-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(workDir)

	sctx := NewContext(feed, r.StorageRoot, workDir)
	pipeline := NewPipeline(sctx, feed, r.Engine, r.Catalog, reporter)

	return pipeline.Run(ctx)
}
