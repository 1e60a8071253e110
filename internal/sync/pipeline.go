// SPDX-FileCopyrightText: 2026 Pier Luigi Fiorini <pierluigi.fiorini@gmail.com>
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package sync

import (
	"context"
	"fmt"
	"os"

	"github.com/lirios/ostree-sync/internal/config"
	"github.com/lirios/ostree-sync/internal/logger"
)

// Stage descriptions reported while the pipeline runs
const (
	DescCreate = "Create Local Repository"
	DescPull   = "Pull Remote Branches"
	DescAdd    = "Add Content Units"
	DescClean  = "Clean"
)

// Reporter receives stage and per-branch progress updates.
// Delivery is fire-and-forget and must not be buffered.
type Reporter interface {
	Report(description, detail string)
}

// Pipeline runs the four sync stages in order: Create, Pull, Add,
// Clean. The stages never branch or reorder; a stage failure aborts
// the remaining ones, except that Clean always runs once the mirror
// has been touched, so a transient remote is never leaked.
type Pipeline struct {
	sctx     *Context
	feed     *config.Feed
	engine   Engine
	catalog  Catalog
	reporter Reporter

	// repo is set by create; a non-nil repo is the signal that the
	// mirror may hold a registered remote and Clean must be attempted
	repo Repository
}

// NewPipeline builds a pipeline for one sync run
func NewPipeline(sctx *Context, feed *config.Feed, engine Engine, catalog Catalog, reporter Reporter) *Pipeline {
	if reporter == nil {
		reporter = &LogReporter{}
	}

	return &Pipeline{
		sctx:     sctx,
		feed:     feed,
		engine:   engine,
		catalog:  catalog,
		reporter: reporter,
	}
}

// Run executes the pipeline. The first fatal error is returned;
// a cleanup failure never masks it and is only logged, but becomes
// the run's error when it is the only failure.
func (p *Pipeline) Run(ctx context.Context) (err error) {
	defer func() {
		if p.repo == nil {
			return
		}
		if cerr := p.clean(); cerr != nil {
			if err == nil {
				err = cerr
			} else {
				logger.Errorf("Cleanup failed after %v: %v", err, cerr)
			}
		}
	}()

	if err = p.create(ctx); err != nil {
		return err
	}
	if err = p.pull(ctx); err != nil {
		return err
	}
	return p.add()
}

// create ensures the mirror and links directories exist, opens the
// mirror (creating it on first sync) and registers the transient
// remote from the materialized endpoint
func (p *Pipeline) create(ctx context.Context) error {
	p.reporter.Report(DescCreate, "")

	if err := os.MkdirAll(p.sctx.StoragePath, 0755); err != nil {
		return &RepositoryInitError{Path: p.sctx.StoragePath, Reason: err}
	}
	if err := os.MkdirAll(p.sctx.LinksPath, 0755); err != nil {
		return &RepositoryInitError{Path: p.sctx.LinksPath, Reason: err}
	}

	repo, err := p.engine.Open(p.sctx.StoragePath)
	if err != nil && IsNotFound(err) {
		repo, err = p.engine.Create(p.sctx.StoragePath)
	}
	if err != nil {
		return &RepositoryInitError{Path: p.sctx.StoragePath, Reason: err}
	}
	p.repo = repo

	endpoint := NewEndpoint(p.feed)
	if err := endpoint.Materialize(p.sctx.WorkDir); err != nil {
		return &RepositoryInitError{Path: p.sctx.StoragePath, Reason: err}
	}

	if err := repo.RemoteAdd(p.sctx.RepoID, endpoint.remoteOptions()); err != nil {
		return &RepositoryInitError{Path: p.sctx.StoragePath, Reason: err}
	}

	return nil
}

// pull fetches the configured branches one at a time. The first
// branch that fails aborts the stage; remaining branches are not
// attempted.
func (p *Pipeline) pull(ctx context.Context) error {
	p.reporter.Report(DescPull, "")

	for _, branch := range p.sctx.Branches {
		if err := ctx.Err(); err != nil {
			return &BranchPullError{Branch: branch, Reason: err}
		}

		progress := func(fetched, requested, percent int) {
			detail := fmt.Sprintf("branch: %s fetching %d/%d %d%%", branch, fetched, requested, percent)
			p.reporter.Report(DescPull, detail)
		}

		if err := p.repo.Pull(ctx, p.sctx.RepoID, branch, progress); err != nil {
			return &BranchPullError{Branch: branch, Reason: err}
		}
	}

	return nil
}

// add enumerates the branch heads of the mirror, keeps the configured
// ones, links their storage and registers them with the catalog.
// Heads present in the mirror but not configured are left untouched.
func (p *Pipeline) add() error {
	p.reporter.Report(DescAdd, "")

	refs, err := p.repo.ListRefs()
	if err != nil {
		return fmt.Errorf("cannot list branch heads: %w", err)
	}

	requested := map[string]bool{}
	for _, branch := range p.sctx.Branches {
		requested[branch] = true
	}

	for _, ref := range refs {
		if !requested[ref.Path] {
			// not listed
			continue
		}

		unit := NewUnit(p.sctx.RemoteID, ref, p.sctx.LinksPath)
		if err := LinkUnit(unit, p.sctx.StoragePath); err != nil {
			return err
		}
		if err := p.catalog.SaveUnit(ContentType, unit.Key(), unit.Metadata(), unit.StoragePath); err != nil {
			return err
		}
	}

	return nil
}

// clean deregisters the transient remote
func (p *Pipeline) clean() error {
	p.reporter.Report(DescClean, "")

	if err := p.repo.RemoteDelete(p.sctx.RepoID); err != nil {
		return &RemoteCleanupError{RemoteID: p.sctx.RepoID, Reason: err}
	}

	return nil
}
