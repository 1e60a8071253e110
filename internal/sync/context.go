// SPDX-FileCopyrightText: 2026 Pier Luigi Fiorini <pierluigi.fiorini@gmail.com>
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package sync

import (
	"crypto/sha256"
	"fmt"
	"path/filepath"

	"github.com/chilts/sid"

	"github.com/lirios/ostree-sync/internal/config"
)

const (
	contentDir = "content"
	linksDir   = "links"
)

// Context carries the state shared read-only by all pipeline stages.
// It is built once per run and never mutated by a stage.
type Context struct {
	// FeedURL is the URL of the remote repository
	FeedURL string

	// Branches are the branch names to mirror
	Branches []string

	// RemoteID identifies the remote across runs; it is derived from
	// the feed URL so repeated syncs of the same feed share a mirror
	RemoteID string

	// RepoID names the transient remote registered for the pull.
	// It is unique per run so concurrent runs never clobber each
	// other's registration.
	RepoID string

	// StoragePath is the mirror repository path
	StoragePath string

	// LinksPath is the sibling directory holding unit storage links
	LinksPath string

	// WorkDir is the run-exclusive working directory holding TLS and
	// GPG material; it is provisioned and cleaned up by the host
	WorkDir string
}

// NewContext derives the run context from the feed and storage root
func NewContext(feed *config.Feed, storageRoot, workDir string) *Context {
	remoteID := RemoteID(feed.URL)

	return &Context{
		FeedURL:     feed.URL,
		Branches:    feed.Branches,
		RemoteID:    remoteID,
		RepoID:      "sync-" + sid.IdBase64(),
		StoragePath: filepath.Join(storageRoot, remoteID, contentDir),
		LinksPath:   filepath.Join(storageRoot, remoteID, linksDir),
		WorkDir:     workDir,
	}
}

// RemoteID derives the stable remote identity from a feed URL
func RemoteID(feedURL string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(feedURL)))
}
