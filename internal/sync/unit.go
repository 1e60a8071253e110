// SPDX-FileCopyrightText: 2026 Pier Luigi Fiorini <pierluigi.fiorini@gmail.com>
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package sync

import (
	"crypto/sha256"
	"fmt"
	"path/filepath"

	"github.com/lirios/ostree-sync/internal/ostree"
)

// ContentType is the catalog type ID of mirrored branch heads
const ContentType = "ostree"

// Commit is the branch head captured during the Add stage
type Commit struct {
	Checksum string
	Metadata map[string]string
}

// Unit maps a mirrored branch head to a cataloged content unit.
// Its storage path is a symlink into the mirror, stable across
// re-syncs of the same feed and branch.
type Unit struct {
	RemoteID    string
	Branch      string
	Commit      Commit
	StoragePath string
}

// NewUnit builds the unit for a branch head. The storage link name is
// the digest of the natural key, so re-syncs land on the same path and
// distinct feeds never collide.
func NewUnit(remoteID string, ref ostree.Ref, linksPath string) Unit {
	digest := sha256.Sum256([]byte(remoteID + ":" + ref.Path))

	return Unit{
		RemoteID:    remoteID,
		Branch:      ref.Path,
		Commit:      Commit{Checksum: ref.Commit, Metadata: ref.Metadata},
		StoragePath: filepath.Join(linksPath, fmt.Sprintf("%x", digest)),
	}
}

// Key is the natural key the catalog indexes on
func (u Unit) Key() map[string]string {
	return map[string]string{
		"remote_id": u.RemoteID,
		"branch":    u.Branch,
	}
}

// Metadata is the payload stored with the unit
func (u Unit) Metadata() map[string]string {
	metadata := map[string]string{
		"commit": u.Commit.Checksum,
	}
	for key, value := range u.Commit.Metadata {
		metadata[key] = value
	}
	return metadata
}
