// SPDX-FileCopyrightText: 2026 Pier Luigi Fiorini <pierluigi.fiorini@gmail.com>
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package sync

import "fmt"

// RepositoryInitError means the mirror could not be opened or created,
// or the transient remote could not be registered
type RepositoryInitError struct {
	Path   string
	Reason error
}

func (e *RepositoryInitError) Error() string {
	return fmt.Sprintf("cannot initialize local repository at %s: %v", e.Path, e.Reason)
}

func (e *RepositoryInitError) Unwrap() error {
	return e.Reason
}

// BranchPullError means a configured branch failed to fetch
type BranchPullError struct {
	Branch string
	Reason error
}

func (e *BranchPullError) Error() string {
	return fmt.Sprintf("cannot pull branch %s: %v", e.Branch, e.Reason)
}

func (e *BranchPullError) Unwrap() error {
	return e.Reason
}

// StorageLinkConflictError means a unit's storage link path is already
// occupied by something that does not point at the mirror
type StorageLinkConflictError struct {
	Link           string
	ExistingTarget string
	ExpectedTarget string
}

func (e *StorageLinkConflictError) Error() string {
	return fmt.Sprintf("storage link %s points at %q, expected %q",
		e.Link, e.ExistingTarget, e.ExpectedTarget)
}

// RemoteCleanupError means the transient remote could not be deregistered
type RemoteCleanupError struct {
	RemoteID string
	Reason   error
}

func (e *RemoteCleanupError) Error() string {
	return fmt.Sprintf("cannot delete remote %s: %v", e.RemoteID, e.Reason)
}

func (e *RemoteCleanupError) Unwrap() error {
	return e.Reason
}
