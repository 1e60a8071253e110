// SPDX-FileCopyrightText: 2026 Pier Luigi Fiorini <pierluigi.fiorini@gmail.com>
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package sync

import (
	"context"
	"errors"

	"github.com/lirios/ostree-sync/internal/ostree"
)

// Engine opens or creates mirror repositories
type Engine interface {
	// Open opens an existing repository, returning an error that
	// matches ostree.ErrRepoNotFound when there is none
	Open(path string) (Repository, error)

	// Create creates a new repository
	Create(path string) (Repository, error)
}

// Repository is the slice of the repository engine the pipeline drives
type Repository interface {
	RemoteAdd(id string, opts ostree.RemoteOptions) error
	RemoteDelete(id string) error
	Pull(ctx context.Context, remoteID, branch string, progress ostree.ProgressFunc) error
	ListRefs() ([]ostree.Ref, error)
}

// Catalog persists content units. SaveUnit overwrites a unit that
// already exists with the same natural key.
type Catalog interface {
	SaveUnit(typeID string, key, metadata map[string]string, storagePath string) error
}

type ostreeEngine struct{}

// NewOSTreeEngine returns the engine backed by the ostree command line tool
func NewOSTreeEngine() Engine {
	return ostreeEngine{}
}

func (ostreeEngine) Open(path string) (Repository, error) {
	repo, err := ostree.OpenRepo(path)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

func (ostreeEngine) Create(path string) (Repository, error) {
	repo, err := ostree.Init(path)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// IsNotFound reports whether the error means the repository does not exist yet
func IsNotFound(err error) bool {
	return errors.Is(err, ostree.ErrRepoNotFound)
}
