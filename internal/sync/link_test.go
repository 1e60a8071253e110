// SPDX-FileCopyrightText: 2026 Pier Luigi Fiorini <pierluigi.fiorini@gmail.com>
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package sync_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lirios/ostree-sync/internal/ostree"
	"github.com/lirios/ostree-sync/internal/sync"
)

func testUnit(t *testing.T, linksDir string) sync.Unit {
	t.Helper()

	ref := ostree.Ref{Path: "stable/x86_64/os", Commit: "abc123"}
	return sync.NewUnit(sync.RemoteID("https://example/repo"), ref, linksDir)
}

func TestLinkUnit(t *testing.T) {
	linksDir := t.TempDir()
	target := t.TempDir()

	unit := testUnit(t, linksDir)
	require.NoError(t, sync.LinkUnit(unit, target))

	existing, err := os.Readlink(unit.StoragePath)
	require.NoError(t, err)
	assert.Equal(t, target, existing)
}

func TestLinkUnitIdempotent(t *testing.T) {
	linksDir := t.TempDir()
	target := t.TempDir()

	unit := testUnit(t, linksDir)
	require.NoError(t, sync.LinkUnit(unit, target))
	require.NoError(t, sync.LinkUnit(unit, target))
}

func TestLinkUnitConflictingTarget(t *testing.T) {
	linksDir := t.TempDir()
	target := t.TempDir()
	other := t.TempDir()

	unit := testUnit(t, linksDir)
	require.NoError(t, sync.LinkUnit(unit, other))

	err := sync.LinkUnit(unit, target)
	var conflict *sync.StorageLinkConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, unit.StoragePath, conflict.Link)
	assert.Equal(t, other, conflict.ExistingTarget)
	assert.Equal(t, target, conflict.ExpectedTarget)
}

func TestLinkUnitPathOccupiedByFile(t *testing.T) {
	linksDir := t.TempDir()
	target := t.TempDir()

	unit := testUnit(t, linksDir)
	require.NoError(t, os.WriteFile(unit.StoragePath, []byte("in the way"), 0644))

	err := sync.LinkUnit(unit, target)
	var conflict *sync.StorageLinkConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestNewUnitStoragePathIsStable(t *testing.T) {
	linksDir := t.TempDir()

	first := testUnit(t, linksDir)
	second := testUnit(t, linksDir)
	assert.Equal(t, first.StoragePath, second.StoragePath)

	// A different branch must land on a different link path
	other := sync.NewUnit(sync.RemoteID("https://example/repo"),
		ostree.Ref{Path: "testing/x86_64/os", Commit: "def456"}, linksDir)
	assert.NotEqual(t, first.StoragePath, other.StoragePath)
	assert.Equal(t, linksDir, filepath.Dir(other.StoragePath))
}
