// SPDX-FileCopyrightText: 2026 Pier Luigi Fiorini <pierluigi.fiorini@gmail.com>
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package sync

import (
	"errors"
	"os"
)

// LinkUnit links the unit storage path to the mirror storage path.
// A link that already points at the target is fine; anything else
// occupying the path means two distinct mirrors alias the same storage
// and is a conflict that must never be papered over.
func LinkUnit(unit Unit, target string) error {
	err := os.Symlink(target, unit.StoragePath)
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrExist) {
		existing, rerr := os.Readlink(unit.StoragePath)
		if rerr == nil && existing == target {
			// identical
			return nil
		}
		return &StorageLinkConflictError{
			Link:           unit.StoragePath,
			ExistingTarget: existing,
			ExpectedTarget: target,
		}
	}

	return err
}
