// SPDX-FileCopyrightText: 2026 Pier Luigi Fiorini <pierluigi.fiorini@gmail.com>
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package sync

import (
	"bytes"
	"os"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"

	"github.com/lirios/ostree-sync/internal/logger"
)

// BuildKeyring imports the configured key blobs into a keyring file at
// path and returns the IDs of the keys the keyring ends up holding.
//
// Blobs that fail to import are skipped, so the trust set can be a
// strict subset of the configuration. This weakens trust silently but
// matches how partial imports have always been handled; callers must
// tolerate it.
func BuildKeyring(path string, blobs []string) ([]string, error) {
	var entities openpgp.EntityList

	for _, blob := range blobs {
		el, err := openpgp.ReadArmoredKeyRing(strings.NewReader(blob))
		if err != nil {
			el, err = openpgp.ReadKeyRing(bytes.NewReader([]byte(blob)))
		}
		if err != nil {
			logger.Debugf("Skipping GPG key that cannot be imported: %v", err)
			continue
		}
		entities = append(entities, el...)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	for _, entity := range entities {
		if err := entity.Serialize(file); err != nil {
			return nil, err
		}
	}
	if err := file.Close(); err != nil {
		return nil, err
	}

	if len(entities) == 0 {
		return nil, nil
	}

	// Read the IDs back from the keyring rather than trusting the
	// input list, the file is what the engine will verify against
	ring, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer ring.Close()

	imported, err := openpgp.ReadKeyRing(ring)
	if err != nil {
		return nil, err
	}

	keyIDs := []string{}
	for _, entity := range imported {
		keyIDs = append(keyIDs, entity.PrimaryKey.KeyIdString())
	}

	return keyIDs, nil
}
