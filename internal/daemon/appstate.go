// SPDX-FileCopyrightText: 2026 Pier Luigi Fiorini <pierluigi.fiorini@gmail.com>
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package daemon

import (
	"github.com/lirios/ostree-sync/internal/catalog"
	"github.com/lirios/ostree-sync/internal/config"
)

// AppState represents the daemon context
type AppState struct {
	Config  *config.Config
	Catalog *catalog.Catalog
	Runner  *Runner
}

// ContextKey is a type that represents the key of a context
type ContextKey int

const (
	// KeyConfig is the context key for the configuration
	KeyConfig ContextKey = iota

	// KeyCatalog is the context key for the content catalog
	KeyCatalog

	// KeyRunner is the context key for the sync runner
	KeyRunner
)
