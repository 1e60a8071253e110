// SPDX-FileCopyrightText: 2026 Pier Luigi Fiorini <pierluigi.fiorini@gmail.com>
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package sync

import "github.com/lirios/ostree-sync/internal/logger"

// LogReporter writes progress straight to the logger. Every callback
// is printed as it arrives; nothing is coalesced.
type LogReporter struct {
	last string
}

// Report prints the stage once when it changes and every detail line
func (r *LogReporter) Report(description, detail string) {
	if description != r.last {
		logger.Action(description)
		r.last = description
	}
	if detail != "" {
		logger.Info(detail)
	}
}
