// SPDX-FileCopyrightText: 2026 Pier Luigi Fiorini <pierluigi.fiorini@gmail.com>
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package common

// FeedResponse describes a configured feed
type FeedResponse struct {
	URL      string   `json:"url"`
	Branches []string `json:"branches"`
}

// SyncRequest asks the daemon to sync a configured feed
type SyncRequest struct {
	URL string `json:"url"`
}

// SyncResponse contains the identifier of the started run
type SyncResponse struct {
	RunID string `json:"id"`
}

// RunResponse describes a sync run and its progress
type RunResponse struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Stage    string `json:"stage"`
	Detail   string `json:"detail"`
	State    string `json:"state"`
	Error    string `json:"error,omitempty"`
	Started  string `json:"started"`
	Finished string `json:"finished,omitempty"`
}

// UnitResponse describes a cataloged content unit
type UnitResponse struct {
	TypeID      string            `json:"type_id"`
	Key         map[string]string `json:"key"`
	Metadata    map[string]string `json:"metadata"`
	StoragePath string            `json:"storage_path"`
}
