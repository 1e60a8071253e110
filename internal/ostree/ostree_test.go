// SPDX-FileCopyrightText: 2026 Pier Luigi Fiorini <pierluigi.fiorini@gmail.com>
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package ostree

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRepoNotFound(t *testing.T) {
	_, err := OpenRepo(t.TempDir())
	assert.ErrorIs(t, err, ErrRepoNotFound)
}

func TestOpenRepoEmptyPath(t *testing.T) {
	_, err := OpenRepo("")
	assert.Error(t, err)
}

func TestOpenRepo(t *testing.T) {
	path := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(path, "config"), []byte("[core]\nmode=archive\n"), 0644))

	repo, err := OpenRepo(path)
	require.NoError(t, err)
	assert.Equal(t, path, repo.Path())
}

func TestRemoteAddArgs(t *testing.T) {
	opts := RemoteOptions{
		URL:            "https://example/repo",
		SSLKeyPath:     "/work/key.pem",
		SSLCertPath:    "/work/cert.pem",
		SSLCAPath:      "/work/ca.pem",
		SSLValidation:  true,
		ProxyURL:       "u:w@proxy.example:3128",
		GPGValidation:  true,
		GPGKeyringPath: "/work/pubring.gpg",
	}

	args := remoteAddArgs("/srv/mirror", "sync-1", opts)
	assert.Equal(t, []string{
		"remote", "add", "--repo=/srv/mirror", "--force",
		"--set=tls-client-key-path=/work/key.pem",
		"--set=tls-client-cert-path=/work/cert.pem",
		"--set=tls-ca-path=/work/ca.pem",
		"--set=proxy=u:w@proxy.example:3128",
		"sync-1", "https://example/repo",
	}, args)
}

func TestRemoteAddArgsDefaults(t *testing.T) {
	args := remoteAddArgs("/srv/mirror", "sync-1", RemoteOptions{URL: "https://example/repo"})

	// Without keys or validation the remote is permissive
	assert.Equal(t, []string{
		"remote", "add", "--repo=/srv/mirror", "--force",
		"--no-gpg-verify",
		"--set=tls-permissive=true",
		"sync-1", "https://example/repo",
	}, args)
}

func TestParseProgress(t *testing.T) {
	tests := []struct {
		line      string
		fetched   int
		requested int
		percent   int
		ok        bool
	}{
		{"Receiving objects: 45% (123/273) 1.2 MB/s", 123, 273, 45, true},
		{"Receiving delta parts: 10% (1/10) 500.0 kB/s", 1, 10, 10, true},
		{"Receiving metadata objects: 20% (1/5)", 0, 0, 0, false},
		{"2 metadata, 8 content objects fetched", 0, 0, 0, false},
		{"", 0, 0, 0, false},
	}

	for _, tt := range tests {
		fetched, requested, percent, ok := parseProgress(tt.line)
		assert.Equal(t, tt.ok, ok, tt.line)
		assert.Equal(t, tt.fetched, fetched, tt.line)
		assert.Equal(t, tt.requested, requested, tt.line)
		assert.Equal(t, tt.percent, percent, tt.line)
	}
}

func TestStatusScannerSplitsOnCarriageReturn(t *testing.T) {
	stream := "Receiving objects: 10% (27/273)\rReceiving objects: 45% (123/273)\ndone\n"

	scanner := newStatusScanner(strings.NewReader(stream))
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	assert.Equal(t, []string{
		"Receiving objects: 10% (27/273)",
		"Receiving objects: 45% (123/273)",
		"done",
	}, lines)
}
