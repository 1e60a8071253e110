// SPDX-FileCopyrightText: 2026 Pier Luigi Fiorini <pierluigi.fiorini@gmail.com>
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package sync_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lirios/ostree-sync/internal/config"
	"github.com/lirios/ostree-sync/internal/sync"
)

func TestProxyURL(t *testing.T) {
	tests := []struct {
		name  string
		proxy *config.Proxy
		want  string
	}{
		{"no proxy", nil, ""},
		{"host and port", &config.Proxy{Host: "h", Port: 3128}, "h:3128"},
		{"full credentials", &config.Proxy{Host: "h", Port: 3128, User: "u", Password: "w"}, "u:w@h:3128"},
		{"user without password", &config.Proxy{Host: "h", Port: 3128, User: "u"}, "h:3128"},
		{"missing host", &config.Proxy{Port: 3128, User: "u", Password: "w"}, ""},
		{"missing port", &config.Proxy{Host: "h", User: "u", Password: "w"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoint := sync.NewEndpoint(&config.Feed{URL: "https://example/repo", Proxy: tt.proxy})
			assert.Equal(t, tt.want, endpoint.ProxyURL)
		})
	}
}

func TestNewEndpointDefaults(t *testing.T) {
	endpoint := sync.NewEndpoint(&config.Feed{URL: "https://example/repo"})

	assert.Equal(t, "https://example/repo", endpoint.URL)
	assert.False(t, endpoint.SSLValidation)
	assert.False(t, endpoint.GPGValidation)
	assert.Empty(t, endpoint.ProxyURL)
}

func TestMaterializeSSL(t *testing.T) {
	workDir := t.TempDir()

	endpoint := sync.NewEndpoint(&config.Feed{
		URL:           "https://example/repo",
		SSLClientKey:  "KEY",
		SSLClientCert: "CERT",
		SSLCACert:     "CA",
		SSLValidation: true,
	})
	require.NoError(t, endpoint.Materialize(workDir))

	assert.Equal(t, filepath.Join(workDir, "key.pem"), endpoint.SSLKeyPath)
	assert.Equal(t, filepath.Join(workDir, "cert.pem"), endpoint.SSLCertPath)
	assert.Equal(t, filepath.Join(workDir, "ca.pem"), endpoint.SSLCAPath)
	assert.True(t, endpoint.SSLValidation)

	// The private key must only be readable by the owner
	info, err := os.Stat(endpoint.SSLKeyPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	key, err := os.ReadFile(endpoint.SSLKeyPath)
	require.NoError(t, err)
	assert.Equal(t, "KEY", string(key))
}

func TestMaterializeWithoutSSL(t *testing.T) {
	workDir := t.TempDir()

	endpoint := sync.NewEndpoint(&config.Feed{URL: "https://example/repo"})
	require.NoError(t, endpoint.Materialize(workDir))

	assert.Empty(t, endpoint.SSLKeyPath)
	assert.Empty(t, endpoint.SSLCertPath)
	assert.Empty(t, endpoint.SSLCAPath)

	_, err := os.Stat(filepath.Join(workDir, "key.pem"))
	assert.True(t, os.IsNotExist(err))
}

func armoredTestKey(t *testing.T, name, email string) string {
	t.Helper()

	entity, err := openpgp.NewEntity(name, "", email, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	w, err := armor.Encode(&buf, openpgp.PublicKeyType, nil)
	require.NoError(t, err)
	require.NoError(t, entity.Serialize(w))
	require.NoError(t, w.Close())

	return buf.String()
}

func TestMaterializeGPGPartialImport(t *testing.T) {
	workDir := t.TempDir()

	endpoint := sync.NewEndpoint(&config.Feed{
		URL:     "https://example/repo",
		GPGKeys: []string{armoredTestKey(t, "Sync Test", "sync@example.com"), "not a key"},
	})
	require.NoError(t, endpoint.Materialize(workDir))

	// The unimportable blob shrinks the trust set instead of failing
	assert.Equal(t, filepath.Join(workDir, "pubring.gpg"), endpoint.GPGKeyringPath)
	require.Len(t, endpoint.GPGKeyIDs, 1)
	assert.Len(t, endpoint.GPGKeyIDs[0], 16)
	assert.True(t, endpoint.GPGValidation)
}

func TestMaterializeGPGNoImportableKeys(t *testing.T) {
	workDir := t.TempDir()

	endpoint := sync.NewEndpoint(&config.Feed{
		URL:     "https://example/repo",
		GPGKeys: []string{"garbage"},
	})
	require.NoError(t, endpoint.Materialize(workDir))

	assert.Empty(t, endpoint.GPGKeyIDs)
	assert.False(t, endpoint.GPGValidation)
}

func TestBuildKeyringReadsBackFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pubring.gpg")

	blobs := []string{
		armoredTestKey(t, "First", "first@example.com"),
		armoredTestKey(t, "Second", "second@example.com"),
	}

	keyIDs, err := sync.BuildKeyring(path, blobs)
	require.NoError(t, err)
	assert.Len(t, keyIDs, 2)

	// The keyring file itself holds the keys the IDs belong to
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	ring, err := openpgp.ReadKeyRing(file)
	require.NoError(t, err)
	assert.Len(t, ring, 2)
}
