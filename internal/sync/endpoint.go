// SPDX-FileCopyrightText: 2026 Pier Luigi Fiorini <pierluigi.fiorini@gmail.com>
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package sync

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lirios/ostree-sync/internal/config"
	"github.com/lirios/ostree-sync/internal/ostree"
)

// Endpoint describes the remote used for a sync run. NewEndpoint
// computes everything that can be derived from configuration alone;
// Materialize writes the TLS and GPG material to disk and fills in the
// resulting paths and trust set.
type Endpoint struct {
	URL            string
	SSLKeyPath     string
	SSLCertPath    string
	SSLCAPath      string
	SSLValidation  bool
	ProxyURL       string
	GPGValidation  bool
	GPGKeyringPath string
	GPGKeyIDs      []string

	sslKey  string
	sslCert string
	sslCA   string
	gpgKeys []string
}

// NewEndpoint computes an endpoint from the feed configuration.
// No side effects happen here.
func NewEndpoint(feed *config.Feed) *Endpoint {
	return &Endpoint{
		URL:           feed.URL,
		SSLValidation: feed.SSLValidation,
		ProxyURL:      proxyURL(feed.Proxy),
		sslKey:        feed.SSLClientKey,
		sslCert:       feed.SSLClientCert,
		sslCA:         feed.SSLCACert,
		gpgKeys:       feed.GPGKeys,
	}
}

// proxyURL composes the proxy URL from the feed settings. Both host
// and port are needed for a proxy at all, and both user and password
// for credentials; a user without a password is ignored.
func proxyURL(proxy *config.Proxy) string {
	if proxy == nil || proxy.Host == "" || proxy.Port == 0 {
		return ""
	}

	url := fmt.Sprintf("%s:%d", proxy.Host, proxy.Port)
	if proxy.User != "" && proxy.Password != "" {
		url = fmt.Sprintf("%s:%s@%s", proxy.User, proxy.Password, url)
	}

	return url
}

// Materialize writes the TLS certificates and the GPG keyring into the
// working directory. The private key is only readable by the owner.
func (e *Endpoint) Materialize(workDir string) error {
	if e.sslKey != "" {
		path := filepath.Join(workDir, "key.pem")
		if err := os.WriteFile(path, []byte(e.sslKey), 0600); err != nil {
			return err
		}
		e.SSLKeyPath = path
	}

	if e.sslCert != "" {
		path := filepath.Join(workDir, "cert.pem")
		if err := os.WriteFile(path, []byte(e.sslCert), 0644); err != nil {
			return err
		}
		e.SSLCertPath = path
	}

	if e.sslCA != "" {
		path := filepath.Join(workDir, "ca.pem")
		if err := os.WriteFile(path, []byte(e.sslCA), 0644); err != nil {
			return err
		}
		e.SSLCAPath = path
	}

	keyringPath := filepath.Join(workDir, "pubring.gpg")
	keyIDs, err := BuildKeyring(keyringPath, e.gpgKeys)
	if err != nil {
		return err
	}
	e.GPGKeyringPath = keyringPath
	e.GPGKeyIDs = keyIDs
	e.GPGValidation = len(keyIDs) > 0

	return nil
}

// remoteOptions translates the endpoint for the repository engine
func (e *Endpoint) remoteOptions() ostree.RemoteOptions {
	return ostree.RemoteOptions{
		URL:            e.URL,
		SSLKeyPath:     e.SSLKeyPath,
		SSLCertPath:    e.SSLCertPath,
		SSLCAPath:      e.SSLCAPath,
		SSLValidation:  e.SSLValidation,
		ProxyURL:       e.ProxyURL,
		GPGValidation:  e.GPGValidation,
		GPGKeyringPath: e.GPGKeyringPath,
		GPGKeyIDs:      e.GPGKeyIDs,
	}
}
