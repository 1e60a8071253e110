// SPDX-FileCopyrightText: 2026 Pier Luigi Fiorini <pierluigi.fiorini@gmail.com>
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Proxy holds the proxy settings of a feed.
// The proxy is used only when both host and port are set;
// credentials are used only when both user and password are set.
type Proxy struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// Feed describes a remote OSTree repository to mirror
type Feed struct {
	URL           string   `yaml:"url"`
	Branches      []string `yaml:"branches"`
	SSLClientKey  string   `yaml:"ssl_client_key"`
	SSLClientCert string   `yaml:"ssl_client_cert"`
	SSLCACert     string   `yaml:"ssl_ca_cert"`
	SSLValidation bool     `yaml:"ssl_validation"`
	Proxy         *Proxy   `yaml:"proxy"`
	GPGKeys       []string `yaml:"gpg_keys"`
}

// Config represents the configuration file
type Config struct {
	path    string
	Storage string   `yaml:"storage"`
	Tokens  []*Token `yaml:"tokens"`
	Feeds   []*Feed  `yaml:"feeds"`
}

// Error represents a configuration error for a specific field
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// Validate checks that the feed has everything a sync run needs
func (f *Feed) Validate() error {
	if f.URL == "" {
		return &Error{Field: "url", Reason: "feed URL is mandatory"}
	}
	if len(f.Branches) == 0 {
		return &Error{Field: "branches", Reason: "at least one branch is mandatory"}
	}
	return nil
}

// CreateConfig creates the configuration file
func CreateConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
		if err != nil {
			return nil, err
		}
		file.Close()
	}

	return OpenConfig(path)
}

// OpenConfig opens path
func OpenConfig(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(buf, &config); err != nil {
		return nil, err
	}

	config.path = path

	for _, feed := range config.Feeds {
		if err := feed.Validate(); err != nil {
			return nil, err
		}
	}

	return &config, nil
}

// FindFeed returns the configured feed with the given URL, or nil
func (c *Config) FindFeed(url string) *Feed {
	for _, feed := range c.Feeds {
		if feed.URL == url {
			return feed
		}
	}
	return nil
}

// Save saves the configuration file
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	file, err := os.Create(c.path)
	if err != nil {
		return err
	}
	defer file.Close()
	if _, err := file.Write(data); err != nil {
		return err
	}

	return nil
}
