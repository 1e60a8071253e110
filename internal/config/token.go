// SPDX-FileCopyrightText: 2026 Pier Luigi Fiorini <pierluigi.fiorini@gmail.com>
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

// Token represents an API token
type Token struct {
	Token   string `yaml:"token"`
	Created string `yaml:"created"`
}

// GenerateToken generates a new random API token
func GenerateToken() (*Token, error) {
	key := make([]byte, 64)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}

	tokenString := base64.StdEncoding.EncodeToString(key)

	return &Token{Token: tokenString, Created: time.Now().UTC().Format(time.RFC3339)}, nil
}
