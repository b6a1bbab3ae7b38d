// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

// Package credentials looks up the bearer token presented to the realtime
// endpoint.
//
// The token is opaque to the client. It is read each time a connection is
// opened, so a token rotated on disk or in the environment is picked up on the
// next reconnect without restarting the process.
package credentials

import (
	"os"
	"strings"

	"github.com/tomtom215/betsync/internal/logging"
)

// Source yields the current bearer token. ok is false when no credential is
// available, in which case the connection is opened without one.
type Source interface {
	Token() (token string, ok bool)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func() (string, bool)

// Token calls f.
func (f SourceFunc) Token() (string, bool) { return f() }

// None never yields a token.
var None Source = SourceFunc(func() (string, bool) { return "", false })

// Static always yields the same token. An empty string means no credential.
type Static string

// Token returns the static token.
func (s Static) Token() (string, bool) {
	return string(s), s != ""
}

// Env reads the token from an environment variable on every call.
type Env string

// Token returns the trimmed value of the variable.
func (e Env) Token() (string, bool) {
	v := strings.TrimSpace(os.Getenv(string(e)))
	return v, v != ""
}

// File reads the token from a file on every call. Surrounding whitespace,
// including the trailing newline most editors add, is trimmed.
type File string

// Token returns the trimmed file contents. A missing or unreadable file is
// logged and treated as no credential.
func (f File) Token() (string, bool) {
	data, err := os.ReadFile(string(f))
	if err != nil {
		logging.Warn().Err(err).Str("path", string(f)).Msg("Failed to read token file")
		return "", false
	}
	v := strings.TrimSpace(string(data))
	return v, v != ""
}

// Chain returns the first token yielded by sources, in order.
type Chain []Source

// Token walks the chain.
func (c Chain) Token() (string, bool) {
	for _, s := range c {
		if s == nil {
			continue
		}
		if tok, ok := s.Token(); ok {
			return tok, true
		}
	}
	return "", false
}
