// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package realtime

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// DefaultPath is the realtime endpoint path on the dashboard host.
const DefaultPath = "/ws"

// TokenParam is the query parameter that carries the bearer credential.
const TokenParam = "token"

// ErrEmptyHost is returned when a page URL has no host.
var ErrEmptyHost = errors.New("page url has no host")

// Location identifies the dashboard the client belongs to. The realtime
// endpoint lives on the same host, and its scheme follows the page scheme.
type Location struct {
	Scheme string // http or https
	Host   string // host[:port]
}

// ParseLocation extracts the Location from a dashboard URL such as
// https://dash.example.com.
func ParseLocation(pageURL string) (Location, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return Location{}, fmt.Errorf("parse page url: %w", err)
	}
	if u.Host == "" {
		return Location{}, fmt.Errorf("%w: %q", ErrEmptyHost, pageURL)
	}
	return Location{Scheme: strings.ToLower(u.Scheme), Host: u.Host}, nil
}

// Secure reports whether the page is served over TLS.
func (l Location) Secure() bool {
	return l.Scheme == "https" || l.Scheme == "wss"
}

// Endpoint builds the realtime URL. A secure page maps to wss and anything
// else to ws. When token is empty the URL carries no query string.
func (l Location) Endpoint(path, token string) string {
	scheme := "ws"
	if l.Secure() {
		scheme = "wss"
	}
	if path == "" {
		path = DefaultPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	u := url.URL{Scheme: scheme, Host: l.Host, Path: path}
	if token != "" {
		q := url.Values{}
		q.Set(TokenParam, token)
		u.RawQuery = q.Encode()
	}
	return u.String()
}
