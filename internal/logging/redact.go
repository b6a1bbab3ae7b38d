// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package logging

import (
	"net/url"
)

// SanitizeToken masks a token, showing only the first and last 4 characters.
// Example: "eyJhbGciOiJIUzI1NiJ9.e30.sig-value" -> "eyJh...alue"
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// sensitiveQueryParams are masked by RedactURL.
var sensitiveQueryParams = []string{"token", "access_token", "api_key"}

// RedactURL returns raw with credential query parameters masked.
// Unparseable input is replaced entirely so it cannot leak a token.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "[unparseable url]"
	}

	q := u.Query()
	changed := false
	for _, name := range sensitiveQueryParams {
		if v := q.Get(name); v != "" {
			q.Set(name, SanitizeToken(v))
			changed = true
		}
	}
	if changed {
		u.RawQuery = q.Encode()
	}
	return u.String()
}
