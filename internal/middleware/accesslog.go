// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// AccessLog writes one debug entry per request through the request-scoped
// logger. Install it after RequestID so entries carry the request ID.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)

		next.ServeHTTP(rec, r)

		zerolog.Ctx(r.Context()).Debug().
			Str("method", r.Method).
			Str("route", routePattern(r)).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("Status API request")
	})
}
