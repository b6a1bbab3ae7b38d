// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

/*
Package middleware provides HTTP middleware for the status API.

  - RequestID: UUID request IDs in the X-Request-ID header, the request
    context and a request-scoped zerolog logger (zerolog.Ctx)
  - PrometheusMetrics: request counts and latency labeled by chi route
    pattern, so /api/v1/teams/{id} is one series regardless of the ID
  - AccessLog: one debug line per request

All three are func(http.Handler) http.Handler and are installed with chi's
r.Use:

	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
