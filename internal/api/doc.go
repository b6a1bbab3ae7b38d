// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

/*
Package api serves the local status endpoint of the betsync daemon.

It exposes what the client currently knows: the realtime connection state,
the cached teams and bets, bot state, stats and the notification feed. It is
not the betting REST API; nothing here writes to the backend.

# Endpoints

	GET  /healthz              liveness, always 200
	GET  /readyz               200 when the realtime connection is open, else 503
	GET  /metrics              Prometheus exposition
	GET  /api/v1/status        connection state and dashboard summary
	GET  /api/v1/teams         cached teams (?status=active|paused&sport=...)
	GET  /api/v1/teams/{id}    one team
	GET  /api/v1/bets          cached bets (?status=...&team_id=...&limit=N)
	GET  /api/v1/bets/{id}     one bet
	GET  /api/v1/feed          notification feed, newest last (?limit=N)
	POST /api/v1/resync        request a full resync (202, or 429 when throttled)

Responses use models.APIResponse and are encoded with goccy/go-json. Routing
uses go-chi/chi with go-chi/cors and go-chi/httprate middleware.
*/
package api
