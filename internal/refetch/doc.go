// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

/*
Package refetch reloads the dashboard through the betting REST API.

A resync asks the push channel for a full copy of the state. When the
backend exposes its REST API, Client also fetches the same collections
over HTTP so the dashboard recovers even if the push channel is slow to
answer:

	GET {base}/teams      -> Teams.ReplaceAll
	GET {base}/bets       -> Bets.ReplaceAll
	GET {base}/stats      -> SetStats
	GET {base}/bot/state  -> SetBotState

Every request carries the session token as a Bearer header. Nothing is
applied unless all four requests succeed.

# Circuit Breaker

Breaker wraps any dashboard.Refetcher with a sony/gobreaker circuit
breaker. After consecutive failures it opens and refetches are skipped
until the timeout elapses, so an unreachable API does not cost a request
burst on every reconnect. Only the REST path is guarded; the push channel
keeps reconnecting on its own schedule.
*/
package refetch
