// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

/*
Package models defines the data structures exchanged with the betting backend.

Every type mirrors the JSON produced by the backend on both the realtime
channel and the REST API. The same value can arrive through either path and
is reconciled into the same cache.

Key Components:

  - Team: a tracked team with its stake progression and lifetime results
  - Bet: a single placed (or pending) bet
  - BotState: scheduler status of the betting bot
  - DashboardStats: aggregate counters shown on the dashboard
  - InitialState: payload of the first frame after a connection opens
  - Notification: user-facing message built from notification, log and error frames
  - APIResponse: wrapper used by the local status endpoints

Timestamps are kept as the strings the backend sends. The backend emits naive
ISO-8601 values without a zone, which encoding/json cannot parse into
time.Time, and the client never does arithmetic on them.

Nullable backend fields are pointers; nil encodes as JSON null.
*/
package models
