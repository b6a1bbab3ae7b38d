// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

/*
Package stream relays dashboard changes to local WebSocket clients.

A Hub fans messages out to every connected client. Relay wires a
dashboard.Dashboard into a Hub so that every change to teams, bets, bot state,
stats or the notification feed is pushed as one JSON message:

	{"type":"teams","data":[...],"timestamp":"2026-01-02T10:00:00Z"}

New clients first receive the current state, then live updates.

# Message Types

  - teams, bets: the full collection, in display order
  - bot_state, stats: the latest value
  - notification: the newest feed entry
  - pong: reply to a client "ping"

# Supervision

Hub implements suture.Service. Clients may join before the first Serve. When
its context is canceled every client is closed, and new clients are refused
with 503 until the supervisor restarts it.

# Slow Clients

Each client has a bounded send buffer. A client whose buffer is full is
disconnected rather than allowed to hold back the others.
*/
package stream
