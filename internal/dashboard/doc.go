// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

// Package dashboard binds the realtime client to the client-side state the
// dashboard renders: teams, bets, bot state, stats and the notification feed.
//
// Attach subscribes one handler per envelope type. Whenever the connection
// (re)opens, the dashboard asks the backend for a full resync so anything
// missed while disconnected is recovered.
package dashboard
