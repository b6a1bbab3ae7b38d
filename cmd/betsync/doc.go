// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

/*
Command betsync keeps a local copy of the betting dashboard in sync with the
backend over its realtime push channel.

It connects to the dashboard's realtime endpoint, answers heartbeats,
reconnects after failures, resyncs after every reconnect and keeps teams,
bets, bot state, stats and the notification feed in memory. A local status
endpoint exposes that state, Prometheus metrics and a WebSocket stream of
changes.

# Process Layout

	RootSupervisor ("betsync")
	├── data-layer
	│   └── snapshot-gc (when cache.snapshot_enabled with a path)
	├── realtime-layer
	│   └── realtime-manager
	└── api-layer
	    ├── stream-hub (when server.stream_enabled)
	    └── status-server (when server.enabled)

Startup order:

 1. Configuration: koanf (defaults, YAML file, environment)
 2. Logging: zerolog, JSON or console
 3. Credentials: token, token file, token environment variable
 4. Snapshot store: badger, restored into the dashboard before connecting
 5. Realtime manager and dashboard wiring
 6. Status server: chi router
 7. Supervisor tree: suture v4, stopped by SIGINT or SIGTERM

# Usage

	BETSYNC_PAGE_URL=https://dash.example.com \
	BETSYNC_TOKEN_FILE=/run/secrets/betsync_token \
	LOG_FORMAT=console \
	betsync

See package config for every setting.
*/
package main
