// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

/*
Package realtime maintains the push connection to the betting backend and
routes every incoming frame to the handlers subscribed to its type.

# Components

  - Manager: owns the single WebSocket connection, its state and the
    fixed-delay reconnection timer
  - heartbeat responder: answers server ping frames with a pong
  - dispatcher: decodes frames into Envelopes and routes them in arrival order
  - registry: string-keyed table of subscribed handlers

# Connection Lifecycle

	Disconnected --Connect()--> Connecting --open--> Connected
	     ^                          |                    |
	     |                        error              close/error
	     |                          v                    v
	     +------Disconnect()---- Reconnecting <----------+
	                                |
	                      timer fires, dial again

Connect is idempotent while a connection is being opened or is open.
Disconnect is the only way to stop the reconnection loop; it invalidates any
pending timer and any in-flight dial so a stale callback can never reopen the
connection.

# Ordering

Frames from one connection are read by a single goroutine and dispatched one
at a time, so handlers never run concurrently with each other and observe
frames in arrival order.

# Usage

	m := realtime.NewManager(realtime.DefaultConfig(), loc, credentials.Env("BETSYNC_TOKEN"))
	m.Subscribe(realtime.TypeTeamUpdate, cache.Reconcile(teams))
	m.OnStateChange(func(s realtime.State) {
	    logging.Info().Str("state", s.String()).Msg("Realtime state changed")
	})
	m.Connect()
	defer m.Disconnect()
*/
package realtime
