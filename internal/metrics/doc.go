// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

/*
Package metrics provides Prometheus metrics for the realtime client.

All collectors are registered on the default registry through promauto and
exposed by the status server at /metrics:

	curl http://localhost:9310/metrics

# Available Metrics

Connection:
  - betsync_connection_state: current state (0=disconnected, 1=connecting, 2=connected, 3=reconnecting)
  - betsync_connect_attempts_total{result}: dial outcomes (success, failure)
  - betsync_reconnects_scheduled_total: reconnection timers armed

Frames:
  - betsync_frames_received_total{type}: decoded frames by envelope type
  - betsync_decode_errors_total: frames dropped because they failed to decode
  - betsync_heartbeats_total{result}: ping acknowledgements (sent, dropped)
  - betsync_messages_sent_total{result}: outbound frames (sent, dropped, error)
  - betsync_handler_panics_total{type}: subscriber handlers that panicked

Cache:
  - betsync_collection_size{collection}: entries per cached collection
  - betsync_resyncs_total{result}: resync requests (sent, throttled)

Status API:
  - betsync_api_requests_total{method,route,status}
  - betsync_api_request_duration_seconds{method,route}

# Usage

	metrics.RecordConnectAttempt(err)
	metrics.SetConnectionState(2)
	metrics.RecordFrame("team_update")
*/
package metrics
