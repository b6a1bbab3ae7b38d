// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package realtime

// State is the connection state observed by subscribers of OnStateChange.
type State int32

const (
	// StateDisconnected means no connection exists and none is scheduled.
	StateDisconnected State = iota
	// StateConnecting means a dial is in flight.
	StateConnecting
	// StateConnected means the connection is open; frames flow and Send works.
	StateConnected
	// StateReconnecting means the connection was lost and a retry is pending.
	StateReconnecting
)

// String returns the lower-case name of the state.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReconnecting:
		return "reconnecting"
	default:
		return "unknown"
	}
}
