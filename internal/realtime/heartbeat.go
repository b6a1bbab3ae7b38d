// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package realtime

import (
	"github.com/rs/zerolog"

	"github.com/tomtom215/betsync/internal/metrics"
)

// sender is the part of Manager the heartbeat responder needs.
type sender interface {
	Send(msg any) bool
}

// heartbeat answers server pings. Pings never reach subscribers.
type heartbeat struct {
	out sender
	log zerolog.Logger
}

// respond sends one pong. When the connection is not open the pong is dropped
// without error.
func (h *heartbeat) respond(ping Envelope) {
	pong, err := NewEnvelope(TypePong, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build pong")
		return
	}

	sent := h.out.Send(pong)
	metrics.RecordHeartbeat(sent)
	if !sent {
		h.log.Debug().Str("ping_timestamp", ping.Timestamp).Msg("Connection not open, pong dropped")
	}
}
