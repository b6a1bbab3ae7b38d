// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package realtime

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/betsync/internal/metrics"
)

// dispatcher decodes frames and routes them. Dispatch calls are serialized so
// handlers never overlap.
type dispatcher struct {
	mu        sync.Mutex
	registry  *registry
	heartbeat *heartbeat
	log       zerolog.Logger

	lastMu sync.RWMutex
	last   *Envelope
}

func newDispatcher(reg *registry, hb *heartbeat, log zerolog.Logger) *dispatcher {
	return &dispatcher{registry: reg, heartbeat: hb, log: log}
}

// Dispatch handles one frame. A frame that fails to decode is logged and
// dropped; nothing else changes.
func (d *dispatcher) Dispatch(frame []byte) {
	env, err := decodeEnvelope(frame)
	if err != nil {
		metrics.RecordDecodeError()
		d.log.Warn().Err(err).Int("bytes", len(frame)).Msg("Dropping malformed frame")
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.lastMu.Lock()
	d.last = &env
	d.lastMu.Unlock()
	metrics.RecordFrame(env.Type)

	if env.Type == TypePing {
		d.heartbeat.respond(env)
		return
	}

	handlers := d.registry.handlers(env.Type)
	if len(handlers) == 0 {
		d.log.Debug().Str("type", env.Type).Msg("No handler for envelope type")
		return
	}
	for _, h := range handlers {
		d.invoke(h, env)
	}
}

// invoke runs one handler. A panic is logged and does not stop the
// remaining handlers or the read loop.
func (d *dispatcher) invoke(h Handler, env Envelope) {
	defer func() {
		if r := recover(); r != nil {
			metrics.RecordHandlerPanic(env.Type)
			d.log.Error().Interface("panic", r).Str("type", env.Type).Msg("Handler panicked")
		}
	}()
	h.Handle(env)
}

// Last returns the most recently decoded envelope.
func (d *dispatcher) Last() (Envelope, bool) {
	d.lastMu.RLock()
	defer d.lastMu.RUnlock()
	if d.last == nil {
		return Envelope{}, false
	}
	return *d.last, true
}
