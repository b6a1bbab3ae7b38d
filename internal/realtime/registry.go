// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package realtime

import (
	"sync"
)

// Handler consumes envelopes of the type it was subscribed to.
type Handler interface {
	Handle(env Envelope)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(env Envelope)

// Handle calls f(env).
func (f HandlerFunc) Handle(env Envelope) { f(env) }

// Subscription is returned by Subscribe. Unsubscribe removes the handler.
type Subscription struct {
	id   uint64
	typ  string
	reg  *registry
	once sync.Once
}

// Unsubscribe removes the handler. Calling it more than once, or on a nil
// Subscription, is a no-op.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.reg == nil {
		return
	}
	s.once.Do(func() { s.reg.remove(s.typ, s.id) })
}

type entry struct {
	id      uint64
	handler Handler
}

// registry maps envelope types to handlers in registration order.
type registry struct {
	mu     sync.RWMutex
	nextID uint64
	byType map[string][]entry
}

func newRegistry() *registry {
	return &registry{byType: make(map[string][]entry)}
}

func (r *registry) add(typ string, h Handler) *Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	r.byType[typ] = append(r.byType[typ], entry{id: r.nextID, handler: h})
	return &Subscription{id: r.nextID, typ: typ, reg: r}
}

func (r *registry) remove(typ string, id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := r.byType[typ]
	for i, e := range entries {
		if e.id != id {
			continue
		}
		kept := make([]entry, 0, len(entries)-1)
		kept = append(kept, entries[:i]...)
		kept = append(kept, entries[i+1:]...)
		if len(kept) == 0 {
			delete(r.byType, typ)
		} else {
			r.byType[typ] = kept
		}
		return
	}
}

// handlers returns a snapshot so handlers may subscribe or unsubscribe
// while the snapshot is being invoked.
func (r *registry) handlers(typ string) []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.byType[typ]
	if len(entries) == 0 {
		return nil
	}
	out := make([]Handler, len(entries))
	for i, e := range entries {
		out[i] = e.handler
	}
	return out
}

func (r *registry) count(typ string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byType[typ])
}
