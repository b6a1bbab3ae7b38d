// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package dashboard

import "sync"

// holder keeps a single value that is always replaced whole.
type holder[T any] struct {
	mu sync.RWMutex
	v  T
}

func (h *holder[T]) Load() T {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.v
}

//nolint:gocritic // T is a small struct value
func (h *holder[T]) Store(v T) {
	h.mu.Lock()
	h.v = v
	h.mu.Unlock()
}
