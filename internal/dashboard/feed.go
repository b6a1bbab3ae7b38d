// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package dashboard

import (
	"sync"

	"github.com/tomtom215/betsync/internal/models"
)

// DefaultFeedSize matches the number of lines the log viewer shows.
const DefaultFeedSize = 200

// Feed keeps the most recent notifications in a fixed-size ring.
type Feed struct {
	mu    sync.RWMutex
	buf   []models.Notification
	start int
	n     int
}

// NewFeed creates a feed holding at most size entries. size <= 0 uses
// DefaultFeedSize.
func NewFeed(size int) *Feed {
	if size <= 0 {
		size = DefaultFeedSize
	}
	return &Feed{buf: make([]models.Notification, size)}
}

// Append adds n, evicting the oldest entry when the feed is full.
//
//nolint:gocritic // Notification is copied into the ring
func (f *Feed) Append(n models.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.n < len(f.buf) {
		f.buf[(f.start+f.n)%len(f.buf)] = n
		f.n++
		return
	}
	f.buf[f.start] = n
	f.start = (f.start + 1) % len(f.buf)
}

// Entries returns the retained notifications, oldest first.
func (f *Feed) Entries() []models.Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]models.Notification, f.n)
	for i := 0; i < f.n; i++ {
		out[i] = f.buf[(f.start+i)%len(f.buf)]
	}
	return out
}

// Len returns the number of retained notifications.
func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.n
}

// Clear drops every entry.
func (f *Feed) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.start, f.n = 0, 0
	clear(f.buf)
}
