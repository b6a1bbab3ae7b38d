// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package cache

import (
	"sync"

	"github.com/tomtom215/betsync/internal/logging"
)

// Collection is an ordered list of entities with unique identities.
//
// Entries keep the position at which they were first inserted. Replacing an
// entry swaps the whole value in place; fields are never merged. The only
// ways an entry leaves the collection are Remove and ReplaceAll.
//
// Thread Safety:
//   - Safe for concurrent access from multiple goroutines
//   - The push path and the request/response path may both mutate it
//   - Change listeners run after the lock is released
type Collection[T any] struct {
	mu       sync.RWMutex
	key      func(T) string
	items    []T
	index    map[string]int
	onChange []func()
}

// NewCollection creates an empty collection. key extracts the identity of an
// entity and must be stable for the lifetime of the entity.
//
// Example:
//
//	teams := cache.NewCollection(models.TeamKey)
//	teams.Upsert(team)
func NewCollection[T any](key func(T) string) *Collection[T] {
	return &Collection[T]{
		key:   key,
		index: make(map[string]int),
	}
}

// Upsert replaces the entity with the same identity, or appends v when none
// exists. Applying the same value twice leaves the collection unchanged.
//
// Returns:
//   - index: position of v after the call, or -1 when v was rejected
//   - inserted: true when v was appended rather than replaced
//
// An entity with an empty identity is rejected and logged.
//
//nolint:gocritic // T is caller-defined and commonly a struct value
func (c *Collection[T]) Upsert(v T) (index int, inserted bool) {
	id := c.key(v)
	if id == "" {
		logging.Warn().Msg("Rejecting entity with empty identity")
		return -1, false
	}

	c.mu.Lock()
	if i, ok := c.index[id]; ok {
		c.items[i] = v
		index = i
	} else {
		c.items = append(c.items, v)
		index = len(c.items) - 1
		c.index[id] = index
		inserted = true
	}
	c.mu.Unlock()

	c.changed()
	return index, inserted
}

// Remove deletes the entity with the given identity. Entries after it shift
// up by one; their relative order is preserved. It reports whether an entry
// was removed.
func (c *Collection[T]) Remove(id string) bool {
	c.mu.Lock()
	i, ok := c.index[id]
	if !ok {
		c.mu.Unlock()
		return false
	}

	c.items = append(c.items[:i], c.items[i+1:]...)
	delete(c.index, id)
	for j := i; j < len(c.items); j++ {
		c.index[c.key(c.items[j])] = j
	}
	c.mu.Unlock()

	c.changed()
	return true
}

// ReplaceAll swaps the whole content for items, in the given order. It is used
// when the backend sends a full list. When items repeats an identity the last
// value wins and keeps the position of the first occurrence. Entities with an
// empty identity are skipped.
func (c *Collection[T]) ReplaceAll(items []T) {
	next := make([]T, 0, len(items))
	index := make(map[string]int, len(items))
	skipped := 0

	for _, v := range items {
		id := c.key(v)
		if id == "" {
			skipped++
			continue
		}
		if i, ok := index[id]; ok {
			next[i] = v
			continue
		}
		index[id] = len(next)
		next = append(next, v)
	}
	if skipped > 0 {
		logging.Warn().Int("skipped", skipped).Msg("Skipped entities with empty identity")
	}

	c.mu.Lock()
	c.items = next
	c.index = index
	c.mu.Unlock()

	c.changed()
}

// Get returns the entity with the given identity.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return c.items[i], true
}

// Items returns a copy of the entries in order.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Filter returns a copy of the entries for which keep returns true, in order.
func (c *Collection[T]) Filter(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []T
	for _, v := range c.items {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// Len returns the number of entries.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// OnChange registers fn to run after every mutation.
func (c *Collection[T]) OnChange(fn func()) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.onChange = append(c.onChange, fn)
	c.mu.Unlock()
}

func (c *Collection[T]) changed() {
	c.mu.RLock()
	listeners := append([]func(){}, c.onChange...)
	c.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}
