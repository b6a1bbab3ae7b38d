// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package cache

import (
	"github.com/goccy/go-json"

	"github.com/tomtom215/betsync/internal/logging"
	"github.com/tomtom215/betsync/internal/realtime"
)

// Reconcile returns a handler that decodes the envelope payload as a single T
// and upserts it into c.
//
//	m.Subscribe(realtime.TypeTeamUpdate, cache.Reconcile(teams))
func Reconcile[T any](c *Collection[T]) realtime.Handler {
	return realtime.HandlerFunc(func(env realtime.Envelope) {
		v, err := realtime.DecodeData[T](env)
		if err != nil {
			logging.Warn().Err(err).Str("type", env.Type).Msg("Ignoring update with unreadable payload")
			return
		}
		index, inserted := c.Upsert(v)
		logging.Debug().Str("type", env.Type).Int("index", index).Bool("inserted", inserted).Msg("Reconciled entity")
	})
}

// RemoveByID returns a handler that removes the entity named by the payload.
// The payload is either {"id": "..."} or a bare JSON string.
func RemoveByID[T any](c *Collection[T]) realtime.Handler {
	return realtime.HandlerFunc(func(env realtime.Envelope) {
		id, err := removalID(env)
		if err != nil {
			logging.Warn().Err(err).Str("type", env.Type).Msg("Ignoring removal with unreadable payload")
			return
		}
		if !c.Remove(id) {
			logging.Debug().Str("type", env.Type).Str("id", id).Msg("Removal for unknown entity")
		}
	})
}

// ReplaceFrom returns a handler that decodes the payload as a list of T and
// replaces the whole collection with it.
func ReplaceFrom[T any](c *Collection[T]) realtime.Handler {
	return realtime.HandlerFunc(func(env realtime.Envelope) {
		items, err := realtime.DecodeData[[]T](env)
		if err != nil {
			logging.Warn().Err(err).Str("type", env.Type).Msg("Ignoring list with unreadable payload")
			return
		}
		c.ReplaceAll(items)
	})
}

func removalID(env realtime.Envelope) (string, error) {
	var ref struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &ref); err == nil && ref.ID != "" {
		return ref.ID, nil
	}

	id, err := realtime.DecodeData[string](env)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", realtime.ErrNoData
	}
	return id, nil
}
