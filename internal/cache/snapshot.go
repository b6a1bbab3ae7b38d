// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package cache

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/betsync/internal/logging"
)

const snapshotKeyPrefix = "snapshot:"

// ErrNoSnapshot is returned by Load when nothing was saved under the name.
var ErrNoSnapshot = errors.New("no snapshot")

// SnapshotStore persists the last known content of named collections so a
// restarted client can show stale data until the first resync completes.
type SnapshotStore struct {
	db       *badger.DB
	inMemory bool
}

// gcDiscardRatio is the fraction of a value log file that must be garbage
// before badger rewrites it.
const gcDiscardRatio = 0.5

// OpenSnapshotStore opens (or creates) a BadgerDB store at path. An empty
// path keeps everything in memory, which tests use.
func OpenSnapshotStore(path string) (*SnapshotStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(badgerLogger{log: logging.Component("snapshot")})
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}
	return &SnapshotStore{db: db, inMemory: path == ""}, nil
}

// Save stores items under name, replacing any earlier snapshot.
func (s *SnapshotStore) Save(name string, items any) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", name, err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(snapshotKeyPrefix+name), data); err != nil {
			return fmt.Errorf("set snapshot %s: %w", name, err)
		}
		return nil
	})
}

// Load decodes the snapshot stored under name into out.
func (s *SnapshotStore) Load(name string, out any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(snapshotKeyPrefix + name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%s: %w", name, ErrNoSnapshot)
		}
		if err != nil {
			return fmt.Errorf("get snapshot %s: %w", name, err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, out)
		})
	})
}

// RunGC reclaims value log space until badger reports nothing left to
// rewrite. It is a no-op for in-memory stores.
func (s *SnapshotStore) RunGC() error {
	if s.inMemory {
		return nil
	}
	for {
		err := s.db.RunValueLogGC(gcDiscardRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("snapshot gc: %w", err)
		}
	}
}

// Close flushes and closes the store.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

// badgerLogger routes badger's printf-style logging into zerolog. Info and
// debug output is demoted to debug because badger is chatty on open.
type badgerLogger struct {
	log zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.log.Warn().Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Infof(format string, args ...any) {
	l.log.Debug().Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(strings.TrimSpace(format), args...)
}
