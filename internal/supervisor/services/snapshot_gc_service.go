// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package services

import (
	"context"
	"time"

	"github.com/tomtom215/betsync/internal/logging"
	"github.com/tomtom215/betsync/internal/metrics"
)

// DefaultSnapshotGCInterval is used when NewSnapshotGCService gets a zero
// interval.
const DefaultSnapshotGCInterval = 10 * time.Minute

// GarbageCollector matches *cache.SnapshotStore.
type GarbageCollector interface {
	RunGC() error
}

// SnapshotGCService periodically reclaims snapshot store space.
//
// A failed run is logged and counted; it does not stop the service, because
// the next tick retries and a restart would not help.
type SnapshotGCService struct {
	store    GarbageCollector
	interval time.Duration
	name     string
}

// NewSnapshotGCService creates a SnapshotGCService.
func NewSnapshotGCService(store GarbageCollector, interval time.Duration) *SnapshotGCService {
	if interval <= 0 {
		interval = DefaultSnapshotGCInterval
	}
	return &SnapshotGCService{store: store, interval: interval, name: "snapshot-gc"}
}

// Serve implements suture.Service.
func (s *SnapshotGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			err := s.store.RunGC()
			metrics.RecordSnapshotGC(err)
			if err != nil {
				logging.Warn().Err(err).Msg("Snapshot store GC failed")
			}
		}
	}
}

// String implements fmt.Stringer for logging.
func (s *SnapshotGCService) String() string {
	return s.name
}
