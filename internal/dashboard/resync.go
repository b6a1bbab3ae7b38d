// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package dashboard

import (
	"context"
	"errors"

	"github.com/tomtom215/betsync/internal/cache"
	"github.com/tomtom215/betsync/internal/metrics"
	"github.com/tomtom215/betsync/internal/models"
	"github.com/tomtom215/betsync/internal/realtime"
)

// resyncRequests are sent, in order, on every resync.
var resyncRequests = []string{
	realtime.TypeGetState,
	realtime.TypeGetStats,
	realtime.TypeGetTeams,
	realtime.TypeGetBets,
}

// Resync asks the backend for a full copy of the dashboard state. It runs
// automatically whenever the connection opens. Calls beyond the configured
// rate are dropped, so a flapping connection cannot flood the backend. It
// reports whether the resync was started.
func (d *Dashboard) Resync() bool {
	if !d.limiter.Allow() {
		metrics.RecordResync(metrics.ResultThrottled)
		d.log.Debug().Msg("Resync throttled")
		return false
	}
	metrics.RecordResync(metrics.ResultSent)

	d.mu.Lock()
	client := d.client
	d.mu.Unlock()

	if client != nil {
		for _, typ := range resyncRequests {
			env, err := realtime.NewEnvelope(typ, nil)
			if err != nil {
				d.log.Error().Err(err).Str("type", typ).Msg("Failed to build resync request")
				continue
			}
			if !client.Send(env) {
				d.log.Debug().Str("type", typ).Msg("Resync request not sent, connection closed")
			}
		}
	}

	if d.refetcher != nil {
		go d.refetch()
	}
	return true
}

func (d *Dashboard) refetch() {
	ctx, cancel := context.WithTimeout(context.Background(), d.refetchTimeout)
	defer cancel()

	if err := d.refetcher.Refetch(ctx, d); err != nil {
		d.log.Warn().Err(err).Msg("REST refetch failed")
	}
}

// Restore loads teams and bets from the snapshot store. Missing snapshots are
// not an error; the collections stay empty until the first resync.
func (d *Dashboard) Restore() error {
	if d.snapshots == nil {
		return nil
	}

	var teams []models.Team
	switch err := d.snapshots.Load(SnapshotTeams, &teams); {
	case err == nil:
		d.Teams.ReplaceAll(teams)
	case !errors.Is(err, cache.ErrNoSnapshot):
		return err
	}

	var bets []models.Bet
	switch err := d.snapshots.Load(SnapshotBets, &bets); {
	case err == nil:
		d.Bets.ReplaceAll(bets)
	case !errors.Is(err, cache.ErrNoSnapshot):
		return err
	}

	d.log.Info().Int("teams", d.Teams.Len()).Int("bets", d.Bets.Len()).Msg("Restored snapshot")
	return nil
}
