// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

/*
Package cache holds the client-side copies of backend entities.

# Collection

Collection is an ordered list keyed by entity identity. Updates pushed by the
backend and results of REST calls go through the same Upsert, so both paths
converge on one copy:

	teams := cache.NewCollection(models.TeamKey)
	m.Subscribe(realtime.TypeTeamUpdate, cache.Reconcile(teams))
	m.Subscribe(realtime.TypeTeamRemoved, cache.RemoveByID(teams))
	m.Subscribe(realtime.TypeTeams, cache.ReplaceFrom(teams))

Upsert never removes entries. An entity disappears only through an explicit
removal (Remove, a *_removed frame) or a full list (ReplaceAll).

# Snapshots

SnapshotStore persists collections in BadgerDB between runs:

	store, err := cache.OpenSnapshotStore("/var/lib/betsync/snapshots")
	if err != nil {
	    return err
	}
	defer store.Close()

	_ = store.Save("teams", teams.Items())
*/
package cache
