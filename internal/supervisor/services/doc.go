// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

/*
Package services provides suture.Service wrappers for betsync components.

Each wrapper translates a component lifecycle (ListenAndServe, a periodic
job, a context-aware run loop) into suture's pattern:

	type Service interface {
	    Serve(ctx context.Context) error
	}

# Available Services

RealtimeService wraps realtime.Manager. Serve connects and keeps the
connection alive until the context is canceled, then disconnects.

HTTPServerService wraps the status *http.Server with graceful shutdown.

SnapshotGCService runs badger value log GC on the snapshot store at a fixed
interval.

The wrappers depend on small interfaces rather than the concrete types so
they can be tested with fakes and do not import the packages they wrap.
*/
package services
