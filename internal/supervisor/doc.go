// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

/*
Package supervisor provides process supervision for betsync using suture v4.

Long-running services are grouped into three layers so a failure in one does
not take the others down:

	RootSupervisor ("betsync")
	├── DataSupervisor ("data-layer")
	│   └── SnapshotGCService (if cache.snapshot_enabled)
	├── RealtimeSupervisor ("realtime-layer")
	│   └── RealtimeService (realtime.Manager)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService (if server.enabled)

Supervisor events (service start, failure, backoff) are logged through
sutureslog, which takes an *slog.Logger. main passes logging.NewSlogLogger()
so the events end up in the zerolog output.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    FailureThreshold: cfg.Supervisor.FailureThreshold,
	    FailureDecay:     cfg.Supervisor.FailureDecay,
	    FailureBackoff:   cfg.Supervisor.FailureBackoff,
	    ShutdownTimeout:  cfg.Supervisor.ShutdownTimeout,
	})
	tree.AddRealtimeService(services.NewRealtimeService(manager))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	err = tree.Serve(ctx) // blocks until ctx is canceled
*/
package supervisor
