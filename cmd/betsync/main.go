// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/betsync/internal/config"
	"github.com/tomtom215/betsync/internal/dashboard"
	"github.com/tomtom215/betsync/internal/logging"
	"github.com/tomtom215/betsync/internal/realtime"
	"github.com/tomtom215/betsync/internal/stream"
	"github.com/tomtom215/betsync/internal/supervisor"
	"github.com/tomtom215/betsync/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("betsync stopped with an error")
	}
}

func run(cfg *config.Config) error {
	loc, err := realtime.ParseLocation(cfg.Realtime.PageURL)
	if err != nil {
		return err
	}
	logging.Info().
		Str("host", loc.Host).
		Bool("secure", loc.Secure()).
		Str("path", cfg.Realtime.Path).
		Dur("reconnect_delay", cfg.Realtime.ReconnectDelay).
		Msg("Starting betsync")

	creds := buildCredentials(&cfg.Credentials)
	logCredential(creds, time.Now())

	store, err := openSnapshots(&cfg.Cache)
	if err != nil {
		return err
	}
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing snapshot store")
			}
		}()
	}

	dash := dashboard.New(dashboardOptions(cfg, store, creds))
	if err := dash.Restore(); err != nil {
		logging.Warn().Err(err).Msg("Failed to restore snapshot; starting empty")
	}

	manager := realtime.NewManager(realtimeConfig(&cfg.Realtime), loc, creds)
	manager.OnStateChange(func(s realtime.State) {
		logging.Info().Str("state", s.String()).Msg("Realtime connection state changed")
	})
	dash.Attach(manager)
	defer dash.Detach()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), treeConfig(&cfg.Supervisor))
	if err != nil {
		return err
	}
	tree.AddRealtimeService(services.NewRealtimeService(manager))
	if store != nil && cfg.Cache.SnapshotPath != "" {
		tree.AddDataService(services.NewSnapshotGCService(store, services.DefaultSnapshotGCInterval))
	}
	if cfg.Server.Enabled {
		var hub *stream.Hub
		if cfg.Server.StreamEnabled {
			hub = stream.NewHub()
			stream.Relay(dash, hub)
			tree.AddAPIService(hub)
		}
		server := statusServer(&cfg.Server, manager, dash, hub)
		tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
		logging.Info().Str("addr", server.Addr).Msg("Status server enabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = tree.Serve(ctx)

	if unstopped, reportErr := tree.UnstoppedServiceReport(); reportErr == nil && len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Unstopped service")
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logging.Info().Msg("betsync stopped")
	return nil
}
