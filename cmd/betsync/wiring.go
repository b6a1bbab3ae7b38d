// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/betsync/internal/api"
	"github.com/tomtom215/betsync/internal/cache"
	"github.com/tomtom215/betsync/internal/config"
	"github.com/tomtom215/betsync/internal/credentials"
	"github.com/tomtom215/betsync/internal/dashboard"
	"github.com/tomtom215/betsync/internal/logging"
	"github.com/tomtom215/betsync/internal/realtime"
	"github.com/tomtom215/betsync/internal/refetch"
	"github.com/tomtom215/betsync/internal/stream"
	"github.com/tomtom215/betsync/internal/supervisor"
)

func realtimeConfig(c *config.RealtimeConfig) realtime.Config {
	return realtime.Config{
		Path:                c.Path,
		ReconnectDelay:      c.ReconnectDelay,
		ReconnectMultiplier: c.ReconnectMultiplier,
		ReconnectMaxDelay:   c.ReconnectMaxDelay,
		HandshakeTimeout:    c.HandshakeTimeout,
		WriteTimeout:        c.WriteTimeout,
		ReadLimit:           c.ReadLimit,
	}
}

// buildCredentials returns the configured sources in lookup order. With
// none configured the client connects without a token.
func buildCredentials(c *config.CredentialsConfig) credentials.Source {
	var chain credentials.Chain
	if c.Token != "" {
		chain = append(chain, credentials.Static(c.Token))
	}
	if c.TokenFile != "" {
		chain = append(chain, credentials.File(c.TokenFile))
	}
	if c.TokenEnv != "" {
		chain = append(chain, credentials.Env(c.TokenEnv))
	}
	if len(chain) == 0 {
		return credentials.None
	}
	return chain
}

// logCredential reports what the current token looks like without
// printing it.
func logCredential(src credentials.Source, now time.Time) {
	token, ok := src.Token()
	if !ok {
		logging.Warn().Msg("No session token configured; connecting anonymously")
		return
	}

	info, err := credentials.Inspect(token)
	switch {
	case errors.Is(err, credentials.ErrNotJWT):
		logging.Info().Str("token", logging.SanitizeToken(token)).Msg("Using opaque session token")
	case err != nil:
		logging.Warn().Err(err).Msg("Failed to inspect session token")
	case info.Expired(now):
		logging.Warn().Str("subject", info.Subject).Time("expired_at", info.ExpiresAt).
			Msg("Session token has expired; the backend will likely reject it")
	default:
		logging.Info().Str("subject", info.Subject).Time("expires_at", info.ExpiresAt).Msg("Using session token")
	}
}

// openSnapshots opens the snapshot store when enabled, else returns nil.
func openSnapshots(c *config.CacheConfig) (*cache.SnapshotStore, error) {
	if !c.SnapshotEnabled {
		return nil, nil
	}
	return cache.OpenSnapshotStore(c.SnapshotPath)
}

func dashboardOptions(cfg *config.Config, store *cache.SnapshotStore, creds credentials.Source) dashboard.Options {
	return dashboard.Options{
		FeedSize:       cfg.Cache.FeedSize,
		ResyncInterval: cfg.Resync.MinInterval,
		ResyncBurst:    cfg.Resync.Burst,
		RefetchTimeout: cfg.Resync.RefetchTimeout,
		Refetcher:      buildRefetcher(&cfg.Resync, creds),
		Snapshots:      store,
	}
}

// buildRefetcher returns a breaker-guarded REST refetcher, or nil when no
// REST URL is configured.
func buildRefetcher(c *config.ResyncConfig, creds credentials.Source) dashboard.Refetcher {
	if c.RestURL == "" {
		return nil
	}
	logging.Info().Str("rest_url", c.RestURL).Msg("REST refetch enabled")
	return refetch.NewBreaker(refetch.New(c.RestURL, creds, c.RefetchTimeout), refetch.BreakerSettings{
		Failures: c.BreakerFailures,
		Timeout:  c.BreakerTimeout,
	})
}

func treeConfig(c *config.SupervisorConfig) supervisor.TreeConfig {
	return supervisor.TreeConfig{
		FailureThreshold: c.FailureThreshold,
		FailureDecay:     c.FailureDecay,
		FailureBackoff:   c.FailureBackoff,
		ShutdownTimeout:  c.ShutdownTimeout,
	}
}

// statusServer builds the status API. A non-nil hub is served at
// /api/v1/stream.
func statusServer(c *config.ServerConfig, conn api.ConnectionInfo, dash *dashboard.Dashboard, hub *stream.Hub) *http.Server {
	router := api.NewRouter(conn, dash, &api.ChiMiddlewareConfig{
		CORSAllowedOrigins: c.CORSOrigins,
		CORSMaxAge:         86400,
		RateLimitRequests:  c.RateLimitRequests,
		RateLimitWindow:    c.RateLimitWindow,
	})
	if hub != nil {
		router.WithStream(stream.NewHandler(hub, c.CORSOrigins, func() []stream.Message {
			return stream.Snapshot(dash)
		}))
	}
	return &http.Server{
		Addr:              c.Addr(),
		Handler:           router.Handler(),
		ReadTimeout:       c.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
