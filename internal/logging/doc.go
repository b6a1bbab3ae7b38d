// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

// Package logging provides centralized zerolog-based structured logging for betsync.
//
// Every package logs through the helpers here instead of building its own
// logger, so level and format are controlled in one place.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("state", "connected").Msg("Realtime connection open")
//	logging.Warn().Err(err).Msg("Failed to decode frame")
//
// # Component Loggers
//
//	log := logging.Component("realtime")
//	log.Debug().Str("type", env.Type).Msg("Dispatching envelope")
//
// # Configuration
//
// Environment Variables:
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - true, false (default: false)
//
// # Credentials
//
// Bearer tokens travel in the realtime URL query string. Never log the raw URL;
// pass it through RedactURL first.
//
// # slog Adapter
//
// sutureslog needs an *slog.Logger. NewSlogLogger returns one that writes to
// the zerolog backend.
package logging
