// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

// Package config loads the betsync configuration.
//
// Configuration is layered with koanf, later layers overriding earlier ones:
//
//  1. Built-in defaults (defaultConfig)
//  2. An optional YAML file: $CONFIG_PATH, ./config.yaml, ./config.yml,
//     /etc/betsync/config.yaml or /etc/betsync/config.yml
//  3. Environment variables listed in envMappings
//
// Unknown environment variables are ignored. The merged result is checked
// with go-playground/validator tags and a few cross-field rules.
//
// # Example config.yaml
//
//	realtime:
//	  page_url: https://dash.example.com
//	  reconnect_delay: 3s
//	credentials:
//	  token_file: /run/secrets/betsync_token
//	cache:
//	  snapshot_enabled: true
//	  snapshot_path: /var/lib/betsync
//	server:
//	  port: 8089
//	logging:
//	  level: debug
//	  format: console
//
// # Environment Variables
//
//	BETSYNC_PAGE_URL         realtime.page_url
//	BETSYNC_WS_PATH          realtime.path
//	BETSYNC_RECONNECT_DELAY  realtime.reconnect_delay
//	BETSYNC_TOKEN            credentials.token
//	BETSYNC_TOKEN_FILE       credentials.token_file
//	HTTP_PORT                server.port
//	LOG_LEVEL                logging.level
//
// The full list is in envMappings.
package config
