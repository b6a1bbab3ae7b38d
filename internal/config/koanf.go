// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config file locations in order of priority.
// The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/betsync/config.yaml",
	"/etc/betsync/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Realtime: RealtimeConfig{
			Path:                "/ws",
			ReconnectDelay:      3 * time.Second,
			ReconnectMultiplier: 1.0,
			ReconnectMaxDelay:   30 * time.Second,
			HandshakeTimeout:    10 * time.Second,
			WriteTimeout:        5 * time.Second,
			ReadLimit:           512 * 1024,
		},
		Cache: CacheConfig{
			SnapshotEnabled: false,
			FeedSize:        200,
		},
		Resync: ResyncConfig{
			MinInterval:     2 * time.Second,
			Burst:           1,
			RefetchTimeout:  30 * time.Second,
			BreakerFailures: 3,
			BreakerTimeout:  time.Minute,
		},
		Server: ServerConfig{
			Enabled:           true,
			Host:              "127.0.0.1",
			Port:              8089,
			ReadTimeout:       10 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			CORSOrigins:       []string{},
			RateLimitRequests: 300,
			RateLimitWindow:   time.Minute,
			StreamEnabled:     true,
		},
		Supervisor: SupervisorConfig{
			FailureThreshold: 5.0,
			FailureDecay:     30.0,
			FailureBackoff:   15 * time.Second,
			ShutdownTimeout:  10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads the configuration from defaults, the first config file found
// and the environment.
func Load() (*Config, error) {
	return LoadFile(findConfigFile())
}

// LoadFile is Load with an explicit config file. An empty path skips the
// file layer.
func LoadFile(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// BETSYNC_PAGE_URL -> realtime.page_url. Empty variables keep the lower layers.
	if err := k.Load(env.ProviderWithValue("", ".", envValueTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed as comma-separated lists when they come from
// the environment. An empty variable yields an empty list.
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields splits comma-separated string values of the paths in
// sliceConfigPaths. Lists from YAML are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to config paths.
var envMappings = map[string]string{
	"betsync_page_url":             "realtime.page_url",
	"betsync_ws_path":              "realtime.path",
	"betsync_reconnect_delay":      "realtime.reconnect_delay",
	"betsync_reconnect_multiplier": "realtime.reconnect_multiplier",
	"betsync_reconnect_max_delay":  "realtime.reconnect_max_delay",
	"betsync_handshake_timeout":    "realtime.handshake_timeout",
	"betsync_write_timeout":        "realtime.write_timeout",
	"betsync_read_limit":           "realtime.read_limit",

	"betsync_token":      "credentials.token",
	"betsync_token_file": "credentials.token_file",
	"betsync_token_env":  "credentials.token_env",

	"betsync_snapshot_enabled": "cache.snapshot_enabled",
	"betsync_snapshot_path":    "cache.snapshot_path",
	"betsync_feed_size":        "cache.feed_size",

	"betsync_resync_interval":  "resync.min_interval",
	"betsync_resync_burst":     "resync.burst",
	"betsync_rest_url":         "resync.rest_url",
	"betsync_refetch_timeout":  "resync.refetch_timeout",
	"betsync_breaker_failures": "resync.breaker_failures",
	"betsync_breaker_timeout":  "resync.breaker_timeout",

	"http_enabled":           "server.enabled",
	"http_host":              "server.host",
	"http_port":              "server.port",
	"http_read_timeout":      "server.read_timeout",
	"http_shutdown_timeout":  "server.shutdown_timeout",
	"http_cors_origins":      "server.cors_origins",
	"http_rate_limit_reqs":   "server.rate_limit_requests",
	"http_rate_limit_window": "server.rate_limit_window",
	"http_stream_enabled":    "server.stream_enabled",

	"supervisor_failure_threshold": "supervisor.failure_threshold",
	"supervisor_failure_decay":     "supervisor.failure_decay",
	"supervisor_failure_backoff":   "supervisor.failure_backoff",
	"supervisor_shutdown_timeout":  "supervisor.shutdown_timeout",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to its config path.
// Unmapped names return "" so koanf skips them.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// envValueTransformFunc maps key like envTransformFunc and drops variables
// that are set but empty.
func envValueTransformFunc(key, value string) (string, any) {
	if value == "" {
		return "", nil
	}
	return envTransformFunc(key), value
}
