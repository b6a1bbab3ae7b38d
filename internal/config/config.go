// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the complete betsync configuration.
type Config struct {
	Realtime    RealtimeConfig    `koanf:"realtime"`
	Credentials CredentialsConfig `koanf:"credentials"`
	Cache       CacheConfig       `koanf:"cache"`
	Resync      ResyncConfig      `koanf:"resync"`
	Server      ServerConfig      `koanf:"server"`
	Supervisor  SupervisorConfig  `koanf:"supervisor"`
	Logging     LoggingConfig     `koanf:"logging"`
}

// RealtimeConfig configures the push-channel connection.
type RealtimeConfig struct {
	// PageURL is the dashboard origin. Its scheme selects ws or wss and its
	// host is the realtime endpoint host.
	PageURL string `koanf:"page_url" validate:"required,http_url"`

	// Path is the realtime endpoint path. Default: /ws
	Path string `koanf:"path" validate:"required,wspath"`

	// ReconnectDelay is the wait between a lost connection and the next
	// attempt. Default: 3s
	ReconnectDelay time.Duration `koanf:"reconnect_delay" validate:"gt=0"`

	// ReconnectMultiplier grows the delay after each failed attempt.
	// 1.0 keeps it fixed. Default: 1.0
	ReconnectMultiplier float64 `koanf:"reconnect_multiplier" validate:"gte=1,lte=10"`

	// ReconnectMaxDelay caps the grown delay. Default: 30s
	ReconnectMaxDelay time.Duration `koanf:"reconnect_max_delay" validate:"gt=0"`

	HandshakeTimeout time.Duration `koanf:"handshake_timeout" validate:"gt=0"`
	WriteTimeout     time.Duration `koanf:"write_timeout" validate:"gt=0"`

	// ReadLimit is the largest accepted frame in bytes. Default: 512 KiB
	ReadLimit int64 `koanf:"read_limit" validate:"gt=0"`
}

// CredentialsConfig lists where the session token is looked up. Sources are
// consulted in field order on every connection attempt; all may be empty.
type CredentialsConfig struct {
	Token     string `koanf:"token"`
	TokenFile string `koanf:"token_file"`

	// TokenEnv names an environment variable read at each attempt.
	TokenEnv string `koanf:"token_env"`
}

// CacheConfig configures the client-side collections.
type CacheConfig struct {
	// SnapshotEnabled persists teams and bets between runs.
	SnapshotEnabled bool `koanf:"snapshot_enabled"`

	// SnapshotPath is the badger directory. Empty keeps snapshots in memory.
	SnapshotPath string `koanf:"snapshot_path"`

	// FeedSize bounds the notification feed. Default: 200
	FeedSize int `koanf:"feed_size" validate:"gte=1,lte=10000"`
}

// ResyncConfig throttles full-state requests after reconnects.
type ResyncConfig struct {
	// MinInterval is the minimum time between two resyncs. Default: 2s
	MinInterval time.Duration `koanf:"min_interval" validate:"gt=0"`

	// Burst is how many resyncs may run back to back. Default: 1
	Burst int `koanf:"burst" validate:"gte=1,lte=100"`

	// RestURL is the betting REST API root, e.g. https://bets.example.com/api.
	// When set every resync also refetches the collections over HTTP.
	RestURL string `koanf:"rest_url" validate:"omitempty,http_url"`

	// RefetchTimeout bounds one REST refetch. Default: 30s
	RefetchTimeout time.Duration `koanf:"refetch_timeout" validate:"gt=0"`

	// BreakerFailures consecutive refetch failures open the circuit. Default: 3
	BreakerFailures uint32 `koanf:"breaker_failures" validate:"gte=1"`

	// BreakerTimeout is how long an open circuit skips refetches. Default: 1m
	BreakerTimeout time.Duration `koanf:"breaker_timeout" validate:"gt=0"`
}

// ServerConfig configures the local status endpoint.
type ServerConfig struct {
	Enabled         bool          `koanf:"enabled"`
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"gte=0,lte=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`

	// CORSOrigins lists browser origins allowed to read the status API.
	// Empty disables CORS headers.
	CORSOrigins []string `koanf:"cors_origins" validate:"dive,required"`

	// RateLimitRequests per RateLimitWindow per client IP. 0 disables.
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"gte=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gte=0"`

	// StreamEnabled serves live dashboard changes at /api/v1/stream.
	StreamEnabled bool `koanf:"stream_enabled"`
}

// Addr returns host:port for net/http.
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// SupervisorConfig holds suture failure handling parameters.
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold" validate:"gt=0"`
	FailureDecay     float64       `koanf:"failure_decay" validate:"gt=0"`
	FailureBackoff   time.Duration `koanf:"failure_backoff" validate:"gt=0"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	// Level is the minimum log level. Default: info
	Level string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`

	// Format is json or console. Default: json
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller adds file:line to each entry. Default: false
	Caller bool `koanf:"caller"`
}
