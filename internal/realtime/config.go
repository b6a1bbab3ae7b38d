// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package realtime

import (
	"time"
)

// Config holds the connection parameters of a Manager.
type Config struct {
	// Path of the realtime endpoint on the dashboard host.
	Path string

	// ReconnectDelay is the wait before the first retry after a failure.
	ReconnectDelay time.Duration

	// ReconnectMultiplier grows the delay after each consecutive failure.
	// 1.0 keeps the delay fixed.
	ReconnectMultiplier float64

	// ReconnectMaxDelay caps the delay when ReconnectMultiplier > 1.
	ReconnectMaxDelay time.Duration

	// HandshakeTimeout bounds the opening handshake.
	HandshakeTimeout time.Duration

	// WriteTimeout bounds every outbound frame.
	WriteTimeout time.Duration

	// ReadLimit is the largest accepted frame in bytes.
	ReadLimit int64
}

// DefaultConfig returns the defaults: path /ws and a fixed 3 second retry.
func DefaultConfig() Config {
	return Config{
		Path:                DefaultPath,
		ReconnectDelay:      3 * time.Second,
		ReconnectMultiplier: 1.0,
		ReconnectMaxDelay:   30 * time.Second,
		HandshakeTimeout:    10 * time.Second,
		WriteTimeout:        5 * time.Second,
		ReadLimit:           512 * 1024,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Path == "" {
		c.Path = d.Path
	}
	if c.ReconnectDelay <= 0 {
		c.ReconnectDelay = d.ReconnectDelay
	}
	if c.ReconnectMultiplier < 1 {
		c.ReconnectMultiplier = d.ReconnectMultiplier
	}
	if c.ReconnectMaxDelay <= 0 {
		c.ReconnectMaxDelay = d.ReconnectMaxDelay
	}
	if c.ReconnectMaxDelay < c.ReconnectDelay {
		c.ReconnectMaxDelay = c.ReconnectDelay
	}
	if c.HandshakeTimeout <= 0 {
		c.HandshakeTimeout = d.HandshakeTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.ReadLimit <= 0 {
		c.ReadLimit = d.ReadLimit
	}
	return c
}

// nextDelay returns the delay that follows current after another failure.
func (c Config) nextDelay(current time.Duration) time.Duration {
	if c.ReconnectMultiplier <= 1 {
		return c.ReconnectDelay
	}
	next := time.Duration(float64(current) * c.ReconnectMultiplier)
	if next > c.ReconnectMaxDelay || next <= 0 {
		return c.ReconnectMaxDelay
	}
	return next
}
