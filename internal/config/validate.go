// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tomtom215/betsync/internal/validation"
)

// Validate checks field constraints and the rules that span fields.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}
	if err := c.validateRealtime(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	return c.validateCache()
}

func (c *Config) validateRealtime() error {
	rt := &c.Realtime
	if rt.ReconnectMaxDelay < rt.ReconnectDelay {
		return fmt.Errorf("realtime.reconnect_max_delay (%s) must not be below realtime.reconnect_delay (%s)",
			rt.ReconnectMaxDelay, rt.ReconnectDelay)
	}

	u, err := url.Parse(rt.PageURL)
	if err != nil {
		return fmt.Errorf("realtime.page_url: %w", err)
	}
	if u.RawQuery != "" {
		return fmt.Errorf("realtime.page_url must not carry a query string; set credentials.token instead")
	}
	return nil
}

func (c *Config) validateServer() error {
	if !c.Server.Enabled {
		return nil
	}
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required when the status server is enabled")
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required when the status server is enabled")
	}
	if c.Server.RateLimitRequests > 0 && c.Server.RateLimitWindow <= 0 {
		return fmt.Errorf("server.rate_limit_window must be positive when server.rate_limit_requests is set")
	}
	return nil
}

func (c *Config) validateCache() error {
	if !c.Cache.SnapshotEnabled && c.Cache.SnapshotPath != "" {
		return fmt.Errorf("cache.snapshot_path is set but cache.snapshot_enabled is false")
	}
	return nil
}
