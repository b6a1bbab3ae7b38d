// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package refetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/betsync/internal/credentials"
	"github.com/tomtom215/betsync/internal/dashboard"
	"github.com/tomtom215/betsync/internal/models"
)

// maxErrorBodySize bounds how much of an error response is reported.
const maxErrorBodySize = 4 * 1024

// Client fetches dashboard collections from the REST API.
type Client struct {
	baseURL string
	creds   credentials.Source
	client  *http.Client
}

// New creates a Client for the API rooted at baseURL, e.g.
// "https://bets.example.com/api". creds may be nil.
func New(baseURL string, creds credentials.Source, timeout time.Duration) *Client {
	if creds == nil {
		creds = credentials.None
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		client:  &http.Client{Timeout: timeout},
	}
}

// Refetch loads teams, bets, stats and bot state, then applies them to d.
// It implements dashboard.Refetcher.
func (c *Client) Refetch(ctx context.Context, d *dashboard.Dashboard) error {
	var (
		teams []models.Team
		bets  []models.Bet
		stats models.DashboardStats
		bot   models.BotState
	)
	if err := c.get(ctx, "/teams", &teams); err != nil {
		return err
	}
	if err := c.get(ctx, "/bets", &bets); err != nil {
		return err
	}
	if err := c.get(ctx, "/stats", &stats); err != nil {
		return err
	}
	if err := c.get(ctx, "/bot/state", &bot); err != nil {
		return err
	}

	d.Teams.ReplaceAll(teams)
	d.Bets.ReplaceAll(bets)
	d.SetStats(stats)
	d.SetBotState(bot)
	return nil
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if token, ok := c.creds.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return fmt.Errorf("GET %s returned status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
