// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package models

// Bot status values.
const (
	BotStatusStopped = "stopped"
	BotStatusRunning = "running"
	BotStatusError   = "error"
)

// BotState is the scheduler status of the betting bot.
type BotState struct {
	Status          string  `json:"status"`
	LastRun         *string `json:"last_run"`
	NextRun         *string `json:"next_run"`
	LastError       *string `json:"last_error"`
	BetsPlacedToday int     `json:"bets_placed_today"`
	TotalStakeToday float64 `json:"total_stake_today"`
}

// DefaultBotState is shown before the backend has reported anything.
func DefaultBotState() BotState {
	return BotState{Status: BotStatusStopped}
}

// DashboardStats holds the aggregate counters shown on the dashboard.
type DashboardStats struct {
	TotalTeams  int     `json:"total_teams"`
	ActiveTeams int     `json:"active_teams"`
	TotalBets   int     `json:"total_bets"`
	WonBets     int     `json:"won_bets"`
	LostBets    int     `json:"lost_bets"`
	PendingBets int     `json:"pending_bets"`
	TotalProfit float64 `json:"total_profit"`
	WinRate     float64 `json:"win_rate"`
	TotalStaked float64 `json:"total_staked"`
}

// InitialState is sent by the backend right after a connection opens.
type InitialState struct {
	BotState BotState       `json:"bot_state"`
	Stats    DashboardStats `json:"stats"`
}

// Notification is a user-facing message built from the envelope of a
// notification, log or error frame.
type Notification struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Level     string `json:"level"`
	Timestamp string `json:"timestamp"`
}
