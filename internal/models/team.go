// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package models

// Sport values accepted by the backend.
const (
	SportFootball   = "football"
	SportBasketball = "basketball"
)

// Team status values.
const (
	TeamStatusActive = "active"
	TeamStatusPaused = "paused"
)

// Team is a tracked team. ID is the identity used for reconciliation.
type Team struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	BetfairID       *string `json:"betfair_id"`
	Sport           string  `json:"sport"`
	League          string  `json:"league"`
	Country         string  `json:"country"`
	CumulativeLoss  float64 `json:"cumulative_loss"`
	LastStake       float64 `json:"last_stake"`
	ProgressionStep int     `json:"progression_step"`
	InitialStake    float64 `json:"initial_stake"`
	Status          string  `json:"status"` // active, paused
	TotalMatches    int     `json:"total_matches"`
	MatchesWon      int     `json:"matches_won"`
	MatchesLost     int     `json:"matches_lost"`
	TotalProfit     float64 `json:"total_profit"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// IsActive reports whether the bot is placing bets for the team.
func (t *Team) IsActive() bool { return t.Status == TeamStatusActive }

// IsPaused reports whether betting on the team is paused.
func (t *Team) IsPaused() bool { return t.Status == TeamStatusPaused }

// TeamKey returns the reconciliation identity of a team.
//
//nolint:gocritic // used as func(Team) string key extractor
func TeamKey(t Team) string { return t.ID }

// EntityRef is the payload of team_removed and bet_removed frames.
type EntityRef struct {
	ID string `json:"id"`
}
