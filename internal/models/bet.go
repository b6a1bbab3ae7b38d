// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package models

// Bet status values.
const (
	BetStatusPending = "pending"
	BetStatusPlaced  = "placed"
	BetStatusMatched = "matched"
	BetStatusWon     = "won"
	BetStatusLost    = "lost"
	BetStatusVoid    = "void"
	BetStatusError   = "error"
)

// Bet is a single bet. ID is the identity used for reconciliation.
type Bet struct {
	ID              string   `json:"id"`
	TeamID          string   `json:"team_id"`
	TeamName        string   `json:"team_name"`
	EventName       string   `json:"event_name"`
	EventID         *string  `json:"event_id"`
	MarketID        *string  `json:"market_id"`
	SelectionID     *string  `json:"selection_id"`
	BetID           *string  `json:"bet_id"`
	Pronostic       int      `json:"pronostic"` // 1 = home win, 2 = away win
	Odds            float64  `json:"odds"`
	Stake           float64  `json:"stake"`
	PotentialProfit float64  `json:"potential_profit"`
	Result          *float64 `json:"result"`
	Status          string   `json:"status"`
	PlacedAt        *string  `json:"placed_at"`
	SettledAt       *string  `json:"settled_at"`
	CreatedAt       string   `json:"created_at"`
}

// IsSettled reports whether the bet has a final outcome.
func (b *Bet) IsSettled() bool {
	switch b.Status {
	case BetStatusWon, BetStatusLost, BetStatusVoid:
		return true
	default:
		return false
	}
}

// BetKey returns the reconciliation identity of a bet.
//
//nolint:gocritic // used as func(Bet) string key extractor
func BetKey(b Bet) string { return b.ID }
