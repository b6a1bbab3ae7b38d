// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/betsync/internal/models"
	"github.com/tomtom215/betsync/internal/realtime"
	"github.com/tomtom215/betsync/internal/validation"
)

// TeamsQuery filters GET /api/v1/teams.
type TeamsQuery struct {
	Status string `validate:"omitempty,oneof=active paused"`
	Sport  string `validate:"omitempty,max=32"`
}

// BetsQuery filters GET /api/v1/bets.
type BetsQuery struct {
	Status string `validate:"omitempty,oneof=pending placed matched won lost void error"`
	TeamID string `validate:"omitempty,max=64"`
	Limit  int    `validate:"omitempty,min=1,max=1000"`
}

// FeedQuery bounds GET /api/v1/feed.
type FeedQuery struct {
	Limit int `validate:"omitempty,min=1,max=1000"`
}

// Healthz reports that the process is up.
func (router *Router) Healthz(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, map[string]string{
		"status":   "ok",
		"realtime": router.conn.State().String(),
	}, nil)
}

// Readyz reports whether the realtime connection is open.
func (router *Router) Readyz(w http.ResponseWriter, r *http.Request) {
	state := router.conn.State()
	if state != realtime.StateConnected {
		respondError(w, r, http.StatusServiceUnavailable, "NOT_CONNECTED", "Realtime connection is "+state.String(), nil)
		return
	}
	respondSuccess(w, r, http.StatusOK, map[string]string{"realtime": state.String()}, nil)
}

// Status summarizes the connection and the cached dashboard.
func (router *Router) Status(w http.ResponseWriter, r *http.Request) {
	state := router.conn.State()
	status := models.ConnectionStatus{
		State:     state.String(),
		Connected: state == realtime.StateConnected,
		Teams:     router.dash.Teams.Len(),
		Bets:      router.dash.Bets.Len(),
		BotState:  router.dash.BotState(),
		Stats:     router.dash.Stats(),
	}
	if env, ok := router.conn.LastEnvelope(); ok {
		status.LastMessageType = env.Type
		status.LastMessageAt = env.Timestamp
	}
	respondSuccess(w, r, http.StatusOK, status, nil)
}

// Teams lists cached teams in display order.
func (router *Router) Teams(w http.ResponseWriter, r *http.Request) {
	q := TeamsQuery{
		Status: r.URL.Query().Get("status"),
		Sport:  r.URL.Query().Get("sport"),
	}
	if verr := validation.ValidateStruct(&q); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	teams := router.dash.Teams.Filter(func(t models.Team) bool {
		return (q.Status == "" || t.Status == q.Status) && (q.Sport == "" || t.Sport == q.Sport)
	})
	respondSuccess(w, r, http.StatusOK, teams, intPtr(len(teams)))
}

// Team returns one cached team.
func (router *Router) Team(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	team, ok := router.dash.Teams.Get(id)
	if !ok {
		respondError(w, r, http.StatusNotFound, "NOT_FOUND", "Team not found", nil)
		return
	}
	respondSuccess(w, r, http.StatusOK, team, nil)
}

// Bets lists cached bets in display order.
func (router *Router) Bets(w http.ResponseWriter, r *http.Request) {
	limit, err := parseIntParam(r, "limit")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, validation.ErrorCode, err.Error(), nil)
		return
	}
	q := BetsQuery{
		Status: r.URL.Query().Get("status"),
		TeamID: r.URL.Query().Get("team_id"),
		Limit:  limit,
	}
	if verr := validation.ValidateStruct(&q); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	bets := router.dash.Bets.Filter(func(b models.Bet) bool {
		return (q.Status == "" || b.Status == q.Status) && (q.TeamID == "" || b.TeamID == q.TeamID)
	})
	if q.Limit > 0 && len(bets) > q.Limit {
		bets = bets[:q.Limit]
	}
	respondSuccess(w, r, http.StatusOK, bets, intPtr(len(bets)))
}

// Bet returns one cached bet.
func (router *Router) Bet(w http.ResponseWriter, r *http.Request) {
	bet, ok := router.dash.Bets.Get(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, r, http.StatusNotFound, "NOT_FOUND", "Bet not found", nil)
		return
	}
	respondSuccess(w, r, http.StatusOK, bet, nil)
}

// Feed returns the notification feed, oldest first. With ?limit=N only the
// newest N entries are returned.
func (router *Router) Feed(w http.ResponseWriter, r *http.Request) {
	limit, err := parseIntParam(r, "limit")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, validation.ErrorCode, err.Error(), nil)
		return
	}
	q := FeedQuery{Limit: limit}
	if verr := validation.ValidateStruct(&q); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	entries := router.dash.Feed.Entries()
	if q.Limit > 0 && len(entries) > q.Limit {
		entries = entries[len(entries)-q.Limit:]
	}
	respondSuccess(w, r, http.StatusOK, entries, intPtr(len(entries)))
}

// Resync asks the backend for a full state copy. It shares the dashboard's
// throttle with reconnect-triggered resyncs.
func (router *Router) Resync(w http.ResponseWriter, r *http.Request) {
	if !router.dash.Resync() {
		respondError(w, r, http.StatusTooManyRequests, "RESYNC_THROTTLED", "A resync ran recently; try again later", nil)
		return
	}
	respondSuccess(w, r, http.StatusAccepted, map[string]string{"resync": "requested"}, nil)
}
