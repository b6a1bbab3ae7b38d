// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package realtime

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Envelope types pushed by the backend.
const (
	TypePing         = "ping"
	TypeInitialState = "initial_state"
	TypeBotState     = "bot_state"
	TypeStats        = "stats"
	TypeTeams        = "teams"
	TypeTeamUpdate   = "team_update"
	TypeTeamRemoved  = "team_removed"
	TypeBets         = "bets"
	TypeBetUpdate    = "bet_update"
	TypeBetRemoved   = "bet_removed"
	TypeNotification = "notification"
	TypeLog          = "log"
	TypeError        = "error"
)

// Envelope types sent by the client.
const (
	TypePong     = "pong"
	TypeGetState = "get_state"
	TypeGetStats = "get_stats"
	TypeGetTeams = "get_teams"
	TypeGetBets  = "get_bets"
)

var (
	// ErrMissingType is returned for a frame without a non-empty type.
	ErrMissingType = errors.New("envelope has no type")
	// ErrNoData is returned by DecodeData when the envelope carries no payload.
	ErrNoData = errors.New("envelope has no data")
)

// Level is the severity attached to notification frames.
type Level string

// Known levels.
const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Valid reports whether l is one of the known levels. Unknown levels still
// decode; callers decide how to render them.
func (l Level) Valid() bool {
	switch l {
	case LevelInfo, LevelSuccess, LevelWarning, LevelError:
		return true
	default:
		return false
	}
}

// Envelope is the JSON frame exchanged over the realtime connection.
type Envelope struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp string          `json:"timestamp"`
	Message   string          `json:"message,omitempty"`
	Level     Level           `json:"level,omitempty"`
}

// NewEnvelope builds an outbound envelope stamped with the current UTC time.
// data may be nil.
func NewEnvelope(typ string, data any) (Envelope, error) {
	env := Envelope{
		Type:      typ,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return Envelope{}, fmt.Errorf("marshal %s data: %w", typ, err)
		}
		env.Data = raw
	}
	return env, nil
}

// decodeEnvelope parses one frame. Unknown fields are ignored.
func decodeEnvelope(frame []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Type == "" {
		return Envelope{}, ErrMissingType
	}
	return env, nil
}

// DecodeData decodes the payload of env into a T.
//
//	team, err := realtime.DecodeData[models.Team](env)
func DecodeData[T any](env Envelope) (T, error) {
	var v T
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return v, fmt.Errorf("%s: %w", env.Type, ErrNoData)
	}
	if err := json.Unmarshal(env.Data, &v); err != nil {
		return v, fmt.Errorf("decode %s data: %w", env.Type, err)
	}
	return v, nil
}
