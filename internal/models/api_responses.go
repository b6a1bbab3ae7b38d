// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package models

import (
	"time"
)

// APIResponse is the standard wrapper returned by the status endpoints.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": [{"id": "t1", "name": "Ajax", ...}],
//	  "metadata": {"timestamp": "2026-01-02T12:00:00Z", "count": 1}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {"code": "NOT_FOUND", "message": "team not found"},
//	  "metadata": {"timestamp": "2026-01-02T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string    `json:"status"`
	Data     any       `json:"data"`
	Metadata Metadata  `json:"metadata"`
	Error    *APIError `json:"error,omitempty"`
}

// Metadata contains response metadata.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	Count     *int      `json:"count,omitempty"`
}

// APIError contains error details for failed requests.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ConnectionStatus is the payload of GET /api/v1/status.
type ConnectionStatus struct {
	State           string         `json:"state"`
	Connected       bool           `json:"connected"`
	LastMessageType string         `json:"last_message_type,omitempty"`
	LastMessageAt   string         `json:"last_message_at,omitempty"`
	Teams           int            `json:"teams"`
	Bets            int            `json:"bets"`
	BotState        BotState       `json:"bot_state"`
	Stats           DashboardStats `json:"stats"`
}
