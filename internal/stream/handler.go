// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package stream

import (
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"
)

// Handler upgrades requests to stream connections on a Hub.
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	greeting func() []Message
}

// NewHandler creates a Handler. allowedOrigins lists browser origins that may
// connect; "*" allows any. With none, only same-origin requests and non-browser
// clients are accepted. greeting, when set, supplies the messages every new
// client receives before live updates.
func NewHandler(hub *Hub, allowedOrigins []string, greeting func() []Message) *Handler {
	h := &Handler{
		hub:      hub,
		greeting: greeting,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
	if len(allowedOrigins) > 0 {
		h.upgrader.CheckOrigin = originChecker(allowedOrigins)
	}
	return h
}

func originChecker(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		return slices.Contains(allowed, "*") || slices.Contains(allowed, origin)
	}
}

// ServeHTTP upgrades the connection and joins the client to the hub. A
// stopped hub answers 503.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.hub.isStopped() {
		http.Error(w, "stream unavailable", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		h.hub.log.Debug().Err(err).Msg("Stream upgrade failed")
		return
	}

	c := newClient(h.hub, conn)
	if err := h.hub.join(c, h.greeting); err != nil {
		// The hub stopped between the check and the upgrade.
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, err.Error()),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}
	c.start()
}
