// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package stream

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/betsync/internal/logging"
	"github.com/tomtom215/betsync/internal/metrics"
)

// Message types sent by the hub itself.
const (
	MessageTypePing = "ping"
	MessageTypePong = "pong"
)

// Drop reasons recorded in metrics.
const (
	dropHubFull    = "hub_full"
	dropSlowClient = "slow_client"
)

const defaultBroadcastBuffer = 256

// Message is one frame sent to stream clients.
type Message struct {
	Type      string `json:"type"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp"`
}

// NewMessage stamps a message with the current UTC time.
func NewMessage(typ string, data any) Message {
	return Message{Type: typ, Data: data, Timestamp: time.Now().UTC().Format(time.RFC3339)}
}

// ShutdownReason identifies why the hub stopped.
type ShutdownReason string

const (
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// ErrHubStopped is returned when a client joins a hub that has shut down.
var ErrHubStopped = errors.New("stream hub stopped")

// outbound is a queued broadcast. build, when set, produces the message at
// delivery time so clients never receive data older than their greeting.
type outbound struct {
	msg   Message
	build func() (Message, bool)
}

// Hub maintains the set of connected clients and broadcasts messages to them.
type Hub struct {
	mu        sync.RWMutex
	clients   map[*Client]bool
	stopped   bool
	broadcast chan outbound
	log       zerolog.Logger
}

// NewHub creates a Hub. Clients may join before Serve runs; broadcasts are
// delivered once it does.
func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*Client]bool),
		broadcast: make(chan outbound, defaultBroadcastBuffer),
		log:       logging.Component("stream-hub"),
	}
}

// Serve delivers broadcasts until ctx is canceled, then closes every client.
// It implements suture.Service.
func (h *Hub) Serve(ctx context.Context) error {
	h.mu.Lock()
	h.stopped = false
	h.mu.Unlock()

	for {
		// Shutdown wins over pending broadcasts.
		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		default:
		}

		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		case out := <-h.broadcast:
			h.deliver(out)
		}
	}
}

// String returns the service name for supervisor logging.
func (h *Hub) String() string {
	return "stream-hub"
}

// Broadcast queues msg for every client. It never blocks; when the queue is
// full the message is dropped.
func (h *Hub) Broadcast(msg Message) {
	h.enqueue(outbound{msg: msg})
}

// BroadcastLatest queues a message built at delivery time. build returns
// false to skip delivery.
func (h *Hub) BroadcastLatest(typ string, build func() (Message, bool)) {
	h.enqueue(outbound{msg: Message{Type: typ}, build: build})
}

func (h *Hub) enqueue(out outbound) {
	select {
	case h.broadcast <- out:
	default:
		metrics.RecordStreamDropped(dropHubFull)
		h.log.Warn().Str("message_type", out.msg.Type).Msg("Broadcast queue full, dropping message")
	}
}

func (h *Hub) isStopped() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.stopped
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// join queues greeting for c and registers it in one step, so every broadcast
// delivered after the greeting reaches c.
func (h *Hub) join(c *Client, greeting func() []Message) error {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return ErrHubStopped
	}
	if greeting != nil {
		for _, msg := range greeting() {
			select {
			case c.send <- msg:
			default:
				h.log.Warn().Str("message_type", msg.Type).Msg("Greeting exceeds client buffer")
			}
		}
	}
	h.clients[c] = true
	n := len(h.clients)
	h.mu.Unlock()

	metrics.SetStreamClients(n)
	h.log.Info().Uint64("client_id", c.id).Int("total_clients", n).Msg("Stream client connected")
	return nil
}

// unregister removes c and closes its send channel. It is safe to call more
// than once.
func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if !h.clients[c] {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	close(c.send)
	n := len(h.clients)
	h.mu.Unlock()

	metrics.SetStreamClients(n)
	h.log.Info().Uint64("client_id", c.id).Int("total_clients", n).Msg("Stream client disconnected")
}

// sortedClients returns clients in connection order. Caller holds h.mu.
func (h *Hub) sortedClients() []*Client {
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].id < clients[j].id })
	return clients
}

// deliver resolves out and sends it to every client.
func (h *Hub) deliver(out outbound) {
	h.mu.Lock()
	msg := out.msg
	if out.build != nil {
		built, ok := out.build()
		if !ok {
			h.mu.Unlock()
			return
		}
		msg = built
	}
	h.broadcastLocked(msg)
}

// broadcastToClients sends msg to every client.
func (h *Hub) broadcastToClients(msg Message) {
	h.mu.Lock()
	h.broadcastLocked(msg)
}

// broadcastLocked sends msg to every client, dropping slow ones. It is
// called with h.mu held and releases it.
func (h *Hub) broadcastLocked(msg Message) {
	var slow []*Client
	for _, c := range h.sortedClients() {
		select {
		case c.send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	for _, c := range slow {
		delete(h.clients, c)
		close(c.send)
		metrics.RecordStreamDropped(dropSlowClient)
	}
	n := len(h.clients)
	h.mu.Unlock()

	if len(slow) > 0 {
		metrics.SetStreamClients(n)
		h.log.Warn().Int("dropped_clients", len(slow)).Msg("Disconnected slow stream clients")
	}
}

func (h *Hub) shutdown(ctx context.Context) {
	h.mu.Lock()
	h.stopped = true
	clients := h.sortedClients()
	for _, c := range clients {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	metrics.SetStreamClients(0)

	h.log.Info().
		Str("reason", string(shutdownReason(ctx))).
		Int("clients_closed", len(clients)).
		Msg("Stream hub stopped")
}

func shutdownReason(ctx context.Context) ShutdownReason {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ShutdownReasonContextDeadline
	}
	return ShutdownReasonContextCanceled
}
