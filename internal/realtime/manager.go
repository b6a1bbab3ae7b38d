// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package realtime

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/tomtom215/betsync/internal/credentials"
	"github.com/tomtom215/betsync/internal/logging"
	"github.com/tomtom215/betsync/internal/metrics"
)

// Manager owns the realtime connection to one dashboard host.
//
// All exported methods are safe for concurrent use. Nothing is ever returned
// to the caller as an error: failures are logged and show up as state
// transitions.
type Manager struct {
	cfg    Config
	loc    Location
	creds  credentials.Source
	dialer *websocket.Dialer
	log    zerolog.Logger

	// mu guards the lifecycle fields below. epoch and state are also read
	// without mu, so they are atomics written only while mu is held.
	mu         sync.Mutex
	epoch      atomic.Uint64
	state      atomic.Int32
	timer      *time.Timer
	delay      time.Duration
	cancelDial context.CancelFunc

	// pending holds state transitions not yet delivered to observers.
	pending   []State
	notifying bool
	observers []func(State)

	connMu  sync.RWMutex
	conn    *websocket.Conn
	writeMu sync.Mutex

	registry   *registry
	dispatcher *dispatcher

	wg sync.WaitGroup
}

// NewManager creates a Manager in StateDisconnected. No connection is opened
// until Connect is called. A nil creds opens connections without a token.
//
//nolint:gocritic // Config is a value type copied once at construction
func NewManager(cfg Config, loc Location, creds credentials.Source) *Manager {
	cfg = cfg.withDefaults()
	if creds == nil {
		creds = credentials.None
	}

	log := logging.Component("realtime")
	m := &Manager{
		cfg:   cfg,
		loc:   loc,
		creds: creds,
		dialer: &websocket.Dialer{
			Proxy:            websocket.DefaultDialer.Proxy,
			HandshakeTimeout: cfg.HandshakeTimeout,
		},
		log:      log,
		delay:    cfg.ReconnectDelay,
		registry: newRegistry(),
	}
	m.dispatcher = newDispatcher(m.registry, &heartbeat{out: m, log: log}, log)
	return m
}

// State returns the current connection state.
func (m *Manager) State() State {
	return State(m.state.Load())
}

// IsConnected reports whether the connection is open.
func (m *Manager) IsConnected() bool {
	return m.State() == StateConnected
}

// LastEnvelope returns the most recently decoded envelope, pings included.
func (m *Manager) LastEnvelope() (Envelope, bool) {
	return m.dispatcher.Last()
}

// Subscribe registers h for envelopes of type typ. Handlers for the same
// type run in registration order.
func (m *Manager) Subscribe(typ string, h Handler) *Subscription {
	if h == nil {
		return &Subscription{}
	}
	return m.registry.add(typ, h)
}

// OnStateChange registers fn to observe state transitions. Transitions are
// delivered one at a time in the order they happened, on the goroutine that
// caused them, with no manager lock held; fn may call any Manager method.
func (m *Manager) OnStateChange(fn func(State)) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	m.observers = append(m.observers, fn)
	m.mu.Unlock()
}

// Connect opens the connection in the background. It is a no-op while a
// connection is being opened or is open. Calling it while a retry is pending
// dials immediately and cancels the pending retry.
func (m *Manager) Connect() {
	m.mu.Lock()
	switch m.State() {
	case StateConnecting, StateConnected:
		m.mu.Unlock()
		return
	}
	m.connectLocked()
	m.mu.Unlock()
	m.notify()
}

// connectLocked starts a new dial generation. m.mu must be held.
func (m *Manager) connectLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	if m.cancelDial != nil {
		m.cancelDial()
	}

	epoch := m.epoch.Add(1)
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelDial = cancel

	token, _ := m.creds.Token()
	endpoint := m.loc.Endpoint(m.cfg.Path, token)

	m.setStateLocked(StateConnecting)
	m.wg.Add(1)
	go m.dial(ctx, cancel, epoch, endpoint)
}

// dial opens the socket and, if the generation is still current, starts the
// read loop.
func (m *Manager) dial(ctx context.Context, cancel context.CancelFunc, epoch uint64, endpoint string) {
	defer m.wg.Done()
	defer cancel()

	attempt := uuid.NewString()
	log := m.log.With().Str("attempt", attempt).Str("url", logging.RedactURL(endpoint)).Logger()
	log.Debug().Msg("Dialing realtime endpoint")

	conn, resp, err := m.dialer.DialContext(ctx, endpoint, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	m.mu.Lock()
	if epoch != m.epoch.Load() {
		m.mu.Unlock()
		if conn != nil {
			_ = conn.Close()
		}
		log.Debug().Msg("Discarding dial result from a cancelled attempt")
		return
	}

	metrics.RecordConnectAttempt(err)
	if err != nil {
		ev := log.Warn().Err(err)
		if resp != nil {
			ev = ev.Int("http_status", resp.StatusCode)
		}
		ev.Msg("Realtime connection failed")
		m.scheduleReconnectLocked()
		m.mu.Unlock()
		m.notify()
		return
	}

	conn.SetReadLimit(m.cfg.ReadLimit)
	m.connMu.Lock()
	m.conn = conn
	m.connMu.Unlock()

	m.cancelDial = nil
	m.delay = m.cfg.ReconnectDelay
	m.setStateLocked(StateConnected)
	log.Info().Msg("Realtime connection open")

	m.wg.Add(1)
	go m.readLoop(conn, epoch)
	m.mu.Unlock()
	m.notify()
}

// readLoop is the only reader of conn, which keeps frames in arrival order.
func (m *Manager) readLoop(conn *websocket.Conn, epoch uint64) {
	defer m.wg.Done()

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			m.connectionLost(conn, epoch, err)
			return
		}
		if epoch != m.epoch.Load() {
			return
		}
		m.dispatcher.Dispatch(frame)
	}
}

// connectionLost tears down conn and arms a retry unless Disconnect already
// ended this generation.
func (m *Manager) connectionLost(conn *websocket.Conn, epoch uint64, err error) {
	m.mu.Lock()
	if epoch != m.epoch.Load() {
		m.mu.Unlock()
		return
	}

	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		m.log.Info().Err(err).Msg("Realtime connection closed by server")
	} else {
		m.log.Warn().Err(err).Msg("Realtime connection lost")
	}

	m.connMu.Lock()
	if m.conn == conn {
		m.conn = nil
	}
	m.connMu.Unlock()
	_ = conn.Close()

	m.scheduleReconnectLocked()
	m.mu.Unlock()
	m.notify()
}

// scheduleReconnectLocked arms the single retry timer. An existing timer is
// replaced, never duplicated. m.mu must be held.
func (m *Manager) scheduleReconnectLocked() {
	if m.timer != nil {
		m.timer.Stop()
	}

	delay := m.delay
	m.delay = m.cfg.nextDelay(delay)
	epoch := m.epoch.Load()

	m.setStateLocked(StateReconnecting)
	metrics.RecordReconnectScheduled()
	m.log.Info().Dur("delay", delay).Msg("Realtime reconnect scheduled")

	m.timer = time.AfterFunc(delay, func() { m.retry(epoch) })
}

// retry fires from the reconnect timer.
func (m *Manager) retry(epoch uint64) {
	m.mu.Lock()
	if epoch != m.epoch.Load() || m.State() != StateReconnecting {
		m.mu.Unlock()
		return
	}
	m.timer = nil
	m.log.Info().Msg("Realtime reconnecting")
	m.connectLocked()
	m.mu.Unlock()
	m.notify()
}

// Disconnect closes the connection and cancels any pending retry or dial.
// After it returns no stale timer or dial can reopen the connection; only a
// later Connect can.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	m.epoch.Add(1)
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	if m.cancelDial != nil {
		m.cancelDial()
		m.cancelDial = nil
	}

	m.connMu.Lock()
	conn := m.conn
	m.conn = nil
	m.connMu.Unlock()

	m.delay = m.cfg.ReconnectDelay
	m.setStateLocked(StateDisconnected)
	m.mu.Unlock()

	if conn != nil {
		m.writeMu.Lock()
		err := conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		m.writeMu.Unlock()
		if err != nil {
			m.log.Debug().Err(err).Msg("Failed to send close frame")
		}
		_ = conn.Close()
		m.log.Info().Msg("Realtime connection closed")
	}
	m.notify()
}

// Send encodes msg as JSON and writes it as one text frame. It returns false
// without error when the connection is not open, and false after logging when
// the write fails.
func (m *Manager) Send(msg any) bool {
	m.connMu.RLock()
	conn := m.conn
	m.connMu.RUnlock()

	if conn == nil || !m.IsConnected() {
		metrics.RecordMessageSent(metrics.ResultDropped)
		return false
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		metrics.RecordMessageSent(metrics.ResultError)
		m.log.Error().Err(err).Msg("Failed to encode outbound message")
		return false
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	if err := conn.SetWriteDeadline(time.Now().Add(m.cfg.WriteTimeout)); err != nil {
		m.log.Debug().Err(err).Msg("Failed to set write deadline")
	}
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		metrics.RecordMessageSent(metrics.ResultError)
		m.log.Warn().Err(err).Msg("Failed to send realtime message")
		return false
	}
	metrics.RecordMessageSent(metrics.ResultSent)
	return true
}

// Serve implements suture.Service: it connects, waits for ctx, then
// disconnects and waits for the connection goroutines to exit.
func (m *Manager) Serve(ctx context.Context) error {
	m.Connect()
	<-ctx.Done()
	m.Disconnect()
	m.wg.Wait()
	return ctx.Err()
}

// String implements fmt.Stringer for suture logging.
func (m *Manager) String() string {
	return "realtime-manager"
}

// setStateLocked records a transition for delivery. m.mu must be held.
func (m *Manager) setStateLocked(s State) {
	if m.State() == s {
		return
	}
	m.state.Store(int32(s))
	metrics.SetConnectionState(int(s))
	m.pending = append(m.pending, s)
}

// notify delivers pending transitions to observers. Only one goroutine
// delivers at a time; others leave their transitions queued for it. m.mu must
// not be held.
func (m *Manager) notify() {
	m.mu.Lock()
	if m.notifying {
		m.mu.Unlock()
		return
	}
	m.notifying = true

	for len(m.pending) > 0 {
		s := m.pending[0]
		m.pending = m.pending[1:]
		observers := append([]func(State){}, m.observers...)
		m.mu.Unlock()

		for _, fn := range observers {
			m.observe(fn, s)
		}

		m.mu.Lock()
	}

	m.notifying = false
	m.mu.Unlock()
}

func (m *Manager) observe(fn func(State), s State) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Error().Interface("panic", r).Str("state", s.String()).Msg("State observer panicked")
		}
	}()
	fn(s)
}
