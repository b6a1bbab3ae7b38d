// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package realtime

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/tomtom215/betsync/internal/credentials"
)

const testRetryDelay = 50 * time.Millisecond

// mockRealtimeServer simulates the backend realtime endpoint.
type mockRealtimeServer struct {
	server   *httptest.Server
	upgrader websocket.Upgrader
	connChan chan *websocket.Conn
	hits     atomic.Int32
	reject   atomic.Bool

	mu      sync.Mutex
	queries []string
	times   []time.Time
}

func newMockRealtimeServer(t *testing.T) *mockRealtimeServer {
	t.Helper()

	mock := &mockRealtimeServer{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		connChan: make(chan *websocket.Conn, 16),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.hits.Add(1)
		mock.mu.Lock()
		mock.queries = append(mock.queries, r.URL.RawQuery)
		mock.times = append(mock.times, time.Now())
		mock.mu.Unlock()

		if r.URL.Path != DefaultPath {
			http.NotFound(w, r)
			return
		}
		if mock.reject.Load() {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}

		conn, err := mock.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		mock.connChan <- conn
	}))
	t.Cleanup(mock.server.Close)

	return mock
}

func (s *mockRealtimeServer) location(t *testing.T) Location {
	t.Helper()
	loc, err := ParseLocation(s.server.URL)
	if err != nil {
		t.Fatalf("ParseLocation(%q): %v", s.server.URL, err)
	}
	return loc
}

func (s *mockRealtimeServer) lastQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queries) == 0 {
		return ""
	}
	return s.queries[len(s.queries)-1]
}

func (s *mockRealtimeServer) hitTimes() []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Time{}, s.times...)
}

// waitForHits blocks until the server has seen at least n attempts.
func (s *mockRealtimeServer) waitForHits(t *testing.T, n int, timeout time.Duration) []time.Time {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if times := s.hitTimes(); len(times) >= n {
			return times
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("server saw %d attempts, want %d", len(s.hitTimes()), n)
	return nil
}

// accept waits for the next server-side connection.
func (s *mockRealtimeServer) accept(t *testing.T) *websocket.Conn {
	t.Helper()
	select {
	case conn := <-s.connChan:
		t.Cleanup(func() { _ = conn.Close() })
		return conn
	case <-time.After(2 * time.Second):
		t.Fatal("server did not receive connection")
		return nil
	}
}

func (s *mockRealtimeServer) send(t *testing.T, conn *websocket.Conn, frame string) {
	t.Helper()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
		t.Fatalf("server write: %v", err)
	}
}

func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("set read deadline: %v", err)
	}
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("server read: %v", err)
	}
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("decode client frame %s: %v", data, err)
	}
	return env
}

func newTestManager(t *testing.T, loc Location, creds credentials.Source) *Manager {
	t.Helper()
	return newTestManagerWithDelay(t, loc, creds, testRetryDelay)
}

func newTestManagerWithDelay(t *testing.T, loc Location, creds credentials.Source, delay time.Duration) *Manager {
	t.Helper()
	cfg := DefaultConfig()
	cfg.ReconnectDelay = delay
	cfg.HandshakeTimeout = time.Second
	m := NewManager(cfg, loc, creds)
	t.Cleanup(func() {
		m.Disconnect()
		m.wg.Wait()
	})
	return m
}

func waitForState(t *testing.T, m *Manager, want State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if m.State() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("state = %s, want %s", m.State(), want)
}

// stateRecorder collects transitions delivered to an observer.
type stateRecorder struct {
	mu     sync.Mutex
	states []State
}

func (r *stateRecorder) observe(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *stateRecorder) snapshot() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]State(nil), r.states...)
}

func TestManager_ConnectIsIdempotent(t *testing.T) {
	t.Parallel()

	mock := newMockRealtimeServer(t)
	m := newTestManager(t, mock.location(t), nil)

	m.Connect()
	m.Connect()
	m.Connect()
	mock.accept(t)
	waitForState(t, m, StateConnected)
	m.Connect()

	time.Sleep(4 * testRetryDelay)
	if n := mock.hits.Load(); n != 1 {
		t.Errorf("server saw %d connection attempts, want 1", n)
	}
}

func TestManager_TokenQueryParameter(t *testing.T) {
	t.Parallel()

	t.Run("with credential", func(t *testing.T) {
		t.Parallel()
		mock := newMockRealtimeServer(t)
		m := newTestManager(t, mock.location(t), credentials.Static("secret-token"))
		m.Connect()
		mock.accept(t)
		if q := mock.lastQuery(); q != "token=secret-token" {
			t.Errorf("query = %q, want token=secret-token", q)
		}
	})

	t.Run("without credential", func(t *testing.T) {
		t.Parallel()
		mock := newMockRealtimeServer(t)
		m := newTestManager(t, mock.location(t), credentials.None)
		m.Connect()
		mock.accept(t)
		if q := mock.lastQuery(); q != "" {
			t.Errorf("query = %q, want empty", q)
		}
	})
}

func TestManager_HeartbeatRoundTrip(t *testing.T) {
	t.Parallel()

	mock := newMockRealtimeServer(t)
	m := newTestManager(t, mock.location(t), nil)
	var pingHandled atomic.Bool
	m.Subscribe(TypePing, HandlerFunc(func(Envelope) { pingHandled.Store(true) }))

	m.Connect()
	conn := mock.accept(t)
	waitForState(t, m, StateConnected)

	mock.send(t, conn, `{"type":"ping","timestamp":"2026-01-02T10:00:00"}`)

	pong := readEnvelope(t, conn)
	if pong.Type != TypePong {
		t.Fatalf("client replied %q, want pong", pong.Type)
	}
	if _, err := time.Parse(time.RFC3339, pong.Timestamp); err != nil {
		t.Errorf("pong timestamp %q is not RFC3339: %v", pong.Timestamp, err)
	}
	if pingHandled.Load() {
		t.Error("ping reached a subscriber")
	}
	if last, ok := m.LastEnvelope(); !ok || last.Type != TypePing {
		t.Errorf("LastEnvelope() = %+v, %v", last, ok)
	}
}

func TestManager_DeliversFramesInOrder(t *testing.T) {
	t.Parallel()

	mock := newMockRealtimeServer(t)
	m := newTestManager(t, mock.location(t), nil)

	received := make(chan string, 8)
	m.Subscribe(TypeTeamUpdate, HandlerFunc(func(env Envelope) {
		var team struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(env.Data, &team); err == nil {
			received <- team.ID
		}
	}))

	m.Connect()
	conn := mock.accept(t)
	waitForState(t, m, StateConnected)

	mock.send(t, conn, `{"type":"team_update","data":{"id":"t1"},"timestamp":"a"}`)
	mock.send(t, conn, `garbage`)
	mock.send(t, conn, `{"type":"team_update","data":{"id":"t2"},"timestamp":"b"}`)
	mock.send(t, conn, `{"type":"team_update","data":{"id":"t3"},"timestamp":"c"}`)

	for _, want := range []string{"t1", "t2", "t3"} {
		select {
		case got := <-received:
			if got != want {
				t.Fatalf("received %s, want %s", got, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %s", want)
		}
	}
	if !m.IsConnected() {
		t.Error("malformed frame must not close the connection")
	}
}

func TestManager_ReconnectsAfterServerClose(t *testing.T) {
	t.Parallel()

	mock := newMockRealtimeServer(t)
	m := newTestManager(t, mock.location(t), nil)
	rec := &stateRecorder{}
	m.OnStateChange(rec.observe)

	m.Connect()
	conn := mock.accept(t)
	waitForState(t, m, StateConnected)

	_ = conn.Close()

	second := mock.accept(t)
	waitForState(t, m, StateConnected)

	mock.send(t, second, `{"type":"ping"}`)
	if pong := readEnvelope(t, second); pong.Type != TypePong {
		t.Errorf("new connection replied %q, want pong", pong.Type)
	}

	want := []State{StateConnecting, StateConnected, StateReconnecting, StateConnecting, StateConnected}
	got := rec.snapshot()
	for deadline := time.Now().Add(time.Second); len(got) < len(want) && time.Now().Before(deadline); {
		time.Sleep(5 * time.Millisecond)
		got = rec.snapshot()
	}
	if len(got) != len(want) {
		t.Fatalf("transitions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("transition %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestManager_DisconnectSuppressesReconnect(t *testing.T) {
	t.Parallel()

	const delay = 200 * time.Millisecond
	mock := newMockRealtimeServer(t)
	m := newTestManagerWithDelay(t, mock.location(t), nil, delay)

	m.Connect()
	conn := mock.accept(t)
	waitForState(t, m, StateConnected)

	_ = conn.Close()
	waitForState(t, m, StateReconnecting)
	m.Disconnect()

	time.Sleep(3 * delay)
	if n := mock.hits.Load(); n != 1 {
		t.Errorf("server saw %d connection attempts after Disconnect, want 1", n)
	}
	if s := m.State(); s != StateDisconnected {
		t.Errorf("state = %s, want disconnected", s)
	}
}

func TestManager_RetriesFailedDialUntilDisconnect(t *testing.T) {
	t.Parallel()

	mock := newMockRealtimeServer(t)
	mock.reject.Store(true)
	m := newTestManager(t, mock.location(t), nil)

	m.Connect()
	deadline := time.Now().Add(2 * time.Second)
	for mock.hits.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if n := mock.hits.Load(); n < 3 {
		t.Fatalf("expected repeated attempts, got %d", n)
	}

	m.Disconnect()
	settled := mock.hits.Load()
	time.Sleep(5 * testRetryDelay)
	if n := mock.hits.Load(); n > settled+1 {
		t.Errorf("attempts continued after Disconnect: %d -> %d", settled, n)
	}

	mock.reject.Store(false)
	m.Connect()
	mock.accept(t)
	waitForState(t, m, StateConnected)
}

func TestManager_BackoffGrowsAndResetsAfterOpen(t *testing.T) {
	t.Parallel()

	const base = 40 * time.Millisecond
	mock := newMockRealtimeServer(t)
	mock.reject.Store(true)

	cfg := DefaultConfig()
	cfg.ReconnectDelay = base
	cfg.ReconnectMultiplier = 2
	cfg.ReconnectMaxDelay = 5 * time.Second
	cfg.HandshakeTimeout = time.Second
	m := NewManager(cfg, mock.location(t), nil)
	t.Cleanup(func() {
		m.Disconnect()
		m.wg.Wait()
	})

	m.Connect()
	times := mock.waitForHits(t, 4, 3*time.Second)

	// Rejected attempts wait base, 2*base, 4*base.
	for i, want := range []time.Duration{base, 2 * base, 4 * base} {
		gap := times[i+1].Sub(times[i])
		if gap < want*9/10 {
			t.Errorf("gap %d = %v, want at least %v", i, gap, want)
		}
	}
	if g1, g3 := times[2].Sub(times[1]), times[3].Sub(times[2]); g3 <= g1 {
		t.Errorf("delays did not grow: %v then %v", g1, g3)
	}

	// The next attempt (after 8*base) succeeds and resets the delay.
	mock.reject.Store(false)
	conn := mock.accept(t)
	waitForState(t, m, StateConnected)
	opened := len(mock.hitTimes())

	dropped := time.Now()
	_ = conn.Close()
	mock.accept(t)
	after := mock.hitTimes()
	if len(after) != opened+1 {
		t.Fatalf("attempts after drop = %d, want 1", len(after)-opened)
	}

	gap := after[opened].Sub(dropped)
	if gap < base*9/10 {
		t.Errorf("reconnect after drop came after %v, before the %v delay", gap, base)
	}
	if gap >= 8*base {
		t.Errorf("reconnect after drop took %v; delay was not reset to %v", gap, base)
	}
}

func TestManager_SendOnlyWhileOpen(t *testing.T) {
	t.Parallel()

	mock := newMockRealtimeServer(t)
	m := newTestManager(t, mock.location(t), nil)

	if m.Send(map[string]string{"type": TypeGetState}) {
		t.Error("Send succeeded before Connect")
	}

	m.Connect()
	conn := mock.accept(t)
	waitForState(t, m, StateConnected)

	req, err := NewEnvelope(TypeGetTeams, nil)
	if err != nil {
		t.Fatalf("NewEnvelope: %v", err)
	}
	if !m.Send(req) {
		t.Fatal("Send failed on an open connection")
	}
	if env := readEnvelope(t, conn); env.Type != TypeGetTeams {
		t.Errorf("server received %q, want get_teams", env.Type)
	}

	m.Disconnect()
	if m.Send(req) {
		t.Error("Send succeeded after Disconnect")
	}
}

func TestManager_ServeStopsOnCancel(t *testing.T) {
	t.Parallel()

	mock := newMockRealtimeServer(t)
	m := newTestManager(t, mock.location(t), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Serve(ctx) }()

	mock.accept(t)
	waitForState(t, m, StateConnected)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	if s := m.State(); s != StateDisconnected {
		t.Errorf("state after Serve = %s, want disconnected", s)
	}
}

func TestManager_ObserverMayCallSend(t *testing.T) {
	t.Parallel()

	mock := newMockRealtimeServer(t)
	m := newTestManager(t, mock.location(t), nil)
	m.OnStateChange(func(s State) {
		if s == StateConnected {
			m.Send(map[string]string{"type": TypeGetState})
		}
	})

	m.Connect()
	conn := mock.accept(t)
	if env := readEnvelope(t, conn); env.Type != TypeGetState {
		t.Errorf("server received %q, want get_state", env.Type)
	}
}
