// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package realtime

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/betsync/internal/metrics"
)

// recordingSender captures outbound messages for heartbeat tests.
type recordingSender struct {
	mu   sync.Mutex
	open bool
	sent []any
}

func (s *recordingSender) Send(msg any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return false
	}
	s.sent = append(s.sent, msg)
	return true
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func newTestDispatcher(out sender) (*dispatcher, *registry) {
	reg := newRegistry()
	log := zerolog.Nop()
	return newDispatcher(reg, &heartbeat{out: out, log: log}, log), reg
}

func TestDispatcher_RoutesByType(t *testing.T) {
	t.Parallel()

	d, reg := newTestDispatcher(&recordingSender{open: true})
	var got []string
	reg.add(TypeTeamUpdate, HandlerFunc(func(env Envelope) { got = append(got, "team:"+string(env.Data)) }))
	reg.add(TypeBetUpdate, HandlerFunc(func(env Envelope) { got = append(got, "bet:"+string(env.Data)) }))

	d.Dispatch([]byte(`{"type":"team_update","data":{"id":"t1"},"timestamp":"a"}`))
	d.Dispatch([]byte(`{"type":"bet_update","data":{"id":"b1"},"timestamp":"b"}`))
	d.Dispatch([]byte(`{"type":"team_update","data":{"id":"t2"},"timestamp":"c"}`))

	want := []string{`team:{"id":"t1"}`, `bet:{"id":"b1"}`, `team:{"id":"t2"}`}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d = %s, want %s", i, got[i], want[i])
		}
	}

	last, ok := d.Last()
	if !ok || last.Timestamp != "c" {
		t.Errorf("Last() = %+v, %v", last, ok)
	}
}

func TestDispatcher_HeartbeatTransparency(t *testing.T) {
	t.Parallel()

	out := &recordingSender{open: true}
	d, reg := newTestDispatcher(out)
	pingSubscriberCalled := false
	reg.add(TypePing, HandlerFunc(func(Envelope) { pingSubscriberCalled = true }))

	d.Dispatch([]byte(`{"type":"ping","timestamp":"2026-01-02T10:00:00"}`))

	if out.count() != 1 {
		t.Fatalf("sent %d messages, want exactly 1 pong", out.count())
	}
	pong, ok := out.sent[0].(Envelope)
	if !ok || pong.Type != TypePong || pong.Timestamp == "" {
		t.Errorf("sent %+v, want pong envelope", out.sent[0])
	}
	if pingSubscriberCalled {
		t.Error("ping must not reach subscribers")
	}
	if last, _ := d.Last(); last.Type != TypePing {
		t.Errorf("Last().Type = %q, want ping", last.Type)
	}
}

func TestDispatcher_HeartbeatDroppedWhenClosed(t *testing.T) {
	t.Parallel()

	out := &recordingSender{open: false}
	d, _ := newTestDispatcher(out)

	before := testutil.ToFloat64(metrics.Heartbeats.WithLabelValues(metrics.ResultDropped))
	d.Dispatch([]byte(`{"type":"ping"}`))

	if out.count() != 0 {
		t.Errorf("sent %d messages on a closed connection", out.count())
	}
	if got := testutil.ToFloat64(metrics.Heartbeats.WithLabelValues(metrics.ResultDropped)) - before; got < 1 {
		t.Errorf("dropped heartbeat not counted")
	}
}

func TestDispatcher_MalformedFrameIsolation(t *testing.T) {
	t.Parallel()

	d, reg := newTestDispatcher(&recordingSender{open: true})
	calls := 0
	reg.add(TypeBets, HandlerFunc(func(Envelope) { calls++ }))

	d.Dispatch([]byte(`{"type":"bets","data":[],"timestamp":"first"}`))

	before := testutil.ToFloat64(metrics.DecodeErrors)
	for _, frame := range []string{`not json`, `{"type":"bets"`, `{"data":[]}`, `[]`, ``} {
		d.Dispatch([]byte(frame))
	}
	if got := testutil.ToFloat64(metrics.DecodeErrors) - before; got < 5 {
		t.Errorf("decode errors delta = %v, want >= 5", got)
	}

	if calls != 1 {
		t.Errorf("handler calls = %d, want 1", calls)
	}
	last, ok := d.Last()
	if !ok || last.Timestamp != "first" {
		t.Errorf("malformed frames changed last envelope: %+v", last)
	}

	d.Dispatch([]byte(`{"type":"bets","data":[],"timestamp":"after"}`))
	if calls != 2 {
		t.Errorf("dispatcher stopped routing after malformed frames: calls = %d", calls)
	}
}

func TestDispatcher_UnknownTypeAccepted(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher(&recordingSender{open: true})
	d.Dispatch([]byte(`{"type":"something_new","timestamp":"x"}`))

	last, ok := d.Last()
	if !ok || last.Type != "something_new" {
		t.Errorf("Last() = %+v, %v", last, ok)
	}
}

func TestDispatcher_PanickingHandlerIsRecovered(t *testing.T) {
	t.Parallel()

	d, reg := newTestDispatcher(&recordingSender{open: true})
	secondRan := false
	reg.add(TypeStats, HandlerFunc(func(Envelope) { panic("boom") }))
	reg.add(TypeStats, HandlerFunc(func(Envelope) { secondRan = true }))

	d.Dispatch([]byte(`{"type":"stats","data":{}}`))

	if !secondRan {
		t.Error("handler after a panicking one did not run")
	}
}
