// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package refetch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/betsync/internal/dashboard"
	"github.com/tomtom215/betsync/internal/metrics"
)

type scriptedRefetcher struct {
	calls atomic.Int32
	err   atomic.Value // errBox
}

type errBox struct{ err error }

func (r *scriptedRefetcher) fail(err error) { r.err.Store(errBox{err}) }

func (r *scriptedRefetcher) Refetch(_ context.Context, _ *dashboard.Dashboard) error {
	r.calls.Add(1)
	if b, ok := r.err.Load().(errBox); ok {
		return b.err
	}
	return nil
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	t.Parallel()

	next := &scriptedRefetcher{}
	next.fail(errors.New("connection refused"))
	b := NewBreaker(next, BreakerSettings{Name: "test-open", Failures: 3, Timeout: time.Hour})
	d := dashboard.New(dashboard.Options{})

	for i := 0; i < 3; i++ {
		if err := b.Refetch(context.Background(), d); err == nil {
			t.Fatalf("call %d: expected failure", i)
		}
	}
	if b.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open", b.State())
	}

	err := b.Refetch(context.Background(), d)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Refetch() = %v, want ErrOpenState", err)
	}
	if n := next.calls.Load(); n != 3 {
		t.Errorf("wrapped calls = %d, want 3", n)
	}

	if got := testutil.ToFloat64(metrics.BreakerState.WithLabelValues("test-open")); got != 2 {
		t.Errorf("state gauge = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.BreakerRequests.WithLabelValues("test-open", metrics.ResultRejected)); got != 1 {
		t.Errorf("rejected = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.BreakerRequests.WithLabelValues("test-open", metrics.ResultFailure)); got != 3 {
		t.Errorf("failures = %v, want 3", got)
	}
}

func TestBreaker_ClosesAfterHalfOpenSuccess(t *testing.T) {
	t.Parallel()

	next := &scriptedRefetcher{}
	next.fail(errors.New("timeout"))
	b := NewBreaker(next, BreakerSettings{Name: "test-recover", Failures: 1, Timeout: 50 * time.Millisecond})
	d := dashboard.New(dashboard.Options{})

	_ = b.Refetch(context.Background(), d)
	if b.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open", b.State())
	}

	time.Sleep(80 * time.Millisecond)
	if b.State() != gobreaker.StateHalfOpen {
		t.Fatalf("State() = %v after timeout, want half-open", b.State())
	}

	next.fail(nil)
	if err := b.Refetch(context.Background(), d); err != nil {
		t.Fatalf("Refetch() error = %v", err)
	}
	if b.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed", b.State())
	}
	if got := testutil.ToFloat64(metrics.BreakerTransitions.WithLabelValues("test-recover", "half-open", "closed")); got != 1 {
		t.Errorf("half-open -> closed transitions = %v, want 1", got)
	}
}

func TestBreaker_IgnoresCanceledRefetches(t *testing.T) {
	t.Parallel()

	next := &scriptedRefetcher{}
	next.fail(context.Canceled)
	b := NewBreaker(next, BreakerSettings{Name: "test-cancel", Failures: 1, Timeout: time.Hour})
	d := dashboard.New(dashboard.Options{})

	for i := 0; i < 3; i++ {
		if err := b.Refetch(context.Background(), d); !errors.Is(err, context.Canceled) {
			t.Fatalf("Refetch() = %v, want context.Canceled", err)
		}
	}
	if b.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed", b.State())
	}
}

func TestNewBreaker_Defaults(t *testing.T) {
	t.Parallel()

	b := NewBreaker(&scriptedRefetcher{}, BreakerSettings{})
	if b.name != "rest-refetch" {
		t.Errorf("name = %q", b.name)
	}
	if b.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v", b.State())
	}
}

func TestStateToFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state gobreaker.State
		want  float64
	}{
		{gobreaker.StateClosed, 0},
		{gobreaker.StateHalfOpen, 1},
		{gobreaker.StateOpen, 2},
		{gobreaker.State(9), -1},
	}
	for _, tt := range tests {
		if got := stateToFloat(tt.state); got != tt.want {
			t.Errorf("stateToFloat(%v) = %v, want %v", tt.state, got, tt.want)
		}
	}
}
