// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package refetch

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/betsync/internal/dashboard"
	"github.com/tomtom215/betsync/internal/logging"
	"github.com/tomtom215/betsync/internal/metrics"
)

// BreakerSettings configures a Breaker.
type BreakerSettings struct {
	// Name labels logs and metrics. Default: "rest-refetch"
	Name string

	// Failures is how many consecutive failures open the circuit. Default: 3
	Failures uint32

	// Timeout is how long the circuit stays open. Default: 1m
	Timeout time.Duration
}

// Breaker guards a Refetcher with a circuit breaker.
type Breaker struct {
	next dashboard.Refetcher
	cb   *gobreaker.CircuitBreaker[struct{}]
	name string
}

// NewBreaker wraps next. While the circuit is open Refetch returns
// gobreaker.ErrOpenState without calling next.
func NewBreaker(next dashboard.Refetcher, s BreakerSettings) *Breaker {
	if s.Name == "" {
		s.Name = "rest-refetch"
	}
	if s.Failures == 0 {
		s.Failures = 3
	}
	if s.Timeout <= 0 {
		s.Timeout = time.Minute
	}

	metrics.SetBreakerState(s.Name, stateToFloat(gobreaker.StateClosed))
	log := logging.Component("refetch")

	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: 1,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.Failures
		},
		// A canceled refetch says nothing about the API.
		IsExcluded: func(err error) bool {
			return errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("Circuit breaker state transition")
			metrics.SetBreakerState(name, stateToFloat(to))
			metrics.RecordBreakerTransition(name, from.String(), to.String())
		},
	})

	return &Breaker{next: next, cb: cb, name: s.Name}
}

// Refetch implements dashboard.Refetcher.
func (b *Breaker) Refetch(ctx context.Context, d *dashboard.Dashboard) error {
	_, err := b.cb.Execute(func() (struct{}, error) {
		return struct{}{}, b.next.Refetch(ctx, d)
	})
	switch {
	case err == nil:
		metrics.RecordBreakerRequest(b.name, metrics.ResultSuccess)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordBreakerRequest(b.name, metrics.ResultRejected)
	default:
		metrics.RecordBreakerRequest(b.name, metrics.ResultFailure)
	}
	return err
}

// State returns the current circuit state.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
