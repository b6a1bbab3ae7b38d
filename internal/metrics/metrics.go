// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values shared by several counters.
const (
	ResultSuccess   = "success"
	ResultFailure   = "failure"
	ResultSent      = "sent"
	ResultDropped   = "dropped"
	ResultError     = "error"
	ResultThrottled = "throttled"
	ResultRejected  = "rejected"
)

var (
	// Connection Metrics
	ConnectionState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "betsync_connection_state",
			Help: "Current realtime connection state (0=disconnected, 1=connecting, 2=connected, 3=reconnecting)",
		},
	)

	ConnectAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "betsync_connect_attempts_total",
			Help: "Total number of realtime connection attempts by result",
		},
		[]string{"result"}, // "success", "failure"
	)

	ReconnectsScheduled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "betsync_reconnects_scheduled_total",
			Help: "Total number of reconnection timers armed after a failure",
		},
	)

	// Frame Metrics
	FramesReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "betsync_frames_received_total",
			Help: "Total number of decoded realtime frames by envelope type",
		},
		[]string{"type"},
	)

	DecodeErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "betsync_decode_errors_total",
			Help: "Total number of realtime frames dropped because they failed to decode",
		},
	)

	Heartbeats = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "betsync_heartbeats_total",
			Help: "Total number of ping acknowledgements by result",
		},
		[]string{"result"}, // "sent", "dropped"
	)

	MessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "betsync_messages_sent_total",
			Help: "Total number of outbound realtime frames by result",
		},
		[]string{"result"}, // "sent", "dropped", "error"
	)

	HandlerPanics = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "betsync_handler_panics_total",
			Help: "Total number of subscriber handlers that panicked",
		},
		[]string{"type"},
	)

	// Cache Metrics
	CollectionSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "betsync_collection_size",
			Help: "Current number of entries in a cached collection",
		},
		[]string{"collection"},
	)

	Resyncs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "betsync_resyncs_total",
			Help: "Total number of resync requests by result",
		},
		[]string{"result"}, // "sent", "throttled"
	)

	SnapshotGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "betsync_snapshot_gc_runs_total",
			Help: "Total number of snapshot store garbage collection runs by result",
		},
		[]string{"result"},
	)

	// Status API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "betsync_api_requests_total",
			Help: "Total number of status API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "betsync_api_request_duration_seconds",
			Help:    "Duration of status API requests in seconds",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
		},
		[]string{"method", "route"},
	)

	// Refetch Circuit Breaker Metrics
	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "betsync_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	BreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "betsync_breaker_requests_total",
			Help: "Total number of calls through a circuit breaker by result",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)

	BreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "betsync_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Stream Metrics
	StreamClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "betsync_stream_clients",
			Help: "Number of connected local stream clients",
		},
	)

	StreamDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "betsync_stream_dropped_total",
			Help: "Total number of stream messages dropped by reason",
		},
		[]string{"reason"},
	)
)

// SetConnectionState records the numeric value of the current connection state.
func SetConnectionState(state int) {
	ConnectionState.Set(float64(state))
}

// RecordConnectAttempt records the outcome of a dial.
func RecordConnectAttempt(err error) {
	if err != nil {
		ConnectAttempts.WithLabelValues(ResultFailure).Inc()
		return
	}
	ConnectAttempts.WithLabelValues(ResultSuccess).Inc()
}

// RecordReconnectScheduled records that a reconnection timer was armed.
func RecordReconnectScheduled() {
	ReconnectsScheduled.Inc()
}

// RecordFrame records a successfully decoded frame.
func RecordFrame(envelopeType string) {
	FramesReceived.WithLabelValues(envelopeType).Inc()
}

// RecordDecodeError records a frame that failed to decode.
func RecordDecodeError() {
	DecodeErrors.Inc()
}

// RecordHeartbeat records a ping acknowledgement outcome.
func RecordHeartbeat(sent bool) {
	if sent {
		Heartbeats.WithLabelValues(ResultSent).Inc()
		return
	}
	Heartbeats.WithLabelValues(ResultDropped).Inc()
}

// RecordMessageSent records an outbound frame outcome.
func RecordMessageSent(result string) {
	MessagesSent.WithLabelValues(result).Inc()
}

// RecordHandlerPanic records a recovered subscriber panic.
func RecordHandlerPanic(envelopeType string) {
	HandlerPanics.WithLabelValues(envelopeType).Inc()
}

// SetCollectionSize records the current size of a cached collection.
func SetCollectionSize(collection string, size int) {
	CollectionSize.WithLabelValues(collection).Set(float64(size))
}

// RecordResync records a resync request outcome.
func RecordResync(result string) {
	Resyncs.WithLabelValues(result).Inc()
}

// RecordSnapshotGC records the outcome of a snapshot store GC run.
func RecordSnapshotGC(err error) {
	if err != nil {
		SnapshotGCRuns.WithLabelValues(ResultFailure).Inc()
		return
	}
	SnapshotGCRuns.WithLabelValues(ResultSuccess).Inc()
}

// RecordAPIRequest records a status API request.
func RecordAPIRequest(method, route string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// SetStreamClients records the number of connected stream clients.
func SetStreamClients(n int) {
	StreamClients.Set(float64(n))
}

// RecordStreamDropped records a stream message that was not delivered.
func RecordStreamDropped(reason string) {
	StreamDropped.WithLabelValues(reason).Inc()
}

// SetBreakerState records the numeric state of a circuit breaker.
func SetBreakerState(name string, state float64) {
	BreakerState.WithLabelValues(name).Set(state)
}

// RecordBreakerRequest records a call through a circuit breaker.
func RecordBreakerRequest(name, result string) {
	BreakerRequests.WithLabelValues(name, result).Inc()
}

// RecordBreakerTransition records a circuit breaker state change.
func RecordBreakerTransition(name, from, to string) {
	BreakerTransitions.WithLabelValues(name, from, to).Inc()
}
