// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/betsync/internal/dashboard"
	"github.com/tomtom215/betsync/internal/middleware"
	"github.com/tomtom215/betsync/internal/realtime"
)

// ConnectionInfo is the part of realtime.Manager the status API reads.
type ConnectionInfo interface {
	State() realtime.State
	LastEnvelope() (realtime.Envelope, bool)
}

// Router serves the status API.
type Router struct {
	conn   ConnectionInfo
	dash   *dashboard.Dashboard
	mw     *ChiMiddleware
	stream http.Handler
}

// NewRouter creates a Router. A nil mwConfig uses DefaultChiMiddlewareConfig.
func NewRouter(conn ConnectionInfo, dash *dashboard.Dashboard, mwConfig *ChiMiddlewareConfig) *Router {
	return &Router{conn: conn, dash: dash, mw: NewChiMiddleware(mwConfig)}
}

// WithStream serves h at /api/v1/stream.
func (router *Router) WithStream(h http.Handler) *Router {
	router.stream = h
	return router
}

// Handler builds the chi route tree.
func (router *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.mw.CORS())
	r.Use(middleware.AccessLog)

	r.Get("/healthz", router.Healthz)
	r.Get("/readyz", router.Readyz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.mw.RateLimit())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/status", router.Status)
		r.Get("/teams", router.Teams)
		r.Get("/teams/{id}", router.Team)
		r.Get("/bets", router.Bets)
		r.Get("/bets/{id}", router.Bet)
		r.Get("/feed", router.Feed)
		r.Post("/resync", router.Resync)
		if router.stream != nil {
			r.Get("/stream", router.stream.ServeHTTP)
		}
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, "NOT_FOUND", "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})
	return r
}
