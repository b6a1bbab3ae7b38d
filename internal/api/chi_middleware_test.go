// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestChiMiddleware_RateLimit(t *testing.T) {
	t.Parallel()

	router := NewRouter(&fakeConn{}, newTestDashboard(), &ChiMiddlewareConfig{
		RateLimitRequests: 2,
		RateLimitWindow:   time.Minute,
	})
	handler := router.Handler()

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/teams", nil)
		req.RemoteAddr = "192.0.2.10:5000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 200 429]", codes)
	}

	// Health checks are outside the limited group.
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.RemoteAddr = "192.0.2.10:5000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("healthz after limit = %d", rec.Code)
	}
}

func TestChiMiddleware_CORS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		origins []string
		origin  string
		want    string
	}{
		{"disabled", nil, "https://ops.example.com", ""},
		{"allowed", []string{"https://ops.example.com"}, "https://ops.example.com", "https://ops.example.com"},
		{"other origin", []string{"https://ops.example.com"}, "https://evil.example.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			router := NewRouter(&fakeConn{}, newTestDashboard(), &ChiMiddlewareConfig{CORSAllowedOrigins: tt.origins})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			router.Handler().ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultChiMiddlewareConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	if len(cfg.CORSAllowedOrigins) != 0 {
		t.Errorf("CORS origins should default to empty, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitRequests != 300 || cfg.RateLimitWindow != time.Minute {
		t.Errorf("rate limit = %d per %v", cfg.RateLimitRequests, cfg.RateLimitWindow)
	}
	if NewChiMiddleware(nil).config == nil {
		t.Error("nil config should use defaults")
	}
}
