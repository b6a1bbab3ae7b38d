// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package stream

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/tomtom215/betsync/internal/dashboard"
	"github.com/tomtom215/betsync/internal/models"
)

type frame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func startStream(t *testing.T, origins []string) (*dashboard.Dashboard, *Hub, string) {
	t.Helper()

	d := dashboard.New(dashboard.Options{})
	hub, _, _ := runHub(t)
	Relay(d, hub)

	srv := httptest.NewServer(NewHandler(hub, origins, func() []Message { return Snapshot(d) }))
	t.Cleanup(srv.Close)
	return d, hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string, header http.Header) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("deadline: %v", err)
	}
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return f
}

func TestStream_GreetingThenLiveUpdates(t *testing.T) {
	t.Parallel()

	d, hub, url := startStream(t, nil)
	d.ApplyTeam(models.Team{ID: "t1", Name: "Ajax", Status: models.TeamStatusActive})

	conn := dial(t, url, nil)

	var greeting []string
	for i := 0; i < 4; i++ {
		greeting = append(greeting, readFrame(t, conn).Type)
	}
	want := []string{dashboard.TopicBotState, dashboard.TopicStats, dashboard.TopicTeams, dashboard.TopicBets}
	for i := range want {
		if greeting[i] != want[i] {
			t.Fatalf("greeting = %v, want %v", greeting, want)
		}
	}

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != 1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	d.ApplyTeam(models.Team{ID: "t2", Name: "PSV", Status: models.TeamStatusPaused})

	// A broadcast queued before the client registered may arrive first.
	for i := 0; i < 3; i++ {
		f := readFrame(t, conn)
		if f.Type != dashboard.TopicTeams {
			t.Fatalf("live frame type = %q, want teams", f.Type)
		}
		var teams []models.Team
		if err := json.Unmarshal(f.Data, &teams); err != nil {
			t.Fatalf("decode teams: %v", err)
		}
		if len(teams) == 2 && teams[1].ID == "t2" {
			return
		}
	}
	t.Error("never received the updated teams")
}

func TestStream_PingPong(t *testing.T) {
	t.Parallel()

	_, _, url := startStream(t, nil)
	conn := dial(t, url, nil)
	for i := 0; i < 4; i++ {
		readFrame(t, conn)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"ping"}`)); err != nil {
		t.Fatalf("write ping: %v", err)
	}
	if f := readFrame(t, conn); f.Type != MessageTypePong {
		t.Errorf("reply = %q, want pong", f.Type)
	}
}

func TestStream_OriginCheck(t *testing.T) {
	t.Parallel()

	_, _, url := startStream(t, []string{"http://dash.local"})

	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"http://evil.example"}})
	if err == nil {
		t.Fatal("expected handshake to fail for a foreign origin")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("response = %v, want 403", resp)
	}

	dial(t, url, http.Header{"Origin": {"http://dash.local"}})
}

func TestStream_StoppedHubRefusesClients(t *testing.T) {
	t.Parallel()

	d := dashboard.New(dashboard.Options{})
	hub, cancel, done := runHub(t)
	cancel()
	<-done

	srv := httptest.NewServer(NewHandler(hub, nil, func() []Message { return Snapshot(d) }))
	t.Cleanup(srv.Close)

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err == nil {
		t.Fatal("expected handshake to fail on a stopped hub")
	}
	if resp == nil || resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("response = %v, want 503", resp)
	}
	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d, want 0", hub.ClientCount())
	}
}

func TestOriginChecker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{"no origin header", []string{"http://a"}, "", true},
		{"listed", []string{"http://a", "http://b"}, "http://b", true},
		{"unlisted", []string{"http://a"}, "http://b", false},
		{"wildcard", []string{"*"}, "http://anything", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			if got := originChecker(tt.allowed)(r); got != tt.want {
				t.Errorf("originChecker() = %v, want %v", got, tt.want)
			}
		})
	}
}
