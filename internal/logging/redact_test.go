// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package logging

import (
	"strings"
	"testing"
)

func TestSanitizeToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"short", "abc", "***"},
		{"twelve chars", "abcdefghijkl", "***"},
		{"long", "eyJhbGciOiJIUzI1NiJ9.e30.sig-value", "eyJh...alue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SanitizeToken(tt.input); got != tt.want {
				t.Errorf("SanitizeToken(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRedactURL(t *testing.T) {
	t.Parallel()

	got := RedactURL("wss://bets.example.com/ws?token=eyJhbGciOiJIUzI1NiJ9.e30.sig-value")
	if strings.Contains(got, "sig-value") {
		t.Fatalf("token leaked in %q", got)
	}
	if !strings.HasPrefix(got, "wss://bets.example.com/ws?") {
		t.Errorf("unexpected URL shape %q", got)
	}

	plain := "ws://localhost:8000/ws"
	if got := RedactURL(plain); got != plain {
		t.Errorf("RedactURL(%q) = %q, want unchanged", plain, got)
	}

	if got := RedactURL("://bad url"); got != "[unparseable url]" {
		t.Errorf("RedactURL(bad) = %q", got)
	}
}
