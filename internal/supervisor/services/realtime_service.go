// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package services

import (
	"context"
)

// ContextServer matches realtime.Manager's Serve method.
type ContextServer interface {
	Serve(ctx context.Context) error
}

// RealtimeService supervises the realtime connection manager.
//
// Manager.Serve already follows the suture pattern. The wrapper exists so
// the service has a stable name in supervisor logs.
type RealtimeService struct {
	manager ContextServer
	name    string
}

// NewRealtimeService creates a RealtimeService.
func NewRealtimeService(manager ContextServer) *RealtimeService {
	return &RealtimeService{manager: manager, name: "realtime-manager"}
}

// Serve implements suture.Service.
func (r *RealtimeService) Serve(ctx context.Context) error {
	return r.manager.Serve(ctx)
}

// String implements fmt.Stringer for logging.
func (r *RealtimeService) String() string {
	return r.name
}
