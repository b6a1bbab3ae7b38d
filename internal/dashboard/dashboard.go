// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/betsync/internal/cache"
	"github.com/tomtom215/betsync/internal/logging"
	"github.com/tomtom215/betsync/internal/metrics"
	"github.com/tomtom215/betsync/internal/models"
	"github.com/tomtom215/betsync/internal/realtime"
)

// Client is the part of realtime.Manager the dashboard uses.
type Client interface {
	Subscribe(typ string, h realtime.Handler) *realtime.Subscription
	OnStateChange(fn func(realtime.State))
	Send(msg any) bool
}

// Refetcher reloads state through the REST API into d. It is optional; the
// realtime get_* requests already cover a resync when the backend answers
// them.
type Refetcher interface {
	Refetch(ctx context.Context, d *Dashboard) error
}

// Options configures a Dashboard.
type Options struct {
	// FeedSize bounds the notification feed. Default: DefaultFeedSize.
	FeedSize int

	// ResyncInterval is the minimum time between two resyncs.
	// Default: 2s
	ResyncInterval time.Duration

	// ResyncBurst is how many resyncs may happen back to back.
	// Default: 1
	ResyncBurst int

	// RefetchTimeout bounds one Refetcher call. Default: 30s
	RefetchTimeout time.Duration

	// Refetcher is called on every resync when set.
	Refetcher Refetcher

	// Snapshots persists teams and bets between runs when set.
	Snapshots *cache.SnapshotStore
}

// Snapshot names.
const (
	SnapshotTeams = "teams"
	SnapshotBets  = "bets"
)

// Topics passed to Watch callbacks.
const (
	TopicTeams        = "teams"
	TopicBets         = "bets"
	TopicBotState     = "bot_state"
	TopicStats        = "stats"
	TopicNotification = "notification"
)

// Dashboard owns the client-side state of the betting dashboard.
type Dashboard struct {
	Teams *cache.Collection[models.Team]
	Bets  *cache.Collection[models.Bet]
	Feed  *Feed

	bot   holder[models.BotState]
	stats holder[models.DashboardStats]

	limiter        *rate.Limiter
	refetcher      Refetcher
	refetchTimeout time.Duration
	snapshots      *cache.SnapshotStore
	log            zerolog.Logger

	mu     sync.Mutex
	client Client
	subs   []*realtime.Subscription

	watchMu  sync.RWMutex
	watchers []func(topic string)
}

// New creates a Dashboard with empty collections.
//
//nolint:gocritic // Options is read once at construction
func New(opts Options) *Dashboard {
	if opts.ResyncInterval <= 0 {
		opts.ResyncInterval = 2 * time.Second
	}
	if opts.ResyncBurst <= 0 {
		opts.ResyncBurst = 1
	}
	if opts.RefetchTimeout <= 0 {
		opts.RefetchTimeout = 30 * time.Second
	}

	d := &Dashboard{
		Teams:          cache.NewCollection(models.TeamKey),
		Bets:           cache.NewCollection(models.BetKey),
		Feed:           NewFeed(opts.FeedSize),
		limiter:        rate.NewLimiter(rate.Every(opts.ResyncInterval), opts.ResyncBurst),
		refetcher:      opts.Refetcher,
		refetchTimeout: opts.RefetchTimeout,
		snapshots:      opts.Snapshots,
		log:            logging.Component("dashboard"),
	}
	d.bot.Store(models.DefaultBotState())

	d.Teams.OnChange(func() {
		metrics.SetCollectionSize(SnapshotTeams, d.Teams.Len())
		d.save(SnapshotTeams, d.Teams.Items())
		d.notify(TopicTeams)
	})
	d.Bets.OnChange(func() {
		metrics.SetCollectionSize(SnapshotBets, d.Bets.Len())
		d.save(SnapshotBets, d.Bets.Items())
		d.notify(TopicBets)
	})
	return d
}

// Attach subscribes the dashboard to c. It may be called once per client.
func (d *Dashboard) Attach(c Client) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.client = c
	handlers := map[string]realtime.Handler{
		realtime.TypeTeamUpdate:   cache.Reconcile(d.Teams),
		realtime.TypeTeamRemoved:  cache.RemoveByID(d.Teams),
		realtime.TypeTeams:        cache.ReplaceFrom(d.Teams),
		realtime.TypeBetUpdate:    cache.Reconcile(d.Bets),
		realtime.TypeBetRemoved:   cache.RemoveByID(d.Bets),
		realtime.TypeBets:         cache.ReplaceFrom(d.Bets),
		realtime.TypeBotState:     realtime.HandlerFunc(d.handleBotState),
		realtime.TypeStats:        realtime.HandlerFunc(d.handleStats),
		realtime.TypeInitialState: realtime.HandlerFunc(d.handleInitialState),
		realtime.TypeNotification: realtime.HandlerFunc(d.handleNotification),
		realtime.TypeLog:          realtime.HandlerFunc(d.handleNotification),
		realtime.TypeError:        realtime.HandlerFunc(d.handleNotification),
	}
	for typ, h := range handlers {
		d.subs = append(d.subs, c.Subscribe(typ, h))
	}

	c.OnStateChange(func(s realtime.State) {
		if s == realtime.StateConnected {
			d.Resync()
		}
	})
}

// Detach removes every handler added by Attach.
func (d *Dashboard) Detach() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, s := range d.subs {
		s.Unsubscribe()
	}
	d.subs = nil
	d.client = nil
}

// Watch registers fn to run after any part of the dashboard changes. fn runs
// on the goroutine that applied the change and must not block.
func (d *Dashboard) Watch(fn func(topic string)) {
	if fn == nil {
		return
	}
	d.watchMu.Lock()
	d.watchers = append(d.watchers, fn)
	d.watchMu.Unlock()
}

func (d *Dashboard) notify(topic string) {
	d.watchMu.RLock()
	watchers := append([]func(string){}, d.watchers...)
	d.watchMu.RUnlock()

	for _, fn := range watchers {
		fn(topic)
	}
}

// BotState returns the latest bot state.
func (d *Dashboard) BotState() models.BotState { return d.bot.Load() }

// Stats returns the latest dashboard stats.
func (d *Dashboard) Stats() models.DashboardStats { return d.stats.Load() }

// SetBotState stores the bot state returned by a REST call.
func (d *Dashboard) SetBotState(state models.BotState) {
	d.bot.Store(state)
	d.notify(TopicBotState)
}

// SetStats stores dashboard stats returned by a REST call.
//
//nolint:gocritic // models.DashboardStats is stored by value
func (d *Dashboard) SetStats(stats models.DashboardStats) {
	d.stats.Store(stats)
	d.notify(TopicStats)
}

// ActiveTeams returns teams the bot is betting on, in display order.
func (d *Dashboard) ActiveTeams() []models.Team {
	return d.Teams.Filter(func(t models.Team) bool { return t.IsActive() })
}

// PausedTeams returns paused teams, in display order.
func (d *Dashboard) PausedTeams() []models.Team {
	return d.Teams.Filter(func(t models.Team) bool { return t.IsPaused() })
}

// ApplyTeam stores a team returned by a REST call. It shares Upsert with the
// push path, so whichever arrives last wins and no duplicate is created.
//
//nolint:gocritic // models.Team is stored by value
func (d *Dashboard) ApplyTeam(t models.Team) {
	d.Teams.Upsert(t)
}

// ApplyBet stores a bet returned by a REST call.
//
//nolint:gocritic // models.Bet is stored by value
func (d *Dashboard) ApplyBet(b models.Bet) {
	d.Bets.Upsert(b)
}

// RemoveTeam drops a team deleted through the REST API.
func (d *Dashboard) RemoveTeam(id string) bool {
	return d.Teams.Remove(id)
}

func (d *Dashboard) handleBotState(env realtime.Envelope) {
	state, err := realtime.DecodeData[models.BotState](env)
	if err != nil {
		d.log.Warn().Err(err).Msg("Ignoring unreadable bot state")
		return
	}
	d.SetBotState(state)
}

func (d *Dashboard) handleStats(env realtime.Envelope) {
	stats, err := realtime.DecodeData[models.DashboardStats](env)
	if err != nil {
		d.log.Warn().Err(err).Msg("Ignoring unreadable stats")
		return
	}
	d.SetStats(stats)
}

func (d *Dashboard) handleInitialState(env realtime.Envelope) {
	initial, err := realtime.DecodeData[models.InitialState](env)
	if err != nil {
		d.log.Warn().Err(err).Msg("Ignoring unreadable initial state")
		return
	}
	d.bot.Store(initial.BotState)
	d.stats.Store(initial.Stats)
	d.notify(TopicBotState)
	d.notify(TopicStats)
}

// notificationData is the data payload of backend notification frames.
type notificationData struct {
	Message string         `json:"message"`
	Level   realtime.Level `json:"level"`
}

func (d *Dashboard) handleNotification(env realtime.Envelope) {
	n := models.Notification{
		Type:      env.Type,
		Message:   env.Message,
		Level:     string(env.Level),
		Timestamp: env.Timestamp,
	}
	if n.Message == "" {
		// data is either a bare string (log lines) or {message, level}.
		if msg, err := realtime.DecodeData[string](env); err == nil {
			n.Message = msg
		} else if payload, err := realtime.DecodeData[notificationData](env); err == nil {
			n.Message = payload.Message
			if n.Level == "" {
				n.Level = string(payload.Level)
			}
		}
	}
	if n.Level == "" || !realtime.Level(n.Level).Valid() {
		n.Level = string(realtime.LevelInfo)
		if env.Type == realtime.TypeError {
			n.Level = string(realtime.LevelError)
		}
	}
	d.Feed.Append(n)
	d.notify(TopicNotification)

	if env.Type == realtime.TypeError {
		d.log.Warn().Str("message", n.Message).Msg("Backend reported an error")
	}
}

// save writes a snapshot when a store is configured. Failures are logged.
func (d *Dashboard) save(name string, items any) {
	if d.snapshots == nil {
		return
	}
	if err := d.snapshots.Save(name, items); err != nil {
		d.log.Warn().Err(err).Str("snapshot", name).Msg("Failed to save snapshot")
	}
}
