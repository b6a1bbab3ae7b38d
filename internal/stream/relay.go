// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package stream

import (
	"github.com/tomtom215/betsync/internal/dashboard"
)

// Relay broadcasts every change to d on h. Message data is read when the hub
// delivers it, so it is never older than a client's greeting.
func Relay(d *dashboard.Dashboard, h *Hub) {
	d.Watch(func(topic string) {
		h.BroadcastLatest(topic, func() (Message, bool) {
			return topicMessage(d, topic)
		})
	})
}

// Snapshot returns the current dashboard state as stream messages. It is the
// greeting for new clients.
func Snapshot(d *dashboard.Dashboard) []Message {
	out := make([]Message, 0, 4)
	for _, topic := range []string{dashboard.TopicBotState, dashboard.TopicStats, dashboard.TopicTeams, dashboard.TopicBets} {
		if msg, ok := topicMessage(d, topic); ok {
			out = append(out, msg)
		}
	}
	return out
}

func topicMessage(d *dashboard.Dashboard, topic string) (Message, bool) {
	switch topic {
	case dashboard.TopicTeams:
		return NewMessage(topic, d.Teams.Items()), true
	case dashboard.TopicBets:
		return NewMessage(topic, d.Bets.Items()), true
	case dashboard.TopicBotState:
		return NewMessage(topic, d.BotState()), true
	case dashboard.TopicStats:
		return NewMessage(topic, d.Stats()), true
	case dashboard.TopicNotification:
		entries := d.Feed.Entries()
		if len(entries) == 0 {
			return Message{}, false
		}
		return NewMessage(topic, entries[len(entries)-1]), true
	}
	return Message{}, false
}
