package mq

import (
	"context"
	"encoding/json"
	"log"

	"groombook/rdx"
)

// Event is a domain notification published for loosely coupled
// consumers (audit trail, future notifiers).
type Event struct {
	Name      string `json:"name"`
	UserID    string `json:"userId,omitempty"`
	ServiceID string `json:"serviceId,omitempty"`
	DateKey   string `json:"dateKey,omitempty"`
	Time      string `json:"time,omitempty"`
}

const channel = "groombook-events"

// Emit publishes an event to the Redis channel. Failures are logged
// and swallowed; events are best-effort.
func Emit(ctx context.Context, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event %s: %v", ev.Name, err)
		return
	}

	if err := rdx.Conn.Publish(ctx, channel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s: %v", ev.Name, err)
	}
}
