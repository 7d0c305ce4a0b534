// Package mqtt publishes heating events to an MQTT broker.
package mqtt

import (
	"encoding/json"
	"time"

	"microwave/internal/models"
)

// DefaultTopic is the topic heating events are published to when none is configured.
const DefaultTopic = "microwave/heating/events"

// Publisher publishes heating events.
type Publisher interface {
	// Publish sends a heating event to the broker. Failures are reported to
	// the caller and never affect the heating operation itself.
	Publish(event models.HeatingEvent) error

	// Close disconnects from the broker.
	Close() error
}

// Payload is the MQTT message body.
type Payload struct {
	Heating HeatingPayload `json:"heating"`
}

// HeatingPayload carries one heating event.
type HeatingPayload struct {
	EventID     string `json:"event_id"`
	SessionID   string `json:"session_id"`
	Timestamp   string `json:"timestamp"`
	Event       string `json:"event"`
	Description string `json:"description"`
	Metadata    any    `json:"metadata,omitempty"`
}

// FormatPayload creates the JSON payload for a heating event.
func FormatPayload(event models.HeatingEvent) ([]byte, error) {
	payload := Payload{
		Heating: HeatingPayload{
			EventID:     event.EventID,
			SessionID:   event.SessionID,
			Timestamp:   event.OccurredAt.UTC().Format(time.RFC3339),
			Event:       event.Type,
			Description: event.Description,
			Metadata:    event.Metadata,
		},
	}
	return json.Marshal(payload)
}

// NopPublisher discards every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(models.HeatingEvent) error { return nil }
func (NopPublisher) Close() error                      { return nil }
