// Package events provides an in-process publish/subscribe bus.
package events

import "time"

// EventType represents different event types
type EventType string

const (
	MeasurementsChanged  EventType = "MEASUREMENTS_CHANGED"
	MaintenanceCompleted EventType = "MAINTENANCE_COMPLETED"
)

// Event is a published event
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Module    string    `json:"module"`
	Data      EventData `json:"data,omitempty"`
}

// Handler receives published events. Handlers run on the emitting goroutine
// and must not block.
type Handler func(event *Event)
