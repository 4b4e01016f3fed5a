// Package events records what a replenishment batch did, one stream per
// batch.
package events

import (
	"time"
)

type Event interface {
	Type() string
	StreamID() string
	Data() interface{}
	Timestamp() time.Time
	Version() int
}

type EventHandler interface {
	Handle(event Event) error
	CanHandle(eventType string) bool
}

// EventStore is the sink the replenishment pipeline reports progress to.
// Streams are keyed by batch id; fiche numbers repeat across firms and periods.
type EventStore interface {
	AppendEvent(streamID string, event Event) error
	ReadEvents(streamID string, fromVersion int) ([]Event, error)
	ReadAllEvents(fromPosition int) ([]Event, error)
	Subscribe(eventTypes []string, handler EventHandler) error
	Unsubscribe(handler EventHandler) error
}

// Record is the stored form of an event. Seq is assigned by the store,
// starting at 1 within each stream.
type Record struct {
	Kind    string      `json:"type"`
	BatchID string      `json:"batch_id"`
	Payload interface{} `json:"data,omitempty"`
	At      time.Time   `json:"at"`
	Seq     int         `json:"seq"`
}

func (r Record) Type() string         { return r.Kind }
func (r Record) StreamID() string     { return r.BatchID }
func (r Record) Data() interface{}    { return r.Payload }
func (r Record) Timestamp() time.Time { return r.At }
func (r Record) Version() int         { return r.Seq }

// NewEvent creates a record; the store assigns Seq on append
func NewEvent(eventType, batchID string, data interface{}, at time.Time) Event {
	return Record{Kind: eventType, BatchID: batchID, Payload: data, At: at, Seq: 1}
}

// HandlerFunc adapts a function to EventHandler for the given event types
type HandlerFunc struct {
	Types []string
	Fn    func(Event) error
}

func (h *HandlerFunc) Handle(event Event) error {
	return h.Fn(event)
}

func (h *HandlerFunc) CanHandle(eventType string) bool {
	for _, t := range h.Types {
		if t == eventType {
			return true
		}
	}
	return false
}
