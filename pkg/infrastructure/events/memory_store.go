package events

import (
	"sync"
)

// InMemoryEventStore keeps the events of recent batches in process, one
// stream per batch. Subscribers are notified synchronously, in append
// order, before AppendEvent returns.
type InMemoryEventStore struct {
	mutex       sync.RWMutex
	streams     map[string][]Event
	streamOrder []string
	subscribers map[string][]EventHandler
	// maxStreams bounds the retained streams; 0 keeps everything
	maxStreams int

	// OnHandlerError receives subscriber failures; nil discards them.
	OnHandlerError func(Event, error)
}

// NewInMemoryEventStore creates a store that retains every stream
func NewInMemoryEventStore() *InMemoryEventStore {
	return NewBoundedEventStore(0)
}

// NewBoundedEventStore creates a store that drops the oldest stream once more
// than maxStreams streams exist
func NewBoundedEventStore(maxStreams int) *InMemoryEventStore {
	return &InMemoryEventStore{
		streams:     make(map[string][]Event),
		subscribers: make(map[string][]EventHandler),
		maxStreams:  maxStreams,
	}
}

func (s *InMemoryEventStore) AppendEvent(streamID string, event Event) error {
	s.mutex.Lock()
	if _, exists := s.streams[streamID]; !exists {
		s.streamOrder = append(s.streamOrder, streamID)
		s.evictLocked()
	}
	stored := Record{
		Kind:    event.Type(),
		BatchID: streamID,
		Payload: event.Data(),
		At:      event.Timestamp(),
		Seq:     len(s.streams[streamID]) + 1,
	}
	s.streams[streamID] = append(s.streams[streamID], stored)
	handlers := append([]EventHandler(nil), s.subscribers[stored.Kind]...)
	s.mutex.Unlock()

	for _, handler := range handlers {
		if !handler.CanHandle(stored.Kind) {
			continue
		}
		if err := handler.Handle(stored); err != nil && s.OnHandlerError != nil {
			s.OnHandlerError(stored, err)
		}
	}

	return nil
}

func (s *InMemoryEventStore) evictLocked() {
	if s.maxStreams <= 0 {
		return
	}
	for len(s.streamOrder) > s.maxStreams {
		delete(s.streams, s.streamOrder[0])
		s.streamOrder = s.streamOrder[1:]
	}
}

// ReadEvents returns the events of a stream from fromVersion (1-based) on
func (s *InMemoryEventStore) ReadEvents(streamID string, fromVersion int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	events := s.streams[streamID]
	if fromVersion < 1 {
		fromVersion = 1
	}
	if fromVersion > len(events) {
		return []Event{}, nil
	}

	return append([]Event(nil), events[fromVersion-1:]...), nil
}

// ReadAllEvents returns the retained events in stream order, skipping the
// first fromPosition
func (s *InMemoryEventStore) ReadAllEvents(fromPosition int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var all []Event
	for _, streamID := range s.streamOrder {
		all = append(all, s.streams[streamID]...)
	}

	if fromPosition < 0 {
		fromPosition = 0
	}
	if fromPosition >= len(all) {
		return []Event{}, nil
	}
	return all[fromPosition:], nil
}

// StreamIDs returns the retained streams, oldest first
func (s *InMemoryEventStore) StreamIDs() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append([]string(nil), s.streamOrder...)
}

// CountByType returns how many retained events have eventType
func (s *InMemoryEventStore) CountByType(eventType string) int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	count := 0
	for _, events := range s.streams {
		for _, e := range events {
			if e.Type() == eventType {
				count++
			}
		}
	}
	return count
}

func (s *InMemoryEventStore) Subscribe(eventTypes []string, handler EventHandler) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, eventType := range eventTypes {
		s.subscribers[eventType] = append(s.subscribers[eventType], handler)
	}

	return nil
}

func (s *InMemoryEventStore) Unsubscribe(handler EventHandler) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for eventType, handlers := range s.subscribers {
		kept := make([]EventHandler, 0, len(handlers))
		for _, h := range handlers {
			if h != handler {
				kept = append(kept, h)
			}
		}
		s.subscribers[eventType] = kept
	}

	return nil
}
