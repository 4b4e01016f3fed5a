package events

import (
	"errors"
	"testing"
	"time"
)

func TestInMemoryEventStore_AppendAndRead(t *testing.T) {
	store := NewInMemoryEventStore()
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	store.AppendEvent("batch-1", NewEvent(BatchStartedEvent, "batch-1", BatchStarted{Items: 2}, at))
	store.AppendEvent("batch-1", NewEvent(ItemSkippedEvent, "batch-1", nil, at))
	store.AppendEvent("batch-2", NewEvent(BatchStartedEvent, "batch-2", nil, at))

	stream, err := store.ReadEvents("batch-1", 1)
	if err != nil {
		t.Fatalf("ReadEvents failed: %v", err)
	}
	if len(stream) != 2 {
		t.Fatalf("Expected 2 events in stream, got %d", len(stream))
	}
	if stream[1].Version() != 2 {
		t.Errorf("Expected second event version 2, got %d", stream[1].Version())
	}

	all, _ := store.ReadAllEvents(1)
	if len(all) != 2 {
		t.Errorf("Expected 2 events after position 1, got %d", len(all))
	}

	if got := store.CountByType(BatchStartedEvent); got != 2 {
		t.Errorf("Expected 2 batch.started events, got %d", got)
	}
}

func TestInMemoryEventStore_SubscribersNotifiedSynchronously(t *testing.T) {
	store := NewInMemoryEventStore()
	var seen []string
	var failures int
	store.OnHandlerError = func(Event, error) { failures++ }

	handler := &HandlerFunc{
		Types: []string{LineDraftedEvent},
		Fn: func(e Event) error {
			seen = append(seen, e.StreamID())
			return errors.New("boom")
		},
	}
	store.Subscribe([]string{LineDraftedEvent}, handler)

	store.AppendEvent("A", NewEvent(LineDraftedEvent, "A", nil, time.Now()))
	store.AppendEvent("B", NewEvent(DocumentEmptyEvent, "B", nil, time.Now()))

	if len(seen) != 1 || seen[0] != "A" {
		t.Errorf("Expected handler to see stream A only, got %v", seen)
	}
	if failures != 1 {
		t.Errorf("Expected 1 handler failure reported, got %d", failures)
	}

	store.Unsubscribe(handler)
	store.AppendEvent("C", NewEvent(LineDraftedEvent, "C", nil, time.Now()))
	if len(seen) != 1 {
		t.Errorf("Expected no notification after unsubscribe, got %v", seen)
	}
}

func TestBoundedEventStore_DropsOldestStream(t *testing.T) {
	store := NewBoundedEventStore(2)
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, batch := range []string{"batch-1", "batch-2", "batch-3"} {
		store.AppendEvent(batch, NewEvent(BatchStartedEvent, batch, nil, at))
		store.AppendEvent(batch, NewEvent(DocumentEmptyEvent, batch, nil, at))
	}

	ids := store.StreamIDs()
	if len(ids) != 2 || ids[0] != "batch-2" || ids[1] != "batch-3" {
		t.Fatalf("Expected streams [batch-2 batch-3], got %v", ids)
	}

	dropped, _ := store.ReadEvents("batch-1", 1)
	if len(dropped) != 0 {
		t.Errorf("Expected evicted stream to be empty, got %d events", len(dropped))
	}

	all, _ := store.ReadAllEvents(0)
	if len(all) != 4 {
		t.Fatalf("Expected 4 retained events, got %d", len(all))
	}
	if all[0].StreamID() != "batch-2" {
		t.Errorf("Expected oldest retained event from batch-2, got %s", all[0].StreamID())
	}

	// appending to a retained stream does not evict
	store.AppendEvent("batch-2", NewEvent(LineDraftedEvent, "batch-2", nil, at))
	if got := len(store.StreamIDs()); got != 2 {
		t.Errorf("Expected 2 streams, got %d", got)
	}
}

func TestInMemoryEventStore_ReadEventsFromVersion(t *testing.T) {
	store := NewInMemoryEventStore()
	for i := 0; i < 3; i++ {
		store.AppendEvent("S", NewEvent(LineDraftedEvent, "S", i, time.Now()))
	}

	tests := []struct {
		from int
		want int
	}{
		{0, 3},
		{1, 3},
		{3, 1},
		{4, 0},
	}
	for _, tt := range tests {
		got, err := store.ReadEvents("S", tt.from)
		if err != nil {
			t.Fatalf("ReadEvents(%d) failed: %v", tt.from, err)
		}
		if len(got) != tt.want {
			t.Errorf("ReadEvents(%d): expected %d events, got %d", tt.from, tt.want, len(got))
		}
	}
}
