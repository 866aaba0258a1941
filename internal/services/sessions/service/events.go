package service

import (
	"sync"
	"time"

	"minutes/internal/services/sessions/domain"
)

// EventBus stores recent session events and provides incremental reads
type EventBus struct {
	mu        sync.RWMutex
	nextSeq   int64
	maxEvents int
	events    []domain.Event
}

// NewEventBus creates a bounded in-memory event buffer
func NewEventBus(maxEvents int) *EventBus {
	if maxEvents <= 0 {
		maxEvents = 500
	}
	return &EventBus{
		maxEvents: maxEvents,
		events:    make([]domain.Event, 0, maxEvents),
	}
}

// Publish appends one event and assigns sequence and timestamp
func (b *EventBus) Publish(event domain.Event) domain.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextSeq++
	event.Seq = b.nextSeq
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	b.events = append(b.events, event)
	if len(b.events) > b.maxEvents {
		trim := len(b.events) - b.maxEvents
		b.events = append([]domain.Event(nil), b.events[trim:]...)
	}
	return event
}

// Since returns events with sequence strictly greater than seq
func (b *EventBus) Since(seq int64) []domain.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if len(b.events) == 0 {
		return nil
	}
	out := make([]domain.Event, 0, len(b.events))
	for _, event := range b.events {
		if event.Seq > seq {
			out = append(out, event)
		}
	}
	return out
}
