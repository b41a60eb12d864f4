package server

import (
	"sync"

	"github.com/myselfshravan/SponsorCatcher/internal/domain/service/booking"
)

const defaultTailCapacity = 256

// TailSink keeps the most recent progress events in memory so the control
// API can hand out a tail without touching the orchestrator.
type TailSink struct {
	mu     sync.Mutex
	events []booking.Event
	max    int
}

func NewTailSink(capacity int) *TailSink {
	if capacity <= 0 {
		capacity = defaultTailCapacity
	}

	return &TailSink{max: capacity}
}

// Emit implements booking.Sink.
func (s *TailSink) Emit(event booking.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, event)
	if len(s.events) > s.max {
		s.events = append(s.events[:0:0], s.events[len(s.events)-s.max:]...)
	}
}

// Tail returns the newest events, oldest first, at most limit of them.
func (s *TailSink) Tail(limit int) []booking.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 || limit > len(s.events) {
		limit = len(s.events)
	}

	tail := make([]booking.Event, limit)
	copy(tail, s.events[len(s.events)-limit:])

	return tail
}
