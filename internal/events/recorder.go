package events

import (
	"context"
	"sync"
)

// Recorder keeps published events in memory. Err, when set, is returned by
// every Publish after the event is recorded.
type Recorder struct {
	mu     sync.Mutex
	events []Envelope
	Err    error
}

func (r *Recorder) Publish(_ context.Context, ev Envelope) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.Err
}

func (r *Recorder) Close() error { return nil }

// Events returns a copy of everything published so far
func (r *Recorder) Events() []Envelope {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Envelope, len(r.events))
	copy(out, r.events)
	return out
}

// OfType returns the recorded events of one type
func (r *Recorder) OfType(eventType string) []Envelope {
	var out []Envelope
	for _, ev := range r.Events() {
		if ev.EventType == eventType {
			out = append(out, ev)
		}
	}
	return out
}
