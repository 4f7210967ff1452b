// Package events implements the C9 event sink: a single-producer/
// single-consumer channel from the engine to its UI, carrying progress and
// completion notices. Engine code never blocks on the sink per spec §4.9 —
// modeled on llmd's extension.Event notification concept (internal/document/
// service.go's fireEvent), translated from an in-process handler list to a
// channel since igr's consumer runs on a different goroutine than the
// engine's worker pool.
package events

import "github.com/jpl-au/igr/internal/model"

// Kind identifies the shape of an Event's payload.
type Kind int

const (
	ChangeSelection Kind = iota
	SearchFinished
	ReplaceFinished
	Progress
	Error
)

// Event is one notification sent on a Sink. Only the field matching Kind is
// meaningful; the rest are zero.
type Event struct {
	Kind   Kind
	Result model.SearchResult // SearchFinished
	Delta  int                // Progress
	Err    error              // Error
}

// Sink is the one-way channel from engine to UI named in spec §4.9.
type Sink chan Event

// Send delivers e without blocking. If the channel is unbuffered or full and
// nothing is currently receiving, the event is silently dropped — per spec
// §4.9, "dropped sends (no receiver) are ignored".
func (s Sink) Send(e Event) {
	if s == nil {
		return
	}
	select {
	case s <- e:
	default:
	}
}
