package events

import "testing"

func TestSendDeliversToReceiver(t *testing.T) {
	s := make(Sink, 1)
	s.Send(Event{Kind: Progress, Delta: 1})
	got := <-s
	if got.Kind != Progress || got.Delta != 1 {
		t.Errorf("got %+v", got)
	}
}

func TestSendDropsWhenNoReceiver(t *testing.T) {
	s := make(Sink) // unbuffered, nobody reading
	s.Send(Event{Kind: Error})
	// must not block or panic; nothing to assert beyond returning
}

func TestSendOnNilSinkIsNoop(t *testing.T) {
	var s Sink
	s.Send(Event{Kind: ReplaceFinished})
}
