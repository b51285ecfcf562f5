package wire

import "time"

// Window is the coalescing window for outgoing events. Events pushed
// within the window of the first pending event travel in one batch.
const Window = 100 * time.Microsecond

// Batcher groups outgoing events into batches. It is not safe for
// concurrent use; callers push from a single loop.
type Batcher struct {
	window  time.Duration
	now     func() time.Time
	start   time.Time
	pending []Event
}

// NewBatcher returns a batcher with the default window.
func NewBatcher() *Batcher {
	return NewBatcherClock(Window, time.Now)
}

// NewBatcherClock allows tests to control the window and the clock.
func NewBatcherClock(window time.Duration, now func() time.Time) *Batcher {
	return &Batcher{window: window, now: now}
}

// Push adds an event to the pending batch. If the window elapsed since
// the first pending event, the pending batch is returned for sending and
// ev starts a fresh one; otherwise Push returns nil.
func (b *Batcher) Push(ev Event) []Event {
	if b.start.IsZero() {
		b.start = b.now()
		b.pending = append(b.pending, ev)
		return nil
	}
	if b.now().Sub(b.start) > b.window {
		batch := b.pending
		b.pending = []Event{ev}
		b.start = time.Time{}
		return batch
	}
	b.pending = append(b.pending, ev)
	return nil
}

// Flush returns whatever is pending, for shutdown or end-of-frame sends.
func (b *Batcher) Flush() []Event {
	batch := b.pending
	b.pending = nil
	b.start = time.Time{}
	return batch
}
