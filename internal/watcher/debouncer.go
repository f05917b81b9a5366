package watcher

import (
	"context"
	"sync"
	"time"
)

// Debouncer collapses rapid changes into one event. The event delivered
// is the last one received, except that a document which reappears after
// being removed within the same burst is reported as modified.
type Debouncer struct {
	delay   time.Duration
	events  chan ChangeEvent
	output  chan ChangeEvent
	timer   *time.Timer
	pending []ChangeEvent
	mutex   sync.Mutex
}

// NewDebouncer creates a debouncer that waits delay after the last event.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{
		delay:  delay,
		events: make(chan ChangeEvent, 100),
		output: make(chan ChangeEvent, 10),
	}
}

// Output delivers debounced events.
func (d *Debouncer) Output() <-chan ChangeEvent {
	return d.output
}

func (d *Debouncer) push(event ChangeEvent) {
	select {
	case d.events <- event:
	default:
		// Channel full; the pending burst already guarantees a flush.
	}
}

func (d *Debouncer) start(ctx context.Context, done <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case event := <-d.events:
			d.addEvent(event)
		}
	}
}

func (d *Debouncer) addEvent(event ChangeEvent) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.pending = append(d.pending, event)

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.delay, d.flush)
}

func (d *Debouncer) stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = d.pending[:0]
}

func (d *Debouncer) flush() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if len(d.pending) == 0 {
		return
	}

	event := coalesce(d.pending)

	select {
	case d.output <- event:
	default:
		// Channel full, skip
	}

	d.pending = d.pending[:0]
}

func coalesce(events []ChangeEvent) ChangeEvent {
	last := events[len(events)-1]
	if last.Type != EventTypeCreated {
		return last
	}
	for _, e := range events[:len(events)-1] {
		if e.Type == EventTypeDeleted || e.Type == EventTypeRenamed {
			last.Type = EventTypeModified
			break
		}
	}
	return last
}
