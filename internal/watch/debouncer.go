package watch

import (
	"log/slog"
	"sync"
	"time"
)

// Debouncer coalesces a burst of file events into a single callback
// invocation. Editors often emit several writes per save; the callback
// fires once after the quiet interval, with the most recent path and
// the number of events the burst absorbed.
type Debouncer struct {
	interval time.Duration
	callback func(path string, events int)

	mu       sync.Mutex
	timer    *time.Timer
	lastPath string
	pending  int
}

// NewDebouncer creates a debouncer that waits for interval of quiet
// before firing callback.
func NewDebouncer(interval time.Duration, callback func(path string, events int)) *Debouncer {
	return &Debouncer{
		interval: interval,
		callback: callback,
	}
}

// Trigger records an event for the given path and restarts the quiet
// timer. The callback fires once the interval passes without another
// Trigger call.
func (d *Debouncer) Trigger(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.lastPath = path
	d.pending++

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.interval, d.fire)
}

// fire drains the accumulated burst and invokes the callback outside
// the lock. A timer that lost the race against a newer Trigger finds
// an empty burst and does nothing.
func (d *Debouncer) fire() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("debouncer callback panicked", slog.Any("error", r))
		}
	}()

	d.mu.Lock()
	path := d.lastPath
	events := d.pending
	d.pending = 0
	d.mu.Unlock()

	if events == 0 {
		return
	}

	d.callback(path, events)
}

// Stop cancels any pending callback and discards the accumulated burst.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	d.pending = 0
}
