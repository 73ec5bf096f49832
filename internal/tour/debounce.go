package tour

import (
	"sync"
	"time"
)

// DefaultTransitionDelay is how long the outgoing callout gets to animate
// off-screen before the next step is shown.
const DefaultTransitionDelay = 250 * time.Millisecond

// Debouncer schedules a single pending continuation. Triggering while a
// previous continuation is pending replaces it, so the newest request wins
// and a rapid double-press cannot fire two transitions.
type Debouncer struct {
	mu       sync.Mutex
	duration time.Duration
	timer    *time.Timer
}

// NewDebouncer creates a debouncer with the given delay. A non-positive
// delay falls back to DefaultTransitionDelay.
func NewDebouncer(duration time.Duration) *Debouncer {
	if duration <= 0 {
		duration = DefaultTransitionDelay
	}
	return &Debouncer{duration: duration}
}

// Trigger schedules fn to run after the debounce delay, cancelling any
// previously scheduled continuation.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, fn)
}

// Cancel invalidates any pending continuation.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Duration returns the configured delay.
func (d *Debouncer) Duration() time.Duration {
	return d.duration
}
