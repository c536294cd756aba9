package interact

import "time"

// Debouncer delays a value until no newer value arrives for the delay.
//
// It is driven from a select loop: arm it with Schedule, wait on C, and
// collect the value with Fire. Scheduling again cancels the pending timer
// before arming a new one, so only the last value is ever delivered.
// A Debouncer is not safe for concurrent use.
type Debouncer[T any] struct {
	delay time.Duration
	clock Clock

	timer   Timer
	pending T
}

// NewDebouncer returns a debouncer. A nil clock uses SystemClock.
func NewDebouncer[T any](delay time.Duration, clock Clock) *Debouncer[T] {
	if clock == nil {
		clock = SystemClock
	}
	return &Debouncer[T]{delay: delay, clock: clock}
}

// Schedule replaces any pending value with v and restarts the delay.
func (d *Debouncer[T]) Schedule(v T) {
	d.Cancel()
	d.pending = v
	d.timer = d.clock.NewTimer(d.delay)
}

// C returns the channel of the pending timer, or nil when idle. A nil
// channel blocks forever in a select, which is what an idle debouncer
// should do.
func (d *Debouncer[T]) C() <-chan time.Time {
	if d.timer == nil {
		return nil
	}
	return d.timer.C()
}

// Fire takes the pending value after C delivered. ok is false when
// nothing was pending.
func (d *Debouncer[T]) Fire() (v T, ok bool) {
	if d.timer == nil {
		return v, false
	}
	v = d.pending
	d.timer = nil
	var zero T
	d.pending = zero
	return v, true
}

// Flush stops the pending timer and returns its value without waiting.
func (d *Debouncer[T]) Flush() (v T, ok bool) {
	if d.timer == nil {
		return v, false
	}
	d.timer.Stop()
	return d.Fire()
}

// Pending reports whether a value is waiting.
func (d *Debouncer[T]) Pending() bool { return d.timer != nil }

// Cancel drops the pending value and releases its timer.
func (d *Debouncer[T]) Cancel() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	var zero T
	d.pending = zero
}
