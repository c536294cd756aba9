package interact

import (
	"testing"
	"time"
)

func TestDebouncerDeliversLastValue(t *testing.T) {
	clock := NewManualClock()
	d := NewDebouncer[int](100*time.Millisecond, clock)

	if d.C() != nil {
		t.Fatal("idle debouncer must have a nil channel")
	}

	d.Schedule(1)
	clock.Advance(60 * time.Millisecond)
	d.Schedule(2) // cancels the first timer
	clock.Advance(60 * time.Millisecond)

	select {
	case <-d.C():
		t.Fatal("fired before the delay elapsed since the last schedule")
	default:
	}
	if clock.Pending() != 1 {
		t.Errorf("armed timers = %d, want 1", clock.Pending())
	}

	clock.Advance(40 * time.Millisecond)
	select {
	case <-d.C():
	default:
		t.Fatal("did not fire after the delay")
	}
	v, ok := d.Fire()
	if !ok || v != 2 {
		t.Errorf("Fire = %v, %v; want 2, true", v, ok)
	}
	if d.Pending() {
		t.Error("still pending after Fire")
	}
}

func TestDebouncerCancelReleasesTimer(t *testing.T) {
	clock := NewManualClock()
	d := NewDebouncer[string](time.Second, clock)
	d.Schedule("resize")
	d.Cancel()

	if clock.Pending() != 0 {
		t.Errorf("armed timers = %d after Cancel", clock.Pending())
	}
	if _, ok := d.Fire(); ok {
		t.Error("Fire after Cancel returned a value")
	}
}

func TestDebouncerFlush(t *testing.T) {
	clock := NewManualClock()
	d := NewDebouncer[int](time.Second, clock)
	d.Schedule(7)

	v, ok := d.Flush()
	if !ok || v != 7 {
		t.Errorf("Flush = %v, %v; want 7, true", v, ok)
	}
	if clock.Pending() != 0 || d.Pending() {
		t.Error("Flush must release the timer")
	}
	if _, ok := d.Flush(); ok {
		t.Error("second Flush returned a value")
	}
}
