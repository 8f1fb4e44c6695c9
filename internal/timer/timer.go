// Package timer implements a real-time accumulator that signals when a
// fixed period of wall-clock time has elapsed.
package timer

import "time"

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock is a Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Timer accumulates elapsed time between updates and reports readiness
// once the accumulated time reaches the threshold.
type Timer struct {
	clock     Clock
	threshold time.Duration

	last        time.Time
	accumulated time.Duration
}

// New returns a timer that becomes ready after threshold has elapsed.
// A nil clock uses the system clock.
func New(threshold time.Duration, clock Clock) *Timer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Timer{
		clock:     clock,
		threshold: threshold,
		last:      clock.Now(),
	}
}

// Period returns the duration of one cycle of the given frequency in hertz.
func Period(hz int) time.Duration {
	if hz <= 0 {
		return 0
	}
	return time.Second / time.Duration(hz)
}

// Update adds the wall-clock time elapsed since the previous update or
// reset to the accumulator.
func (t *Timer) Update() {
	now := t.clock.Now()
	t.accumulated += now.Sub(t.last)
	t.last = now
}

// Ready returns whether the accumulated time reached the threshold.
func (t *Timer) Ready() bool {
	return t.accumulated >= t.threshold
}

// Reset zeroes the accumulator and restarts the reference time.
// Time accumulated beyond the threshold is dropped, a host that ticks
// too slowly runs slower than nominal instead of catching up.
func (t *Timer) Reset() {
	t.accumulated = 0
	t.last = t.clock.Now()
}

// Accumulated returns the time accumulated since the last reset.
func (t *Timer) Accumulated() time.Duration {
	return t.accumulated
}

// Threshold returns the configured threshold.
func (t *Timer) Threshold() time.Duration {
	return t.threshold
}
