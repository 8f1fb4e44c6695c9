package window

import "time"

// RefreshRate is the highest rate in Hz at which frames are presented.
const RefreshRate = 60

// presenter coalesces render requests so that at most one frame per
// refresh interval is presented. Buffer swaps do not wait for the
// vertical blank, the interpreter loop would otherwise block on them.
type presenter struct {
	interval time.Duration
	now      func() time.Time

	last    time.Time
	pending bool
}

func newPresenter(rate int, now func() time.Time) presenter {
	return presenter{
		interval: time.Second / time.Duration(rate),
		now:      now,
	}
}

// request marks the latest framebuffer as not yet presented.
func (p *presenter) request() {
	p.pending = true
}

// due returns whether a pending frame should be presented now. A true
// result consumes the pending frame and starts a new interval.
func (p *presenter) due() bool {
	if !p.pending {
		return false
	}
	now := p.now()
	if !p.last.IsZero() && now.Sub(p.last) < p.interval {
		return false
	}
	p.last = now
	p.pending = false
	return true
}
