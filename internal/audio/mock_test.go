package audio

import "errors"

var errQueue = errors.New("queue failed")

// mockDevice records the calls of the beeper. Queued samples are never
// consumed unless the test drains them.
type mockDevice struct {
	queued   []byte
	paused   bool
	cleared  int
	closed   bool
	queueErr bool
}

func newMockDevice() *mockDevice {
	return &mockDevice{paused: true}
}

func (d *mockDevice) Queue(samples []byte) error {
	if d.queueErr {
		return errQueue
	}
	d.queued = append(d.queued, samples...)
	return nil
}

func (d *mockDevice) Queued() int {
	return len(d.queued)
}

func (d *mockDevice) Pause(paused bool) {
	d.paused = paused
}

func (d *mockDevice) Clear() {
	d.queued = nil
	d.cleared++
}

func (d *mockDevice) Close() {
	d.closed = true
}

// drain simulates playback of n samples.
func (d *mockDevice) drain(n int) {
	d.queued = d.queued[min(n, len(d.queued)):]
}
