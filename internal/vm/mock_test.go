package vm

import (
	"testing"
	"time"

	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1000, 0)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// program converts instruction words to ROM bytes.
func program(words ...uint16) []byte {
	rom := make([]byte, 0, 2*len(words))
	for _, w := range words {
		rom = append(rom, byte(w>>8), byte(w))
	}
	return rom
}

func newTestInterpreter(t *testing.T, words ...uint16) (*Interpreter, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	random := func() uint8 { return 0xFF }
	i, err := newInterpreter(log.NewTestLogger(t), program(words...), options.Interpreter{}, clock, random)
	assert.NoError(t, err)
	return i, clock
}

// steps executes n instructions and fails the test on the first error.
func steps(t *testing.T, i *Interpreter, n int) {
	t.Helper()
	for range n {
		assert.NoError(t, i.Step())
	}
}
