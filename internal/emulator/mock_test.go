package emulator

import (
	"context"
	"errors"

	"github.com/retroenv/chip8emu/internal/display"
)

var errTick = errors.New("tick failed")

type keyEvent struct {
	code    uint8
	pressed bool
}

// mockInterpreter records keypad updates and the order of calls.
type mockInterpreter struct {
	display  *display.Display
	calls    []string
	keys     []keyEvent
	drawFlag bool
	beep     bool
	tickErr  error
	onTick   func()
}

func newMockInterpreter() *mockInterpreter {
	return &mockInterpreter{display: display.New()}
}

func (m *mockInterpreter) Tick() error {
	m.calls = append(m.calls, "tick")
	if m.onTick != nil {
		m.onTick()
	}
	return m.tickErr
}

func (m *mockInterpreter) UpdateKeypad(code uint8, pressed bool) {
	m.calls = append(m.calls, "key")
	m.keys = append(m.keys, keyEvent{code: code, pressed: pressed})
}

func (m *mockInterpreter) Display() *display.Display { return m.display }
func (m *mockInterpreter) DrawFlag() bool            { return m.drawFlag }
func (m *mockInterpreter) ClearDrawFlag()            { m.drawFlag = false }
func (m *mockInterpreter) Beep() bool                { return m.beep }

// mockFrontend replays scripted key events and stays open for a fixed
// number of polls.
type mockFrontend struct {
	polls     int
	maxPolls  int
	events    map[int][]keyEvent // key events per poll
	rendered  int
	renderErr error
	closed    bool
	cancel    context.CancelFunc // called on the poll with index cancelAt
	cancelAt  int
}

func (m *mockFrontend) Poll(handler func(code uint8, pressed bool)) bool {
	poll := m.polls
	m.polls++
	if m.cancel != nil && poll == m.cancelAt {
		m.cancel()
	}
	if poll >= m.maxPolls {
		return false
	}
	for _, ev := range m.events[poll] {
		handler(ev.code, ev.pressed)
	}
	return true
}

func (m *mockFrontend) Render(*display.Display) error {
	m.rendered++
	return m.renderErr
}

func (m *mockFrontend) Close() error {
	m.closed = true
	return nil
}

type mockBeeper struct {
	tones  []bool
	closed bool
}

func (m *mockBeeper) SetTone(on bool) {
	m.tones = append(m.tones, on)
}

func (m *mockBeeper) Close() error {
	m.closed = true
	return nil
}
