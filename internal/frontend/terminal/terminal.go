// Package terminal implements a frontend that draws the framebuffer with
// block characters in a terminal and reads the keypad from the keyboard.
package terminal

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/retroenv/chip8emu/internal/display"
	"github.com/retroenv/chip8emu/internal/keymap"
	"github.com/retroenv/chip8emu/internal/keypad"
	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// HoldTime is how long a key counts as pressed after its last key event.
// Terminals only report key presses and repeats, so releases are
// synthesized once a key was not repeated for this duration.
const HoldTime = 100 * time.Millisecond

// Terminal is the tcell frontend. Two framebuffer rows share one
// character cell, so the screen needs 64x16 cells.
type Terminal struct {
	logger *log.Logger
	screen tcell.Screen
	style  tcell.Style
	now    func() time.Time

	pressed   [keypad.Keys]bool
	pressedAt [keypad.Keys]time.Time
	closed    bool
}

// New initializes the terminal screen.
func New(logger *log.Logger, opts options.Program) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	return newTerminal(logger, screen, opts.Color, time.Now)
}

func newTerminal(logger *log.Logger, screen tcell.Screen, color string, now func() time.Time) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}

	style := tcell.StyleDefault.Background(tcell.ColorBlack)
	if c := tcell.GetColor("#" + color); c != tcell.ColorDefault {
		style = style.Foreground(c)
	}

	screen.Clear()
	return &Terminal{
		logger: logger,
		screen: screen,
		style:  style,
		now:    now,
	}, nil
}

// Poll processes all pending terminal events without blocking, forwards
// keypad transitions to the handler and returns false once the user asked
// to quit with Escape or Ctrl+C.
func (t *Terminal) Poll(handler func(code uint8, pressed bool)) bool {
	now := t.now()

	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.handleKey(ev, now, handler)
		case *tcell.EventResize:
			t.screen.Sync()
		case nil:
			t.closed = true
		}
	}

	for code := range t.pressed {
		if t.pressed[code] && now.Sub(t.pressedAt[code]) >= HoldTime {
			t.pressed[code] = false
			handler(uint8(code), false)
		}
	}
	return !t.closed
}

func (t *Terminal) handleKey(ev *tcell.EventKey, now time.Time, handler func(code uint8, pressed bool)) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.closed = true
		return
	case tcell.KeyRune:
	default:
		return
	}

	code, ok := keymap.Lookup(ev.Rune())
	if !ok {
		return
	}

	// a repeated key only extends the hold time
	t.pressedAt[code] = now
	if !t.pressed[code] {
		t.pressed[code] = true
		handler(code, true)
	}
}

// Render draws the framebuffer using half block characters.
func (t *Terminal) Render(d *display.Display) error {
	for cy := range display.Height / 2 {
		for x := range display.Width {
			r := cellRune(d.Pixel(x, 2*cy), d.Pixel(x, 2*cy+1))
			t.screen.SetContent(x, cy, r, nil, t.style)
		}
	}
	t.screen.Show()
	return nil
}

// Beep rings the terminal bell. The terminal has no way to play a
// continuous tone, so the bell is rung when the tone starts.
func (t *Terminal) Beep() error {
	if err := t.screen.Beep(); err != nil {
		return fmt.Errorf("ringing bell: %w", err)
	}
	return nil
}

// Close restores the terminal.
func (t *Terminal) Close() error {
	t.screen.Fini()
	return nil
}

func cellRune(top, bottom uint8) rune {
	switch {
	case top != 0 && bottom != 0:
		return tcell.RuneBlock
	case top != 0:
		return '▀'
	case bottom != 0:
		return '▄'
	default:
		return ' '
	}
}
