// Package emulator runs the host loop that connects the interpreter with
// a frontend and the audio output.
package emulator

import (
	"context"
	"fmt"
	"time"

	"github.com/retroenv/chip8emu/internal/display"
	"github.com/retroenv/retrogolib/log"
)

// DefaultPollInterval is the pause between two iterations of the host loop.
// It is well below the instruction period so the interpreter clocks decide
// the execution speed.
const DefaultPollInterval = 500 * time.Microsecond

// Interpreter is the CHIP-8 machine driven by the host loop.
type Interpreter interface {
	Tick() error
	UpdateKeypad(code uint8, pressed bool)
	Display() *display.Display
	DrawFlag() bool
	ClearDrawFlag()
	Beep() bool
}

// Frontend shows the framebuffer and reports key transitions.
type Frontend interface {
	// Poll forwards pending key transitions to the handler and returns
	// false when the user closed the frontend.
	Poll(handler func(code uint8, pressed bool)) bool
	Render(d *display.Display) error
	Close() error
}

// Beeper plays the tone while the beep flag is set.
type Beeper interface {
	SetTone(on bool)
	Close() error
}

// Emulator owns the host loop.
type Emulator struct {
	logger   *log.Logger
	vm       Interpreter
	frontend Frontend
	beeper   Beeper

	pollInterval time.Duration
	frames       int
}

// New returns an emulator for the given components.
func New(logger *log.Logger, vm Interpreter, frontend Frontend, beeper Beeper) *Emulator {
	return &Emulator{
		logger:       logger,
		vm:           vm,
		frontend:     frontend,
		beeper:       beeper,
		pollInterval: DefaultPollInterval,
	}
}

// Run executes the host loop until the frontend is closed, the context is
// cancelled or the interpreter fails. Key transitions are forwarded before
// the tick of the same iteration so they affect it. Frontend and beeper
// are closed when Run returns.
func (e *Emulator) Run(ctx context.Context) (err error) {
	defer func() {
		if cerr := e.beeper.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing audio: %w", cerr)
		}
		if cerr := e.frontend.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing frontend: %w", cerr)
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		open, err := e.iterate()
		if err != nil {
			e.beeper.SetTone(false)
			return err
		}
		if !open {
			e.logger.Debug("Frontend closed", log.Int("frames", e.frames))
			e.beeper.SetTone(false)
			return nil
		}

		if e.pollInterval > 0 {
			time.Sleep(e.pollInterval)
		}
	}
}

// iterate runs one iteration of the host loop and returns whether the
// frontend is still open.
func (e *Emulator) iterate() (bool, error) {
	if !e.frontend.Poll(e.vm.UpdateKeypad) {
		return false, nil
	}

	if err := e.vm.Tick(); err != nil {
		return false, fmt.Errorf("running interpreter: %w", err)
	}

	e.beeper.SetTone(e.vm.Beep())

	if e.vm.DrawFlag() {
		if err := e.frontend.Render(e.vm.Display()); err != nil {
			return false, fmt.Errorf("rendering display: %w", err)
		}
		e.vm.ClearDrawFlag()
		e.frames++
	}
	return true, nil
}

// Frames returns the number of rendered frames.
func (e *Emulator) Frames() int {
	return e.frames
}
