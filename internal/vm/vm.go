// Package vm implements the CHIP-8 interpreter: the machine state, the
// instruction decoder and the clock driven execution.
package vm

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/retroenv/chip8emu/internal/disasm"
	"github.com/retroenv/chip8emu/internal/display"
	"github.com/retroenv/chip8emu/internal/memory"
	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/chip8emu/internal/timer"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/log"
)

// FrameRate is the rate of the delay and sound timers in Hz.
const FrameRate = 60

var (
	// ErrUnsupportedOpcode is returned for instruction words that match no instruction.
	ErrUnsupportedOpcode = errors.New("unsupported opcode")
	// ErrStackOverflow is returned when a call is made with a full stack.
	ErrStackOverflow = chip8.ErrStackOverflow
	// ErrStackUnderflow is returned when a return is made with an empty stack.
	ErrStackUnderflow = chip8.ErrStackUnderflow
)

// Interpreter executes a CHIP-8 program. It is not safe for concurrent use,
// the host drives it from a single loop.
type Interpreter struct {
	logger *log.Logger
	opts   options.Interpreter
	state  *State

	clock *timer.Timer // instruction clock
	frame *timer.Timer // 60 Hz delay and sound timer clock

	beep bool
}

// New returns an interpreter with the ROM loaded at the program start address.
func New(logger *log.Logger, rom []byte, opts options.Interpreter) (*Interpreter, error) {
	return newInterpreter(logger, rom, opts, timer.SystemClock{}, randomByte)
}

func newInterpreter(logger *log.Logger, rom []byte, opts options.Interpreter,
	clock timer.Clock, random func() uint8) (*Interpreter, error) {
	if opts.ClockRate <= 0 {
		opts.ClockRate = options.DefaultClockRate
	}

	mem := memory.New()
	if err := mem.Load(rom); err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}

	return &Interpreter{
		logger: logger,
		opts:   opts,
		state:  newState(mem, random),
		clock:  timer.New(timer.Period(opts.ClockRate), clock),
		frame:  timer.New(timer.Period(FrameRate), clock),
	}, nil
}

func randomByte() uint8 {
	return uint8(rand.IntN(256))
}

// Tick advances both clocks by the time elapsed since the last call. When
// the instruction clock is due, exactly one instruction is executed. When
// the frame clock is due, the delay and sound timers are decremented.
// Time beyond a single period is discarded.
func (i *Interpreter) Tick() error {
	i.clock.Update()
	i.frame.Update()

	if i.clock.Ready() {
		err := i.Step()
		i.clock.Reset()
		if err != nil {
			return err
		}
	}

	if i.frame.Ready() {
		i.tickTimers()
		i.frame.Reset()
	}
	return nil
}

// Step fetches, decodes and executes the instruction at the program counter.
// On error the machine state is left unchanged.
func (i *Interpreter) Step() error {
	s := i.state
	pc := s.PC
	op := Opcode(s.Memory.ReadWord(pc))

	ins, ok := decode(op)
	if !ok {
		return fmt.Errorf("%w 0x%s at address 0x%03X", ErrUnsupportedOpcode, op, pc)
	}

	if i.opts.Trace {
		i.logger.Trace("Executing instruction",
			log.Hex("address", pc),
			log.Stringer("opcode", op),
			log.String("instruction", disasm.FormatOpcode(ins.Opcode, uint16(op))),
		)
	}

	t, err := ins.handler(s, op)
	if err != nil {
		return fmt.Errorf("executing %s at address 0x%03X: %w", ins.name(), pc, err)
	}
	s.apply(t)
	return nil
}

// tickTimers decrements the non zero delay and sound timers. The beep
// flag reflects the sound timer of the frame that just started.
func (i *Interpreter) tickTimers() {
	s := i.state
	i.beep = s.Sound > 0
	if s.Delay > 0 {
		s.Delay--
	}
	if s.Sound > 0 {
		s.Sound--
	}
}

// UpdateKeypad forwards a key transition of the host to the keypad.
func (i *Interpreter) UpdateKeypad(code uint8, pressed bool) {
	i.state.Keypad.Update(code, pressed)
}

// Display returns the framebuffer.
func (i *Interpreter) Display() *display.Display {
	return i.state.Display
}

// DrawFlag returns whether the framebuffer changed since it was last cleared.
func (i *Interpreter) DrawFlag() bool {
	return i.state.DrawFlag
}

// ClearDrawFlag resets the draw flag after the host rendered the framebuffer.
func (i *Interpreter) ClearDrawFlag() {
	i.state.DrawFlag = false
}

// Beep returns whether the tone should be audible. It is updated once per
// frame tick.
func (i *Interpreter) Beep() bool {
	return i.beep
}

// State returns the machine state.
func (i *Interpreter) State() *State {
	return i.state
}
