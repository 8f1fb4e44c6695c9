package vm

import (
	"github.com/retroenv/chip8emu/internal/display"
	"github.com/retroenv/chip8emu/internal/keypad"
	"github.com/retroenv/chip8emu/internal/memory"
)

const (
	// RegisterCount is the number of general purpose registers.
	RegisterCount = 16
	// StackDepth is the maximum number of nested subroutine calls.
	StackDepth = 16

	flagRegister = 0xF
)

// State contains all mutable state of the machine. It is only changed by
// instruction handlers and the 60 Hz timer tick.
type State struct {
	V     [RegisterCount]uint8 // V0-VF, VF doubles as flag register
	I     uint16               // index register, not bounds checked
	PC    uint16               // program counter
	SP    uint8                // number of used stack entries
	Stack [StackDepth]uint16   // return addresses

	Delay uint8 // delay timer, decremented at 60 Hz
	Sound uint8 // sound timer, decremented at 60 Hz, beeps while non zero

	Memory  *memory.Memory
	Display *display.Display
	Keypad  *keypad.Keypad

	// DrawFlag is set by instructions that change the display and
	// cleared by the host once it rendered the framebuffer.
	DrawFlag bool

	random func() uint8
}

func newState(mem *memory.Memory, random func() uint8) *State {
	return &State{
		PC:      memory.ProgramStart,
		Memory:  mem,
		Display: display.New(),
		Keypad:  keypad.New(),
		random:  random,
	}
}

// transitionKind defines how the program counter changes after an instruction.
type transitionKind int

const (
	stepNext transitionKind = iota
	stepSkip
	stepJump
)

type transition struct {
	kind   transitionKind
	target uint16
}

var (
	next = transition{kind: stepNext}
	skip = transition{kind: stepSkip}
)

func jump(address uint16) transition {
	return transition{kind: stepJump, target: address}
}

func skipIf(condition bool) transition {
	if condition {
		return skip
	}
	return next
}

// apply advances the program counter according to the transition.
func (s *State) apply(t transition) {
	switch t.kind {
	case stepNext:
		s.PC += opcodeSize
	case stepSkip:
		s.PC += 2 * opcodeSize
	case stepJump:
		s.PC = t.target
	}
}

func flag(condition bool) uint8 {
	if condition {
		return 1
	}
	return 0
}
