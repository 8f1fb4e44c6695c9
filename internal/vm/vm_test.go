package vm

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/chip8emu/internal/memory"
	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/chip8emu/internal/timer"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestNew(t *testing.T) {
	i, err := New(log.NewTestLogger(t), program(0x6A05), options.Interpreter{})
	assert.NoError(t, err)

	s := i.State()
	assert.Equal(t, uint16(memory.ProgramStart), s.PC)
	assert.Equal(t, uint8(0), s.SP)
	assert.Equal(t, byte(0x6A), s.Memory.Read(0x200))
	assert.Equal(t, byte(0x05), s.Memory.Read(0x201))
	assert.Equal(t, byte(0xF0), s.Memory.Read(0x000))
	assert.Equal(t, timer.Period(options.DefaultClockRate), i.clock.Threshold())
	assert.False(t, i.DrawFlag())
	assert.False(t, i.Beep())
}

func TestNew_RomTooLarge(t *testing.T) {
	rom := make([]byte, memory.MaxProgramSize+1)
	_, err := New(log.NewTestLogger(t), rom, options.Interpreter{})
	assert.True(t, errors.Is(err, memory.ErrRomTooLarge))
}

func TestStep_LoadImmediate(t *testing.T) {
	i, _ := newTestInterpreter(t, 0x6A05)
	steps(t, i, 1)

	s := i.State()
	assert.Equal(t, uint8(5), s.V[0xA])
	assert.Equal(t, uint16(0x202), s.PC)
}

func TestStep_UnsupportedOpcode(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
	}{
		{"sys call", 0x0123},
		{"zero word", 0x0000},
		{"5xy1", 0x5121},
		{"8xy8", 0x8128},
		{"9xy1", 0x9121},
		{"Ex00", 0xE100},
		{"FxFF", 0xF1FF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, _ := newTestInterpreter(t, tt.opcode)
			err := i.Step()
			assert.True(t, errors.Is(err, ErrUnsupportedOpcode))
			assert.Equal(t, uint16(0x200), i.State().PC)
		})
	}
}

func TestStep_CallReturn(t *testing.T) {
	// 200: CALL 206
	// 202: LD V0, 01
	// 204: JP 204
	// 206: LD V1, 02
	// 208: RET
	i, _ := newTestInterpreter(t, 0x2206, 0x6001, 0x1204, 0x6102, 0x00EE)
	s := i.State()

	steps(t, i, 1)
	assert.Equal(t, uint16(0x206), s.PC)
	assert.Equal(t, uint8(1), s.SP)
	assert.Equal(t, uint16(0x202), s.Stack[0])

	steps(t, i, 2)
	assert.Equal(t, uint16(0x202), s.PC)
	assert.Equal(t, uint8(0), s.SP)
	assert.Equal(t, uint8(2), s.V[1])

	steps(t, i, 2)
	assert.Equal(t, uint16(0x204), s.PC)
	assert.Equal(t, uint8(1), s.V[0])
}

func TestStep_StackOverflow(t *testing.T) {
	i, _ := newTestInterpreter(t, 0x2200)
	steps(t, i, StackDepth)

	s := i.State()
	assert.Equal(t, uint8(StackDepth), s.SP)

	err := i.Step()
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.Equal(t, uint8(StackDepth), s.SP)
	assert.Equal(t, uint16(0x200), s.PC)
}

func TestStep_StackUnderflow(t *testing.T) {
	i, _ := newTestInterpreter(t, 0x00EE)

	err := i.Step()
	assert.True(t, errors.Is(err, ErrStackUnderflow))

	s := i.State()
	assert.Equal(t, uint8(0), s.SP)
	assert.Equal(t, uint16(0x200), s.PC)
}

func TestTick_ExecutesOneInstructionPerReadyClock(t *testing.T) {
	i, clock := newTestInterpreter(t, 0x7001, 0x7001, 0x7001, 0x7001)
	s := i.State()

	assert.NoError(t, i.Tick())
	assert.Equal(t, uint16(0x200), s.PC)

	clock.advance(timer.Period(options.DefaultClockRate) / 2)
	assert.NoError(t, i.Tick())
	assert.Equal(t, uint16(0x200), s.PC)

	clock.advance(timer.Period(options.DefaultClockRate) / 2)
	assert.NoError(t, i.Tick())
	assert.Equal(t, uint16(0x202), s.PC)

	// a long pause does not execute the missed instructions
	clock.advance(10 * timer.Period(options.DefaultClockRate))
	assert.NoError(t, i.Tick())
	assert.Equal(t, uint16(0x204), s.PC)
	assert.Equal(t, uint8(2), s.V[0])
}

func TestTick_Timers(t *testing.T) {
	i, clock := newTestInterpreter(t, 0x1200)
	s := i.State()
	s.Delay = 3
	s.Sound = 2

	frame := timer.Period(FrameRate)
	cycle := timer.Period(options.DefaultClockRate)

	// many instruction cycles within one frame window do not touch the timers
	for range 8 {
		clock.advance(cycle)
		assert.NoError(t, i.Tick())
	}
	assert.Equal(t, uint8(3), s.Delay)
	assert.Equal(t, uint8(2), s.Sound)
	assert.False(t, i.Beep())

	clock.advance(frame - 8*cycle)
	assert.NoError(t, i.Tick())
	assert.Equal(t, uint8(2), s.Delay)
	assert.Equal(t, uint8(1), s.Sound)
	assert.True(t, i.Beep())

	clock.advance(frame)
	assert.NoError(t, i.Tick())
	assert.Equal(t, uint8(1), s.Delay)
	assert.Equal(t, uint8(0), s.Sound)
	assert.True(t, i.Beep())

	clock.advance(frame)
	assert.NoError(t, i.Tick())
	assert.Equal(t, uint8(0), s.Delay)
	assert.Equal(t, uint8(0), s.Sound)
	assert.False(t, i.Beep())

	// timers stop at zero
	clock.advance(frame)
	assert.NoError(t, i.Tick())
	assert.Equal(t, uint8(0), s.Delay)
	assert.Equal(t, uint8(0), s.Sound)
}

func TestTick_ReturnsStepError(t *testing.T) {
	i, clock := newTestInterpreter(t, 0x00EE)

	clock.advance(timer.Period(options.DefaultClockRate))
	err := i.Tick()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
}

func TestDrawFlag(t *testing.T) {
	i, _ := newTestInterpreter(t, 0x00E0)
	assert.False(t, i.DrawFlag())

	steps(t, i, 1)
	assert.True(t, i.DrawFlag())

	i.ClearDrawFlag()
	assert.False(t, i.DrawFlag())
}

func TestTrace(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		trace bool
		want  bool
	}{
		{"trace level", log.TraceLevel, true, true},
		{"debug level", log.DebugLevel, true, false},
		{"tracing disabled", log.TraceLevel, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := log.NewWithConfig(log.Config{
				Level:      tt.level,
				Output:     &buf,
				TimeFormat: "-",
			})
			random := func() uint8 { return 0 }
			i, err := newInterpreter(logger, program(0x6A05), options.Interpreter{Trace: tt.trace}, newFakeClock(), random)
			assert.NoError(t, err)
			assert.NoError(t, i.Step())
			assert.Equal(t, uint8(5), i.State().V[0xA])

			out := buf.String()
			assert.Equal(t, tt.want, strings.Contains(out, "Executing instruction"))
			if tt.want {
				assert.Contains(t, out, "TRACE")
				assert.Contains(t, out, "ld VA, $05")
			}
		})
	}
}
