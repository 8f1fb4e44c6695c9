// Package options contains the program options.
package options

import (
	"strings"
)

// Supported frontends.
const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
)

// Default settings.
const (
	DefaultClockRate = 500 // instructions per second
	DefaultScale     = 10
	DefaultColor     = "33ff66"
)

// Parameters contains file path options.
type Parameters struct {
	Input string // ROM file to run
}

// Flags contains behavior options.
type Flags struct {
	Frontend string // frontend used to display the framebuffer and read keys
	Disasm   bool   // print a listing of the ROM instead of running it
	Mute     bool   // do not open an audio device
	Trace    bool   // log every executed instruction
	Debug    bool   // enable debug logging
	Quiet    bool   // only log errors
}

// DisplayFlags contains output options of the frontends.
type DisplayFlags struct {
	ClockRate int    // instructions executed per second
	Scale     int    // window pixels per CHIP-8 pixel
	Color     string // pixel color as RRGGBB hex string
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	DisplayFlags
}

// Interpreter defines options to control the interpreter.
type Interpreter struct {
	ClockRate int  // instructions executed per second
	Trace     bool // log every executed instruction at debug level
}

// NewProgram returns program options initialized with default values.
func NewProgram() Program {
	return Program{
		Flags: Flags{
			Frontend: FrontendWindow,
		},
		DisplayFlags: DisplayFlags{
			ClockRate: DefaultClockRate,
			Scale:     DefaultScale,
			Color:     DefaultColor,
		},
	}
}

// NewInterpreter returns the interpreter options derived from the program options.
func NewInterpreter(opts Program) Interpreter {
	clockRate := opts.ClockRate
	if clockRate <= 0 {
		clockRate = DefaultClockRate
	}
	return Interpreter{
		ClockRate: clockRate,
		Trace:     opts.Trace,
	}
}

// NormalizeFrontend returns the canonical frontend name.
func NormalizeFrontend(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "gl", "glfw":
		return FrontendWindow
	case "term", "tty":
		return FrontendTerminal
	}
	return name
}
