// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/chip8emu/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	return parseArgs(os.Args)
}

func parseArgs(arguments []string) (options.Program, error) {
	flags := flag.NewFlagSet(arguments[0], flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	opts := options.NewProgram()
	readOptionFlags(flags, &opts)

	err := flags.Parse(arguments[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		msg := ""
		if err != nil {
			msg = err.Error()
		}
		return opts, &UsageError{flags: flags, msg: msg}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	opts.Input = args[0]
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: chip8emu [options] <ROM file to run>\n\n")
	if e.flags != nil {
		e.flags.SetOutput(os.Stdout)
		e.flags.PrintDefaults()
	}
	fmt.Println()
	fmt.Println("keypad:  1 2 3 4 / Q W E R / A S D F / Z X C V, quit with Escape")
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = options.NormalizeFrontend(opts.Frontend)
	validFrontends := []string{options.FrontendWindow, options.FrontendTerminal}
	valid := false
	for _, frontend := range validFrontends {
		if opts.Frontend == frontend {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(validFrontends, ", "))
	}

	if opts.ClockRate <= 0 {
		return fmt.Errorf("invalid clock rate %d, must be positive", opts.ClockRate)
	}
	if opts.Scale <= 0 {
		return fmt.Errorf("invalid scale %d, must be positive", opts.Scale)
	}
	opts.Color = strings.TrimPrefix(strings.ToLower(opts.Color), "#")
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Frontend, "frontend", opts.Frontend, "frontend to use (window, terminal)")
	flags.IntVar(&opts.ClockRate, "clock", opts.ClockRate, "instructions executed per second")
	flags.IntVar(&opts.Scale, "scale", opts.Scale, "window pixels per CHIP-8 pixel")
	flags.StringVar(&opts.Color, "color", opts.Color, "pixel color as RRGGBB hex value")
	flags.BoolVar(&opts.Mute, "mute", false, "disable sound")
	flags.BoolVar(&opts.Disasm, "disasm", false, "print a disassembly listing of the ROM instead of running it")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
