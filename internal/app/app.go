// Package app wires the emulator components together for the command line program.
package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/chip8emu/internal/audio"
	"github.com/retroenv/chip8emu/internal/disasm"
	"github.com/retroenv/chip8emu/internal/emulator"
	"github.com/retroenv/chip8emu/internal/frontend/terminal"
	"github.com/retroenv/chip8emu/internal/frontend/window"
	"github.com/retroenv/chip8emu/internal/loader"
	"github.com/retroenv/chip8emu/internal/memory"
	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/chip8emu/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner logs the program name and version.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("chip8emu", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

// PrintInfo logs information about the loaded ROM.
func PrintInfo(logger *log.Logger, opts options.Program, rom []byte) {
	if opts.Quiet {
		return
	}

	logger.Info("Loaded CHIP-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", len(rom)),
	)
	if !opts.Disasm {
		logger.Info("Starting emulation",
			log.String("frontend", opts.Frontend),
			log.Int("clock", opts.ClockRate),
		)
	}
}

// Run loads the ROM and either writes its listing to out or runs it until
// the frontend is closed or the context is cancelled.
func Run(ctx context.Context, logger *log.Logger, opts options.Program, out io.Writer) error {
	rom, err := loader.New().Load(opts.Input)
	if err != nil {
		return err
	}
	PrintInfo(logger, opts, rom)

	if opts.Disasm {
		if err := disasm.Listing(out, rom, memory.ProgramStart); err != nil {
			return fmt.Errorf("disassembling: %w", err)
		}
		return nil
	}

	interp, err := vm.New(logger, rom, options.NewInterpreter(opts))
	if err != nil {
		return fmt.Errorf("creating interpreter: %w", err)
	}

	frontend, beeper, err := createFrontend(logger, opts)
	if err != nil {
		return err
	}

	emu := emulator.New(logger, interp, frontend, beeper)
	if err := emu.Run(ctx); err != nil {
		return fmt.Errorf("emulating: %w", err)
	}
	return nil
}

// createFrontend opens the selected frontend and the audio output. Without
// a working audio device the terminal falls back to its bell.
func createFrontend(logger *log.Logger, opts options.Program) (emulator.Frontend, emulator.Beeper, error) {
	switch opts.Frontend {
	case options.FrontendTerminal:
		term, err := terminal.New(logger, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("creating terminal frontend: %w", err)
		}
		if opts.Mute {
			return term, audio.Nop(), nil
		}
		beeper, err := audio.New(logger)
		if err != nil {
			logger.Warn("Audio not available, using terminal bell", log.Err(err))
			return term, terminal.NewBell(logger, term), nil
		}
		return term, beeper, nil

	case options.FrontendWindow:
		win, err := window.New(logger, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("creating window frontend: %w", err)
		}
		return win, createBeeper(logger, opts), nil

	default:
		return nil, nil, fmt.Errorf("unsupported frontend '%s'", opts.Frontend)
	}
}

func createBeeper(logger *log.Logger, opts options.Program) *audio.Beeper {
	if opts.Mute {
		return audio.Nop()
	}
	beeper, err := audio.New(logger)
	if err != nil {
		logger.Warn("Audio not available, running without sound", log.Err(err))
	}
	return beeper
}
