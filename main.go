// Package main implements the main entry point for the CHIP-8 emulator
package main

import (
	"context"
	"errors"
	"os"

	"github.com/faiface/mainthread"
	"github.com/retroenv/chip8emu/internal/app"
	"github.com/retroenv/chip8emu/internal/cli"
	"github.com/retroenv/chip8emu/internal/config"
	"github.com/retroenv/retrogolib/log"

	retroapp "github.com/retroenv/retrogolib/app"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	// the window frontend needs GLFW calls on the main OS thread
	mainthread.Run(run)
}

func run() {
	ctx := retroapp.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Trace, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			app.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Trace, opts.Quiet)
	app.PrintBanner(logger, opts, version, commit, date)

	if err := app.Run(ctx, logger, opts, os.Stdout); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Emulation cancelled")
			return
		}
		logger.Fatal("Emulation failed", log.Err(err))
	}
}
