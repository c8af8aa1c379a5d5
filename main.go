// Package main implements a CHIP-8 interpreter
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/adrichey/chip8-interpreter/config"
	"github.com/adrichey/chip8-interpreter/emulator"
	"github.com/adrichey/chip8-interpreter/platform"
	"github.com/adrichey/chip8-interpreter/platform/window"
	"github.com/faiface/mainthread"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	exitCode := 0

	// SDL has to run on the main thread, the interpreter runs in the goroutine started by Run.
	mainthread.Run(func() {
		exitCode = run(app.Context(), os.Args[1:])
	})
	os.Exit(exitCode)
}

func run(ctx context.Context, args []string) int {
	opts, err := config.ParseFlags(args)
	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	if err != nil {
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			usageErr.ShowUsage(os.Stderr)
		} else {
			logger.Error("Parsing arguments failed", log.Err(err))
		}
		return 1
	}

	if opts.Version {
		fmt.Printf("version: %s\n", buildinfo.Version(version, commit, date))
		return 0
	}

	if err := runROM(ctx, logger, opts); err != nil {
		// Ctrl+C is a regular way to stop the interpreter
		if errors.Is(err, context.Canceled) {
			logger.Info("Interpreter stopped")
			return 0
		}
		logger.Error("Running ROM failed", log.Err(err))
		return 1
	}
	return 0
}

func runROM(ctx context.Context, logger *log.Logger, opts config.Options) error {
	program, err := platform.ReadROM(opts.ROM)
	if err != nil {
		return err
	}

	c8 := emulator.New(opts.EngineOptions(logger)...)
	if err := c8.Load(program); err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	logger.Info("Running ROM",
		log.String("file", opts.ROM),
		log.Int("size", len(program)),
		log.String("frontend", opts.Frontend),
		log.Int("rate", opts.Rate),
	)

	frontend, err := openFrontend(opts, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := frontend.Close(); err != nil {
			logger.Error("Closing frontend failed", log.Err(err))
		}
	}()

	loop := platform.Loop{
		Engine:   c8,
		Frontend: frontend,
		Rate:     opts.Rate,
		Logger:   logger,
	}
	return loop.Run(ctx)
}

func openFrontend(opts config.Options, logger *log.Logger) (platform.Frontend, error) {
	if opts.Frontend == config.FrontendTerminal {
		terminal, err := platform.NewTerminal()
		if err != nil {
			return nil, err
		}
		return terminal, nil
	}

	sdlWindow, err := window.New("CHIP-8 - "+opts.ROM, opts.Scale, logger)
	if err != nil {
		return nil, err
	}
	return sdlWindow, nil
}
