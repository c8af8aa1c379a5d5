package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/adrichey/chip8-interpreter/emulator"
	"github.com/retroenv/retrogolib/log"
)

// maxRate is the highest cycle rate that still leaves a tick interval of one nanosecond.
const maxRate = int(time.Second)

// Supported frontends.
const (
	FrontendSDL      = "sdl"
	FrontendTerminal = "term"
)

// Options of the interpreter.
type Options struct {
	ROM string

	Frontend string
	Scale    int // window upscaling factor
	Rate     int // cycles per second

	Debug       bool
	Quiet       bool
	Trace       bool
	NoIndexFlag bool
	Version     bool
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage and all flag defaults to w.
func (e *UsageError) ShowUsage(w io.Writer) {
	if e.msg != "" {
		_, _ = fmt.Fprintf(w, "%s\n\n", e.msg)
	}
	_, _ = fmt.Fprintf(w, "usage: chip8 [options] <ROM file>\n\n")
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
	_, _ = fmt.Fprintln(w)
}

// ParseFlags parses the command line arguments without the program name.
func ParseFlags(args []string) (Options, error) {
	flags := flag.NewFlagSet("chip8", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts Options
	readOptionFlags(flags, &opts)

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, &UsageError{flags: flags}
		}
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	if opts.Version {
		return opts, nil
	}

	positional := flags.Args()
	if len(positional) != 1 {
		return opts, &UsageError{flags: flags, msg: "exactly one ROM file has to be passed as last argument"}
	}
	opts.ROM = positional[0]

	if err := opts.validate(); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	return opts, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *Options) {
	flags.StringVar(&opts.Frontend, "frontend", FrontendSDL, "frontend to use for display, sound and input (sdl/term)")
	flags.IntVar(&opts.Scale, "scale", 10, "window upscaling factor of the sdl frontend")
	flags.IntVar(&opts.Rate, "rate", 500, "cycles executed per second")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, requires -debug")
	flags.BoolVar(&opts.NoIndexFlag, "no-index-flag", false, "do not set VF when ADD I, Vx leaves the address space")
	flags.BoolVar(&opts.Version, "version", false, "print version information and exit")
}

// validate normalizes and validates option values
func (o *Options) validate() error {
	o.Frontend = strings.ToLower(o.Frontend)
	if o.Frontend != FrontendSDL && o.Frontend != FrontendTerminal {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s, %s", o.Frontend, FrontendSDL, FrontendTerminal)
	}
	if o.Scale <= 0 {
		return fmt.Errorf("scale has to be positive, got %d", o.Scale)
	}
	if o.Rate <= 0 {
		return fmt.Errorf("rate has to be positive, got %d", o.Rate)
	}
	if o.Rate > maxRate {
		return fmt.Errorf("rate can be at most %d cycles per second, got %d", maxRate, o.Rate)
	}
	return nil
}

// TraceInstructions reports whether executed instructions get logged.
// Tracing logs at debug level, without -debug every record would be dropped.
func (o Options) TraceInstructions() bool {
	return o.Trace && o.Debug
}

// EngineOptions returns the interpreter options matching the command line.
func (o Options) EngineOptions(logger *log.Logger) []emulator.Option {
	return []emulator.Option{
		emulator.WithLogger(logger),
		emulator.WithTrace(o.TraceInstructions()),
		emulator.WithIndexOverflowFlag(!o.NoIndexFlag),
	}
}
