package platform

import (
	"context"
	"fmt"
	"time"

	"github.com/adrichey/chip8-interpreter/emulator"
	"github.com/retroenv/retrogolib/log"
)

// Engine advances an interpreter by one cycle.
type Engine interface {
	Advance(keys emulator.Keypad) (emulator.Output, error)
}

// Loop drives an engine at a fixed cycle rate and forwards its output to a frontend.
type Loop struct {
	Engine   Engine
	Frontend Frontend
	Rate     int // cycles per second
	Logger   *log.Logger
}

// Run executes cycles until the user quits, the context is cancelled or the engine fails.
// A quit request returns nil, a cancelled context returns the context error.
func (l Loop) Run(ctx context.Context) error {
	if l.Rate <= 0 {
		return fmt.Errorf("invalid cycle rate %d", l.Rate)
	}
	interval := time.Second / time.Duration(l.Rate)
	if interval <= 0 {
		return fmt.Errorf("cycle rate %d exceeds the timer resolution", l.Rate)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer l.Frontend.SetTone(false)

	var cycles int
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		quit, err := l.step()
		if err != nil {
			return fmt.Errorf("cycle %d: %w", cycles, err)
		}
		if quit {
			if l.Logger != nil {
				l.Logger.Debug("Quit requested", log.Int("cycles", cycles))
			}
			return nil
		}
		cycles++
	}
}

func (l Loop) step() (bool, error) {
	keys, quit := l.Frontend.Poll()
	if quit {
		return true, nil
	}

	out, err := l.Engine.Advance(keys)
	if err != nil {
		return false, err
	}

	if out.Dirty {
		if err := l.Frontend.Draw(out.Framebuffer); err != nil {
			return false, fmt.Errorf("drawing framebuffer: %w", err)
		}
	}
	l.Frontend.SetTone(out.Sound)
	return false, nil
}
