package emulator

import (
	"math/rand/v2"

	"github.com/retroenv/retrogolib/log"
)

// Option configures a machine created by New.
type Option func(*Chip8)

// WithLogger sets the logger used for instruction tracing.
func WithLogger(logger *log.Logger) Option {
	return func(c8 *Chip8) {
		c8.logger = logger
	}
}

// WithTrace enables logging of every executed instruction at debug level.
// It has no effect without a logger.
func WithTrace(enabled bool) Option {
	return func(c8 *Chip8) {
		c8.trace = enabled
	}
}

// WithRandom replaces the random byte source used by Cxkk.
func WithRandom(source func() byte) Option {
	return func(c8 *Chip8) {
		if source != nil {
			c8.randomByte = source
		}
	}
}

// WithIndexOverflowFlag controls whether Fx1E sets VF when I leaves the 12-bit address range.
// Enabled by default, some ROMs such as Spacefight 2091! depend on it.
func WithIndexOverflowFlag(enabled bool) Option {
	return func(c8 *Chip8) {
		c8.indexOverflowFlag = enabled
	}
}

func randomByte() byte {
	return byte(rand.UintN(256))
}
