package emulator

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

const (
	startPC   = uint16(0xF00)
	nextPC    = startPC + 2
	skippedPC = startPC + 4
)

// newTestChip8 returns a machine positioned at startPC with distinct register values.
func newTestChip8(t *testing.T, options ...Option) *Chip8 {
	t.Helper()

	c8 := New(options...)
	c8.programCounter = startPC
	c8.registers = [16]byte{0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7}
	return c8
}

// runOpcode places word at the program counter and executes it in one cycle.
func runOpcode(t *testing.T, c8 *Chip8, word uint16) Output {
	t.Helper()

	c8.write(c8.programCounter, byte(word>>8))
	c8.write(c8.programCounter+1, byte(word))
	out, err := c8.Advance(c8.keypad)
	assert.NoError(t, err)
	return out
}

func TestNew(t *testing.T) {
	c8 := New()

	assert.Equal(t, uint16(StartAddress), c8.PC())
	assert.Equal(t, 0, c8.SP())
	assert.Equal(t, uint16(0), c8.I())
	assert.Equal(t, [16]byte{}, c8.registers)
	assert.Equal(t, [stackSize]uint16{}, c8.stack)
	assert.Equal(t, byte(0), c8.DelayTimer())
	assert.Equal(t, byte(0), c8.SoundTimer())

	waiting, _ := c8.AwaitingKey()
	assert.False(t, waiting)

	for i, b := range fontset {
		assert.Equal(t, b, c8.Memory(uint16(i)))
	}
	// first glyph is 0, last glyph is F
	assert.Equal(t, [5]byte{0xF0, 0x90, 0x90, 0x90, 0xF0}, [5]byte(c8.memory[0:5]))
	assert.Equal(t, [5]byte{0xF0, 0x80, 0xF0, 0x80, 0x80}, [5]byte(c8.memory[75:80]))
	assert.Equal(t, byte(0), c8.Memory(80))
}

func TestLoad(t *testing.T) {
	c8 := New()

	assert.NoError(t, c8.Load([]byte{1, 2, 3}))
	assert.Equal(t, byte(1), c8.Memory(0x200))
	assert.Equal(t, byte(2), c8.Memory(0x201))
	assert.Equal(t, byte(3), c8.Memory(0x202))
	assert.Equal(t, byte(0), c8.Memory(0x203))
}

func TestLoadLimits(t *testing.T) {
	tests := []struct {
		name string
		size int
		err  error
	}{
		{"empty", 0, nil},
		{"exact fit", MaxProgramSize, nil},
		{"one byte too large", MaxProgramSize + 1, ErrOutOfBounds},
		{"larger than memory", MemorySize + 10, ErrOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c8 := New()
			program := make([]byte, tt.size)
			for i := range program {
				program[i] = 0xAA
			}

			err := c8.Load(program)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err))
				assert.Equal(t, byte(0), c8.Memory(StartAddress))
				return
			}

			assert.NoError(t, err)
			if tt.size > 0 {
				assert.Equal(t, byte(0xAA), c8.Memory(uint16(StartAddress+tt.size-1)))
			}
		})
	}
}

func TestMemoryAddressesWrap(t *testing.T) {
	c8 := New()
	c8.write(0x1005, 0x42)

	assert.Equal(t, byte(0x42), c8.Memory(0x005))
	assert.Equal(t, byte(0x42), c8.Memory(0xF005))
}

func TestRegisterAccessorMasksIndex(t *testing.T) {
	c8 := New()
	c8.registers[0x3] = 0x99

	assert.Equal(t, byte(0x99), c8.V(0x3))
	assert.Equal(t, byte(0x99), c8.V(0x13))
}
