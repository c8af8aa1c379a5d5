// Package emulator implements the CHIP-8 interpreter engine: memory, registers,
// timers, framebuffer and the fetch-decode-execute cycle.
package emulator

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

/*
The CHIP-8 has 4096 bytes of memory, meaning the address space is from 0x000 to 0xFFF.
The address space is segmented into two sections:

	0x000-0x1FF: Originally reserved for the CHIP-8 interpreter. The 16 built-in font glyphs live at its base.
	0x200-0xFFF: Instructions from the ROM are stored starting at 0x200, anything left after it is free to use.
*/
const (
	MemorySize       = 4096
	StartAddress     = 0x200
	FontStartAddress = 0x000

	// MaxProgramSize is the largest program image that fits between StartAddress and the end of memory.
	MaxProgramSize = MemorySize - StartAddress

	addressMask = MemorySize - 1
	stackSize   = 16
	flagIndex   = 0xF
)

// Keypad is the pressed state of the 16 keys 0x0-0xF.
type Keypad [16]bool

// Output is the result of one cycle. Framebuffer is mutated in place by later
// cycles and must not be retained past the next call to Advance.
type Output struct {
	Framebuffer *Framebuffer
	Dirty       bool // framebuffer changed during this cycle
	Sound       bool // sound timer is running
}

// Chip8 holds the complete state of the virtual machine.
type Chip8 struct {
	// 4k bytes of memory
	memory [MemorySize]byte

	// 16 8-bit registers, VF doubles as the carry, borrow and collision flag
	registers [16]byte

	// The Index Register is used to store memory addresses for use in operations
	indexRegister uint16

	// The Program Counter holds the address of the next instruction to execute
	programCounter uint16

	// 16-level stack of return addresses and the number of frames in use
	stack        [stackSize]uint16
	stackPointer byte

	// If a timer value is zero it stays zero, otherwise it is decremented once per cycle
	delayTimer byte
	soundTimer byte

	screen Framebuffer
	dirty  bool

	keypad Keypad

	// Set by Fx0A, serviced at the top of the following cycles
	waitingForKey bool
	keyRegister   byte

	logger            *log.Logger
	trace             bool
	randomByte        func() byte
	indexOverflowFlag bool
}

// New returns a machine with the font loaded and the program counter at StartAddress.
func New(options ...Option) *Chip8 {
	c8 := &Chip8{
		programCounter:    StartAddress,
		randomByte:        randomByte,
		indexOverflowFlag: true,
	}
	copy(c8.memory[FontStartAddress:], fontset[:])

	for _, option := range options {
		option(c8)
	}
	return c8
}

// Load copies a program image into memory starting at StartAddress.
// Images that do not fit before the end of memory are rejected and leave memory untouched.
func (c8 *Chip8) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: program is %d bytes, at most %d bytes fit at %03X",
			ErrOutOfBounds, len(program), MaxProgramSize, StartAddress)
	}

	copy(c8.memory[StartAddress:], program)
	return nil
}

// PC returns the program counter.
func (c8 *Chip8) PC() uint16 {
	return c8.programCounter
}

// I returns the index register.
func (c8 *Chip8) I() uint16 {
	return c8.indexRegister
}

// V returns the general register with the given index, only the low nibble of index is used.
func (c8 *Chip8) V(index int) byte {
	return c8.registers[index&0xF]
}

// SP returns the number of return addresses on the call stack.
func (c8 *Chip8) SP() int {
	return int(c8.stackPointer)
}

// DelayTimer returns the current delay timer value.
func (c8 *Chip8) DelayTimer() byte {
	return c8.delayTimer
}

// SoundTimer returns the current sound timer value.
func (c8 *Chip8) SoundTimer() byte {
	return c8.soundTimer
}

// AwaitingKey reports whether the machine is suspended in Fx0A and which register receives the key.
func (c8 *Chip8) AwaitingKey() (bool, int) {
	return c8.waitingForKey, int(c8.keyRegister)
}

// Memory returns the byte at the given address, masked to 12 bits.
func (c8 *Chip8) Memory(address uint16) byte {
	return c8.read(address)
}

// Framebuffer returns the display buffer.
func (c8 *Chip8) Framebuffer() *Framebuffer {
	return &c8.screen
}

func (c8 *Chip8) read(address uint16) byte {
	return c8.memory[address&addressMask]
}

func (c8 *Chip8) write(address uint16, value byte) {
	c8.memory[address&addressMask] = value
}
