package platform

import (
	"fmt"
	"os"

	"github.com/adrichey/chip8-interpreter/emulator"
)

// ReadROM reads a program image from disk.
// Images that do not fit into the program area are rejected before anything is executed.
func ReadROM(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ROM file '%s': %w", path, err)
	}
	if len(data) > emulator.MaxProgramSize {
		return nil, fmt.Errorf("%w: ROM file '%s' has %d bytes, at most %d fit into memory",
			emulator.ErrOutOfBounds, path, len(data), emulator.MaxProgramSize)
	}
	return data, nil
}
