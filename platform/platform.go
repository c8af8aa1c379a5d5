// Package platform connects the interpreter to a host display, speaker and keyboard.
package platform

import (
	"unicode"

	"github.com/adrichey/chip8-interpreter/emulator"
)

// Display shows the framebuffer. Drawing the same framebuffer twice gives the same picture.
type Display interface {
	Draw(fb *emulator.Framebuffer) error
}

// Audio plays a single tone while it is turned on.
// Turning it on while it is already on, or off while it is off, does nothing.
type Audio interface {
	SetTone(on bool)
}

// Input samples the host keyboard. The second return value reports a quit request.
type Input interface {
	Poll() (emulator.Keypad, bool)
}

// Frontend bundles all adapters of one host environment.
type Frontend interface {
	Display
	Audio
	Input
	Close() error
}

/*
The hexadecimal keypad is mapped to the left side of a QWERTY keyboard:

	1 2 3 C        1 2 3 4
	4 5 6 D   <-   Q W E R
	7 8 9 E        A S D F
	A 0 B F        Z X C V
*/
var keymap = map[rune]byte{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// KeyIndex returns the keypad key for a host keyboard character.
func KeyIndex(r rune) (byte, bool) {
	key, ok := keymap[unicode.ToLower(r)]
	return key, ok
}
