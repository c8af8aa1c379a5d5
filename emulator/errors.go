package emulator

import "errors"

var (
	// ErrOutOfBounds is returned when a program image does not fit into memory.
	ErrOutOfBounds = errors.New("program exceeds available memory")
	// ErrStackOverflow is returned when a program calls a subroutine with all 16 stack frames in use.
	ErrStackOverflow = errors.New("call stack overflow")
	// ErrStackUnderflow is returned when a program returns from a subroutine with an empty stack.
	ErrStackUnderflow = errors.New("call stack underflow")
)
