package chip8

import (
	"errors"
	"fmt"

	"chip8vm/chip8/opcodes"
)

var (
	ErrProgramTooLarge   = errors.New("program does not fit into memory")
	ErrInvalidOpcode     = errors.New("invalid opcode")
	ErrStackOverflow     = errors.New("call stack overflow")
	ErrStackUnderflow    = errors.New("call stack underflow")
	ErrMemoryOutOfBounds = errors.New("memory access out of bounds")
	ErrNotAwaitingKey    = errors.New("machine is not waiting for a key")
	ErrInvalidKey        = errors.New("invalid key")
)

// LoadError is returned when a program image can not be turned into a
// machine, either because it could not be read or because it is too large.
type LoadError struct {
	Op  string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading program: %s: %v", e.Op, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ExecutionError is a fatal fault raised by Step. PC is the address the
// faulting opcode was fetched from.
type ExecutionError struct {
	PC     uint16
	Opcode opcodes.Opcode
	Err    error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%v @ 0x%03x: 0x%04x", e.Err, e.PC, uint16(e.Opcode))
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
