package emulator

import (
	"chip8vm/chip8/display"
)

// Input is one sample of the user's keyboard.
type Input struct {
	Keys uint16
	Quit bool
}

// Frontend renders frames and reads the keyboard. The run loop calls all
// methods from a single goroutine.
type Frontend interface {
	Init() error
	Draw(frame display.Frame) error
	Poll() (Input, error)
	Close() error
}
