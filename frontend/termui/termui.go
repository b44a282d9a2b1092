// Package termui implements a frontend that renders into an ANSI terminal
// and reads keys from raw mode stdin.
package termui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"

	"chip8vm/chip8/display"
	"chip8vm/emulator"
)

const (
	// terminals only report key presses, so a key counts as held for a
	// while after each press or autorepeat
	keyHold = 150 * time.Millisecond

	keyEscape = 0x1B
	keyCtrlC  = 0x03

	// the screen starts inside the box drawn at row 1, column 1
	originRow = 2
	originCol = 2
)

var ErrNotTerminal = errors.New("stdin is not a terminal")

type Frontend struct {
	in  *os.File
	out *bufio.Writer

	keypad *emulator.Keypad

	mu   sync.Mutex
	quit bool

	oldState    *term.State
	restoreTerm func(fd int, state *term.State) error
}

var _ emulator.Frontend = (*Frontend)(nil)

func New(in *os.File, out io.Writer) *Frontend {
	return &Frontend{
		in:          in,
		out:         bufio.NewWriter(out),
		keypad:      emulator.NewKeypad(keyHold),
		restoreTerm: term.Restore,
	}
}

// Init switches the terminal to raw mode, draws the frame around the screen
// and starts reading keys.
func (f *Frontend) Init() error {
	fd := int(f.in.Fd())
	if !term.IsTerminal(fd) {
		return ErrNotTerminal
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to set raw mode: %w", err)
	}
	f.oldState = oldState

	if err := f.setup(); err != nil {
		return err
	}

	go f.readKeys()

	return nil
}

// setup paints the empty screen of a terminal already in raw mode. On
// failure the terminal is restored, as Close is not called after a failed
// Init.
func (f *Frontend) setup() error {
	f.out.WriteString("\x1b[2J\x1b[?25l")
	f.out.WriteString(box())
	if err := f.out.Flush(); err != nil {
		_ = f.restore()
		return fmt.Errorf("failed to write to terminal: %w", err)
	}

	if err := f.Draw(display.Frame{}); err != nil {
		_ = f.restore()
		return err
	}

	return nil
}

// readKeys runs until stdin fails; a blocked read outlives Close and ends
// with the process.
func (f *Frontend) readKeys() {
	buf := make([]byte, 16)
	for {
		n, err := f.in.Read(buf)
		if n > 0 {
			f.handleInput(buf[:n])
		}
		if err != nil {
			f.mu.Lock()
			f.quit = true
			f.mu.Unlock()
			return
		}
	}
}

func (f *Frontend) handleInput(b []byte) {
	for _, c := range b {
		switch c {
		case keyEscape, keyCtrlC:
			f.mu.Lock()
			f.quit = true
			f.mu.Unlock()
		default:
			if key, ok := emulator.KeyOf(rune(c)); ok {
				f.keypad.Press(key)
			}
		}
	}
}

func (f *Frontend) Poll() (emulator.Input, error) {
	f.mu.Lock()
	quit := f.quit
	f.mu.Unlock()

	return emulator.Input{Keys: f.keypad.Snapshot(), Quit: quit}, nil
}

func (f *Frontend) Draw(frame display.Frame) error {
	for i, line := range render(frame) {
		fmt.Fprintf(f.out, "\x1b[%d;%dH%s", originRow+i, originCol, line)
	}

	if err := f.out.Flush(); err != nil {
		return fmt.Errorf("failed to write to terminal: %w", err)
	}

	return nil
}

func (f *Frontend) Close() error {
	fmt.Fprintf(f.out, "\x1b[%d;1H\x1b[?25h\r\n", originRow+display.DisplayHeight/2+1)
	err := f.out.Flush()

	if restoreErr := f.restore(); restoreErr != nil {
		err = restoreErr
	}

	return err
}

// restore leaves raw mode if it is active.
func (f *Frontend) restore() error {
	if f.oldState == nil {
		return nil
	}

	state := f.oldState
	f.oldState = nil

	return f.restoreTerm(int(f.in.Fd()), state)
}

// render turns the frame into half height lines, two pixel rows per
// character cell.
func render(frame display.Frame) []string {
	lines := make([]string, 0, display.DisplayHeight/2)

	var sb strings.Builder
	for y := 0; y < display.DisplayHeight; y += 2 {
		sb.Reset()
		for x := 0; x < display.DisplayWidth; x++ {
			top, bottom := frame.Pixel(x, y), frame.Pixel(x, y+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		lines = append(lines, sb.String())
	}

	return lines
}

func box() string {
	horizontal := strings.Repeat("─", display.DisplayWidth)

	var sb strings.Builder
	fmt.Fprintf(&sb, "\x1b[1;1H┌%s┐", horizontal)
	for row := originRow; row < originRow+display.DisplayHeight/2; row++ {
		fmt.Fprintf(&sb, "\x1b[%d;1H│\x1b[%d;%dH│", row, row, originCol+display.DisplayWidth)
	}
	fmt.Fprintf(&sb, "\x1b[%d;1H└%s┘", originRow+display.DisplayHeight/2, horizontal)

	return sb.String()
}
