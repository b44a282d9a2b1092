package termui

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"

	"chip8vm/chip8/display"
)

func TestRender(t *testing.T) {
	var b display.Buffer
	b.DrawSprite(0, 0, []uint8{0xC0, 0xA0})

	lines := render(b.Frame())
	require.Len(t, lines, display.DisplayHeight/2)

	for _, line := range lines {
		assert.Equal(t, display.DisplayWidth, utf8.RuneCountInString(line))
	}
	assert.True(t, strings.HasPrefix(lines[0], "█▀▄ "))
	assert.Equal(t, strings.Repeat(" ", display.DisplayWidth), lines[1])
}

func TestBox(t *testing.T) {
	s := box()

	assert.Contains(t, s, "┌"+strings.Repeat("─", display.DisplayWidth)+"┐")
	assert.Contains(t, s, "└"+strings.Repeat("─", display.DisplayWidth)+"┘")
	assert.Equal(t, 2*display.DisplayHeight/2, strings.Count(s, "│"))
}

func TestHandleInput(t *testing.T) {
	f := New(os.Stdin, &bytes.Buffer{})

	f.handleInput([]byte("1qP"))
	in, err := f.Poll()
	require.NoError(t, err)
	assert.Equal(t, uint16(1<<0x1|1<<0x4), in.Keys)
	assert.False(t, in.Quit)

	f.handleInput([]byte{keyCtrlC})
	in, err = f.Poll()
	require.NoError(t, err)
	assert.True(t, in.Quit)
}

func TestDrawWritesLines(t *testing.T) {
	var out bytes.Buffer
	f := New(os.Stdin, &out)

	require.NoError(t, f.Draw(display.Frame{}))
	assert.Equal(t, display.DisplayHeight/2, strings.Count(out.String(), "\x1b["))
	assert.Contains(t, out.String(), "\x1b[2;2H")
}

func TestCloseWithoutInit(t *testing.T) {
	var out bytes.Buffer
	f := New(os.Stdin, &out)

	require.NoError(t, f.Close())
	assert.Contains(t, out.String(), "\x1b[?25h")
}

type failingWriter struct{}

var errWrite = errors.New("write failed")

func (failingWriter) Write([]byte) (int, error) {
	return 0, errWrite
}

func TestSetupFailureRestoresTerminal(t *testing.T) {
	f := New(os.Stdin, failingWriter{})

	restored := 0
	f.restoreTerm = func(int, *term.State) error {
		restored++
		return nil
	}
	f.oldState = &term.State{}

	err := f.setup()
	require.ErrorIs(t, err, errWrite)
	assert.Equal(t, 1, restored)
	assert.Nil(t, f.oldState)

	require.Error(t, f.Close())
	assert.Equal(t, 1, restored)
}
