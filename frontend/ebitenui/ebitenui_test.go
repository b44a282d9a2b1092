package ebitenui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chip8vm/chip8/display"
)

func TestDrawWritesPixels(t *testing.T) {
	f := New("test", 1)
	require.NoError(t, f.Init())

	var b display.Buffer
	b.DrawSprite(1, 0, []uint8{0x80})
	require.NoError(t, f.Draw(b.Frame()))

	assert.Equal(t, []byte{0, 0, 0, 0xFF}, f.pixels[0:4])
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, f.pixels[4:8])
}

func TestPollAndClose(t *testing.T) {
	f := New("test", 1)

	in, err := f.Poll()
	require.NoError(t, err)
	assert.False(t, in.Quit)

	require.NoError(t, f.Close())
	assert.True(t, f.closing)
}

func TestKeyMapCoversKeypad(t *testing.T) {
	var mask uint16
	for _, key := range keyMap {
		mask |= 1 << key
	}

	assert.Equal(t, uint16(0xFFFF), mask)
}
