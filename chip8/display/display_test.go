package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDrawSpriteXORsBack(t *testing.T) {
	var b Buffer

	collision := b.DrawSprite(10, 5, []uint8{0xFF})
	assert.False(t, collision)
	assert.Equal(t, 8, b.Frame().Lit())

	collision = b.DrawSprite(10, 5, []uint8{0xFF})
	assert.True(t, collision)
	assert.Equal(t, Frame{}, b.Frame())
}

func TestDrawSpriteSplitsAcrossColumns(t *testing.T) {
	var b Buffer

	b.DrawSprite(3, 0, []uint8{0xFF})

	f := b.Frame()
	assert.Equal(t, uint8(0x1F), f[0][0])
	assert.Equal(t, uint8(0xE0), f[0][1])
	for x := 0; x < DisplayWidth; x++ {
		assert.Equal(t, x >= 3 && x < 11, f.Pixel(x, 0), "pixel %d", x)
	}
}

func TestDrawSpriteWraps(t *testing.T) {
	tests := []struct {
		name   string
		x, y   uint8
		sprite []uint8
		lit    [][2]int
	}{
		{
			name:   "horizontal spill into first column",
			x:      60,
			y:      0,
			sprite: []uint8{0xFF},
			lit:    [][2]int{{60, 0}, {63, 0}, {0, 0}, {3, 0}},
		},
		{
			name:   "vertical wrap",
			x:      0,
			y:      31,
			sprite: []uint8{0x80, 0x80},
			lit:    [][2]int{{0, 31}, {0, 0}},
		},
		{
			name:   "coordinates beyond the screen",
			x:      64 + 8,
			y:      32 + 2,
			sprite: []uint8{0x80},
			lit:    [][2]int{{8, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Buffer
			assert.False(t, b.DrawSprite(tt.x, tt.y, tt.sprite))

			f := b.Frame()
			for _, p := range tt.lit {
				assert.True(t, f.Pixel(p[0], p[1]), "pixel %v", p)
			}
		})
	}
}

func TestDrawSpriteCollisionIsSticky(t *testing.T) {
	var b Buffer
	b.DrawSprite(0, 0, []uint8{0x80})

	// only the first row collides
	assert.True(t, b.DrawSprite(0, 0, []uint8{0x80, 0x40, 0x20}))
	assert.False(t, b.Frame().Pixel(0, 0))
	assert.True(t, b.Frame().Pixel(1, 1))
	assert.True(t, b.Frame().Pixel(2, 2))
}

func TestClear(t *testing.T) {
	var b Buffer
	b.DrawSprite(0, 0, []uint8{0xF0, 0x90, 0x90, 0x90, 0xF0})
	assert.NotZero(t, b.Frame().Lit())

	b.Clear()
	assert.Zero(t, b.Frame().Lit())
}

func TestFrameIsACopy(t *testing.T) {
	var b Buffer
	f := b.Frame()

	b.DrawSprite(0, 0, []uint8{0xFF})
	assert.Zero(t, f.Lit())
}

func TestFrameString(t *testing.T) {
	var b Buffer
	b.DrawSprite(0, 0, []uint8{0xC0})

	s := b.Frame().String()
	assert.Len(t, s, DisplayHeight*(DisplayWidth+1))
	assert.Equal(t, "##..", s[:4])
}
