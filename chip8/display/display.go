package display

import "strings"

const (
	DisplayWidth  int = 64
	DisplayHeight int = 32

	// ColumnBytes is the number of bytes making up one row of pixels.
	ColumnBytes int = DisplayWidth / 8
)

// Frame is an immutable copy of the screen, one byte per 8 horizontal
// pixels with the most significant bit on the left.
type Frame [DisplayHeight][ColumnBytes]uint8

// Pixel reports whether the pixel at x, y is lit. Coordinates wrap.
func (f Frame) Pixel(x, y int) bool {
	x = wrap(x, DisplayWidth)
	y = wrap(y, DisplayHeight)

	return f[y][x/8]&(0x80>>(x%8)) != 0
}

// Lit returns the number of lit pixels.
func (f Frame) Lit() int {
	n := 0
	for y := range f {
		for _, b := range f[y] {
			for ; b != 0; b &= b - 1 {
				n++
			}
		}
	}

	return n
}

func (f Frame) String() string {
	var sb strings.Builder
	sb.Grow(DisplayHeight * (DisplayWidth + 1))

	for y := 0; y < DisplayHeight; y++ {
		for x := 0; x < DisplayWidth; x++ {
			if f.Pixel(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Buffer is the mutable screen owned by the machine.
type Buffer struct {
	rows Frame
}

func (b *Buffer) Clear() {
	b.rows = Frame{}
}

func (b *Buffer) Frame() Frame {
	return b.rows
}

// DrawSprite XORs sprite onto the buffer with its top left corner at x, y
// and reports whether any lit pixel was switched off. Rows wrap vertically,
// and the bits shifted past a column byte spill into the next one, wrapping
// at the right edge.
func (b *Buffer) DrawSprite(x, y uint8, sprite []uint8) bool {
	col := int(x/8) % ColumnBytes
	shift := x % 8

	collision := false

	for row, line := range sprite {
		r := (int(y) + row) % DisplayHeight

		left := line >> shift
		if b.rows[r][col]&left != 0 {
			collision = true
		}
		b.rows[r][col] ^= left

		if shift == 0 {
			continue
		}

		next := (col + 1) % ColumnBytes
		right := line << (8 - shift)
		if b.rows[r][next]&right != 0 {
			collision = true
		}
		b.rows[r][next] ^= right
	}

	return collision
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}

	return v
}
