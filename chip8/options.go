package chip8

import "math/rand/v2"

// Quirks select between the behaviours of historical interpreters.
type Quirks struct {
	// ShiftUsesVY makes 8XY6 and 8XYE shift VY into VX instead of shifting
	// VX in place.
	ShiftUsesVY bool
	// IncrementIndex makes FX55 and FX65 leave I pointing past the last
	// register transferred.
	IncrementIndex bool
}

type Option func(*Chip8)

func WithQuirks(q Quirks) Option {
	return func(c *Chip8) {
		c.quirks = q
	}
}

// WithRandom replaces the random byte source used by CXNN. A nil fn keeps
// the default source.
func WithRandom(fn func() uint8) Option {
	return func(c *Chip8) {
		if fn != nil {
			c.random = fn
		}
	}
}

func randomByte() uint8 {
	return uint8(rand.UintN(256))
}
