package chip8

import "chip8vm/chip8/display"

type EffectKind int

const (
	EffectNone EffectKind = iota
	// EffectRedraw asks the host to present Effect.Frame.
	EffectRedraw
	// EffectAwaitKey asks the host to deliver a key with DeliverKey.
	EffectAwaitKey
)

func (k EffectKind) String() string {
	switch k {
	case EffectNone:
		return "none"
	case EffectRedraw:
		return "redraw"
	case EffectAwaitKey:
		return "await key"
	default:
		return "unknown"
	}
}

// Effect is the observable outcome of a single Step.
type Effect struct {
	Kind  EffectKind
	Frame display.Frame
}
