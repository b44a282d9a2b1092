package emulator

import (
	"math/bits"
	"sync"
	"time"
	"unicode"

	"chip8vm/chip8"
)

// keyMap follows the usual layout of the hex keypad on a QWERTY keyboard:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  =>  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
var keyMap = map[rune]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// KeyOf maps a keyboard character to a keypad key.
func KeyOf(r rune) (uint8, bool) {
	key, ok := keyMap[unicode.ToLower(r)]
	return key, ok
}

// Keypad is the host side keypad state shared between an input goroutine
// and the run loop. Readers only ever see whole snapshots.
type Keypad struct {
	mu      sync.Mutex
	mask    uint16
	hold    time.Duration
	expires [chip8.NumKeys]time.Time
	now     func() time.Time
}

// NewKeypad returns a keypad. With a non-zero hold, pressed keys release
// themselves after that duration, for inputs that never report key up.
func NewKeypad(hold time.Duration) *Keypad {
	return &Keypad{
		hold: hold,
		now:  time.Now,
	}
}

func (k *Keypad) Press(key uint8) {
	if int(key) >= chip8.NumKeys {
		return
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	k.mask |= 1 << key
	if k.hold > 0 {
		k.expires[key] = k.now().Add(k.hold)
	}
}

func (k *Keypad) Release(key uint8) {
	if int(key) >= chip8.NumKeys {
		return
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	k.mask &^= 1 << key
}

// Set replaces the whole keypad state.
func (k *Keypad) Set(mask uint16) {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.mask = mask
	if k.hold > 0 {
		deadline := k.now().Add(k.hold)
		for key := range k.expires {
			k.expires[key] = deadline
		}
	}
}

// Snapshot returns the held keys, bit n for key n.
func (k *Keypad) Snapshot() uint16 {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.hold > 0 {
		now := k.now()
		for key, deadline := range k.expires {
			if k.mask&(1<<key) != 0 && !now.Before(deadline) {
				k.mask &^= 1 << key
			}
		}
	}

	return k.mask
}

// NewlyPressed returns the lowest key that is held in current but was not
// held in previous.
func NewlyPressed(previous, current uint16) (uint8, bool) {
	pressed := current &^ previous
	if pressed == 0 {
		return 0, false
	}

	return uint8(bits.TrailingZeros16(pressed)), true
}
