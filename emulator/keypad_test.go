package emulator

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyOf(t *testing.T) {
	tests := []struct {
		r    rune
		key  uint8
		want bool
	}{
		{'1', 0x1, true},
		{'4', 0xC, true},
		{'q', 0x4, true},
		{'Q', 0x4, true},
		{'x', 0x0, true},
		{'V', 0xF, true},
		{'p', 0, false},
		{' ', 0, false},
	}

	for _, tt := range tests {
		key, ok := KeyOf(tt.r)
		assert.Equal(t, tt.want, ok, "rune %q", tt.r)
		assert.Equal(t, tt.key, key, "rune %q", tt.r)
	}
}

func TestKeyMapCoversKeypad(t *testing.T) {
	var mask uint16
	for _, key := range keyMap {
		mask |= 1 << key
	}

	assert.Equal(t, uint16(0xFFFF), mask)
}

func TestKeypadPressRelease(t *testing.T) {
	k := NewKeypad(0)

	k.Press(0x3)
	k.Press(0xF)
	k.Press(0x10)
	assert.Equal(t, uint16(1<<3|1<<15), k.Snapshot())

	k.Release(0x3)
	assert.Equal(t, uint16(1<<15), k.Snapshot())

	k.Set(0x00FF)
	assert.Equal(t, uint16(0x00FF), k.Snapshot())
}

func TestKeypadHoldExpires(t *testing.T) {
	now := time.Unix(100, 0)

	k := NewKeypad(100 * time.Millisecond)
	k.now = func() time.Time { return now }

	k.Press(0x5)
	now = now.Add(50 * time.Millisecond)
	k.Press(0x6)
	assert.Equal(t, uint16(1<<5|1<<6), k.Snapshot())

	now = now.Add(60 * time.Millisecond)
	assert.Equal(t, uint16(1<<6), k.Snapshot())

	// pressing again extends the hold
	k.Press(0x6)
	now = now.Add(60 * time.Millisecond)
	assert.Equal(t, uint16(1<<6), k.Snapshot())

	now = now.Add(time.Second)
	assert.Zero(t, k.Snapshot())
}

func TestKeypadConcurrentAccess(t *testing.T) {
	k := NewKeypad(0)

	var wg sync.WaitGroup
	for key := uint8(0); key < 16; key++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				k.Press(key)
				_ = k.Snapshot()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint16(0xFFFF), k.Snapshot())
}

func TestNewlyPressed(t *testing.T) {
	tests := []struct {
		name              string
		previous, current uint16
		key               uint8
		ok                bool
	}{
		{"nothing held", 0, 0, 0, false},
		{"still held", 1 << 4, 1 << 4, 0, false},
		{"released", 1 << 4, 0, 0, false},
		{"new press", 0, 1 << 4, 4, true},
		{"lowest wins", 0, 1<<9 | 1<<3, 3, true},
		{"held key ignored", 1 << 1, 1<<1 | 1<<12, 12, true},
		{"key zero", 0, 1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := NewlyPressed(tt.previous, tt.current)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, key)
		})
	}
}
