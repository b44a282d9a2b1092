// Package ebitenui implements a windowed frontend on Ebitengine.
//
// Ebitengine owns the main goroutine: the caller runs the emulator in a
// separate goroutine and calls RunGame from main. The emulator side and the
// game loop exchange frames and key state under a mutex.
package ebitenui

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"chip8vm/chip8/display"
	"chip8vm/emulator"
)

var keyMap = map[ebiten.Key]uint8{
	ebiten.Key1: 0x1, ebiten.Key2: 0x2, ebiten.Key3: 0x3, ebiten.Key4: 0xC,
	ebiten.KeyQ: 0x4, ebiten.KeyW: 0x5, ebiten.KeyE: 0x6, ebiten.KeyR: 0xD,
	ebiten.KeyA: 0x7, ebiten.KeyS: 0x8, ebiten.KeyD: 0x9, ebiten.KeyF: 0xE,
	ebiten.KeyZ: 0xA, ebiten.KeyX: 0x0, ebiten.KeyC: 0xB, ebiten.KeyV: 0xF,
}

const bytesPerPixel = 4

type Frontend struct {
	title string
	scale int

	mu      sync.Mutex
	pixels  []byte
	keys    uint16
	quit    bool
	closing bool
}

var _ emulator.Frontend = (*Frontend)(nil)

func New(title string, scale int) *Frontend {
	f := &Frontend{
		title:  title,
		scale:  scale,
		pixels: make([]byte, display.DisplayWidth*display.DisplayHeight*bytesPerPixel),
	}
	writePixels(f.pixels, display.Frame{})

	return f
}

// RunGame opens the window and blocks until it is closed or the emulator
// closes the frontend. It must be called from the main goroutine.
func (f *Frontend) RunGame() error {
	ebiten.SetWindowSize(display.DisplayWidth*f.scale, display.DisplayHeight*f.scale)
	ebiten.SetWindowTitle(f.title)
	ebiten.SetRunnableOnUnfocused(true)

	err := ebiten.RunGame(&game{f})

	f.mu.Lock()
	f.quit = true
	f.mu.Unlock()

	return err
}

func (f *Frontend) Init() error {
	return nil
}

func (f *Frontend) Draw(frame display.Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	writePixels(f.pixels, frame)

	return nil
}

func (f *Frontend) Poll() (emulator.Input, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return emulator.Input{Keys: f.keys, Quit: f.quit}, nil
}

func (f *Frontend) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closing = true

	return nil
}

// writePixels converts frame into RGBA pixels, white on black.
func writePixels(dst []byte, frame display.Frame) {
	for y := 0; y < display.DisplayHeight; y++ {
		for x := 0; x < display.DisplayWidth; x++ {
			var c byte
			if frame.Pixel(x, y) {
				c = 0xFF
			}

			i := (y*display.DisplayWidth + x) * bytesPerPixel
			dst[i] = c
			dst[i+1] = c
			dst[i+2] = c
			dst[i+3] = 0xFF
		}
	}
}

type game struct {
	f *Frontend
}

func (g *game) Update() error {
	var keys uint16
	for k, key := range keyMap {
		if ebiten.IsKeyPressed(k) {
			keys |= 1 << key
		}
	}

	f := g.f
	f.mu.Lock()
	defer f.mu.Unlock()

	f.keys = keys
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		f.quit = true
	}
	if f.closing {
		return ebiten.Termination
	}

	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	f := g.f
	f.mu.Lock()
	defer f.mu.Unlock()

	screen.WritePixels(f.pixels)
}

func (g *game) Layout(_, _ int) (int, int) {
	return display.DisplayWidth, display.DisplayHeight
}
