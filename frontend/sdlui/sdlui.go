// Package sdlui implements a windowed frontend on SDL2.
package sdlui

import (
	"fmt"

	sdl "github.com/veandco/go-sdl2/sdl"

	"chip8vm/chip8/display"
	"chip8vm/emulator"
)

var keyMap = map[sdl.Scancode]uint8{
	sdl.SCANCODE_1: 0x1,
	sdl.SCANCODE_2: 0x2,
	sdl.SCANCODE_3: 0x3,
	sdl.SCANCODE_4: 0xC,
	sdl.SCANCODE_Q: 0x4,
	sdl.SCANCODE_W: 0x5,
	sdl.SCANCODE_E: 0x6,
	sdl.SCANCODE_R: 0xD,
	sdl.SCANCODE_A: 0x7,
	sdl.SCANCODE_S: 0x8,
	sdl.SCANCODE_D: 0x9,
	sdl.SCANCODE_F: 0xE,
	sdl.SCANCODE_Z: 0xA,
	sdl.SCANCODE_X: 0x0,
	sdl.SCANCODE_C: 0xB,
	sdl.SCANCODE_V: 0xF,
}

type Frontend struct {
	title string
	scale int32

	window     *sdl.Window
	renderer   *sdl.Renderer
	backbuffer *sdl.Texture

	keys uint16
}

var _ emulator.Frontend = (*Frontend)(nil)

func New(title string, scale int) *Frontend {
	return &Frontend{
		title: title,
		scale: int32(scale),
	}
}

func (f *Frontend) Init() error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("failed to init SDL: %w", err)
	}

	w, err := sdl.CreateWindow(f.title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(display.DisplayWidth)*f.scale, int32(display.DisplayHeight)*f.scale, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("failed to create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(w, -1, 0)
	if err != nil {
		_ = w.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	backbuffer, err := renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_TARGET, int32(display.DisplayWidth), int32(display.DisplayHeight))
	if err != nil {
		_ = renderer.Destroy()
		_ = w.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create backbuffer: %w", err)
	}

	f.window = w
	f.renderer = renderer
	f.backbuffer = backbuffer

	return f.Draw(display.Frame{})
}

func (f *Frontend) Close() error {
	if f.window == nil {
		return nil
	}

	_ = f.backbuffer.Destroy()
	_ = f.renderer.Destroy()
	err := f.window.Destroy()
	sdl.Quit()

	f.window = nil

	return err
}

func (f *Frontend) Poll() (emulator.Input, error) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return emulator.Input{Keys: f.keys, Quit: true}, nil
		case *sdl.KeyboardEvent:
			if e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
				return emulator.Input{Keys: f.keys, Quit: true}, nil
			}
			f.handleKey(e)
		}
	}

	return emulator.Input{Keys: f.keys}, nil
}

func (f *Frontend) handleKey(e *sdl.KeyboardEvent) {
	key, ok := keyMap[e.Keysym.Scancode]
	if !ok {
		return
	}

	switch e.Type {
	case sdl.KEYUP:
		f.keys &^= 1 << key
	case sdl.KEYDOWN:
		f.keys |= 1 << key
	}
}

func (f *Frontend) Draw(frame display.Frame) error {
	target := f.renderer.GetRenderTarget()

	if err := f.renderer.SetRenderTarget(f.backbuffer); err != nil {
		return fmt.Errorf("failed to set render target: %w", err)
	}

	for y := 0; y < display.DisplayHeight; y++ {
		for x := 0; x < display.DisplayWidth; x++ {
			if frame.Pixel(x, y) {
				if err := f.renderer.SetDrawColor(255, 255, 255, 255); err != nil {
					return fmt.Errorf("failed to set draw color: %w", err)
				}
			} else {
				if err := f.renderer.SetDrawColor(0, 0, 0, 255); err != nil {
					return fmt.Errorf("failed to set draw color: %w", err)
				}
			}

			if err := f.renderer.DrawPoint(int32(x), int32(y)); err != nil {
				return fmt.Errorf("failed to draw point: %w", err)
			}
		}
	}

	if err := f.renderer.SetRenderTarget(target); err != nil {
		return fmt.Errorf("failed to restore render target: %w", err)
	}

	return f.present()
}

func (f *Frontend) present() error {
	if err := f.renderer.Clear(); err != nil {
		return fmt.Errorf("failed to clear: %w", err)
	}

	if err := f.renderer.Copy(f.backbuffer, nil, nil); err != nil {
		return fmt.Errorf("failed to copy backbuffer: %w", err)
	}

	f.renderer.Present()

	return nil
}
