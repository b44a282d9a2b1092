package emulator

import (
	"fmt"
	"slices"

	"github.com/retroenv/retrogolib/log"

	"chip8vm/chip8"
)

const (
	FrontendSDL      = "sdl"
	FrontendEbiten   = "ebiten"
	FrontendTerminal = "terminal"

	cyclesPerSecond = 500
	timerHz         = 60
	defaultScale    = 10

	maxRate = 100000
)

// Frontends lists the names accepted in Config.Frontend.
func Frontends() []string {
	return []string{FrontendSDL, FrontendEbiten, FrontendTerminal}
}

type Config struct {
	Frontend string
	// Rate is the number of instructions executed per second.
	Rate int
	// TimerHz is the rate at which the delay and sound timers count down.
	TimerHz int
	// Scale is the size of a CHIP-8 pixel in window pixels.
	Scale  int
	Quirks chip8.Quirks

	Debug bool
	Quiet bool
}

func DefaultConfig() Config {
	return Config{
		Frontend: FrontendSDL,
		Rate:     cyclesPerSecond,
		TimerHz:  timerHz,
		Scale:    defaultScale,
	}
}

func (c Config) Validate() error {
	if !slices.Contains(Frontends(), c.Frontend) {
		return fmt.Errorf("unsupported frontend '%s'", c.Frontend)
	}
	if c.Rate <= 0 || c.Rate > maxRate {
		return fmt.Errorf("instruction rate %d out of range 1-%d", c.Rate, maxRate)
	}
	if c.TimerHz <= 0 || c.TimerHz > maxRate {
		return fmt.Errorf("timer rate %d out of range 1-%d", c.TimerHz, maxRate)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("invalid scale %d", c.Scale)
	}

	return nil
}

// NewLogger creates a logger with the level selected by the debug and quiet
// settings.
func NewLogger(c Config) *log.Logger {
	cfg := log.DefaultConfig()
	if c.Debug {
		cfg.Level = log.DebugLevel
	} else if c.Quiet {
		cfg.Level = log.ErrorLevel
	}

	return log.NewWithConfig(cfg)
}
