package emulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"terminal", func(c *Config) { c.Frontend = FrontendTerminal }, false},
		{"ebiten", func(c *Config) { c.Frontend = FrontendEbiten }, false},
		{"unknown frontend", func(c *Config) { c.Frontend = "vga" }, true},
		{"zero rate", func(c *Config) { c.Rate = 0 }, true},
		{"huge rate", func(c *Config) { c.Rate = maxRate + 1 }, true},
		{"zero timer rate", func(c *Config) { c.TimerHz = 0 }, true},
		{"negative scale", func(c *Config) { c.Scale = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, FrontendSDL, cfg.Frontend)
	assert.Equal(t, 500, cfg.Rate)
	assert.Equal(t, 60, cfg.TimerHz)
	assert.False(t, cfg.Quirks.ShiftUsesVY)
}

func TestNewLogger(t *testing.T) {
	for _, cfg := range []Config{{}, {Debug: true}, {Quiet: true}} {
		assert.NotNil(t, NewLogger(cfg))
	}
}
