package emulator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrogolib/log"

	"chip8vm/chip8"
	"chip8vm/chip8/opcodes"
)

// Machine is the part of the engine the run loop drives.
type Machine interface {
	Step() (chip8.Effect, error)
	DecrementTimers()
	SetKeypad(mask uint16)
	AwaitingKey() (uint8, bool)
	DeliverKey(key uint8) error
	Opcode() (opcodes.Opcode, bool)
	PC() uint16
}

type runner struct {
	logger   *log.Logger
	machine  Machine
	frontend Frontend
	trace    bool

	previousKeys uint16
}

// Run executes machine until the frontend asks to quit, ctx is cancelled or
// the machine faults. Instructions run at cfg.Rate and the timers count
// down at cfg.TimerHz, each on its own ticker.
func Run(ctx context.Context, logger *log.Logger, machine Machine, frontend Frontend, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := frontend.Init(); err != nil {
		return fmt.Errorf("failed to init frontend: %w", err)
	}
	defer func() {
		if err := frontend.Close(); err != nil {
			logger.Error("Closing frontend failed", log.Err(err))
		}
	}()

	r := &runner{
		logger:   logger,
		machine:  machine,
		frontend: frontend,
		trace:    cfg.Debug,
	}

	cpu := time.NewTicker(time.Second / time.Duration(cfg.Rate))
	defer cpu.Stop()

	timers := time.NewTicker(time.Second / time.Duration(cfg.TimerHz))
	defer timers.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-timers.C:
			machine.DecrementTimers()

		case <-cpu.C:
			quit, err := r.cycle()
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		}
	}
}

// cycle samples the keyboard once, hands a pending key to the machine and
// executes one instruction.
func (r *runner) cycle() (bool, error) {
	input, err := r.frontend.Poll()
	if err != nil {
		return false, fmt.Errorf("failed to poll input: %w", err)
	}
	if input.Quit {
		r.logger.Debug("Quit requested")
		return true, nil
	}

	r.machine.SetKeypad(input.Keys)
	previous := r.previousKeys
	r.previousKeys = input.Keys

	if reg, waiting := r.machine.AwaitingKey(); waiting {
		key, ok := NewlyPressed(previous, input.Keys)
		if !ok {
			return false, nil
		}
		if err := r.machine.DeliverKey(key); err != nil {
			return false, fmt.Errorf("failed to deliver key: %w", err)
		}
		r.logger.Debug("Key delivered", log.Uint8("key", key), log.Uint8("register", reg))
	}

	if r.trace {
		r.traceStep()
	}

	effect, err := r.machine.Step()
	if err != nil {
		r.reportFault(err)
		return false, fmt.Errorf("failed to cycle: %w", err)
	}

	switch effect.Kind {
	case chip8.EffectRedraw:
		if err := r.frontend.Draw(effect.Frame); err != nil {
			return false, fmt.Errorf("failed to present: %w", err)
		}
	case chip8.EffectAwaitKey:
		reg, _ := r.machine.AwaitingKey()
		r.logger.Debug("Waiting for key", log.Uint8("register", reg))
	case chip8.EffectNone:
	}

	return false, nil
}

func (r *runner) traceStep() {
	opcode, ok := r.machine.Opcode()
	if !ok {
		return
	}

	r.logger.Debug("Step",
		log.Hex("pc", r.machine.PC()),
		log.Hex("opcode", uint16(opcode)),
		log.String("instruction", opcode.Disassemble()))
}

func (r *runner) reportFault(err error) {
	var execErr *chip8.ExecutionError
	if !errors.As(err, &execErr) {
		r.logger.Error("Execution failed", log.Err(err))
		return
	}

	r.logger.Error("Execution failed",
		log.Hex("pc", execErr.PC),
		log.Hex("opcode", uint16(execErr.Opcode)),
		log.Stringer("instruction", execErr.Opcode.Instruction()),
		log.Err(execErr.Err))
}
