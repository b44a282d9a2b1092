// Package main implements a CHIP-8 emulator with SDL, Ebitengine and
// terminal frontends.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"

	"chip8vm/chip8"
	"chip8vm/chip8/opcodes"
	"chip8vm/emulator"
	"chip8vm/frontend/ebitenui"
	"chip8vm/frontend/sdlui"
	"chip8vm/frontend/termui"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

const keyHelp = `keys:
  1 2 3 4      1 2 3 C
  q w e r  ->  4 5 6 D
  a s d f      7 8 9 E
  z x c v      A 0 B F
  Esc quits
`

type optionFlags struct {
	input string

	disasm      bool
	showVersion bool
}

// SDL and the Ebitengine window need the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	options, cfg := readArguments()
	logger := emulator.NewLogger(cfg)

	if options.showVersion {
		fmt.Printf("chip8vm %s\n", buildinfo.Version(version, commit, date))
		return
	}

	logger.Debug("chip8vm", log.String("version", buildinfo.Version(version, commit, date)))

	var err error
	if options.disasm {
		err = disasmFile(options.input)
	} else {
		err = runFile(app.Context(), logger, options.input, cfg)
	}
	if err != nil {
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}

func readArguments() (optionFlags, emulator.Config) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	options := optionFlags{}
	cfg := emulator.DefaultConfig()

	flags.StringVar(&cfg.Frontend, "frontend", cfg.Frontend, "frontend to use: "+strings.Join(emulator.Frontends(), ", "))
	flags.IntVar(&cfg.Rate, "rate", cfg.Rate, "instructions executed per second")
	flags.IntVar(&cfg.TimerHz, "timer-hz", cfg.TimerHz, "timer decrements per second")
	flags.IntVar(&cfg.Scale, "scale", cfg.Scale, "window pixels per CHIP-8 pixel")
	flags.BoolVar(&cfg.Quirks.ShiftUsesVY, "shift-vy", false, "shift instructions read VY instead of VX")
	flags.BoolVar(&cfg.Quirks.IncrementIndex, "increment-index", false, "FX55 and FX65 advance I past the copied registers")
	flags.BoolVar(&options.disasm, "disasm", false, "print a disassembly of the program and exit")
	flags.BoolVar(&cfg.Debug, "debug", false, "trace every executed instruction")
	flags.BoolVar(&cfg.Quiet, "q", false, "only log errors")
	flags.BoolVar(&options.showVersion, "version", false, "print the version and exit")

	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: %s [options] <program file>\n\n", filepath.Base(os.Args[0]))
		flags.PrintDefaults()
		fmt.Fprintf(flags.Output(), "\n%s", keyHelp)
	}

	err := flags.Parse(os.Args[1:])
	args := flags.Args()

	if options.showVersion {
		return options, cfg
	}
	if err != nil || len(args) == 0 {
		flags.Usage()
		os.Exit(1)
	}
	options.input = args[0]

	return options, cfg
}

func disasmFile(filename string) error {
	program, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading file '%s': %w", filename, err)
	}

	return opcodes.Disassemble(os.Stdout, program, chip8.ProgramStart)
}

func runFile(ctx context.Context, logger *log.Logger, filename string, cfg emulator.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	machine, err := chip8.LoadFile(filename, chip8.WithQuirks(cfg.Quirks))
	if err != nil {
		return err
	}

	title := "Chip 8 - " + filepath.Base(filename)
	logger.Info("Starting emulation",
		log.String("program", filename),
		log.String("frontend", cfg.Frontend),
		log.Int("rate", cfg.Rate))

	switch cfg.Frontend {
	case emulator.FrontendTerminal:
		return emulator.Run(ctx, logger, machine, termui.New(os.Stdin, os.Stdout), cfg)

	case emulator.FrontendEbiten:
		ui := ebitenui.New(title, cfg.Scale)
		done := make(chan error, 1)
		go func() {
			done <- emulator.Run(ctx, logger, machine, ui, cfg)
		}()

		// the window owns the main goroutine until it closes
		if err := ui.RunGame(); err != nil {
			return fmt.Errorf("running window: %w", err)
		}
		return <-done

	default:
		return emulator.Run(ctx, logger, machine, sdlui.New(title, cfg.Scale), cfg)
	}
}
