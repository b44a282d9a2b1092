package opcodes

import (
	"bufio"
	"fmt"
	"io"
)

// Operands formats the operand list of the instruction, for example
// "V1, V2" or "I, 0x2a0".
func (o Opcode) Operands() string {
	x, y := o.X(), o.Y()

	switch o.Instruction() {
	case Instruction00E0, Instruction00EE:
		return ""
	case Instruction1NNN, Instruction2NNN:
		return fmt.Sprintf("0x%03x", o.NNN())
	case Instruction3XNN, Instruction4XNN, Instruction6XNN, Instruction7XNN, InstructionCXNN:
		return fmt.Sprintf("V%X, 0x%02x", x, o.NN())
	case Instruction5XY0, Instruction8XY0, Instruction8XY1, Instruction8XY2, Instruction8XY3,
		Instruction8XY4, Instruction8XY5, Instruction8XY6, Instruction8XY7, Instruction8XYE, Instruction9XY0:
		return fmt.Sprintf("V%X, V%X", x, y)
	case InstructionANNN:
		return fmt.Sprintf("I, 0x%03x", o.NNN())
	case InstructionBNNN:
		return fmt.Sprintf("V0, 0x%03x", o.NNN())
	case InstructionDXYN:
		return fmt.Sprintf("V%X, V%X, %d", x, y, o.N())
	case InstructionEX9E, InstructionEXA1:
		return fmt.Sprintf("V%X", x)
	case InstructionFX07:
		return fmt.Sprintf("V%X, DT", x)
	case InstructionFX0A:
		return fmt.Sprintf("V%X, K", x)
	case InstructionFX15:
		return fmt.Sprintf("DT, V%X", x)
	case InstructionFX18:
		return fmt.Sprintf("ST, V%X", x)
	case InstructionFX1E:
		return fmt.Sprintf("I, V%X", x)
	case InstructionFX29:
		return fmt.Sprintf("F, V%X", x)
	case InstructionFX33:
		return fmt.Sprintf("B, V%X", x)
	case InstructionFX55:
		return fmt.Sprintf("[I], V%X", x)
	case InstructionFX65:
		return fmt.Sprintf("V%X, [I]", x)
	}

	return fmt.Sprintf("0x%04x", uint16(o))
}

// Disassemble returns the mnemonic and operands of the opcode, or a data
// word directive for unknown opcodes.
func (o Opcode) Disassemble() string {
	name := o.Mnemonic()
	if name == "" {
		return fmt.Sprintf("dw 0x%04x", uint16(o))
	}

	if operands := o.Operands(); operands != "" {
		return name + " " + operands
	}

	return name
}

// Disassemble writes a linear listing of program to w, one line per 16-bit
// word, with addresses starting at base. A trailing odd byte is listed as
// a data byte.
func Disassemble(w io.Writer, program []uint8, base uint16) error {
	bw := bufio.NewWriter(w)

	i := 0
	for ; i+1 < len(program); i += 2 {
		o := Opcode(uint16(program[i])<<8 | uint16(program[i+1]))
		if _, err := fmt.Fprintf(bw, "0x%03x  %04x  %s\n", int(base)+i, uint16(o), o.Disassemble()); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
	}

	if i < len(program) {
		if _, err := fmt.Fprintf(bw, "0x%03x  %02x    db 0x%02x\n", int(base)+i, program[i], program[i]); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}

	return nil
}
