package chip8

import (
	"encoding/binary"
	"fmt"

	"chip8vm/chip8/opcodes"
)

// Step executes a single instruction. While the machine waits for a key it
// fetches nothing and keeps returning EffectAwaitKey. Any error is fatal:
// the state stays inspectable but must not be stepped again.
func (c *Chip8) Step() (Effect, error) {
	if c.awaitingKey {
		return Effect{Kind: EffectAwaitKey}, nil
	}

	pc := c.pc
	if int(pc)+1 >= MemorySize {
		return Effect{}, &ExecutionError{PC: pc, Err: fmt.Errorf("%w: fetch", ErrMemoryOutOfBounds)}
	}

	opcode := c.fetch()

	effect, err := c.execute(opcode)
	if err != nil {
		return Effect{}, &ExecutionError{PC: pc, Opcode: opcode, Err: err}
	}

	return effect, nil
}

func (c *Chip8) fetch() opcodes.Opcode {
	opcode := binary.BigEndian.Uint16(c.memory[c.pc : c.pc+2])
	c.pc += 2

	return opcodes.Opcode(opcode)
}

// span returns n bytes of memory starting at I.
func (c *Chip8) span(n int) ([]uint8, error) {
	start := int(c.i)
	if start+n > MemorySize {
		return nil, fmt.Errorf("%w: %d bytes at I=0x%04x", ErrMemoryOutOfBounds, n, c.i)
	}

	return c.memory[start : start+n], nil
}

func (c *Chip8) skipIf(cond bool) {
	if cond {
		c.pc += 2
	}
}

func flag(b bool) uint8 {
	if b {
		return 1
	}

	return 0
}

func (c *Chip8) execute(opcode opcodes.Opcode) (Effect, error) {
	x, y := opcode.X(), opcode.Y()

	switch opcode.Instruction() {
	case opcodes.Instruction00E0: // clear screen
		c.display.Clear()
		return Effect{Kind: EffectRedraw, Frame: c.display.Frame()}, nil

	case opcodes.Instruction00EE: // return
		if c.sp == 0 {
			return Effect{}, ErrStackUnderflow
		}
		c.sp--
		c.pc = c.stack[c.sp]

	case opcodes.Instruction1NNN: // jump
		c.pc = opcode.NNN()

	case opcodes.Instruction2NNN: // call
		if int(c.sp) >= StackSize {
			return Effect{}, ErrStackOverflow
		}
		c.stack[c.sp] = c.pc
		c.sp++
		c.pc = opcode.NNN()

	case opcodes.Instruction3XNN:
		c.skipIf(c.v[x] == opcode.NN())
	case opcodes.Instruction4XNN:
		c.skipIf(c.v[x] != opcode.NN())
	case opcodes.Instruction5XY0:
		c.skipIf(c.v[x] == c.v[y])
	case opcodes.Instruction9XY0:
		c.skipIf(c.v[x] != c.v[y])

	case opcodes.Instruction6XNN:
		c.v[x] = opcode.NN()
	case opcodes.Instruction7XNN:
		c.v[x] += opcode.NN()

	case opcodes.Instruction8XY0:
		c.v[x] = c.v[y]
	case opcodes.Instruction8XY1:
		c.v[x] |= c.v[y]
	case opcodes.Instruction8XY2:
		c.v[x] &= c.v[y]
	case opcodes.Instruction8XY3:
		c.v[x] ^= c.v[y]

	// The flag is written after the result so that it survives when X is F.
	case opcodes.Instruction8XY4:
		sum := uint16(c.v[x]) + uint16(c.v[y])
		c.v[x] = uint8(sum)
		c.v[flagRegister] = flag(sum > 0xFF)
	case opcodes.Instruction8XY5:
		vx, vy := c.v[x], c.v[y]
		c.v[x] = vx - vy
		c.v[flagRegister] = flag(vx > vy)
	case opcodes.Instruction8XY7:
		vx, vy := c.v[x], c.v[y]
		c.v[x] = vy - vx
		c.v[flagRegister] = flag(vy > vx)
	case opcodes.Instruction8XY6:
		operand := c.shiftOperand(x, y)
		c.v[x] = operand >> 1
		c.v[flagRegister] = operand & 0x1
	case opcodes.Instruction8XYE:
		operand := c.shiftOperand(x, y)
		c.v[x] = operand << 1
		c.v[flagRegister] = operand >> 7

	case opcodes.InstructionANNN: // set index
		c.i = opcode.NNN()
	case opcodes.InstructionBNNN: // jump with offset
		c.pc = opcode.NNN() + uint16(c.v[0])
	case opcodes.InstructionCXNN: // random
		c.v[x] = c.random() & opcode.NN()

	case opcodes.InstructionDXYN: // display
		sprite, err := c.span(int(opcode.N()))
		if err != nil {
			return Effect{}, err
		}

		c.v[flagRegister] = 0
		if c.display.DrawSprite(c.v[x], c.v[y], sprite) {
			c.v[flagRegister] = 1
		}

		return Effect{Kind: EffectRedraw, Frame: c.display.Frame()}, nil

	case opcodes.InstructionEX9E:
		c.skipIf(c.keyDown(c.v[x]))
	case opcodes.InstructionEXA1:
		c.skipIf(!c.keyDown(c.v[x]))

	// timers
	case opcodes.InstructionFX07:
		c.v[x] = c.delayTimer
	case opcodes.InstructionFX15:
		c.delayTimer = c.v[x]
	case opcodes.InstructionFX18:
		c.soundTimer = c.v[x]

	case opcodes.InstructionFX0A: // get key
		c.awaitingKey = true
		c.keyRegister = x
		return Effect{Kind: EffectAwaitKey}, nil

	case opcodes.InstructionFX1E: // add to index, unmasked
		c.i += uint16(c.v[x])
	case opcodes.InstructionFX29: // font char
		c.i = FontBase + uint16(c.v[x]&0xF)*GlyphSize

	case opcodes.InstructionFX33: // decimal conversion
		digits, err := c.span(3)
		if err != nil {
			return Effect{}, err
		}
		digits[0] = c.v[x] / 100
		digits[1] = (c.v[x] / 10) % 10
		digits[2] = c.v[x] % 10

	case opcodes.InstructionFX55: // store
		dst, err := c.span(int(x) + 1)
		if err != nil {
			return Effect{}, err
		}
		copy(dst, c.v[:x+1])
		c.advanceIndex(x)
	case opcodes.InstructionFX65: // load
		src, err := c.span(int(x) + 1)
		if err != nil {
			return Effect{}, err
		}
		copy(c.v[:x+1], src)
		c.advanceIndex(x)

	default:
		return Effect{}, ErrInvalidOpcode
	}

	return Effect{}, nil
}

func (c *Chip8) shiftOperand(x, y uint8) uint8 {
	if c.quirks.ShiftUsesVY {
		return c.v[y]
	}

	return c.v[x]
}

func (c *Chip8) advanceIndex(x uint8) {
	if c.quirks.IncrementIndex {
		c.i += uint16(x) + 1
	}
}

// keyDown tests the keypad bit for key; only the low nibble selects a key.
func (c *Chip8) keyDown(key uint8) bool {
	return c.keypad>>(key&0xF)&0x1 == 1
}
