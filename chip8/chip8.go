package chip8

import (
	"fmt"
	"io"
	"os"

	"chip8vm/chip8/display"
	"chip8vm/chip8/opcodes"
)

const (
	MemorySize   int    = 4096
	ProgramStart uint16 = 0x200
	FontBase     uint16 = 0x000
	GlyphSize    uint16 = 5
	StackSize    int    = 16
	NumRegisters int    = 16
	NumKeys      int    = 16

	// MaxProgramSize is the largest image that fits between ProgramStart
	// and the end of memory.
	MaxProgramSize = MemorySize - int(ProgramStart)

	flagRegister = 0xF
)

var fontSet = [80]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, //0
	0x20, 0x60, 0x20, 0x20, 0x70, //1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, //2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, //3
	0x90, 0x90, 0xF0, 0x10, 0x10, //4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, //5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, //6
	0xF0, 0x10, 0x20, 0x40, 0x40, //7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, //8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, //9
	0xF0, 0x90, 0xF0, 0x90, 0x90, //A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, //B
	0xF0, 0x80, 0x80, 0x80, 0xF0, //C
	0xE0, 0x90, 0x90, 0x90, 0xE0, //D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, //E
	0xF0, 0x80, 0xF0, 0x80, 0x80, //F
}

// Font returns a copy of the built-in hexadecimal digit sprites.
func Font() [80]uint8 {
	return fontSet
}

// Chip8 is the complete machine state. It is not safe for concurrent use;
// the host serialises calls to Step, DecrementTimers and the key methods.
type Chip8 struct {
	v  [NumRegisters]uint8
	i  uint16
	pc uint16

	stack [StackSize]uint16
	sp    uint16

	memory [MemorySize]uint8

	display display.Buffer
	keypad  uint16

	delayTimer uint8
	soundTimer uint8

	awaitingKey bool
	keyRegister uint8

	quirks Quirks
	random func() uint8
}

// New creates a machine with the font table and program in memory.
func New(program []uint8, opts ...Option) (*Chip8, error) {
	if len(program) > MaxProgramSize {
		return nil, &LoadError{
			Op:  "size",
			Err: fmt.Errorf("%w: %d bytes, at most %d allowed", ErrProgramTooLarge, len(program), MaxProgramSize),
		}
	}

	c := &Chip8{
		pc:     ProgramStart,
		random: randomByte,
	}
	for _, opt := range opts {
		opt(c)
	}

	copy(c.memory[FontBase:], fontSet[:])
	copy(c.memory[ProgramStart:], program)

	return c, nil
}

// Load reads a raw program image from r.
func Load(r io.Reader, opts ...Option) (*Chip8, error) {
	b, err := io.ReadAll(io.LimitReader(r, int64(MaxProgramSize)+1))
	if err != nil {
		return nil, &LoadError{Op: "read", Err: err}
	}

	return New(b, opts...)
}

// LoadFile reads a raw program image from the named file.
func LoadFile(filename string, opts ...Option) (*Chip8, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, &LoadError{Op: "open", Err: err}
	}
	defer f.Close()

	return Load(f, opts...)
}

// SetKeypad stores the host's snapshot of held keys, bit n for key n.
func (c *Chip8) SetKeypad(mask uint16) {
	c.keypad = mask
}

// AwaitingKey returns the register that receives the next key while the
// machine is blocked on FX0A.
func (c *Chip8) AwaitingKey() (uint8, bool) {
	return c.keyRegister, c.awaitingKey
}

// DeliverKey completes a pending FX0A by storing key in its register.
func (c *Chip8) DeliverKey(key uint8) error {
	if !c.awaitingKey {
		return ErrNotAwaitingKey
	}
	if int(key) >= NumKeys {
		return fmt.Errorf("%w: 0x%02x", ErrInvalidKey, key)
	}

	c.v[c.keyRegister] = key
	c.awaitingKey = false

	return nil
}

// DecrementTimers counts both timers down by one, stopping at zero. The host
// calls it at 60 Hz independently of the instruction rate.
func (c *Chip8) DecrementTimers() {
	if c.delayTimer > 0 {
		c.delayTimer--
	}

	if c.soundTimer > 0 {
		c.soundTimer--
	}
}

func (c *Chip8) DelayTimer() uint8 {
	return c.delayTimer
}

func (c *Chip8) SoundTimer() uint8 {
	return c.soundTimer
}

// SoundActive reports whether the buzzer would be sounding.
func (c *Chip8) SoundActive() bool {
	return c.soundTimer > 0
}

func (c *Chip8) PC() uint16 {
	return c.pc
}

func (c *Chip8) I() uint16 {
	return c.i
}

func (c *Chip8) V(n uint8) uint8 {
	return c.v[n&0xF]
}

func (c *Chip8) SP() uint16 {
	return c.sp
}

// Stack returns the active return addresses, oldest first.
func (c *Chip8) Stack() []uint16 {
	s := make([]uint16, c.sp)
	copy(s, c.stack[:c.sp])

	return s
}

func (c *Chip8) Keypad() uint16 {
	return c.keypad
}

// ReadMemory returns the byte at addr; addresses wrap at the memory size.
func (c *Chip8) ReadMemory(addr uint16) uint8 {
	return c.memory[int(addr)%MemorySize]
}

func (c *Chip8) Frame() display.Frame {
	return c.display.Frame()
}

// Opcode returns the instruction word at the program counter without
// executing it. ok is false if the program counter is out of memory.
func (c *Chip8) Opcode() (opcodes.Opcode, bool) {
	if int(c.pc)+1 >= MemorySize {
		return 0, false
	}

	return opcodes.Opcode(uint16(c.memory[c.pc])<<8 | uint16(c.memory[c.pc+1])), true
}
