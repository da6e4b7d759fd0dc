// Package cpu implements the Sharp LR35902 instruction interpreter:
// the register file, the 256-entry (plus 256-entry CB-prefixed) opcode
// dispatch tables, and the HALT/EI-delay state machine.
package cpu

import (
	"fmt"

	"github.com/WDDnguyen/gomatcha/internal/interrupts"
	"github.com/WDDnguyen/gomatcha/internal/memory"
	"github.com/WDDnguyen/gomatcha/internal/types"
)

// CPU is the Sharp LR35902 interpreter. A zero CPU is not usable;
// construct one with New.
type CPU struct {
	Registers

	PC uint16
	SP uint16

	mem *memory.Map
	ic  *interrupts.Controller

	// halted is true between a HALT instruction and the interrupt
	// controller reporting a pending, enabled source, per spec.md
	// section 4.3.2.
	halted bool
}

// New returns a CPU wired to mem and ic. Registers and PC/SP start at
// their zero values; call InitializePostBoot to reach the state a real
// Game Boy is in once its internal boot ROM has handed off control.
func New(mem *memory.Map, ic *interrupts.Controller) *CPU {
	return &CPU{mem: mem, ic: ic}
}

// postBootIO is the fixed table of I/O register defaults
// initialize_post_boot writes, taken from the boot ROM's handoff
// state (original_source/cpu.c's initialize_emulator_state).
var postBootIO = []struct {
	addr  uint16
	value uint8
}{
	{0xFF05, 0x00}, // TIMA
	{0xFF06, 0x00}, // TMA
	{0xFF07, 0x00}, // TAC
	{0xFF10, 0x80}, // NR10
	{0xFF11, 0xBF}, // NR11
	{0xFF12, 0xF3}, // NR12
	{0xFF14, 0xBF}, // NR14
	{0xFF16, 0x3F}, // NR21
	{0xFF17, 0x00}, // NR22
	{0xFF19, 0xBF}, // NR24
	{0xFF1A, 0x7F}, // NR30
	{0xFF1B, 0xFF}, // NR31
	{0xFF1C, 0x9F}, // NR32
	{0xFF1E, 0xBF}, // NR34
	{0xFF20, 0xFF}, // NR41
	{0xFF21, 0x00}, // NR42
	{0xFF22, 0x00}, // NR43
	{0xFF23, 0xBF}, // NR44
	{0xFF24, 0x77}, // NR50
	{0xFF25, 0xF3}, // NR51
	{0xFF26, 0xF1}, // NR52
	{0xFF40, 0x91}, // LCDC
	{0xFF42, 0x00}, // SCY
	{0xFF43, 0x00}, // SCX
	{0xFF45, 0x00}, // LYC
	{0xFF47, 0xFC}, // BGP
	{0xFF48, 0xFF}, // OBP0
	{0xFF49, 0xFF}, // OBP1
	{0xFF4A, 0x00}, // WY
	{0xFF4B, 0x00}, // WX
	{0xFFFF, 0x00}, // IE
}

// InitializePostBoot sets the architectural state a real DMG is in
// immediately after its internal boot ROM jumps to 0x0100, per
// spec.md section 4.3.
func (c *CPU) InitializePostBoot() {
	c.PC = 0x0100
	c.SP = 0xFFFE
	c.SetAF(0x01B0)
	c.SetBC(0x0013)
	c.SetDE(0x00D8)
	c.SetHL(0x014D)

	for _, reg := range postBootIO {
		c.mem.SetRaw(reg.addr, reg.value)
	}
}

func (c *CPU) fetch8() uint8 {
	v := c.mem.Read(c.PC)
	c.PC++
	return v
}

// fetch16 reads a little-endian 16-bit immediate: low byte first, then
// high byte. The source reads high-then-low; spec.md section 4.3.1
// calls this out as a bug a port must not repeat.
func (c *CPU) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) push16(v uint16) {
	c.SP--
	c.mem.Write(c.SP, uint8(v>>8))
	c.SP--
	c.mem.Write(c.SP, uint8(v))
}

func (c *CPU) pop16() uint16 {
	lo := c.mem.Read(c.SP)
	c.SP++
	hi := c.mem.Read(c.SP)
	c.SP++
	return uint16(hi)<<8 | uint16(lo)
}

// Step fetches one byte at PC, dispatches it, and returns the elapsed
// machine-cycle count for that instruction. If the CPU is halted it
// instead consumes 4 cycles without fetching, waking once the
// interrupt controller reports a pending source. An opcode with no
// handler (one of the eleven real illegal Game Boy bytes) is reported
// as *types.InvalidOpcodeError rather than dispatched.
func (c *CPU) Step() (int, error) {
	if c.halted {
		if c.ic.Pending() {
			c.halted = false
		} else {
			return 4, nil
		}
	}

	pc := c.PC
	opcode := c.fetch8()

	if opcode == 0xCB {
		cb := c.fetch8()
		handler := opcodesCB[cb]
		return handler(c), nil
	}

	handler := opcodes[opcode]
	if handler == nil {
		return 4, &types.InvalidOpcodeError{PC: pc, Byte: opcode}
	}
	return handler(c), nil
}

// ServiceInterrupt performs the fixed interrupt-service sequence:
// push the current PC and jump to vector. The interrupt controller has
// already cleared IME and the corresponding IF bit by the time this is
// called (see interrupts.Controller.Dispatch); this also wakes a
// halted CPU, since dispatch only happens once a source is both
// pending and enabled.
func (c *CPU) ServiceInterrupt(vector uint16) {
	c.halted = false
	c.push16(c.PC)
	c.PC = vector
}

// Halt puts the CPU into its HALT state; see spec.md section 4.3.2.
func (c *CPU) Halt() { c.halted = true }

// Halted reports whether the CPU is currently halted.
func (c *CPU) Halted() bool { return c.halted }

func (c *CPU) String() string {
	return fmt.Sprintf("PC=%04X SP=%04X AF=%04X BC=%04X DE=%04X HL=%04X",
		c.PC, c.SP, c.AF(), c.BC(), c.DE(), c.HL())
}
