// Package memory implements the unified 64 KiB Game Boy address space:
// cartridge bank switching, WRAM echo, and the handful of registers
// whose writes are special-cased (DIV, LY). It owns every byte the CPU,
// timer and PPU read and write.
package memory

import (
	"github.com/WDDnguyen/gomatcha/internal/cartridge"
	"github.com/WDDnguyen/gomatcha/internal/types"
)

// externalRAMSize is the size of the auxiliary external-RAM pool. Real
// MBC1 cartridges expose at most 32 KiB across four 8 KiB banks.
const externalRAMSize = 32 * 1024

// Map is the flat 64 KiB Game Boy address space plus cartridge banking
// state. The zero value is not usable; construct one with New.
type Map struct {
	cart *cartridge.Cartridge

	mem [0x10000]uint8
	ram [externalRAMSize]uint8

	// currentROMBank is 1-based per spec.md's invariant: it is never
	// allowed to settle on 0.
	currentROMBank int
	currentRAMBank int
	ramEnabled     bool
	// ramBankingMode is MBC1's mode latch: false selects ROM-banking
	// mode (bank2 contributes to the ROM bank, RAM bank forced to 0),
	// true selects RAM-banking mode.
	ramBankingMode bool

	// bank1/bank2 are MBC1's raw 5-bit/2-bit registers, kept separate
	// from currentROMBank/currentRAMBank because which one bank2
	// feeds depends on ramBankingMode and must be recomputed whenever
	// either changes.
	bank1 uint8
	bank2 uint8

	// onDivReset is called whenever the CPU writes to 0xFF04. The
	// timer's 16-bit internal divider lives outside this map, so a
	// plain write can't reset it directly; the timer registers itself
	// here via SetDivResetHook instead.
	onDivReset func()
	// onTACWrite is called, with the newly written value, whenever the
	// CPU writes to 0xFF07. The timer's countdown-to-next-increment
	// lives outside this map and must be resynced to the newly
	// selected period immediately, not left to run out the stale one;
	// the timer registers itself here via SetTACWriteHook.
	onTACWrite func(value uint8)
}

// New constructs a Map for the given cartridge. ROM bank defaults to 1
// and external RAM defaults to disabled, matching power-on state.
func New(cart *cartridge.Cartridge) *Map {
	return &Map{
		cart:           cart,
		currentROMBank: 1,
		bank1:          1,
	}
}

// SetDivResetHook registers fn to be called whenever the CPU writes to
// the divider register (0xFF04). Used to wire the timer's internal
// 16-bit counter, which this map does not itself hold.
func (m *Map) SetDivResetHook(fn func()) {
	m.onDivReset = fn
}

// SetTACWriteHook registers fn to be called, with the newly written
// value, whenever the CPU writes to the timer control register
// (0xFF07). Used to resync the timer's internal countdown to a newly
// selected frequency immediately, which this map does not itself
// track.
func (m *Map) SetTACWriteHook(fn func(value uint8)) {
	m.onTACWrite = fn
}

// Read dispatches a CPU (or PPU/timer) read, per spec.md section 4.2.
func (m *Map) Read(addr uint16) uint8 {
	switch {
	case addr <= types.ROMBank0End:
		return m.cart.ReadBank(0, addr)
	case addr <= types.ROMBankNEnd:
		return m.cart.ReadBank(m.currentROMBank, addr-types.ROMBankNStart)
	case addr >= types.ExternalRAMStart && addr <= types.ExternalRAMEnd:
		if !m.ramEnabled {
			return 0xFF
		}
		return m.ram[m.ramOffset(addr)]
	default:
		return m.mem[addr]
	}
}

// Write dispatches a CPU write, per spec.md section 4.2.
func (m *Map) Write(addr uint16, value uint8) {
	switch {
	case addr <= types.ROMBankNEnd:
		m.writeControl(addr, value)
	case addr >= types.ExternalRAMStart && addr <= types.ExternalRAMEnd:
		if m.ramEnabled {
			m.ram[m.ramOffset(addr)] = value
		}
	case addr >= types.WRAMStart && addr <= 0xDDFF:
		m.mem[addr] = value
		m.mem[addr+0x2000] = value
	case addr >= types.EchoStart && addr <= types.EchoEnd:
		m.mem[addr] = value
		m.mem[addr-0x2000] = value
	case addr == types.DIV:
		m.mem[addr] = 0
		if m.onDivReset != nil {
			m.onDivReset()
		}
	case addr == types.LY:
		m.mem[addr] = 0
	case addr == types.TAC:
		m.mem[addr] = value
		if m.onTACWrite != nil {
			m.onTACWrite(value)
		}
	case addr >= types.UnusableStart && addr <= types.UnusableEnd:
		// dropped: OAM corruption region is inaccessible.
	default:
		m.mem[addr] = value
	}
}

// ramOffset computes the index into the external-RAM pool for addr,
// given the cartridge's declared RAM size and the current bank. A bank
// selection beyond what the cartridge declares is wrapped, mirroring
// the wraparound ReadBank already applies to ROM banks.
func (m *Map) ramOffset(addr uint16) int {
	size := m.cart.RAMSize()
	if size == 0 {
		size = 0x2000
	}
	banks := size / 0x2000
	if banks == 0 {
		banks = 1
	}
	bank := m.currentRAMBank % banks
	return bank*0x2000 + int(addr-types.ExternalRAMStart)
}

// CurrentROMBank reports the bank currently visible at 0x4000-0x7FFF.
func (m *Map) CurrentROMBank() int { return m.currentROMBank }

// CurrentRAMBank reports the external RAM bank currently visible at
// 0xA000-0xBFFF.
func (m *Map) CurrentRAMBank() int { return m.currentRAMBank }

// RAMEnabled reports whether external RAM is currently readable and
// writable.
func (m *Map) RAMEnabled() bool { return m.ramEnabled }

// SetRaw is an escape hatch used by cpu.InitializePostBoot to seed I/O
// register defaults, and by the PPU and timer to update their own
// registers, without going through Write's special-cased DIV/LY reset
// behaviour.
func (m *Map) SetRaw(addr uint16, value uint8) {
	m.mem[addr] = value
}
