package memory

import "github.com/WDDnguyen/gomatcha/internal/cartridge"

// writeControl decodes a write into 0x0000-0x7FFF as a bank-controller
// command, per spec.md section 4.2's banking protocol. Writes into
// ROM address space never store a byte; they only ever mutate banking
// state.
func (m *Map) writeControl(addr uint16, value uint8) {
	switch m.cart.Family() {
	case cartridge.FamilyMBC1:
		m.writeMBC1(addr, value)
	case cartridge.FamilyMBC2:
		m.writeMBC2(addr, value)
	default:
		// FamilyNone: no banking hardware, writes are dropped.
	}
}

func (m *Map) writeMBC1(addr uint16, value uint8) {
	switch {
	case addr <= 0x1FFF:
		m.ramEnabled = value&0x0F == 0x0A
	case addr <= 0x3FFF:
		bank := value & 0x1F
		if bank == 0 {
			bank = 1
		}
		m.bank1 = bank
		m.recomputeMBC1Banks()
	case addr <= 0x5FFF:
		m.bank2 = value & 0x03
		m.recomputeMBC1Banks()
	default: // 0x6000-0x7FFF
		m.ramBankingMode = value&0x01 == 0x01
		m.recomputeMBC1Banks()
	}
}

// recomputeMBC1Banks rebuilds currentROMBank/currentRAMBank from the
// bank1/bank2 registers and the banking-mode latch. It is called after
// any of the three inputs changes, rather than computed lazily on
// read, so CurrentROMBank/CurrentRAMBank can be read directly by
// callers (and tests) without re-deriving the mode logic.
func (m *Map) recomputeMBC1Banks() {
	if m.ramBankingMode {
		m.currentROMBank = int(m.bank1)
		m.currentRAMBank = int(m.bank2)
	} else {
		m.currentROMBank = int(m.bank1) | int(m.bank2)<<5
		m.currentRAMBank = 0
	}
	if m.currentROMBank == 0 {
		m.currentROMBank = 1
	}
}

func (m *Map) writeMBC2(addr uint16, value uint8) {
	switch {
	case addr <= 0x3FFF:
		if addr&0x10 == 0 {
			m.ramEnabled = value&0x0F == 0x0A
			return
		}
		bank := value & 0x0F
		if bank == 0 {
			bank = 1
		}
		m.currentROMBank = int(bank)
	default:
		// 0x4000-0x7FFF is unused by MBC2.
	}
}
