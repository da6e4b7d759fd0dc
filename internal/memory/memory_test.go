package memory

import (
	"testing"

	"github.com/WDDnguyen/gomatcha/internal/cartridge"
)

// romOfSize builds a minimal valid ROM image of the given size (a
// multiple of 0x4000), with the given cartridge-type and RAM-size-code
// header bytes. Each bank's first byte is stamped with the bank index
// so bank switching can be observed by reading it back.
func romOfSize(banks int, cartType uint8, ramCode uint8) []byte {
	rom := make([]byte, banks*0x4000)
	rom[0x0147] = cartType
	switch banks {
	case 2:
		rom[0x0148] = 0x00
	case 4:
		rom[0x0148] = 0x01
	case 8:
		rom[0x0148] = 0x02
	case 128:
		rom[0x0148] = 0x06
	default:
		rom[0x0148] = 0x00
	}
	rom[0x0149] = ramCode
	for b := 0; b < banks; b++ {
		rom[b*0x4000] = uint8(b)
	}
	return rom
}

func newMBC1Map(t *testing.T, banks int) *Map {
	t.Helper()
	cart, err := cartridge.New(romOfSize(banks, 0x01, 0x02))
	if err != nil {
		t.Fatalf("cartridge.New: %v", err)
	}
	return New(cart)
}

func newMBC2Map(t *testing.T) *Map {
	t.Helper()
	cart, err := cartridge.New(romOfSize(4, 0x05, 0x00))
	if err != nil {
		t.Fatalf("cartridge.New: %v", err)
	}
	return New(cart)
}

func TestWRAMEchoMirrorsOnBothWrites(t *testing.T) {
	m := New(cartridge.NewEmptyCartridge())

	m.Write(0xC010, 0x42)
	if got := m.Read(0xE010); got != 0x42 {
		t.Errorf("echo read = %#02x, want 0x42", got)
	}

	m.Write(0xE020, 0x99)
	if got := m.Read(0xC020); got != 0x99 {
		t.Errorf("WRAM read after echo write = %#02x, want 0x99", got)
	}
}

func TestDIVWriteResetsAndInvokesHook(t *testing.T) {
	m := New(cartridge.NewEmptyCartridge())
	m.SetRaw(0xFF04, 0x37)

	called := false
	m.SetDivResetHook(func() { called = true })

	m.Write(0xFF04, 0xAB) // any value written to DIV resets it to 0
	if got := m.Read(0xFF04); got != 0 {
		t.Errorf("DIV = %#02x after write, want 0x00", got)
	}
	if !called {
		t.Errorf("writing DIV did not invoke the reset hook")
	}
}

func TestLYWriteAlwaysResetsToZero(t *testing.T) {
	m := New(cartridge.NewEmptyCartridge())
	m.SetRaw(0xFF44, 99)

	m.Write(0xFF44, 42)
	if got := m.Read(0xFF44); got != 0 {
		t.Errorf("LY = %d after write, want 0", got)
	}
}

func TestExternalRAMDisabledReadsAsFF(t *testing.T) {
	m := newMBC1Map(t, 2)
	if got := m.Read(0xA000); got != 0xFF {
		t.Errorf("RAM read while disabled = %#02x, want 0xFF", got)
	}
}

func TestExternalRAMEnableGatesReadsAndWrites(t *testing.T) {
	m := newMBC1Map(t, 2)

	m.Write(0xA000, 0x55) // RAM disabled: the write must be dropped
	if got := m.Read(0xA000); got != 0xFF {
		t.Errorf("disabled-RAM write leaked through: read back %#02x", got)
	}

	m.Write(0x0000, 0x0A) // enable external RAM
	m.Write(0xA000, 0x55)
	if got := m.Read(0xA000); got != 0x55 {
		t.Errorf("RAM read after enable = %#02x, want 0x55", got)
	}
}

// TestMBC2RAMIsUsableDespiteZeroHeaderRAMSize guards against the bug
// where gating external-RAM access on cartridge.RAMSize() > 0 would
// silently disable MBC2's built-in RAM, since MBC2 cartridges
// conventionally declare a RAM-size header code of 0.
func TestMBC2RAMIsUsableDespiteZeroHeaderRAMSize(t *testing.T) {
	m := newMBC2Map(t)
	if m.cart.RAMSize() != 0 {
		t.Fatalf("test fixture invariant broken: RAMSize = %d, want 0", m.cart.RAMSize())
	}

	m.Write(0x0000, 0x0A) // enable RAM (bit 4 of address clear)
	m.Write(0xA000, 0x0F)
	if got := m.Read(0xA000); got != 0x0F {
		t.Errorf("MBC2 RAM read = %#02x, want 0x0F", got)
	}
}

func TestMBC1ROMBankSwitchViaBank1Register(t *testing.T) {
	m := newMBC1Map(t, 8)

	m.Write(0x2000, 0x03) // select ROM bank 3
	if got := m.CurrentROMBank(); got != 3 {
		t.Errorf("CurrentROMBank() = %d, want 3", got)
	}
	if got := m.Read(0x4000); got != 3 {
		t.Errorf("bank-switched read = %#02x, want 3 (the bank index stamp)", got)
	}
}

func TestMBC1Bank1ZeroIsRemappedToOne(t *testing.T) {
	m := newMBC1Map(t, 8)

	m.Write(0x2000, 0x00) // the classic MBC1 quirk: 0 selects bank 1
	if got := m.CurrentROMBank(); got != 1 {
		t.Errorf("CurrentROMBank() = %d, want 1 (0 remaps to 1)", got)
	}
}

func TestMBC1RAMBankingModeSelectsRAMBankFromBank2(t *testing.T) {
	m := newMBC1Map(t, 2)

	m.Write(0x6000, 0x01) // RAM banking mode
	m.Write(0x4000, 0x02) // bank2 = 2
	if got := m.CurrentRAMBank(); got != 2 {
		t.Errorf("CurrentRAMBank() = %d, want 2", got)
	}
	// In RAM-banking mode bank2 no longer contributes to the ROM bank.
	if got := m.CurrentROMBank(); got != 1 {
		t.Errorf("CurrentROMBank() = %d, want 1 (bank2 excluded in RAM-banking mode)", got)
	}
}

func TestMBC1ROMBankingModeFoldsBank2IntoROMBank(t *testing.T) {
	m := newMBC1Map(t, 128)

	m.Write(0x2000, 0x01) // bank1 = 1
	m.Write(0x4000, 0x01) // bank2 = 1 -> contributes bit 5
	if got := m.CurrentROMBank(); got != 0x21 {
		t.Errorf("CurrentROMBank() = %#02x, want 0x21", got)
	}
	if got := m.CurrentRAMBank(); got != 0 {
		t.Errorf("CurrentRAMBank() = %d, want 0 in ROM-banking mode", got)
	}
}

func TestMBC2ROMBankSwitchUsesAddressBit4(t *testing.T) {
	m := newMBC2Map(t)

	m.Write(0x2110, 0x03) // bit 4 of the address set -> ROM bank select
	if got := m.CurrentROMBank(); got != 3 {
		t.Errorf("CurrentROMBank() = %d, want 3", got)
	}

	m.Write(0x0100, 0x0A) // bit 4 clear -> RAM enable, not a bank select
	if got := m.CurrentROMBank(); got != 3 {
		t.Errorf("CurrentROMBank() changed on a RAM-enable write: %d", got)
	}
}

func TestUnusableRegionWritesAreDropped(t *testing.T) {
	m := New(cartridge.NewEmptyCartridge())
	before := m.Read(0xFEA0)
	m.Write(0xFEA0, 0x77)
	if got := m.Read(0xFEA0); got != before {
		t.Errorf("write into the unusable region was not dropped: %#02x -> %#02x", before, got)
	}
}
