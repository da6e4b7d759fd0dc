package ppu

import (
	"testing"

	"github.com/WDDnguyen/gomatcha/internal/cartridge"
	"github.com/WDDnguyen/gomatcha/internal/interrupts"
	"github.com/WDDnguyen/gomatcha/internal/memory"
	"github.com/WDDnguyen/gomatcha/internal/types"
)

func newTestPPU() (*PPU, *memory.Map, *interrupts.Controller) {
	mem := memory.New(cartridge.NewEmptyCartridge())
	mem.SetRaw(types.LCDC, 0x80) // LCD on, everything else off
	ic := interrupts.New()
	return New(mem, ic), mem, ic
}

func TestModeCyclesThroughOAMPixelTransferHBlank(t *testing.T) {
	p, mem, _ := newTestPPU()

	if p.mode != OAMScan {
		t.Fatalf("initial mode = %v, want OAMScan", p.mode)
	}

	p.Advance(oamScanCycles - 1)
	if p.mode != OAMScan {
		t.Errorf("mode = %v at cycle %d, want OAMScan", p.mode, oamScanCycles-1)
	}

	p.Advance(1)
	if p.mode != PixelTransfer {
		t.Errorf("mode = %v at cycle %d, want PixelTransfer", p.mode, oamScanCycles)
	}

	p.Advance(hblankStart - oamScanCycles)
	if p.mode != HBlank {
		t.Errorf("mode = %v at cycle %d, want HBlank", p.mode, hblankStart)
	}

	stat := mem.Read(types.STAT)
	if stat&0x03 != uint8(HBlank) {
		t.Errorf("STAT low bits = %d, want HBlank (%d)", stat&0x03, HBlank)
	}
}

func TestLYIncrementsOncePerLine(t *testing.T) {
	p, mem, _ := newTestPPU()

	p.Advance(cyclesPerLine)
	if got := mem.Read(types.LY); got != 1 {
		t.Fatalf("LY = %d after one line, want 1", got)
	}
}

func TestVBlankEntersAtLine144AndRequestsInterrupt(t *testing.T) {
	p, mem, ic := newTestPPU()

	p.Advance(cyclesPerLine * 144)

	if got := mem.Read(types.LY); got != 144 {
		t.Fatalf("LY = %d, want 144", got)
	}
	if p.mode != VBlank {
		t.Fatalf("mode = %v, want VBlank", p.mode)
	}
	if ic.IF&(1<<interrupts.VBlank) == 0 {
		t.Errorf("VBlank interrupt not requested on entering line 144")
	}
}

func TestFrameWrapsAt154Lines(t *testing.T) {
	p, mem, _ := newTestPPU()

	p.Advance(cyclesPerLine * linesPerFrame)

	if got := mem.Read(types.LY); got != 0 {
		t.Fatalf("LY = %d after a full frame, want 0", got)
	}
	if p.mode != OAMScan {
		t.Fatalf("mode = %v after wraparound, want OAMScan", p.mode)
	}
}

func TestLYCCoincidenceSetsSTATBit2(t *testing.T) {
	p, mem, _ := newTestPPU()
	mem.SetRaw(types.LYC, 1)

	p.Advance(cyclesPerLine)

	if mem.Read(types.STAT)&0x04 == 0 {
		t.Errorf("STAT bit 2 not set when LY == LYC")
	}
}

func TestLCDDisabledHoldsLYAtZero(t *testing.T) {
	p, mem, _ := newTestPPU()
	mem.SetRaw(types.LCDC, 0x00) // LCD off

	p.Advance(cyclesPerLine * 10)

	if got := mem.Read(types.LY); got != 0 {
		t.Errorf("LY = %d with LCD disabled, want held at 0", got)
	}
	if p.mode != VBlank {
		t.Errorf("mode = %v with LCD disabled, want VBlank (forced)", p.mode)
	}
}

func TestFramebufferShapeAndBackgroundColor(t *testing.T) {
	p, mem, _ := newTestPPU()
	mem.SetRaw(types.LCDC, 0x91) // LCD on, BG on, unsigned tile addressing
	mem.SetRaw(types.BGP, 0xE4)  // identity palette: 0,1,2,3 -> 0,1,2,3

	// Render exactly one visible line so renderScanline runs once.
	p.Advance(hblankStart)

	fb := p.Framebuffer()
	if len(fb) != screenWidth*screenHeight*3 {
		t.Fatalf("framebuffer length = %d, want %d", len(fb), screenWidth*screenHeight*3)
	}
	// Tile 0 at 0x8000 is all zero bytes (VRAM starts zeroed), so every
	// background pixel on line 0 should decode to colour index 0 (white).
	if fb[0] != 255 || fb[1] != 255 || fb[2] != 255 {
		t.Errorf("pixel (0,0) = (%d,%d,%d), want white", fb[0], fb[1], fb[2])
	}
}
