// Package ppu implements the Game Boy's picture processing unit: the
// per-scanline mode state machine, STAT/LY bookkeeping, and background,
// window and sprite rendering into an RGB framebuffer.
package ppu

import (
	"github.com/WDDnguyen/gomatcha/internal/interrupts"
	"github.com/WDDnguyen/gomatcha/internal/memory"
	"github.com/WDDnguyen/gomatcha/internal/types"
)

// Mode is one of the four PPU modes, numbered to match the value STAT
// bits 0-1 report.
type Mode uint8

const (
	HBlank Mode = iota
	VBlank
	OAMScan
	PixelTransfer
)

func (m Mode) String() string {
	switch m {
	case HBlank:
		return "HBlank"
	case VBlank:
		return "VBlank"
	case OAMScan:
		return "OAMScan"
	case PixelTransfer:
		return "PixelTransfer"
	default:
		return "Mode(invalid)"
	}
}

const (
	screenWidth  = 160
	screenHeight = 144

	cyclesPerLine = 456
	linesPerFrame = 154

	oamScanCycles      = 80
	pixelTransferStart = oamScanCycles
	hblankStart        = 252
)

// shades maps a 2-bit palette index to its on-screen RGB colour, per
// spec.md section 4.6.
var shades = [4][3]uint8{
	{255, 255, 255},
	{204, 204, 204},
	{119, 119, 119},
	{0, 0, 0},
}

// PPU renders one frame at a time into an internal framebuffer, driven
// purely by the number of CPU cycles Advance is handed.
type PPU struct {
	mem *memory.Map
	ic  *interrupts.Controller

	mode        Mode
	lineCycles  int
	framebuffer [screenHeight][screenWidth][3]uint8
}

// New returns a PPU wired to mem and ic, with mode and LY at their
// power-on values (OAM scan, line 0).
func New(mem *memory.Map, ic *interrupts.Controller) *PPU {
	p := &PPU{mem: mem, ic: ic, mode: OAMScan}
	p.writeSTATMode()
	return p
}

// Framebuffer returns the most recently rendered frame as 160x144 RGB
// triplets in row-major (Y then X) order, matching spec.md section 6.
func (p *PPU) Framebuffer() []byte {
	out := make([]byte, screenHeight*screenWidth*3)
	i := 0
	for y := 0; y < screenHeight; y++ {
		for x := 0; x < screenWidth; x++ {
			out[i], out[i+1], out[i+2] = p.framebuffer[y][x][0], p.framebuffer[y][x][1], p.framebuffer[y][x][2]
			i += 3
		}
	}
	return out
}

// Advance consumes cycles elapsed CPU cycles, stepping the scanline
// state machine one cycle at a time so every mode transition and STAT
// interrupt condition is observed, per spec.md section 4.6.
func (p *PPU) Advance(cycles int) {
	if p.mem.Read(types.LCDC)&0x80 == 0 {
		p.mem.SetRaw(types.LY, 0)
		p.lineCycles = 0
		p.setMode(VBlank)
		return
	}

	for i := 0; i < cycles; i++ {
		p.tick()
	}
}

func (p *PPU) tick() {
	p.lineCycles++

	ly := p.mem.Read(types.LY)

	if ly < screenHeight {
		switch p.lineCycles {
		case pixelTransferStart:
			p.setMode(PixelTransfer)
		case hblankStart:
			p.renderScanline(ly)
			p.setMode(HBlank)
		}
	}

	if p.lineCycles >= cyclesPerLine {
		p.lineCycles = 0
		p.advanceLine(ly)
	}
}

func (p *PPU) advanceLine(ly uint8) {
	ly++
	if ly >= linesPerFrame {
		ly = 0
	}
	p.mem.SetRaw(types.LY, ly)
	p.updateCoincidence(ly)

	switch {
	case ly == screenHeight:
		p.setMode(VBlank)
		p.ic.Request(interrupts.VBlank)
	case ly == 0:
		p.setMode(OAMScan)
	case ly < screenHeight:
		p.setMode(OAMScan)
	}
}

func (p *PPU) setMode(mode Mode) {
	if p.mode == mode {
		return
	}
	p.mode = mode
	p.writeSTATMode()

	stat := p.mem.Read(types.STAT)
	var gate uint8
	switch mode {
	case HBlank:
		gate = 1 << 3
	case VBlank:
		gate = 1 << 4
	case OAMScan:
		gate = 1 << 5
	default:
		return // PixelTransfer has no STAT interrupt source.
	}
	if stat&gate != 0 {
		p.ic.Request(interrupts.LCDStat)
	}
}

func (p *PPU) writeSTATMode() {
	stat := p.mem.Read(types.STAT)
	stat = stat&^0x03 | uint8(p.mode)
	p.mem.SetRaw(types.STAT, stat)
}

func (p *PPU) updateCoincidence(ly uint8) {
	stat := p.mem.Read(types.STAT)
	lyc := p.mem.Read(types.LYC)
	was := stat&0x04 != 0

	if ly == lyc {
		stat |= 0x04
	} else {
		stat &^= 0x04
	}
	p.mem.SetRaw(types.STAT, stat)

	if !was && ly == lyc && stat&0x40 != 0 {
		p.ic.Request(interrupts.LCDStat)
	}
}
