package ppu

import "github.com/WDDnguyen/gomatcha/internal/types"

// renderScanline draws line ly (0..143) into the framebuffer. It is
// invoked once per visible line, at the end of mode-3 transfer, per
// spec.md section 4.6.
func (p *PPU) renderScanline(ly uint8) {
	lcdc := p.mem.Read(types.LCDC)

	var bgIndex [screenWidth]uint8
	if lcdc&0x01 != 0 {
		p.renderBackground(ly, lcdc, &bgIndex)
	}
	if lcdc&0x20 != 0 {
		p.renderWindow(ly, lcdc, &bgIndex)
	}
	if lcdc&0x02 != 0 {
		p.renderSprites(ly, lcdc, &bgIndex)
	}
}

// renderBackground draws the scrolled background tile map for line ly,
// recording each pixel's raw 2-bit colour index in bgIndex so sprite
// priority can consult it afterwards.
func (p *PPU) renderBackground(ly, lcdc uint8, bgIndex *[screenWidth]uint8) {
	scy := p.mem.Read(types.SCY)
	scx := p.mem.Read(types.SCX)
	mapBase := tileMapBase(lcdc&0x08 != 0)
	bgp := p.mem.Read(types.BGP)

	y := ly + scy
	row := int(y) / 8
	fineY := int(y) % 8

	for x := 0; x < screenWidth; x++ {
		px := uint8(x) + scx
		col := int(px) / 8
		fineX := int(px) % 8

		tileIndex := p.mem.Read(mapBase + uint16(row)*32 + uint16(col))
		colorIndex := p.tilePixel(tileIndex, lcdc&0x10 != 0, fineX, fineY)

		bgIndex[x] = colorIndex
		p.framebuffer[ly][x] = shades[paletteShade(bgp, colorIndex)]
	}
}

// renderWindow overlays the window layer wherever it is visible on
// line ly (x >= WX-7 and ly >= WY), per spec.md section 4.6.
func (p *PPU) renderWindow(ly, lcdc uint8, bgIndex *[screenWidth]uint8) {
	wy := p.mem.Read(types.WY)
	if ly < wy {
		return
	}
	wx := int(p.mem.Read(types.WX)) - 7
	mapBase := tileMapBase(lcdc&0x40 != 0)
	bgp := p.mem.Read(types.BGP)

	windowY := ly - wy
	row := int(windowY) / 8
	fineY := int(windowY) % 8

	for x := 0; x < screenWidth; x++ {
		if x < wx {
			continue
		}
		windowX := x - wx
		col := windowX / 8
		fineX := windowX % 8

		tileIndex := p.mem.Read(mapBase + uint16(row)*32 + uint16(col))
		colorIndex := p.tilePixel(tileIndex, lcdc&0x10 != 0, fineX, fineY)

		bgIndex[x] = colorIndex
		p.framebuffer[ly][x] = shades[paletteShade(bgp, colorIndex)]
	}
}

// renderSprites draws OAM sprites intersecting line ly, respecting
// flip, palette and background priority, per spec.md section 4.6.
func (p *PPU) renderSprites(ly, lcdc uint8, bgIndex *[screenWidth]uint8) {
	tall := lcdc&0x04 != 0
	height := 8
	if tall {
		height = 16
	}

	for i := 0; i < 40; i++ {
		base := types.OAMStart + uint16(i*4)
		spriteY := int(p.mem.Read(base)) - 16
		spriteX := int(p.mem.Read(base+1)) - 8
		tileIndex := p.mem.Read(base + 2)
		attrs := p.mem.Read(base + 3)

		row := int(ly) - spriteY
		if row < 0 || row >= height {
			continue
		}

		if attrs&0x40 != 0 { // vertical flip
			row = height - 1 - row
		}
		if tall {
			tileIndex &^= 0x01
		}
		tileIndex += uint8(row / 8)
		fineY := row % 8

		flipX := attrs&0x20 != 0
		palette := p.mem.Read(types.OBP0)
		if attrs&0x10 != 0 {
			palette = p.mem.Read(types.OBP1)
		}
		priority := attrs&0x80 != 0

		for fineX := 0; fineX < 8; fineX++ {
			x := spriteX + fineX
			if x < 0 || x >= screenWidth {
				continue
			}

			srcX := fineX
			if flipX {
				srcX = 7 - fineX
			}
			colorIndex := p.tilePixel8000(tileIndex, srcX, fineY)
			if colorIndex == 0 {
				continue // transparent
			}
			if priority && bgIndex[x] != 0 {
				continue // background wins when priority bit is set
			}
			p.framebuffer[ly][x] = shades[paletteShade(palette, colorIndex)]
		}
	}
}

// tileMapBase returns the base address of a background or window tile
// map, per spec.md section 4.6.
func tileMapBase(useUpper bool) uint16 {
	if useUpper {
		return 0x9C00
	}
	return 0x9800
}

// tilePixel decodes the 2-bit colour index of tile tileIndex at
// (fineX, fineY), honouring LCDC bit 4's unsigned/signed addressing
// mode for background and window tiles.
func (p *PPU) tilePixel(tileIndex uint8, unsigned bool, fineX, fineY int) uint8 {
	var addr uint16
	if unsigned {
		addr = 0x8000 + uint16(tileIndex)*16
	} else {
		addr = uint16(int32(0x9000) + int32(int8(tileIndex))*16)
	}
	return p.decodeTileRow(addr, fineX, fineY)
}

// tilePixel8000 decodes a sprite tile, which always uses the unsigned
// 0x8000 addressing mode regardless of LCDC bit 4.
func (p *PPU) tilePixel8000(tileIndex uint8, fineX, fineY int) uint8 {
	addr := 0x8000 + uint16(tileIndex)*16
	return p.decodeTileRow(addr, fineX, fineY)
}

func (p *PPU) decodeTileRow(tileAddr uint16, fineX, fineY int) uint8 {
	rowAddr := tileAddr + uint16(fineY)*2
	lo := p.mem.Read(rowAddr)
	hi := p.mem.Read(rowAddr + 1)

	bit := 7 - fineX
	index := (lo >> bit) & 1
	index |= ((hi >> bit) & 1) << 1
	return index
}

// paletteShade looks bgp (or an object palette) up for colorIndex,
// returning a shade in 0..3 per spec.md section 4.6.
func paletteShade(palette, colorIndex uint8) uint8 {
	return (palette >> (colorIndex * 2)) & 0x03
}
