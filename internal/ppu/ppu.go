// Package ppu implements the NES Picture Processing Unit (2C02): the
// scanline/dot state machine, the background tile shift-register
// pipeline, sprite evaluation and rendering, and the CPU-facing
// register file.
package ppu

import "nestedmachine/internal/memory"

// PPU drives one master dot per Tick call.
type PPU struct {
	ctrl   uint8 // $2000
	mask   uint8 // $2001
	status uint8 // $2002

	oamAddr uint8

	v, t uint16 // 15-bit loopy addresses
	x    uint8  // fine X scroll, 3 bits
	w    bool   // write latch

	readBuffer uint8

	mem *memory.PPUMemory

	scanline int // -1 (pre-render) .. 260
	cycle    int // 0 .. 340

	frameCount uint64
	oddFrame   bool
	frameDone  bool

	oam          [256]uint8
	secondaryOAM [32]uint8
	spriteIndex  [8]uint8 // original OAM index of each kept sprite, 0xFF if unused
	spriteCount  uint8

	spritePatternLow  [8]uint8
	spritePatternHigh [8]uint8
	spriteX           [8]uint8
	spriteAttr        [8]uint8

	// background pipeline: shift registers plus the next tile's latches
	bgPatternLow, bgPatternHigh       uint16
	bgAttrLow, bgAttrHigh             uint16
	latchTileID, latchAttr            uint8
	latchPatternLow, latchPatternHigh uint8

	frameBuffer [256 * 240]uint32
}

// New creates a PPU powered on at the pre-render scanline.
func New() *PPU {
	p := &PPU{scanline: -1}
	return p
}

// Reset returns the PPU to its power-on state.
func (p *PPU) Reset() {
	*p = PPU{scanline: -1, mem: p.mem}
}

// SetMemory wires the PPU address space (pattern tables, nametables,
// palette RAM).
func (p *PPU) SetMemory(mem *memory.PPUMemory) {
	p.mem = mem
}

// NMILine reports the live state of the PPU's NMI output: high exactly
// while vblank is set and NMI generation is enabled. The Bus feeds this
// into the CPU's edge-triggered NMI input once per CPU cycle (every
// third master tick).
func (p *PPU) NMILine() bool {
	return p.status&0x80 != 0 && p.ctrl&0x80 != 0
}

// TakeFrameComplete reports whether a frame finished since the last
// call, clearing the flag.
func (p *PPU) TakeFrameComplete() bool {
	done := p.frameDone
	p.frameDone = false
	return done
}

// GetFrameBuffer returns the last-rendered 256x240 RGB frame.
func (p *PPU) GetFrameBuffer() [256 * 240]uint32 {
	return p.frameBuffer
}

func (p *PPU) renderingEnabled() bool {
	return p.mask&0x18 != 0
}

// --- CPU-facing register file ---

// ReadRegister handles a CPU read of $2000-$2007 (mirrored every 8
// bytes by the caller).
func (p *PPU) ReadRegister(address uint16) uint8 {
	switch address {
	case 0x2002:
		// The low five bits are residue from the internal data buffer,
		// not status: {status[7:5], buffer[4:0]}.
		status := (p.status & 0xE0) | (p.readBuffer & 0x1F)
		p.status &^= 0x80
		p.w = false
		return status
	case 0x2004:
		return p.oam[p.oamAddr]
	case 0x2007:
		return p.readPPUData()
	default:
		return 0
	}
}

// WriteRegister handles a CPU write to $2000-$2007.
func (p *PPU) WriteRegister(address uint16, value uint8) {
	switch address {
	case 0x2000:
		p.ctrl = value
		p.t = (p.t & 0xF3FF) | ((uint16(value) & 0x03) << 10)
	case 0x2001:
		p.mask = value
		p.mem.SetGrayscale(value&0x01 != 0)
	case 0x2003:
		p.oamAddr = value
	case 0x2004:
		p.oam[p.oamAddr] = value
		p.oamAddr++
	case 0x2005:
		p.writeScroll(value)
	case 0x2006:
		p.writeAddr(value)
	case 0x2007:
		p.writePPUData(value)
	}
}

func (p *PPU) writeScroll(value uint8) {
	if !p.w {
		p.t = (p.t & 0xFFE0) | uint16(value>>3)
		p.x = value & 0x07
		p.w = true
	} else {
		p.t = (p.t & 0x8FFF) | (uint16(value&0x07) << 12)
		p.t = (p.t & 0xFC1F) | (uint16(value&0xF8) << 2)
		p.w = false
	}
}

func (p *PPU) writeAddr(value uint8) {
	if !p.w {
		p.t = (p.t & 0x80FF) | (uint16(value&0x3F) << 8)
		p.w = true
	} else {
		p.t = (p.t & 0xFF00) | uint16(value)
		p.v = p.t
		p.w = false
	}
}

func (p *PPU) readPPUData() uint8 {
	var data uint8
	if p.v >= 0x3F00 {
		data = p.mem.Read(p.v)
		p.readBuffer = p.mem.Read(p.v & 0x2FFF)
	} else {
		data = p.readBuffer
		p.readBuffer = p.mem.Read(p.v)
	}
	p.advanceV()
	return data
}

func (p *PPU) writePPUData(value uint8) {
	p.mem.Write(p.v, value)
	p.advanceV()
}

func (p *PPU) advanceV() {
	if p.ctrl&0x04 != 0 {
		p.v += 32
	} else {
		p.v++
	}
	p.v &= 0x3FFF
}

// --- master tick ---

// Tick advances the PPU by one dot.
func (p *PPU) Tick() {
	if p.scanline >= -1 && p.scanline < 240 {
		p.tickRenderLine()
	}

	if p.scanline == 241 && p.cycle == 1 {
		p.status |= 0x80
	}
	if p.scanline == -1 && p.cycle == 1 {
		p.status &^= 0xE0
	}

	p.cycle++
	if p.cycle > 340 {
		p.cycle = 0
		p.scanline++
		if p.scanline > 260 {
			p.scanline = -1
			p.frameCount++
			p.oddFrame = !p.oddFrame
			p.frameDone = true
		}
	}
	if p.scanline == 0 && p.cycle == 0 && p.oddFrame && p.renderingEnabled() {
		p.cycle = 1 // odd-frame skip: cycle 0 of scanline 0 is never visited
	}
}

func (p *PPU) tickRenderLine() {
	visible := p.scanline >= 0 && p.scanline < 240
	inFetchWindow := (p.cycle >= 2 && p.cycle <= 257) || (p.cycle >= 321 && p.cycle <= 337)

	// Shift before the pixel mux taps the registers: dot c outputs
	// pixel c-1, which needs the registers advanced by c-1 positions.
	if p.renderingEnabled() && inFetchWindow {
		p.shiftBackgroundRegisters()
	}

	if visible && p.cycle >= 1 && p.cycle <= 256 {
		p.outputPixel(p.cycle-1, p.scanline)
	}

	if p.renderingEnabled() {
		if inFetchWindow {
			p.backgroundFetchStep()
		}
		if p.cycle == 256 {
			p.incrementFineY()
		}
		if p.cycle == 257 {
			p.copyHorizontal()
		}
		if p.scanline == -1 && p.cycle >= 280 && p.cycle <= 304 {
			p.copyVertical()
		}

		if p.cycle == 257 {
			p.evaluateSprites()
		}
		if p.cycle == 340 {
			p.fetchSpritePatterns()
		}
	}
}

// backgroundFetchStep runs the repeating 8-dot fetch schedule keyed on
// (cycle-1) mod 8.
func (p *PPU) backgroundFetchStep() {
	switch (p.cycle - 1) % 8 {
	case 0:
		p.reloadBackgroundShiftRegisters()
		p.latchTileID = p.mem.Read(0x2000 | (p.v & 0x0FFF))
	case 2:
		addr := uint16(0x23C0) | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 7)
		attrByte := p.mem.Read(addr)
		coarseX := p.v & 0x1F
		coarseY := (p.v >> 5) & 0x1F
		shift := ((coarseY & 2) << 1) | (coarseX & 2)
		p.latchAttr = (attrByte >> shift) & 3
	case 4:
		base := uint16(0)
		if p.ctrl&0x10 != 0 {
			base = 0x1000
		}
		fineY := (p.v >> 12) & 7
		addr := base | (uint16(p.latchTileID) << 4) | fineY
		p.latchPatternLow = p.mem.Read(addr)
	case 6:
		base := uint16(0)
		if p.ctrl&0x10 != 0 {
			base = 0x1000
		}
		fineY := (p.v >> 12) & 7
		addr := base | (uint16(p.latchTileID) << 4) | fineY
		p.latchPatternHigh = p.mem.Read(addr + 8)
	case 7:
		p.incrementCoarseX()
	}
}

func (p *PPU) reloadBackgroundShiftRegisters() {
	p.bgPatternLow = (p.bgPatternLow & 0xFF00) | uint16(p.latchPatternLow)
	p.bgPatternHigh = (p.bgPatternHigh & 0xFF00) | uint16(p.latchPatternHigh)
	var lowFill, highFill uint16
	if p.latchAttr&1 != 0 {
		lowFill = 0xFF
	}
	if p.latchAttr&2 != 0 {
		highFill = 0xFF
	}
	p.bgAttrLow = (p.bgAttrLow & 0xFF00) | lowFill
	p.bgAttrHigh = (p.bgAttrHigh & 0xFF00) | highFill
}

func (p *PPU) shiftBackgroundRegisters() {
	p.bgPatternLow <<= 1
	p.bgPatternHigh <<= 1
	p.bgAttrLow <<= 1
	p.bgAttrHigh <<= 1
}

func (p *PPU) incrementCoarseX() {
	if p.v&0x001F == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

func (p *PPU) incrementFineY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &^= 0x7000
	y := (p.v & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		p.v ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}
	p.v = (p.v &^ 0x03E0) | (y << 5)
}

func (p *PPU) copyHorizontal() {
	p.v = (p.v & 0xFBE0) | (p.t & 0x041F)
}

func (p *PPU) copyVertical() {
	p.v = (p.v & 0x841F) | (p.t & 0x7BE0)
}

// --- sprites ---

func (p *PPU) evaluateSprites() {
	for i := range p.secondaryOAM {
		p.secondaryOAM[i] = 0xFF
	}
	for i := range p.spriteIndex {
		p.spriteIndex[i] = 0xFF
	}
	p.spriteCount = 0

	height := 8
	if p.ctrl&0x20 != 0 {
		height = 16
	}

	target := p.scanline + 1
	found := 0
	for i := 0; i < 64; i++ {
		base := i * 4
		y := int(p.oam[base])
		if target < y+1 || target >= y+1+height {
			continue
		}
		if found < 8 {
			dst := found * 4
			copy(p.secondaryOAM[dst:dst+4], p.oam[base:base+4])
			p.spriteIndex[found] = uint8(i)
			found++
		} else {
			p.status |= 0x20
			break
		}
	}
	p.spriteCount = uint8(found)
}

func (p *PPU) fetchSpritePatterns() {
	height := 8
	if p.ctrl&0x20 != 0 {
		height = 16
	}
	target := p.scanline + 1

	for i := 0; i < int(p.spriteCount); i++ {
		base := i * 4
		y := int(p.secondaryOAM[base])
		tile := p.secondaryOAM[base+1]
		attr := p.secondaryOAM[base+2]
		x := p.secondaryOAM[base+3]

		row := target - (y + 1)
		if attr&0x80 != 0 { // vertical flip
			row = height - 1 - row
		}

		var patternAddr uint16
		if height == 16 {
			table := uint16(tile&1) << 12
			tileIndex := uint16(tile &^ 1)
			if row >= 8 {
				tileIndex++
				row -= 8
			}
			patternAddr = table | (tileIndex << 4) | uint16(row)
		} else {
			table := uint16(0)
			if p.ctrl&0x08 != 0 {
				table = 0x1000
			}
			patternAddr = table | (uint16(tile) << 4) | uint16(row)
		}

		low := p.mem.Read(patternAddr)
		high := p.mem.Read(patternAddr + 8)
		if attr&0x40 != 0 { // horizontal flip
			low = reverseBits(low)
			high = reverseBits(high)
		}

		p.spritePatternLow[i] = low
		p.spritePatternHigh[i] = high
		p.spriteX[i] = x
		p.spriteAttr[i] = attr
	}
}

func reverseBits(b uint8) uint8 {
	var r uint8
	for i := 0; i < 8; i++ {
		r <<= 1
		r |= b & 1
		b >>= 1
	}
	return r
}

// --- pixel mux ---

func (p *PPU) outputPixel(x, y int) {
	bgColorIdx, bgPaletteIdx := p.backgroundPixel()
	fgColorIdx, fgPaletteIdx, fgPriority, fgIsSprite0 := p.spritePixel(x)

	showBG := p.mask&0x08 != 0 && (x >= 8 || p.mask&0x02 != 0)
	showFG := p.mask&0x10 != 0 && (x >= 8 || p.mask&0x04 != 0)
	if !showBG {
		bgColorIdx = 0
	}
	if !showFG {
		fgColorIdx = 0
	}

	if fgIsSprite0 && bgColorIdx != 0 && fgColorIdx != 0 && x != 255 {
		p.status |= 0x40
	}

	var paletteAddr uint16
	switch {
	case bgColorIdx == 0 && fgColorIdx == 0:
		paletteAddr = 0x3F00
	case bgColorIdx == 0:
		paletteAddr = 0x3F10 + uint16(fgPaletteIdx)*4 + uint16(fgColorIdx)
	case fgColorIdx == 0:
		paletteAddr = 0x3F00 + uint16(bgPaletteIdx)*4 + uint16(bgColorIdx)
	case fgPriority:
		paletteAddr = 0x3F00 + uint16(bgPaletteIdx)*4 + uint16(bgColorIdx)
	default:
		paletteAddr = 0x3F10 + uint16(fgPaletteIdx)*4 + uint16(fgColorIdx)
	}

	// p.mem.Read already truncates to 6 bits (0x30 under grayscale, via
	// PPUMemory.SetGrayscale) at the palette-RAM read site.
	nesColor := p.mem.Read(paletteAddr)
	p.frameBuffer[y*256+x] = NESColorToRGB(nesColor)
}

func (p *PPU) backgroundPixel() (colorIdx, paletteIdx uint8) {
	mask := uint16(0x8000) >> p.x
	lowBit := uint8(0)
	if p.bgPatternLow&mask != 0 {
		lowBit = 1
	}
	highBit := uint8(0)
	if p.bgPatternHigh&mask != 0 {
		highBit = 1
	}
	colorIdx = (highBit << 1) | lowBit

	palLow := uint8(0)
	if p.bgAttrLow&mask != 0 {
		palLow = 1
	}
	palHigh := uint8(0)
	if p.bgAttrHigh&mask != 0 {
		palHigh = 1
	}
	paletteIdx = (palHigh << 1) | palLow
	return
}

func (p *PPU) spritePixel(x int) (colorIdx, paletteIdx uint8, priority bool, isSprite0 bool) {
	for i := 0; i < int(p.spriteCount); i++ {
		offset := x - int(p.spriteX[i])
		if offset < 0 || offset > 7 {
			continue
		}
		lowBit := (p.spritePatternLow[i] >> (7 - uint(offset))) & 1
		highBit := (p.spritePatternHigh[i] >> (7 - uint(offset))) & 1
		c := (highBit << 1) | lowBit
		if c == 0 {
			continue
		}
		return c, p.spriteAttr[i] & 0x03, p.spriteAttr[i]&0x20 != 0, p.spriteIndex[i] == 0
	}
	return 0, 0, false, false
}

// NES 2C02 NTSC palette: 64 fixed 24-bit RGB entries, part of the
// platform's observable behavior and not configurable at runtime.
var nesColorPalette = [64]uint32{
	0x666666, 0x002A88, 0x1412A7, 0x3B00A4, 0x5C007E, 0x6E0040, 0x6C0600, 0x561D00,
	0x333500, 0x0B4800, 0x005200, 0x004F08, 0x00404D, 0x000000, 0x000000, 0x000000,
	0xADADAD, 0x155FD9, 0x4240FF, 0x7527FE, 0xA01ACC, 0xB71E7B, 0xB53120, 0x994E00,
	0x6B6D00, 0x388700, 0x0C9300, 0x008F32, 0x007C8D, 0x000000, 0x000000, 0x000000,
	0xFFFEFF, 0x64B0FF, 0x9290FF, 0xC676FF, 0xF36AFF, 0xFE6ECC, 0xFE8170, 0xEA9E22,
	0xBCBE00, 0x88D800, 0x5CE430, 0x45E082, 0x48CDDE, 0x4F4F4F, 0x000000, 0x000000,
	0xFFFEFF, 0xC0DFFF, 0xD3D2FF, 0xE8C8FF, 0xFBC2FF, 0xFEC4EA, 0xFECCC5, 0xF7D8A5,
	0xE4E594, 0xCFF29B, 0xBEFBB3, 0xB8F8D8, 0xB8F8F8, 0x000000, 0x000000, 0x000000,
}

// NESColorToRGB converts a 2C02 color index (0-63) to a 24-bit RGB value.
func NESColorToRGB(colorIndex uint8) uint32 {
	return nesColorPalette[colorIndex&0x3F]
}

// PatternTable renders one of the two 4KiB pattern tables as a 128x128
// debug image using the given palette, for the host's tile viewer.
func (p *PPU) PatternTable(index int, palette uint8) [128 * 128]uint32 {
	var out [128 * 128]uint32
	base := uint16(index&1) * 0x1000
	for tileY := 0; tileY < 16; tileY++ {
		for tileX := 0; tileX < 16; tileX++ {
			tileAddr := base + uint16(tileY*16+tileX)*16
			for row := 0; row < 8; row++ {
				low := p.mem.Read(tileAddr + uint16(row))
				high := p.mem.Read(tileAddr + 8 + uint16(row))
				for col := 0; col < 8; col++ {
					bit := 7 - col
					colorIdx := (((high >> bit) & 1) << 1) | ((low >> bit) & 1)
					var nesColor uint8
					if colorIdx != 0 {
						nesColor = p.mem.Read(0x3F00 + uint16(palette&3)*4 + uint16(colorIdx))
					} else {
						nesColor = p.mem.Read(0x3F00)
					}
					px := tileX*8 + col
					py := tileY*8 + row
					out[py*128+px] = NESColorToRGB(nesColor)
				}
			}
		}
	}
	return out
}

// --- debug register accessors for host snapshots ---

func (p *PPU) Ctrl() uint8 { return p.ctrl }
func (p *PPU) Mask() uint8 { return p.mask }
func (p *PPU) Status() uint8 { return p.status }
func (p *PPU) OAMAddr() uint8 { return p.oamAddr }
func (p *PPU) V() uint16 { return p.v }
func (p *PPU) T() uint16 { return p.t }
func (p *PPU) FineX() uint8 { return p.x }
func (p *PPU) WriteLatch() bool { return p.w }
func (p *PPU) Scanline() int { return p.scanline }
func (p *PPU) Cycle() int { return p.cycle }
func (p *PPU) FrameCount() uint64 { return p.frameCount }
