// Package memory implements the CPU and PPU address spaces and their
// mirroring/mapping rules.
package memory

// Memory is the CPU-visible 16-bit address space.
type Memory struct {
	ram [0x800]uint8 // 2 KiB internal RAM, mirrored through $1FFF

	ppuRegisters PPUInterface
	apuRegisters APUInterface
	inputSystem  InputInterface
	cartridge    CartridgeInterface

	dmaCallback func(uint8)
}

// PPUMemory is the PPU-visible 14-bit address space: pattern tables
// (via the cartridge), nametables, and palette RAM.
type PPUMemory struct {
	vram       [0x1000]uint8 // nametable RAM, up to 4KiB for four-screen mirroring
	paletteRAM [32]uint8
	cartridge  CartridgeInterface
	mirroring  MirrorMode
	grayscale  bool // PPUMASK bit 0, mirrored here so palette reads can mask at the source
}

// MirrorMode is the nametable mirroring policy.
type MirrorMode uint8

const (
	MirrorHorizontal MirrorMode = iota
	MirrorVertical
	MirrorSingleScreen0
	MirrorSingleScreen1
	MirrorFourScreen
)

// PPUInterface is the PPU's CPU-facing register surface.
type PPUInterface interface {
	ReadRegister(address uint16) uint8
	WriteRegister(address uint16, value uint8)
}

// APUInterface is the APU's CPU-facing register surface.
type APUInterface interface {
	WriteRegister(address uint16, value uint8)
	ReadStatus() uint8
}

// InputInterface is the controller ports' CPU-facing surface.
type InputInterface interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CartridgeInterface is the address-translation surface a Cartridge
// exposes to the CPU and PPU memory spaces.
type CartridgeInterface interface {
	ReadPRG(address uint16) uint8
	WritePRG(address uint16, value uint8)
	ReadCHR(address uint16) uint8
	WriteCHR(address uint16, value uint8)
}

// New creates a Memory wired to the PPU, APU, and cartridge.
func New(ppu PPUInterface, apu APUInterface, cart CartridgeInterface) *Memory {
	return &Memory{ppuRegisters: ppu, apuRegisters: apu, cartridge: cart}
}

// SetInputSystem wires the controller ports into $4016/$4017.
func (m *Memory) SetInputSystem(input InputInterface) {
	m.inputSystem = input
}

// SetDMACallback installs the handler invoked on an OAMDMA write,
// letting the Bus drive the cycle-accurate DMA schedule instead of an
// immediate bulk copy.
func (m *Memory) SetDMACallback(callback func(uint8)) {
	m.dmaCallback = callback
}

// Read reads a byte from CPU address space.
func (m *Memory) Read(address uint16) uint8 {
	switch {
	case address < 0x2000:
		return m.ram[address&0x07FF]

	case address < 0x4000:
		return m.ppuRegisters.ReadRegister(0x2000 + (address & 0x0007))

	case address < 0x4020:
		switch address {
		case 0x4015:
			return m.apuRegisters.ReadStatus()
		case 0x4016, 0x4017:
			if m.inputSystem != nil {
				return m.inputSystem.Read(address)
			}
			return 0
		default:
			return 0 // write-only APU/IO registers: open bus
		}

	default:
		// $4020-$FFFF is entirely cartridge-mapped: PRG RAM, mapper
		// registers, and PRG ROM all route through the same cartridge
		// surface, which is responsible for deciding what lives where.
		if m.cartridge != nil {
			return m.cartridge.ReadPRG(address)
		}
		return 0
	}
}

// Write writes a byte to CPU address space.
func (m *Memory) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ram[address&0x07FF] = value

	case address < 0x4000:
		m.ppuRegisters.WriteRegister(0x2000+(address&0x0007), value)

	case address < 0x4020:
		switch {
		case address == 0x4014:
			if m.dmaCallback != nil {
				m.dmaCallback(value)
			} else {
				m.performOAMDMA(value)
			}
		case address == 0x4016:
			if m.inputSystem != nil {
				m.inputSystem.Write(address, value)
			}
		case address >= 0x4000 && address <= 0x4013, address == 0x4015, address == 0x4017:
			m.apuRegisters.WriteRegister(address, value)
		}
		// $4018-$401F (APU/IO test registers) are ignored.

	default:
		if m.cartridge != nil {
			m.cartridge.WritePRG(address, value)
		}
	}
}

// performOAMDMA is the fallback immediate bulk copy used when no
// cycle-accurate DMA callback is installed.
func (m *Memory) performOAMDMA(page uint8) {
	base := uint16(page) << 8
	for i := uint16(0); i < 256; i++ {
		m.ppuRegisters.WriteRegister(0x2004, m.Read(base+i))
	}
}

// NewPPUMemory creates a PPU memory space backed by the given
// cartridge and mirroring mode.
func NewPPUMemory(cart CartridgeInterface, mirroring MirrorMode) *PPUMemory {
	pm := &PPUMemory{cartridge: cart, mirroring: mirroring}
	for i := 0; i < 32; i += 4 {
		pm.paletteRAM[i] = 0x0F
	}
	return pm
}

// Read reads a byte from PPU address space ($0000-$3FFF).
func (pm *PPUMemory) Read(address uint16) uint8 {
	address &= 0x3FFF
	switch {
	case address < 0x2000:
		return pm.cartridge.ReadCHR(address)
	case address < 0x3000:
		return pm.readNametable(address)
	case address < 0x3F00:
		return pm.readNametable(address - 0x1000)
	default:
		return pm.readPalette(address)
	}
}

// Write writes a byte to PPU address space ($0000-$3FFF).
func (pm *PPUMemory) Write(address uint16, value uint8) {
	address &= 0x3FFF
	switch {
	case address < 0x2000:
		pm.cartridge.WriteCHR(address, value)
	case address < 0x3000:
		pm.writeNametable(address, value)
	case address < 0x3F00:
		pm.writeNametable(address-0x1000, value)
	default:
		pm.writePalette(address, value)
	}
}

func (pm *PPUMemory) readNametable(address uint16) uint8 {
	return pm.vram[pm.getNametableIndex(address)]
}

func (pm *PPUMemory) writeNametable(address uint16, value uint8) {
	pm.vram[pm.getNametableIndex(address)] = value
}

// getNametableIndex maps a $2000-$2FFF address into physical VRAM per
// the cartridge's mirroring mode.
func (pm *PPUMemory) getNametableIndex(address uint16) uint16 {
	address &= 0x0FFF
	nametable := (address >> 10) & 3
	offset := address & 0x3FF

	switch pm.mirroring {
	case MirrorHorizontal:
		if nametable >= 2 {
			return 0x400 + offset
		}
		return offset
	case MirrorVertical:
		if nametable == 1 || nametable == 3 {
			return 0x400 + offset
		}
		return offset
	case MirrorSingleScreen0:
		return offset
	case MirrorSingleScreen1:
		return 0x400 + offset
	case MirrorFourScreen:
		return nametable*0x400 + offset
	default:
		return offset
	}
}

// SetGrayscale mirrors PPUMASK bit 0 so readPalette can mask to 0x30
// instead of 0x3F, matching the real PPU's read-site behavior rather
// than a separate final-pixel pass.
func (pm *PPUMemory) SetGrayscale(on bool) {
	pm.grayscale = on
}

// readPalette reads palette RAM, aliasing the four sprite-palette
// entries $3F10/$3F14/$3F18/$3F1C to their background counterparts
// $3F00/$3F04/$3F08/$3F0C and truncating the result to 6 bits (masked
// with 0x30 under grayscale) the way every consumer of
// palette data - PPUDATA reads, the debug pattern-table view - expects.
func (pm *PPUMemory) readPalette(address uint16) uint8 {
	index := (address - 0x3F00) & 0x1F
	if index&0x13 == 0x10 {
		index &= 0x0F
	}
	value := pm.paletteRAM[index]
	if pm.grayscale {
		return value & 0x30
	}
	return value & 0x3F
}

func (pm *PPUMemory) writePalette(address uint16, value uint8) {
	index := (address - 0x3F00) & 0x1F
	if index&0x13 == 0x10 {
		index &= 0x0F
	}
	pm.paletteRAM[index] = value
}
