package memory

import "testing"

type mockPPU struct {
	reads, writes []uint16
	regs          [8]uint8
}

func (p *mockPPU) ReadRegister(addr uint16) uint8 {
	p.reads = append(p.reads, addr)
	return p.regs[addr&7]
}
func (p *mockPPU) WriteRegister(addr uint16, value uint8) {
	p.writes = append(p.writes, addr)
	p.regs[addr&7] = value
}

type mockAPU struct {
	writes map[uint16]uint8
	status uint8
}

func newMockAPU() *mockAPU { return &mockAPU{writes: map[uint16]uint8{}} }
func (a *mockAPU) WriteRegister(addr uint16, value uint8) { a.writes[addr] = value }
func (a *mockAPU) ReadStatus() uint8 { return a.status }

type mockCartridge struct {
	prg    [0x10000]uint8
	prgLog []uint16
}

func (c *mockCartridge) ReadPRG(addr uint16) uint8 {
	c.prgLog = append(c.prgLog, addr)
	return c.prg[addr]
}
func (c *mockCartridge) WritePRG(addr uint16, value uint8) { c.prg[addr] = value }
func (c *mockCartridge) ReadCHR(addr uint16) uint8 { return 0 }
func (c *mockCartridge) WriteCHR(addr uint16, value uint8) {}

type mockInput struct{ last uint16 }

func (m *mockInput) Read(addr uint16) uint8 { m.last = addr; return 0x55 }
func (m *mockInput) Write(addr uint16, value uint8) {}

func TestRAMMirroring(t *testing.T) {
	mem := New(&mockPPU{}, newMockAPU(), &mockCartridge{})
	mem.Write(0x0000, 0x42)
	if got := mem.Read(0x0800); got != 0x42 {
		t.Fatalf("RAM mirror at $0800 = %#02x, want $42", got)
	}
	if got := mem.Read(0x1800); got != 0x42 {
		t.Fatalf("RAM mirror at $1800 = %#02x, want $42", got)
	}
}

func TestPPURegisterMirroring(t *testing.T) {
	ppu := &mockPPU{}
	mem := New(ppu, newMockAPU(), &mockCartridge{})
	mem.Write(0x2000, 0x11)
	mem.Read(0x2008) // mirrors to $2000
	if ppu.writes[0] != 0x2000 || ppu.reads[0] != 0x2000 {
		t.Fatalf("expected $2000-mirrored accesses, got writes=%v reads=%v", ppu.writes, ppu.reads)
	}
}

func TestExpansionAreaRoutesToCartridge(t *testing.T) {
	cart := &mockCartridge{}
	mem := New(&mockPPU{}, newMockAPU(), cart)
	// $4020-$FFFF is entirely cartridge-mapped per the CPU memory map.
	mem.Write(0x5000, 0x99)
	if got := mem.Read(0x5000); got != 0x99 {
		t.Fatalf("expansion area byte = %#02x, want $99", got)
	}
	if len(cart.prgLog) == 0 {
		t.Fatal("expected cartridge.ReadPRG to be called for $5000")
	}
}

func TestControllerPortsRouteToInput(t *testing.T) {
	input := &mockInput{}
	mem := New(&mockPPU{}, newMockAPU(), &mockCartridge{})
	mem.SetInputSystem(input)
	if got := mem.Read(0x4016); got != 0x55 {
		t.Fatalf("controller1 read = %#02x, want $55", got)
	}
	if got := mem.Read(0x4017); got != 0x55 {
		t.Fatalf("controller2 read = %#02x, want $55", got)
	}
}

func TestOAMDMACallback(t *testing.T) {
	var gotPage uint8 = 0xFF
	var called bool
	mem := New(&mockPPU{}, newMockAPU(), &mockCartridge{})
	mem.SetDMACallback(func(page uint8) { called = true; gotPage = page })
	mem.Write(0x4014, 0x02)
	if !called || gotPage != 0x02 {
		t.Fatalf("DMA callback not invoked correctly: called=%v page=%#02x", called, gotPage)
	}
}

func TestAPUStatusRegister(t *testing.T) {
	apu := newMockAPU()
	apu.status = 0x3F
	mem := New(&mockPPU{}, apu, &mockCartridge{})
	if got := mem.Read(0x4015); got != 0x3F {
		t.Fatalf("APU status = %#02x, want $3F", got)
	}
	mem.Write(0x4000, 0x80)
	if apu.writes[0x4000] != 0x80 {
		t.Fatal("APU register write not forwarded")
	}
}

func TestPPUMemoryNametableHorizontalMirroring(t *testing.T) {
	cart := &mockCartridge{}
	pm := NewPPUMemory(cart, MirrorHorizontal)
	pm.Write(0x2000, 0x7A)
	if got := pm.Read(0x2400); got != 0x7A {
		t.Fatalf("horizontal mirror $2400 = %#02x, want $7A", got)
	}
	if got := pm.Read(0x2800); got == 0x7A {
		t.Fatal("$2800 should be a distinct physical nametable under horizontal mirroring")
	}
}

func TestPPUMemoryNametableVerticalMirroring(t *testing.T) {
	cart := &mockCartridge{}
	pm := NewPPUMemory(cart, MirrorVertical)
	pm.Write(0x2000, 0x5C)
	if got := pm.Read(0x2800); got != 0x5C {
		t.Fatalf("vertical mirror $2800 = %#02x, want $5C", got)
	}
}

func TestPaletteRAMMirroringAliases(t *testing.T) {
	cart := &mockCartridge{}
	pm := NewPPUMemory(cart, MirrorHorizontal)
	pm.Write(0x3F00, 0x20)
	if got := pm.Read(0x3F10); got != 0x20 {
		t.Fatalf("$3F10 should alias $3F00, got %#02x", got)
	}
	pm.Write(0x3F04, 0x21)
	if got := pm.Read(0x3F14); got != 0x21 {
		t.Fatalf("$3F14 should alias $3F04, got %#02x", got)
	}
}

func TestPaletteRAMMirroredEvery32Bytes(t *testing.T) {
	cart := &mockCartridge{}
	pm := NewPPUMemory(cart, MirrorHorizontal)
	pm.Write(0x3F05, 0x33)
	if got := pm.Read(0x3F25); got != 0x33 {
		t.Fatalf("$3F25 should mirror $3F05, got %#02x", got)
	}
}

func TestPaletteReadTruncatesToSixBits(t *testing.T) {
	cart := &mockCartridge{}
	pm := NewPPUMemory(cart, MirrorHorizontal)
	pm.Write(0x3F05, 0xFF)
	if got := pm.Read(0x3F05); got != 0x3F {
		t.Fatalf("palette read = %#02x, want bits 6-7 masked off (0x3F)", got)
	}

	pm.SetGrayscale(true)
	if got := pm.Read(0x3F05); got != 0x30 {
		t.Fatalf("grayscale palette read = %#02x, want 0x30", got)
	}
}

func TestNametableMirrorRegion(t *testing.T) {
	cart := &mockCartridge{}
	pm := NewPPUMemory(cart, MirrorHorizontal)
	pm.Write(0x2000, 0x61)
	if got := pm.Read(0x3000); got != 0x61 {
		t.Fatalf("$3000 should mirror $2000, got %#02x", got)
	}
}
