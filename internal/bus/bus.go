// Package bus implements the shared system bus: the master-tick
// scheduler that interleaves the CPU and PPU at their real clock ratio,
// the OAM DMA coupling, and the memory map that wires RAM, the PPU
// register mirror, the APU sink, controller input, and the cartridge
// together into one CPU-visible address space.
package bus

import (
	"nestedmachine/internal/apu"
	"nestedmachine/internal/cartridge"
	"nestedmachine/internal/cpu"
	"nestedmachine/internal/input"
	"nestedmachine/internal/memory"
	"nestedmachine/internal/ppu"
)

// Bus owns the CPU, PPU, APU, and the current cartridge and drives them
// one master dot at a time: the PPU advances every tick, and every
// third tick the CPU either advances one cycle or the in-flight OAM DMA
// advances one half-cycle.
type Bus struct {
	CPU    *cpu.CPU
	PPU    *ppu.PPU
	APU    *apu.APU
	Memory *memory.Memory
	Input  *input.InputState

	cart *cartridge.Cartridge // nil until LoadCartridge

	masterTicks uint64
	cpuCycles   uint64

	dmaActive     bool
	dmaPage       uint8
	dmaByteIndex  int
	dmaIdleCycles int
	dmaReadPhase  bool
	dmaLatch      uint8
}

// New creates a bus with no cartridge loaded. LoadCartridge must be
// called before Tick/RunFrame produce meaningful output.
func New() *Bus {
	b := &Bus{
		PPU:   ppu.New(),
		APU:   apu.New(),
		Input: input.NewInputState(),
	}
	b.Memory = memory.New(b.PPU, b.APU, nil)
	b.Memory.SetInputSystem(b.Input)
	b.Memory.SetDMACallback(b.triggerOAMDMA)
	b.CPU = cpu.New(b.Memory)
	return b
}

// LoadCartridge wires a freshly parsed cartridge into the bus, rebuilds
// PPU memory with the cartridge's mirroring mode, and performs a reset
// so PC is driven from the new cartridge's reset vector.
func (b *Bus) LoadCartridge(cart *cartridge.Cartridge) {
	b.cart = cart
	b.Memory = memory.New(b.PPU, b.APU, cart)
	b.Memory.SetInputSystem(b.Input)
	b.Memory.SetDMACallback(b.triggerOAMDMA)
	b.CPU = cpu.New(b.Memory)

	ppuMem := memory.NewPPUMemory(cart, memoryMirrorMode(cart.Mirror()))
	b.PPU.SetMemory(ppuMem)

	b.Reset()
}

func memoryMirrorMode(m cartridge.MirrorMode) memory.MirrorMode {
	switch m {
	case cartridge.MirrorVertical:
		return memory.MirrorVertical
	case cartridge.MirrorSingleScreen0:
		return memory.MirrorSingleScreen0
	case cartridge.MirrorSingleScreen1:
		return memory.MirrorSingleScreen1
	case cartridge.MirrorFourScreen:
		return memory.MirrorFourScreen
	default:
		return memory.MirrorHorizontal
	}
}

// Reset performs a warm reset: PC is redriven from the reset vector and
// the CPU burns its 7 power-up cycles.
func (b *Bus) Reset() {
	b.CPU.Reset()
	b.PPU.Reset()
	b.APU.Reset()
	b.Input.Reset()
	b.masterTicks = 0
	b.cpuCycles = 0
	b.dmaActive = false
	b.dmaByteIndex = 0
	b.dmaIdleCycles = 0
}

// Tick advances the system by exactly one master dot: the PPU ticks
// once, and every third master tick the CPU (or an in-flight DMA)
// advances by one cycle. The PPU's NMI output line is sampled into the
// CPU's edge-triggered NMI input on every CPU-cycle tick, including
// cycles consumed by DMA, so a vblank-start edge is never missed.
func (b *Bus) Tick() {
	b.PPU.Tick()

	b.masterTicks++
	if b.masterTicks%3 != 0 {
		return
	}

	b.CPU.SetNMI(b.PPU.NMILine())

	b.APU.Step()
	b.CPU.SetIRQ(b.APU.GetFrameIRQ() || b.APU.GetDMCIRQ())

	if b.dmaActive {
		b.tickDMA()
	} else {
		b.CPU.Tick()
	}
	b.cpuCycles++
}

// RunFrame advances tick() until the PPU reports a complete frame.
func (b *Bus) RunFrame() {
	for {
		b.Tick()
		if b.PPU.TakeFrameComplete() {
			return
		}
	}
}

// StepInstruction ticks until the current instruction completes, then
// once more to begin and finish the next one (used by tests and the
// debug single-step surface).
func (b *Bus) StepInstruction() {
	// Reach the boundary where the next CPU tick begins a fresh fetch.
	for !b.CPU.InstructionComplete() {
		b.Tick()
	}
	// Advance master ticks until the CPU actually consumes a cycle (the
	// CPU only runs every third master tick), then finish the
	// instruction it started.
	start := b.CPU.Cycles()
	for b.CPU.Cycles() == start {
		b.Tick()
	}
	for !b.CPU.InstructionComplete() {
		b.Tick()
	}
}

// triggerOAMDMA is invoked by Memory on a write to $4014. It schedules
// the cycle-accurate 513/514-cycle transfer rather than performing an
// immediate bulk copy, so the CPU observes the correct stall duration
// and the PPU keeps ticking normally throughout.
func (b *Bus) triggerOAMDMA(page uint8) {
	if b.dmaActive {
		return
	}
	b.dmaActive = true
	b.dmaPage = page
	b.dmaByteIndex = 0
	b.dmaReadPhase = true
	b.dmaIdleCycles = 1
	if b.cpuCycles%2 == 1 {
		b.dmaIdleCycles = 2
	}
}

// tickDMA advances one CPU-cycle's worth of the in-flight OAM DMA: the
// initial idle alignment cycle(s), then 256 alternating read/write
// cycles. Writes go through OAMDATA's $2004 register path so OAMADDR
// auto-increments exactly as it would for a CPU-driven write sequence.
func (b *Bus) tickDMA() {
	if b.dmaIdleCycles > 0 {
		b.dmaIdleCycles--
		return
	}

	if b.dmaReadPhase {
		addr := uint16(b.dmaPage)<<8 | uint16(b.dmaByteIndex)
		b.dmaLatch = b.Memory.Read(addr)
		b.dmaReadPhase = false
		return
	}

	b.PPU.WriteRegister(0x2004, b.dmaLatch)
	b.dmaByteIndex++
	b.dmaReadPhase = true
	if b.dmaByteIndex >= 256 {
		b.dmaActive = false
	}
}

// IsDMAInProgress reports whether an OAM DMA transfer is currently
// stalling the CPU.
func (b *Bus) IsDMAInProgress() bool { return b.dmaActive }

// CycleCount returns the number of CPU cycles executed since the last
// reset (DMA stall cycles included, matching real hardware's shared
// clock).
func (b *Bus) CycleCount() uint64 { return b.cpuCycles }

// SetControllerButtons sets all eight button states for one controller
// port (0 or 1), B/A/Select/Start/Up/Down/Left/Right order.
func (b *Bus) SetControllerButtons(port int, buttons [8]bool) {
	switch port {
	case 0:
		b.Input.SetButtons1(buttons)
	case 1:
		b.Input.SetButtons2(buttons)
	}
}

// FrameBuffer returns the most recently rendered 256x240 frame.
func (b *Bus) FrameBuffer() [256 * 240]uint32 {
	return b.PPU.GetFrameBuffer()
}

// CPURegisters is a debug snapshot of the CPU register file for the
// host's debug surface.
type CPURegisters struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16
	P       uint8
	Cycles  uint64
}

// CPURegisters returns a snapshot of the current CPU state.
func (b *Bus) CPURegisters() CPURegisters {
	return CPURegisters{
		A: b.CPU.A, X: b.CPU.X, Y: b.CPU.Y,
		SP: b.CPU.SP, PC: b.CPU.PC,
		P:      b.CPU.GetStatusByte(),
		Cycles: b.CPU.Cycles(),
	}
}

// PPURegisters is a debug snapshot of the PPU's CPU-visible and
// internal register state for the host's debug surface.
type PPURegisters struct {
	Ctrl, Mask, Status, OAMAddr uint8
	V, T                        uint16
	FineX                       uint8
	WriteLatch                  bool
	Scanline, Cycle             int
	FrameCount                  uint64
}

// PPURegisters returns a snapshot of the current PPU state.
func (b *Bus) PPURegisters() PPURegisters {
	return PPURegisters{
		Ctrl: b.PPU.Ctrl(), Mask: b.PPU.Mask(), Status: b.PPU.Status(),
		OAMAddr: b.PPU.OAMAddr(), V: b.PPU.V(), T: b.PPU.T(),
		FineX: b.PPU.FineX(), WriteLatch: b.PPU.WriteLatch(),
		Scanline: b.PPU.Scanline(), Cycle: b.PPU.Cycle(),
		FrameCount: b.PPU.FrameCount(),
	}
}
