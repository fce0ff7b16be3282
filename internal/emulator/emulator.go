// Package emulator is the public facade a host (GUI, headless runner,
// test harness) drives: load a ROM, feed controller state, advance one
// frame at a time, and read back the framebuffer and debug surface.
// Everything below it (cpu/ppu/bus/cartridge) is an implementation
// detail the host never touches directly.
package emulator

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"nestedmachine/internal/bus"
	"nestedmachine/internal/cartridge"
)

// LoadErrorKind classifies a LoadROM failure.
type LoadErrorKind int

const (
	// InvalidROM covers a bad magic number or truncated image.
	InvalidROM LoadErrorKind = iota
	// UnsupportedMapper covers a mapper id outside {0, 1, 3}.
	UnsupportedMapper
	// IOFailure covers a host-side read failure (file not found, etc).
	IOFailure
)

// LoadError is returned by LoadROM/LoadROMBytes on failure.
type LoadError struct {
	Kind LoadErrorKind
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("emulator: load_rom failed: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Pixel is a 24-bit RGB color as framebuffer() returns it to the host.
type Pixel struct {
	R, G, B uint8
}

// Emulator is the public-facing NES core: cartridge, bus, and the one
// entrypoint (RunFrame) that advances emulation.
type Emulator struct {
	bus  *bus.Bus
	cart *cartridge.Cartridge
}

// New creates an emulator with no cartridge loaded.
func New() *Emulator {
	return &Emulator{bus: bus.New()}
}

// LoadROM loads an iNES image from a file path.
func (e *Emulator) LoadROM(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &LoadError{Kind: IOFailure, Err: err}
	}
	return e.LoadROMBytes(data)
}

// LoadROMBytes parses an iNES image already held in memory.
func (e *Emulator) LoadROMBytes(data []byte) error {
	cart, err := cartridge.LoadFromReader(bytes.NewReader(data))
	if err != nil {
		kind := InvalidROM
		if errors.Is(err, cartridge.ErrUnsupportedMapper) {
			kind = UnsupportedMapper
		}
		return &LoadError{Kind: kind, Err: err}
	}
	e.cart = cart
	e.bus.LoadCartridge(cart)
	return nil
}

// SetController sets all eight button states for one controller port
// (0 or 1), B/A/Select/Start/Up/Down/Left/Right order.
func (e *Emulator) SetController(port int, buttons [8]bool) {
	e.bus.SetControllerButtons(port, buttons)
}

// RunFrame advances emulation by exactly one complete PPU frame.
func (e *Emulator) RunFrame() {
	e.bus.RunFrame()
}

// Framebuffer returns the most recently rendered 256x240 frame as
// 24-bit RGB pixels.
func (e *Emulator) Framebuffer() [256 * 240]Pixel {
	raw := e.bus.FrameBuffer()
	var out [256 * 240]Pixel
	for i, c := range raw {
		out[i] = Pixel{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c)}
	}
	return out
}

// RawFramebuffer returns the frame as packed 0x00RRGGBB words, the
// form the graphics backends render directly without a per-pixel
// conversion.
func (e *Emulator) RawFramebuffer() [256 * 240]uint32 {
	return e.bus.FrameBuffer()
}

// Reset performs a warm reset via the cartridge's reset vector.
func (e *Emulator) Reset() {
	e.bus.Reset()
}

// DisassembleFrom decodes count instructions starting at address,
// without side effects on CPU state.
func (e *Emulator) DisassembleFrom(address uint16, count int) []string {
	out := make([]string, 0, count)
	addr := address
	for i := 0; i < count; i++ {
		text, length := e.bus.CPU.Disassemble(addr)
		out = append(out, fmt.Sprintf("$%04X: %s", addr, text))
		if length <= 0 {
			length = 1
		}
		addr += uint16(length)
	}
	return out
}

// CPURegisters returns a snapshot of the CPU register file.
func (e *Emulator) CPURegisters() bus.CPURegisters {
	return e.bus.CPURegisters()
}

// PPURegisters returns a snapshot of the PPU's register state.
func (e *Emulator) PPURegisters() bus.PPURegisters {
	return e.bus.PPURegisters()
}

// PatternTable renders one of the two 128x128 CHR pattern tables using
// the given palette, for the host's debug viewer.
func (e *Emulator) PatternTable(index int, palette uint8) [128 * 128]uint32 {
	return e.bus.PPU.PatternTable(index, palette)
}

// PRGRAMSnapshot returns a copy of cartridge PRG RAM for external
// persistence when the cartridge is battery-backed.
func (e *Emulator) PRGRAMSnapshot() []uint8 {
	if e.cart == nil {
		return nil
	}
	return e.cart.PRGRAMSnapshot()
}

// LoadPRGRAM restores cartridge PRG RAM from a previously captured
// snapshot.
func (e *Emulator) LoadPRGRAM(data []uint8) {
	if e.cart != nil {
		e.cart.LoadPRGRAM(data)
	}
}

// HasBattery reports whether the loaded cartridge's PRG RAM should be
// persisted by the host across runs.
func (e *Emulator) HasBattery() bool {
	return e.cart != nil && e.cart.HasBattery()
}
