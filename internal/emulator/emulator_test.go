package emulator

import (
	"bytes"
	"errors"
	"testing"
)

func buildNROM(resetVector uint16) []byte {
	var buf bytes.Buffer
	buf.WriteString("NES\x1A")
	buf.WriteByte(1)
	buf.WriteByte(0)
	buf.WriteByte(0)
	buf.WriteByte(0)
	buf.Write(make([]byte, 8))
	prg := make([]byte, 16384)
	prg[0x3FFC] = byte(resetVector)
	prg[0x3FFD] = byte(resetVector >> 8)
	buf.Write(prg)
	return buf.Bytes()
}

func TestLoadROMBytesAndReset(t *testing.T) {
	e := New()
	if err := e.LoadROMBytes(buildNROM(0x8055)); err != nil {
		t.Fatalf("LoadROMBytes: %v", err)
	}
	if got := e.CPURegisters().PC; got != 0x8055 {
		t.Fatalf("PC after load = %#04x, want $8055", got)
	}
	e.Reset()
	if got := e.CPURegisters().PC; got != 0x8055 {
		t.Fatalf("PC after reset = %#04x, want $8055", got)
	}
}

func TestLoadROMBytesRejectsBadMagic(t *testing.T) {
	e := New()
	err := e.LoadROMBytes([]byte("not an ines file at all"))
	if err == nil {
		t.Fatal("expected an error for an invalid ROM image")
	}
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %T", err)
	}
	if loadErr.Kind != InvalidROM {
		t.Fatalf("expected InvalidROM, got %v", loadErr.Kind)
	}
}

func TestRunFrameAdvancesFramebuffer(t *testing.T) {
	e := New()
	if err := e.LoadROMBytes(buildNROM(0x8000)); err != nil {
		t.Fatalf("LoadROMBytes: %v", err)
	}
	before := e.PPURegisters().FrameCount
	e.RunFrame()
	if got := e.PPURegisters().FrameCount; got != before+1 {
		t.Fatalf("frame count = %d, want %d", got, before+1)
	}
	fb := e.Framebuffer()
	if len(fb) != 256*240 {
		t.Fatalf("framebuffer length = %d, want %d", len(fb), 256*240)
	}
}

func TestDisassembleFromDecodesConsecutiveInstructions(t *testing.T) {
	data := buildNROM(0x8000)
	// header is 16 bytes; PRG starts right after.
	data[16+0] = 0xA9 // LDA #$10
	data[16+1] = 0x10
	data[16+2] = 0xEA // NOP

	e := New()
	if err := e.LoadROMBytes(data); err != nil {
		t.Fatalf("LoadROMBytes: %v", err)
	}
	lines := e.DisassembleFrom(0x8000, 2)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
}
