package graphics

import "testing"

func TestColorEmphasisFromMask(t *testing.T) {
	e := ColorEmphasisFromMask(0xE0)
	if !e.Red || !e.Green || !e.Blue {
		t.Fatalf("mask $E0 should set all three emphasis bits, got %+v", e)
	}
	e = ColorEmphasisFromMask(0x20)
	if !e.Red || e.Green || e.Blue {
		t.Fatalf("mask $20 should set only red emphasis, got %+v", e)
	}
}

func TestColorEmphasisApplyIdentityWhenUnset(t *testing.T) {
	var frame [256 * 240]uint32
	frame[0] = 0x00804020
	out := ColorEmphasis{}.Apply(frame)
	if out[0] != frame[0] {
		t.Fatalf("no emphasis should leave pixels untouched, got %#08x", out[0])
	}
}

func TestColorEmphasisAttenuatesOtherChannels(t *testing.T) {
	var frame [256 * 240]uint32
	frame[0] = 0x00FFFFFF
	out := ColorEmphasis{Red: true}.Apply(frame)
	r := (out[0] >> 16) & 0xFF
	g := (out[0] >> 8) & 0xFF
	b := out[0] & 0xFF
	if r != 0xFF {
		t.Fatalf("emphasized red channel should be untouched, got %#02x", r)
	}
	if g >= 0xFF || b >= 0xFF {
		t.Fatalf("green/blue should be attenuated under red emphasis, got g=%#02x b=%#02x", g, b)
	}
}
