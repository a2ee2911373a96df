package mango

import "testing"

func TestPrefixFromByte(t *testing.T) {
	cases := []struct {
		b    byte
		want Prefix
	}{
		{0xF0, PrefixLock},
		{0xF2, PrefixRepNE},
		{0xF3, PrefixRep},
		{0x2E, PrefixCS},
		{0x36, PrefixSS},
		{0x3E, PrefixDS},
		{0x26, PrefixES},
		{0x64, PrefixFS},
		{0x65, PrefixGS},
		{0x66, PrefixOpSize},
		{0x67, PrefixAddrSize},
	}
	for _, c := range cases {
		p, ok := PrefixFromByte(c.b)
		if !ok || p != c.want {
			t.Fatalf("PrefixFromByte(%#x) = %v, %v; want %v", c.b, p, ok, c.want)
		}
	}
	for _, b := range []byte{0x00, 0x0F, 0x40, 0x48, 0x90, 0xC3, 0xFF} {
		if p, ok := PrefixFromByte(b); ok {
			t.Fatalf("PrefixFromByte(%#x) = %v; want no prefix", b, p)
		}
	}
}

func TestPrefixSegments(t *testing.T) {
	segs := map[Prefix]Reg{
		PrefixCS: CS, PrefixSS: SS, PrefixDS: DS,
		PrefixES: ES, PrefixFS: FS, PrefixGS: GS,
	}
	for p := PrefixLock; p <= PrefixAddrSize; p++ {
		reg, wantSeg := segs[p]
		if p.IsSegment() != wantSeg {
			t.Fatalf("%v.IsSegment() = %v", p, p.IsSegment())
		}
		if p.SegmentReg() != reg {
			t.Fatalf("%v.SegmentReg() = %v; want %v", p, p.SegmentReg(), reg)
		}
	}
}
