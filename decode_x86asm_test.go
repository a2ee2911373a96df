package mango

import (
	"testing"

	"golang.org/x/arch/x86/x86asm"
)

// x86asm names a few conditional jumps by their alias mnemonic.
var x86asmAliases = map[string]string{
	"JE":  "JZ",
	"JNE": "JNZ",
	"JAE": "JNB",
	"JA":  "JNBE",
	"JGE": "JNL",
	"JG":  "JNLE",
}

// Differential check against the x/arch decoder: for every covered encoding
// both decoders must agree on the instruction length and mnemonic identity.
func TestDecodeAgainstX86asm(t *testing.T) {
	cases := []struct {
		mode Mode
		code []byte
	}{
		{Mode64, []byte{0x31, 0xC0}},
		{Mode64, []byte{0x48, 0x89, 0xE2}},
		{Mode64, []byte{0x48, 0x01, 0xD8}},
		{Mode64, []byte{0x4D, 0x29, 0xC8}},
		{Mode64, []byte{0x04, 0x05}},
		{Mode64, []byte{0x66, 0x48, 0x05, 0x78, 0x56, 0x34, 0x12}},
		{Mode64, []byte{0x80, 0xC4, 0x01}},
		{Mode64, []byte{0x81, 0xF1, 0x44, 0x33, 0x22, 0x11}},
		{Mode64, []byte{0x83, 0xF0, 0x10}},
		{Mode64, []byte{0x48, 0x83, 0xC8, 0xFF}},
		{Mode64, []byte{0x88, 0xC8}},
		{Mode64, []byte{0x8B, 0x00}},
		{Mode64, []byte{0x48, 0x8B, 0x44, 0xC8, 0x10}},
		{Mode64, []byte{0x8B, 0x05, 0x10, 0x00, 0x00, 0x00}},
		{Mode64, []byte{0x8B, 0x04, 0x25, 0x44, 0x33, 0x22, 0x11}},
		{Mode64, []byte{0x8B, 0x44, 0x24, 0x08}},
		{Mode64, []byte{0x4B, 0x8B, 0x44, 0xCA, 0xF0}},
		{Mode64, []byte{0x8B, 0x45, 0x00}},
		{Mode64, []byte{0x67, 0x8B, 0x00}},
		{Mode64, []byte{0x64, 0x8B, 0x04, 0x25, 0x44, 0x33, 0x22, 0x11}},
		{Mode64, []byte{0xB4, 0x05}},
		{Mode64, []byte{0x48, 0xB8, 0xEF, 0xCD, 0xAB, 0x89, 0x67, 0x45, 0x23, 0x01}},
		{Mode64, []byte{0x41, 0xBB, 0x01, 0x00, 0x00, 0x00}},
		{Mode64, []byte{0xC6, 0x00, 0x05}},
		{Mode64, []byte{0x48, 0xC7, 0xC0, 0xFF, 0xFF, 0xFF, 0xFF}},
		{Mode64, []byte{0x48, 0x8D, 0x04, 0x08}},
		{Mode64, []byte{0xFE, 0xC8}},
		{Mode64, []byte{0x48, 0xFF, 0xC0}},
		{Mode64, []byte{0xFF, 0x08}},
		{Mode64, []byte{0x50}},
		{Mode64, []byte{0x41, 0x50}},
		{Mode64, []byte{0x5D}},
		{Mode64, []byte{0x68, 0x78, 0x56, 0x34, 0x12}},
		{Mode64, []byte{0x6A, 0xF0}},
		{Mode64, []byte{0xFF, 0x30}},
		{Mode64, []byte{0x8F, 0xC0}},
		{Mode64, []byte{0x74, 0x05}},
		{Mode64, []byte{0x7F, 0x00}},
		{Mode64, []byte{0x0F, 0x84, 0x00, 0x01, 0x00, 0x00}},
		{Mode64, []byte{0xE8, 0x00, 0x00, 0x00, 0x00}},
		{Mode64, []byte{0xE9, 0xFB, 0xFF, 0xFF, 0xFF}},
		{Mode64, []byte{0xEB, 0xFE}},
		{Mode64, []byte{0xFF, 0xD0}},
		{Mode64, []byte{0xFF, 0x25, 0x00, 0x00, 0x00, 0x00}},
		{Mode64, []byte{0x90}},
		{Mode64, []byte{0x0F, 0x1F, 0x40, 0x00}},
		{Mode64, []byte{0xC3}},
		{Mode64, []byte{0xC2, 0x08, 0x00}},
		{Mode64, []byte{0xF0, 0x01, 0x08}},

		{Mode32, []byte{0x31, 0xC0}},
		{Mode32, []byte{0x40}},
		{Mode32, []byte{0x4F}},
		{Mode32, []byte{0x50}},
		{Mode32, []byte{0xB8, 0x44, 0x33, 0x22, 0x11}},
		{Mode32, []byte{0x8B, 0x05, 0x10, 0x00, 0x00, 0x00}},
		{Mode32, []byte{0x65, 0x8B, 0x00}},
		{Mode32, []byte{0x8F, 0xC0}},

		{Mode16, []byte{0x31, 0xC0}},
		{Mode16, []byte{0x8B, 0x02}},
		{Mode16, []byte{0x8B, 0x46, 0x08}},
		{Mode16, []byte{0x8B, 0x06, 0x34, 0x12}},
		{Mode16, []byte{0x2D, 0x34, 0x12}},
	}
	for _, c := range cases {
		got, err := Decode(NewReader(c.code), c.mode)
		if err != nil {
			t.Errorf("% x (mode %d): %v", c.code, c.mode, err)
			continue
		}
		ref, err := x86asm.Decode(c.code, int(c.mode))
		if err != nil {
			t.Errorf("% x (mode %d): x86asm: %v", c.code, c.mode, err)
			continue
		}
		if got.Len != ref.Len {
			t.Errorf("% x (mode %d): len %d, x86asm len %d", c.code, c.mode, got.Len, ref.Len)
		}
		refName := ref.Op.String()
		if alias, ok := x86asmAliases[refName]; ok {
			refName = alias
		}
		if name := got.Op().Name(); name != refName {
			t.Errorf("% x (mode %d): mnemonic %s, x86asm %s", c.code, c.mode, name, refName)
		}
		// both decoders must consume the whole sample
		if got.Len != len(c.code) {
			t.Errorf("% x (mode %d): decoded %d of %d bytes", c.code, c.mode, got.Len, len(c.code))
		}
	}
}
