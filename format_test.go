package mango

import "testing"

func TestImmString(t *testing.T) {
	cases := []struct {
		imm  ImmArg
		want string
	}{
		{Imm8(5), "0x5"},
		{Imm8(-1), "-0x1"},
		{Imm16(0x1234), "0x1234"},
		{Imm32(-16), "-0x10"},
		{Imm64(0x123456789abcdef), "0x123456789abcdef"},
	}
	for _, c := range cases {
		if got := c.imm.(interface{ String() string }).String(); got != c.want {
			t.Fatalf("%T(%v): %q, want %q", c.imm, c.imm, got, c.want)
		}
	}
}

func TestRelString(t *testing.T) {
	if got := Rel8(4).String(); got != ".+0x4" {
		t.Fatalf("Rel8(4): %q", got)
	}
	if got := Rel8(-4).String(); got != ".-0x4" {
		t.Fatalf("Rel8(-4): %q", got)
	}
	if got := Rel32(0).String(); got != ".+0x0" {
		t.Fatalf("Rel32(0): %q", got)
	}
	if got := Rel16(-256).String(); got != ".-0x100" {
		t.Fatalf("Rel16(-256): %q", got)
	}
}

func TestMemString(t *testing.T) {
	cases := []struct {
		mem  Mem
		want string
	}{
		{Mem{Base: RAX, Width: 8}, "qword ptr [rax]"},
		{Mem{Base: RAX, Index: RCX, Scale: 4, Disp: Rel8(0x10), Width: 4}, "dword ptr [rax+rcx*4+0x10]"},
		{Mem{Base: RBP, Disp: Rel8(-8), Width: 2}, "word ptr [rbp-0x8]"},
		{Mem{Disp: Rel32(0x11223344), Width: 1}, "byte ptr [0x11223344]"},
		{Mem{Base: RIP, Disp: Rel32(0x10), Width: 4}, "dword ptr [rip+0x10]"},
		{Mem{Base: RAX, Seg: FS, Width: 4}, "dword ptr fs:[rax]"},
		{Mem{Base: EAX, Index: ESI, Scale: 1}, "ptr [eax+esi*1]"},
		{Mem{Base: BX, Index: SI, Scale: 1, Width: 2}, "word ptr [bx+si*1]"},
		{Mem{Width: 4}, "dword ptr [0x0]"},
	}
	for _, c := range cases {
		if got := c.mem.String(); got != c.want {
			t.Fatalf("%+v: %q, want %q", c.mem, got, c.want)
		}
	}
}

func TestMnemonicPrefixes(t *testing.T) {
	inst := decodeOne(t, Mode64, []byte{0xF0, 0x01, 0x08})
	if got := inst.Mnemonic(); got != "lock add" {
		t.Fatalf("Mnemonic: %q", got)
	}
	// the ENDBR rep prefix is part of the opcode, not a printed prefix
	inst = decodeOne(t, Mode64, []byte{0xF3, 0x0F, 0x1E, 0xFA})
	if got := inst.Mnemonic(); got != "endbr64" {
		t.Fatalf("Mnemonic: %q", got)
	}
	// size and segment prefixes never print before the mnemonic
	inst = decodeOne(t, Mode64, []byte{0x66, 0x64, 0x01, 0x08})
	if got := inst.Mnemonic(); got != "add" {
		t.Fatalf("Mnemonic: %q", got)
	}
}

func TestOperandString(t *testing.T) {
	inst := decodeOne(t, Mode64, []byte{0x48, 0x89, 0xE2})
	if got := inst.OperandString(); got != "rdx, rsp" {
		t.Fatalf("OperandString: %q", got)
	}
	inst = decodeOne(t, Mode64, []byte{0x90})
	if got := inst.OperandString(); got != "" {
		t.Fatalf("OperandString for nop: %q", got)
	}
}
