package mango

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeAll(t *testing.T) {
	code := []byte{
		0xF3, 0x0F, 0x1E, 0xFA, // endbr64
		0x31, 0xC0, // xor eax, eax
		0xC3, // ret
	}
	d := &Disassembler{Mode: Mode64}
	insts, err := d.DecodeAll(NewReader(code))
	if err != nil {
		t.Fatal(err)
	}
	if len(insts) != 3 {
		t.Fatalf("decoded %d instructions", len(insts))
	}
	if insts[0].Op() != ENDBR64 || insts[1].Op() != XOR || insts[2].Op() != RET {
		t.Fatalf("identities: %v %v %v", insts[0].Op(), insts[1].Op(), insts[2].Op())
	}
	total := 0
	for _, inst := range insts {
		total += inst.Len
	}
	if total != len(code) {
		t.Fatalf("lengths sum to %d, want %d", total, len(code))
	}
}

func TestDecodeAllZeroValueIs64Bit(t *testing.T) {
	var d Disassembler
	insts, err := d.DecodeAll(NewReader([]byte{0x48, 0x89, 0xE2}))
	if err != nil || len(insts) != 1 {
		t.Fatalf("%v, %v", insts, err)
	}
	if got := insts[0].String(); got != "mov rdx, rsp" {
		t.Fatalf("decoded %q", got)
	}
}

func TestDecodeAllMax(t *testing.T) {
	d := &Disassembler{Mode: Mode64, Max: 2}
	insts, err := d.DecodeAll(NewReader([]byte{0x90, 0x90, 0x90, 0x90}))
	if err != nil || len(insts) != 2 {
		t.Fatalf("%d instructions, %v", len(insts), err)
	}
}

func TestDecodeAllErrorCarriesOffset(t *testing.T) {
	// the stream fails inside the second instruction
	d := &Disassembler{Mode: Mode64}
	insts, err := d.DecodeAll(NewReader([]byte{0x90, 0x81}))
	if !errors.Is(err, ErrNotEnoughBytes) {
		t.Fatalf("err: %v", err)
	}
	if len(insts) != 1 {
		t.Fatalf("instructions before the error: %d", len(insts))
	}
	if !strings.Contains(err.Error(), "0x1") {
		t.Fatalf("error does not name the offset: %v", err)
	}
}

func TestFprint(t *testing.T) {
	var sb strings.Builder
	d := &Disassembler{Mode: Mode64}
	err := d.Fprint(&sb, NewReader([]byte{0x31, 0xC0, 0xC3}))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("printed %d lines:\n%s", len(lines), sb.String())
	}
	if !strings.HasPrefix(lines[0], "31 c0 ") || !strings.Contains(lines[0], "xor") || !strings.Contains(lines[0], "eax, eax") {
		t.Fatalf("line 0: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "c3 ") || !strings.Contains(lines[1], "ret") {
		t.Fatalf("line 1: %q", lines[1])
	}
}
