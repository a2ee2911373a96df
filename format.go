package mango

import (
	"fmt"
	"strings"
)

// Canonical display forms follow Intel syntax: lowercase mnemonics and
// registers, hex immediates and displacements, and byte/word/dword/qword ptr
// qualifiers on sized memory operands.

func (i Imm8) String() string  { return fmt.Sprintf("%#x", int8(i)) }
func (i Imm16) String() string { return fmt.Sprintf("%#x", int16(i)) }
func (i Imm32) String() string { return fmt.Sprintf("%#x", int32(i)) }
func (i Imm64) String() string { return fmt.Sprintf("%#x", int64(i)) }

// Relative displacements render as offsets from the next instruction,
// e.g. ".+0x4".
func relString(v int32) string {
	if v < 0 {
		return fmt.Sprintf(".-%#x", uint32(-v))
	}
	return fmt.Sprintf(".+%#x", uint32(v))
}

func (r Rel8) String() string  { return relString(int32(r)) }
func (r Rel16) String() string { return relString(int32(r)) }
func (r Rel32) String() string { return relString(int32(r)) }

func sizeQualifier(w uint8) string {
	switch w {
	case 1:
		return "byte ptr "
	case 2:
		return "word ptr "
	case 4:
		return "dword ptr "
	case 8:
		return "qword ptr "
	}
	return "ptr "
}

func (m Mem) String() string {
	var sb strings.Builder
	sb.WriteString(sizeQualifier(m.Width))
	if m.Seg != 0 {
		sb.WriteString(m.Seg.String())
		sb.WriteByte(':')
	}
	sb.WriteByte('[')
	empty := true
	if m.Base != 0 {
		sb.WriteString(m.Base.String())
		empty = false
	}
	if m.Index != 0 {
		if !empty {
			sb.WriteByte('+')
		}
		fmt.Fprintf(&sb, "%s*%d", m.Index, m.Scale)
		empty = false
	}
	if m.Disp != nil {
		v := m.Disp.Int32()
		switch {
		case empty:
			fmt.Fprintf(&sb, "%#x", uint32(v))
		case v < 0:
			fmt.Fprintf(&sb, "-%#x", uint32(-v))
		default:
			fmt.Fprintf(&sb, "+%#x", uint32(v))
		}
	} else if empty {
		sb.WriteString("0x0")
	}
	sb.WriteByte(']')
	return sb.String()
}

// printedPrefixes yields the prefixes rendered before the mnemonic. Segment
// overrides render on the memory operand, size overrides are consumed by
// size resolution, and the Rep prefix of the ENDBR forms is part of the
// opcode itself.
func (inst *Inst) printedPrefixes() []Prefix {
	var out []Prefix
	for _, p := range inst.Prefixes {
		switch p {
		case PrefixLock, PrefixRepNE:
			out = append(out, p)
		case PrefixRep:
			if op := inst.Op(); op != ENDBR32 && op != ENDBR64 {
				out = append(out, p)
			}
		}
	}
	return out
}

// Mnemonic returns the lowercase mnemonic, including any printed prefixes,
// e.g. "lock add".
func (inst *Inst) Mnemonic() string {
	var sb strings.Builder
	for _, p := range inst.printedPrefixes() {
		sb.WriteString(p.String())
		sb.WriteByte(' ')
	}
	sb.WriteString(strings.ToLower(inst.Op().Name()))
	return sb.String()
}

// OperandString returns the comma-separated operand list.
func (inst *Inst) OperandString() string {
	var sb strings.Builder
	for i, arg := range inst.Args {
		if arg == nil {
			break
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%v", arg)
	}
	return sb.String()
}

// String renders the instruction in Intel syntax, e.g. "xor eax, eax".
func (inst *Inst) String() string {
	ops := inst.OperandString()
	if ops == "" {
		return inst.Mnemonic()
	}
	return inst.Mnemonic() + " " + ops
}
