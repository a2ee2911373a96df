package mango

// EffAddrKind tags the addressing form a ModR/M byte selects.
type EffAddrKind uint8

const (
	EffReg  EffAddrKind = iota // register-direct (mod=11), no memory operand
	EffBase                    // base register, optionally a 16-bit base/index pair
	EffSib                     // a SIB byte follows
	EffDisp                    // displacement only, no base (mod=00 rm=101, 16-bit rm=110)
	EffRip                     // RIP-relative disp32 (64-bit mode, mod=00 rm=101)
)

// ModRM is a decoded ModR/M byte. Reg and RM are the 4-bit REX-extended
// field values. For memory forms, Base/Index hold extended register numbers
// (-1 when absent) and Disp the width in bytes of the displacement that
// follows the ModR/M (or SIB) byte.
type ModRM struct {
	raw   byte
	Mod   byte
	Reg   byte
	RM    byte
	Kind  EffAddrKind
	Base  int8
	Index int8
	Disp  uint8
}

// 16-bit addressing base/index pairs, indexed by rm. The second register is
// -1 when the form has a single base. rm=110 is handled separately: it is
// the disp16-only form under mod=00 and BP+disp otherwise.
var pairs16 = [8][2]int8{
	{3, 6},  // BX+SI
	{3, 7},  // BX+DI
	{5, 6},  // BP+SI
	{5, 7},  // BP+DI
	{6, -1}, // SI
	{7, -1}, // DI
	{5, -1}, // BP (mod=01/10)
	{3, -1}, // BX
}

// DecodeModRM decodes a ModR/M byte. addrSize is the effective address width
// in bytes (2, 4 or 8) and selects the addressing-form table; rex extends
// the reg and r/m fields in 64-bit mode. Total function: every byte value
// decodes.
//
// The mod=00 special cases check the low three r/m bits only: rm=101 is the
// no-base/disp32 form (RIP-relative with 64-bit addressing) and rm=100
// selects a SIB byte, both regardless of REX.B.
func DecodeModRM(b byte, addrSize uint8, rex Rex) ModRM {
	m := ModRM{
		raw: b,
		Mod: b >> 6,
		Reg: (b >> 3) & 7,
		RM:  b & 7,
	}
	if addrSize != 2 {
		// rex is zero outside 64-bit mode, so this is a no-op there
		m.Reg |= rex.R() << 3
		m.RM |= rex.B() << 3
	}
	if m.Mod == 3 {
		m.Kind = EffReg
		return m
	}
	m.Base, m.Index = -1, -1

	if addrSize == 2 {
		rm := b & 7
		switch m.Mod {
		case 0:
			if rm == 6 {
				m.Kind, m.Disp = EffDisp, 2
				return m
			}
			m.Kind = EffBase
		case 1:
			m.Kind, m.Disp = EffBase, 1
		case 2:
			m.Kind, m.Disp = EffBase, 2
		}
		m.Base, m.Index = pairs16[rm][0], pairs16[rm][1]
		return m
	}

	switch m.Mod {
	case 1:
		m.Disp = 1
	case 2:
		m.Disp = 4
	}
	switch b & 7 {
	case 4:
		m.Kind = EffSib
		return m
	case 5:
		if m.Mod == 0 {
			m.Disp = 4
			if addrSize == 8 {
				m.Kind = EffRip
			} else {
				m.Kind = EffDisp
			}
			return m
		}
	}
	m.Kind = EffBase
	m.Base = int8(m.RM)
	return m
}

// RegisterDirect reports whether the addressing form is a plain register
// (mod=11) rather than a memory reference.
func (m ModRM) RegisterDirect() bool { return m.Kind == EffReg }

// Register returns the register-direct operand at the given width. Valid
// only when RegisterDirect reports true.
func (m ModRM) Register(w uint8, hasRex bool) Reg { return gpReg(w, m.RM, hasRex) }

// Sib is a decoded SIB byte: an optional base register, an optional scaled
// index register, and a scale factor.
type Sib struct {
	raw         byte
	Scale       uint8 // 1, 2, 4 or 8
	Index       int8  // extended register number, -1 when absent
	Base        int8  // extended register number, -1 when absent
	ForceDisp32 bool  // mod=00 with base=101: disp32 follows instead of a base
}

// DecodeSib decodes a SIB byte. The index field value 100 (the ESP/RSP slot)
// always encodes "no index", for every scale and regardless of REX.X. When
// mod=00 and the base field holds the EBP/RBP value, the base is absent and
// a 32-bit displacement follows the SIB byte; this resolves the encoding
// ambiguity with the no-base/disp32 ModR/M form.
func DecodeSib(b byte, mod byte, rex Rex) Sib {
	s := Sib{
		raw:   b,
		Scale: 1 << (b >> 6),
		Index: -1,
		Base:  -1,
	}
	if idx := (b >> 3) & 7; idx != 4 {
		s.Index = int8(idx | rex.X()<<3)
	}
	if base := b & 7; base == 5 && mod == 0 {
		s.ForceDisp32 = true
	} else {
		s.Base = int8(base | rex.B()<<3)
	}
	return s
}
