package mango

// Rex is a REX prefix byte. REX occupies opcodes 0x40-0x4F in 64-bit mode; in
// 16/32-bit modes the same range encodes INC/DEC r and must not be classified
// as REX (the opcode table performs that mode check, not this type).
//
//	[4..8) bits are always 0100
//	W = bit 3: force 64-bit operand size
//	R = bit 2: extension of the ModR/M reg field
//	X = bit 1: extension of the SIB index field
//	B = bit 0: extension of the ModR/M r/m field, SIB base field, or opcode reg field
type Rex uint8

// RexFromByte classifies a byte as a REX prefix. The second return value is
// false for bytes outside 0x40-0x4F. Pure function.
func RexFromByte(b byte) (Rex, bool) {
	if b&0xF0 != 0x40 {
		return 0, false
	}
	return Rex(b), true
}

// W reports whether REX.W is set (64-bit operand size).
func (r Rex) W() bool { return r&0x8 != 0 }

// R returns the ModR/M reg field extension bit.
func (r Rex) R() byte { return byte(r>>2) & 1 }

// X returns the SIB index field extension bit.
func (r Rex) X() byte { return byte(r>>1) & 1 }

// B returns the ModR/M r/m, SIB base, or opcode reg field extension bit.
func (r Rex) B() byte { return byte(r) & 1 }
