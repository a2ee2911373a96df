package mango

// Arg represents a resolved instruction operand: a register, a memory
// reference, an immediate, or a relative branch displacement. Every operand
// carries its width, which is how the renderer picks memory-size qualifiers.
type Arg interface {
	isArg()
	width() uint8
}

// ArgWidth returns the width of a resolved operand in bytes. A width of 0
// means "address only" (the LEA memory operand).
func ArgWidth(arg Arg) uint8 { return arg.width() }

// Mem is a memory-reference operand. Base is RIP for RIP-relative
// addressing. Index 0 means no scaled index, Base 0 no base register. Seg is
// non-zero when a segment-override prefix applies. Width is the operand
// width in bytes (0 for address-only operands).
//
// Mem implements Arg.
type Mem struct {
	Disp  DispArg
	Seg   Reg
	Base  Reg
	Index Reg
	Scale uint8
	Width uint8
}

func (m Mem) isArg()       {}
func (m Mem) width() uint8 { return m.Width }

// ImmArg represents an immediate operand.
//
// Any Imm8, Imm16, Imm32, or Imm64 value implements ImmArg.
type ImmArg interface {
	Arg
	isImm()
	Int64() int64
}

func isImm(arg Arg) bool {
	_, ok := arg.(ImmArg)
	return ok
}

// Imm8 is an 8-bit immediate operand.
//
// Imm8 implements ImmArg.
type Imm8 int8

// Imm16 is a 16-bit immediate operand.
//
// Imm16 implements ImmArg.
type Imm16 int16

// Imm32 is a 32-bit immediate operand.
//
// Imm32 implements ImmArg.
type Imm32 int32

// Imm64 is a 64-bit immediate operand.
//
// Imm64 implements ImmArg.
type Imm64 int64

func (i Imm8) isArg()  {}
func (i Imm16) isArg() {}
func (i Imm32) isArg() {}
func (i Imm64) isArg() {}

func (i Imm8) isImm()  {}
func (i Imm16) isImm() {}
func (i Imm32) isImm() {}
func (i Imm64) isImm() {}

func (i Imm8) width() uint8  { return 1 }
func (i Imm16) width() uint8 { return 2 }
func (i Imm32) width() uint8 { return 4 }
func (i Imm64) width() uint8 { return 8 }

func (i Imm8) Int64() int64  { return int64(i) }
func (i Imm16) Int64() int64 { return int64(i) }
func (i Imm32) Int64() int64 { return int64(i) }
func (i Imm64) Int64() int64 { return int64(i) }

// DispArg represents a displacement: either the displacement part of a
// memory reference or a relative branch target.
//
// Any Rel8, Rel16, or Rel32 value implements DispArg.
type DispArg interface {
	Arg
	isDisp()
	Int32() int32
}

func isDisp(arg Arg) bool {
	_, ok := arg.(DispArg)
	return ok
}

// Rel8 is an 8-bit displacement.
//
// Rel8 implements DispArg.
type Rel8 int8

// Rel16 is a 16-bit displacement.
//
// Rel16 implements DispArg.
type Rel16 int16

// Rel32 is a 32-bit displacement.
//
// Rel32 implements DispArg.
type Rel32 int32

func (r Rel8) isArg()  {}
func (r Rel16) isArg() {}
func (r Rel32) isArg() {}

func (r Rel8) isDisp()  {}
func (r Rel16) isDisp() {}
func (r Rel32) isDisp() {}

func (r Rel8) width() uint8  { return 1 }
func (r Rel16) width() uint8 { return 2 }
func (r Rel32) width() uint8 { return 4 }

func (r Rel8) Int32() int32  { return int32(r) }
func (r Rel16) Int32() int32 { return int32(r) }
func (r Rel32) Int32() int32 { return int32(r) }

// RegArg represents any register operand.
type RegArg interface {
	Arg
	isReg()
}

func isReg(arg Arg) bool {
	_, ok := arg.(RegArg)
	return ok
}

var _ RegArg = Reg(0)
