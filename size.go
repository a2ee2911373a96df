package mango

// Mode is the CPU operating mode assumed for a decode call. It selects the
// default operand size, the default address size, and the register-numbering
// space (8 vs 16 general registers). Immutable for the duration of a call.
type Mode uint8

const (
	Mode16 Mode = 16
	Mode32 Mode = 32
	Mode64 Mode = 64
)

// defaultOpSize is the mode's default operand width in bytes. 64-bit mode
// defaults to 32-bit operands; REX.W promotes to 64.
func (m Mode) defaultOpSize() uint8 {
	if m == Mode16 {
		return 2
	}
	return 4
}

// defaultAddrSize is the mode's default address width in bytes.
func (m Mode) defaultAddrSize() uint8 { return uint8(m) / 8 }

// OpSize describes the pre-resolution width of an operand template. The
// fixed sizes carry signedness so that sign-extending immediate forms (0x83)
// are distinguishable from zero-extending ones.
type OpSize uint8

const (
	SizeNone OpSize = iota // no width (address-only operands)
	SizeU8
	SizeI8
	SizeU16
	SizeI16
	SizeU32
	SizeI32
	SizeU64
	SizeI64
	SizeV   // derive from CPU mode / overrides (16, 32 or 64)
	SizeZ   // 16-bit in 16-bit operand size, else 32-bit
	SizeV64 // like SizeV, but defaults to 64-bit in 64-bit mode (d64 rule)
)

// Overridable reports whether the operand-size override and REX.W affect the
// size, i.e. whether it derives from the CPU mode.
func (s OpSize) Overridable() bool { return s >= SizeV }

// Signed reports whether an immediate of this size sign-extends when
// widened. x86 immediates always sign-extend, so only the explicit unsigned
// fixed sizes answer false.
func (s OpSize) Signed() bool {
	switch s {
	case SizeI8, SizeI16, SizeI32, SizeI64:
		return true
	}
	return false
}

// bytes resolves the template size to a concrete width in bytes given the
// effective operand size of the instruction.
func (s OpSize) bytes(effOp uint8) uint8 {
	switch s {
	case SizeU8, SizeI8:
		return 1
	case SizeU16, SizeI16:
		return 2
	case SizeU32, SizeI32:
		return 4
	case SizeU64, SizeI64:
		return 8
	case SizeV, SizeV64:
		return effOp
	case SizeZ:
		if effOp == 2 {
			return 2
		}
		return 4
	}
	return 0
}

// effOpSize computes the effective operand width in bytes from the CPU-mode
// default, the operand-size override, and REX.W. REX.W always wins over the
// legacy override.
func effOpSize(mode Mode, hasOvr bool, rex Rex, hasRex bool) uint8 {
	if hasRex && rex.W() {
		return 8
	}
	if hasOvr {
		// the override flips between the mode default and its alternate
		if mode == Mode16 {
			return 4
		}
		return 2
	}
	return mode.defaultOpSize()
}

// effV64Size is effOpSize for the d64 operand forms (PUSH/POP, near
// branches, RET): in 64-bit mode they default to 64-bit operands and cannot
// be demoted to 32.
func effV64Size(mode Mode, hasOvr bool) uint8 {
	if mode == Mode64 {
		if hasOvr {
			return 2
		}
		return 8
	}
	return effOpSize(mode, hasOvr, 0, false)
}

// effAddrSize computes the effective address width in bytes from the
// CPU-mode default and the address-size override. 64-bit mode can only be
// overridden down to 32-bit addressing.
func effAddrSize(mode Mode, hasOvr bool) uint8 {
	if !hasOvr {
		return mode.defaultAddrSize()
	}
	switch mode {
	case Mode16:
		return 4
	case Mode32:
		return 2
	default:
		return 4
	}
}
