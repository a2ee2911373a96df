package mango

// ReadDisp reads a little-endian displacement of the given width in bytes.
// The width is determined entirely by the ModR/M/SIB decode that selected
// it, never inferred from the remaining stream.
func ReadDisp(r *Reader, width uint8) (DispArg, error) {
	switch width {
	case 1:
		v, err := r.ReadI8()
		return Rel8(v), err
	case 2:
		v, err := r.ReadI16()
		return Rel16(v), err
	case 4:
		v, err := r.ReadI32()
		return Rel32(v), err
	}
	return nil, ErrNotEnoughBytes
}

// ParseImm reads a little-endian signed immediate of the given width in
// bytes.
func ParseImm(r *Reader, width uint8) (ImmArg, error) {
	switch width {
	case 1:
		v, err := r.ReadI8()
		return Imm8(v), err
	case 2:
		v, err := r.ReadI16()
		return Imm16(v), err
	case 4:
		v, err := r.ReadI32()
		return Imm32(v), err
	case 8:
		v, err := r.ReadI64()
		return Imm64(v), err
	}
	return nil, ErrNotEnoughBytes
}

// WidenImm sign-extends an immediate to the given width in bytes without
// re-reading the stream. Widening to the current width or narrower is a
// no-op: immediates are never shrunk to match an operand.
func WidenImm(imm ImmArg, width uint8) ImmArg {
	if imm.width() >= width {
		return imm
	}
	v := imm.Int64()
	switch width {
	case 2:
		return Imm16(v)
	case 4:
		return Imm32(v)
	case 8:
		return Imm64(v)
	}
	return imm
}
