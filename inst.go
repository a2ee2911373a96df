package mango

// Inst is one fully decoded instruction: its prefixes, optional REX byte,
// resolved opcode, raw ModR/M/SIB/displacement components, and up to four
// resolved operands. An Inst is immutable once returned and owned by the
// caller.
type Inst struct {
	Opcode    Opcode
	Prefixes  [3]Prefix // in stream order, zero-padded
	Rex       Rex
	HasRex    bool
	ModRM     ModRM
	HasModRM  bool
	Sib       Sib
	HasSib    bool
	Disp      DispArg // memory-operand displacement, nil when absent
	Args      [4]Arg  // resolved operands in declaration order, nil-padded
	OpWidth   uint8   // effective operand width in bytes (0 for no operands)
	AddrWidth uint8   // effective address width in bytes
	Mode      Mode
	Len       int // total encoded length in bytes
}

// Op returns the mnemonic identity of the instruction.
func (inst *Inst) Op() Op { return inst.Opcode.Ident }

// maxPrefixes bounds legacy-prefix accumulation. Three covers every prefix
// combination the table accepts; the bound guards against pathological
// input, it is not an architectural limit.
const maxPrefixes = 3

// Decode parses one instruction from the cursor in the given CPU mode. On
// success the cursor has advanced by exactly the returned instruction's
// length; on error no instruction is returned and the cursor position is
// unspecified. Decode never retries and never returns a partial
// instruction.
func Decode(r *Reader, mode Mode) (Inst, error) {
	inst := Inst{Mode: mode}
	start := r.Pos()

	// prefix scan
	var prefixes []Prefix
	nprefix := 0
	oc, err := ResolveOpcode(r, prefixes, mode)
	for err == nil && oc.IsPrefix() {
		if nprefix == maxPrefixes {
			return Inst{}, ErrInvalidPrefix
		}
		inst.Prefixes[nprefix] = oc.Prefix
		nprefix++
		prefixes = inst.Prefixes[:nprefix]
		oc, err = ResolveOpcode(r, prefixes, mode)
	}
	if err != nil {
		return Inst{}, err
	}

	// REX check: at most one REX byte, directly before the opcode
	if oc.IsRex() {
		inst.Rex, inst.HasRex = oc.Rex, true
		oc, err = ResolveOpcode(r, prefixes, mode)
		if err != nil {
			return Inst{}, err
		}
		if oc.IsPrefix() || oc.IsRex() {
			return Inst{}, ErrInvalidPrefix
		}
	}

	var hasOpOvr, hasAddrOvr bool
	var seg Reg
	for _, p := range prefixes {
		switch {
		case p == PrefixOpSize:
			hasOpOvr = true
		case p == PrefixAddrSize:
			hasAddrOvr = true
		case p.IsSegment():
			seg = p.SegmentReg()
		}
	}
	effOp := effOpSize(mode, hasOpOvr, inst.Rex, inst.HasRex)
	effOp64 := effV64Size(mode, hasOpOvr)
	if inst.HasRex && inst.Rex.W() {
		effOp64 = 8
	}
	inst.AddrWidth = effAddrSize(mode, hasAddrOvr)

	// extension check: identity lives in the reg field of the next byte,
	// which is peeked here and consumed below as the ModR/M byte
	if oc.NeedsExt() {
		b, err := r.PeekU8()
		if err != nil {
			return Inst{}, err
		}
		oc, err = oc.ConvertWithExt((b>>3)&7, mode)
		if err != nil {
			return Inst{}, err
		}
	}
	inst.Opcode = oc

	if oc.Enc.HasModRM() {
		b, err := r.ReadU8()
		if err != nil {
			return Inst{}, err
		}
		inst.ModRM = DecodeModRM(b, inst.AddrWidth, inst.Rex)
		inst.HasModRM = true
		dispWidth := inst.ModRM.Disp
		if inst.ModRM.Kind == EffSib {
			sb, err := r.ReadU8()
			if err != nil {
				return Inst{}, err
			}
			inst.Sib = DecodeSib(sb, inst.ModRM.Mod, inst.Rex)
			inst.HasSib = true
			if inst.Sib.ForceDisp32 {
				dispWidth = 4
			}
		}
		if dispWidth > 0 {
			inst.Disp, err = ReadDisp(r, dispWidth)
			if err != nil {
				return Inst{}, err
			}
		}
	}

	// operand resolution, left to right
	for i := 0; i < len(oc.Args); i++ {
		t := oc.Args[i]
		if t.Kind == TmplNone {
			break
		}
		eff := effOp
		if t.Size == SizeV64 {
			eff = effOp64
		}
		w := t.Size.bytes(eff)

		var arg Arg
		switch t.Kind {
		case TmplImm:
			iw := w
			if iw == 8 && !oc.imm64Allowed() {
				iw = 4
			}
			imm, err := ParseImm(r, iw)
			if err != nil {
				return Inst{}, err
			}
			// an immediate matches the width of the operand it accompanies:
			// widen toward the earlier operand, never shrink
			if i > 0 && inst.Args[i-1] != nil {
				if pw := ArgWidth(inst.Args[i-1]); pw > ArgWidth(imm) {
					imm = WidenImm(imm, pw)
				}
			}
			arg = imm
		case TmplRel:
			d, err := ReadDisp(r, w)
			if err != nil {
				return Inst{}, err
			}
			arg = d
		case TmplRegInOp:
			num := oc.Byte & 7
			if mode == Mode64 && inst.HasRex {
				num |= inst.Rex.B() << 3
			}
			arg = gpReg(w, num, inst.HasRex)
		case TmplFamily:
			arg = t.Fam.AtWidth(w)
		case TmplFixedReg, TmplSeg:
			arg = t.Fixed
		case TmplModReg:
			if !inst.HasModRM {
				return Inst{}, ErrInvalidModRM
			}
			arg = gpReg(w, inst.ModRM.Reg, inst.HasRex)
		case TmplModRM, TmplModRMMem:
			if !inst.HasModRM {
				return Inst{}, ErrInvalidModRM
			}
			if inst.ModRM.RegisterDirect() {
				rw := w
				if rw == 0 {
					rw = eff
				}
				arg = inst.ModRM.Register(rw, inst.HasRex)
			} else {
				arg = inst.memOperand(w, seg)
			}
		}
		inst.Args[i] = arg
		if inst.OpWidth == 0 {
			inst.OpWidth = ArgWidth(arg)
		}
	}

	inst.Len = r.Pos() - start
	return inst, nil
}

// memOperand assembles the memory reference selected by the decoded
// ModR/M/SIB/displacement, reinterpreting base and index registers at the
// effective address width.
func (inst *Inst) memOperand(w uint8, seg Reg) Mem {
	m := Mem{Width: w, Seg: seg, Disp: inst.Disp}
	addrReg := func(num uint8) Reg { return gpReg(inst.AddrWidth, num, true) }
	switch inst.ModRM.Kind {
	case EffBase:
		m.Base = addrReg(uint8(inst.ModRM.Base))
		if inst.ModRM.Index >= 0 {
			m.Index = addrReg(uint8(inst.ModRM.Index))
			m.Scale = 1
		}
	case EffRip:
		m.Base = RIP
	case EffDisp:
		// displacement only
	case EffSib:
		if inst.Sib.Base >= 0 {
			m.Base = addrReg(uint8(inst.Sib.Base))
		}
		if inst.Sib.Index >= 0 {
			m.Index = addrReg(uint8(inst.Sib.Index))
			m.Scale = inst.Sib.Scale
		}
	}
	return m
}
