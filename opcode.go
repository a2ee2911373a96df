package mango

import (
	"errors"
	"fmt"
)

// The two/three-byte escape code.
const escapeCode = 0x0F

// ErrInvalidPrefix is returned when the byte stream carries a prefix/escape
// pairing the opcode maps do not recognize as legal, when the prefix bound
// is exceeded, or when a legacy prefix follows a REX byte.
var ErrInvalidPrefix = errors.New("mango: invalid prefix combination")

// ErrInvalidModRM signals an operand template that requires a ModR/M byte
// when none was decoded. This is an opcode-table/operand-encoding mismatch,
// a bug in the tables rather than bad input.
var ErrInvalidModRM = errors.New("mango: operand requires a ModR/M byte that was not decoded")

// InvalidOpcodeError reports an escape-prefixed byte that does not match a
// known secondary opcode. It carries the offending bytes for diagnostics.
type InvalidOpcodeError struct {
	Bytes []byte
}

func (e *InvalidOpcodeError) Error() string {
	return fmt.Sprintf("mango: invalid opcode % x", e.Bytes)
}

// Invalid3ByteOpcodeError reports a three-byte opcode sequence whose final
// byte is not recognized.
type Invalid3ByteOpcodeError struct {
	Bytes []byte
}

func (e *Invalid3ByteOpcodeError) Error() string {
	return fmt.Sprintf("mango: invalid 3-byte opcode % x", e.Bytes)
}

// Op identifies an instruction mnemonic. UNKNOWN is the identity of every
// byte the one-byte map does not cover: the map is total so that a stream
// containing unsupported encodings does not abort mid-buffer.
type Op uint8

const (
	UNKNOWN Op = iota
	ADD
	OR
	ADC
	SBB
	AND
	SUB
	XOR
	CMP
	MOV
	LEA
	INC
	DEC
	CALL
	LCALL
	JMP
	LJMP
	PUSH
	POP
	NOP
	RET
	ENDBR32
	ENDBR64
	JO
	JNO
	JB
	JNB
	JZ
	JNZ
	JBE
	JNBE
	JS
	JNS
	JP
	JNP
	JL
	JNL
	JLE
	JNLE

	// internal resolution markers, never present on a decoded instruction
	opPrefix
	opRex
	opNeedsExt
)

var opNames = [...]string{
	UNKNOWN: "(unknown)",
	ADD:     "ADD",
	OR:      "OR",
	ADC:     "ADC",
	SBB:     "SBB",
	AND:     "AND",
	SUB:     "SUB",
	XOR:     "XOR",
	CMP:     "CMP",
	MOV:     "MOV",
	LEA:     "LEA",
	INC:     "INC",
	DEC:     "DEC",
	CALL:    "CALL",
	LCALL:   "LCALL",
	JMP:     "JMP",
	LJMP:    "LJMP",
	PUSH:    "PUSH",
	POP:     "POP",
	NOP:     "NOP",
	RET:     "RET",
	ENDBR32: "ENDBR32",
	ENDBR64: "ENDBR64",
	JO:      "JO",
	JNO:     "JNO",
	JB:      "JB",
	JNB:     "JNB",
	JZ:      "JZ",
	JNZ:     "JNZ",
	JBE:     "JBE",
	JNBE:    "JNBE",
	JS:      "JS",
	JNS:     "JNS",
	JP:      "JP",
	JNP:     "JNP",
	JL:      "JL",
	JNL:     "JNL",
	JLE:     "JLE",
	JNLE:    "JNLE",
}

// Name returns the mnemonic name in uppercase.
func (op Op) Name() string {
	if int(op) < len(opNames) && opNames[op] != "" {
		return opNames[op]
	}
	return "(invalid)"
}

// Encoding describes how an opcode's operands map onto the byte stream.
type Encoding uint8

const (
	ZO Encoding = iota // no operands
	I                  // accumulator (or none) + immediate
	MR                 // memory/register destination, register source
	RM                 // register destination, memory/register source
	MI                 // memory/register destination, immediate
	M                  // single memory/register operand
	O                  // operand embedded in the opcode low bits
	D                  // relative branch displacement
)

// HasModRM reports whether the encoding consumes a ModR/M byte.
func (e Encoding) HasModRM() bool {
	switch e {
	case MR, RM, MI, M:
		return true
	}
	return false
}

// TmplKind tags an OperandTemplate variant.
type TmplKind uint8

const (
	TmplNone     TmplKind = iota
	TmplModRM             // ModR/M register-or-memory (addressing method E)
	TmplModRMMem          // ModR/M memory-only, address operand (method M)
	TmplModReg            // ModR/M reg field register (method G)
	TmplRegInOp           // register embedded in opcode low bits (method O)
	TmplImm               // immediate (method I)
	TmplRel               // relative branch displacement (method J)
	TmplFixedReg          // a specific register
	TmplFamily            // a register-family placeholder, sized at resolution
	TmplSeg               // a segment register (method S)
)

// OperandTemplate is a per-operand, pre-resolution descriptor taken from the
// opcode table. The Instruction Assembler resolves each template into a
// concrete Arg.
type OperandTemplate struct {
	Kind  TmplKind
	Size  OpSize
	Fixed Reg       // TmplFixedReg / TmplSeg
	Fam   RegFamily // TmplFamily
}

// tmpl maps the processor manual's addressing-method/operand-type notation
// onto a concrete template. Methods: E (ModR/M reg-or-mem), M (ModR/M
// memory, address only), G (ModR/M reg field), O (opcode-embedded register),
// I (immediate), J (relative displacement). Types: b (byte), s
// (sign-extended byte), w (word), v (mode-derived), z (word for 16-bit
// operand size, else dword), q (mode-derived, 64-bit default in 64-bit mode).
func tmpl(method, typ byte) OperandTemplate {
	var size OpSize
	switch typ {
	case 'b':
		size = SizeU8
	case 's':
		size = SizeI8
	case 'w':
		size = SizeU16
	case 'v':
		size = SizeV
	case 'z':
		size = SizeZ
	case 'q':
		size = SizeV64
	default:
		panic("mango: bad operand type in opcode table")
	}
	switch method {
	case 'E':
		return OperandTemplate{Kind: TmplModRM, Size: size}
	case 'M':
		return OperandTemplate{Kind: TmplModRMMem, Size: SizeNone}
	case 'G':
		return OperandTemplate{Kind: TmplModReg, Size: size}
	case 'O':
		return OperandTemplate{Kind: TmplRegInOp, Size: size}
	case 'I':
		return OperandTemplate{Kind: TmplImm, Size: size}
	case 'J':
		return OperandTemplate{Kind: TmplRel, Size: size}
	}
	panic("mango: bad addressing method in opcode table")
}

func famTmpl(f RegFamily, size OpSize) OperandTemplate {
	return OperandTemplate{Kind: TmplFamily, Size: size, Fam: f}
}

// Opcode is a resolved opcode-table entry: a mnemonic identity, an
// operand-encoding shape, and up to four operand templates. During
// resolution the identity may also be one of the pass-through markers
// (legacy prefix, REX) or the needs-ModR/M-extension placeholder; the
// Instruction Assembler never surfaces those in a decoded instruction.
type Opcode struct {
	Ident  Op
	Enc    Encoding
	Args   [4]OperandTemplate
	Byte   byte   // raw primary opcode byte
	Prefix Prefix // set when Ident is the prefix pass-through
	Rex    Rex    // set when Ident is the REX pass-through
}

// IsPrefix reports whether this resolution produced a legacy prefix that the
// caller must accumulate before resolving again.
func (o Opcode) IsPrefix() bool { return o.Ident == opPrefix }

// IsRex reports whether this resolution produced a REX prefix.
func (o Opcode) IsRex() bool { return o.Ident == opRex }

// NeedsExt reports whether the opcode's identity depends on the reg field of
// the following ModR/M byte.
func (o Opcode) NeedsExt() bool { return o.Ident == opNeedsExt }

var onebyte [256]Opcode

// Extension->mnemonic table shared by the 0x80-0x83 immediate group. Also
// the mnemonic order of the eight one-byte ALU rows.
var aluOps = [8]Op{ADD, OR, ADC, SBB, AND, SUB, XOR, CMP}

// Extension->mnemonic table for the 0xFF group.
var ff7Ops = [8]Op{INC, DEC, CALL, LCALL, JMP, LJMP, PUSH, UNKNOWN}

func set(b byte, ident Op, enc Encoding, args ...OperandTemplate) {
	oc := Opcode{Ident: ident, Enc: enc, Byte: b}
	copy(oc.Args[:], args)
	onebyte[b] = oc
}

func setExt(b byte) {
	onebyte[b] = Opcode{Ident: opNeedsExt, Byte: b}
}

func init() {
	// ALU rows: 8 opcodes each, in the classic op/8 layout.
	for i, op := range aluOps {
		base := byte(i * 8)
		set(base+0, op, MR, tmpl('E', 'b'), tmpl('G', 'b'))
		set(base+1, op, MR, tmpl('E', 'v'), tmpl('G', 'v'))
		set(base+2, op, RM, tmpl('G', 'b'), tmpl('E', 'b'))
		set(base+3, op, RM, tmpl('G', 'v'), tmpl('E', 'v'))
		set(base+4, op, I, famTmpl(FamAccumulator, SizeU8), tmpl('I', 'b'))
		set(base+5, op, I, famTmpl(FamAccumulator, SizeV), tmpl('I', 'z'))
	}
	// 0x40-0x4F: INC/DEC r in 16/32-bit modes. In 64-bit mode the resolver
	// classifies these bytes as REX before the table is consulted.
	for n := byte(0); n < 8; n++ {
		set(0x40+n, INC, O, tmpl('O', 'v'))
		set(0x48+n, DEC, O, tmpl('O', 'v'))
		set(0x50+n, PUSH, O, tmpl('O', 'q'))
		set(0x58+n, POP, O, tmpl('O', 'q'))
	}
	set(0x68, PUSH, I, tmpl('I', 'z'))
	set(0x6A, PUSH, I, tmpl('I', 's'))
	for cc := ConditionCode(0); cc < 16; cc++ {
		set(0x70+byte(cc), JccOp(cc), D, tmpl('J', 'b'))
	}
	setExt(0x80)
	setExt(0x81)
	setExt(0x82)
	setExt(0x83)
	set(0x88, MOV, MR, tmpl('E', 'b'), tmpl('G', 'b'))
	set(0x89, MOV, MR, tmpl('E', 'v'), tmpl('G', 'v'))
	set(0x8A, MOV, RM, tmpl('G', 'b'), tmpl('E', 'b'))
	set(0x8B, MOV, RM, tmpl('G', 'v'), tmpl('E', 'v'))
	set(0x8D, LEA, RM, tmpl('G', 'v'), tmpl('M', 'v'))
	setExt(0x8F)
	set(0x90, NOP, ZO)
	for n := byte(0); n < 8; n++ {
		set(0xB0+n, MOV, O, tmpl('O', 'b'), tmpl('I', 'b'))
		set(0xB8+n, MOV, O, tmpl('O', 'v'), tmpl('I', 'v'))
	}
	set(0xC2, RET, I, tmpl('I', 'w'))
	set(0xC3, RET, ZO)
	setExt(0xC6)
	setExt(0xC7)
	set(0xE8, CALL, D, tmpl('J', 'z'))
	set(0xE9, JMP, D, tmpl('J', 'z'))
	set(0xEB, JMP, D, tmpl('J', 'b'))
	setExt(0xFE)
	setExt(0xFF)
}

// ResolveOpcode reads one byte from the cursor and resolves it against the
// opcode maps. Legacy prefixes and (in 64-bit mode) REX bytes are returned
// as pass-through Opcodes that the caller accumulates before resolving
// again. The escape code continues resolution with further bytes,
// conditioned on the already-accumulated prefixes. Unmapped bytes resolve to
// UNKNOWN with no operands.
func ResolveOpcode(r *Reader, prefixes []Prefix, mode Mode) (Opcode, error) {
	b, err := r.ReadU8()
	if err != nil {
		return Opcode{}, err
	}
	if p, ok := PrefixFromByte(b); ok {
		return Opcode{Ident: opPrefix, Prefix: p, Byte: b}, nil
	}
	if mode == Mode64 {
		if rex, ok := RexFromByte(b); ok {
			return Opcode{Ident: opRex, Rex: rex, Byte: b}, nil
		}
	}
	if b == escapeCode {
		return resolveEscape(r, prefixes)
	}
	return onebyte[b], nil
}

// resolveEscape resolves the two/three-byte opcode forms. The legal
// secondary map depends on which legacy prefix is active: a plain escape
// selects the no-prefix secondary map, the Rep prefix selects the
// ENDBR32/ENDBR64 three-byte forms, and every other prefix is rejected.
func resolveEscape(r *Reader, prefixes []Prefix) (Opcode, error) {
	b2, err := r.ReadU8()
	if err != nil {
		return Opcode{}, err
	}
	var active Prefix
	for _, p := range prefixes {
		switch p {
		case PrefixRep, PrefixRepNE, PrefixOpSize:
			active = p
		case PrefixLock, PrefixAddrSize:
			return Opcode{}, ErrInvalidPrefix
		default:
			if p.IsSegment() {
				return Opcode{}, ErrInvalidPrefix
			}
		}
	}
	switch active {
	case PrefixRep:
		if b2 != 0x1E {
			return Opcode{}, &InvalidOpcodeError{Bytes: []byte{escapeCode, b2}}
		}
		b3, err := r.ReadU8()
		if err != nil {
			return Opcode{}, err
		}
		switch b3 {
		case 0xFA:
			return Opcode{Ident: ENDBR64, Enc: ZO, Byte: b3}, nil
		case 0xFB:
			return Opcode{Ident: ENDBR32, Enc: ZO, Byte: b3}, nil
		}
		return Opcode{}, &Invalid3ByteOpcodeError{Bytes: []byte{escapeCode, 0x1E, b3}}
	case PrefixRepNE, PrefixOpSize:
		return Opcode{}, ErrInvalidPrefix
	}
	switch {
	case b2 >= 0x80 && b2 <= 0x8F:
		oc := Opcode{Ident: JccOp(ConditionCode(b2 & 0xF)), Enc: D, Byte: b2}
		oc.Args[0] = tmpl('J', 'z')
		return oc, nil
	case b2 == 0x1F:
		oc := Opcode{Ident: NOP, Enc: M, Byte: b2}
		oc.Args[0] = tmpl('E', 'v')
		return oc, nil
	}
	return Opcode{}, &InvalidOpcodeError{Bytes: []byte{escapeCode, b2}}
}

// ConvertWithExt resolves a needs-extension opcode into its final identity
// and operand templates using the 3-bit reg field of the following ModR/M
// byte. Calling it for an opcode the table does not flag is a programming
// error and returns ErrInvalidModRM.
func (o Opcode) ConvertWithExt(ext byte, mode Mode) (Opcode, error) {
	ext &= 7
	oc := Opcode{Byte: o.Byte}
	switch o.Byte {
	case 0x80:
		oc.Ident, oc.Enc = aluOps[ext], MI
		oc.Args[0], oc.Args[1] = tmpl('E', 'b'), tmpl('I', 'b')
	case 0x81:
		oc.Ident, oc.Enc = aluOps[ext], MI
		oc.Args[0], oc.Args[1] = tmpl('E', 'v'), tmpl('I', 'z')
	case 0x82:
		// alias of 0x80 outside 64-bit mode, undefined within it
		if mode == Mode64 {
			oc.Ident, oc.Enc = UNKNOWN, ZO
			break
		}
		oc.Ident, oc.Enc = aluOps[ext], MI
		oc.Args[0], oc.Args[1] = tmpl('E', 'b'), tmpl('I', 'b')
	case 0x83:
		oc.Ident, oc.Enc = aluOps[ext], MI
		oc.Args[0], oc.Args[1] = tmpl('E', 'v'), tmpl('I', 's')
	case 0x8F:
		if ext != 0 {
			oc.Ident, oc.Enc = UNKNOWN, ZO
			break
		}
		oc.Ident, oc.Enc = POP, M
		oc.Args[0] = tmpl('E', 'q')
	case 0xC6:
		if ext != 0 {
			oc.Ident, oc.Enc = UNKNOWN, ZO
			break
		}
		oc.Ident, oc.Enc = MOV, MI
		oc.Args[0], oc.Args[1] = tmpl('E', 'b'), tmpl('I', 'b')
	case 0xC7:
		if ext != 0 {
			oc.Ident, oc.Enc = UNKNOWN, ZO
			break
		}
		oc.Ident, oc.Enc = MOV, MI
		oc.Args[0], oc.Args[1] = tmpl('E', 'v'), tmpl('I', 'z')
	case 0xFE:
		if ext > 1 {
			oc.Ident, oc.Enc = UNKNOWN, ZO
			break
		}
		oc.Ident, oc.Enc = [2]Op{INC, DEC}[ext], M
		oc.Args[0] = tmpl('E', 'b')
	case 0xFF:
		oc.Ident = ff7Ops[ext]
		if oc.Ident == UNKNOWN {
			oc.Enc = ZO
			break
		}
		oc.Enc = M
		switch ext {
		case 2, 4, 6: // near call/jmp and push default to 64-bit operands
			oc.Args[0] = tmpl('E', 'q')
		default:
			oc.Args[0] = tmpl('E', 'v')
		}
	default:
		return Opcode{}, ErrInvalidModRM
	}
	return oc, nil
}

// imm64Allowed reports whether a mode-derived immediate may occupy a full 8
// bytes. Only MOV r64, imm64 (0xB8+r with REX.W) carries a true 64-bit
// immediate in the covered opcode set; every other 64-bit-operand form reads
// a sign-extended 32-bit immediate.
func (o Opcode) imm64Allowed() bool { return o.Byte >= 0xB8 && o.Byte <= 0xBF }
