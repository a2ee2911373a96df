package mango

// Reg is a register with a specific width, family and number. The number
// distinguishes the register within its family and matches the hardware
// encoding used by ModR/M, SIB and opcode reg fields.
//
//	[16..21) bits hold the width in bytes
//	[8..16) bits hold the family
//	[0..4) bits hold the number
type Reg uint32

func (r Reg) isArg() {}
func (r Reg) isReg() {}

// Family returns REG_LEGACY, REG_RIP, REG_HIGHBYTE or REG_SEGMENT for any
// valid register.
func (r Reg) Family() uint8 { return uint8(r >> 8) }

// Num returns the hardware encoding number of the register within its
// family. The IP/EIP/RIP registers have no meaningful number and return 0.
func (r Reg) Num() uint8 { return uint8(r) & 0xf }

// Width returns the width of the register in bytes.
func (r Reg) Width() uint8 { return r.width() }
func (r Reg) width() uint8 { return uint8(r>>16) & 0x1f }

// IsExtended reports whether the register is numbered 8 or higher.
func (r Reg) IsExtended() bool { return r.Num() > 7 }

// WithWidth reinterprets a general-purpose register at a new width, e.g.
// AL.WithWidth(4) is EAX. Width 0 selects the 32-bit member, the historical
// x86 default operand size. High-byte registers map onto the matching
// accumulator/counter/data/base family member when widened (AH -> EAX).
// Segment registers and the instruction pointer are returned unchanged:
// they have no width-specific variants in the covered encodings.
func (r Reg) WithWidth(w uint8) Reg {
	if w == 0 {
		w = 4
	}
	switch r.Family() {
	case REG_LEGACY:
		return Reg(uint32(w)<<16 | REG_LEGACY<<8 | uint32(r.Num()))
	case REG_HIGHBYTE:
		if w == 1 {
			return r
		}
		// AH/CH/DH/BH are the high halves of AX/CX/DX/BX.
		return Reg(uint32(w)<<16 | REG_LEGACY<<8 | uint32(r.Num()&3))
	}
	return r
}

// gpReg derives the general-purpose register for a hardware encoding number
// at a given width. Without a REX prefix, the 8-bit numbers 4-7 select the
// high-byte registers AH/CH/DH/BH; with any REX prefix present they select
// SPB/BPB/SIB/DIB instead.
func gpReg(w, num uint8, hasRex bool) Reg {
	if w == 1 && !hasRex && num >= 4 && num <= 7 {
		return Reg(1<<16 | REG_HIGHBYTE<<8 | uint32(num))
	}
	return Reg(uint32(w)<<16 | REG_LEGACY<<8 | uint32(num))
}

// RegFamily is one of the canonical register families: the seven legacy
// families plus the eight extended R8-R15 families. A family groups the
// width-specific variants of one architectural register, e.g. the
// accumulator family is {AL, AH, AX, EAX, RAX}.
type RegFamily uint8

const (
	FamAccumulator RegFamily = iota // AL, AH, AX, EAX, RAX
	FamCounter                      // CL, CH, CX, ECX, RCX
	FamData                         // DL, DH, DX, EDX, RDX
	FamBase                         // BL, BH, BX, EBX, RBX
	FamStackPtr                     // SPB, SP, ESP, RSP
	FamBasePtr                      // BPB, BP, EBP, RBP
	FamSource                       // SIB, SI, ESI, RSI
	FamDest                         // DIB, DI, EDI, RDI
	FamR8                           // R8B, R8W, R8L, R8
	FamR9
	FamR10
	FamR11
	FamR12
	FamR13
	FamR14
	FamR15
)

// AtWidth returns the family member with the given width in bytes. Width 0
// selects the 32-bit member. The extended families have no high-byte
// variant; for the legacy families the low-byte member is returned for
// width 1 (AL, not AH).
func (f RegFamily) AtWidth(w uint8) Reg {
	if w == 0 {
		w = 4
	}
	return Reg(uint32(w)<<16 | REG_LEGACY<<8 | uint32(f))
}

// Register families
const (
	REG_LEGACY   = iota
	REG_RIP      // IP, EIP, RIP
	REG_HIGHBYTE // AH, CH, DH, BH
	REG_SEGMENT
)

// Registers
const (
	// 8-bit
	AH   Reg = Reg(1<<16 | REG_HIGHBYTE<<8 | 4)
	CH   Reg = Reg(1<<16 | REG_HIGHBYTE<<8 | 5)
	DH   Reg = Reg(1<<16 | REG_HIGHBYTE<<8 | 6)
	BH   Reg = Reg(1<<16 | REG_HIGHBYTE<<8 | 7)
	AL   Reg = Reg(1<<16 | REG_LEGACY<<8 | 0)
	CL   Reg = Reg(1<<16 | REG_LEGACY<<8 | 1)
	DL   Reg = Reg(1<<16 | REG_LEGACY<<8 | 2)
	BL   Reg = Reg(1<<16 | REG_LEGACY<<8 | 3)
	SPB  Reg = Reg(1<<16 | REG_LEGACY<<8 | 4)
	BPB  Reg = Reg(1<<16 | REG_LEGACY<<8 | 5)
	SIB  Reg = Reg(1<<16 | REG_LEGACY<<8 | 6)
	DIB  Reg = Reg(1<<16 | REG_LEGACY<<8 | 7)
	R8B  Reg = Reg(1<<16 | REG_LEGACY<<8 | 8)
	R9B  Reg = Reg(1<<16 | REG_LEGACY<<8 | 9)
	R10B Reg = Reg(1<<16 | REG_LEGACY<<8 | 10)
	R11B Reg = Reg(1<<16 | REG_LEGACY<<8 | 11)
	R12B Reg = Reg(1<<16 | REG_LEGACY<<8 | 12)
	R13B Reg = Reg(1<<16 | REG_LEGACY<<8 | 13)
	R14B Reg = Reg(1<<16 | REG_LEGACY<<8 | 14)
	R15B Reg = Reg(1<<16 | REG_LEGACY<<8 | 15)

	// 16-bit
	AX   Reg = Reg(2<<16 | REG_LEGACY<<8 | 0)
	CX   Reg = Reg(2<<16 | REG_LEGACY<<8 | 1)
	DX   Reg = Reg(2<<16 | REG_LEGACY<<8 | 2)
	BX   Reg = Reg(2<<16 | REG_LEGACY<<8 | 3)
	SP   Reg = Reg(2<<16 | REG_LEGACY<<8 | 4)
	BP   Reg = Reg(2<<16 | REG_LEGACY<<8 | 5)
	SI   Reg = Reg(2<<16 | REG_LEGACY<<8 | 6)
	DI   Reg = Reg(2<<16 | REG_LEGACY<<8 | 7)
	R8W  Reg = Reg(2<<16 | REG_LEGACY<<8 | 8)
	R9W  Reg = Reg(2<<16 | REG_LEGACY<<8 | 9)
	R10W Reg = Reg(2<<16 | REG_LEGACY<<8 | 10)
	R11W Reg = Reg(2<<16 | REG_LEGACY<<8 | 11)
	R12W Reg = Reg(2<<16 | REG_LEGACY<<8 | 12)
	R13W Reg = Reg(2<<16 | REG_LEGACY<<8 | 13)
	R14W Reg = Reg(2<<16 | REG_LEGACY<<8 | 14)
	R15W Reg = Reg(2<<16 | REG_LEGACY<<8 | 15)

	// 32-bit
	EAX  Reg = Reg(4<<16 | REG_LEGACY<<8 | 0)
	ECX  Reg = Reg(4<<16 | REG_LEGACY<<8 | 1)
	EDX  Reg = Reg(4<<16 | REG_LEGACY<<8 | 2)
	EBX  Reg = Reg(4<<16 | REG_LEGACY<<8 | 3)
	ESP  Reg = Reg(4<<16 | REG_LEGACY<<8 | 4)
	EBP  Reg = Reg(4<<16 | REG_LEGACY<<8 | 5)
	ESI  Reg = Reg(4<<16 | REG_LEGACY<<8 | 6)
	EDI  Reg = Reg(4<<16 | REG_LEGACY<<8 | 7)
	R8L  Reg = Reg(4<<16 | REG_LEGACY<<8 | 8)
	R9L  Reg = Reg(4<<16 | REG_LEGACY<<8 | 9)
	R10L Reg = Reg(4<<16 | REG_LEGACY<<8 | 10)
	R11L Reg = Reg(4<<16 | REG_LEGACY<<8 | 11)
	R12L Reg = Reg(4<<16 | REG_LEGACY<<8 | 12)
	R13L Reg = Reg(4<<16 | REG_LEGACY<<8 | 13)
	R14L Reg = Reg(4<<16 | REG_LEGACY<<8 | 14)
	R15L Reg = Reg(4<<16 | REG_LEGACY<<8 | 15)

	// 64-bit
	RAX Reg = Reg(8<<16 | REG_LEGACY<<8 | 0)
	RCX Reg = Reg(8<<16 | REG_LEGACY<<8 | 1)
	RDX Reg = Reg(8<<16 | REG_LEGACY<<8 | 2)
	RBX Reg = Reg(8<<16 | REG_LEGACY<<8 | 3)
	RSP Reg = Reg(8<<16 | REG_LEGACY<<8 | 4)
	RBP Reg = Reg(8<<16 | REG_LEGACY<<8 | 5)
	RSI Reg = Reg(8<<16 | REG_LEGACY<<8 | 6)
	RDI Reg = Reg(8<<16 | REG_LEGACY<<8 | 7)
	R8  Reg = Reg(8<<16 | REG_LEGACY<<8 | 8)
	R9  Reg = Reg(8<<16 | REG_LEGACY<<8 | 9)
	R10 Reg = Reg(8<<16 | REG_LEGACY<<8 | 10)
	R11 Reg = Reg(8<<16 | REG_LEGACY<<8 | 11)
	R12 Reg = Reg(8<<16 | REG_LEGACY<<8 | 12)
	R13 Reg = Reg(8<<16 | REG_LEGACY<<8 | 13)
	R14 Reg = Reg(8<<16 | REG_LEGACY<<8 | 14)
	R15 Reg = Reg(8<<16 | REG_LEGACY<<8 | 15)

	// Instruction pointer.
	IP  Reg = Reg(2<<16 | REG_RIP<<8 | 0) // 16-bit
	EIP Reg = Reg(4<<16 | REG_RIP<<8 | 0) // 32-bit
	RIP Reg = Reg(8<<16 | REG_RIP<<8 | 0) // 64-bit

	// Segment registers.
	ES Reg = Reg(2<<16 | REG_SEGMENT<<8 | 0)
	CS Reg = Reg(2<<16 | REG_SEGMENT<<8 | 1)
	SS Reg = Reg(2<<16 | REG_SEGMENT<<8 | 2)
	DS Reg = Reg(2<<16 | REG_SEGMENT<<8 | 3)
	FS Reg = Reg(2<<16 | REG_SEGMENT<<8 | 4)
	GS Reg = Reg(2<<16 | REG_SEGMENT<<8 | 5)
)

var legacyNames = [5][16]string{
	1: {"al", "cl", "dl", "bl", "spl", "bpl", "sil", "dil",
		"r8b", "r9b", "r10b", "r11b", "r12b", "r13b", "r14b", "r15b"},
	2: {"ax", "cx", "dx", "bx", "sp", "bp", "si", "di",
		"r8w", "r9w", "r10w", "r11w", "r12w", "r13w", "r14w", "r15w"},
	4: {"eax", "ecx", "edx", "ebx", "esp", "ebp", "esi", "edi",
		"r8d", "r9d", "r10d", "r11d", "r12d", "r13d", "r14d", "r15d"},
}

var qwordNames = [16]string{"rax", "rcx", "rdx", "rbx", "rsp", "rbp", "rsi", "rdi",
	"r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15"}

var highByteNames = [4]string{"ah", "ch", "dh", "bh"}

var segmentNames = [6]string{"es", "cs", "ss", "ds", "fs", "gs"}

// String returns the canonical lowercase assembly name of the register.
func (r Reg) String() string {
	w, num := r.width(), r.Num()
	switch r.Family() {
	case REG_LEGACY:
		if w == 8 {
			return qwordNames[num]
		}
		if int(w) < len(legacyNames) && legacyNames[w][num] != "" {
			return legacyNames[w][num]
		}
	case REG_HIGHBYTE:
		if num >= 4 && num <= 7 {
			return highByteNames[num-4]
		}
	case REG_RIP:
		switch w {
		case 2:
			return "ip"
		case 4:
			return "eip"
		default:
			return "rip"
		}
	case REG_SEGMENT:
		if int(num) < len(segmentNames) {
			return segmentNames[num]
		}
	}
	return "reg(invalid)"
}
