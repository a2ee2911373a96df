package mango

// Prefix byte values. Group 1 holds the lock and repeat prefixes, group 2 the
// segment overrides, groups 3 and 4 the operand-size and address-size
// overrides.
const (
	lockPrefix     = 0xF0
	repnePrefix    = 0xF2
	repPrefix      = 0xF3
	csSegPrefix    = 0x2E
	ssSegPrefix    = 0x36
	dsSegPrefix    = 0x3E
	esSegPrefix    = 0x26
	fsSegPrefix    = 0x64
	gsSegPrefix    = 0x65
	opSizePrefix   = 0x66
	addrSizePrefix = 0x67
)

// Prefix is a recognized legacy instruction prefix. The zero value is not a
// valid prefix.
type Prefix uint8

const (
	PrefixLock Prefix = iota + 1
	PrefixRepNE
	PrefixRep
	PrefixCS
	PrefixSS
	PrefixDS
	PrefixES
	PrefixFS
	PrefixGS
	PrefixOpSize
	PrefixAddrSize
)

var prefixNames = [...]string{
	PrefixLock:     "lock",
	PrefixRepNE:    "repne",
	PrefixRep:      "rep",
	PrefixCS:       "cs",
	PrefixSS:       "ss",
	PrefixDS:       "ds",
	PrefixES:       "es",
	PrefixFS:       "fs",
	PrefixGS:       "gs",
	PrefixOpSize:   "osize",
	PrefixAddrSize: "asize",
}

func (p Prefix) String() string {
	if int(p) < len(prefixNames) && prefixNames[p] != "" {
		return prefixNames[p]
	}
	return "prefix(invalid)"
}

// PrefixFromByte classifies a byte as a legacy prefix. The second return
// value is false when the byte is not a prefix and must be reinterpreted as a
// REX byte or an opcode byte. Pure function; never touches the cursor.
func PrefixFromByte(b byte) (Prefix, bool) {
	switch b {
	case lockPrefix:
		return PrefixLock, true
	case repnePrefix:
		return PrefixRepNE, true
	case repPrefix:
		return PrefixRep, true
	case csSegPrefix:
		return PrefixCS, true
	case ssSegPrefix:
		return PrefixSS, true
	case dsSegPrefix:
		return PrefixDS, true
	case esSegPrefix:
		return PrefixES, true
	case fsSegPrefix:
		return PrefixFS, true
	case gsSegPrefix:
		return PrefixGS, true
	case opSizePrefix:
		return PrefixOpSize, true
	case addrSizePrefix:
		return PrefixAddrSize, true
	}
	return 0, false
}

// IsSegment reports whether the prefix is a segment override.
func (p Prefix) IsSegment() bool { return p >= PrefixCS && p <= PrefixGS }

// SegmentReg returns the segment register selected by a segment-override
// prefix, or 0 for any other prefix.
func (p Prefix) SegmentReg() Reg {
	switch p {
	case PrefixCS:
		return CS
	case PrefixSS:
		return SS
	case PrefixDS:
		return DS
	case PrefixES:
		return ES
	case PrefixFS:
		return FS
	case PrefixGS:
		return GS
	}
	return 0
}
