package mango

// ConditionCode is the 4-bit tttn condition field encoded in the low nibble
// of the Jcc opcodes (0x70+cc and 0x0F 0x80+cc).
type ConditionCode byte

const (
	CCOverflow    ConditionCode = 0
	CCNoOverflow  ConditionCode = 1
	CCUnsignedLT  ConditionCode = 2
	CCUnsignedGTE ConditionCode = 3
	CCEq          ConditionCode = 4
	CCNeq         ConditionCode = 5
	CCUnsignedLTE ConditionCode = 6
	CCUnsignedGT  ConditionCode = 7
	CCSign        ConditionCode = 8
	CCNoSign      ConditionCode = 9
	CCParity      ConditionCode = 0xA
	CCNoParity    ConditionCode = 0xB
	CCSignedLT    ConditionCode = 0xC
	CCSignedGTE   ConditionCode = 0xD
	CCSignedLTE   ConditionCode = 0xE
	CCSignedGT    ConditionCode = 0xF
)

var jccTable = [16]Op{
	JO,   // CCOverflow
	JNO,  // CCNoOverflow
	JB,   // CCUnsignedLT
	JNB,  // CCUnsignedGTE
	JZ,   // CCEq
	JNZ,  // CCNeq
	JBE,  // CCUnsignedLTE
	JNBE, // CCUnsignedGT
	JS,   // CCSign
	JNS,  // CCNoSign
	JP,   // CCParity
	JNP,  // CCNoParity
	JL,   // CCSignedLT
	JNL,  // CCSignedGTE
	JLE,  // CCSignedLTE
	JNLE, // CCSignedGT
}

// JccOp returns the conditional-jump mnemonic for a condition code.
func JccOp(cc ConditionCode) Op { return jccTable[cc&0xF] }

// Invcc inverts a condition code. The tttn encoding stores the negated
// condition in the low bit.
func Invcc(cc ConditionCode) ConditionCode { return (cc ^ 1) & 0xF }
