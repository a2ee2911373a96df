package mangolookup

import (
	"github.com/mihaimaganu17/mango"
)

const maxMnemonicLength = 16

var opMap = make(map[string]mango.Op)

func init() {
	for i := 1; i < 256; i++ {
		op := mango.Op(i)
		switch name := op.Name(); name {
		case "(invalid)", "(unknown)":
		default:
			opMap[name] = op
		}
	}
}

// Lookup the mnemonic identity for a name. The name will be converted to uppercase if necessary.
func Op(mnemonic string) (mango.Op, bool) {
	if len(mnemonic) > 0 && len(mnemonic) < maxMnemonicLength {
		op, ok := opMap[upperCase(mnemonic)]
		return op, ok
	}
	return mango.UNKNOWN, false
}

func upperCase(s string) string {
	var b [maxMnemonicLength]byte
	var ch byte
	_ = b[len(s)] // lift bounds-checks out of the loop below (golang.org/issue/14808)
	i, changed := 0, false
loop: // functions containing for-loops cannot currently be inlined (golang.org/issue/14768)
	ch = s[i]
	b[i] = ch &^ ((ch & 0x40) >> 1)
	changed = changed || b[i] != ch
	i++
	if i < len(s) {
		goto loop
	}
	if !changed {
		return s
	}
	return string(b[:len(s)])
}
