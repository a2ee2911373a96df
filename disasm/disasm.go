package disasm

import (
	"bytes"
	"fmt"
	"reflect"
	"unsafe"

	"github.com/mihaimaganu17/mango"
)

// Disassemble instructions from funcValue until while returns false. A maximum of 4096 bytes
// may be decoded. This function is entirely unsafe.
//
// funcValue must be a non-nil Go function-value.
//
// Some instructions emitted by the Go compiler are outside the decoder's covered opcode
// subset and resolve to the UNKNOWN mnemonic; decoding past one of those may desynchronize.
func Func(funcValue interface{}, while func(mango.Inst) bool) error {
	// See "Go 1.1 Function Calls":
	// https://docs.google.com/document/d/1bMwCey-gmqZVTpRax-ESeVuZGmjwbocYs1iHplK-cjo/pub
	type interfaceHeader struct {
		typ  uintptr
		addr **[]byte
	}
	v := reflect.ValueOf(funcValue)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return fmt.Errorf("Argument for Func must be a non-nil function-value")
	}
	header := *(*interfaceHeader)(unsafe.Pointer(&funcValue))
	code := (*[4096]byte)(unsafe.Pointer(*header.addr))
	r := mango.NewReader(code[:])
	for r.BytesUnread() > 0 {
		inst, err := mango.Decode(r, mango.Mode64)
		if err != nil {
			return err
		}
		if !while(inst) {
			return nil
		}
		if inst.Op() == mango.RET { // find RET + padding (end of function)
			n := r.Pos()
			if n&15 != 0 {
				pad := 16 - (n & 15) // functions are typically aligned to a 16-byte boundary

				if bytes.Equal(code[n:n+pad], pad00[:pad]) || bytes.Equal(code[n:n+pad], padcc[:pad]) {
					return nil
				}
			} else {
				return nil
			}
		}
	}
	return nil
}

// Manually allocated memory is typically zeroed
var pad00 = [...]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}

// The Go compiler seems to pad functions with 0xCC bytes to a 16-byte alignment boundary
var padcc = [...]byte{0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc}
