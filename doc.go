// package mango provides an x86 instruction decoder in Go
//
// usage example:
//
//	package example
//
//	import (
//		"fmt"
//		"os"
//
//		"github.com/mihaimaganu17/mango"
//	)
//
//	func DisassembleFile(path string) error {
//		code, err := os.ReadFile(path)
//		if err != nil {
//			return err
//		}
//
//		r := mango.NewReader(code)
//		for r.BytesUnread() > 0 {
//			inst, err := mango.Decode(r, mango.Mode64)
//			if err != nil {
//				return err
//			}
//			fmt.Println(inst.String())
//		}
//		return nil
//	}
//
// Decode parses a single instruction from the reader: legacy prefixes, an
// optional REX byte, the opcode (including two/three-byte escape forms and
// ModR/M reg-field extensions), then ModR/M, SIB, displacement and immediate
// bytes as the encoding requires. The returned Inst carries the resolved
// operands together with the raw components they were decoded from.
//
// The Disassembler type drives Decode over a whole buffer and renders the
// results; the decoder itself performs no I/O beyond reader access and holds
// no state across instructions.
package mango
