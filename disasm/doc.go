// package disasm provides disassembly for Go functions at runtime.
//
// example usage:
//
//	package example
//
//	import (
//		"fmt"
//
//		"github.com/mihaimaganu17/mango"
//		"github.com/mihaimaganu17/mango/disasm"
//	)
//
//	func DumpPrologue(f func()) error {
//		count := 0
//		takeWhile := func(inst mango.Inst) bool {
//			fmt.Println(inst.String())
//			count++
//			return count < 8 && inst.Op() != mango.RET
//		}
//		return disasm.Func(f, takeWhile)
//	}
//
// Decoding stops when while returns false, when a RET followed by alignment
// padding is found, or when the decoder reports an error (including an
// escape form outside the covered opcode subset).
package disasm
