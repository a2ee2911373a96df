// Command mango disassembles raw x86 machine code from a file or stdin.
//
//	mango -bits 64 code.bin
//	objcopy -O binary -j .text a.out text.bin && mango text.bin
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/mihaimaganu17/mango"
	mangolookup "github.com/mihaimaganu17/mango/lookup"
)

var (
	bits    = flag.Int("bits", 64, "processor mode: 16, 32 or 64")
	offset  = flag.Int64("offset", 0, "byte offset into the input to start decoding at")
	length  = flag.Int64("length", 0, "number of input bytes to decode, 0 for all")
	maxinst = flag.Int("max", 0, "maximum number of instructions to decode, 0 for no cap")
	only    = flag.String("only", "", "print only instructions with this mnemonic")
	dump    = flag.Bool("dump", false, "dump decoded instruction structs instead of assembly")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "mango:", err)
		os.Exit(1)
	}
}

func run() error {
	var mode mango.Mode
	switch *bits {
	case 16:
		mode = mango.Mode16
	case 32:
		mode = mango.Mode32
	case 64:
		mode = mango.Mode64
	default:
		return fmt.Errorf("invalid -bits %d (want 16, 32 or 64)", *bits)
	}

	data, err := input()
	if err != nil {
		return err
	}
	if *offset < 0 || *offset > int64(len(data)) {
		return fmt.Errorf("-offset %d out of range for %d input bytes", *offset, len(data))
	}
	data = data[*offset:]
	if *length > 0 && *length < int64(len(data)) {
		data = data[:*length]
	}

	var filter mango.Op
	filtered := *only != ""
	if filtered {
		op, ok := mangolookup.Op(*only)
		if !ok {
			return fmt.Errorf("unknown mnemonic %q", *only)
		}
		filter = op
	}

	d := &mango.Disassembler{Mode: mode, Max: *maxinst}
	r := mango.NewReader(data)
	if !filtered && !*dump {
		return d.Fprint(os.Stdout, r)
	}

	insts, err := d.DecodeAll(r)
	pos := 0
	for _, inst := range insts {
		end := pos + int(inst.Len)
		if !filtered || inst.Op() == filter {
			if *dump {
				spew.Dump(inst)
			} else {
				var hex string
				for _, b := range data[pos:end] {
					hex += fmt.Sprintf("%02x ", b)
				}
				fmt.Printf("%-30s %-10s %s\n", hex, inst.Mnemonic(), inst.OperandString())
			}
		}
		pos = end
	}
	return err
}

func input() ([]byte, error) {
	if flag.NArg() == 0 {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(flag.Arg(0))
}
