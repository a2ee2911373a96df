package mango

import (
	"fmt"
	"io"
)

// Disassembler is the driving loop over a byte stream: it decodes
// instructions until the buffer is exhausted, an error occurs, or the
// instruction cap is reached. The zero value decodes in 64-bit mode with no
// cap.
type Disassembler struct {
	Mode Mode
	Max  int // maximum instructions to decode, 0 for no cap
}

func (d *Disassembler) mode() Mode {
	if d.Mode == 0 {
		return Mode64
	}
	return d.Mode
}

// DecodeAll decodes instructions from the reader until it is exhausted or
// the cap is reached. On error, the instructions decoded so far are returned
// together with the error, wrapped with the offset at which decoding failed.
func (d *Disassembler) DecodeAll(r *Reader) ([]Inst, error) {
	var insts []Inst
	for r.BytesUnread() > 0 && (d.Max == 0 || len(insts) < d.Max) {
		pos := r.Pos()
		inst, err := Decode(r, d.mode())
		if err != nil {
			return insts, fmt.Errorf("at offset %#x: %w", pos, err)
		}
		insts = append(insts, inst)
	}
	return insts, nil
}

// Fprint decodes instructions from the reader and writes one line per
// instruction: the raw hex bytes, the mnemonic, and the operand list in
// fixed-width columns.
func (d *Disassembler) Fprint(w io.Writer, r *Reader) error {
	count := 0
	for r.BytesUnread() > 0 && (d.Max == 0 || count < d.Max) {
		pos := r.Pos()
		inst, err := Decode(r, d.mode())
		if err != nil {
			return fmt.Errorf("at offset %#x: %w", pos, err)
		}
		count++
		var hex string
		for _, b := range r.Bytes(pos, r.Pos()) {
			hex += fmt.Sprintf("%02x ", b)
		}
		if _, err := fmt.Fprintf(w, "%-30s %-10s %s\n", hex, inst.Mnemonic(), inst.OperandString()); err != nil {
			return err
		}
	}
	return nil
}
