package mango

import (
	"encoding/binary"
	"errors"
)

// ErrNotEnoughBytes is returned by all Reader reads that would pass the end
// of the underlying buffer. The reader position is left unchanged.
var ErrNotEnoughBytes = errors.New("mango: not enough bytes")

// A Reader is a bounds-checked sequential cursor over an immutable byte
// buffer. All multi-byte reads are little-endian. Reads advance the cursor;
// peeks do not. A Reader is a single mutable position and must not be shared
// between goroutines.
type Reader struct {
	b   []byte
	pos int
}

// NewReader creates a Reader over b, positioned at offset 0. The buffer is
// not copied and must not be mutated while the Reader is in use.
func NewReader(b []byte) *Reader {
	return &Reader{b: b}
}

// Pos returns the current offset into the buffer.
func (r *Reader) Pos() int { return r.pos }

// BytesUnread returns the number of bytes between the current position and
// the end of the buffer.
func (r *Reader) BytesUnread() int { return len(r.b) - r.pos }

// Bytes returns the buffer slice [from, to). Used by the driving loop to
// recover the raw bytes of a decoded instruction.
func (r *Reader) Bytes(from, to int) []byte { return r.b[from:to] }

func (r *Reader) need(n int) error {
	if len(r.b)-r.pos < n {
		return ErrNotEnoughBytes
	}
	return nil
}

// ReadU8 reads one byte and advances the cursor.
func (r *Reader) ReadU8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.b[r.pos]
	r.pos++
	return v, nil
}

// ReadI8 reads one byte as a signed value and advances the cursor.
func (r *Reader) ReadI8() (int8, error) {
	v, err := r.ReadU8()
	return int8(v), err
}

// ReadU16 reads a little-endian uint16 and advances the cursor.
func (r *Reader) ReadU16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.b[r.pos:])
	r.pos += 2
	return v, nil
}

// ReadI16 reads a little-endian int16 and advances the cursor.
func (r *Reader) ReadI16() (int16, error) {
	v, err := r.ReadU16()
	return int16(v), err
}

// ReadU32 reads a little-endian uint32 and advances the cursor.
func (r *Reader) ReadU32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.b[r.pos:])
	r.pos += 4
	return v, nil
}

// ReadI32 reads a little-endian int32 and advances the cursor.
func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

// ReadU64 reads a little-endian uint64 and advances the cursor.
func (r *Reader) ReadU64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.b[r.pos:])
	r.pos += 8
	return v, nil
}

// ReadI64 reads a little-endian int64 and advances the cursor.
func (r *Reader) ReadI64() (int64, error) {
	v, err := r.ReadU64()
	return int64(v), err
}

// PeekU8 returns the next byte without advancing the cursor.
func (r *Reader) PeekU8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	return r.b[r.pos], nil
}

// PeekU16 returns the next little-endian uint16 without advancing the cursor.
func (r *Reader) PeekU16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(r.b[r.pos:]), nil
}

// PeekU32 returns the next little-endian uint32 without advancing the cursor.
func (r *Reader) PeekU32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(r.b[r.pos:]), nil
}
