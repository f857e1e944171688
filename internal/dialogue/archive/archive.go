// Package archive implements the fixed-order byte stream used to persist
// dialogue records.
//
// Records are written field after field with no tags or field numbers; the
// reader must consume fields in exactly the order the writer produced them.
// Primitive encodings come from protowire:
//   - strings: varint length followed by the raw bytes,
//   - int32 and float32: little-endian fixed32 (float32 by IEEE-754 bits),
//   - bools and enums: varint.
package archive

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Writer appends record fields to an in-memory buffer.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the encoded record.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// String appends a length-prefixed string.
func (w *Writer) String(v string) {
	w.buf = protowire.AppendString(w.buf, v)
}

// Int32 appends v as fixed32.
func (w *Writer) Int32(v int32) {
	w.buf = protowire.AppendFixed32(w.buf, uint32(v))
}

// Float32 appends the IEEE-754 bits of v as fixed32.
func (w *Writer) Float32(v float32) {
	w.buf = protowire.AppendFixed32(w.buf, math.Float32bits(v))
}

// Bool appends v as a varint 0 or 1.
func (w *Writer) Bool(v bool) {
	w.buf = protowire.AppendVarint(w.buf, protowire.EncodeBool(v))
}

// Enum appends an enumeration value as a varint.
func (w *Writer) Enum(v uint64) {
	w.buf = protowire.AppendVarint(w.buf, v)
}

// Reader consumes record fields from a byte slice.
type Reader struct {
	buf []byte
	off int
}

// NewReader returns a Reader over b.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Remaining reports how many bytes have not been consumed.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

// String reads a length-prefixed string.
func (r *Reader) String() (string, error) {
	v, n := protowire.ConsumeString(r.buf[r.off:])
	if n < 0 {
		return "", r.fail("string", n)
	}
	r.off += n
	return v, nil
}

// Int32 reads a fixed32 signed integer.
func (r *Reader) Int32() (int32, error) {
	v, n := protowire.ConsumeFixed32(r.buf[r.off:])
	if n < 0 {
		return 0, r.fail("int32", n)
	}
	r.off += n
	return int32(v), nil
}

// Float32 reads a fixed32 IEEE-754 float.
func (r *Reader) Float32() (float32, error) {
	v, n := protowire.ConsumeFixed32(r.buf[r.off:])
	if n < 0 {
		return 0, r.fail("float32", n)
	}
	r.off += n
	return math.Float32frombits(v), nil
}

// Bool reads a varint bool. Values other than 0 and 1 are rejected.
func (r *Reader) Bool() (bool, error) {
	v, n := protowire.ConsumeVarint(r.buf[r.off:])
	if n < 0 {
		return false, r.fail("bool", n)
	}
	if v > 1 {
		return false, fmt.Errorf("bool at offset %d: invalid value %d", r.off, v)
	}
	r.off += n
	return protowire.DecodeBool(v), nil
}

// Enum reads a varint enumeration value.
func (r *Reader) Enum() (uint64, error) {
	v, n := protowire.ConsumeVarint(r.buf[r.off:])
	if n < 0 {
		return 0, r.fail("enum", n)
	}
	r.off += n
	return v, nil
}

func (r *Reader) fail(field string, n int) error {
	return fmt.Errorf("%s at offset %d: %w", field, r.off, protowire.ParseError(n))
}
