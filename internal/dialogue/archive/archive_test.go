package archive

import (
	"bytes"
	"math"
	"testing"
)

func TestWriterReaderPreservesOrder(t *testing.T) {
	w := NewWriter()
	w.String("Guard")
	w.Int32(-7)
	w.Float32(-3.5)
	w.Bool(true)
	w.Enum(8)

	r := NewReader(w.Bytes())
	name, err := r.String()
	if err != nil {
		t.Fatalf("read string: %v", err)
	}
	if name != "Guard" {
		t.Fatalf("string = %q, want %q", name, "Guard")
	}
	i, err := r.Int32()
	if err != nil {
		t.Fatalf("read int32: %v", err)
	}
	if i != -7 {
		t.Fatalf("int32 = %d, want %d", i, -7)
	}
	f, err := r.Float32()
	if err != nil {
		t.Fatalf("read float32: %v", err)
	}
	if f != -3.5 {
		t.Fatalf("float32 = %v, want %v", f, -3.5)
	}
	b, err := r.Bool()
	if err != nil {
		t.Fatalf("read bool: %v", err)
	}
	if !b {
		t.Fatal("bool = false, want true")
	}
	e, err := r.Enum()
	if err != nil {
		t.Fatalf("read enum: %v", err)
	}
	if e != 8 {
		t.Fatalf("enum = %d, want %d", e, 8)
	}
	if r.Remaining() != 0 {
		t.Fatalf("remaining = %d, want 0", r.Remaining())
	}
}

func TestFixedWidthLayout(t *testing.T) {
	w := NewWriter()
	w.Int32(1)
	w.Float32(1)

	want := []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x80, 0x3f}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("bytes = %x, want %x", w.Bytes(), want)
	}
}

func TestFloat32KeepsExactBits(t *testing.T) {
	values := []float32{0, float32(math.Copysign(0, -1)), 0.1, math.MaxFloat32, math.SmallestNonzeroFloat32}
	for _, v := range values {
		w := NewWriter()
		w.Float32(v)
		got, err := NewReader(w.Bytes()).Float32()
		if err != nil {
			t.Fatalf("read float32: %v", err)
		}
		if math.Float32bits(got) != math.Float32bits(v) {
			t.Fatalf("float32 bits = %x, want %x", math.Float32bits(got), math.Float32bits(v))
		}
	}
}

func TestReaderRejectsTruncatedInput(t *testing.T) {
	w := NewWriter()
	w.String("OnQuestStarted")
	truncated := w.Bytes()[:4]

	if _, err := NewReader(truncated).String(); err == nil {
		t.Fatal("expected truncated string error")
	}
	if _, err := NewReader([]byte{0x01, 0x02}).Int32(); err == nil {
		t.Fatal("expected truncated int32 error")
	}
	if _, err := NewReader(nil).Enum(); err == nil {
		t.Fatal("expected empty enum error")
	}
}

func TestReaderRejectsNonBinaryBool(t *testing.T) {
	w := NewWriter()
	w.Enum(2)
	if _, err := NewReader(w.Bytes()).Bool(); err == nil {
		t.Fatal("expected invalid bool error")
	}
}
