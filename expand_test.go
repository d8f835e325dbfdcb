package crom

import (
	"bytes"
	"errors"
	"testing"
)

func TestExpandOverlappingBackReference(t *testing.T) {
	// One 'X', then offset 1 control 5 repeats it seven more times.
	out, err := Expand([]Token{{Control: 0}, {Control: 5, Offset: 1}}, []byte("X"))
	if err != nil {
		t.Fatal(err)
	}
	if want := bytes.Repeat([]byte("X"), 8); !bytes.Equal(out, want) {
		t.Fatalf("got %q want %q", out, want)
	}
}

func TestExpandOverlappingPattern(t *testing.T) {
	// literal(2) then copy(7,-2): nine bytes in all.
	out, err := Expand([]Token{{Control: 1}, {Control: 5, Offset: 2}}, []byte("ab"))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "ababababa" {
		t.Fatalf("got %q", out)
	}
}

func TestExpandNoop(t *testing.T) {
	out, err := Expand([]Token{{Control: NoopControl}, {Control: 0}, {Control: NoopControl}}, []byte("q"))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "q" {
		t.Fatalf("got %q", out)
	}
}

func TestExpandLiteralLengths(t *testing.T) {
	literals := bytes.Repeat([]byte{0x5A}, 256)
	out, err := Expand([]Token{{Control: 0x00}, {Control: 0xFE}}, literals)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 256 {
		t.Fatalf("got %d bytes", len(out))
	}
}

func TestExpandLiteralsExhausted(t *testing.T) {
	_, err := Expand([]Token{{Control: 0}, {Control: 2}}, []byte("ab"))
	if !errors.Is(err, ErrLiteralsExhausted) {
		t.Fatalf("want ErrLiteralsExhausted, got %v", err)
	}
	var de *DecodeError
	if !errors.As(err, &de) || de.Stage != StageExpand || de.Offset != 1 {
		t.Fatalf("want expand error at token 1, got %v", err)
	}
}

func TestExpandInvalidReference(t *testing.T) {
	_, err := Expand([]Token{{Control: 1}, {Control: 0, Offset: 3}}, []byte("ab"))
	if !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("want ErrInvalidReference, got %v", err)
	}

	// Offset equal to the bytes written is the first byte: allowed.
	out, err := Expand([]Token{{Control: 1}, {Control: 0, Offset: 2}}, []byte("ab"))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "abab" {
		t.Fatalf("got %q", out)
	}
}

func TestExpandLongCopiesGrowBuffer(t *testing.T) {
	// Control 0xFE and 0xFF back-references copy 256 and 257 bytes.
	tokens := []Token{{Control: 0}}
	for i := 0; i < 20; i++ {
		tokens = append(tokens, Token{Control: 0xFE, Offset: 1}, Token{Control: 0xFF, Offset: 1})
	}
	out, err := Expand(tokens, []byte("z"))
	if err != nil {
		t.Fatal(err)
	}
	if want := 1 + 20*(256+257); len(out) != want {
		t.Fatalf("got %d bytes want %d", len(out), want)
	}
	if !bytes.Equal(out, bytes.Repeat([]byte("z"), len(out))) {
		t.Fatal("unexpected content")
	}
}

func TestOutputBufferDoubles(t *testing.T) {
	var o outputBuffer
	o.ensure(1)
	if cap(o.buf) != initialOutputSize {
		t.Fatalf("initial cap %d", cap(o.buf))
	}
	o.buf = append(o.buf, make([]byte, 100)...)
	o.ensure(257)
	if cap(o.buf) != 4*initialOutputSize {
		t.Fatalf("cap %d after growing past 357", cap(o.buf))
	}
	if len(o.buf) != 100 {
		t.Fatalf("len %d", len(o.buf))
	}
}
