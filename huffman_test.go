package crom

import (
	"errors"
	"testing"
)

func TestBuildTableSlotRanges(t *testing.T) {
	tt := fixtureTables()[0]
	var table PrefixTable
	n, warnings, err := table.Build(0, tt.def(0), nil)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1+MaxCodeLength+3 {
		t.Fatalf("consumed %d", n)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings %v", warnings)
	}

	cases := []struct {
		lo, hi int
		length int
		symbol byte
	}{
		{0x0000, 0x8000, 1, 0x01},
		{0x8000, 0xC000, 2, 0x02},
		{0xC000, 0x10000, 2, 0xFF},
	}
	for _, c := range cases {
		for slot := c.lo; slot < c.hi; slot++ {
			length, symbol, ok := table.Lookup(uint16(slot))
			if !ok || length != c.length || symbol != c.symbol {
				t.Fatalf("slot %#x: got (%d, %#x, %v) want (%d, %#x)", slot, length, symbol, ok, c.length, c.symbol)
			}
		}
	}
}

func TestBuildTableSentinel(t *testing.T) {
	// Single 3-bit code 000: only the first eighth of the table is assigned.
	tt := testTable{counts: [MaxCodeLength]byte{0, 0, 1}, symbols: []byte{0x42}}
	var table PrefixTable
	if _, _, err := table.Build(1, tt.def(1), nil); err != nil {
		t.Fatal(err)
	}
	for slot := 0; slot < TableSize; slot++ {
		_, symbol, ok := table.Lookup(uint16(slot))
		if want := slot < TableSize>>3; ok != want {
			t.Fatalf("slot %#x assigned=%v", slot, ok)
		}
		if ok && symbol != 0x42 {
			t.Fatalf("slot %#x symbol %#x", slot, symbol)
		}
	}
}

func TestBuildTableSixteenBitCodes(t *testing.T) {
	// 0x00 is "0", then 0x01..0x03 fill 16-bit codes 0x8000..0x8002.
	var tt testTable
	tt.counts[0] = 1
	tt.counts[15] = 3
	tt.symbols = []byte{0x00, 0x01, 0x02, 0x03}

	var table PrefixTable
	if _, _, err := table.Build(2, tt.def(2), nil); err != nil {
		t.Fatal(err)
	}
	for i, sym := range []byte{0x01, 0x02, 0x03} {
		length, symbol, ok := table.Lookup(uint16(0x8000 + i))
		if !ok || length != 16 || symbol != sym {
			t.Fatalf("slot %#x: (%d, %#x, %v)", 0x8000+i, length, symbol, ok)
		}
	}
	if _, _, ok := table.Lookup(0x8003); ok {
		t.Fatal("slot 0x8003 should be unassigned")
	}
}

func TestBuildTableDeterministic(t *testing.T) {
	def := byteTable().def(0)
	a, b := new(PrefixTable), new(PrefixTable)
	if _, _, err := a.Build(0, def, nil); err != nil {
		t.Fatal(err)
	}
	// Build into a dirty table: Build must reset it.
	for i := range b {
		b[i] = 0xFFFF
	}
	if _, _, err := b.Build(0, def, nil); err != nil {
		t.Fatal(err)
	}
	if *a != *b {
		t.Fatal("tables differ between runs")
	}
}

func TestBuildTableIDWarning(t *testing.T) {
	def := fixtureTables()[1].def(1)
	def[0] = 0xF7

	var table PrefixTable
	_, warnings, err := table.Build(1, def, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 1 || warnings[0].Want != 0xF1 || warnings[0].Have != 0xF7 {
		t.Fatalf("warnings %v", warnings)
	}
	if _, symbol, ok := table.Lookup(0xFFFF); !ok || symbol != 0x02 {
		t.Fatal("table should still be built from the data present")
	}
}

func TestBuildTableTruncated(t *testing.T) {
	def := fixtureTables()[0].def(0)
	var table PrefixTable
	for n := 0; n < len(def); n++ {
		_, _, err := table.Build(0, def[:n], nil)
		if !errors.Is(err, ErrTruncated) {
			t.Fatalf("length %d: want ErrTruncated, got %v", n, err)
		}
		var de *DecodeError
		if !errors.As(err, &de) || de.Stage != StageTables {
			t.Fatalf("length %d: want tables stage, got %v", n, err)
		}
	}
}

func TestBuildTableOversubscribed(t *testing.T) {
	// Three 1-bit codes: the third would start at slot 0x10000.
	tt := testTable{counts: [MaxCodeLength]byte{3}, symbols: []byte{0xA, 0xB, 0xC}}

	var table PrefixTable
	_, _, err := table.Build(0, tt.def(0), nil)
	if !errors.Is(err, ErrOversubscribed) {
		t.Fatalf("want ErrOversubscribed, got %v", err)
	}

	n, _, err := table.Build(0, tt.def(0), LenientOptions())
	if err != nil {
		t.Fatalf("lenient: %v", err)
	}
	if n != len(tt.def(0)) {
		t.Fatalf("lenient consumed %d", n)
	}
	if _, symbol, _ := table.Lookup(0x0000); symbol != 0xA {
		t.Fatalf("slot 0: %#x", symbol)
	}
	if _, symbol, _ := table.Lookup(0xFFFF); symbol != 0xB {
		t.Fatalf("slot 0xFFFF: %#x", symbol)
	}
}

func TestBuildTableBadIndex(t *testing.T) {
	var table PrefixTable
	_, _, err := table.Build(3, byteTable().def(0), nil)
	if !errors.Is(err, ErrBadTableIndex) {
		t.Fatalf("want ErrBadTableIndex, got %v", err)
	}
	var de *DecodeError
	if !errors.As(err, &de) || de.Stage != StageTables || de.Offset != 0 {
		t.Fatalf("want tables error at 0, got %v", err)
	}
}

func TestBuildTablesOffsets(t *testing.T) {
	tables := fixtureTables()
	var huff []byte
	for i, tt := range tables {
		huff = append(huff, tt.def(i)...)
	}
	huff[20] = 0xEE // id byte of table 1

	built, warnings, err := BuildTables(huff, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 1 || warnings[0].Offset != 20 {
		t.Fatalf("warnings %v", warnings)
	}
	if _, symbol, _ := built[2].Lookup(0); symbol != 0x00 {
		t.Fatal("table 2 not built")
	}

	// Cut inside the third table's symbols.
	_, _, err = BuildTables(huff[:len(huff)-1], nil)
	var de *DecodeError
	if !errors.As(err, &de) || !errors.Is(err, ErrTruncated) || de.Offset != int64(len(huff)-1) {
		t.Fatalf("want truncation at %d, got %v", len(huff)-1, err)
	}

	// Cut inside the second table's header: reported where it starts.
	_, _, err = BuildTables(huff[:25], nil)
	if !errors.As(err, &de) || !errors.Is(err, ErrTruncated) || de.Offset != 20 {
		t.Fatalf("want header truncation at 20, got %v", err)
	}
}
