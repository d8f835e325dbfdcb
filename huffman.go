package crom

import "fmt"

// PrefixTable resolves a 16-bit window of the bitstream to the codeword at
// its top. Each entry holds the codeword length in the high byte and the
// symbol in the low byte; zero means no codeword starts with that window.
type PrefixTable [TableSize]uint16

// Tables holds the prefix tables of the three code spaces, in decode order.
type Tables [NumTables]PrefixTable

// Lookup returns the codeword length and symbol for window.
// ok is false when no codeword is assigned.
func (t *PrefixTable) Lookup(window uint16) (length int, symbol byte, ok bool) {
	entry := t[window]
	if entry == 0 {
		return 0, 0, false
	}

	return int(entry >> 8), byte(entry), true
}

// Build fills t from the JPEG DHT style definition of code space index found
// at the beginning of src: one identifier byte, sixteen per-length counts and
// the symbols in code order. It returns the number of bytes consumed.
//
// Codes are assigned canonically: consecutive values within a length, shifted
// left by one between lengths. A definition whose codes do not fit the code
// space fails with ErrOversubscribed unless opts.AllowOversubscribed is set,
// in which case the slots past the end of the table are dropped.
// Options nil means DefaultOptions.
func (t *PrefixTable) Build(index int, src []byte, opts *Options) (int, []Warning, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	var warnings []Warning
	end, err := t.build(index, src, 0, opts, &warnings)

	return end, warnings, err
}

// build reads the definition starting at src[base] and returns the position
// just past it.
func (t *PrefixTable) build(index int, src []byte, base int, opts *Options, warnings *[]Warning) (int, error) {
	if index < 0 || index >= NumTables {
		return base, stageError(StageTables, int64(base), fmt.Errorf("%w: %d", ErrBadTableIndex, index))
	}

	*t = PrefixTable{}

	if len(src)-base < 1+MaxCodeLength {
		return base, stageError(StageTables, int64(base), fmt.Errorf("%w: table %d header", ErrTruncated, index))
	}

	id := src[base]
	if want := TableIDBase + index; int(id) != want {
		opts.warn(warnings, Warning{Offset: int64(base), Field: "table id", Want: uint32(want), Have: uint32(id)}) // #nosec G115
	}
	counts := src[base+1 : base+1+MaxCodeLength]
	pos := base + 1 + MaxCodeLength

	code := 0
	for length := 1; length <= MaxCodeLength; length++ {
		span := TableSize >> length
		for i := 0; i < int(counts[length-1]); i++ {
			if pos >= len(src) {
				return pos, stageError(StageTables, int64(pos), fmt.Errorf("%w: table %d symbols", ErrTruncated, index))
			}
			symbol := src[pos]
			pos++

			start := code << (MaxCodeLength - length)
			end := start + span
			if end > TableSize {
				if !opts.AllowOversubscribed {
					return pos, stageError(StageTables, int64(pos-1),
						fmt.Errorf("%w: table %d length %d code %#x", ErrOversubscribed, index, length, code))
				}
				end = TableSize
			}

			entry := uint16(length<<8) | uint16(symbol) // #nosec G115 -- length <= 16
			for slot := start; slot < end; slot++ {
				t[slot] = entry
			}

			code++
		}
		code <<= 1
	}

	return pos, nil
}

// BuildTables builds the three prefix tables stored back to back in src.
// Trailing bytes after the third definition are ignored.
// Options nil means DefaultOptions.
func BuildTables(src []byte, opts *Options) (*Tables, []Warning, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	tables := new(Tables)
	var warnings []Warning

	pos := 0
	for i := range tables {
		var err error
		if pos, err = tables[i].build(i, src, pos, opts, &warnings); err != nil {
			return nil, warnings, err
		}
	}

	return tables, warnings, nil
}
