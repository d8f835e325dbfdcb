package crom

// bitReader is the bit cursor over a compressed token stream.
// Bits are consumed most significant first.
type bitReader struct {
	src []byte // Compressed bytes.
	pos int    // Next byte of src to shift in.
	acc uint32 // Bit accumulator; only the low n bits are meaningful.
	n   uint   // Valid bits in acc.
	pad uint   // How many of the low n bits are zero padding past the end of src.
}

func newBitReader(src []byte) *bitReader {
	return &bitReader{src: src}
}

// refill tops the accumulator up to at least MaxCodeLength bits. Past the end
// of src it shifts in zero bytes and counts them as padding, so a final
// codeword shorter than the window still decodes.
func (br *bitReader) refill() {
	for br.n < MaxCodeLength {
		br.acc <<= 8
		if br.pos < len(br.src) {
			br.acc |= uint32(br.src[br.pos])
			br.pos++
		} else {
			br.pad += 8
		}
		br.n += 8
	}
}

// decode reads one symbol using table.
func (br *bitReader) decode(table *PrefixTable) (byte, error) {
	br.refill()

	window := uint16(br.acc >> (br.n - MaxCodeLength)) // #nosec G115 -- top 16 of the buffered bits
	length, symbol, ok := table.Lookup(window)
	if !ok {
		// Canonical tables fill slots contiguously from zero, and padding
		// bits are zero, so an empty slot here means no codeword extends
		// the real bits that remain.
		if br.pad >= br.n {
			return 0, ErrOutOfData
		}

		return 0, ErrInvalidPrefixCode
	}
	if uint(length) > br.n-br.pad {
		return 0, ErrOutOfData
	}
	br.n -= uint(length)

	return symbol, nil
}

// offset returns the byte position of the next unread bit.
func (br *bitReader) offset() int64 {
	return int64(br.pos) - int64((br.n-br.pad+7)/8) // #nosec G115
}
