package crom

import "fmt"

// minTokenBits is the smallest encoded token: three one-bit codewords.
const minTokenBits = NumTables

// Token is one decoded copy item. With Offset 0 it is a literal run of
// Control+1 bytes (none at all for NoopControl); otherwise it copies
// Control+2 bytes starting Offset bytes back in the output.
type Token struct {
	Control byte
	Offset  uint16
}

// Literal reports whether the token takes its bytes from the literal stream.
func (t Token) Literal() bool { return t.Offset == 0 }

// Len returns how many output bytes the token produces.
func (t Token) Len() int {
	switch {
	case t.Offset != 0:
		return int(t.Control) + 2
	case t.Control == NoopControl:
		return 0
	default:
		return int(t.Control) + 1
	}
}

func (t Token) String() string {
	switch {
	case t.Offset != 0:
		return fmt.Sprintf("copy(%d,-%d)", t.Len(), t.Offset)
	case t.Control == NoopControl:
		return "noop"
	default:
		return fmt.Sprintf("literal(%d)", t.Len())
	}
}

// DecodeTokens decodes exactly n tokens from compressed. Each token is three
// symbols: the control byte from table 0, then the low and high offset bytes
// from tables 1 and 2.
func DecodeTokens(compressed []byte, tables *Tables, n uint32) ([]Token, error) {
	if uint64(n)*minTokenBits > uint64(len(compressed))*8 {
		return nil, stageError(StageTokens, int64(len(compressed)),
			fmt.Errorf("%w: %d tokens cannot fit in %d bytes", ErrOutOfData, n, len(compressed)))
	}

	br := newBitReader(compressed)
	tokens := make([]Token, n)

	var sym [NumTables]byte
	for i := range tokens {
		for t := range tables {
			s, err := br.decode(&tables[t])
			if err != nil {
				return nil, stageError(StageTokens, br.offset(), fmt.Errorf("%w: token %d table %d", err, i, t))
			}
			sym[t] = s
		}
		tokens[i] = Token{
			Control: sym[0],
			Offset:  uint16(sym[1]) | uint16(sym[2])<<8,
		}
	}

	return tokens, nil
}
