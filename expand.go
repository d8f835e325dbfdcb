package crom

import "fmt"

// outputBuffer is the growing result of Expand.
type outputBuffer struct {
	buf []byte
}

// ensure makes room for n more bytes, doubling capacity until they fit.
func (o *outputBuffer) ensure(n int) {
	need := len(o.buf) + n
	if need <= cap(o.buf) {
		return
	}

	size := cap(o.buf)
	if size == 0 {
		size = initialOutputSize
	}
	for size < need {
		size *= 2
	}

	grown := make([]byte, len(o.buf), size)
	copy(grown, o.buf)
	o.buf = grown
}

// Expand executes tokens against the literal stream and returns the output.
// Back-references may overlap the bytes they produce (offset 1 repeats the
// last byte), so they are copied one byte at a time.
func Expand(tokens []Token, literals []byte) ([]byte, error) {
	out := &outputBuffer{}
	out.ensure(initialOutputSize)
	lit := 0

	for i, tok := range tokens {
		out.ensure(int(tok.Control) + 2)

		if tok.Offset == 0 {
			if tok.Control == NoopControl {
				continue
			}

			count := int(tok.Control) + 1
			if len(literals)-lit < count {
				return nil, stageError(StageExpand, int64(i),
					fmt.Errorf("%w: need %d bytes at %d, have %d", ErrLiteralsExhausted, count, lit, len(literals)-lit))
			}
			out.buf = append(out.buf, literals[lit:lit+count]...)
			lit += count

			continue
		}

		offset := int(tok.Offset)
		if offset > len(out.buf) {
			return nil, stageError(StageExpand, int64(i),
				fmt.Errorf("%w: offset %d with %d bytes written", ErrInvalidReference, offset, len(out.buf)))
		}

		// copy() would read bytes this loop has not written yet when offset < count.
		for count := int(tok.Control) + 2; count > 0; count-- {
			out.buf = append(out.buf, out.buf[len(out.buf)-offset])
		}
	}

	return out.buf, nil
}
