package crom

import (
	"bufio"
	"errors"
	"io"
)

// Decode runs the decode pipeline on a segment already read by ReadSegment:
// build tables, decode tokens, expand. Table warnings are appended to
// seg.Warnings. Options nil means DefaultOptions.
func Decode(seg *Segment, opts *Options) ([]byte, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	tables, warnings, err := BuildTables(seg.HuffmanData, opts)
	seg.Warnings = append(seg.Warnings, warnings...)
	if err != nil {
		return nil, err
	}

	tokens, err := DecodeTokens(seg.Compressed, tables, seg.TokenCount)
	if err != nil {
		return nil, err
	}

	return Expand(tokens, seg.Literals)
}

// DecodeSegment reads one segment from r and returns its decompressed bytes.
// r must be positioned at a segment start tag (after the file magic).
func DecodeSegment(r io.Reader, opts *Options) ([]byte, error) {
	seg, err := ReadSegment(r, opts)
	if err != nil {
		return nil, err
	}

	return Decode(seg, opts)
}

// Reader decodes the segments of a CROM stream one at a time.
type Reader struct {
	r     *bufio.Reader
	cr    *countingReader
	opts  *Options
	index int
}

// NewReader checks the file magic and returns a Reader positioned at the first segment.
// Options nil means DefaultOptions.
func NewReader(r io.Reader, opts *Options) (*Reader, error) {
	if r == nil {
		return nil, ErrNilReader
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	if err := ReadMagic(br); err != nil {
		return nil, err
	}

	return &Reader{
		r:    br,
		cr:   &countingReader{base: br, count: int64(len(Magic))},
		opts: opts,
	}, nil
}

// Index returns the number of segments Next has started, successfully or not.
func (r *Reader) Index() int { return r.index }

// Offset returns the current position in the input stream.
func (r *Reader) Offset() int64 { return r.cr.count }

// Next decodes the next segment. It returns io.EOF when the input ends
// cleanly at a segment boundary. The parsed segment is returned alongside a
// decode error whenever the container itself was read in full; in that case
// the Reader is positioned at the following segment and Next may be called again.
func (r *Reader) Next() (*Segment, []byte, error) {
	if _, err := r.r.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, io.EOF
		}

		return nil, nil, err
	}
	r.index++

	seg, err := readSegment(r.cr, r.cr.count, r.opts)
	if err != nil {
		return nil, nil, err
	}

	out, err := Decode(seg, r.opts)
	if err != nil {
		return seg, nil, err
	}

	return seg, out, nil
}

// DecodeAll decodes every segment of a CROM stream, stopping at the first error.
func DecodeAll(r io.Reader, opts *Options) ([][]byte, error) {
	cr, err := NewReader(r, opts)
	if err != nil {
		return nil, err
	}

	var outs [][]byte
	for {
		_, out, err := cr.Next()
		if errors.Is(err, io.EOF) {
			return outs, nil
		}
		if err != nil {
			return outs, err
		}
		outs = append(outs, out)
	}
}
