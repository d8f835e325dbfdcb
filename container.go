package crom

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Segment is one decodable unit of a CROM file, as laid out on disk.
type Segment struct {
	Offset         int64  // Stream position of the segment start tag.
	Length         int64  // Input bytes the segment occupied.
	DeclaredLength uint32 // 32-bit length following the start tag; not validated.
	HuffmanData    []byte // Table definitions for all three code spaces.
	CompressedLen  uint32 // Declared compressed byte count.
	TokenCount     uint32 // Declared number of tokens.
	Compressed     []byte // Huffman-coded token stream.
	Literals       []byte // Bytes consumed by literal runs.
	Warnings       []Warning
}

// ReadMagic consumes and checks the 4-byte file magic.
func ReadMagic(r io.Reader) error {
	if r == nil {
		return ErrNilReader
	}

	cr := &countingReader{base: r}
	var magic [len(Magic)]byte
	if err := cr.full(magic[:]); err != nil {
		return err
	}
	if string(magic[:]) != Magic {
		return stageError(StageContainer, 0, fmt.Errorf("%w: got %q", ErrBadMagic, magic[:]))
	}

	return nil
}

// ReadSegment reads one segment from r, which must be positioned at a segment
// start tag. Chunks are interpreted by position; unexpected tag values only
// produce warnings. Offsets in errors and warnings are relative to the
// position of r at the call.
// Options nil means DefaultOptions.
func ReadSegment(r io.Reader, opts *Options) (*Segment, error) {
	return readSegment(r, 0, opts)
}

func readSegment(r io.Reader, base int64, opts *Options) (*Segment, error) {
	if r == nil {
		return nil, ErrNilReader
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	cr := &countingReader{base: r, count: base}
	seg := &Segment{Offset: base}

	// expectTag reads a tag and records a warning if it is not want.
	expectTag := func(want uint16) error {
		pos := cr.count
		tag, err := cr.uint16()
		if err != nil {
			return err
		}
		if tag != want {
			opts.warn(&seg.Warnings, Warning{Offset: pos, Field: "tag", Want: uint32(want), Have: uint32(tag)})
		}

		return nil
	}

	// chunkBody reads a 16-bit length (which counts itself) and the body after it.
	chunkBody := func() ([]byte, uint16, error) {
		pos := cr.count
		length, err := cr.uint16()
		if err != nil {
			return nil, 0, err
		}
		if length < 2 {
			return nil, length, stageError(StageContainer, pos, fmt.Errorf("%w: chunk length %d", ErrTruncated, length))
		}
		body, err := cr.bytes(uint32(length) - 2)

		return body, length, err
	}

	var err error
	if err = expectTag(TagStart); err != nil {
		return nil, err
	}
	if seg.DeclaredLength, err = cr.uint32(); err != nil {
		return nil, err
	}

	if err = expectTag(TagHuffman); err != nil {
		return nil, err
	}
	if seg.HuffmanData, _, err = chunkBody(); err != nil {
		return nil, err
	}

	if err = expectTag(TagCompress); err != nil {
		return nil, err
	}
	info, _, err := chunkBody()
	if err != nil {
		return nil, err
	}
	// One skipped byte, then compressed length and token count.
	if len(info) < 9 {
		return nil, stageError(StageContainer, cr.count, fmt.Errorf("%w: compressed data header is %d bytes", ErrTruncated, len(info)))
	}
	seg.CompressedLen = binary.BigEndian.Uint32(info[1:5])
	seg.TokenCount = binary.BigEndian.Uint32(info[5:9])
	if seg.Compressed, err = cr.bytes(seg.CompressedLen); err != nil {
		return nil, err
	}

	if err = expectTag(TagLiteral); err != nil {
		return nil, err
	}
	lengthPos := cr.count
	literalInfo, length, err := chunkBody()
	if err != nil {
		return nil, err
	}
	if length != LiteralChunkLength {
		opts.warn(&seg.Warnings, Warning{Offset: lengthPos, Field: "literal chunk length", Want: LiteralChunkLength, Have: uint32(length)})
	}
	if len(literalInfo) < 4 {
		return nil, stageError(StageContainer, cr.count, fmt.Errorf("%w: literal header is %d bytes", ErrTruncated, len(literalInfo)))
	}
	literalLen := binary.BigEndian.Uint32(literalInfo[:4])
	if seg.Literals, err = cr.bytes(literalLen); err != nil {
		return nil, err
	}
	seg.Length = cr.count - base

	return seg, nil
}

// Bytes serializes the segment back into its container layout. Warnings that
// were recorded while reading are not reproduced: tags are always written
// with their expected values.
func (s *Segment) Bytes() []byte {
	var buf bytes.Buffer

	put16 := func(v uint16) { _ = binary.Write(&buf, binary.BigEndian, v) }
	put32 := func(v uint32) { _ = binary.Write(&buf, binary.BigEndian, v) }

	put16(TagStart)
	put32(s.DeclaredLength)

	put16(TagHuffman)
	put16(uint16(len(s.HuffmanData) + 2)) // #nosec G115 -- table data is bounded by the 16-bit length it was read with
	buf.Write(s.HuffmanData)

	put16(TagCompress)
	put16(11)
	buf.WriteByte(0)
	put32(uint32(len(s.Compressed))) // #nosec G115
	put32(s.TokenCount)
	buf.Write(s.Compressed)

	put16(TagLiteral)
	put16(LiteralChunkLength)
	put32(uint32(len(s.Literals))) // #nosec G115
	buf.Write(s.Literals)

	return buf.Bytes()
}
