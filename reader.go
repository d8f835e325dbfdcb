package crom

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

// readChunkStep bounds how much is allocated ahead of data actually arriving.
const readChunkStep = 1 << 20

// countingReader reads from a reader and counts the number of bytes read.
type countingReader struct {
	base  io.Reader // The reader to read from.
	count int64     // The number of bytes read.
}

// Read reads from the base reader and increments the count.
func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.base.Read(p)
	r.count += int64(n)

	return n, err
}

// full reads exactly len(buf) bytes. A short read becomes ErrTruncated at the
// position where the read started.
func (r *countingReader) full(buf []byte) error {
	start := r.count
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return stageError(StageContainer, start, ErrTruncated)
		}

		return stageError(StageContainer, start, err)
	}

	return nil
}

func (r *countingReader) uint16() (uint16, error) {
	var buf [2]byte
	if err := r.full(buf[:]); err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint16(buf[:]), nil
}

func (r *countingReader) uint32() (uint32, error) {
	var buf [4]byte
	if err := r.full(buf[:]); err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint32(buf[:]), nil
}

// bytes reads n bytes. Memory grows with the data that is actually present,
// so a lying length field fails with ErrTruncated instead of a huge allocation.
func (r *countingReader) bytes(n uint32) ([]byte, error) {
	if n <= readChunkStep {
		buf := make([]byte, n)
		if err := r.full(buf); err != nil {
			return nil, err
		}

		return buf, nil
	}

	start := r.count
	var buf bytes.Buffer
	buf.Grow(readChunkStep)
	copied, err := io.CopyN(&buf, r, int64(n))
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, stageError(StageContainer, start+copied, ErrTruncated)
		}

		return nil, stageError(StageContainer, start+copied, err)
	}

	return buf.Bytes(), nil
}
