// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/crom

package crom

import (
	"errors"
	"fmt"
)

// Package errors. Use errors.New for static messages, fmt.Errorf when values are needed.
var (
	ErrBadMagic          = errors.New("missing CROM magic at start of input")
	ErrTruncated         = errors.New("input ended early")
	ErrInvalidPrefixCode = errors.New("invalid prefix code in compressed data")
	ErrOutOfData         = errors.New("compressed data exhausted before all tokens were decoded")
	ErrLiteralsExhausted = errors.New("literal data exhausted")
	ErrInvalidReference  = errors.New("back-reference before start of output")
	ErrOversubscribed    = errors.New("huffman code lengths oversubscribe the code space")
	ErrBadTableIndex     = errors.New("huffman table index out of range")
	ErrNilReader         = errors.New("reader is nil")
)

// Stage identifies the pipeline step that produced a DecodeError.
type Stage int

// Decode stages, in pipeline order.
const (
	StageContainer Stage = iota // Reading the tagged container.
	StageTables                 // Building prefix tables.
	StageTokens                 // Decoding the token stream.
	StageExpand                 // Expanding tokens into output bytes.
)

func (s Stage) String() string {
	switch s {
	case StageContainer:
		return "container"
	case StageTables:
		return "tables"
	case StageTokens:
		return "tokens"
	case StageExpand:
		return "expand"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// DecodeError is a fatal error for one segment.
// Offset is a byte position whose meaning depends on Stage: the input stream
// position for StageContainer, the position inside the Huffman data for
// StageTables, the compressed byte position for StageTokens and the token
// index for StageExpand.
type DecodeError struct {
	Stage  Stage
	Offset int64
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("crom: %s at %d: %v", e.Stage, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Resumable reports whether the input stream is still positioned at a segment
// boundary after this error. Only container errors leave it mid-segment.
func (e *DecodeError) Resumable() bool { return e.Stage != StageContainer }

func stageError(stage Stage, offset int64, err error) error {
	return &DecodeError{Stage: stage, Offset: offset, Err: err}
}

// Warning is a non-fatal mismatch between a field and its expected value.
// Warnings never change how input bytes are consumed.
type Warning struct {
	Offset int64  // Stream (or Huffman data) position of the field.
	Field  string // Which field mismatched, e.g. "tag" or "table id".
	Want   uint32
	Have   uint32
}

func (w Warning) String() string {
	return fmt.Sprintf("%s at %d: want 0x%x, have 0x%x", w.Field, w.Offset, w.Want, w.Have)
}
