// Package rcx parses the text header of EpsonNet Form (.rcx) files.
//
// The header is CRLF separated lines terminated by a form feed (0x0C):
//
//	RCX
//	SEIKO EPSON EpsonNet Form
//	[Section]
//	Key="value"
//
// The payload, typically a CROM stream, starts right after the form feed.
package rcx

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/ini.v1"
)

// Header signature lines.
const (
	Signature = "RCX"
	Product   = "SEIKO EPSON EpsonNet Form"

	terminator = '\f'
	newline    = "\r\n"
)

// Package errors.
var (
	ErrNotRCX       = errors.New("rcx: missing RCX signature")
	ErrUnterminated = errors.New("rcx: header has no form feed terminator")
	ErrBadProduct   = errors.New("rcx: unexpected product line")
	ErrBadLine      = errors.New("rcx: malformed header line")
)

// Header is a parsed RCX header.
type Header struct {
	// Length is the header size in bytes, including the form feed.
	Length int

	file *ini.File
}

// Detect reports whether data starts with an RCX signature line.
func Detect(data []byte) bool {
	return bytes.HasPrefix(data, []byte(Signature+newline))
}

// Parse parses the header at the start of data. data[h.Length:] is the payload.
func Parse(data []byte) (*Header, error) {
	if !Detect(data) {
		return nil, ErrNotRCX
	}
	end := bytes.IndexByte(data, terminator)
	if end < 0 {
		return nil, ErrUnterminated
	}

	body := data[len(Signature)+len(newline) : end]
	product, rest, _ := bytes.Cut(body, []byte(newline))
	if string(product) != Product {
		return nil, ErrBadProduct
	}

	file, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, rest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadLine, err)
	}

	return &Header{Length: end + 1, file: file}, nil
}

// Get returns the value of key in section. Keys before the first section
// header live in section "".
func (h *Header) Get(section, key string) (string, bool) {
	sec, err := h.file.GetSection(section)
	if err != nil || !sec.HasKey(key) {
		return "", false
	}

	return sec.Key(key).String(), true
}

// Sections lists the sections that hold keys, in file order. The unnamed
// leading section is reported as "".
func (h *Header) Sections() []string {
	var names []string
	for _, sec := range h.file.Sections() {
		if len(sec.Keys()) == 0 {
			continue
		}
		name := sec.Name()
		if name == ini.DefaultSection {
			name = ""
		}
		names = append(names, name)
	}

	return names
}
