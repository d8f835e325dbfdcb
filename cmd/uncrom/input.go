package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/woozymasta/crom"
	"github.com/woozymasta/crom/rcx"
)

// rcxProbe is long enough for rcx.Detect.
const rcxProbe = len(rcx.Signature) + 2

// openCROM opens path, skips an RCX header if one is present and returns a
// segment reader positioned at the first segment. The caller closes the file.
func (u *uncrom) openCROM(path string, opts *crom.Options) (*crom.Reader, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	br := bufio.NewReader(f)
	if head, _ := br.Peek(rcxProbe); rcx.Detect(head) {
		raw, err := br.ReadBytes('\f')
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("%s: %w", path, rcx.ErrUnterminated)
		}
		header, err := rcx.Parse(raw)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		form, _ := header.Get("Form", "Name")
		u.log.Info("Skipped RCX header", "file", path, "bytes", header.Length, "sections", len(header.Sections()), "form", form)
	}

	rd, err := crom.NewReader(br, opts)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	return rd, f, nil
}

// warningLogger returns a crom.Options.OnWarning callback that logs against
// the segment rd is currently reading.
func (u *uncrom) warningLogger(path string, rd **crom.Reader) func(crom.Warning) {
	return func(w crom.Warning) {
		segment := -1
		if *rd != nil {
			segment = (*rd).Index() - 1
		}
		u.log.Warn("Unexpected field value", "file", path, "segment", segment, "field", w.Field,
			"offset", w.Offset, "want", fmt.Sprintf("%#x", w.Want), "have", fmt.Sprintf("%#x", w.Have))
	}
}
