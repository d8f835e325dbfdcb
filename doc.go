/*
Package crom decompresses the segments of CROM files.

A CROM file is the magic "CROM" followed by one or more segments that reuse
JPEG tag framing:

	FFD8 <u32 length>                            segment start
	FFC4 <u16 len> <three DHT-style tables>      Huffman definitions
	FFB1 <u16 len> <pad> <u32 bytes> <u32 count> then <bytes> of coded tokens
	FFB2 <u16 len=6> <u32 n>                     then <n> literal bytes

All integers are big-endian. Each token is three Huffman symbols (control,
offset low, offset high) decoded with canonical prefix tables. A token with
offset 0 copies control+1 bytes from the literal data (control 0xFF is a
no-op); any other token copies control+2 bytes from offset bytes back in the
output, byte by byte so that short offsets repeat a pattern.

Mismatched tags and the literal chunk length are reported as Warning values
and never change how bytes are consumed. Fatal problems are returned as
*DecodeError with a Stage and one of the package sentinel errors.

Use DecodeSegment(r, opts) to decode one segment from a stream positioned after the magic.
Use NewReader(r, opts) and Reader.Next to walk every segment of a file.
Use DecodeAll(r, opts) to decode a whole file into memory.
Use ReadSegment, BuildTables, DecodeTokens and Expand to run the steps separately.
Use LenientOptions() for files whose Huffman tables oversubscribe the code space.

# Examples

Decode every segment of a file:

	rd, err := crom.NewReader(f, nil)
	if err != nil {
		return err
	}
	for {
		seg, out, err := rd.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		_ = seg.Warnings
		_ = out
	}

Log warnings as they are found:

	opts := crom.DefaultOptions()
	opts.OnWarning = func(w crom.Warning) { log.Warn("CROM warning", "field", w.Field, "offset", w.Offset) }
	outs, err := crom.DecodeAll(f, opts)

Skip a segment that fails to decode and carry on:

	var de *crom.DecodeError
	if errors.As(err, &de) && de.Resumable() {
		// rd is positioned at the next segment
	}
*/
package crom
