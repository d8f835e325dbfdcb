package crom

// CROM container constants.
const (
	Magic = "CROM" // File magic preceding the first segment.

	TagStart    = 0xFFD8 // Segment start (JPEG SOI), followed by a 32-bit length.
	TagHuffman  = 0xFFC4 // Huffman table definitions (JPEG DHT layout).
	TagCompress = 0xFFB1 // Compressed token stream header.
	TagLiteral  = 0xFFB2 // Literal data header.

	LiteralChunkLength = 6 // Expected length field of the TagLiteral chunk.
)

// Huffman and token constants.
const (
	NumTables     = 3       // Code spaces: control, offset low byte, offset high byte.
	MaxCodeLength = 16      // Longest codeword in bits; also the lookup window width.
	TableSize     = 1 << 16 // Entries per prefix table.
	TableIDBase   = 0xF0    // Table i carries identifier byte TableIDBase+i.
	NoopControl   = 0xFF    // Control byte that, with offset 0, emits nothing.

	initialOutputSize = 128 // Starting capacity of the output buffer.
)
