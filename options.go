package crom

// Options configures ReadSegment, Decode and the Reader.
type Options struct {
	// AllowOversubscribed keeps going when Huffman code lengths assign more
	// codewords than the 16-bit code space holds. Slots past the end of the
	// table are dropped, as are the codewords that own them. When false such
	// tables fail with ErrOversubscribed.
	AllowOversubscribed bool
	// OnWarning, if set, is called for every warning as it is found.
	// Warnings are also collected in Segment.Warnings.
	OnWarning func(Warning)
}

// DefaultOptions returns options for default behavior: oversubscribed tables are rejected.
func DefaultOptions() *Options {
	return &Options{}
}

// LenientOptions returns options that accept oversubscribed Huffman tables.
func LenientOptions() *Options {
	return &Options{AllowOversubscribed: true}
}

func (o *Options) warn(list *[]Warning, w Warning) {
	*list = append(*list, w)
	if o.OnWarning != nil {
		o.OnWarning(w)
	}
}
