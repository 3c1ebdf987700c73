package swdl

// Pcmd is the raw sample data chunk. Samples reference ranges of it by
// offset and length.
type Pcmd struct {
	Data []byte
}

func pcmdFromChunk(c chunk) *Pcmd {
	return &Pcmd{
		Data: append([]byte(nil), c.data...),
	}
}

// contains returns whether the referenced range lies inside the chunk data.
func (p *Pcmd) contains(ref PcmdReference) bool {
	size := uint64(len(p.Data))
	return ref.Offset <= size && ref.Length <= size-ref.Offset
}

// bytes returns the chunk data and the alignment padding that follows it.
func (p *Pcmd) bytes() ([]byte, []byte) {
	return p.Data, alignmentPadding(len(p.Data))
}
