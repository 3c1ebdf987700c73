package swdl

import (
	"github.com/skytemple/dsecodec/internal/codec"
)

const keygroupSize = 8

// alignmentFiller pads the KGRP and PCMD chunks to a 16 byte boundary.
var alignmentFiller = []byte{0x67, 0xC0, 0x40, 0x00, 0x88, 0x00, 0xFF, 0x04}

// Keygroup limits the voices that can be used by splits of the group.
type Keygroup struct {
	ID               uint16
	Poly             int8
	Priority         uint8
	VoiceChannelLow  uint8
	VoiceChannelHigh uint8
	Unknown1         uint8
	Unknown2         uint8
}

// Kgrp is the keygroup chunk. The id of every keygroup is its index.
type Kgrp struct {
	Keygroups []Keygroup

	// declaredLen is the parsed chunk data length, 0 for a new chunk.
	declaredLen int
}

// kgrpFromChunk parses the keygroups, trailing bytes that do not form a full
// keygroup are ignored.
func kgrpFromChunk(c chunk) (*Kgrp, error) {
	count := len(c.data) / keygroupSize
	k := &Kgrp{
		Keygroups:   make([]Keygroup, 0, count),
		declaredLen: len(c.data),
	}
	for i := 0; i < count; i++ {
		r := codec.NewReader("keygroup", c.data[i*keygroupSize:(i+1)*keygroupSize])
		kg := Keygroup{
			ID:               r.U16(0x00),
			Poly:             r.S8(0x02),
			Priority:         r.U8(0x03),
			VoiceChannelLow:  r.U8(0x04),
			VoiceChannelHigh: r.U8(0x05),
			Unknown1:         r.U8(0x06),
			Unknown2:         r.U8(0x07),
		}
		if err := r.Err(); err != nil {
			return nil, err
		}
		if err := checkID("keygroup", int(kg.ID), i); err != nil {
			return nil, err
		}
		k.Keygroups = append(k.Keygroups, kg)
	}
	return k, nil
}

// bytes returns the chunk data without the chunk header and the alignment
// padding that follows the data. A parsed chunk keeps its declared length
// and its 16 byte aligned size.
func (k *Kgrp) bytes() ([]byte, []byte, error) {
	w := codec.NewWriter(len(k.Keygroups) * keygroupSize)
	for i, kg := range k.Keygroups {
		if err := checkID("keygroup", int(kg.ID), i); err != nil {
			return nil, nil, err
		}
		w.U16(kg.ID)
		w.S8(kg.Poly)
		w.U8(kg.Priority)
		w.U8(kg.VoiceChannelLow)
		w.U8(kg.VoiceChannelHigh)
		w.U8(kg.Unknown1)
		w.U8(kg.Unknown2)
	}

	// a parsed length with trailing bytes is kept while it still matches the
	// keygroup count, the trailing bytes are written as padding
	length := w.Len()
	if k.declaredLen/keygroupSize == len(k.Keygroups) {
		length = max(length, k.declaredLen)
	}
	padding := paddingTo(w.Len(), codec.AlignUp(length, chunkAlignment))
	tail := length - w.Len()
	data := append(w.Data(), padding[:tail]...)
	return data, padding[tail:], nil
}

// alignmentPadding returns the padding after chunk data of the given length.
// The filler constant is used when it fits into the padding, the rest is
// filled with zeros.
func alignmentPadding(length int) []byte {
	return paddingTo(length, codec.AlignUp(length, chunkAlignment))
}

// paddingTo returns the padding that extends data of the given length to
// size bytes.
func paddingTo(length, size int) []byte {
	size -= length
	padding := make([]byte, 0, size)
	if size >= len(alignmentFiller) {
		padding = append(padding, alignmentFiller...)
	}
	for len(padding) < size {
		padding = append(padding, 0)
	}
	return padding
}
