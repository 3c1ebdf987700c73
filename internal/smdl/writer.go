package smdl

import (
	"fmt"
	"math"

	"github.com/skytemple/dsecodec/internal/codec"
	"github.com/skytemple/dsecodec/internal/dse"
)

// Writer serializes a sequence. The model is not modified.
type Writer struct {
	model *Smdl
}

// NewWriter returns a writer for the given sequence.
func NewWriter(model *Smdl) *Writer {
	return &Writer{
		model: model,
	}
}

// Write returns the serialized file. The file length, the track count and
// all track lengths are computed from the model.
func (w *Writer) Write() ([]byte, error) {
	if len(w.model.Tracks) > math.MaxUint8 {
		return nil, dse.UnsupportedError("track count", len(w.model.Tracks), math.MaxUint8)
	}

	var tracks []byte
	for i, track := range w.model.Tracks {
		data, err := track.bytes()
		if err != nil {
			return nil, fmt.Errorf("writing track %d: %w", i, err)
		}
		tracks = append(tracks, data...)
	}

	length := headerSize + songSize + len(tracks) + eocSize
	if !codec.FitsUnsigned(length, 32) {
		return nil, dse.UnsupportedError("file length", length, uint32(math.MaxUint32))
	}

	header, err := w.model.Header.bytes(uint32(length))
	if err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	out := codec.NewWriter(length)
	out.Bytes(header)
	out.Bytes(w.model.Song.bytes(uint8(len(w.model.Tracks))))
	out.Bytes(tracks)
	out.Bytes(w.model.EOC.bytes())
	return out.Data(), nil
}

// ToBytes serializes the sequence.
func ToBytes(model *Smdl) ([]byte, error) {
	return NewWriter(model).Write()
}
