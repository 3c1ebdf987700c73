package smdl

import (
	"fmt"

	"github.com/skytemple/dsecodec/internal/codec"
	"github.com/skytemple/dsecodec/internal/dse"
)

const (
	trackHeaderSize = 16
	preambleSize    = 4
	trackAlignment  = 4

	defaultParam1 = 0x01000000
	defaultParam2 = 0xFF04
)

var trackMagic = []byte("trk ")

// TrackHeader is the header of a track chunk. The track length is computed
// by the writer.
type TrackHeader struct {
	Param1 uint32
	Param2 uint32
}

// TrackPreamble precedes the events of a track.
type TrackPreamble struct {
	TrackID   uint8
	ChannelID uint8
	Unknown1  uint8
	Unknown2  uint8
}

// Track is a single track with its event stream.
type Track struct {
	Header   TrackHeader
	Preamble TrackPreamble
	Events   []Event
}

// NewTrack returns an empty track with default header parameters.
func NewTrack(trackID, channelID uint8) *Track {
	return &Track{
		Header: TrackHeader{
			Param1: defaultParam1,
			Param2: defaultParam2,
		},
		Preamble: TrackPreamble{
			TrackID:   trackID,
			ChannelID: channelID,
		},
	}
}

// trackFromBytes parses the track starting at offset and returns the track
// and the offset after its alignment padding.
func trackFromBytes(data []byte, offset int) (*Track, int, error) {
	if offset+trackHeaderSize > len(data) {
		return nil, 0, dse.TruncatedError("track header", offset, trackHeaderSize, len(data))
	}

	r := codec.NewReader("track header", data[offset:offset+trackHeaderSize])
	if !r.Magic(0, trackMagic) {
		return nil, 0, dse.NewFormatError("track magic", string(trackMagic), fmt.Sprintf("%q", r.Bytes(0, 4)))
	}
	track := &Track{
		Header: TrackHeader{
			Param1: r.U32(0x04),
			Param2: r.U32(0x08),
		},
	}
	length := int(r.U32(0x0C))
	if err := r.Err(); err != nil {
		return nil, 0, err
	}

	start := offset + trackHeaderSize
	end := start + length
	if length < preambleSize || end > len(data) {
		return nil, 0, fmt.Errorf("track length 0x%x: %w", length,
			dse.TruncatedError("track data", start, length, len(data)))
	}

	track.Preamble = TrackPreamble{
		TrackID:   data[start],
		ChannelID: data[start+1],
		Unknown1:  data[start+2],
		Unknown2:  data[start+3],
	}

	events, err := decodeEvents(data[start+preambleSize : end])
	if err != nil {
		return nil, 0, fmt.Errorf("decoding events: %w", err)
	}
	track.Events = events

	next := codec.AlignUp(end, trackAlignment)
	if next > len(data) {
		return nil, 0, dse.TruncatedError("track padding", end, next-end, len(data))
	}
	for i := end; i < next; i++ {
		if data[i] != TrackEnd {
			return nil, 0, dse.NewFormatError(fmt.Sprintf("track padding at 0x%x", i),
				fmt.Sprintf("0x%02x", TrackEnd), fmt.Sprintf("0x%02x", data[i]))
		}
	}
	return track, next, nil
}

// bytes encodes the track including its header and the padding to the next
// 4 byte boundary.
func (t *Track) bytes() ([]byte, error) {
	events, err := encodeEvents(t.Events)
	if err != nil {
		return nil, err
	}
	length := preambleSize + len(events)

	w := codec.NewWriter(trackHeaderSize + codec.AlignUp(length, trackAlignment))
	w.Bytes(trackMagic)
	w.U32(t.Header.Param1)
	w.U32(t.Header.Param2)
	w.U32(uint32(length))
	w.U8(t.Preamble.TrackID)
	w.U8(t.Preamble.ChannelID)
	w.U8(t.Preamble.Unknown1)
	w.U8(t.Preamble.Unknown2)
	w.Bytes(events)
	w.Align(trackAlignment, TrackEnd)
	return w.Data(), nil
}
