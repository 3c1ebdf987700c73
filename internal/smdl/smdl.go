// Package smdl implements reading and writing of SMDL music sequence files.
//
// A file consists of a 64 byte header, a 64 byte song block, the tracks with
// their event streams and a 16 byte end of content marker.
package smdl

import (
	"fmt"
)

// Smdl is a parsed music sequence.
type Smdl struct {
	Header Header
	Song   Song
	Tracks []*Track
	EOC    EOC
}

// New returns an empty sequence with default header values.
func New(filename string) *Smdl {
	return &Smdl{
		Header: newHeader(filename),
		Song:   newSong(),
		EOC:    newEOC(),
	}
}

// FromBytes parses a sequence file.
func FromBytes(data []byte) (*Smdl, error) {
	header, err := headerFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parsing header: %w", err)
	}

	song, err := songFromBytes(data[headerSize:])
	if err != nil {
		return nil, fmt.Errorf("parsing song: %w", err)
	}

	s := &Smdl{
		Header: header,
		Song:   song,
		Tracks: make([]*Track, 0, song.InitialTrackCount()),
	}

	offset := headerSize + songSize
	for i := 0; i < song.InitialTrackCount(); i++ {
		track, next, err := trackFromBytes(data, offset)
		if err != nil {
			return nil, fmt.Errorf("parsing track %d at offset 0x%x: %w", i, offset, err)
		}
		s.Tracks = append(s.Tracks, track)
		offset = next
	}

	s.EOC, err = eocFromBytes(data[offset:])
	if err != nil {
		return nil, fmt.Errorf("parsing eoc at offset 0x%x: %w", offset, err)
	}
	return s, nil
}
