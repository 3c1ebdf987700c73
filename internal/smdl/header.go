package smdl

import (
	"fmt"

	"github.com/skytemple/dsecodec/internal/codec"
	"github.com/skytemple/dsecodec/internal/dse"
)

const (
	headerSize = 64
	songSize   = 64
	eocSize    = 16

	// DefaultVersion is the format version written by new files.
	DefaultVersion = 0x415

	songFillerOffset = 0x30
	songFillerSize   = 0x10
)

var (
	headerMagic = []byte("smdl")
	songMagic   = []byte("song")
	eocMagic    = []byte("eoc ")
)

// Header is the file header. The total file length is computed by the writer.
type Header struct {
	Version      uint16
	Unknown1     uint8
	Unknown2     uint8
	ModifiedDate [8]byte
	Filename     dse.Filename
	Unknown3     uint32
	Unknown4     uint32
	Unknown5     uint32
	Unknown6     uint32
}

// Song contains the song metadata. The track count is computed by the writer.
type Song struct {
	Unknown1    uint32
	Unknown2    uint32
	Unknown3    uint32
	Unknown4    uint16
	TPQN        uint16 // ticks per quarter note
	Unknown5    uint16
	NumChannels uint8
	Unknown6    uint32
	Unknown7    uint32
	Unknown8    uint32
	Unknown9    uint32
	Unknown10   uint16
	Unknown11   uint16
	Unknown12   uint32

	initialTrackCount uint8
}

// EOC is the end of content marker.
type EOC struct {
	Param1 uint32
	Param2 uint32
}

func newHeader(filename string) Header {
	return Header{
		Version:  DefaultVersion,
		Filename: dse.NewFilename(filename),
		Unknown3: 0x01000000,
		Unknown4: 0x0000FF00,
		Unknown5: 0xFFFFFFFF,
		Unknown6: 0,
	}
}

func newSong() Song {
	return Song{
		Unknown2:  0xFF10,
		Unknown3:  0xFFFFFFB0,
		Unknown4:  0x1,
		TPQN:      48,
		Unknown5:  0xFF01,
		Unknown6:  0x0F000000,
		Unknown7:  0xFFFFFFFF,
		Unknown8:  0x40000000,
		Unknown9:  0x00404000,
		Unknown10: 0x0200,
		Unknown11: 0x0800,
		Unknown12: 0xFFFFFF00,
	}
}

func newEOC() EOC {
	return EOC{
		Param1: defaultParam1,
		Param2: defaultParam2,
	}
}

func headerFromBytes(data []byte) (Header, error) {
	if len(data) < headerSize {
		return Header{}, dse.TruncatedError("smdl header", 0, headerSize, len(data))
	}
	r := codec.NewReader("smdl header", data)
	if !r.Magic(0, headerMagic) {
		return Header{}, dse.NewFormatError("smdl header magic", string(headerMagic), fmt.Sprintf("%q", r.Bytes(0, 4)))
	}
	if v := r.U32(0x04); v != 0 {
		return Header{}, dse.NewFormatError("smdl header reserved 0x04", 0, v)
	}
	if v := r.Bytes(0x10, 8); !isZero(v) {
		return Header{}, dse.NewFormatError("smdl header reserved 0x10", "zero bytes", fmt.Sprintf("% x", v))
	}

	h := Header{
		Version:  r.U16(0x0C),
		Unknown1: r.U8(0x0E),
		Unknown2: r.U8(0x0F),
		Unknown3: r.U32(0x30),
		Unknown4: r.U32(0x34),
		Unknown5: r.U32(0x38),
		Unknown6: r.U32(0x3C),
	}
	copy(h.ModifiedDate[:], r.Bytes(0x18, 8))
	filename := r.Bytes(0x20, dse.FilenameSize)
	if err := r.Err(); err != nil {
		return Header{}, err
	}

	var err error
	h.Filename, err = dse.FilenameFromBytes(filename)
	if err != nil {
		return Header{}, fmt.Errorf("decoding smdl filename: %w", err)
	}
	return h, nil
}

func (h Header) bytes(fileLength uint32) ([]byte, error) {
	filename, err := h.Filename.Bytes()
	if err != nil {
		return nil, fmt.Errorf("encoding smdl filename: %w", err)
	}

	w := codec.NewWriter(headerSize)
	w.Bytes(headerMagic)
	w.U32(0)
	w.U32(fileLength)
	w.U16(h.Version)
	w.U8(h.Unknown1)
	w.U8(h.Unknown2)
	w.Fill(0, 8)
	w.Bytes(h.ModifiedDate[:])
	w.Bytes(filename)
	w.U32(h.Unknown3)
	w.U32(h.Unknown4)
	w.U32(h.Unknown5)
	w.U32(h.Unknown6)
	return w.Data(), nil
}

func songFromBytes(data []byte) (Song, error) {
	if len(data) < songSize {
		return Song{}, dse.TruncatedError("song header", 0, songSize, len(data))
	}
	r := codec.NewReader("song header", data)
	if !r.Magic(0, songMagic) {
		return Song{}, dse.NewFormatError("song magic", string(songMagic), fmt.Sprintf("%q", r.Bytes(0, 4)))
	}

	s := Song{
		Unknown1:          r.U32(0x04),
		Unknown2:          r.U32(0x08),
		Unknown3:          r.U32(0x0C),
		Unknown4:          r.U16(0x10),
		TPQN:              r.U16(0x12),
		Unknown5:          r.U16(0x14),
		initialTrackCount: r.U8(0x16),
		NumChannels:       r.U8(0x17),
		Unknown6:          r.U32(0x18),
		Unknown7:          r.U32(0x1C),
		Unknown8:          r.U32(0x20),
		Unknown9:          r.U32(0x24),
		Unknown10:         r.U16(0x28),
		Unknown11:         r.U16(0x2A),
		Unknown12:         r.U32(0x2C),
	}
	filler := r.Bytes(songFillerOffset, songFillerSize)
	if err := r.Err(); err != nil {
		return Song{}, err
	}
	for i, b := range filler {
		if b != 0xFF {
			return Song{}, dse.NewFormatError(fmt.Sprintf("song filler byte %d", i), "0xff", fmt.Sprintf("0x%02x", b))
		}
	}
	return s, nil
}

// InitialTrackCount returns the track count that was stored in the parsed
// file. It is not updated when tracks are changed.
func (s Song) InitialTrackCount() int {
	return int(s.initialTrackCount)
}

func (s Song) bytes(trackCount uint8) []byte {
	w := codec.NewWriter(songSize)
	w.Bytes(songMagic)
	w.U32(s.Unknown1)
	w.U32(s.Unknown2)
	w.U32(s.Unknown3)
	w.U16(s.Unknown4)
	w.U16(s.TPQN)
	w.U16(s.Unknown5)
	w.U8(trackCount)
	w.U8(s.NumChannels)
	w.U32(s.Unknown6)
	w.U32(s.Unknown7)
	w.U32(s.Unknown8)
	w.U32(s.Unknown9)
	w.U16(s.Unknown10)
	w.U16(s.Unknown11)
	w.U32(s.Unknown12)
	w.Fill(0xFF, songFillerSize)
	return w.Data()
}

func eocFromBytes(data []byte) (EOC, error) {
	if len(data) < eocSize {
		return EOC{}, dse.TruncatedError("eoc", 0, eocSize, len(data))
	}
	r := codec.NewReader("eoc", data)
	if !r.Magic(0, eocMagic) {
		return EOC{}, dse.NewFormatError("eoc magic", string(eocMagic), fmt.Sprintf("%q", r.Bytes(0, 4)))
	}
	e := EOC{
		Param1: r.U32(0x04),
		Param2: r.U32(0x08),
	}
	reserved := r.U32(0x0C)
	if err := r.Err(); err != nil {
		return EOC{}, err
	}
	if reserved != 0 {
		return EOC{}, dse.NewFormatError("eoc reserved 0x0c", 0, reserved)
	}
	return e, nil
}

func (e EOC) bytes() []byte {
	w := codec.NewWriter(eocSize)
	w.Bytes(eocMagic)
	w.U32(e.Param1)
	w.U32(e.Param2)
	w.U32(0)
	return w.Data()
}

func isZero(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return false
		}
	}
	return true
}
