package swdl

import (
	"fmt"

	"github.com/skytemple/dsecodec/internal/codec"
	"github.com/skytemple/dsecodec/internal/dse"
)

const (
	headerSize = 80

	// DefaultVersion is the format version used by the game files.
	DefaultVersion = 0x415

	pcmdExternalMarker = 0xAAAA
)

var (
	headerMagic  = []byte("swdl")
	headerMarker = []byte{0x00, 0xAA, 0xAA, 0xAA}
)

// PcmdLen is the header field that either holds the length of the embedded
// PCMD chunk or marks the sample data as stored in an external bank.
type PcmdLen struct {
	// Reference is the PCMD data length, or the 16 bit reference value if External is set.
	Reference uint32
	External  bool
}

func pcmdLenFromUint32(v uint32) PcmdLen {
	if v>>16 == pcmdExternalMarker {
		return PcmdLen{Reference: v & 0xFFFF, External: true}
	}
	return PcmdLen{Reference: v}
}

// Value returns the encoded header field.
func (p PcmdLen) Value() uint32 {
	if p.External {
		return pcmdExternalMarker<<16 | p.Reference&0xFFFF
	}
	return p.Reference
}

// Length returns the length of the embedded PCMD chunk data, 0 for external sample data.
func (p PcmdLen) Length() uint32 {
	if p.External {
		return 0
	}
	return p.Reference
}

// Header is the file header. Length, slot counts and the WAVI chunk length
// are computed by the writer.
type Header struct {
	Version      uint16
	Unknown1     uint8
	Unknown2     uint8
	ModifiedDate [8]byte
	Filename     dse.Filename
	Unknown3     uint32
	PcmdLen      PcmdLen
	Unknown4     uint16

	waviSlots int
	prgiSlots int
	waviLen   int
}

// headerCounts are the header fields that are computed when writing.
type headerCounts struct {
	fileLength int
	waviSlots  int
	prgiSlots  int
	waviLen    int
	pcmdLen    PcmdLen
}

func headerFromBytes(data []byte) (Header, error) {
	if len(data) < headerSize {
		return Header{}, dse.TruncatedError("swdl header", 0, headerSize, len(data))
	}

	r := codec.NewReader("swdl header", data[:headerSize])
	if !r.Magic(0, headerMagic) {
		return Header{}, dse.NewFormatError("swdl header magic", string(headerMagic), fmt.Sprintf("%q", r.Bytes(0, 4)))
	}
	if v := r.U32(0x04); v != 0 {
		return Header{}, dse.NewFormatError("swdl header reserved 0x04", 0, v)
	}
	if v := r.Bytes(0x10, 8); !isZero(v) {
		return Header{}, dse.NewFormatError("swdl header reserved 0x10", "zero bytes", fmt.Sprintf("% x", v))
	}
	if !r.Magic(0x30, headerMarker) {
		return Header{}, dse.NewFormatError("swdl header marker", fmt.Sprintf("% x", headerMarker), fmt.Sprintf("% x", r.Bytes(0x30, 4)))
	}
	if v := r.Bytes(0x34, 8); !isZero(v) {
		return Header{}, dse.NewFormatError("swdl header reserved 0x34", "zero bytes", fmt.Sprintf("% x", v))
	}
	if v := r.U16(0x44); v != 0 {
		return Header{}, dse.NewFormatError("swdl header reserved 0x44", 0, v)
	}

	h := Header{
		Version:   r.U16(0x0C),
		Unknown1:  r.U8(0x0E),
		Unknown2:  r.U8(0x0F),
		Unknown3:  r.U32(0x3C),
		PcmdLen:   pcmdLenFromUint32(r.U32(0x40)),
		waviSlots: int(r.U16(0x46)),
		prgiSlots: int(r.U16(0x48)),
		Unknown4:  r.U16(0x4A),
		waviLen:   int(r.U32(0x4C)),
	}
	copy(h.ModifiedDate[:], r.Bytes(0x18, 8))
	filename := r.Bytes(0x20, dse.FilenameSize)
	if err := r.Err(); err != nil {
		return Header{}, err
	}

	var err error
	h.Filename, err = dse.FilenameFromBytes(filename)
	if err != nil {
		return Header{}, fmt.Errorf("decoding swdl filename: %w", err)
	}
	return h, nil
}

// WaviSlots returns the WAVI slot count stored in the parsed file.
func (h Header) WaviSlots() int {
	return h.waviSlots
}

// PrgiSlots returns the PRGI slot count stored in the parsed file.
func (h Header) PrgiSlots() int {
	return h.prgiSlots
}

func (h Header) bytes(counts headerCounts) ([]byte, error) {
	filename, err := h.Filename.Bytes()
	if err != nil {
		return nil, fmt.Errorf("encoding swdl filename: %w", err)
	}

	w := codec.NewWriter(headerSize)
	w.Bytes(headerMagic)
	w.U32(0)
	w.U32(uint32(counts.fileLength))
	w.U16(h.Version)
	w.U8(h.Unknown1)
	w.U8(h.Unknown2)
	w.Fill(0, 8)
	w.Bytes(h.ModifiedDate[:])
	w.Bytes(filename)
	w.Bytes(headerMarker)
	w.Fill(0, 8)
	w.U32(h.Unknown3)
	w.U32(counts.pcmdLen.Value())
	w.U16(0)
	w.U16(uint16(counts.waviSlots))
	w.U16(uint16(counts.prgiSlots))
	w.U16(h.Unknown4)
	w.U32(uint32(counts.waviLen))
	return w.Data(), nil
}

func isZero(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return false
		}
	}
	return true
}
