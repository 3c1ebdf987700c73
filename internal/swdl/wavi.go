package swdl

import (
	"github.com/skytemple/dsecodec/internal/codec"
	"github.com/skytemple/dsecodec/internal/dse"
)

const (
	sampleInfoSize = 64
	waviTableFill  = 0xAA
)

// Envelope contains the volume envelope settings of a sample or split.
type Envelope struct {
	On           uint8
	Multiplier   uint8
	Unknown1     uint8
	Unknown2     uint8
	Unknown3     uint16
	Unknown4     uint16
	AttackVolume int8
	Attack       int8
	Decay        int8
	Sustain      int8
	Hold         int8
	Decay2       int8
	Release      int8
	Unknown5     int8
}

func envelopeFromReader(r *codec.Reader, offset int) Envelope {
	return Envelope{
		On:           r.U8(offset),
		Multiplier:   r.U8(offset + 0x01),
		Unknown1:     r.U8(offset + 0x02),
		Unknown2:     r.U8(offset + 0x03),
		Unknown3:     r.U16(offset + 0x04),
		Unknown4:     r.U16(offset + 0x06),
		AttackVolume: r.S8(offset + 0x08),
		Attack:       r.S8(offset + 0x09),
		Decay:        r.S8(offset + 0x0A),
		Sustain:      r.S8(offset + 0x0B),
		Hold:         r.S8(offset + 0x0C),
		Decay2:       r.S8(offset + 0x0D),
		Release:      r.S8(offset + 0x0E),
		Unknown5:     r.S8(offset + 0x0F),
	}
}

func (e Envelope) write(w *codec.Writer) {
	w.U8(e.On)
	w.U8(e.Multiplier)
	w.U8(e.Unknown1)
	w.U8(e.Unknown2)
	w.U16(e.Unknown3)
	w.U16(e.Unknown4)
	w.S8(e.AttackVolume)
	w.S8(e.Attack)
	w.S8(e.Decay)
	w.S8(e.Sustain)
	w.S8(e.Hold)
	w.S8(e.Decay2)
	w.S8(e.Release)
	w.S8(e.Unknown5)
}

// SampleInfo is a WAVI entry describing one sample stored in the PCMD chunk.
type SampleInfo struct {
	Unknown1     uint16
	ID           uint16
	FineTune     int8
	CoarseTune   int8
	RootKey      uint8
	KeyTranspose int8
	Volume       uint8
	Pan          uint8
	Unknown2     uint8
	Unknown3     uint8
	Unknown4     uint16
	Unknown5     uint16
	Unknown6     uint16
	SampleFormat uint16
	Unknown7     uint8
	Loop         uint8
	Unknown8     uint16
	Unknown9     uint16
	Unknown10    uint16
	Unknown11    uint32
	SampleRate   uint32
	SamplePos    uint32 // offset of the sample data in the PCMD chunk
	LoopBegin    uint32 // in 32 bit words
	LoopLength   uint32 // in 32 bit words
	Envelope     Envelope
}

// PcmdReference locates the data of a sample inside the PCMD chunk.
type PcmdReference struct {
	Offset uint64
	Length uint64
}

// Sample returns the location of the sample data in the PCMD chunk.
func (s *SampleInfo) Sample() PcmdReference {
	return PcmdReference{
		Offset: uint64(s.SamplePos),
		Length: (uint64(s.LoopBegin) + uint64(s.LoopLength)) * 4,
	}
}

// Wavi is the sample information chunk. Empty slots are nil.
type Wavi struct {
	SampleInfoTable []*SampleInfo
}

// Samples returns all used slots.
func (w *Wavi) Samples() []*SampleInfo {
	var samples []*SampleInfo
	for _, sample := range w.SampleInfoTable {
		if sample != nil {
			samples = append(samples, sample)
		}
	}
	return samples
}

func waviFromChunk(c chunk, slots int) (*Wavi, error) {
	table, err := readSlotTable("wavi", c.data, slots, sampleInfoFromBytes)
	if err != nil {
		return nil, err
	}
	return &Wavi{SampleInfoTable: table}, nil
}

func sampleInfoFromBytes(data []byte, index int) (*SampleInfo, error) {
	if len(data) < sampleInfoSize {
		return nil, dse.TruncatedError("sample info", 0, sampleInfoSize, len(data))
	}

	r := codec.NewReader("sample info", data[:sampleInfoSize])
	s := &SampleInfo{
		Unknown1:     r.U16(0x00),
		ID:           r.U16(0x02),
		FineTune:     r.S8(0x04),
		CoarseTune:   r.S8(0x05),
		RootKey:      r.U8(0x06),
		KeyTranspose: r.S8(0x07),
		Volume:       r.U8(0x08),
		Pan:          r.U8(0x09),
		Unknown2:     r.U8(0x0A),
		Unknown3:     r.U8(0x0B),
		Unknown4:     r.U16(0x0C),
		Unknown5:     r.U16(0x0E),
		Unknown6:     r.U16(0x10),
		SampleFormat: r.U16(0x12),
		Unknown7:     r.U8(0x14),
		Loop:         r.U8(0x15),
		Unknown8:     r.U16(0x16),
		Unknown9:     r.U16(0x18),
		Unknown10:    r.U16(0x1A),
		Unknown11:    r.U32(0x1C),
		SampleRate:   r.U32(0x20),
		SamplePos:    r.U32(0x24),
		LoopBegin:    r.U32(0x28),
		LoopLength:   r.U32(0x2C),
		Envelope:     envelopeFromReader(r, 0x30),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	if err := checkID("sample info", int(s.ID), index); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SampleInfo) bytes(index int) ([]byte, error) {
	if err := checkID("sample info", int(s.ID), index); err != nil {
		return nil, err
	}

	w := codec.NewWriter(sampleInfoSize)
	w.U16(s.Unknown1)
	w.U16(s.ID)
	w.S8(s.FineTune)
	w.S8(s.CoarseTune)
	w.U8(s.RootKey)
	w.S8(s.KeyTranspose)
	w.U8(s.Volume)
	w.U8(s.Pan)
	w.U8(s.Unknown2)
	w.U8(s.Unknown3)
	w.U16(s.Unknown4)
	w.U16(s.Unknown5)
	w.U16(s.Unknown6)
	w.U16(s.SampleFormat)
	w.U8(s.Unknown7)
	w.U8(s.Loop)
	w.U16(s.Unknown8)
	w.U16(s.Unknown9)
	w.U16(s.Unknown10)
	w.U32(s.Unknown11)
	w.U32(s.SampleRate)
	w.U32(s.SamplePos)
	w.U32(s.LoopBegin)
	w.U32(s.LoopLength)
	s.Envelope.write(w)
	return w.Data(), nil
}

// bytes returns the chunk data without the chunk header.
func (w *Wavi) bytes() ([]byte, error) {
	return writeSlotTable("wavi", w.SampleInfoTable, waviTableFill, (*SampleInfo).bytes)
}
