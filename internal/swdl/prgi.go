package swdl

import (
	"fmt"
	"math"

	"github.com/skytemple/dsecodec/internal/codec"
	"github.com/skytemple/dsecodec/internal/dse"
)

const (
	programHeaderSize = 16
	lfoSize           = 16
	delimiterSize     = 16
	splitSize         = 48
	prgiTableFill     = 0x00

	// DelimiterZero and DelimiterAA are the values of the block between the
	// LFO and split entries of a program.
	DelimiterZero = 0x00
	DelimiterAA   = 0xAA
)

// LFO is a low frequency oscillator entry of a program.
type LFO struct {
	Unknown1    uint8
	Unknown2    uint8
	Destination uint8
	WaveShape   uint8
	Rate        uint16
	Unknown3    uint16
	Depth       uint16
	Delay       uint16
	Unknown4    uint16
	Unknown5    uint16
}

// Split maps a key and velocity range of a program to a sample.
type Split struct {
	Unknown1     uint8
	ID           uint8
	Unknown2     uint8
	Unknown3     uint8
	LowKey       int8
	HighKey      int8
	LowLevel     int8
	HighLevel    int8
	Unknown4     int32
	Unknown5     uint16
	SampleID     uint16
	FineTune     int8
	CoarseTune   int8
	RootKey      int8
	KeyTranspose int8
	SampleVolume uint8
	SamplePan    uint8
	KeygroupID   uint8
	Unknown6     uint8
	Unknown7     uint16
	Unknown8     uint16
	Envelope     Envelope
}

// Program is an instrument definition of the PRGI chunk.
type Program struct {
	ID       uint16
	Volume   uint8
	Pan      uint8
	Unknown1 uint8
	Unknown2 uint8
	Unknown3 uint16
	Unknown4 uint8
	Unknown5 uint8
	Unknown6 uint8
	Unknown7 uint8
	Unknown8 uint8
	// Delimiter is the byte value of the block between LFOs and splits.
	Delimiter uint8
	LFOs      []LFO
	Splits    []Split
}

// Prgi is the program chunk. Empty slots are nil.
type Prgi struct {
	ProgramTable []*Program
}

// Programs returns all used slots.
func (p *Prgi) Programs() []*Program {
	var programs []*Program
	for _, program := range p.ProgramTable {
		if program != nil {
			programs = append(programs, program)
		}
	}
	return programs
}

func prgiFromChunk(c chunk, slots int) (*Prgi, error) {
	table, err := readSlotTable("prgi", c.data, slots, programFromBytes)
	if err != nil {
		return nil, err
	}
	return &Prgi{ProgramTable: table}, nil
}

func programFromBytes(data []byte, index int) (*Program, error) {
	if len(data) < programHeaderSize {
		return nil, dse.TruncatedError("program header", 0, programHeaderSize, len(data))
	}

	r := codec.NewReader("program header", data[:programHeaderSize])
	p := &Program{
		ID:       r.U16(0x00),
		Volume:   r.U8(0x04),
		Pan:      r.U8(0x05),
		Unknown1: r.U8(0x06),
		Unknown2: r.U8(0x07),
		Unknown3: r.U16(0x08),
		Unknown4: r.U8(0x0A),
		Unknown5: r.U8(0x0C),
		Unknown6: r.U8(0x0D),
		Unknown7: r.U8(0x0E),
		Unknown8: r.U8(0x0F),
	}
	splitCount := int(r.U16(0x02))
	lfoCount := int(r.U8(0x0B))
	if err := r.Err(); err != nil {
		return nil, err
	}
	if err := checkID("program", int(p.ID), index); err != nil {
		return nil, err
	}

	size := programHeaderSize + lfoCount*lfoSize + delimiterSize + splitCount*splitSize
	if len(data) < size {
		return nil, dse.TruncatedError(fmt.Sprintf("program with %d lfos and %d splits", lfoCount, splitCount),
			0, size, len(data))
	}

	pos := programHeaderSize
	for i := 0; i < lfoCount; i++ {
		p.LFOs = append(p.LFOs, lfoFromBytes(data[pos:pos+lfoSize]))
		pos += lfoSize
	}

	delimiter, err := detectDelimiter(data[pos : pos+delimiterSize])
	if err != nil {
		return nil, err
	}
	p.Delimiter = delimiter
	pos += delimiterSize

	for i := 0; i < splitCount; i++ {
		split, err := splitFromBytes(data[pos:pos+splitSize], i)
		if err != nil {
			return nil, fmt.Errorf("parsing split %d: %w", i, err)
		}
		p.Splits = append(p.Splits, split)
		pos += splitSize
	}
	return p, nil
}

func detectDelimiter(data []byte) (uint8, error) {
	delimiter := data[0]
	if delimiter != DelimiterZero && delimiter != DelimiterAA {
		return 0, dse.NewFormatError("program delimiter", "0x00 or 0xaa", fmt.Sprintf("0x%02x", delimiter))
	}
	for i, b := range data {
		if b != delimiter {
			return 0, dse.NewFormatError(fmt.Sprintf("program delimiter byte %d", i),
				fmt.Sprintf("0x%02x", delimiter), fmt.Sprintf("0x%02x", b))
		}
	}
	return delimiter, nil
}

func lfoFromBytes(data []byte) LFO {
	r := codec.NewReader("lfo", data)
	return LFO{
		Unknown1:    r.U8(0x00),
		Unknown2:    r.U8(0x01),
		Destination: r.U8(0x02),
		WaveShape:   r.U8(0x03),
		Rate:        r.U16(0x04),
		Unknown3:    r.U16(0x06),
		Depth:       r.U16(0x08),
		Delay:       r.U16(0x0A),
		Unknown4:    r.U16(0x0C),
		Unknown5:    r.U16(0x0E),
	}
}

func (l LFO) write(w *codec.Writer) {
	w.U8(l.Unknown1)
	w.U8(l.Unknown2)
	w.U8(l.Destination)
	w.U8(l.WaveShape)
	w.U16(l.Rate)
	w.U16(l.Unknown3)
	w.U16(l.Depth)
	w.U16(l.Delay)
	w.U16(l.Unknown4)
	w.U16(l.Unknown5)
}

func splitFromBytes(data []byte, index int) (Split, error) {
	r := codec.NewReader("split", data)
	s := Split{
		Unknown1:     r.U8(0x00),
		ID:           r.U8(0x01),
		Unknown2:     r.U8(0x02),
		Unknown3:     r.U8(0x03),
		LowKey:       r.S8(0x04),
		HighKey:      r.S8(0x05),
		LowLevel:     r.S8(0x08),
		HighLevel:    r.S8(0x09),
		Unknown4:     r.S32(0x0C),
		Unknown5:     r.U16(0x10),
		SampleID:     r.U16(0x12),
		FineTune:     r.S8(0x14),
		CoarseTune:   r.S8(0x15),
		RootKey:      r.S8(0x16),
		KeyTranspose: r.S8(0x17),
		SampleVolume: r.U8(0x18),
		SamplePan:    r.U8(0x19),
		KeygroupID:   r.U8(0x1A),
		Unknown6:     r.U8(0x1B),
		Unknown7:     r.U16(0x1C),
		Unknown8:     r.U16(0x1E),
		Envelope:     envelopeFromReader(r, 0x20),
	}
	duplicates := []struct {
		name   string
		value  int8
		offset int
	}{
		{"low key", s.LowKey, 0x06},
		{"high key", s.HighKey, 0x07},
		{"low level", s.LowLevel, 0x0A},
		{"high level", s.HighLevel, 0x0B},
	}
	for _, dup := range duplicates {
		if v := r.S8(dup.offset); v != dup.value {
			return Split{}, dse.NewFormatError("split duplicated "+dup.name, dup.value, v)
		}
	}
	if err := r.Err(); err != nil {
		return Split{}, err
	}
	if err := checkID("split", int(s.ID), index); err != nil {
		return Split{}, err
	}
	return s, nil
}

func (s Split) write(w *codec.Writer) {
	w.U8(s.Unknown1)
	w.U8(s.ID)
	w.U8(s.Unknown2)
	w.U8(s.Unknown3)
	w.S8(s.LowKey)
	w.S8(s.HighKey)
	w.S8(s.LowKey)
	w.S8(s.HighKey)
	w.S8(s.LowLevel)
	w.S8(s.HighLevel)
	w.S8(s.LowLevel)
	w.S8(s.HighLevel)
	w.S32(s.Unknown4)
	w.U16(s.Unknown5)
	w.U16(s.SampleID)
	w.S8(s.FineTune)
	w.S8(s.CoarseTune)
	w.S8(s.RootKey)
	w.S8(s.KeyTranspose)
	w.U8(s.SampleVolume)
	w.U8(s.SamplePan)
	w.U8(s.KeygroupID)
	w.U8(s.Unknown6)
	w.U16(s.Unknown7)
	w.U16(s.Unknown8)
	s.Envelope.write(w)
}

func (p *Program) bytes(index int) ([]byte, error) {
	if err := checkID("program", int(p.ID), index); err != nil {
		return nil, err
	}
	if len(p.LFOs) > math.MaxUint8 {
		return nil, dse.UnsupportedError("program lfo count", len(p.LFOs), math.MaxUint8)
	}
	// split ids are stored in a single byte
	if len(p.Splits) > math.MaxUint8+1 {
		return nil, dse.UnsupportedError("program split count", len(p.Splits), math.MaxUint8+1)
	}
	if p.Delimiter != DelimiterZero && p.Delimiter != DelimiterAA {
		return nil, dse.UnsupportedError("program delimiter", fmt.Sprintf("0x%02x", p.Delimiter), "0x00 or 0xaa")
	}

	size := programHeaderSize + len(p.LFOs)*lfoSize + delimiterSize + len(p.Splits)*splitSize
	w := codec.NewWriter(size)
	w.U16(p.ID)
	w.U16(uint16(len(p.Splits)))
	w.U8(p.Volume)
	w.U8(p.Pan)
	w.U8(p.Unknown1)
	w.U8(p.Unknown2)
	w.U16(p.Unknown3)
	w.U8(p.Unknown4)
	w.U8(uint8(len(p.LFOs)))
	w.U8(p.Unknown5)
	w.U8(p.Unknown6)
	w.U8(p.Unknown7)
	w.U8(p.Unknown8)

	for _, lfo := range p.LFOs {
		lfo.write(w)
	}
	w.Fill(p.Delimiter, delimiterSize)
	for i, split := range p.Splits {
		if err := checkID("split", int(split.ID), i); err != nil {
			return nil, err
		}
		split.write(w)
	}
	return w.Data(), nil
}

// bytes returns the chunk data without the chunk header.
func (p *Prgi) bytes() ([]byte, error) {
	return writeSlotTable("prgi", p.ProgramTable, prgiTableFill, (*Program).bytes)
}
