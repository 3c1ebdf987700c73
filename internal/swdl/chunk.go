package swdl

import (
	"fmt"
	"math"

	"github.com/skytemple/dsecodec/internal/codec"
	"github.com/skytemple/dsecodec/internal/dse"
)

const (
	chunkHeaderSize = 16
	chunkAlignment  = 16
	chunkVersion    = 0x04150000
	slotSize        = 2
)

var (
	waviMagic = []byte("wavi")
	prgiMagic = []byte("prgi")
	kgrpMagic = []byte("kgrp")
	pcmdMagic = []byte("pcmd")
	eodMagic  = []byte("eod ")
)

// chunk is a located sub chunk of a file.
type chunk struct {
	offset int // offset of the chunk header in the file
	data   []byte
}

// end returns the file offset directly after the chunk data.
func (c chunk) end() int {
	return c.offset + chunkHeaderSize + len(c.data)
}

// readChunk reads the chunk sub header at offset and returns the chunk with
// its declared data.
func readChunk(data []byte, offset int, magic []byte) (chunk, error) {
	name := string(magic)
	if offset+chunkHeaderSize > len(data) {
		return chunk{}, dse.TruncatedError(name+" chunk header", offset, chunkHeaderSize, len(data))
	}

	r := codec.NewReader(name+" chunk header", data[offset:offset+chunkHeaderSize])
	if !r.Magic(0, magic) {
		return chunk{}, dse.NewFormatError(name+" magic", name, fmt.Sprintf("%q", r.Bytes(0, 4)))
	}
	if v := r.U32(0x04); v != chunkVersion {
		return chunk{}, dse.NewFormatError(name+" chunk version", fmt.Sprintf("0x%08x", chunkVersion), fmt.Sprintf("0x%08x", v))
	}
	if v := r.U32(0x08); v != chunkHeaderSize {
		return chunk{}, dse.NewFormatError(name+" chunk header size", chunkHeaderSize, v)
	}
	length := int(r.U32(0x0C))
	if err := r.Err(); err != nil {
		return chunk{}, err
	}

	start := offset + chunkHeaderSize
	if length > len(data)-start {
		return chunk{}, dse.TruncatedError(name+" chunk data", start, length, len(data))
	}
	return chunk{
		offset: offset,
		data:   data[start : start+length],
	}, nil
}

// hasMagic returns whether a chunk with the given magic starts at offset.
func hasMagic(data []byte, offset int, magic []byte) bool {
	if offset+len(magic) > len(data) {
		return false
	}
	return string(data[offset:offset+len(magic)]) == string(magic)
}

// writeChunkHeader appends a chunk sub header with the given data length.
func writeChunkHeader(w *codec.Writer, magic []byte, length int) error {
	if !codec.FitsUnsigned(length, 32) {
		return dse.UnsupportedError(string(magic)+" chunk length", length, uint32(math.MaxUint32))
	}
	w.Bytes(magic)
	w.U32(chunkVersion)
	w.U32(chunkHeaderSize)
	w.U32(uint32(length))
	return nil
}

// readSlotTable parses a table of 16 bit offsets at the start of the chunk
// data. An offset of 0 marks an empty slot, every other offset has to point
// inside the chunk data. parse is called for every used slot with the data
// starting at the slot offset and must check that the record id matches the
// slot index.
func readSlotTable[T any](chunkName string, data []byte, slots int,
	parse func(record []byte, index int) (*T, error)) ([]*T, error) {

	if slots*slotSize > len(data) {
		return nil, dse.TruncatedError(chunkName+" slot table", 0, slots*slotSize, len(data))
	}

	table := make([]*T, slots)
	for i := 0; i < slots; i++ {
		offset := int(uint16(data[i*slotSize]) | uint16(data[i*slotSize+1])<<8)
		if offset == 0 {
			continue
		}
		if offset >= len(data) {
			return nil, dse.NewFormatError(fmt.Sprintf("%s slot %d offset", chunkName, i),
				fmt.Sprintf("< 0x%x", len(data)), fmt.Sprintf("0x%x", offset))
		}

		entry, err := parse(data[offset:], i)
		if err != nil {
			return nil, fmt.Errorf("parsing %s slot %d at offset 0x%x: %w", chunkName, i, offset, err)
		}
		table[i] = entry
	}
	return table, nil
}

// writeSlotTable serializes the slot table padded to 16 bytes with filler,
// followed by the serialized entries in slot order.
func writeSlotTable[T any](chunkName string, table []*T, filler byte,
	encode func(entry *T, index int) ([]byte, error)) ([]byte, error) {

	tableSize := codec.AlignUp(len(table)*slotSize, chunkAlignment)
	slotData := codec.NewWriter(tableSize)
	var entries []byte

	for i, entry := range table {
		if entry == nil {
			slotData.U16(0)
			continue
		}

		offset := tableSize + len(entries)
		if offset > math.MaxUint16 {
			return nil, dse.UnsupportedError(fmt.Sprintf("%s slot %d offset", chunkName, i), offset, math.MaxUint16)
		}
		slotData.U16(uint16(offset))

		data, err := encode(entry, i)
		if err != nil {
			return nil, fmt.Errorf("writing %s slot %d: %w", chunkName, i, err)
		}
		entries = append(entries, data...)
	}
	slotData.Align(chunkAlignment, filler)
	slotData.Bytes(entries)
	return slotData.Data(), nil
}

// checkID returns an error if the id stored in a record does not match its position.
func checkID(what string, id, index int) error {
	if id != index {
		return dse.NewFormatError(what+" id", index, id)
	}
	return nil
}
