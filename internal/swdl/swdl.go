// Package swdl implements reading and writing of SWDL wave bank files.
//
// A file consists of an 80 byte header followed by the WAVI sample info
// chunk, the optional PRGI program and KGRP keygroup chunks, the optional
// PCMD sample data chunk and an end of data marker chunk.
package swdl

import (
	"fmt"

	"github.com/skytemple/dsecodec/internal/codec"
	"github.com/skytemple/dsecodec/internal/dse"
)

// Swdl is a parsed wave bank. Prgi and Kgrp are either both set or both nil.
// Pcmd is nil if the sample data is stored in an external bank.
type Swdl struct {
	Header Header
	Wavi   *Wavi
	Prgi   *Prgi
	Kgrp   *Kgrp
	Pcmd   *Pcmd
}

// FromBytes parses a wave bank file.
func FromBytes(data []byte) (*Swdl, error) {
	header, err := headerFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parsing header: %w", err)
	}
	s := &Swdl{
		Header: header,
	}

	waviChunk, err := readChunk(data, headerSize, waviMagic)
	if err != nil {
		return nil, fmt.Errorf("parsing wavi chunk: %w", err)
	}
	if len(waviChunk.data) != header.waviLen {
		return nil, dse.NewFormatError("swdl header wavi length", len(waviChunk.data), header.waviLen)
	}
	s.Wavi, err = waviFromChunk(waviChunk, header.waviSlots)
	if err != nil {
		return nil, fmt.Errorf("parsing wavi chunk: %w", err)
	}

	offset := waviChunk.end()
	if hasMagic(data, offset, prgiMagic) {
		offset, err = s.readPrograms(data, offset)
		if err != nil {
			return nil, err
		}
	}

	if !header.PcmdLen.External && header.PcmdLen.Length() > 0 {
		pcmdChunk, err := readChunk(data, offset, pcmdMagic)
		if err != nil {
			return nil, fmt.Errorf("parsing pcmd chunk: %w", err)
		}
		if uint32(len(pcmdChunk.data)) != header.PcmdLen.Length() {
			return nil, dse.NewFormatError("swdl header pcmd length", len(pcmdChunk.data), header.PcmdLen.Length())
		}
		s.Pcmd = pcmdFromChunk(pcmdChunk)
	}

	if err := s.checkSampleReferences(); err != nil {
		return nil, err
	}
	return s, nil
}

// readPrograms parses the PRGI chunk at offset and the KGRP chunk following
// it and returns the offset after the KGRP chunk padding.
func (s *Swdl) readPrograms(data []byte, offset int) (int, error) {
	prgiChunk, err := readChunk(data, offset, prgiMagic)
	if err != nil {
		return 0, fmt.Errorf("parsing prgi chunk: %w", err)
	}
	s.Prgi, err = prgiFromChunk(prgiChunk, s.Header.prgiSlots)
	if err != nil {
		return 0, fmt.Errorf("parsing prgi chunk: %w", err)
	}

	offset = prgiChunk.end()
	if offset%chunkAlignment != 0 {
		return 0, dse.NewFormatError("kgrp chunk offset", fmt.Sprintf("multiple of %d", chunkAlignment), fmt.Sprintf("0x%x", offset))
	}
	kgrpChunk, err := readChunk(data, offset, kgrpMagic)
	if err != nil {
		return 0, fmt.Errorf("parsing kgrp chunk: %w", err)
	}
	s.Kgrp, err = kgrpFromChunk(kgrpChunk)
	if err != nil {
		return 0, fmt.Errorf("parsing kgrp chunk: %w", err)
	}

	return offset + chunkHeaderSize + codec.AlignUp(len(kgrpChunk.data), chunkAlignment), nil
}

func (s *Swdl) checkSampleReferences() error {
	if s.Pcmd == nil {
		return nil
	}
	for i, sample := range s.Wavi.SampleInfoTable {
		if sample == nil {
			continue
		}
		ref := sample.Sample()
		if !s.Pcmd.contains(ref) {
			return dse.NewFormatError(fmt.Sprintf("wavi slot %d sample range", i),
				fmt.Sprintf("end <= 0x%x", len(s.Pcmd.Data)),
				fmt.Sprintf("offset 0x%x length 0x%x", ref.Offset, ref.Length))
		}
	}
	return nil
}

// SampleBytes returns the sample data of a WAVI entry. It returns false if
// the sample data is not embedded in this file or the range is invalid.
func (s *Swdl) SampleBytes(sample *SampleInfo) ([]byte, bool) {
	if s.Pcmd == nil || sample == nil {
		return nil, false
	}
	ref := sample.Sample()
	if !s.Pcmd.contains(ref) {
		return nil, false
	}
	return s.Pcmd.Data[ref.Offset : ref.Offset+ref.Length], true
}
