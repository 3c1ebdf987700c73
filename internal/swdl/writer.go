package swdl

import (
	"fmt"
	"math"

	"github.com/skytemple/dsecodec/internal/codec"
	"github.com/skytemple/dsecodec/internal/dse"
)

// Writer serializes a wave bank. The model is not modified.
type Writer struct {
	model *Swdl
}

// NewWriter returns a writer for the given wave bank.
func NewWriter(model *Swdl) *Writer {
	return &Writer{
		model: model,
	}
}

// Write returns the serialized file. The file length, the slot counts, the
// WAVI chunk length and the PCMD length are computed from the model.
func (w *Writer) Write() ([]byte, error) {
	m := w.model
	if m.Wavi == nil {
		return nil, dse.NewFormatError("wavi chunk", "present", "nil")
	}
	if (m.Prgi == nil) != (m.Kgrp == nil) {
		return nil, dse.NewFormatError("prgi and kgrp chunks", "both present or both absent",
			fmt.Sprintf("prgi present %t, kgrp present %t", m.Prgi != nil, m.Kgrp != nil))
	}

	counts := headerCounts{
		waviSlots: len(m.Wavi.SampleInfoTable),
	}
	if counts.waviSlots > math.MaxUint16 {
		return nil, dse.UnsupportedError("wavi slot count", counts.waviSlots, math.MaxUint16)
	}

	body := codec.NewWriter(0)

	waviData, err := m.Wavi.bytes()
	if err != nil {
		return nil, fmt.Errorf("writing wavi chunk: %w", err)
	}
	if err := writeChunk(body, waviMagic, waviData, nil); err != nil {
		return nil, err
	}
	counts.waviLen = len(waviData)

	if m.Prgi != nil {
		counts.prgiSlots = len(m.Prgi.ProgramTable)
		if counts.prgiSlots > math.MaxUint16 {
			return nil, dse.UnsupportedError("prgi slot count", counts.prgiSlots, math.MaxUint16)
		}
		if err := w.writePrograms(body); err != nil {
			return nil, err
		}
	}

	switch {
	case m.Pcmd != nil && len(m.Pcmd.Data) > 0:
		data, padding := m.Pcmd.bytes()
		if uint64(len(data)) >= pcmdExternalMarker<<16 {
			return nil, dse.UnsupportedError("pcmd length", len(data), uint32(pcmdExternalMarker<<16-1))
		}
		if err := writeChunk(body, pcmdMagic, data, padding); err != nil {
			return nil, err
		}
		counts.pcmdLen = PcmdLen{Reference: uint32(len(data))}

	case m.Header.PcmdLen.External:
		counts.pcmdLen = m.Header.PcmdLen

	default:
		// keep a direct length of 0 as it was parsed
		counts.pcmdLen = PcmdLen{}
	}

	if err := writeChunkHeader(body, eodMagic, 0); err != nil {
		return nil, err
	}

	counts.fileLength = headerSize + body.Len()
	if !codec.FitsUnsigned(counts.fileLength, 32) {
		return nil, dse.UnsupportedError("file length", counts.fileLength, uint32(math.MaxUint32))
	}
	header, err := m.Header.bytes(counts)
	if err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	out := codec.NewWriter(counts.fileLength)
	out.Bytes(header)
	out.Bytes(body.Data())
	return out.Data(), nil
}

func (w *Writer) writePrograms(body *codec.Writer) error {
	prgiData, err := w.model.Prgi.bytes()
	if err != nil {
		return fmt.Errorf("writing prgi chunk: %w", err)
	}
	if err := writeChunk(body, prgiMagic, prgiData, nil); err != nil {
		return err
	}

	kgrpData, padding, err := w.model.Kgrp.bytes()
	if err != nil {
		return fmt.Errorf("writing kgrp chunk: %w", err)
	}
	return writeChunk(body, kgrpMagic, kgrpData, padding)
}

func writeChunk(w *codec.Writer, magic, data, padding []byte) error {
	if err := writeChunkHeader(w, magic, len(data)); err != nil {
		return err
	}
	w.Bytes(data)
	w.Bytes(padding)
	return nil
}

// ToBytes serializes the wave bank.
func ToBytes(model *Swdl) ([]byte, error) {
	return NewWriter(model).Write()
}
