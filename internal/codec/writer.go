package codec

import (
	"encoding/binary"
)

// Writer appends little endian fields to a growable buffer.
type Writer struct {
	buf []byte
}

// NewWriter returns a writer with the given initial capacity.
func NewWriter(capacity int) *Writer {
	return &Writer{
		buf: make([]byte, 0, capacity),
	}
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Data returns the written bytes.
func (w *Writer) Data() []byte {
	return w.buf
}

// U8 appends an unsigned byte.
func (w *Writer) U8(v uint8) {
	w.buf = append(w.buf, v)
}

// S8 appends a signed byte.
func (w *Writer) S8(v int8) {
	w.buf = append(w.buf, byte(v))
}

// U16 appends an unsigned little endian 16 bit integer.
func (w *Writer) U16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

// S16 appends a signed little endian 16 bit integer.
func (w *Writer) S16(v int16) {
	w.U16(uint16(v))
}

// U32 appends an unsigned little endian 32 bit integer.
func (w *Writer) U32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// S32 appends a signed little endian 32 bit integer.
func (w *Writer) S32(v int32) {
	w.U32(uint32(v))
}

// Bytes appends raw bytes.
func (w *Writer) Bytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// Fill appends n copies of b.
func (w *Writer) Fill(b byte, n int) {
	for i := 0; i < n; i++ {
		w.buf = append(w.buf, b)
	}
}

// Align appends filler bytes until the length is a multiple of align.
func (w *Writer) Align(align int, filler byte) {
	w.Fill(filler, AlignUp(len(w.buf), align)-len(w.buf))
}
