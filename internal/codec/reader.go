package codec

import (
	"encoding/binary"

	"github.com/skytemple/dsecodec/internal/dse"
)

// Reader reads little endian fields at offsets of a fixed size record.
// The first out of bounds access is remembered and returned by Err, all
// reads after it return zero values.
type Reader struct {
	data []byte
	name string
	err  error
}

// NewReader returns a reader for the record data, name is used in errors.
func NewReader(name string, data []byte) *Reader {
	return &Reader{
		data: data,
		name: name,
	}
}

// Err returns the first error that occurred while reading.
func (r *Reader) Err() error {
	return r.err
}

// Len returns the length of the underlying data.
func (r *Reader) Len() int {
	return len(r.data)
}

// U8 reads an unsigned byte.
func (r *Reader) U8(offset int) uint8 {
	b := r.slice(offset, 1)
	if b == nil {
		return 0
	}
	return b[0]
}

// S8 reads a signed byte.
func (r *Reader) S8(offset int) int8 {
	return int8(r.U8(offset))
}

// U16 reads an unsigned little endian 16 bit integer.
func (r *Reader) U16(offset int) uint16 {
	b := r.slice(offset, 2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// S16 reads a signed little endian 16 bit integer.
func (r *Reader) S16(offset int) int16 {
	return int16(r.U16(offset))
}

// U32 reads an unsigned little endian 32 bit integer.
func (r *Reader) U32(offset int) uint32 {
	b := r.slice(offset, 4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// S32 reads a signed little endian 32 bit integer.
func (r *Reader) S32(offset int) int32 {
	return int32(r.U32(offset))
}

// Bytes returns a copy of n bytes at offset.
func (r *Reader) Bytes(offset, n int) []byte {
	b := r.slice(offset, n)
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}

// Magic returns whether the bytes at offset equal the magic value. A mismatch
// is not recorded as error, the caller decides how to report it.
func (r *Reader) Magic(offset int, magic []byte) bool {
	b := r.slice(offset, len(magic))
	if b == nil {
		return false
	}
	return string(b) == string(magic)
}

func (r *Reader) slice(offset, n int) []byte {
	if r.err != nil {
		return nil
	}
	if offset < 0 || n < 0 || offset+n > len(r.data) {
		r.err = dse.TruncatedError(r.name, offset, n, len(r.data))
		return nil
	}
	return r.data[offset : offset+n]
}
