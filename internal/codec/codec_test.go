package codec

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/skytemple/dsecodec/internal/dse"
)

func TestReadInts(t *testing.T) {
	buf := []byte{0xFF, 0x34, 0x12, 0x80, 0x00}

	tests := []struct {
		name   string
		offset int
		width  int
		le     uint32
		be     uint32
		signed int32
	}{
		{name: "byte", offset: 0, width: 1, le: 0xFF, be: 0xFF, signed: -1},
		{name: "word", offset: 1, width: 2, le: 0x1234, be: 0x3412, signed: 0x1234},
		{name: "three bytes", offset: 1, width: 3, le: 0x801234, be: 0x341280, signed: -0x7FEDCC},
		{name: "dword", offset: 1, width: 4, le: 0x00801234, be: 0x34128000, signed: 0x00801234},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			le, err := ReadUint(buf, tt.offset, tt.width)
			assert.NoError(t, err)
			assert.Equal(t, tt.le, le)

			be, err := ReadUintBE(buf, tt.offset, tt.width)
			assert.NoError(t, err)
			assert.Equal(t, tt.be, be)

			s, err := ReadSint(buf, tt.offset, tt.width)
			assert.NoError(t, err)
			assert.Equal(t, tt.signed, s)
		})
	}
}

func TestReadSignExtension(t *testing.T) {
	v, err := ReadSint([]byte{0x80}, 0, 1)
	assert.NoError(t, err)
	assert.Equal(t, int32(-128), v)

	v, err = ReadSintBE([]byte{0xFF, 0xFE}, 0, 2)
	assert.NoError(t, err)
	assert.Equal(t, int32(-2), v)
}

func TestAccessErrors(t *testing.T) {
	buf := make([]byte, 4)

	_, err := ReadUint(buf, 3, 2)
	assert.True(t, errors.Is(err, dse.ErrTruncatedData))

	_, err = ReadUint(buf, -1, 1)
	assert.True(t, errors.Is(err, dse.ErrTruncatedData))

	_, err = ReadUint(buf, 0, 5)
	assert.True(t, errors.Is(err, dse.ErrUnsupportedValue))

	err = WriteUint(buf, 0, 1, 0x100)
	assert.True(t, errors.Is(err, dse.ErrUnsupportedValue))

	err = WriteSint(buf, 0, 1, 128)
	assert.True(t, errors.Is(err, dse.ErrUnsupportedValue))

	err = WriteSint(buf, 0, 1, -129)
	assert.True(t, errors.Is(err, dse.ErrUnsupportedValue))
}

func TestWriteInts(t *testing.T) {
	buf := make([]byte, 4)
	assert.NoError(t, WriteUint(buf, 0, 3, 0x123456))
	assert.Equal(t, []byte{0x56, 0x34, 0x12, 0x00}, buf)

	assert.NoError(t, WriteUintBE(buf, 1, 3, 0x123456))
	assert.Equal(t, []byte{0x56, 0x12, 0x34, 0x56}, buf)

	assert.NoError(t, WriteSint(buf, 0, 2, -2))
	assert.Equal(t, []byte{0xFE, 0xFF, 0x34, 0x56}, buf)

	assert.NoError(t, WriteSintBE(buf, 2, 2, -2))
	assert.Equal(t, []byte{0xFE, 0xFF, 0xFF, 0xFE}, buf)

	assert.NoError(t, WriteSintBE(buf, 0, 3, -0x123456))
	value, err := ReadSintBE(buf, 0, 3)
	assert.NoError(t, err)
	assert.Equal(t, int32(-0x123456), value)

	err = WriteSintBE(buf, 0, 1, 128)
	assert.True(t, errors.Is(err, dse.ErrUnsupportedValue))
}

func TestAlignUp(t *testing.T) {
	assert.Equal(t, 0, AlignUp(0, 16))
	assert.Equal(t, 16, AlignUp(1, 16))
	assert.Equal(t, 16, AlignUp(16, 16))
	assert.Equal(t, 32, AlignUp(28, 16))
	assert.Equal(t, uint32(8), AlignUp(uint32(5), 4))
}

func TestReader(t *testing.T) {
	r := NewReader("record", []byte{0x01, 0x02, 0x03, 0x04, 0xFF})
	assert.Equal(t, uint16(0x0201), r.U16(0))
	assert.Equal(t, uint32(0x04030201), r.U32(0))
	assert.Equal(t, int8(-1), r.S8(4))
	assert.True(t, r.Magic(1, []byte{0x02, 0x03}))
	assert.False(t, r.Magic(1, []byte{0x03}))
	assert.NoError(t, r.Err())

	assert.Equal(t, uint32(0), r.U32(2))
	assert.True(t, errors.Is(r.Err(), dse.ErrTruncatedData))
	assert.ErrorContains(t, r.Err(), "record")

	// reads after the first error return zero values
	assert.Equal(t, uint8(0), r.U8(0))
}

func TestWriter(t *testing.T) {
	w := NewWriter(0)
	w.U8(1)
	w.U16(0x0302)
	w.S8(-1)
	w.Align(8, 0xAA)
	assert.Equal(t, 8, w.Len())
	w.U32(0x11223344)
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0xFF, 0xAA, 0xAA, 0xAA, 0xAA, 0x44, 0x33, 0x22, 0x11}, w.Data())
}
