package dse

import (
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestFilenameRoundTrip(t *testing.T) {
	names := []string{"", "A", "bgm0001", "TESTSONG", "abcDEF0123456789"[:15]}

	for _, name := range names {
		for _, padAA := range []bool{true, false} {
			data, err := Filename{Name: name}.ToBytes(padAA)
			assert.NoError(t, err)
			assert.Equal(t, FilenameSize, len(data))

			f, err := FilenameFromBytes(data)
			assert.NoError(t, err)
			assert.Equal(t, name, f.Name)
			if len(name) < MaxFilenameLength {
				assert.Equal(t, padAA, f.PadAA)
			}
		}
	}
}

func TestFilenameToBytes(t *testing.T) {
	data, err := NewFilename("SE").Bytes()
	assert.NoError(t, err)
	assert.Equal(t, []byte{'S', 'E', 0, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA}, data)

	data, err = Filename{Name: "SE"}.ToBytes(false)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xFF), data[15])

	_, err = NewFilename(strings.Repeat("X", 16)).Bytes()
	assert.True(t, errors.Is(err, ErrUnsupportedValue))
}

func TestFilenameFromBytesErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{
			name: "no terminator",
			data: []byte(strings.Repeat("A", 16)),
			want: ErrFormat,
		},
		{
			name: "mixed padding",
			data: []byte{'A', 0, 0xAA, 0xAA, 0xFF, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA},
			want: ErrFormat,
		},
		{
			name: "zero padding",
			data: make([]byte, 16),
			want: ErrFormat,
		},
		{
			name: "short field",
			data: []byte{'A', 0},
			want: ErrTruncatedData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FilenameFromBytes(tt.data)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, tt.want))
		})
	}
}

func TestFormatError(t *testing.T) {
	err := NewFormatError("magic", "smdl", "swdl")
	assert.True(t, errors.Is(err, ErrFormat))
	assert.False(t, errors.Is(err, ErrTruncatedData))
	assert.Contains(t, err.Error(), "magic")
}
