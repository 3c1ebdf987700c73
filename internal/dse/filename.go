package dse

import (
	"fmt"
)

const (
	// FilenameSize is the size of an embedded filename field in bytes.
	FilenameSize = 16
	// MaxFilenameLength is the maximum number of characters of an embedded filename.
	MaxFilenameLength = FilenameSize - 1

	padByteAA = 0xAA
	padByteFF = 0xFF
)

// Filename is an ASCII filename stored in a fixed 16 byte field. The string is
// NUL terminated and the rest of the field is filled with 0xAA or 0xFF.
type Filename struct {
	Name string
	// PadAA is set when the padding after the terminator is 0xAA, otherwise 0xFF is used.
	PadAA bool
}

// NewFilename returns a filename that uses 0xAA padding.
func NewFilename(name string) Filename {
	return Filename{Name: name, PadAA: true}
}

// FilenameFromBytes decodes a filename field and detects the padding byte
// that was used.
func FilenameFromBytes(data []byte) (Filename, error) {
	if len(data) != FilenameSize {
		return Filename{}, TruncatedError("filename", 0, FilenameSize, len(data))
	}

	end := -1
	for i, b := range data {
		if b == 0 {
			end = i
			break
		}
	}
	if end < 0 {
		return Filename{}, NewFormatError("filename", "NUL terminator", "none")
	}

	name := make([]byte, end)
	for i, b := range data[:end] {
		if b > 0x7F {
			return Filename{}, NewFormatError("filename", "ASCII character", fmt.Sprintf("0x%02x at %d", b, i))
		}
		name[i] = b
	}

	// a name of 15 characters has no padding, use the common pad byte for it
	f := Filename{Name: string(name), PadAA: true}
	padding := data[end+1:]
	if len(padding) == 0 {
		return f, nil
	}

	pad := padding[0]
	if pad != padByteAA && pad != padByteFF {
		return Filename{}, NewFormatError("filename padding", "0xaa or 0xff", fmt.Sprintf("0x%02x", pad))
	}
	for i, b := range padding {
		if b != pad {
			return Filename{}, NewFormatError("filename padding",
				fmt.Sprintf("0x%02x", pad), fmt.Sprintf("0x%02x at %d", b, end+1+i))
		}
	}
	f.PadAA = pad == padByteAA
	return f, nil
}

// Bytes encodes the filename using the padding convention stored in the filename.
func (f Filename) Bytes() ([]byte, error) {
	return f.ToBytes(f.PadAA)
}

// ToBytes encodes the filename into a 16 byte field using 0xAA padding if
// padAA is set, otherwise 0xFF padding.
func (f Filename) ToBytes(padAA bool) ([]byte, error) {
	if len(f.Name) > MaxFilenameLength {
		return nil, UnsupportedError("filename length", len(f.Name), MaxFilenameLength)
	}

	pad := byte(padByteFF)
	if padAA {
		pad = padByteAA
	}

	data := make([]byte, FilenameSize)
	for i := 0; i < len(f.Name); i++ {
		c := f.Name[i]
		if c == 0 || c > 0x7F {
			return nil, UnsupportedError("filename character", fmt.Sprintf("0x%02x", c), "printable ASCII")
		}
		data[i] = c
	}
	data[len(f.Name)] = 0
	for i := len(f.Name) + 1; i < FilenameSize; i++ {
		data[i] = pad
	}
	return data, nil
}

func (f Filename) String() string {
	return f.Name
}
