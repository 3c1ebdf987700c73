// Package codec provides bounds checked little and big endian integer access
// to byte buffers.
package codec

import (
	"fmt"

	"github.com/skytemple/dsecodec/internal/dse"
	"golang.org/x/exp/constraints"
)

const maxWidth = 4

// ReadUint reads an unsigned little endian integer of 1 to 4 bytes at offset.
func ReadUint(buf []byte, offset, width int) (uint32, error) {
	if err := checkAccess(buf, offset, width); err != nil {
		return 0, err
	}
	var value uint32
	for i := width - 1; i >= 0; i-- {
		value = value<<8 | uint32(buf[offset+i])
	}
	return value, nil
}

// ReadUintBE reads an unsigned big endian integer of 1 to 4 bytes at offset.
func ReadUintBE(buf []byte, offset, width int) (uint32, error) {
	if err := checkAccess(buf, offset, width); err != nil {
		return 0, err
	}
	var value uint32
	for i := 0; i < width; i++ {
		value = value<<8 | uint32(buf[offset+i])
	}
	return value, nil
}

// ReadSint reads a signed little endian integer of 1 to 4 bytes at offset and
// sign extends it from the given width.
func ReadSint(buf []byte, offset, width int) (int32, error) {
	value, err := ReadUint(buf, offset, width)
	if err != nil {
		return 0, err
	}
	return signExtend(value, width), nil
}

// ReadSintBE reads a signed big endian integer of 1 to 4 bytes at offset and
// sign extends it from the given width.
func ReadSintBE(buf []byte, offset, width int) (int32, error) {
	value, err := ReadUintBE(buf, offset, width)
	if err != nil {
		return 0, err
	}
	return signExtend(value, width), nil
}

// WriteUint writes an unsigned little endian integer of 1 to 4 bytes at offset.
func WriteUint(buf []byte, offset, width int, value uint32) error {
	if err := checkAccess(buf, offset, width); err != nil {
		return err
	}
	if !FitsUnsigned(value, width*8) {
		return dse.UnsupportedError(fmt.Sprintf("%d byte unsigned", width), value, maxUnsigned(width))
	}
	for i := 0; i < width; i++ {
		buf[offset+i] = byte(value >> (8 * i))
	}
	return nil
}

// WriteUintBE writes an unsigned big endian integer of 1 to 4 bytes at offset.
func WriteUintBE(buf []byte, offset, width int, value uint32) error {
	if err := checkAccess(buf, offset, width); err != nil {
		return err
	}
	if !FitsUnsigned(value, width*8) {
		return dse.UnsupportedError(fmt.Sprintf("%d byte unsigned", width), value, maxUnsigned(width))
	}
	for i := 0; i < width; i++ {
		buf[offset+width-1-i] = byte(value >> (8 * i))
	}
	return nil
}

// WriteSint writes a signed little endian integer of 1 to 4 bytes at offset.
func WriteSint(buf []byte, offset, width int, value int32) error {
	if err := checkAccess(buf, offset, width); err != nil {
		return err
	}
	if !FitsSigned(value, width*8) {
		return dse.UnsupportedError(fmt.Sprintf("%d byte signed", width), value, "signed range")
	}
	u := uint32(value)
	for i := 0; i < width; i++ {
		buf[offset+i] = byte(u >> (8 * i))
	}
	return nil
}

// WriteSintBE writes a signed big endian integer of 1 to 4 bytes at offset.
func WriteSintBE(buf []byte, offset, width int, value int32) error {
	if err := checkAccess(buf, offset, width); err != nil {
		return err
	}
	if !FitsSigned(value, width*8) {
		return dse.UnsupportedError(fmt.Sprintf("%d byte signed", width), value, "signed range")
	}
	u := uint32(value)
	for i := 0; i < width; i++ {
		buf[offset+width-1-i] = byte(u >> (8 * i))
	}
	return nil
}

// AlignUp rounds n up to the next multiple of align.
func AlignUp[T constraints.Integer](n, align T) T {
	if rem := n % align; rem != 0 {
		return n + align - rem
	}
	return n
}

// FitsUnsigned returns whether v is representable as an unsigned integer of the given bit count.
func FitsUnsigned[T constraints.Integer](v T, bits int) bool {
	if v < 0 {
		return false
	}
	if bits >= 64 {
		return true
	}
	return uint64(v) < 1<<uint(bits)
}

// FitsSigned returns whether v is representable as a signed integer of the given bit count.
func FitsSigned[T constraints.Signed](v T, bits int) bool {
	if bits >= 64 {
		return true
	}
	limit := int64(1) << uint(bits-1)
	return int64(v) >= -limit && int64(v) < limit
}

func checkAccess(buf []byte, offset, width int) error {
	if width < 1 || width > maxWidth {
		return dse.UnsupportedError("integer width", width, maxWidth)
	}
	if offset < 0 || offset+width > len(buf) {
		return dse.TruncatedError(fmt.Sprintf("%d byte integer", width), offset, width, len(buf))
	}
	return nil
}

func signExtend(value uint32, width int) int32 {
	shift := uint(32 - 8*width)
	return int32(value<<shift) >> shift
}

func maxUnsigned(width int) uint64 {
	return 1<<uint(8*width) - 1
}
