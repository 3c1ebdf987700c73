// Package dse contains the types shared by the DSE sound format codecs.
package dse

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat is matched by every error about a magic value, reserved region
	// or structural invariant that does not hold.
	ErrFormat = errors.New("format error")
	// ErrTruncatedData is returned when a read would go past the declared or
	// available data length.
	ErrTruncatedData = errors.New("truncated data")
	// ErrUnsupportedValue is returned by encoders for values the format can not represent.
	ErrUnsupportedValue = errors.New("unsupported value")
	// ErrUnknownOpcode is returned when a track event opcode is not in the opcode table.
	ErrUnknownOpcode = errors.New("unknown opcode")
)

// FormatError describes a field whose content does not match the expected value.
type FormatError struct {
	Field    string
	Expected any
	Actual   any
}

// NewFormatError returns a new format error for the given field.
func NewFormatError(field string, expected, actual any) *FormatError {
	return &FormatError{
		Field:    field,
		Expected: expected,
		Actual:   actual,
	}
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: field %s expected %v but got %v", ErrFormat, e.Field, e.Expected, e.Actual)
}

// Is makes the error match ErrFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// TruncatedError returns an error matching ErrTruncatedData for a read of
// size bytes at offset in a buffer of the given length.
func TruncatedError(what string, offset, size, length int) error {
	return fmt.Errorf("%w: %s needs %d bytes at offset 0x%x but only 0x%x are available",
		ErrTruncatedData, what, size, offset, length)
}

// UnsupportedError returns an error matching ErrUnsupportedValue.
func UnsupportedError(what string, value any, limit any) error {
	return fmt.Errorf("%w: %s value %v exceeds %v", ErrUnsupportedValue, what, value, limit)
}
