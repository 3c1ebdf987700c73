// Package detector handles input format detection.
package detector

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/skytemple/dsecodec/internal/options"
)

// Format is a supported input file format.
type Format string

const (
	// SMDL is a music sequence file.
	SMDL Format = "smdl"
	// SWDL is a wave bank file.
	SWDL Format = "swdl"
)

// ErrUnknownFormat is returned when the format can not be determined.
var ErrUnknownFormat = errors.New("unknown file format")

func (f Format) String() string {
	return string(f)
}

// FormatFromString returns the format for a format name.
func FormatFromString(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case SMDL:
		return SMDL, nil
	case SWDL:
		return SWDL, nil
	default:
		return "", fmt.Errorf("%w '%s', valid options: %s, %s", ErrUnknownFormat, s, SMDL, SWDL)
	}
}

// Detector handles format detection from file content, file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new format detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the input format. An explicitly specified format in the
// options takes precedence, otherwise the magic value at the start of the
// data is checked before falling back to the input filename extension.
func (d *Detector) Detect(opts options.Program, data []byte) (Format, error) {
	if opts.Format != "" {
		return FormatFromString(opts.Format)
	}

	if format, ok := detectFromMagic(data); ok {
		d.logger.Debug("Detected format from file content",
			log.Stringer("format", format),
			log.String("file", opts.Input))
		return format, nil
	}

	format, ok := detectFromFile(opts.Input)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, opts.Input)
	}
	d.logger.Debug("Detected format from file extension",
		log.Stringer("format", format),
		log.String("file", opts.Input))
	return format, nil
}

func detectFromMagic(data []byte) (Format, bool) {
	switch {
	case bytes.HasPrefix(data, []byte(SMDL)):
		return SMDL, true
	case bytes.HasPrefix(data, []byte(SWDL)):
		return SWDL, true
	default:
		return "", false
	}
}

// detectFromFile determines the format based on file extension.
func detectFromFile(filename string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".smd", ".smdl":
		return SMDL, true
	case ".swd", ".swdl":
		return SWDL, true
	default:
		return "", false
	}
}
