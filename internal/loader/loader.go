// Package loader handles input file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// maxFileSize limits the size of loaded files, all length fields of the
// supported formats are 32 bit.
const maxFileSize int64 = 1<<32 - 1

// ErrEmptyFile is returned for input files without content.
var ErrEmptyFile = errors.New("empty file")

// Loader handles loading input files from disk.
type Loader struct{}

// New creates a new file loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the complete input file into memory.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	data, err := l.LoadFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("loading file %s: %w", path, err)
	}
	return data, nil
}

// LoadFromReader reads all data of the reader.
func (l *Loader) LoadFromReader(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(reader, maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading data: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if int64(len(data)) > maxFileSize {
		return nil, fmt.Errorf("file size exceeds %d bytes", maxFileSize)
	}
	return data, nil
}
