package loader

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	t.Run("load file", func(t *testing.T) {
		data := []byte("smdl\x00\x00\x00\x00")
		tmpFile := createTempFile(t, data)

		loader := New()
		loaded, err := loader.Load(tmpFile)
		assert.NoError(t, err)
		assert.Equal(t, data, loaded)
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		loader := New()
		_, err := loader.Load("/nonexistent/file.smd")
		assert.Error(t, err)
	})

	t.Run("error on empty file", func(t *testing.T) {
		tmpFile := createTempFile(t, nil)

		loader := New()
		_, err := loader.Load(tmpFile)
		assert.True(t, errors.Is(err, ErrEmptyFile))
	})
}

func TestLoadFromReader(t *testing.T) {
	loader := New()
	data, err := loader.LoadFromReader(bytes.NewReader([]byte{0x01, 0x02}))
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, data)

	_, err = loader.LoadFromReader(bytes.NewReader(nil))
	assert.True(t, errors.Is(err, ErrEmptyFile))
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.bin")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
