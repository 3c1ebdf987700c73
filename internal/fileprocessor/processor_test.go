package fileprocessor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/skytemple/dsecodec/internal/options"
	"github.com/skytemple/dsecodec/internal/smdl"
)

func TestGetFilesToProcess(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"a.smd", "b.smd", "c.swd"} {
		assert.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), []byte{0}, 0600))
	}

	opts := options.Program{
		Parameters: options.Parameters{Batch: filepath.Join(tmpDir, "*.smd")},
	}
	files, err := GetFilesToProcess(&opts)
	assert.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(tmpDir, "a.smd"), filepath.Join(tmpDir, "b.smd")}, files)

	opts = options.Program{
		Parameters: options.Parameters{Input: "song.smd"},
	}
	files, err = GetFilesToProcess(&opts)
	assert.NoError(t, err)
	assert.Equal(t, []string{"song.smd"}, files)

	opts = options.Program{
		Parameters: options.Parameters{Batch: "[invalid"},
	}
	_, err = GetFilesToProcess(&opts)
	assert.Error(t, err)
}

func TestGenerateOutputFilename(t *testing.T) {
	assert.Equal(t, "", GenerateOutputFilename("music/bgm0001.smd", ""))
	assert.Equal(t, filepath.Join("out", "bgm0001.smd"), GenerateOutputFilename("music/bgm0001.smd", "out"))
}

func TestProcessFile(t *testing.T) {
	logger := log.NewTestLogger(t)
	tmpDir := t.TempDir()

	data, err := smdl.ToBytes(smdl.New("bgm0004"))
	assert.NoError(t, err)
	input := filepath.Join(tmpDir, "bgm0004.smd")
	assert.NoError(t, os.WriteFile(input, data, 0600))

	opts := options.Program{
		Parameters: options.Parameters{Input: input},
		Flags:      options.Flags{Verify: true},
	}
	assert.NoError(t, ProcessFile(context.Background(), logger, opts))

	assert.NoError(t, os.WriteFile(input, data[:70], 0600))
	err = ProcessFile(context.Background(), logger, opts)
	assert.ErrorContains(t, err, input)
}
