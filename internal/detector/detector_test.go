package detector

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/skytemple/dsecodec/internal/options"
)

func TestDetect(t *testing.T) {
	logger := log.NewTestLogger(t)
	d := New(logger)

	tests := []struct {
		name       string
		formatOpt  string
		inputFile  string
		data       []byte
		wantFormat Format
		wantErr    bool
	}{
		{
			name:       "explicit smdl format option",
			formatOpt:  "smdl",
			inputFile:  "bank.swd",
			data:       []byte("swdl"),
			wantFormat: SMDL,
		},
		{
			name:       "explicit swdl format option",
			formatOpt:  "SWDL",
			inputFile:  "song.bin",
			wantFormat: SWDL,
		},
		{
			name:      "invalid format option",
			formatOpt: "midi",
			inputFile: "song.smd",
			wantErr:   true,
		},
		{
			name:       "detect from smdl magic",
			inputFile:  "song.bin",
			data:       []byte("smdl\x00\x00\x00\x00"),
			wantFormat: SMDL,
		},
		{
			name:       "magic takes precedence over extension",
			inputFile:  "bank.smd",
			data:       []byte("swdl\x00\x00\x00\x00"),
			wantFormat: SWDL,
		},
		{
			name:       "detect from .smd extension",
			inputFile:  "bgm0001.smd",
			data:       []byte{0x01, 0x02},
			wantFormat: SMDL,
		},
		{
			name:       "detect from .swd extension",
			inputFile:  "BGM0001.SWD",
			wantFormat: SWDL,
		},
		{
			name:      "unknown extension and content",
			inputFile: "song.bin",
			data:      []byte("RIFF"),
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options.Program{
				Parameters: options.Parameters{Input: tt.inputFile},
				Flags:      options.Flags{Format: tt.formatOpt},
			}

			got, err := d.Detect(opts, tt.data)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnknownFormat))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantFormat, got)
		})
	}
}

func TestDetectFromFile(t *testing.T) {
	tests := []struct {
		name       string
		filename   string
		wantFormat Format
		wantOK     bool
	}{
		{name: ".smd extension", filename: "bgm0001.smd", wantFormat: SMDL, wantOK: true},
		{name: ".SMD extension (uppercase)", filename: "BGM0001.SMD", wantFormat: SMDL, wantOK: true},
		{name: ".swd extension", filename: "bgm0001.swd", wantFormat: SWDL, wantOK: true},
		{name: ".swdl extension", filename: "bank.swdl", wantFormat: SWDL, wantOK: true},
		{name: "no extension", filename: "song"},
		{name: ".bin extension", filename: "song.bin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := detectFromFile(tt.filename)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantFormat, got)
		})
	}
}
