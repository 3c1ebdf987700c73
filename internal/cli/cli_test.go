package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/skytemple/dsecodec/internal/detector"
	"github.com/skytemple/dsecodec/internal/options"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "positional input",
			args: []string{"prog", "bgm0001.smd"},
			want: options.Program{Parameters: options.Parameters{Input: "bgm0001.smd"}},
		},
		{
			name: "input flag",
			args: []string{"prog", "-i", "bank.swd", "-o", "out.swd"},
			want: options.Program{Parameters: options.Parameters{Input: "bank.swd", Output: "out.swd"}},
		},
		{
			name: "format short name",
			args: []string{"prog", "-f", "SWD", "-verify", "bank.bin"},
			want: options.Program{
				Parameters: options.Parameters{Input: "bank.bin"},
				Flags:      options.Flags{Format: "swdl", Verify: true},
			},
		},
		{
			name: "batch",
			args: []string{"prog", "-batch", "*.smd", "-q"},
			want: options.Program{
				Parameters: options.Parameters{Batch: "*.smd"},
				Flags:      options.Flags{Quiet: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			got, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantUsage bool
	}{
		{
			name:      "no input",
			args:      []string{"prog"},
			wantUsage: true,
		},
		{
			name:      "flag after input",
			args:      []string{"prog", "song.smd", "-verify"},
			wantUsage: true,
		},
		{
			name: "invalid format",
			args: []string{"prog", "-f", "midi", "song.smd"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			_, err := ParseFlags()
			assert.Error(t, err)
			var usageErr *UsageError
			assert.Equal(t, tt.wantUsage, errors.As(err, &usageErr))
			if !tt.wantUsage {
				assert.True(t, errors.Is(err, detector.ErrUnknownFormat))
			}
		})
	}
}

func TestNormalizeOptions(t *testing.T) {
	opts := options.Program{Flags: options.Flags{Format: "SMD"}}
	assert.NoError(t, normalizeOptions(&opts))
	assert.Equal(t, "smdl", opts.Format)

	opts = options.Program{}
	assert.NoError(t, normalizeOptions(&opts))
	assert.Equal(t, "", opts.Format)
}
