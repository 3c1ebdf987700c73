// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input .smd or .swd file"`
	Output string `flag:"o" usage:"output file for the re-serialized data, output directory in batch mode"`
	Batch  string `flag:"batch" usage:"batch process files matching pattern (e.g. *.smd)"`
}

// Flags contains behavior options.
type Flags struct {
	Format string `flag:"f" usage:"input format: smdl, swdl (default: auto-detect)"`
	Verify bool   `flag:"verify" usage:"verify that re-serializing the parsed file recreates the input"`
	Debug  bool   `flag:"debug" usage:"enable debug logging"`
	Quiet  bool   `flag:"q" usage:"quiet mode"`
}

// Program options of the codec tool.
type Program struct {
	Parameters
	Flags
}
