// Package pipeline orchestrates the codec workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
	"github.com/skytemple/dsecodec/internal/detector"
	"github.com/skytemple/dsecodec/internal/loader"
	"github.com/skytemple/dsecodec/internal/options"
	"github.com/skytemple/dsecodec/internal/smdl"
	"github.com/skytemple/dsecodec/internal/swdl"
	"github.com/skytemple/dsecodec/internal/verification"
)

// Result contains the parsed model of the processed file. Only the field
// matching Format is set.
type Result struct {
	Format detector.Format
	Smdl   *smdl.Smdl
	Swdl   *swdl.Swdl
	// Output is the re-serialized file data.
	Output []byte
}

// Pipeline orchestrates the complete load, parse, verify and write workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new codec pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute runs the complete pipeline for the input file of the options.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program) (*Result, error) {
	data, err := p.loader.Load(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("loading file: %w", err)
	}
	return p.ExecuteWithData(ctx, data, opts)
}

// ExecuteWithData runs the pipeline with pre-loaded file data.
// This is useful for testing and programmatic usage where the data is already in memory.
func (p *Pipeline) ExecuteWithData(ctx context.Context, data []byte, opts options.Program) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format, err := p.detector.Detect(opts, data)
	if err != nil {
		return nil, fmt.Errorf("detecting format: %w", err)
	}

	result := &Result{
		Format: format,
	}
	switch format {
	case detector.SMDL:
		err = p.processSmdl(data, opts, result)
	case detector.SWDL:
		err = p.processSwdl(data, opts, result)
	default:
		err = fmt.Errorf("unsupported format '%s'", format)
	}
	if err != nil {
		return nil, err
	}

	if opts.Verify {
		p.logger.Info("Verification successful", log.String("file", opts.Input))
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, result.Output, 0644); err != nil {
			return nil, fmt.Errorf("writing output file %s: %w", opts.Output, err)
		}
		p.logger.Debug("Wrote output file",
			log.String("file", opts.Output),
			log.Int("size", len(result.Output)))
	}
	return result, nil
}

func (p *Pipeline) processSmdl(data []byte, opts options.Program, result *Result) error {
	model, err := smdl.FromBytes(data)
	if err != nil {
		return fmt.Errorf("parsing smdl: %w", err)
	}
	result.Smdl = model
	p.printSmdlInfo(opts, model)

	if opts.Verify {
		if err := verification.VerifySmdl(p.logger, data, model); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
	}

	result.Output, err = smdl.ToBytes(model)
	if err != nil {
		return fmt.Errorf("writing smdl: %w", err)
	}
	return nil
}

func (p *Pipeline) processSwdl(data []byte, opts options.Program, result *Result) error {
	model, err := swdl.FromBytes(data)
	if err != nil {
		return fmt.Errorf("parsing swdl: %w", err)
	}
	result.Swdl = model
	p.printSwdlInfo(opts, model)

	if opts.Verify {
		if err := verification.VerifySwdl(p.logger, data, model); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
	}

	result.Output, err = swdl.ToBytes(model)
	if err != nil {
		return fmt.Errorf("writing swdl: %w", err)
	}
	return nil
}

// printSmdlInfo prints information about the sequence being processed.
func (p *Pipeline) printSmdlInfo(opts options.Program, model *smdl.Smdl) {
	if opts.Quiet {
		return
	}

	events, channelCount := 0, 0
	trackIDs := set.New[uint8]()
	channels := set.New[uint8]()
	for _, track := range model.Tracks {
		events += len(track.Events)
		if trackIDs.Contains(track.Preamble.TrackID) {
			p.logger.Warn("Duplicate track id", log.Uint8("track", track.Preamble.TrackID))
		}
		trackIDs.Add(track.Preamble.TrackID)
		if !channels.Contains(track.Preamble.ChannelID) {
			channels.Add(track.Preamble.ChannelID)
			channelCount++
		}
	}

	p.logger.Info("Processing SMDL sequence",
		log.String("file", opts.Input),
		log.String("name", model.Header.Filename.Name),
		log.Hex("version", model.Header.Version),
		log.Uint16("tpqn", model.Song.TPQN),
		log.Int("tracks", len(model.Tracks)),
		log.Int("channels", channelCount),
		log.Int("events", events),
	)
}

// printSwdlInfo prints information about the wave bank being processed.
func (p *Pipeline) printSwdlInfo(opts options.Program, model *swdl.Swdl) {
	if opts.Quiet {
		return
	}

	samples := model.Wavi.Samples()
	sampleIDs := set.New[uint16]()
	for _, sample := range samples {
		sampleIDs.Add(sample.ID)
	}

	var programs []*swdl.Program
	keygroups := 0
	if model.Prgi != nil {
		programs = model.Prgi.Programs()
	}
	if model.Kgrp != nil {
		keygroups = len(model.Kgrp.Keygroups)
	}

	pcmd := "none"
	switch {
	case model.Pcmd != nil:
		pcmd = fmt.Sprintf("%d bytes", len(model.Pcmd.Data))
	case model.Header.PcmdLen.External:
		pcmd = fmt.Sprintf("external 0x%04x", model.Header.PcmdLen.Reference)
	}

	p.logger.Info("Processing SWDL wave bank",
		log.String("file", opts.Input),
		log.String("name", model.Header.Filename.Name),
		log.Hex("version", model.Header.Version),
		log.Int("samples", len(samples)),
		log.Int("programs", len(programs)),
		log.Int("keygroups", keygroups),
		log.String("pcmd", pcmd),
	)

	// samples of splits are resolved against the main bank when the sample
	// data is stored externally
	if model.Pcmd == nil {
		return
	}
	for _, program := range programs {
		for _, split := range program.Splits {
			if !sampleIDs.Contains(split.SampleID) {
				p.logger.Warn("Split references missing sample",
					log.Uint16("program", program.ID),
					log.Uint8("split", split.ID),
					log.Uint16("sample", split.SampleID))
			}
		}
	}
}
