// Package verification verifies that re-serializing a parsed file recreates the input.
package verification

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
	"github.com/skytemple/dsecodec/internal/smdl"
	"github.com/skytemple/dsecodec/internal/swdl"
)

const maxLoggedMismatches = 10

// VerifySmdl verifies that the sequence serializes to the exact input and
// that parsing the serialized data again results in the same sequence.
func VerifySmdl(logger *log.Logger, input []byte, model *smdl.Smdl) error {
	output, err := smdl.ToBytes(model)
	if err != nil {
		return fmt.Errorf("writing smdl: %w", err)
	}
	if err := checkBufferEqual(logger, input, output); err != nil {
		return fmt.Errorf("serialized smdl mismatch: %w", err)
	}

	reparsed, err := smdl.FromBytes(output)
	if err != nil {
		return fmt.Errorf("parsing serialized smdl: %w", err)
	}
	if err := compareSmdlDetails(model, reparsed); err != nil {
		return fmt.Errorf("comparing smdl details: %w", err)
	}
	return nil
}

// VerifySwdl verifies that the wave bank serializes to the exact input and
// that parsing the serialized data again results in the same wave bank.
func VerifySwdl(logger *log.Logger, input []byte, model *swdl.Swdl) error {
	output, err := swdl.ToBytes(model)
	if err != nil {
		return fmt.Errorf("writing swdl: %w", err)
	}
	if err := checkBufferEqual(logger, input, output); err != nil {
		return fmt.Errorf("serialized swdl mismatch: %w", err)
	}

	reparsed, err := swdl.FromBytes(output)
	if err != nil {
		return fmt.Errorf("parsing serialized swdl: %w", err)
	}
	if err := compareSwdlDetails(logger, model, reparsed); err != nil {
		return fmt.Errorf("comparing swdl details: %w", err)
	}
	return nil
}

func checkBufferEqual(logger *log.Logger, input, output []byte) error {
	if len(input) != len(output) {
		return fmt.Errorf("mismatched lengths, %d != %d", len(input), len(output))
	}

	var diffs uint64
	for i := range input {
		if input[i] == output[i] {
			continue
		}

		diffs++
		if diffs < maxLoggedMismatches {
			logger.Error("Offset mismatch",
				log.Hex("offset", i),
				log.Hex("expected", input[i]),
				log.Hex("got", output[i]))
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d offset mismatches", diffs)
}

func compareSmdlDetails(expected, actual *smdl.Smdl) error {
	if expected.Header != actual.Header {
		return fmt.Errorf("header mismatch, expected %+v but got %+v", expected.Header, actual.Header)
	}
	if expected.Song.TPQN != actual.Song.TPQN {
		return fmt.Errorf("tpqn mismatch, expected %d but got %d", expected.Song.TPQN, actual.Song.TPQN)
	}
	if len(expected.Tracks) != len(actual.Tracks) {
		return fmt.Errorf("track count mismatch, expected %d but got %d", len(expected.Tracks), len(actual.Tracks))
	}
	for i, track := range expected.Tracks {
		other := actual.Tracks[i]
		if track.Preamble != other.Preamble {
			return fmt.Errorf("track %d preamble mismatch, expected %+v but got %+v", i, track.Preamble, other.Preamble)
		}
		if len(track.Events) != len(other.Events) {
			return fmt.Errorf("track %d event count mismatch, expected %d but got %d",
				i, len(track.Events), len(other.Events))
		}
	}
	if expected.EOC != actual.EOC {
		return fmt.Errorf("eoc mismatch, expected %+v but got %+v", expected.EOC, actual.EOC)
	}
	return nil
}

func compareSwdlDetails(logger *log.Logger, expected, actual *swdl.Swdl) error {
	if expected.Header.Filename != actual.Header.Filename {
		return fmt.Errorf("filename mismatch, expected %s but got %s", expected.Header.Filename, actual.Header.Filename)
	}
	if len(expected.Wavi.SampleInfoTable) != len(actual.Wavi.SampleInfoTable) {
		return fmt.Errorf("wavi slot count mismatch, expected %d but got %d",
			len(expected.Wavi.SampleInfoTable), len(actual.Wavi.SampleInfoTable))
	}
	if (expected.Prgi == nil) != (actual.Prgi == nil) {
		return fmt.Errorf("prgi presence mismatch, expected %t but got %t", expected.Prgi != nil, actual.Prgi != nil)
	}
	if expected.Prgi != nil && len(expected.Prgi.ProgramTable) != len(actual.Prgi.ProgramTable) {
		return fmt.Errorf("prgi slot count mismatch, expected %d but got %d",
			len(expected.Prgi.ProgramTable), len(actual.Prgi.ProgramTable))
	}
	if expected.Kgrp != nil && len(expected.Kgrp.Keygroups) != len(actual.Kgrp.Keygroups) {
		return fmt.Errorf("keygroup count mismatch, expected %d but got %d",
			len(expected.Kgrp.Keygroups), len(actual.Kgrp.Keygroups))
	}
	if err := checkBufferEqual(logger, pcmdData(expected), pcmdData(actual)); err != nil {
		return fmt.Errorf("pcmd data mismatch: %w", err)
	}
	if len(pcmdData(expected)) == 0 && expected.Header.PcmdLen.External &&
		expected.Header.PcmdLen != actual.Header.PcmdLen {

		return fmt.Errorf("external pcmd reference mismatch, expected 0x%08x but got 0x%08x",
			expected.Header.PcmdLen.Value(), actual.Header.PcmdLen.Value())
	}
	return nil
}

func pcmdData(s *swdl.Swdl) []byte {
	if s.Pcmd == nil {
		return nil
	}
	return s.Pcmd.Data
}
