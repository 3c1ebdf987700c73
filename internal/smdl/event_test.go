package smdl

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/skytemple/dsecodec/internal/dse"
)

func TestPlayNoteBytes(t *testing.T) {
	tests := []struct {
		name     string
		note     PlayNote
		expected []byte
	}{
		{
			name:     "no duration",
			note:     PlayNote{Velocity: 0x7F, Note: 5},
			expected: []byte{0x7F, 0x25},
		},
		{
			name:     "lowest octave",
			note:     PlayNote{Velocity: 0x10, OctaveMod: -2, Note: 0x0B},
			expected: []byte{0x10, 0x0B},
		},
		{
			name:     "1 byte duration",
			note:     PlayNote{Velocity: 0x7F, Note: 5, HasKeyDownDuration: true, KeyDownDuration: 0x30},
			expected: []byte{0x7F, 0x65, 0x30},
		},
		{
			name:     "zero duration",
			note:     PlayNote{Velocity: 1, OctaveMod: 1, HasKeyDownDuration: true},
			expected: []byte{0x01, 0x70, 0x00},
		},
		{
			name:     "2 byte duration",
			note:     PlayNote{Velocity: 0x40, Note: 1, HasKeyDownDuration: true, KeyDownDuration: 0x1234},
			expected: []byte{0x40, 0xA1, 0x12, 0x34},
		},
		{
			name:     "maximum duration",
			note:     PlayNote{Velocity: 0x40, Note: 1, HasKeyDownDuration: true, KeyDownDuration: MaxKeyDownDuration},
			expected: []byte{0x40, 0xE1, 0xFF, 0xFF, 0xFF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.note.Bytes()
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, data)

			events, err := decodeEvents(data)
			assert.NoError(t, err)
			assert.Len(t, events, 1)
			assert.Equal(t, Event(tt.note), events[0])
		})
	}
}

func TestPlayNoteAllFieldValues(t *testing.T) {
	durations := []struct {
		set   bool
		value uint32
		size  int
	}{
		{set: false, size: 2},
		{set: true, value: 0, size: 3},
		{set: true, value: 0xFF, size: 3},
		{set: true, value: 0x100, size: 4},
		{set: true, value: 0xFFFF, size: 4},
		{set: true, value: 0x10000, size: 5},
		{set: true, value: MaxKeyDownDuration, size: 5},
	}

	for velocity := 0; velocity <= maxVelocity; velocity++ {
		for octave := minOctaveMod; octave <= maxOctaveMod; octave++ {
			for note := 0; note <= maxNote; note++ {
				for _, duration := range durations {
					event := PlayNote{
						Velocity:           uint8(velocity),
						OctaveMod:          int8(octave),
						Note:               uint8(note),
						HasKeyDownDuration: duration.set,
						KeyDownDuration:    duration.value,
					}
					data, err := event.Bytes()
					assert.NoError(t, err)
					assert.Len(t, data, duration.size)

					events, err := decodeEvents(data)
					assert.NoError(t, err)
					assert.Equal(t, []Event{event}, events)
				}
			}
		}
	}
}

func TestPlayNoteBytesErrors(t *testing.T) {
	tests := []struct {
		name string
		note PlayNote
	}{
		{name: "duration too large", note: PlayNote{HasKeyDownDuration: true, KeyDownDuration: MaxKeyDownDuration + 1}},
		{name: "velocity", note: PlayNote{Velocity: 0x80}},
		{name: "octave too low", note: PlayNote{OctaveMod: -3}},
		{name: "octave too high", note: PlayNote{OctaveMod: 2}},
		{name: "note", note: PlayNote{Note: 0x10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.note.Bytes()
			assert.True(t, errors.Is(err, dse.ErrUnsupportedValue))
		})
	}
}

func TestPause(t *testing.T) {
	p := Pause{Value: 0x83}
	assert.Equal(t, 48, p.Ticks())
	data, err := p.Bytes()
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x83}, data)

	assert.Equal(t, 2, Pause{Value: 0x8F}.Ticks())

	_, err = Pause{Value: 0x90}.Bytes()
	assert.True(t, errors.Is(err, dse.ErrUnsupportedValue))
	assert.Equal(t, 0, Pause{Value: 0x90}.Ticks())
}

func TestSpecialBytes(t *testing.T) {
	data, err := Special{Op: 0xA4, Params: []byte{0x78}}.Bytes()
	assert.NoError(t, err)
	assert.Equal(t, []byte{0xA4, 0x78}, data)

	data, err = Special{Op: TrackEnd}.Bytes()
	assert.NoError(t, err)
	assert.Equal(t, []byte{TrackEnd}, data)

	_, err = Special{Op: 0xA4}.Bytes()
	assert.True(t, errors.Is(err, dse.ErrUnsupportedValue))

	_, err = Special{Op: 0xA2}.Bytes()
	assert.True(t, errors.Is(err, dse.ErrUnknownOpcode))

	info, ok := Special{Op: 0xDC}.Info()
	assert.True(t, ok)
	assert.Equal(t, 5, info.Params)
}

func TestDecodeEvents(t *testing.T) {
	data := []byte{
		0x7F, 0x65, 0x30, // note with duration
		0x83,       // pause
		0xAB, 0x00, // skipped
		0xA4, 0x78, // tempo
		0xCB, 0x01, 0x02, // skipped
		TrackEnd,
	}

	events, err := decodeEvents(data)
	assert.NoError(t, err)
	expected := []Event{
		PlayNote{Velocity: 0x7F, Note: 5, HasKeyDownDuration: true, KeyDownDuration: 0x30},
		Pause{Value: 0x83},
		Special{Op: 0xA4, Params: []byte{0x78}},
		Special{Op: TrackEnd},
	}
	assert.Equal(t, expected, events)

	encoded, err := encodeEvents(events)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x7F, 0x65, 0x30, 0x83, 0xA4, 0x78, TrackEnd}, encoded)
}

func TestDecodeEventsErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{name: "unknown opcode", data: []byte{0x83, 0xA2}, want: dse.ErrUnknownOpcode},
		{name: "missing parameter", data: []byte{0xA4}, want: dse.ErrTruncatedData},
		{name: "missing duration", data: []byte{0x10, 0x80, 0x01}, want: dse.ErrTruncatedData},
		{name: "missing note byte", data: []byte{0x10}, want: dse.ErrTruncatedData},
		{name: "missing skip bytes", data: []byte{0xF8, 0x00}, want: dse.ErrTruncatedData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeEvents(tt.data)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, tt.want))
		})
	}
}

func TestOpcodeTables(t *testing.T) {
	ops := SpecialOpcodes()
	assert.Len(t, ops, 36)
	for _, info := range ops {
		_, isPause := LookupPause(info.Op)
		assert.False(t, isPause)
		_, isSkipped := skipOpcodes[info.Op]
		assert.False(t, isSkipped)
	}

	info, ok := LookupSpecialOpcode(TrackEnd)
	assert.True(t, ok)
	assert.Equal(t, 0, info.Params)

	_, ok = LookupSpecialOpcode(0x7F)
	assert.False(t, ok)
}
