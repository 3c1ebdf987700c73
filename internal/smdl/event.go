package smdl

import (
	"fmt"

	"github.com/skytemple/dsecodec/internal/codec"
	"github.com/skytemple/dsecodec/internal/dse"
)

const (
	minOctaveMod = -2
	maxOctaveMod = 1
	maxNote      = 0x0F

	// MaxKeyDownDuration is the largest duration a note can encode in its 3 parameter bytes.
	MaxKeyDownDuration = 0xFFFFFF
)

// Event is a track event, one of PlayNote, Pause or Special.
type Event interface {
	// Bytes returns the encoded event.
	Bytes() ([]byte, error)

	isEvent()
}

// PlayNote starts playing a note.
type PlayNote struct {
	Velocity  uint8
	OctaveMod int8
	Note      uint8
	// HasKeyDownDuration is set when the note carries KeyDownDuration,
	// otherwise the previous duration of the track is reused.
	HasKeyDownDuration bool
	KeyDownDuration    uint32
}

// Pause waits for a fixed amount of ticks defined by the pause opcode.
type Pause struct {
	Value uint8
}

// Special is any other opcode with its parameter bytes.
type Special struct {
	Op     uint8
	Params []byte
}

func (PlayNote) isEvent() {}
func (Pause) isEvent()    {}
func (Special) isEvent()  {}

// Bytes encodes the note with the smallest duration width that fits.
func (e PlayNote) Bytes() ([]byte, error) {
	if e.Velocity > maxVelocity {
		return nil, dse.UnsupportedError("note velocity", e.Velocity, maxVelocity)
	}
	if e.OctaveMod < minOctaveMod || e.OctaveMod > maxOctaveMod {
		return nil, dse.UnsupportedError("note octave modifier", e.OctaveMod, fmt.Sprintf("range %d..%d", minOctaveMod, maxOctaveMod))
	}
	if e.Note > maxNote {
		return nil, dse.UnsupportedError("note", e.Note, maxNote)
	}

	paramCount := 0
	if e.HasKeyDownDuration {
		switch {
		case e.KeyDownDuration <= 0xFF:
			paramCount = 1
		case e.KeyDownDuration <= 0xFFFF:
			paramCount = 2
		case e.KeyDownDuration <= MaxKeyDownDuration:
			paramCount = 3
		default:
			return nil, dse.UnsupportedError("key down duration", e.KeyDownDuration, MaxKeyDownDuration)
		}
	}

	data := make([]byte, 2+paramCount)
	data[0] = e.Velocity
	data[1] = byte(paramCount<<6) | byte(e.OctaveMod-minOctaveMod)<<4 | e.Note
	if paramCount > 0 {
		if err := codec.WriteUintBE(data, 2, paramCount, e.KeyDownDuration); err != nil {
			return nil, fmt.Errorf("encoding key down duration: %w", err)
		}
	}
	return data, nil
}

// Ticks returns the length of the pause in ticks.
func (e Pause) Ticks() int {
	info, _ := LookupPause(e.Value)
	return info.Ticks
}

// Bytes encodes the pause opcode.
func (e Pause) Bytes() ([]byte, error) {
	if _, ok := LookupPause(e.Value); !ok {
		return nil, dse.UnsupportedError("pause opcode", fmt.Sprintf("0x%02x", e.Value), "range 0x80..0x8f")
	}
	return []byte{e.Value}, nil
}

// Info returns the opcode information of the event.
func (e Special) Info() (SpecialOpcode, bool) {
	return LookupSpecialOpcode(e.Op)
}

// Bytes encodes the opcode followed by its parameters.
func (e Special) Bytes() ([]byte, error) {
	info, ok := LookupSpecialOpcode(e.Op)
	if !ok {
		return nil, fmt.Errorf("%w: 0x%02x", dse.ErrUnknownOpcode, e.Op)
	}
	if len(e.Params) != info.Params {
		return nil, dse.UnsupportedError(fmt.Sprintf("parameter count of %s", info.Name), len(e.Params), info.Params)
	}

	data := make([]byte, 0, 1+len(e.Params))
	data = append(data, e.Op)
	data = append(data, e.Params...)
	return data, nil
}

// decodeEvents decodes the event stream of a track. The stream must end
// exactly at the end of data.
func decodeEvents(data []byte) ([]Event, error) {
	var events []Event
	for pos := 0; pos < len(data); {
		op := data[pos]

		var (
			event Event
			size  int
		)

		switch {
		case op <= maxVelocity:
			if err := need(data, pos, 2, "note"); err != nil {
				return nil, err
			}
			paramCount := int(data[pos+1]&0xC0) >> 6
			size = 2 + paramCount
			if err := need(data, pos, size, "note duration"); err != nil {
				return nil, err
			}
			note := PlayNote{
				Velocity:  op,
				OctaveMod: int8((data[pos+1]&0x30)>>4) + minOctaveMod,
				Note:      data[pos+1] & 0x0F,
			}
			if paramCount > 0 {
				duration, err := codec.ReadUintBE(data, pos+2, paramCount)
				if err != nil {
					return nil, fmt.Errorf("reading note duration: %w", err)
				}
				note.HasKeyDownDuration = true
				note.KeyDownDuration = duration
			}
			event = note

		case op >= pauseFirst && op <= pauseLast:
			size = 1
			event = Pause{Value: op}

		default:
			if skip, ok := skipOpcodes[op]; ok {
				size = 1 + skip
				if err := need(data, pos, size, fmt.Sprintf("opcode 0x%02x", op)); err != nil {
					return nil, err
				}
				break
			}

			info, ok := LookupSpecialOpcode(op)
			if !ok {
				return nil, fmt.Errorf("%w: 0x%02x at event offset 0x%x", dse.ErrUnknownOpcode, op, pos)
			}
			size = 1 + info.Params
			if err := need(data, pos, size, info.Name); err != nil {
				return nil, err
			}
			event = Special{
				Op:     op,
				Params: append([]byte(nil), data[pos+1:pos+size]...),
			}
		}

		if event != nil {
			events = append(events, event)
		}
		pos += size
	}
	return events, nil
}

func need(data []byte, pos, size int, what string) error {
	if pos+size > len(data) {
		return dse.TruncatedError(what, pos, size, len(data))
	}
	return nil
}

// encodeEvents encodes all events of a track.
func encodeEvents(events []Event) ([]byte, error) {
	var data []byte
	for i, event := range events {
		b, err := event.Bytes()
		if err != nil {
			return nil, fmt.Errorf("encoding event %d: %w", i, err)
		}
		data = append(data, b...)
	}
	return data, nil
}
