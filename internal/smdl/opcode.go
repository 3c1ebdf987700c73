package smdl

// TrackEnd is the opcode of the end of track event, it is also used to pad
// tracks to a 4 byte boundary.
const TrackEnd = 0x98

const (
	pauseFirst  = 0x80
	pauseLast   = 0x8F
	maxVelocity = 0x7F
)

// PauseInfo describes a fixed length pause opcode.
type PauseInfo struct {
	Name  string
	Ticks int
}

// pauses is indexed by opcode - 0x80.
var pauses = [pauseLast - pauseFirst + 1]PauseInfo{
	{Name: "half note", Ticks: 96},
	{Name: "dotted quarter note", Ticks: 72},
	{Name: "two thirds of half note", Ticks: 64},
	{Name: "quarter note", Ticks: 48},
	{Name: "dotted eighth note", Ticks: 36},
	{Name: "two thirds of quarter note", Ticks: 32},
	{Name: "eighth note", Ticks: 24},
	{Name: "dotted sixteenth note", Ticks: 18},
	{Name: "two thirds of eighth note", Ticks: 16},
	{Name: "sixteenth note", Ticks: 12},
	{Name: "dotted thirty-second note", Ticks: 9},
	{Name: "two thirds of sixteenth note", Ticks: 8},
	{Name: "thirty-second note", Ticks: 6},
	{Name: "dotted sixty-fourth note", Ticks: 4},
	{Name: "two thirds of thirty-second note", Ticks: 3},
	{Name: "sixty-fourth note", Ticks: 2},
}

// LookupPause returns the pause information of a pause opcode.
func LookupPause(op uint8) (PauseInfo, bool) {
	if op < pauseFirst || op > pauseLast {
		return PauseInfo{}, false
	}
	return pauses[op-pauseFirst], true
}

// SpecialOpcode describes an opcode that is followed by a fixed number of
// parameter bytes.
type SpecialOpcode struct {
	Op     uint8
	Name   string
	Params int
}

var specialOpcodes = [...]SpecialOpcode{
	{Op: 0x90, Name: "RepeatLastPause", Params: 0},
	{Op: 0x91, Name: "AddToLastPause", Params: 1},
	{Op: 0x92, Name: "Pause8Bits", Params: 1},
	{Op: 0x93, Name: "Pause16Bits", Params: 2},
	{Op: 0x94, Name: "Pause24Bits", Params: 3},
	{Op: 0x95, Name: "PauseUntilRelease", Params: 1},
	{Op: TrackEnd, Name: "EndOfTrack", Params: 0},
	{Op: 0x99, Name: "LoopPoint", Params: 0},
	{Op: 0x9C, Name: "RepeatFrom", Params: 1},
	{Op: 0xA0, Name: "SetTrackOctave", Params: 1},
	{Op: 0xA1, Name: "AddToTrackOctave", Params: 1},
	{Op: 0xA4, Name: "SetTempo", Params: 1},
	{Op: 0xA5, Name: "SetTempo2", Params: 1},
	{Op: 0xA9, Name: "SetUnknown1", Params: 1},
	{Op: 0xAA, Name: "SetUnknown2", Params: 1},
	{Op: 0xAC, Name: "SetProgram", Params: 1},
	{Op: 0xB2, Name: "SetUnknown3", Params: 1},
	{Op: 0xB4, Name: "SetUnknown4", Params: 2},
	{Op: 0xB5, Name: "SetUnknown5", Params: 1},
	{Op: 0xBE, Name: "SetModulation", Params: 1},
	{Op: 0xBF, Name: "SetUnknown6", Params: 1},
	{Op: 0xC0, Name: "SetUnknown7", Params: 0},
	{Op: 0xD0, Name: "SetUnknown8", Params: 1},
	{Op: 0xD1, Name: "SetUnknown9", Params: 1},
	{Op: 0xD2, Name: "SetUnknown10", Params: 1},
	{Op: 0xD4, Name: "SetUnknown11", Params: 3},
	{Op: 0xD6, Name: "SetUnknown12", Params: 2},
	{Op: 0xD7, Name: "PitchBend", Params: 2},
	{Op: 0xDB, Name: "SetUnknown13", Params: 1},
	{Op: 0xDC, Name: "SetUnknown14", Params: 5},
	{Op: 0xE0, Name: "SetTrackVolume", Params: 1},
	{Op: 0xE2, Name: "SetUnknown15", Params: 3},
	{Op: 0xE3, Name: "SetTrackExpression", Params: 1},
	{Op: 0xE8, Name: "SetTrackPan", Params: 1},
	{Op: 0xEA, Name: "SetUnknown16", Params: 3},
	{Op: 0xF6, Name: "SetUnknown17", Params: 1},
}

var specialOpcodeIndex = indexSpecialOpcodes()

// skipOpcodes are consumed together with the given number of following
// bytes without producing an event.
var skipOpcodes = map[uint8]int{
	0xAB: 1,
	0xCB: 2,
	0xF8: 2,
}

// LookupSpecialOpcode returns the opcode information of a special opcode.
func LookupSpecialOpcode(op uint8) (SpecialOpcode, bool) {
	info, ok := specialOpcodeIndex[op]
	return info, ok
}

// SpecialOpcodes returns all known special opcodes.
func SpecialOpcodes() []SpecialOpcode {
	return append([]SpecialOpcode(nil), specialOpcodes[:]...)
}

func indexSpecialOpcodes() map[uint8]SpecialOpcode {
	index := make(map[uint8]SpecialOpcode, len(specialOpcodes))
	for _, info := range specialOpcodes {
		index[info.Op] = info
	}
	return index
}
