package roll

import (
	"errors"
	"fmt"
)

// Pitch is a MIDI pitch after the selector offset has been applied.
// Any two events with the same Pitch contend for the same hole, no matter
// which track or channel they came from.
type Pitch uint8

// Playable note range of the roll: 80 consecutive semitones.
const (
	LowestPitch  Pitch = 21
	HighestPitch Pitch = 100
	NumPitches         = int(HighestPitch-LowestPitch) + 1
)

// Hole layout of the roll. Note holes sit between the pedal holes; the pedal
// and reserved holes are never produced here, only drawn by the renderer.
const (
	HoleSustain   = 0
	HoleSoft      = 1
	FirstNoteHole = 2
	LastNoteHole  = FirstNoteHole + NumPitches - 1
	NumHoles      = LastNoteHole + 3
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

func (p Pitch) String() string {
	return fmt.Sprintf("%s%d", noteNames[p%12], int(p)/12-1)
}

// Playable returns whether the pitch has a hole on the roll.
func (p Pitch) Playable() bool {
	return p >= LowestPitch && p <= HighestPitch
}

// Hole returns the roll hole of the pitch.
func (p Pitch) Hole() (int, bool) {
	if !p.Playable() {
		return 0, false
	}
	return FirstNoteHole + int(p-LowestPitch), true
}

// ErrOutOfRange is wrapped by all RangeErrors.
var ErrOutOfRange = errors.New("outside of piano roll range")

// RangeError reports an event whose offset pitch has no hole.
type RangeError struct {
	Event  NoteEvent
	Offset int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("at %d, offsetting note %v on track %d channel %d by %d puts it %v",
		e.Event.Time, Pitch(e.Event.Pitch), e.Event.Track, e.Event.Channel, e.Offset, ErrOutOfRange)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// ResolvePitch applies offset to the event's pitch and checks that the result
// is playable. The sum is computed in int so no offset can wrap around.
func ResolvePitch(ev NoteEvent, offset int) (Pitch, error) {
	p := int(ev.Pitch) + offset
	if p < int(LowestPitch) || p > int(HighestPitch) {
		return 0, &RangeError{Event: ev, Offset: offset}
	}
	return Pitch(p), nil
}
