// Package roll resolves note presses and releases into holes on a piano roll.
package roll

import (
	"fmt"
)

// Action is what a note event does to its hole.
type Action int

const (
	Press Action = iota
	Release
)

func (a Action) String() string {
	switch a {
	case Press:
		return "press"
	case Release:
		return "release"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// NoteEvent is one observed MIDI note action.
//
// A note-on with zero velocity must already have been turned into a Release.
type NoteEvent struct {
	Time    int64
	Track   int
	Channel uint8
	Pitch   uint8
	Action  Action
}

func (e NoteEvent) String() string {
	return fmt.Sprintf("%v of note %v on track %d channel %d at %d", e.Action, e.Pitch, e.Track, e.Channel, e.Time)
}

// Interval is a finished note: a hole open from Start for Duration ticks.
type Interval struct {
	Start    int64
	Duration int64
	Pitch    Pitch
}

// End returns the tick at which the hole closes.
func (i Interval) End() int64 {
	return i.Start + i.Duration
}
