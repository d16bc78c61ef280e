package roll

import (
	"fmt"
)

// Kind classifies a recoverable anomaly in the note stream.
type Kind int

const (
	// OutOfRange: the offset pitch has no hole. The event was dropped.
	OutOfRange Kind = iota
	// AnomalousRePress: a press on an open hole, later than the fudge factor allows.
	AnomalousRePress
	// OrphanRelease: a release on a closed hole with no suppressed press left to explain it.
	OrphanRelease
)

func (k Kind) String() string {
	switch k {
	case OutOfRange:
		return "out of range"
	case AnomalousRePress:
		return "anomalous re-press"
	case OrphanRelease:
		return "orphan release"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Diagnostic is reported for each recoverable anomaly. None of them stop a pass.
type Diagnostic struct {
	Kind  Kind
	Event NoteEvent
	// Offset applied to Event.Pitch; Pitch is the result (unset for OutOfRange).
	Offset int
	Pitch  Pitch
	// Since is the press holding the hole open, for AnomalousRePress.
	Since OpenPress
}

func (d Diagnostic) Error() string {
	switch d.Kind {
	case OutOfRange:
		return (&RangeError{Event: d.Event, Offset: d.Offset}).Error()
	case AnomalousRePress:
		return fmt.Sprintf("at %d, note %v on track %d channel %d already pressed at %d by %d,%d",
			d.Event.Time, d.Pitch, d.Event.Track, d.Event.Channel, d.Since.Time, d.Since.Track, d.Since.Channel)
	case OrphanRelease:
		return fmt.Sprintf("at %d on track %d channel %d, note %v is not pressed yet",
			d.Event.Time, d.Event.Track, d.Event.Channel, d.Pitch)
	}
	return fmt.Sprintf("%v: %v", d.Kind, d.Event)
}
