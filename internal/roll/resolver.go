package roll

import (
	"cmp"
	"log"
	"maps"
	"slices"
)

// Filter decides whether an event is wanted on a roll, and by how many
// semitones to shift it. ok == false drops the event.
type Filter func(ev NoteEvent) (offset int, ok bool)

// All selects every event without shifting it.
func All(NoteEvent) (int, bool) {
	return 0, true
}

// FudgeTicks returns the largest gap between two presses of one hole that
// still counts as a single gesture: a third of a beat.
func FudgeTicks(timeBase uint16) int64 {
	return int64(timeBase) / 3
}

// Options configure a Resolver.
type Options struct {
	// FudgeTicks is the re-press tolerance, usually FudgeTicks(timeBase).
	FudgeTicks int64
	// Filter selects and offsets events. Nil means All.
	Filter Filter
	// Report receives diagnostics. Nil logs them.
	Report func(d Diagnostic)
}

// OpenPress is the press currently holding a hole open.
type OpenPress struct {
	Track   int
	Channel uint8
	Time    int64
}

// Resolver pairs presses with releases per hole.
//
// A Resolver serves exactly one pass over one time-ordered feed. Events must
// arrive with nondecreasing Time.
type Resolver struct {
	fudge  int64
	filter Filter
	report func(d Diagnostic)

	open       map[Pitch]OpenPress
	suppressed map[Pitch]int
	finished   []Interval
	done       bool
}

// NewResolver returns a Resolver for a single pass.
func NewResolver(opts Options) *Resolver {
	r := &Resolver{
		fudge:      opts.FudgeTicks,
		filter:     opts.Filter,
		report:     opts.Report,
		open:       map[Pitch]OpenPress{},
		suppressed: map[Pitch]int{},
	}
	if r.filter == nil {
		r.filter = All
	}
	if r.report == nil {
		r.report = func(d Diagnostic) {
			log.Printf("ERROR: %v", d)
		}
	}
	return r
}

// Handle processes one event.
func (r *Resolver) Handle(ev NoteEvent) {
	if r.done {
		log.Panicf("roll: Handle(%v) after Finish", ev)
	}
	offset, ok := r.filter(ev)
	if !ok {
		return
	}
	pitch, err := ResolvePitch(ev, offset)
	if err != nil {
		r.report(Diagnostic{
			Kind:   OutOfRange,
			Event:  ev,
			Offset: offset,
		})
		return
	}
	prev, isOpen := r.open[pitch]
	switch ev.Action {
	case Press:
		if !isOpen {
			r.open[pitch] = OpenPress{
				Track:   ev.Track,
				Channel: ev.Channel,
				Time:    ev.Time,
			}
			return
		}
		// The first press keeps the hole; its release is the one that counts.
		if ev.Time-prev.Time > r.fudge {
			r.report(Diagnostic{
				Kind:   AnomalousRePress,
				Event:  ev,
				Offset: offset,
				Pitch:  pitch,
				Since:  prev,
			})
		}
		r.suppressed[pitch]++
	case Release:
		if isOpen {
			delete(r.open, pitch)
			r.finished = append(r.finished, Interval{
				Start:    prev.Time,
				Duration: ev.Time - prev.Time,
				Pitch:    pitch,
			})
			return
		}
		if r.suppressed[pitch] > 0 {
			r.suppressed[pitch]--
			return
		}
		r.report(Diagnostic{
			Kind:   OrphanRelease,
			Event:  ev,
			Offset: offset,
			Pitch:  pitch,
		})
	default:
		log.Panicf("roll: unknown action in %v", ev)
	}
}

// Open returns the presses still holding holes open, by pitch.
func (r *Resolver) Open() map[Pitch]OpenPress {
	return maps.Clone(r.open)
}

// Finish ends the pass and returns the finished intervals in release order.
// Holes still open are dropped without a diagnostic.
func (r *Resolver) Finish() []Interval {
	r.done = true
	return r.finished
}

// SortByStart sorts intervals chronologically, keeping release order among
// intervals that start together.
func SortByStart(intervals []Interval) {
	slices.SortStableFunc(intervals, func(a, b Interval) int {
		return cmp.Compare(a.Start, b.Start)
	})
}

// Resolve runs a full pass over events and returns the intervals sorted by start.
func Resolve(events []NoteEvent, opts Options) []Interval {
	r := NewResolver(opts)
	for _, ev := range events {
		r.Handle(ev)
	}
	intervals := r.Finish()
	SortByStart(intervals)
	return intervals
}
