package midifile

import (
	"iter"

	"gitlab.com/gomidi/midi/v2/smf"
)

type timedEvent struct {
	tick  int64
	track int
	msg   smf.Message
}

// before orders simultaneous events so that note ends go first.
func (e timedEvent) before(o timedEvent) bool {
	if e.tick != o.tick {
		return e.tick < o.tick
	}
	return e.msg.GetNoteEnd(nil, nil) && !o.msg.GetNoteEnd(nil, nil)
}

// allEvents merges the tracks of mid by absolute tick, skipping end of track
// events. Each track must already have its note ends first within a tick
// (see sortNoteOffFirst); across tracks, a note end wins a tie and otherwise
// the lower track goes first.
func allEvents(mid *smf.SMF) iter.Seq[timedEvent] {
	return func(yield func(timedEvent) bool) {
		heads := make([]int, len(mid.Tracks))
		ticks := make([]int64, len(mid.Tracks))
		for {
			var next timedEvent
			found := false
			for i, t := range mid.Tracks {
				if heads[i] >= len(t) {
					continue
				}
				ev := t[heads[i]]
				cand := timedEvent{tick: ticks[i] + int64(ev.Delta), track: i, msg: ev.Message}
				if !found || cand.before(next) {
					next, found = cand, true
				}
			}
			if !found {
				return
			}
			heads[next.track]++
			ticks[next.track] = next.tick
			if next.msg.Is(smf.MetaEndOfTrackMsg) {
				continue
			}
			if !yield(next) {
				return
			}
		}
	}
}
