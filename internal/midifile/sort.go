package midifile

import (
	"cmp"
	"slices"

	"gitlab.com/gomidi/midi/v2/smf"
)

func noteEndRank(ev smf.Event) int {
	if ev.Message.GetNoteEnd(nil, nil) {
		return 0
	}
	return 1
}

// sortNoteOffFirst moves note ends ahead of the other events on the same tick
// of one track, in place. Absolute times stay the same.
func sortNoteOffFirst(track smf.Track) {
	for start := 0; start < len(track); {
		end := start + 1
		for end < len(track) && track[end].Delta == 0 {
			end++
		}
		tick := track[start:end]
		delta := tick[0].Delta
		slices.SortStableFunc(tick, func(a, b smf.Event) int {
			return cmp.Compare(noteEndRank(a), noteEndRank(b))
		})
		for i := range tick {
			tick[i].Delta = 0
		}
		tick[0].Delta = delta
		start = end
	}
}
