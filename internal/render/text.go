package render

import (
	"github.com/divVerent/midiroll/internal/roll"
)

// Text draws intervals as text, one row per ticksPerRow ticks and one column
// per hole between the lowest and highest hole in use. Holes are '#', C lanes
// '|', the rest '.'.
func Text(intervals []roll.Interval, ticksPerRow int64) []string {
	if len(intervals) == 0 || ticksPerRow <= 0 {
		return nil
	}
	lo, hi := roll.NumHoles, -1
	var end int64
	for _, iv := range intervals {
		hole, ok := iv.Pitch.Hole()
		if !ok {
			continue
		}
		lo, hi = min(lo, hole), max(hi, hole)
		end = max(end, iv.End())
	}
	if hi < lo {
		return nil
	}
	rows := make([][]byte, end/ticksPerRow+1)
	for r := range rows {
		rows[r] = make([]byte, hi-lo+1)
		for c := range rows[r] {
			if roll.Pitch(int(roll.LowestPitch)+lo+c-roll.FirstNoteHole)%12 == 0 {
				rows[r][c] = '|'
			} else {
				rows[r][c] = '.'
			}
		}
	}
	for _, iv := range intervals {
		hole, ok := iv.Pitch.Hole()
		if !ok {
			continue
		}
		last := max(iv.Start, iv.End()-1) / ticksPerRow
		for r := iv.Start / ticksPerRow; r <= last; r++ {
			rows[r][hole-lo] = '#'
		}
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = string(r)
	}
	return lines
}
