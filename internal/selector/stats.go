package selector

import (
	"cmp"
	"fmt"
	"slices"
)

// Source is a MIDI track and channel.
type Source struct {
	Track   int
	Channel uint8
}

// Stats counts presses per source.
type Stats map[Source]int

func (s Stats) count(track int, channel uint8) {
	s[Source{Track: track, Channel: channel}]++
}

// Sources returns the sources seen, ordered by track then channel.
func (s Stats) Sources() []Source {
	sources := make([]Source, 0, len(s))
	for src := range s {
		sources = append(sources, src)
	}
	slices.SortFunc(sources, func(a, b Source) int {
		if c := cmp.Compare(a.Track, b.Track); c != 0 {
			return c
		}
		return cmp.Compare(a.Channel, b.Channel)
	})
	return sources
}

// Lines formats the stats for printing, one source per line.
func (s Stats) Lines() []string {
	var lines []string
	for _, src := range s.Sources() {
		lines = append(lines, fmt.Sprintf("track %d, channel %d: %d", src.Track, src.Channel, s[src]))
	}
	return lines
}
