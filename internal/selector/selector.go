// Package selector picks the tracks and channels that go onto a roll.
package selector

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/divVerent/midiroll/internal/roll"
)

// Selector routes one MIDI track and channel onto the roll, shifted by Offset semitones.
type Selector struct {
	Track   int
	Channel uint8
	Offset  int
}

func (s Selector) String() string {
	if s.Offset == 0 {
		return fmt.Sprintf("%d,%d", s.Track, s.Channel)
	}
	return fmt.Sprintf("%d,%d%+d", s.Track, s.Channel, s.Offset)
}

// MarshalText implements encoding.TextMarshaler.
func (s Selector) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Selector) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Parse parses a selector of the form track,channel[+offset|-offset].
func Parse(arg string) (Selector, error) {
	trackStr, rest, found := strings.Cut(arg, ",")
	if !found {
		return Selector{}, fmt.Errorf("malformed track selector %q: expected a ','", arg)
	}
	track, err := strconv.Atoi(trackStr)
	if err != nil || track < 0 {
		return Selector{}, fmt.Errorf("malformed track selector %q: bad track number %q", arg, trackStr)
	}
	channelStr, offsetStr := rest, ""
	if pos := strings.IndexAny(rest, "+-"); pos >= 0 {
		channelStr, offsetStr = rest[:pos], rest[pos:]
	}
	channel, err := strconv.ParseUint(channelStr, 10, 8)
	if err != nil || channel > 15 {
		return Selector{}, fmt.Errorf("malformed track selector %q: bad channel number %q", arg, channelStr)
	}
	offset := int64(0)
	if offsetStr != "" {
		offset, err = strconv.ParseInt(offsetStr, 10, 8)
		if err != nil {
			return Selector{}, fmt.Errorf("malformed track selector %q: bad offset number %q", arg, offsetStr)
		}
	}
	return Selector{
		Track:   track,
		Channel: uint8(channel),
		Offset:  int(offset),
	}, nil
}

// ParseArgs splits command line arguments into selectors and an optional
// time divisor given as /divisor. The divisor defaults to 1.
func ParseArgs(args []string) ([]Selector, float64, error) {
	var selectors []Selector
	divisor := 1.0
	for _, arg := range args {
		if d, ok := strings.CutPrefix(arg, "/"); ok {
			var err error
			divisor, err = strconv.ParseFloat(d, 64)
			if err != nil {
				return nil, 0, fmt.Errorf("time divisor parse error: %w", err)
			}
			if divisor <= 0 || math.IsInf(divisor, 0) || math.IsNaN(divisor) {
				return nil, 0, fmt.Errorf("time divisor must be positive, got %v", d)
			}
			continue
		}
		s, err := Parse(arg)
		if err != nil {
			return nil, 0, err
		}
		selectors = append(selectors, s)
	}
	return selectors, divisor, nil
}

// Set is the selection of one roll. It tallies presses of every event it sees.
type Set struct {
	Selectors []Selector
	Stats     Stats
}

// NewSet returns a Set. Without selectors, every track and channel is taken unshifted.
func NewSet(selectors []Selector) *Set {
	return &Set{
		Selectors: selectors,
		Stats:     Stats{},
	}
}

// Filter implements roll.Filter. The first matching selector wins.
func (s *Set) Filter(ev roll.NoteEvent) (int, bool) {
	if ev.Action == roll.Press {
		s.Stats.count(ev.Track, ev.Channel)
	}
	if len(s.Selectors) == 0 {
		return 0, true
	}
	for _, sel := range s.Selectors {
		if sel.Track == ev.Track && sel.Channel == ev.Channel {
			return sel.Offset, true
		}
	}
	return 0, false
}
