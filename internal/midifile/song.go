// Package midifile turns Standard MIDI Files into note feeds and back.
package midifile

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"log"
	"slices"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/divVerent/midiroll/internal/roll"
)

// ErrTimecode is returned for SMPTE timecode files, which have no beats.
var ErrTimecode = errors.New("unsupported timecode-based MIDI file")

// TrackInfo names a track.
type TrackInfo struct {
	Track      int
	Name       string
	Instrument string
}

// ChannelInfo is the sound a track uses on a channel.
type ChannelInfo struct {
	Track      int
	Channel    uint8
	Bank       uint8
	BankSet    bool
	Program    uint8
	ProgramSet bool
}

// Song is a decoded MIDI file.
type Song struct {
	Format    uint16
	NumTracks int
	// TimeBase is the number of ticks per beat.
	TimeBase uint16
	// Tempo in beats per minute; 0 if the file sets none.
	Tempo     float64
	Copyright []string
	Markers   []string
	Texts     []string
	TimeSigs  []TimeSig

	Tracks   []TrackInfo
	Channels []ChannelInfo

	// Notes is the note feed, ordered by time across all tracks.
	Notes []roll.NoteEvent
}

// Parse decodes a Standard MIDI File.
func Parse(data []byte) (*Song, error) {
	mid, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not parse MIDI: %w", err)
	}
	return FromSMF(mid)
}

// FromSMF extracts the note feed and song information. Simultaneous events
// in the tracks of mid are reordered so that note ends come first.
func FromSMF(mid *smf.SMF) (*Song, error) {
	ticks, ok := mid.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, ErrTimecode
	}
	s := &Song{
		Format:    mid.Format(),
		NumTracks: len(mid.Tracks),
		TimeBase:  uint16(ticks),
	}
	tracks := map[int]*TrackInfo{}
	channels := map[[2]int]*ChannelInfo{}
	channel := func(track int, ch uint8) *ChannelInfo {
		k := [2]int{track, int(ch)}
		info := channels[k]
		if info == nil {
			info = &ChannelInfo{Track: track, Channel: ch}
			channels[k] = info
		}
		return info
	}
	trackInfo := func(track int) *TrackInfo {
		info := tracks[track]
		if info == nil {
			info = &TrackInfo{Track: track}
			tracks[track] = info
		}
		return info
	}
	for _, t := range mid.Tracks {
		sortNoteOffFirst(t)
	}
	for ev := range allEvents(mid) {
		time, track, msg := ev.tick, ev.track, ev.msg
		var ch, key, value uint8
		var text string
		var bpm float64
		var num, denom, cpt, dsqpq uint8
		switch {
		case msg.GetNoteStart(&ch, &key, nil):
			channel(track, ch)
			s.Notes = append(s.Notes, roll.NoteEvent{Time: time, Track: track, Channel: ch, Pitch: key, Action: roll.Press})
		case msg.GetNoteEnd(&ch, &key):
			s.Notes = append(s.Notes, roll.NoteEvent{Time: time, Track: track, Channel: ch, Pitch: key, Action: roll.Release})
		case msg.GetControlChange(&ch, &key, &value):
			if key != 0 {
				break
			}
			info := channel(track, ch)
			if info.BankSet {
				log.Printf("WARNING: track %d set to another bank (%d) mid-song.", track, value)
				break
			}
			info.Bank, info.BankSet = value, true
		case msg.GetProgramChange(&ch, &value):
			info := channel(track, ch)
			if info.ProgramSet {
				log.Printf("WARNING: track %d set to another program (%d) mid-song.", track, value)
				break
			}
			info.Program, info.ProgramSet = value, true
		case msg.GetMetaTempo(&bpm):
			if s.Tempo != 0 {
				log.Printf("WARNING: tempo changes are not supported; using new tempo.")
			}
			s.Tempo = bpm
		case msg.GetMetaTimeSig(&num, &denom, &cpt, &dsqpq):
			s.addTimeSig(TimeSig{Tick: time, Num: int(num), Denom: int(denom)})
		case msg.GetMetaTrackName(&text):
			info := trackInfo(track)
			if info.Name != "" {
				log.Printf("WARNING: track %d given multiple names: %q.", track, decodeText(text))
				break
			}
			info.Name = decodeText(text)
		case msg.GetMetaInstrument(&text):
			info := trackInfo(track)
			if info.Instrument != "" {
				log.Printf("WARNING: track %d given multiple instrument names: %q.", track, decodeText(text))
				break
			}
			info.Instrument = decodeText(text)
		case msg.GetMetaCopyright(&text):
			s.Copyright = append(s.Copyright, decodeText(text))
		case msg.GetMetaMarker(&text):
			s.Markers = append(s.Markers, decodeText(text))
		case msg.GetMetaText(&text):
			s.Texts = append(s.Texts, decodeText(text))
		}
	}
	for _, info := range tracks {
		s.Tracks = append(s.Tracks, *info)
	}
	slices.SortFunc(s.Tracks, func(a, b TrackInfo) int {
		return cmp.Compare(a.Track, b.Track)
	})
	for _, info := range channels {
		s.Channels = append(s.Channels, *info)
	}
	slices.SortFunc(s.Channels, func(a, b ChannelInfo) int {
		if c := cmp.Compare(a.Track, b.Track); c != 0 {
			return c
		}
		return cmp.Compare(a.Channel, b.Channel)
	})
	return s, nil
}

// FormatName describes the SMF format.
func (s *Song) FormatName() string {
	switch s.Format {
	case 0:
		return "single track"
	case 1:
		return fmt.Sprintf("multiple track (%d)", s.NumTracks)
	case 2:
		return fmt.Sprintf("multiple song (%d)", s.NumTracks)
	}
	return "unknown!"
}

// Info returns human readable lines describing the song. Channels playing
// notes without a bank or program get an ERROR line and are listed as 0.
func (s *Song) Info() []string {
	lines := []string{
		fmt.Sprintf("MIDI file format: %s", s.FormatName()),
		fmt.Sprintf("%d MIDI ticks per metronome beat", s.TimeBase),
	}
	if s.Tempo != 0 {
		lines = append(lines, fmt.Sprintf("Tempo: %.0f beats per minute", s.Tempo))
	}
	for _, c := range s.Copyright {
		lines = append(lines, fmt.Sprintf("Copyright: %q", c))
	}
	for _, m := range s.Markers {
		lines = append(lines, fmt.Sprintf("Marker: %q", m))
	}
	for _, t := range s.Texts {
		lines = append(lines, fmt.Sprintf("Text: %q", t))
	}
	for _, t := range s.Tracks {
		if t.Name != "" {
			lines = append(lines, fmt.Sprintf("Track %d Name: %s", t.Track, t.Name))
		}
		if t.Instrument != "" {
			lines = append(lines, fmt.Sprintf("Track %d Instrument: %s", t.Track, t.Instrument))
		}
	}
	for _, c := range s.Channels {
		if !c.BankSet {
			lines = append(lines, fmt.Sprintf("ERROR: track %d channel %d has no MIDI bank set", c.Track, c.Channel))
		}
		if !c.ProgramSet {
			lines = append(lines, fmt.Sprintf("ERROR: track %d channel %d has no MIDI program set", c.Track, c.Channel))
		}
		lines = append(lines, fmt.Sprintf("track %d, channel %d: bank %d, program %d", c.Track, c.Channel, c.Bank, c.Program))
	}
	return lines
}

// End returns the tick of the last note event.
func (s *Song) End() int64 {
	if len(s.Notes) == 0 {
		return 0
	}
	return s.Notes[len(s.Notes)-1].Time
}
